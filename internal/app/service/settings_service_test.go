package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jose-valero/levelling-bot/internal/infra/storage"
)

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestSettingsUpdatePatch(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo)
	ctx := context.Background()

	msg, err := svc.Update(ctx, "g1", storage.GuildSettingsPatch{
		LevelChannelID: strp("chan-9"),
		MsgXPMin:       intp(5),
		MsgXPMax:       intp(8),
	})
	require.NoError(t, err)
	require.Contains(t, msg, "<#chan-9>")
	require.Contains(t, msg, "5–8")

	st, err := repo.Get(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, "chan-9", st.LevelChannelID)
	require.Equal(t, 5, st.MsgXPMin)
	require.Equal(t, 8, st.MsgXPMax)

	// patch parcial no toca lo demás
	_, err = svc.Update(ctx, "g1", storage.GuildSettingsPatch{VoiceXPPerTick: intp(3)})
	require.NoError(t, err)
	st, _ = repo.Get(ctx, "g1")
	require.Equal(t, 3, st.VoiceXPPerTick)
	require.Equal(t, 5, st.MsgXPMin)
}

func TestSettingsUpdateValidation(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo)
	ctx := context.Background()

	msg, err := svc.Update(ctx, "g1", storage.GuildSettingsPatch{MsgXPMin: intp(0)})
	require.NoError(t, err)
	require.Contains(t, msg, "⚠️")

	msg, err = svc.Update(ctx, "g1", storage.GuildSettingsPatch{MsgXPMin: intp(30)})
	require.NoError(t, err)
	require.Contains(t, msg, "invertido")

	msg, err = svc.Update(ctx, "g1", storage.GuildSettingsPatch{VoiceXPPerTick: intp(-1)})
	require.NoError(t, err)
	require.Contains(t, msg, "⚠️")

	// nada de lo rechazado se persistió
	st, err := repo.Get(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, 15, st.MsgXPMin)
	require.Equal(t, 25, st.MsgXPMax)
	require.Equal(t, 1, st.VoiceXPPerTick)
}

func TestSettingsShowDefaults(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo())

	msg, err := svc.Show(context.Background(), "g1")
	require.NoError(t, err)
	require.Contains(t, msg, "sin configurar")
	require.Contains(t, msg, "15–25")
}
