package service

import (
	"context"
	"fmt"

	"github.com/jose-valero/levelling-bot/internal/infra/storage"
)

type SettingsService struct {
	repo SettingsRepo
}

func NewSettingsService(r SettingsRepo) *SettingsService { return &SettingsService{repo: r} }

func (s *SettingsService) Get(ctx context.Context, guildID string) (storage.GuildSettings, error) {
	return s.repo.Get(ctx, guildID)
}

func (s *SettingsService) Show(ctx context.Context, guildID string) (string, error) {
	st, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return "", err
	}
	channel := "*(sin configurar)*"
	if st.LevelChannelID != "" {
		channel = "<#" + st.LevelChannelID + ">"
	}
	return fmt.Sprintf(
		"**Configuración de niveles**\n• canal de anuncios: %s\n• XP por mensaje: **%d–%d**\n• XP de voz por minuto: **%d**",
		channel, st.MsgXPMin, st.MsgXPMax, st.VoiceXPPerTick,
	), nil
}

// Update aplica solo los campos presentes del patch, validando en el borde.
func (s *SettingsService) Update(ctx context.Context, guildID string, patch storage.GuildSettingsPatch) (string, error) {
	cur, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return "", err
	}

	if patch.LevelChannelID != nil {
		cur.LevelChannelID = *patch.LevelChannelID
	}
	if patch.MsgXPMin != nil {
		if *patch.MsgXPMin < 1 {
			return "⚠️ El mínimo de XP por mensaje debe ser al menos 1.", nil
		}
		cur.MsgXPMin = *patch.MsgXPMin
	}
	if patch.MsgXPMax != nil {
		if *patch.MsgXPMax < 1 {
			return "⚠️ El máximo de XP por mensaje debe ser al menos 1.", nil
		}
		cur.MsgXPMax = *patch.MsgXPMax
	}
	if cur.MsgXPMin > cur.MsgXPMax {
		return "⚠️ El rango de XP quedaría invertido (min > max).", nil
	}
	if patch.VoiceXPPerTick != nil {
		if *patch.VoiceXPPerTick < 0 {
			return "⚠️ El XP de voz por minuto debe ser 0 o mayor.", nil
		}
		cur.VoiceXPPerTick = *patch.VoiceXPPerTick
	}

	if err := s.repo.Upsert(ctx, cur); err != nil {
		return "", err
	}
	return s.Show(ctx, guildID)
}
