package service

import (
	"context"
	"fmt"

	"github.com/jose-valero/levelling-bot/internal/infra/storage"
)

type RewardsService struct {
	repo RewardsRepo
}

func NewRewardsService(r RewardsRepo) *RewardsService { return &RewardsService{repo: r} }

func (s *RewardsService) Add(ctx context.Context, guildID, roleID string, textLevel, voiceLevel int) (string, error) {
	if textLevel < 0 || voiceLevel < 0 {
		return "⚠️ Los niveles deben ser 0 o mayores.", nil
	}
	if err := s.repo.Upsert(ctx, storage.RewardRule{
		GuildID:    guildID,
		RoleID:     roleID,
		TextLevel:  textLevel,
		VoiceLevel: voiceLevel,
	}); err != nil {
		return "", err
	}
	return fmt.Sprintf("✅ Reward configurado: <@&%s> se otorga con `nivel de texto %d` y `nivel de voz %d`.",
		roleID, textLevel, voiceLevel), nil
}

func (s *RewardsService) Remove(ctx context.Context, guildID, roleID string) (string, error) {
	ok, err := s.repo.Delete(ctx, guildID, roleID)
	if err != nil {
		return "", err
	}
	if !ok {
		return fmt.Sprintf("ℹ️ No hay reward configurado para <@&%s>.", roleID), nil
	}
	return fmt.Sprintf("✅ Reward de <@&%s> eliminado.", roleID), nil
}

func (s *RewardsService) List(ctx context.Context, guildID string) (string, error) {
	rules, err := s.repo.ListForGuild(ctx, guildID)
	if err != nil {
		return "", err
	}
	if len(rules) == 0 {
		return "ℹ️ No hay rewards configurados.", nil
	}
	out := "🎁 **Rewards de rol**\n"
	for _, r := range rules {
		out += fmt.Sprintf("• <@&%s> — `texto %d` · `voz %d`\n", r.RoleID, r.TextLevel, r.VoiceLevel)
	}
	return out, nil
}
