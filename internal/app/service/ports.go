package service

import (
	"context"

	"github.com/jose-valero/levelling-bot/internal/infra/storage"
)

// MemberKey identifica estado por (guild, user); nada de claves "uid_gid" en string.
type MemberKey struct {
	GuildID string
	UserID  string
}

// Lo implementa internal/infra/storage.XPRepo
type XPRepo interface {
	Get(ctx context.Context, guildID, userID string) (storage.XPBalance, error)
	Put(ctx context.Context, b storage.XPBalance) error
	ListGuild(ctx context.Context, guildID string) ([]storage.XPBalance, error)
	RepairNegatives(ctx context.Context) (int64, error)
}

// Lo implementa internal/infra/storage.SettingsRepo
type SettingsRepo interface {
	Get(ctx context.Context, guildID string) (storage.GuildSettings, error)
	GetMany(ctx context.Context, guildIDs []string) (map[string]storage.GuildSettings, error)
	Upsert(ctx context.Context, s storage.GuildSettings) error
}

// Lo implementa internal/infra/storage.RewardsRepo
type RewardsRepo interface {
	ListForGuild(ctx context.Context, guildID string) ([]storage.RewardRule, error)
	Upsert(ctx context.Context, rr storage.RewardRule) error
	Delete(ctx context.Context, guildID, roleID string) (bool, error)
}

// Lo implementa el adapter de discord (GuildMemberRoleAdd + cache de miembros).
// Un grant fallido no es fatal para el levelling.
type RoleGranter interface {
	HasRole(guildID, userID, roleID string) (bool, error)
	GrantRole(guildID, userID, roleID string) error
}

// Lo implementa el adapter de discord (ChannelMessageSend).
type ChannelSender interface {
	Send(channelID, content string) error
}

// Lo implementa el adapter de discord (State.VoiceState).
type VoicePresence interface {
	InVoice(guildID, userID string) bool
}
