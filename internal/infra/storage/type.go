package storage

import "time"

type XPBalance struct {
	GuildID   string
	UserID    string
	TextXP    int
	VoiceXP   int
	UpdatedAt time.Time
}

type GuildSettings struct {
	GuildID        string
	LevelChannelID string // vacío = sin canal de anuncios
	MsgXPMin       int
	MsgXPMax       int
	VoiceXPPerTick int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type RewardRule struct {
	GuildID    string
	RoleID     string
	TextLevel  int
	VoiceLevel int
	CreatedAt  time.Time
}

// SatisfiedBy: los dos umbrales son AND; un 0 siempre se cumple en ese eje.
func (r RewardRule) SatisfiedBy(textLevel, voiceLevel int) bool {
	return textLevel >= r.TextLevel && voiceLevel >= r.VoiceLevel
}

// Para updates parciales desde /levels
type GuildSettingsPatch struct {
	LevelChannelID *string
	MsgXPMin       *int
	MsgXPMax       *int
	VoiceXPPerTick *int
}

// DefaultSettings: mismos defaults que la fila que crea SettingsRepo.Get.
func DefaultSettings(guildID string) GuildSettings {
	return GuildSettings{
		GuildID:        guildID,
		MsgXPMin:       15,
		MsgXPMax:       25,
		VoiceXPPerTick: 1,
	}
}
