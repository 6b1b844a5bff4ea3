package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	DatabaseURL  string
	DiscordToken string
	DiscordGuild string // opcional: vacío = comandos globales

	AdminRoleIDs []string // roles extra con permiso de admin, opcional

	// Anti-spam / tick de voz (defaults del bot original)
	MinMessageLength  int
	MaxPerWindow      int
	SpamWindowSeconds int
	VoiceTickSeconds  int
}

func Load() Config {
	get := func(k string, req bool) string {
		v := os.Getenv(k)
		if v == "" && req {
			log.Fatalf("faltante env %s", k)
		}
		return v
	}
	getInt := func(k string, def int) int {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Fatalf("env %s inválida: %q", k, v)
		}
		return n
	}

	cfg := Config{
		DatabaseURL:  get("DATABASE_URL", true),
		DiscordToken: get("DISCORD_BOT_TOKEN", true),
		DiscordGuild: get("DISCORD_GUILD_ID", false),

		MinMessageLength:  getInt("MIN_MESSAGE_LENGTH", 3),
		MaxPerWindow:      getInt("MAX_MESSAGES_PER_WINDOW", 5),
		SpamWindowSeconds: getInt("SPAM_WINDOW_SECONDS", 10),
		VoiceTickSeconds:  getInt("VOICE_TICK_SECONDS", 60),
	}

	if raw := get("ADMIN_ROLE_IDS", false); raw != "" {
		for _, id := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == ' ' }) {
			cfg.AdminRoleIDs = append(cfg.AdminRoleIDs, id)
		}
	}
	return cfg
}
