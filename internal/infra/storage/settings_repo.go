package storage

import (
	"context"
	"database/sql"

	pq "github.com/lib/pq"
)

type SettingsRepo struct{ db *sql.DB }

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

func (r *SettingsRepo) Get(ctx context.Context, guildID string) (GuildSettings, error) {
	var s GuildSettings
	err := r.db.QueryRowContext(ctx, `
SELECT guild_id, level_channel_id, msg_xp_min, msg_xp_max, voice_xp_per_tick, created_at, updated_at
  FROM guild_settings
 WHERE guild_id = $1
`, guildID).Scan(
		&s.GuildID, &s.LevelChannelID, &s.MsgXPMin, &s.MsgXPMax, &s.VoiceXPPerTick, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		// crea default
		_, err := r.db.ExecContext(ctx, `
INSERT INTO guild_settings (guild_id) VALUES ($1) ON CONFLICT (guild_id) DO NOTHING
`, guildID)
		if err != nil {
			return GuildSettings{}, err
		}
		return r.Get(ctx, guildID)
	}
	return s, err
}

// GetMany: lectura batch para el tick de voz (un query por tick, no uno por sesión).
func (r *SettingsRepo) GetMany(ctx context.Context, guildIDs []string) (map[string]GuildSettings, error) {
	out := map[string]GuildSettings{}
	if len(guildIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT guild_id, level_channel_id, msg_xp_min, msg_xp_max, voice_xp_per_tick, created_at, updated_at
  FROM guild_settings
 WHERE guild_id = ANY($1)
`, pq.Array(guildIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s GuildSettings
		if err := rows.Scan(&s.GuildID, &s.LevelChannelID, &s.MsgXPMin, &s.MsgXPMax, &s.VoiceXPPerTick, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out[s.GuildID] = s
	}
	return out, rows.Err()
}

func (r *SettingsRepo) Upsert(ctx context.Context, s GuildSettings) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO guild_settings
  (guild_id, level_channel_id, msg_xp_min, msg_xp_max, voice_xp_per_tick)
VALUES
  ($1,$2,$3,$4,$5)
ON CONFLICT (guild_id) DO UPDATE SET
  level_channel_id  = EXCLUDED.level_channel_id,
  msg_xp_min        = EXCLUDED.msg_xp_min,
  msg_xp_max        = EXCLUDED.msg_xp_max,
  voice_xp_per_tick = EXCLUDED.voice_xp_per_tick,
  updated_at        = now()
`, s.GuildID, s.LevelChannelID, s.MsgXPMin, s.MsgXPMax, s.VoiceXPPerTick)
	return err
}
