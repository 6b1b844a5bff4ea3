package storage

import (
	"context"
	"database/sql"
)

type RewardsRepo struct{ db *sql.DB }

func NewRewardsRepo(db *sql.DB) *RewardsRepo { return &RewardsRepo{db: db} }

func (r *RewardsRepo) ListForGuild(ctx context.Context, guildID string) ([]RewardRule, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT guild_id, role_id, text_level, voice_level, created_at
  FROM role_rewards
 WHERE guild_id = $1
 ORDER BY text_level, voice_level
`, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RewardRule
	for rows.Next() {
		var rr RewardRule
		if err := rows.Scan(&rr.GuildID, &rr.RoleID, &rr.TextLevel, &rr.VoiceLevel, &rr.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *RewardsRepo) Upsert(ctx context.Context, rr RewardRule) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO role_rewards (guild_id, role_id, text_level, voice_level)
VALUES ($1,$2,$3,$4)
ON CONFLICT (guild_id, role_id) DO UPDATE SET
  text_level  = EXCLUDED.text_level,
  voice_level = EXCLUDED.voice_level
`, rr.GuildID, rr.RoleID, rr.TextLevel, rr.VoiceLevel)
	return err
}

func (r *RewardsRepo) Delete(ctx context.Context, guildID, roleID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM role_rewards
 WHERE guild_id = $1 AND role_id = $2
`, guildID, roleID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
