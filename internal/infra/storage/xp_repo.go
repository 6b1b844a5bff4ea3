package storage

import (
	"context"
	"database/sql"
)

type XPRepo struct{ db *sql.DB }

func NewXPRepo(db *sql.DB) *XPRepo { return &XPRepo{db: db} }

// Get devuelve el balance tal cual está guardado; fila ausente = balance cero.
// El clamp de negativos lo hace el servicio, acá no interpretamos nada.
func (r *XPRepo) Get(ctx context.Context, guildID, userID string) (XPBalance, error) {
	b := XPBalance{GuildID: guildID, UserID: userID}
	err := r.db.QueryRowContext(ctx, `
SELECT text_xp, voice_xp, updated_at
  FROM xp_balances
 WHERE guild_id = $1 AND user_id = $2
`, guildID, userID).Scan(&b.TextXP, &b.VoiceXP, &b.UpdatedAt)
	if err == sql.ErrNoRows {
		return b, nil
	}
	return b, err
}

// Put: upsert de valores absolutos (el servicio ya calculó el nuevo balance).
func (r *XPRepo) Put(ctx context.Context, b XPBalance) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO xp_balances (guild_id, user_id, text_xp, voice_xp)
VALUES ($1,$2,$3,$4)
ON CONFLICT (guild_id, user_id) DO UPDATE SET
  text_xp    = EXCLUDED.text_xp,
  voice_xp   = EXCLUDED.voice_xp,
  updated_at = now()
`, b.GuildID, b.UserID, b.TextXP, b.VoiceXP)
	return err
}

// ListGuild trae todos los balances del guild; el servicio ordena y pagina.
func (r *XPRepo) ListGuild(ctx context.Context, guildID string) ([]XPBalance, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT guild_id, user_id, text_xp, voice_xp, updated_at
  FROM xp_balances
 WHERE guild_id = $1
`, guildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []XPBalance
	for rows.Next() {
		var b XPBalance
		if err := rows.Scan(&b.GuildID, &b.UserID, &b.TextXP, &b.VoiceXP, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// RepairNegatives: barrido de arranque, deja en 0 cualquier XP negativo persistido.
func (r *XPRepo) RepairNegatives(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE xp_balances
   SET text_xp  = GREATEST(text_xp, 0),
       voice_xp = GREATEST(voice_xp, 0),
       updated_at = now()
 WHERE text_xp < 0 OR voice_xp < 0
`)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
