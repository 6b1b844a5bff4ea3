// Mantenimiento programado del storage de XP: clampa balances negativos y
// borra filas muertas (ambos ejes en cero). Corre como Lambda agendada.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jackc/pgx/v5/pgxpool"
)

func handler(ctx context.Context) (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "no DATABASE_URL", nil
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Sprintf("parse: %v", err), nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Sprintf("pool: %v", err), nil
	}
	defer pool.Close()

	cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	fixed, err := pool.Exec(cctx, `
UPDATE xp_balances
SET text_xp = GREATEST(text_xp, 0),
    voice_xp = GREATEST(voice_xp, 0),
    updated_at = now()
WHERE text_xp < 0 OR voice_xp < 0;`)
	if err != nil {
		return fmt.Sprintf("repair: %v", err), nil
	}

	pruned, err := pool.Exec(cctx, `
DELETE FROM xp_balances
WHERE text_xp = 0 AND voice_xp = 0
  AND updated_at < now() - INTERVAL '90 days';`)
	if err != nil {
		return fmt.Sprintf("prune: %v", err), nil
	}

	return fmt.Sprintf("ok: %d reparados, %d podados", fixed.RowsAffected(), pruned.RowsAffected()), nil
}

func main() { lambda.Start(handler) }
