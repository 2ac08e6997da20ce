package services

import (
	"context"
	"errors"

	"tolo-telegram/db"

	"github.com/jackc/pgx/v5"
)

// LoadOffset returns the next update id to request from Telegram.
// No row means the bot has never run: start from the beginning (0).
func LoadOffset(ctx context.Context) (int, error) {
	var next int64
	err := db.Pool.QueryRow(ctx, `SELECT next_offset FROM bot_offset WHERE id = 1`).Scan(&next)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return int(next), nil
}

// SaveOffset persists the cursor. Called only after a fetched batch has
// been fully processed, so a crash redelivers the whole batch.
func SaveOffset(ctx context.Context, next int) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO bot_offset (id, next_offset, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET
			next_offset = $1,
			updated_at = now()`,
		next,
	)
	return err
}
