package services

import (
	"context"

	"tolo-telegram/db"
)

// SaveFeedback stores a standalone feedback message.
func SaveFeedback(ctx context.Context, chatID int64, userName, body string) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO feedback (chat_id, user_name, body)
		VALUES ($1, $2, $3)`,
		chatID, userName, body,
	)
	return err
}
