package services

import (
	"context"
	"errors"

	"tolo-telegram/db"
	"tolo-telegram/models"

	"github.com/jackc/pgx/v5"
)

// UpsertLastOrder overwrites the chat's reorder cache with the fields of
// the order that just finalized.
func UpsertLastOrder(ctx context.Context, lo *models.LastOrder) error {
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO last_orders (chat_id, pickup, sender_phone, dropoff, receiver_phone, payment, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		ON CONFLICT (chat_id) DO UPDATE SET
			pickup = $2,
			sender_phone = $3,
			dropoff = $4,
			receiver_phone = $5,
			payment = $6,
			updated_at = now()`,
		lo.ChatID, lo.Pickup, lo.SenderPhone, lo.Dropoff, lo.ReceiverPhone, lo.Payment,
	)
	return err
}

// GetLastOrder returns the chat's cached last order, or nil if the chat
// has never completed one.
func GetLastOrder(ctx context.Context, chatID int64) (*models.LastOrder, error) {
	var lo models.LastOrder
	err := db.Pool.QueryRow(ctx, `
		SELECT chat_id, pickup, sender_phone, dropoff, receiver_phone, payment
		FROM last_orders WHERE chat_id = $1`,
		chatID,
	).Scan(&lo.ChatID, &lo.Pickup, &lo.SenderPhone, &lo.Dropoff, &lo.ReceiverPhone, &lo.Payment)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &lo, nil
}
