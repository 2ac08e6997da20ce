package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tolo-telegram/db"
	"tolo-telegram/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	OrderSource = "telegram"

	// Levels step every ten completed orders.
	ordersPerLevel = 10

	orderIDAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"
	orderIDLength   = 8
)

// Namespace for deterministic order dedupe keys.
var orderKeyNamespace = uuid.MustParse("7b7e1f3a-0c6f-4a38-9a51-d2f4c8a90b11")

// LoyaltyLevel maps a completed-order count to a loyalty level.
// 0..9 orders -> level 1, 10..19 -> level 2, and so on.
func LoyaltyLevel(count int) int {
	if count < ordersPerLevel {
		return 1
	}
	return count/ordersPerLevel + 1
}

// CountOrders returns the number of finalized orders for the chat.
func CountOrders(ctx context.Context, chatID int64) (int, error) {
	var n int
	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*)::int FROM orders WHERE chat_id = $1`, chatID,
	).Scan(&n)
	return n, err
}

// HasFreeDeliveryGrant reports whether the one-time free delivery for
// (chat, level) has already been consumed.
func HasFreeDeliveryGrant(ctx context.Context, chatID int64, level int) (bool, error) {
	var one int
	err := db.Pool.QueryRow(ctx, `
		SELECT 1 FROM free_delivery_grants WHERE chat_id = $1 AND level = $2`,
		chatID, level,
	).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// OrderDedupeKey derives the deterministic ledger key for a session, so
// a redelivered finalization cannot write a second order row.
func OrderDedupeKey(s *models.Session) uuid.UUID {
	seed := fmt.Sprintf("%d:%d", s.ChatID, s.CreatedAt.UnixNano())
	return uuid.NewSHA1(orderKeyNamespace, []byte(seed))
}

// FinalizeOrder turns a completed session into a durable order record.
//
// Write order matters for crash safety: the order row (keyed on the
// deterministic dedupe key), then the free-delivery grant, then the
// last-order cache, and the session deletion strictly last. If the
// process dies anywhere in between, the triggering update is redelivered
// and finalization re-enters here; the dedupe key turns the second
// insert into a no-op.
func FinalizeOrder(ctx context.Context, s *models.Session) (*models.Order, error) {
	count, err := CountOrders(ctx, s.ChatID)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	level := LoyaltyLevel(count)

	granted, err := HasFreeDeliveryGrant(ctx, s.ChatID, level)
	if err != nil {
		return nil, fmt.Errorf("check grant: %w", err)
	}
	free := !granted

	dataJSON, err := json.Marshal(s.Data)
	if err != nil {
		return nil, fmt.Errorf("marshal order data: %w", err)
	}

	orderID, err := gonanoid.Generate(orderIDAlphabet, orderIDLength)
	if err != nil {
		return nil, fmt.Errorf("generate order id: %w", err)
	}
	dedupeKey := OrderDedupeKey(s)

	order := &models.Order{
		ChatID:       s.ChatID,
		UserName:     s.UserName,
		Data:         s.Data,
		LoyaltyLevel: level,
		FreeDelivery: free,
		Source:       OrderSource,
	}

	err = db.Pool.QueryRow(ctx, `
		INSERT INTO orders (order_id, dedupe_key, chat_id, user_name, data, loyalty_level, free_delivery, source)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, $7, $8)
		ON CONFLICT (dedupe_key) DO NOTHING
		RETURNING id, order_id, created_at`,
		orderID, dedupeKey, s.ChatID, s.UserName, string(dataJSON), level, free, OrderSource,
	).Scan(&order.ID, &order.OrderID, &order.CreatedAt)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("insert order: %w", err)
		}
		// Redelivered finalization: the order is already in the ledger.
		err = db.Pool.QueryRow(ctx, `
			SELECT id, order_id, loyalty_level, free_delivery, created_at
			FROM orders WHERE dedupe_key = $1`,
			dedupeKey,
		).Scan(&order.ID, &order.OrderID, &order.LoyaltyLevel, &order.FreeDelivery, &order.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("load existing order: %w", err)
		}
	}

	// Keyed on the stored row, not on this call's grant check: a crash
	// between the order insert and the grant insert leaves a free order
	// without its grant, and the redelivery must re-assert it.
	if order.FreeDelivery {
		if _, err := db.Pool.Exec(ctx, `
			INSERT INTO free_delivery_grants (chat_id, level)
			VALUES ($1, $2)
			ON CONFLICT (chat_id, level) DO NOTHING`,
			s.ChatID, level,
		); err != nil {
			return nil, fmt.Errorf("record grant: %w", err)
		}
	}

	if err := UpsertLastOrder(ctx, &models.LastOrder{
		ChatID:        s.ChatID,
		Pickup:        s.Data["pickup"],
		SenderPhone:   s.Data["sender_phone"],
		Dropoff:       s.Data["dropoff"],
		ReceiverPhone: s.Data["receiver_phone"],
		Payment:       s.Data["payment"],
	}); err != nil {
		return nil, fmt.Errorf("cache last order: %w", err)
	}

	// Destroy-session-last: everything above must be durable before the
	// session disappears, or a crash would lose the order silently.
	if err := DeleteSession(ctx, s.ChatID); err != nil {
		return nil, fmt.Errorf("delete session: %w", err)
	}
	return order, nil
}

// ListOrders returns the chat's most recent orders, newest first.
func ListOrders(ctx context.Context, chatID int64, limit int) ([]models.OrderSummary, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT order_id, COALESCE(data->>'pickup', ''), COALESCE(data->>'dropoff', ''), free_delivery, created_at
		FROM orders
		WHERE chat_id = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		chatID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.OrderSummary
	for rows.Next() {
		var o models.OrderSummary
		if err := rows.Scan(&o.OrderID, &o.Pickup, &o.Dropoff, &o.FreeDelivery, &o.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, o)
	}
	return res, rows.Err()
}
