package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"tolo-telegram/db"
	"tolo-telegram/models"

	"github.com/jackc/pgx/v5"
)

// GetSession returns the chat's active session, or nil if there is none.
func GetSession(ctx context.Context, chatID int64) (*models.Session, error) {
	var (
		s        models.Session
		skip     string
		dataJSON []byte
	)
	err := db.Pool.QueryRow(ctx, `
		SELECT chat_id, mode, step, skip, data, user_name, created_at
		FROM sessions WHERE chat_id = $1`,
		chatID,
	).Scan(&s.ChatID, &s.Mode, &s.Step, &skip, &dataJSON, &s.UserName, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.Skip = models.SkipMode(skip)
	s.Data = map[string]string{}
	if len(dataJSON) > 0 {
		if err := json.Unmarshal(dataJSON, &s.Data); err != nil {
			return nil, fmt.Errorf("unmarshal session data: %w", err)
		}
	}
	return &s, nil
}

// SaveSession upserts the session row. created_at is set once on insert
// and kept on update: it seeds the deterministic order dedupe key.
func SaveSession(ctx context.Context, s *models.Session) error {
	data := s.Data
	if data == nil {
		data = map[string]string{}
	}
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal session data: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO sessions (chat_id, mode, step, skip, data, user_name, created_at)
		VALUES ($1, $2, $3, $4, $5::jsonb, $6, now())
		ON CONFLICT (chat_id) DO UPDATE SET
			mode = $2,
			step = $3,
			skip = $4,
			data = $5::jsonb,
			user_name = $6`,
		s.ChatID, s.Mode, s.Step, string(s.Skip), string(dataJSON), s.UserName,
	)
	return err
}

// ReplaceSession drops any existing session for the chat and inserts a
// fresh one, resetting created_at (a new logical session must get a new
// dedupe key).
func ReplaceSession(ctx context.Context, s *models.Session) error {
	if err := DeleteSession(ctx, s.ChatID); err != nil {
		return err
	}
	return SaveSession(ctx, s)
}

// DeleteSession removes the chat's session. Deleting an absent session
// is not an error.
func DeleteSession(ctx context.Context, chatID int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE chat_id = $1`, chatID)
	return err
}
