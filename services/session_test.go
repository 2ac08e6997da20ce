package services

import (
	"context"
	"testing"

	"tolo-telegram/db"
	"tolo-telegram/models"
)

// Integration tests (require DB). Skip if db.Pool is nil or -short.

func TestSessionRoundTrip_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping session integration test in short mode")
	}
	if db.Pool == nil {
		t.Skip("skipping session integration test: no DB pool")
	}
	ctx := context.Background()
	const chatID int64 = 999999945
	defer func() { _ = DeleteSession(ctx, chatID) }()

	got, err := GetSession(ctx, chatID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if got != nil {
		t.Fatal("expected no session before save")
	}

	s := &models.Session{
		ChatID:   chatID,
		Mode:     models.SessionModeCollect,
		Step:     3,
		Skip:     models.SkipSender,
		UserName: "Test User",
		Data:     map[string]string{"pickup": "Bole", "sender_phone": "0912345678"},
	}
	if err := SaveSession(ctx, s); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	got, err = GetSession(ctx, chatID)
	if err != nil {
		t.Fatalf("GetSession after save: %v", err)
	}
	if got == nil {
		t.Fatal("session missing after save")
	}
	if got.Step != 3 || got.Skip != models.SkipSender || got.Data["pickup"] != "Bole" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("created_at must be set on insert")
	}

	// Upsert keeps created_at so the dedupe key stays stable.
	created := got.CreatedAt
	got.Step = 4
	if err := SaveSession(ctx, got); err != nil {
		t.Fatalf("SaveSession update: %v", err)
	}
	got, err = GetSession(ctx, chatID)
	if err != nil {
		t.Fatalf("GetSession after update: %v", err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at changed on update: %v -> %v", created, got.CreatedAt)
	}
	if got.Step != 4 {
		t.Errorf("step = %d, want 4", got.Step)
	}

	// Delete is idempotent.
	if err := DeleteSession(ctx, chatID); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if err := DeleteSession(ctx, chatID); err != nil {
		t.Fatalf("DeleteSession twice: %v", err)
	}
	got, _ = GetSession(ctx, chatID)
	if got != nil {
		t.Error("session still present after delete")
	}
}

func TestOffsetRoundTrip_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping offset integration test in short mode")
	}
	if db.Pool == nil {
		t.Skip("skipping offset integration test: no DB pool")
	}
	ctx := context.Background()

	if err := SaveOffset(ctx, 12345); err != nil {
		t.Fatalf("SaveOffset: %v", err)
	}
	got, err := LoadOffset(ctx)
	if err != nil {
		t.Fatalf("LoadOffset: %v", err)
	}
	if got != 12345 {
		t.Errorf("LoadOffset = %d, want 12345", got)
	}

	if err := SaveOffset(ctx, 12346); err != nil {
		t.Fatalf("SaveOffset overwrite: %v", err)
	}
	got, _ = LoadOffset(ctx)
	if got != 12346 {
		t.Errorf("LoadOffset after overwrite = %d, want 12346", got)
	}
}
