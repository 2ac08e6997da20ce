package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Overridable in tests.
var (
	afroBaseURL = "https://api.afromessage.com"
	smsClient   = &http.Client{Timeout: 15 * time.Second}
)

var (
	afroToken    string
	afroSenderID string
)

// ConfigureSMS sets the AfroMessage credentials. With an empty token,
// SendSMS fails fast and the caller just logs it.
func ConfigureSMS(token, senderID string) {
	afroToken = token
	afroSenderID = senderID
}

// SendSMS delivers a text via AfroMessage. Best-effort: order acceptance
// never waits on or fails because of SMS.
func SendSMS(ctx context.Context, phone, message string) error {
	if afroToken == "" {
		return fmt.Errorf("sms not configured")
	}

	body, err := json.Marshal(map[string]string{
		"from":    afroSenderID,
		"sender":  "AfroMessage",
		"to":      phone,
		"message": message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, afroBaseURL+"/api/send", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+afroToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := smsClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("afromessage status %d", resp.StatusCode)
	}

	var ack struct {
		Acknowledge string `json:"acknowledge"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("decode afromessage response: %w", err)
	}
	if ack.Acknowledge != "success" {
		return fmt.Errorf("afromessage rejected send: %s", ack.Acknowledge)
	}
	return nil
}
