package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"loanconv-backoffice/internal/config"
)

// EmailSender delivers email notifications to applicants
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// EmailService posts messages to the configured mail relay. Delivery is
// best-effort; callers log failures and move on.
type EmailService struct {
	cfg    *config.MailConfig
	client *http.Client
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.MailConfig) *EmailService {
	return &EmailService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type relayMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Send posts one message to the relay. A missing relay URL disables email
// silently, which is the normal development setup.
func (s *EmailService) Send(ctx context.Context, to, subject, body string) error {
	if s.cfg.RelayURL == "" {
		log.Printf("⚠️ Email relay not configured, skipping mail to %s", to)
		return nil
	}

	payload, err := json.Marshal(relayMessage{
		From:    s.cfg.FromName,
		To:      to,
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.RelayURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.cfg.RelayToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.RelayToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail relay returned status %d", resp.StatusCode)
	}

	log.Printf("✅ Email sent to %s: %s", to, subject)
	return nil
}
