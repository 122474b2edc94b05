package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// EmailTemplateName is the template used for confirmation emails.
const EmailTemplateName = "order_confirmed_email.tmpl"

// emailSink delivers order confirmations through a transactional email
// provider's HTTP API.
type emailSink struct {
	endpoint string
	apiKey   string
	from     string
	loader   Loader
	client   *http.Client
	logger   zerolog.Logger
}

// NewEmailSink creates an email notification sink.
func NewEmailSink(endpoint, apiKey, from string, loader Loader, logger zerolog.Logger) Sink {
	return &emailSink{
		endpoint: endpoint,
		apiKey:   apiKey,
		from:     from,
		loader:   loader,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger.With().Str("sink", "email").Logger(),
	}
}

func (s *emailSink) Name() string {
	return "email"
}

// emailMessage is the provider request payload.
type emailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// NotifyOrderConfirmed renders the confirmation template and posts it to the
// email provider.
func (s *emailSink) NotifyOrderConfirmed(ctx context.Context, contact Contact, summary OrderSummary) error {
	if contact.Email == "" {
		s.logger.Debug().
			Str("order_number", summary.OrderNumber).
			Msg("no email address on contact, skipping")
		return nil
	}

	text, err := s.loader.Load(ctx, EmailTemplateName)
	if err != nil {
		return fmt.Errorf("failed to load email template: %w", err)
	}

	body, err := Render(text, EmailTemplateName, map[string]any{
		"Name":        contact.Name,
		"OrderNumber": summary.OrderNumber,
		"ItemCount":   summary.ItemCount,
		"Total":       summary.Total.StringFixed(2),
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	msg := emailMessage{
		From:    s.from,
		To:      contact.Email,
		Subject: fmt.Sprintf("Order confirmation %s", summary.OrderNumber),
		Text:    body,
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}

	s.logger.Info().
		Str("order_number", summary.OrderNumber).
		Str("to", contact.Email).
		Msg("order confirmation email sent")

	return nil
}
