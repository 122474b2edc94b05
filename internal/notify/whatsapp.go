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

// WhatsAppTemplateName is the template used for confirmation messages.
const WhatsAppTemplateName = "order_confirmed_whatsapp.tmpl"

// whatsAppSink delivers order confirmations through the WhatsApp Cloud API.
type whatsAppSink struct {
	endpoint string
	token    string
	loader   Loader
	client   *http.Client
	logger   zerolog.Logger
}

// NewWhatsAppSink creates a WhatsApp notification sink.
func NewWhatsAppSink(endpoint, token string, loader Loader, logger zerolog.Logger) Sink {
	return &whatsAppSink{
		endpoint: endpoint,
		token:    token,
		loader:   loader,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger.With().Str("sink", "whatsapp").Logger(),
	}
}

func (s *whatsAppSink) Name() string {
	return "whatsapp"
}

// whatsAppMessage is the Cloud API text-message payload.
type whatsAppMessage struct {
	MessagingProduct string           `json:"messaging_product"`
	To               string           `json:"to"`
	Type             string           `json:"type"`
	Text             whatsAppTextBody `json:"text"`
}

type whatsAppTextBody struct {
	Body string `json:"body"`
}

// NotifyOrderConfirmed renders the confirmation template and posts it to the
// WhatsApp Cloud API.
func (s *whatsAppSink) NotifyOrderConfirmed(ctx context.Context, contact Contact, summary OrderSummary) error {
	if contact.Phone == "" {
		s.logger.Debug().
			Str("order_number", summary.OrderNumber).
			Msg("no phone number on contact, skipping")
		return nil
	}

	text, err := s.loader.Load(ctx, WhatsAppTemplateName)
	if err != nil {
		return fmt.Errorf("failed to load whatsapp template: %w", err)
	}

	body, err := Render(text, WhatsAppTemplateName, map[string]any{
		"Name":        contact.Name,
		"OrderNumber": summary.OrderNumber,
		"ItemCount":   summary.ItemCount,
		"Total":       summary.Total.StringFixed(2),
	})
	if err != nil {
		return fmt.Errorf("failed to render whatsapp template: %w", err)
	}

	msg := whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               contact.Phone,
		Type:             "text",
		Text:             whatsAppTextBody{Body: body},
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal whatsapp payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("whatsapp API returned status %d", resp.StatusCode)
	}

	s.logger.Info().
		Str("order_number", summary.OrderNumber).
		Str("to", contact.Phone).
		Msg("order confirmation whatsapp message sent")

	return nil
}
