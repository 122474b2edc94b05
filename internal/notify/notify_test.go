package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSummary() OrderSummary {
	return OrderSummary{
		OrderNumber: "ORD-1693526400000001-7",
		ItemCount:   2,
		Total:       decimal.RequireFromString("160.00"),
	}
}

// staticLoader serves a fixed template body for any name.
type staticLoader struct {
	text string
}

func (l *staticLoader) Load(ctx context.Context, name string) (string, error) {
	return l.text, nil
}

func TestEmailSink_NotifyOrderConfirmed(t *testing.T) {
	logger := zerolog.Nop()

	var received emailMessage
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	loader := &staticLoader{text: DefaultTemplate(EmailTemplateName)}
	sink := NewEmailSink(server.URL, "secret-key", "orders@voltshop.example", loader, logger)

	contact := Contact{Name: "Test Buyer", Email: "buyer1@example.com"}
	err := sink.NotifyOrderConfirmed(context.Background(), contact, testSummary())

	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-key", gotAuth)
	assert.Equal(t, "buyer1@example.com", received.To)
	assert.Equal(t, "orders@voltshop.example", received.From)
	assert.Contains(t, received.Subject, "ORD-1693526400000001-7")
	assert.Contains(t, received.Text, "160.00")
}

func TestEmailSink_ProviderFailure(t *testing.T) {
	logger := zerolog.Nop()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	loader := &staticLoader{text: DefaultTemplate(EmailTemplateName)}
	sink := NewEmailSink(server.URL, "secret-key", "orders@voltshop.example", loader, logger)

	err := sink.NotifyOrderConfirmed(context.Background(), Contact{Email: "buyer1@example.com"}, testSummary())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestEmailSink_NoAddressSkips(t *testing.T) {
	logger := zerolog.Nop()

	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	loader := &staticLoader{text: DefaultTemplate(EmailTemplateName)}
	sink := NewEmailSink(server.URL, "secret-key", "orders@voltshop.example", loader, logger)

	err := sink.NotifyOrderConfirmed(context.Background(), Contact{Name: "No Email"}, testSummary())

	require.NoError(t, err)
	assert.False(t, called, "provider must not be called without an address")
}

func TestWhatsAppSink_NotifyOrderConfirmed(t *testing.T) {
	logger := zerolog.Nop()

	var received whatsAppMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	loader := &staticLoader{text: DefaultTemplate(WhatsAppTemplateName)}
	sink := NewWhatsAppSink(server.URL, "wa-token", loader, logger)

	contact := Contact{Name: "Test Buyer", Phone: "+14155550123"}
	err := sink.NotifyOrderConfirmed(context.Background(), contact, testSummary())

	require.NoError(t, err)
	assert.Equal(t, "whatsapp", received.MessagingProduct)
	assert.Equal(t, "+14155550123", received.To)
	assert.Equal(t, "text", received.Type)
	assert.Contains(t, received.Text.Body, "ORD-1693526400000001-7")
}

func TestWhatsAppSink_NoPhoneSkips(t *testing.T) {
	logger := zerolog.Nop()

	loader := &staticLoader{text: DefaultTemplate(WhatsAppTemplateName)}
	sink := NewWhatsAppSink("http://unused.invalid", "wa-token", loader, logger)

	err := sink.NotifyOrderConfirmed(context.Background(), Contact{Email: "only@example.com"}, testSummary())
	require.NoError(t, err)
}

func TestRender(t *testing.T) {
	out, err := Render("Order {{.OrderNumber}} total {{.Total}}", "t", map[string]any{
		"OrderNumber": "ORD-1",
		"Total":       "160.00",
	})

	require.NoError(t, err)
	assert.Equal(t, "Order ORD-1 total 160.00", out)
}

func TestRender_InvalidTemplate(t *testing.T) {
	_, err := Render("{{.Broken", "t", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template")
}
