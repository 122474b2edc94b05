package notify

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/rs/zerolog"
)

// Loader defines the interface for loading notification templates by name
// (e.g. "order_confirmed_email.tmpl").
type Loader interface {
	// Load returns the raw template text for the given name.
	Load(ctx context.Context, name string) (string, error)
}

// fileLoader implements Loader over a local template directory.
type fileLoader struct {
	dir    string
	logger zerolog.Logger
}

// NewFileLoader creates a file-system template loader rooted at dir.
func NewFileLoader(dir string, logger zerolog.Logger) Loader {
	return &fileLoader{
		dir:    dir,
		logger: logger.With().Str("component", "template-loader").Logger(),
	}
}

// Load reads a template file from the configured directory.
func (l *fileLoader) Load(ctx context.Context, name string) (string, error) {
	path := filepath.Join(l.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read template file")
		return "", fmt.Errorf("failed to read template file %s: %w", path, err)
	}

	l.logger.Debug().Str("file", path).Int("bytes", len(data)).Msg("template loaded")

	return string(data), nil
}

// Render parses and executes a named template against the given data.
func Render(text, name string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return sb.String(), nil
}

// Built-in fallback templates used when no template source can serve a name.
// Keeps notification delivery working with a bare deployment.
const (
	defaultEmailTemplate = "Hi {{.Name}},\n\n" +
		"Thanks for your order {{.OrderNumber}}.\n" +
		"Items: {{.ItemCount}}\n" +
		"Total: {{.Total}}\n\n" +
		"We will let you know when it ships.\n"

	defaultWhatsAppTemplate = "Hi {{.Name}}! Your order {{.OrderNumber}} " +
		"({{.ItemCount}} items, total {{.Total}}) has been received."
)

// DefaultTemplate returns the built-in template text for a template name.
func DefaultTemplate(name string) string {
	if strings.Contains(name, "whatsapp") {
		return defaultWhatsAppTemplate
	}
	return defaultEmailTemplate
}
