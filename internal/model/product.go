package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalogue entry.
type Product struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Category  string          `json:"category" db:"category"`
	ImageURL  *string         `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}
