package model

import "time"

// Customer is a buyer record. Guest customers are created transparently at
// checkout from an email address and carry no credentials.
type Customer struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FirstName string    `json:"firstName,omitempty" db:"first_name"`
	LastName  string    `json:"lastName,omitempty" db:"last_name"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	Guest     bool      `json:"guest" db:"guest"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
