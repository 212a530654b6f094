package model

import "time"

// Customer account statuses.
const (
	CustomerStatusActive = "active"
	CustomerStatusLocked = "locked"
)

// Customer is a shopper account. Created either by explicit registration or
// auto-provisioned during guest checkout with a generated password.
type Customer struct {
	ID           int64     `json:"id" db:"id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	Address      string    `json:"address" db:"address"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// CustomerContact is the contact snapshot embedded in an order request.
type CustomerContact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}
