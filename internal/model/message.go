package model

import "time"

// Chat sender kinds.
const (
	SenderTypeCustomer = "customer"
	SenderTypeAdmin    = "admin"
)

// Message is an append-only chat log entry between a customer and the shared
// admin inbox.
type Message struct {
	ID         int64     `json:"id" db:"id"`
	SenderType string    `json:"senderType" db:"sender_type"`
	SenderID   int64     `json:"senderId" db:"sender_id"`
	ReceiverID int64     `json:"receiverId" db:"receiver_id"`
	Message    string    `json:"message" db:"message"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
