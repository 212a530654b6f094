package model

import "time"

// Notification types.
const (
	NotificationTypeMessage = "message"
	NotificationTypeOrder   = "order"
)

// Notification is a persisted event for the realtime badge layer. A nil
// ReceiverID means the notification is addressed to all admins; such
// broadcasts share a single read flag.
type Notification struct {
	ID         int64     `json:"id" db:"id"`
	Type       string    `json:"type" db:"type"`
	SenderID   *int64    `json:"senderId,omitempty" db:"sender_id"`
	ReceiverID *int64    `json:"receiverId,omitempty" db:"receiver_id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	IsRead     bool      `json:"isRead" db:"is_read"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
