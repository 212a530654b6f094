package realtime

import (
	"context"
	"fmt"
	"strconv"

	"soundhub/internal/model"
	"soundhub/internal/repository"

	"github.com/rs/zerolog"
)

// Events produced by the notification dispatcher.
const (
	EventNewNotification     = "newNotification"
	EventOrderStatusUpdated  = "orderStatusUpdated"
	EventUnreadNotifications = "unreadNotifications"
)

// orderStatusPayload is the body of an orderStatusUpdated push.
type orderStatusPayload struct {
	OrderID     int64  `json:"orderId"`
	OrderStatus string `json:"order_status"`
}

// Notifier persists notification records and pushes them to connected
// recipients through the presence registry. Delivery is best effort and
// at-most-once: recipients not connected at push time miss the push and rely
// on the persisted row via getUnreadNotifications.
type Notifier struct {
	registry      *Registry
	notifications repository.NotificationRepository
	logger        zerolog.Logger
}

// NewNotifier creates a notification dispatcher.
func NewNotifier(registry *Registry, notifications repository.NotificationRepository, logger zerolog.Logger) *Notifier {
	return &Notifier{
		registry:      registry,
		notifications: notifications,
		logger:        logger.With().Str("component", "notifier").Logger(),
	}
}

// NotifyMessage records a message notification and pushes it to every
// connected admin, plus the receiving customer when they are online. All
// admins are notified regardless of who sent the message.
func (n *Notifier) NotifyMessage(ctx context.Context, receiverID, senderID int64, text string) {
	notif := &model.Notification{
		Type:       model.NotificationTypeMessage,
		SenderID:   &senderID,
		ReceiverID: &receiverID,
		Title:      "New message",
		Content:    text,
	}

	if _, err := n.notifications.Insert(ctx, notif); err != nil {
		n.logger.Error().Err(err).Msg("failed to persist message notification")
		return
	}

	for _, s := range n.registry.Admins() {
		s.Emit(EventNewNotification, notif)
	}

	if s, ok := n.registry.Lookup(KindCustomer, formatID(receiverID)); ok {
		s.Emit(EventNewNotification, notif)
	}
}

// NotifyNewOrder records an order notification addressed to all admins (nil
// receiver) and pushes it to every connected admin session.
func (n *Notifier) NotifyNewOrder(ctx context.Context, orderID, customerID int64) {
	notif := &model.Notification{
		Type:     model.NotificationTypeOrder,
		SenderID: &customerID,
		Title:    "New order",
		Content:  fmt.Sprintf("Customer #%d placed order #%d", customerID, orderID),
	}

	if _, err := n.notifications.Insert(ctx, notif); err != nil {
		n.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to persist order notification")
		return
	}

	for _, s := range n.registry.Admins() {
		s.Emit(EventNewNotification, notif)
	}

	n.logger.Debug().
		Int64("order_id", orderID).
		Int64("customer_id", customerID).
		Msg("order notification dispatched")
}

// NotifyOrderStatusChanged records a status-change notification for the
// customer and pushes it to their session when they are online. The row
// persists either way, so an offline customer still sees it on their next
// unread poll.
func (n *Notifier) NotifyOrderStatusChanged(ctx context.Context, orderID, customerID int64, status string) {
	notif := &model.Notification{
		Type:       model.NotificationTypeOrder,
		ReceiverID: &customerID,
		Title:      "Order status updated",
		Content:    fmt.Sprintf("Order #%d is now %s", orderID, status),
	}

	if _, err := n.notifications.Insert(ctx, notif); err != nil {
		n.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to persist status notification")
	}

	s, ok := n.registry.Lookup(KindCustomer, formatID(customerID))
	if !ok {
		n.logger.Debug().
			Int64("customer_id", customerID).
			Msg("customer offline, skipping status push")
		return
	}

	s.Emit(EventOrderStatusUpdated, orderStatusPayload{OrderID: orderID, OrderStatus: status})
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
