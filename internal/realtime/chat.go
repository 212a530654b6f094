package realtime

import (
	"context"
	"strconv"

	"soundhub/internal/model"
	"soundhub/internal/repository"

	"github.com/rs/zerolog"
)

// Events produced by the chat relay.
const (
	EventReceiveMessage    = "receiveMessage"
	EventUpdateOnlineUsers = "updateOnlineUsers"
	EventUpdateAdminStatus = "updateAdminStatus"
)

// rosterEntry is one row of the online-customer roster sent to admins.
type rosterEntry struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

// messagePayload is the body of a receiveMessage push.
type messagePayload struct {
	FromUserID    int64  `json:"fromUserId"`
	Message       string `json:"message"`
	IsAdminSender bool   `json:"isAdminSender"`
}

// Relay persists chat messages and relays them between customers and the
// shared admin inbox. A customer's message goes to whichever employee holds
// the admin role, not to a specific admin the customer picked.
type Relay struct {
	registry  *Registry
	messages  repository.MessageRepository
	employees repository.EmployeeRepository
	customers repository.CustomerRepository
	notifier  *Notifier
	logger    zerolog.Logger
}

// NewRelay creates a chat relay.
func NewRelay(
	registry *Registry,
	messages repository.MessageRepository,
	employees repository.EmployeeRepository,
	customers repository.CustomerRepository,
	notifier *Notifier,
	logger zerolog.Logger,
) *Relay {
	return &Relay{
		registry:  registry,
		messages:  messages,
		employees: employees,
		customers: customers,
		notifier:  notifier,
		logger:    logger.With().Str("component", "chat").Logger(),
	}
}

// Join registers the actor's session and re-broadcasts presence state.
func (r *Relay) Join(ctx context.Context, actorID int64, isAdmin bool, s Session) {
	kind := KindCustomer
	if isAdmin {
		kind = KindAdmin
	}
	r.registry.Join(kind, formatID(actorID), s)

	r.logger.Debug().
		Int64("actor_id", actorID).
		Str("kind", string(kind)).
		Msg("actor joined")

	r.broadcastPresence(ctx)
}

// Disconnect drops the session from the registry and re-broadcasts presence
// state.
func (r *Relay) Disconnect(ctx context.Context, sessionID string) {
	r.registry.Remove(sessionID)
	r.broadcastPresence(ctx)
}

// SendMessage persists one chat message and relays it to the counterpart.
// Customer-sent messages resolve their receiver to the admin-role employee;
// admin-sent messages go to the addressed customer. The notification
// dispatcher is always triggered afterwards.
func (r *Relay) SendMessage(ctx context.Context, fromID, toID int64, text string, isAdminSender bool) error {
	senderType := model.SenderTypeCustomer
	receiverID := toID

	if isAdminSender {
		senderType = model.SenderTypeAdmin
	} else {
		adminID, err := r.employees.FindAdminID(ctx)
		if err != nil {
			return err
		}
		if adminID == 0 {
			r.logger.Warn().Msg("no admin employee to receive customer message")
			return nil
		}
		receiverID = adminID
	}

	msg := &model.Message{
		SenderType: senderType,
		SenderID:   fromID,
		ReceiverID: receiverID,
		Message:    text,
	}
	if _, err := r.messages.Insert(ctx, msg); err != nil {
		return err
	}

	r.logger.Debug().
		Str("sender_type", senderType).
		Int64("from", fromID).
		Int64("to", receiverID).
		Msg("message relayed")

	payload := messagePayload{FromUserID: fromID, Message: text, IsAdminSender: isAdminSender}
	if isAdminSender {
		if s, ok := r.registry.Lookup(KindCustomer, formatID(receiverID)); ok {
			s.Emit(EventReceiveMessage, payload)
		}
	} else {
		for _, s := range r.registry.Admins() {
			s.Emit(EventReceiveMessage, payload)
		}
	}

	r.notifier.NotifyMessage(ctx, receiverID, fromID, text)

	return nil
}

// broadcastPresence sends the online-customer roster to every admin and the
// admin-presence flag to every online customer.
func (r *Relay) broadcastPresence(ctx context.Context) {
	ids := r.registry.CustomerIDs()
	customerIDs := make([]int64, 0, len(ids))
	for _, id := range ids {
		parsed, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			continue
		}
		customerIDs = append(customerIDs, parsed)
	}

	roster := make([]rosterEntry, 0, len(customerIDs))
	customers, err := r.customers.ListByIDs(ctx, customerIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to load online customer roster")
	} else {
		for _, c := range customers {
			roster = append(roster, rosterEntry{ID: c.ID, FullName: c.FullName})
		}
	}

	for _, s := range r.registry.Admins() {
		s.Emit(EventUpdateOnlineUsers, roster)
	}

	adminOnline := r.registry.AdminOnline()
	for _, s := range r.registry.Customers() {
		s.Emit(EventUpdateAdminStatus, adminOnline)
	}
}
