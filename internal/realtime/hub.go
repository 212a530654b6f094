package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"soundhub/internal/repository"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Events consumed from clients.
const (
	eventJoin                   = "join"
	eventJoinNotification       = "joinNotification"
	eventSendMessage            = "sendMessage"
	eventMarkAsRead             = "markAsRead"
	eventGetUnreadNotifications = "getUnreadNotifications"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 32
)

// envelope is the wire format in both directions: a named event plus its
// JSON body.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// outEvent is an outbound envelope before marshalling.
type outEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type joinPayload struct {
	UserID  int64 `json:"userId"`
	IsAdmin bool  `json:"isAdmin"`
}

type sendMessagePayload struct {
	ToUserID      int64  `json:"toUserId"`
	FromUserID    int64  `json:"fromUserId"`
	Message       string `json:"message"`
	IsAdminSender bool   `json:"isAdminSender"`
}

type markAsReadPayload struct {
	NotificationID int64 `json:"notificationId"`
}

type getUnreadPayload struct {
	UserID int64 `json:"userId"`
}

// Hub upgrades HTTP requests to websocket sessions and dispatches their
// events to the chat relay and notification layer.
type Hub struct {
	registry      *Registry
	relay         *Relay
	notifications repository.NotificationRepository
	logger        zerolog.Logger
	upgrader      websocket.Upgrader
}

// NewHub creates a websocket hub.
func NewHub(
	registry *Registry,
	relay *Relay,
	notifications repository.NotificationRepository,
	logger zerolog.Logger,
) *Hub {
	return &Hub{
		registry:      registry,
		relay:         relay,
		notifications: notifications,
		logger:        logger.With().Str("component", "hub").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from a separate origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and runs the connection's pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan outEvent, sendBufferSize),
		hub:  h,
	}

	h.logger.Debug().Str("session_id", c.id).Msg("client connected")

	go c.writePump()
	c.readPump()
}

// client is one websocket connection. It satisfies Session; Emit never
// blocks the caller, a full buffer drops the event (best-effort delivery).
type client struct {
	id   string
	conn *websocket.Conn
	send chan outEvent
	hub  *Hub
}

func (c *client) ID() string {
	return c.id
}

func (c *client) Emit(event string, payload any) {
	defer func() {
		// Emit may race a closing connection; losing the event is fine.
		recover()
	}()
	select {
	case c.send <- outEvent{Event: event, Data: payload}:
	default:
		c.hub.logger.Warn().
			Str("session_id", c.id).
			Str("event", event).
			Msg("send buffer full, dropping event")
	}
}

// readPump decodes inbound envelopes and dispatches them until the
// connection drops. Socket events outlive the upgrade request, so database
// work runs on a background context.
func (c *client) readPump() {
	ctx := context.Background()

	defer func() {
		c.hub.relay.Disconnect(ctx, c.id)
		close(c.send)
		c.conn.Close()
		c.hub.logger.Debug().Str("session_id", c.id).Msg("client disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn().Err(err).Str("session_id", c.id).Msg("unexpected close")
			}
			return
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			c.hub.logger.Warn().Err(err).Str("session_id", c.id).Msg("malformed envelope")
			continue
		}

		c.dispatch(ctx, env)
	}
}

func (c *client) dispatch(ctx context.Context, env envelope) {
	switch env.Event {
	case eventJoin:
		var p joinPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.hub.logger.Warn().Err(err).Str("event", env.Event).Msg("bad payload")
			return
		}
		c.hub.relay.Join(ctx, p.UserID, p.IsAdmin, c)

	case eventJoinNotification:
		var p joinPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.hub.logger.Warn().Err(err).Str("event", env.Event).Msg("bad payload")
			return
		}
		kind := KindCustomer
		if p.IsAdmin {
			kind = KindAdmin
		}
		c.hub.registry.Join(kind, formatID(p.UserID), c)

	case eventSendMessage:
		var p sendMessagePayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.hub.logger.Warn().Err(err).Str("event", env.Event).Msg("bad payload")
			return
		}
		if err := c.hub.relay.SendMessage(ctx, p.FromUserID, p.ToUserID, p.Message, p.IsAdminSender); err != nil {
			c.hub.logger.Error().Err(err).Msg("failed to relay message")
		}

	case eventMarkAsRead:
		var p markAsReadPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.hub.logger.Warn().Err(err).Str("event", env.Event).Msg("bad payload")
			return
		}
		if err := c.hub.notifications.MarkRead(ctx, p.NotificationID); err != nil {
			c.hub.logger.Error().Err(err).Int64("notification_id", p.NotificationID).Msg("failed to mark notification read")
		}

	case eventGetUnreadNotifications:
		var p getUnreadPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			c.hub.logger.Warn().Err(err).Str("event", env.Event).Msg("bad payload")
			return
		}
		unread, err := c.hub.notifications.ListUnread(ctx, p.UserID)
		if err != nil {
			c.hub.logger.Error().Err(err).Int64("user_id", p.UserID).Msg("failed to load unread notifications")
			return
		}
		c.Emit(EventUnreadNotifications, unread)

	default:
		c.hub.logger.Warn().Str("event", env.Event).Msg("unknown event")
	}
}

// writePump serialises outbound events and keeps the connection alive with
// pings. It exits when the send channel closes.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(ev); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
