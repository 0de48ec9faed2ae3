package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"aula_backend/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBufferSize = 64
)

// IncomingMessage is the frame clients send: an event name plus an opaque
// payload.
type IncomingMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OutgoingMessage mirrors IncomingMessage on the way back out.
type OutgoingMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is one websocket connection. Its identity on the relay is the
// connection id until a register_user event binds a user id to it.
type Client struct {
	ID      string
	Conn    *websocket.Conn
	Send    chan OutgoingMessage
	manager *Manager
}

func NewClient(conn *websocket.Conn, manager *Manager) *Client {
	return &Client{
		ID:      uuid.New().String(),
		Conn:    conn,
		Send:    make(chan OutgoingMessage, sendBufferSize),
		manager: manager,
	}
}

// ReadPump consumes frames until the connection drops, dispatching each one
// in arrival order. It owns unregistration on exit.
func (c *Client) ReadPump() {
	defer func() {
		c.manager.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read error", "conn_id", c.ID, "error", err)
			}
			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			logger.Warn("ws malformed frame dropped", "conn_id", c.ID, "error", err)
			continue
		}
		c.dispatch(msg)
	}
}

func (c *Client) dispatch(msg IncomingMessage) {
	switch {
	case msg.Event == "register_user":
		var payload struct {
			UserID string `json:"user_id"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.UserID == "" {
			logger.Warn("ws register_user without user_id", "conn_id", c.ID)
			return
		}
		c.manager.BindUser(payload.UserID, c)

	case msg.Event == "chat_message":
		c.manager.Broadcast(msg.Event, msg.Data)

	case IsSignalingEvent(msg.Event):
		c.manager.Relay(msg.Event, msg.Data)

	default:
		logger.Debug("ws unknown event ignored", "conn_id", c.ID, "event", msg.Event)
	}
}

// WritePump drains the send buffer onto the wire and keeps the connection
// alive with pings. It exits when Unregister closes the channel.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
