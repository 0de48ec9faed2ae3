package ws

import (
	"encoding/json"
	"sync"

	"aula_backend/internal/logger"
)

// Signaling events relayed verbatim between two parties. The payload is
// never inspected beyond the "to" field.
var signalingEvents = map[string]bool{
	"call_request":         true,
	"call_response":        true,
	"webrtc_offer":         true,
	"webrtc_answer":        true,
	"webrtc_ice_candidate": true,
}

// IsSignalingEvent reports whether event is one of the relayed call-setup
// events.
func IsSignalingEvent(event string) bool {
	return signalingEvents[event]
}

// Manager owns the relay state: every open connection plus the mapping from
// a logical user id to its current connection. All state is in memory and
// lost on restart; registrations are last-register-wins.
//
// One coarse lock covers both maps. Mutations come from connection read
// loops, which each dispatch sequentially, so per-connection event order is
// preserved end to end.
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*Client // connection id -> client
	users   map[string]string  // user id -> connection id
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]*Client),
		users:   make(map[string]string),
	}
}

// Register adds a freshly upgraded connection.
func (m *Manager) Register(client *Client) {
	m.mu.Lock()
	m.clients[client.ID] = client
	total := len(m.clients)
	m.mu.Unlock()

	logger.Debug("ws client connected", "conn_id", client.ID, "total", total)
}

// Unregister drops the connection and every user registration that points
// at it. A user who re-registered on a newer connection keeps that newer
// mapping.
func (m *Manager) Unregister(client *Client) {
	m.mu.Lock()
	if _, ok := m.clients[client.ID]; ok {
		delete(m.clients, client.ID)
		close(client.Send)
	}
	for userID, connID := range m.users {
		if connID == client.ID {
			delete(m.users, userID)
			logger.Debug("ws user mapping cleared", "user_id", userID, "conn_id", client.ID)
		}
	}
	m.mu.Unlock()
}

// BindUser maps a logical user id to the client's connection, replacing any
// prior mapping for that user.
func (m *Manager) BindUser(userID string, client *Client) {
	if userID == "" {
		return
	}

	m.mu.Lock()
	m.users[userID] = client.ID
	m.mu.Unlock()

	logger.Debug("ws user registered", "user_id", userID, "conn_id", client.ID)
}

// Relay forwards a signaling payload to the party named by the "to" field.
// Resolution order: registered user id, then raw connection id. An
// unresolvable target is logged and dropped; the sender is never told.
//
// Delivery happens under the read lock. Unregister closes Send under the
// write lock, so a send can never race the close.
func (m *Manager) Relay(event string, data json.RawMessage) {
	var envelope struct {
		To string `json:"to"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || envelope.To == "" {
		return // missing target: silent drop
	}

	m.mu.RLock()
	target, ok := m.clients[m.users[envelope.To]]
	if !ok {
		target, ok = m.clients[envelope.To]
	}
	if ok {
		m.deliver(target, event, data)
	}
	m.mu.RUnlock()

	if !ok {
		logger.Warn("ws relay target not connected, dropping", "event", event, "to", envelope.To)
	}
}

// Broadcast sends an event to every open connection.
func (m *Manager) Broadcast(event string, data json.RawMessage) {
	m.mu.RLock()
	for _, client := range m.clients {
		m.deliver(client, event, data)
	}
	m.mu.RUnlock()
}

// IsUserRegistered reports whether a user id currently maps to an open
// connection.
func (m *Manager) IsUserRegistered(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.clients[m.users[userID]]
	return ok
}

// ClientCount returns the number of open connections.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// deliver is fire-and-forget: a client whose send buffer is full loses the
// message rather than blocking the relay. Callers must hold m.mu.
func (m *Manager) deliver(client *Client, event string, data json.RawMessage) {
	select {
	case client.Send <- OutgoingMessage{Event: event, Data: data}:
	default:
		logger.Warn("ws send buffer full, dropping message", "conn_id", client.ID, "event", event)
	}
}
