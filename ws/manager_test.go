package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(m *Manager) *Client {
	c := NewClient(nil, m)
	m.Register(c)
	return c
}

func receive(t *testing.T, c *Client) OutgoingMessage {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	default:
		t.Fatal("expected a message, got none")
		return OutgoingMessage{}
	}
}

func assertEmpty(t *testing.T, c *Client) {
	t.Helper()
	select {
	case msg := <-c.Send:
		t.Fatalf("expected no message, got %s", msg.Event)
	default:
	}
}

func payload(t *testing.T, fields map[string]string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(fields)
	require.NoError(t, err)
	return raw
}

func TestRelayToRegisteredUser(t *testing.T) {
	m := NewManager()
	caller := newTestClient(m)
	callee := newTestClient(m)
	m.BindUser("user-a", caller)
	m.BindUser("user-b", callee)

	data := payload(t, map[string]string{"to": "user-b", "from": "user-a", "sdp": "offer"})
	m.Relay("webrtc_offer", data)

	msg := receive(t, callee)
	assert.Equal(t, "webrtc_offer", msg.Event)
	assert.JSONEq(t, string(data), string(msg.Data))
	assertEmpty(t, caller)
}

func TestRelayToRawConnectionID(t *testing.T) {
	m := NewManager()
	callee := newTestClient(m)

	m.Relay("call_request", payload(t, map[string]string{"to": callee.ID}))

	msg := receive(t, callee)
	assert.Equal(t, "call_request", msg.Event)
}

func TestRelayUnknownTargetIsDropped(t *testing.T) {
	m := NewManager()
	bystander := newTestClient(m)

	m.Relay("call_request", payload(t, map[string]string{"to": "nobody"}))
	m.Relay("call_response", json.RawMessage(`{"accepted":true}`)) // no target at all

	assertEmpty(t, bystander)
}

func TestReRegistrationLastWins(t *testing.T) {
	m := NewManager()
	first := newTestClient(m)
	second := newTestClient(m)
	m.BindUser("user-a", first)
	m.BindUser("user-a", second)

	m.Relay("call_request", payload(t, map[string]string{"to": "user-a"}))
	receive(t, second)
	assertEmpty(t, first)

	// The stale connection leaving must not evict the newer registration.
	m.Unregister(first)
	assert.True(t, m.IsUserRegistered("user-a"))

	m.Relay("call_request", payload(t, map[string]string{"to": "user-a"}))
	receive(t, second)
}

func TestUnregisterClearsUserMappings(t *testing.T) {
	m := NewManager()
	client := newTestClient(m)
	m.BindUser("user-a", client)
	m.BindUser("user-b", client)

	m.Unregister(client)

	assert.False(t, m.IsUserRegistered("user-a"))
	assert.False(t, m.IsUserRegistered("user-b"))
	assert.Equal(t, 0, m.ClientCount())

	// Unregistering twice is harmless.
	m.Unregister(client)
}

func TestRelayPreservesOrder(t *testing.T) {
	m := NewManager()
	callee := newTestClient(m)
	m.BindUser("user-b", callee)

	for i := 0; i < 5; i++ {
		m.Relay("webrtc_ice_candidate", payload(t, map[string]string{
			"to":        "user-b",
			"candidate": fmt.Sprintf("cand-%d", i),
		}))
	}

	for i := 0; i < 5; i++ {
		msg := receive(t, callee)
		var body struct {
			Candidate string `json:"candidate"`
		}
		require.NoError(t, json.Unmarshal(msg.Data, &body))
		assert.Equal(t, fmt.Sprintf("cand-%d", i), body.Candidate)
	}
}

func TestBroadcastReachesEveryone(t *testing.T) {
	m := NewManager()
	a := newTestClient(m)
	b := newTestClient(m)
	c := newTestClient(m)

	data := json.RawMessage(`{"text":"hi"}`)
	m.Broadcast("chat_message", data)

	for _, client := range []*Client{a, b, c} {
		msg := receive(t, client)
		assert.Equal(t, "chat_message", msg.Event)
		assert.JSONEq(t, string(data), string(msg.Data))
	}
}

func TestRelayDuringDisconnect(t *testing.T) {
	m := NewManager()
	data := payload(t, map[string]string{"to": "victim"})

	stop := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					m.Relay("call_request", data)
				}
			}
		}()
	}

	// Churn connections for the target user while relays are in flight.
	// A send must never hit a closed channel.
	for i := 0; i < 2000; i++ {
		client := NewClient(nil, m)
		m.Register(client)
		m.BindUser("victim", client)
		m.Unregister(client)
	}

	close(stop)
	wg.Wait()
	assert.Equal(t, 0, m.ClientCount())
}

func TestFullSendBufferDropsInsteadOfBlocking(t *testing.T) {
	m := NewManager()
	callee := newTestClient(m)
	m.BindUser("user-b", callee)

	data := payload(t, map[string]string{"to": "user-b"})
	for i := 0; i < sendBufferSize+10; i++ {
		m.Relay("webrtc_ice_candidate", data)
	}

	assert.Len(t, callee.Send, sendBufferSize)
}
