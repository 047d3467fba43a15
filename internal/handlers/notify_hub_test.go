// campus-crm/internal/handlers/notify_hub_test.go
package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveEvent(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "send channel closed unexpectedly")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestHubReconnectEvictsOldConnection(t *testing.T) {
	h := NewHub()
	go h.Run()

	first := &Client{hub: h, send: make(chan []byte, 1), userID: 7}
	second := &Client{hub: h, send: make(chan []byte, 1), userID: 7}
	h.register <- first
	h.register <- second

	h.broadcast <- []byte(`{"type":"notice_posted"}`)
	assert.Equal(t, `{"type":"notice_posted"}`, string(receiveEvent(t, second.send)))

	// The evicted connection's channel was closed on re-register, so its
	// write pump shuts down instead of hanging.
	select {
	case _, ok := <-first.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("evicted client's send channel was not closed")
	}
}

func TestHubStaleUnregisterKeepsLiveConnection(t *testing.T) {
	h := NewHub()
	go h.Run()

	first := &Client{hub: h, send: make(chan []byte, 1), userID: 3}
	second := &Client{hub: h, send: make(chan []byte, 1), userID: 3}
	h.register <- first
	h.register <- second

	// The evicted connection's read pump eventually unregisters; the live
	// connection must keep receiving.
	h.unregister <- first
	h.broadcast <- []byte(`{"type":"leave_decided"}`)
	assert.Equal(t, `{"type":"leave_decided"}`, string(receiveEvent(t, second.send)))
}

func TestHubUnregisterClosesOwnConnection(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{hub: h, send: make(chan []byte, 1), userID: 1}
	h.register <- client
	h.unregister <- client

	select {
	case _, ok := <-client.send:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed on unregister")
	}
}
