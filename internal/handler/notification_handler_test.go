package handler

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeWSWriter struct {
	messages []string
}

func (w *fakeWSWriter) WriteMessage(messageType int, data []byte) error {
	w.messages = append(w.messages, string(data))
	return nil
}

func TestForwardNotificationsStopsOnClosedSubscription(t *testing.T) {
	conn := &fakeWSWriter{}
	ch := make(chan *redis.Message)
	close(ch)

	done := make(chan struct{})
	go func() {
		defer close(done)
		forwardNotifications(context.Background(), conn, ch, make(chan struct{}))
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forwarding did not stop after the subscription closed")
	}

	if len(conn.messages) != 0 {
		t.Fatalf("expected no messages written, got %d", len(conn.messages))
	}
}

func TestForwardNotificationsWritesPayloads(t *testing.T) {
	conn := &fakeWSWriter{}
	ch := make(chan *redis.Message, 1)
	ch <- &redis.Message{Payload: `{"title":"Application update"}`}
	close(ch)

	forwardNotifications(context.Background(), conn, ch, make(chan struct{}))

	if len(conn.messages) != 1 {
		t.Fatalf("expected 1 message written, got %d", len(conn.messages))
	}
	if conn.messages[0] != `{"title":"Application update"}` {
		t.Fatalf("unexpected payload: %s", conn.messages[0])
	}
}

func TestForwardNotificationsStopsWhenClientLeaves(t *testing.T) {
	conn := &fakeWSWriter{}
	ch := make(chan *redis.Message)
	clientClosed := make(chan struct{})
	close(clientClosed)

	done := make(chan struct{})
	go func() {
		defer close(done)
		forwardNotifications(context.Background(), conn, ch, clientClosed)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("forwarding did not stop after the client left")
	}
}
