package messaging

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNatsServer_NotStarted(t *testing.T) {
	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Publish("player-bob", []byte("hi")); !errors.Is(err, ErrNotStarted) {
		t.Errorf("publish: expected ErrNotStarted, got %v", err)
	}
	if _, err := s.Subscribe("player-bob", func([]byte) {}); !errors.Is(err, ErrNotStarted) {
		t.Errorf("subscribe: expected ErrNotStarted, got %v", err)
	}
}

func TestNatsServer_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("starts an embedded nats server")
	}

	s, err := NewNatsServer(WithPort(-1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	defer func() {
		cancel()
		<-done
	}()

	select {
	case <-s.Ready():
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("server never became ready")
	}

	got := make(chan string, 1)
	unsub, err := s.Subscribe("player-bob", func(data []byte) {
		got <- string(data)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer unsub()

	if err := s.Flush(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Publish("player-alice", []byte("not yours")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Publish("player-bob", []byte("a bite!")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case msg := <-got:
		if msg != "a bite!" {
			t.Errorf("expected %q, got %q", "a bite!", msg)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("message never arrived")
	}
}
