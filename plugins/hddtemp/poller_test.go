package hddtemp

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type recordingSink struct {
	name string
	err  error

	mu    sync.Mutex
	snaps []Snapshot
}

func (s *recordingSink) Name() string {
	return s.name
}

func (s *recordingSink) Publish(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = append(s.snaps, snap)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.snaps)
}

func TestPollOnce(t *testing.T) {
	daemon := startFakeDaemon(t, sampleResponse)
	failing := &recordingSink{name: "failing", err: errors.New("boom")}
	ok := &recordingSink{name: "ok"}

	at := time.Unix(1700000000, 0)
	poller := NewPoller(newTestClient(t, daemon.addr()), time.Minute, failing, ok)
	poller.now = func() time.Time { return at }

	if err := poller.PollOnce(context.Background()); err != nil {
		t.Fatalf("PollOnce: %v", err)
	}
	if failing.count() != 1 || ok.count() != 1 {
		t.Fatalf("expected both sinks to receive the snapshot, got %d and %d", failing.count(), ok.count())
	}

	snap := ok.snaps[0]
	if snap.Raw != sampleResponse {
		t.Fatalf("unexpected raw: %q", snap.Raw)
	}
	if len(snap.Devices) != 3 {
		t.Fatalf("expected 3 devices, got %d", len(snap.Devices))
	}
	if !snap.At.Equal(at) {
		t.Fatalf("unexpected timestamp: %v", snap.At)
	}
}

func TestPollOnceFetchError(t *testing.T) {
	sink := &recordingSink{name: "sink"}
	poller := NewPoller(newTestClient(t, closedAddr(t)), time.Minute, sink)

	err := poller.PollOnce(context.Background())
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if sink.count() != 0 {
		t.Fatalf("sink should not be called on fetch failure")
	}
}

func TestPollOnceMalformed(t *testing.T) {
	daemon := startFakeDaemon(t, "no envelope")
	sink := &recordingSink{name: "sink"}
	poller := NewPoller(newTestClient(t, daemon.addr()), time.Minute, sink)

	if err := poller.PollOnce(context.Background()); !errors.Is(err, ErrMissingStartDelimiter) {
		t.Fatalf("expected ErrMissingStartDelimiter, got %v", err)
	}
	if sink.count() != 0 {
		t.Fatalf("sink should not be called on parse failure")
	}
}

func TestRunPollsImmediately(t *testing.T) {
	daemon := startFakeDaemon(t, sampleResponse)
	sink := &recordingSink{name: "sink"}
	poller := NewPoller(newTestClient(t, daemon.addr()), time.Hour, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- poller.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for sink.count() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("poller did not publish")
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not stop after cancel")
	}
}

func TestRunWithoutSinks(t *testing.T) {
	poller := NewPoller(newTestClient(t, closedAddr(t)), time.Second)
	if err := poller.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
