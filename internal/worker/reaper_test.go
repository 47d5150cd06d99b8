package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recordingDeleter struct {
	mu      sync.Mutex
	calls   int
	lastAt  time.Time
	failErr error
}

func (d *recordingDeleter) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	d.lastAt = now
	if d.failErr != nil {
		return 0, d.failErr
	}
	return 1, nil
}

func (d *recordingDeleter) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func TestReaperSweepsUntilCancelled(t *testing.T) {
	deleter := &recordingDeleter{}
	reaper := NewReaper(deleter, 5*time.Millisecond, zap.NewNop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reaper.Run(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for deleter.callCount() < 2 {
		select {
		case <-deadline:
			t.Fatal("reaper never swept twice")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop on cancel")
	}
}

func TestReaperUsesInjectedClock(t *testing.T) {
	at := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)
	deleter := &recordingDeleter{}
	reaper := NewReaper(deleter, time.Hour, zap.NewNop(), func() time.Time { return at })

	reaper.sweep(context.Background())

	if !deleter.lastAt.Equal(at) {
		t.Errorf("sweep instant = %v, want %v", deleter.lastAt, at)
	}
}

func TestReaperSurvivesSweepErrors(t *testing.T) {
	deleter := &recordingDeleter{failErr: errors.New("db down")}
	reaper := NewReaper(deleter, time.Hour, zap.NewNop(), nil)

	reaper.sweep(context.Background())
	reaper.sweep(context.Background())

	if deleter.callCount() != 2 {
		t.Errorf("calls = %d, want 2", deleter.callCount())
	}
}
