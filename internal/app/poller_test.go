package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/receipt/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
		{"overflowing shift capped", 100, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	// Verify that backoff never exceeds maxBackoff regardless of input
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 70; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff || got <= 0 {
			t.Errorf("calculateBackoff(%d, %v) = %v, outside (0, %v]", failures, baseInterval, got, maxBackoff)
		}
	}
}

type fakePinger struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (p *fakePinger) Ping(ctx context.Context) error {
	p.calls.Add(1)
	if p.fail.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func TestStartPoller_RecordsHealth(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store := state.NewStore(5)
	pinger := &fakePinger{}
	pinger.fail.Store(true)

	StartPoller(ctx, store, pinger, 5*time.Millisecond, nil)

	deadline := time.Now().Add(2 * time.Second)
	for !store.Snapshot().Health.IsOffline() {
		if time.Now().After(deadline) {
			t.Fatalf("store never went offline; health = %#v", store.Snapshot().Health)
		}
		time.Sleep(time.Millisecond)
	}

	pinger.fail.Store(false)
	deadline = time.Now().Add(2 * time.Second)
	for store.Snapshot().Health.ConsecutiveFailures != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("store never recovered; health = %#v", store.Snapshot().Health)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestStartPoller_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pinger := &fakePinger{}

	StartPoller(ctx, state.NewStore(1), pinger, time.Millisecond, nil)
	for pinger.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	cancel()
	time.Sleep(20 * time.Millisecond)
	settled := pinger.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if got := pinger.calls.Load(); got != settled {
		t.Fatalf("poller kept probing after cancel: %d -> %d", settled, got)
	}
}
