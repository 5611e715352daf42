package driver

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
)

type countingManager struct {
	ticks atomic.Int32
	err   error
}

func (m *countingManager) Tick(context.Context) error {
	m.ticks.Add(1)
	return m.err
}

func TestDriver_Tick(t *testing.T) {
	tests := map[string]struct {
		firstErr  error
		expErr    string
		expSecond int32
	}{
		"runs every manager": {
			expSecond: 1,
		},
		"stops at the first failure": {
			firstErr:  fmt.Errorf("boom"),
			expErr:    "manager 0: boom",
			expSecond: 0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			first := &countingManager{err: tt.firstErr}
			second := &countingManager{}
			d := NewDriver([]Manager{first, second})

			err := d.Tick(t.Context())

			if tt.expErr == "" && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
			}
			testutil.AssertEqual(t, "first ticks", first.ticks.Load(), int32(1))
			testutil.AssertEqual(t, "second ticks", second.ticks.Load(), tt.expSecond)
		})
	}
}

func TestDriver_Start(t *testing.T) {
	m := &countingManager{}
	d := NewDriver([]Manager{m}, WithTickLength(time.Millisecond))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- d.Start(ctx) }()

	deadline := time.After(5 * time.Second)
	for m.ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatal("driver never ticked")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDriver_StartStopsOnError(t *testing.T) {
	m := &countingManager{err: fmt.Errorf("bad tick")}
	d := NewDriver([]Manager{m}, WithTickLength(time.Millisecond))

	err := d.Start(t.Context())
	testutil.AssertErrorContains(t, err, "bad tick")
}
