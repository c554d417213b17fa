package blink

import (
	"context"
	"errors"
	"testing"
)

type write struct {
	high bool
	at   uint64
}

type fakeBoard struct {
	now    uint64 // ms
	writes []write
	err    error
}

func (b *fakeBoard) SetHigh() error {
	b.writes = append(b.writes, write{true, b.now})
	return b.err
}

func (b *fakeBoard) SetLow() error {
	b.writes = append(b.writes, write{false, b.now})
	return b.err
}

func (b *fakeBoard) DelayMs(ms uint32) { b.now += uint64(ms) }

func TestStepAlternatesStartingHigh(t *testing.T) {
	b := &fakeBoard{}
	s := New(b, b, 0)
	if s.PeriodMs() != DefaultPeriodMs || s.State() != Unlit {
		t.Fatalf("new service: period %d state %v", s.PeriodMs(), s.State())
	}
	for i := 0; i < 6; i++ {
		s.Step()
	}
	if len(b.writes) != 6 {
		t.Fatalf("writes = %d, want 6", len(b.writes))
	}
	for i, w := range b.writes {
		if w.high != (i%2 == 0) {
			t.Fatalf("write %d high=%v breaks alternation: %+v", i, w.high, b.writes)
		}
		if w.at != uint64(i)*DefaultPeriodMs {
			t.Fatalf("write %d at %d ms, want %d", i, w.at, uint64(i)*DefaultPeriodMs)
		}
	}
	if s.State() != Unlit {
		t.Fatalf("state after even steps = %v", s.State())
	}
}

func TestStepIgnoresPinErrors(t *testing.T) {
	b := &fakeBoard{err: errors.New("io")}
	s := New(b, b, 250)
	s.Step()
	s.Step()
	if len(b.writes) != 2 || b.now != 500 {
		t.Fatalf("writes=%d now=%d, want 2 writes over 500 ms", len(b.writes), b.now)
	}
	if s.State() != Unlit {
		t.Fatalf("state = %v", s.State())
	}
}

// cancelAfter cancels once the fake clock reaches a deadline.
type cancelAfter struct {
	*fakeBoard
	deadline uint64
	cancel   context.CancelFunc
}

func (c cancelAfter) DelayMs(ms uint32) {
	c.fakeBoard.DelayMs(ms)
	if c.now >= c.deadline {
		c.cancel()
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := &fakeBoard{}
	s := New(b, cancelAfter{fakeBoard: b, deadline: 10_000, cancel: cancel}, 0)
	s.Run(ctx)

	if len(b.writes) != 10 {
		t.Fatalf("writes in 10 s = %d, want 10 (5 cycles)", len(b.writes))
	}
}

func TestStateString(t *testing.T) {
	if Lit.String() != "lit" || Unlit.String() != "unlit" {
		t.Fatal("State.String mapping incorrect")
	}
}
