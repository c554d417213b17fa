package core

import (
	"sync/atomic"

	"devicecode-blink/errcode"
)

// Short error codes
var (
	ErrTaken      error = errcode.PeripheralsTaken
	ErrUnknownPin error = errcode.UnknownPin
	ErrPinInUse   error = errcode.PinInUse
)

// Latch makes a Source hand out its Peripherals at most once.
type Latch struct {
	taken atomic.Bool
}

// Take runs build on the first call and fails with ErrTaken afterwards.
func (l *Latch) Take(build func() *Peripherals) (*Peripherals, error) {
	if !l.taken.CompareAndSwap(false, true) {
		return nil, ErrTaken
	}
	return build(), nil
}

// Taken reports whether the peripherals have been handed out.
func (l *Latch) Taken() bool { return l.taken.Load() }
