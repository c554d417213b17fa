// Package delay implements a blocking, cycle-counted wait.
package delay

import (
	"devicecode-blink/errcode"
	"devicecode-blink/hal/clock"
	"devicecode-blink/hal/core"
	"devicecode-blink/x/timex"
)

// Delay converts durations into core cycles using the frozen clock and
// spins them away on a CycleCounter.
type Delay struct {
	hz    uint32
	chunk uint32 // cycles per Spin call
	cc    core.CycleCounter
}

// New sizes spins from cc's MaxSpin when it has one, otherwise one
// millisecond of cycles per call.
func New(clk clock.Frozen, cc core.CycleCounter) (*Delay, error) {
	if !clk.Ready() {
		return nil, &errcode.E{C: errcode.ClockNotReady, Op: "delay"}
	}
	chunk := timex.CyclesPerMs(clk.Hz())
	if l, ok := cc.(core.SpinLimiter); ok {
		if n := l.MaxSpin(); n > 0 {
			chunk = n
		}
	}
	return &Delay{hz: clk.Hz(), chunk: chunk, cc: cc}, nil
}

// Chunk is the largest cycle count passed to a single Spin.
func (d *Delay) Chunk() uint32 { return d.chunk }

// DelayMs blocks for ms milliseconds.
func (d *Delay) DelayMs(ms uint32) {
	d.DelayCycles(timex.CyclesFromMs(d.hz, ms))
}

// DelayCycles counts n cycles down to zero.
func (d *Delay) DelayCycles(n uint64) {
	for n > 0 {
		step := d.chunk
		if n < uint64(step) {
			step = uint32(n)
		}
		d.cc.Spin(step)
		n -= uint64(step)
	}
}
