//go:build tinygo && stm32

package platform

import (
	"machine"
	"time"

	"tinygo.org/x/drivers/delay"

	"devicecode-blink/errcode"
	"devicecode-blink/hal/core"
	"devicecode-blink/types"
	"devicecode-blink/x/timex"
)

// -----------------------------------------------------------------------------
// STM32 backend. The TinyGo runtime brings the clock tree up before main, so
// the RCC here records the request and reports what the core actually runs
// at; delays are derived from that figure.
// -----------------------------------------------------------------------------

type stm32RCC struct {
	src    types.ClockSource
	hz     uint32
	frozen bool
}

func (r *stm32RCC) SelectSource(src types.ClockSource) error {
	if r.frozen {
		return &errcode.E{C: errcode.InvalidClock, Op: "rcc", Msg: "frozen"}
	}
	r.src = src
	return nil
}

func (r *stm32RCC) SetSysclk(hz uint32) error {
	if r.frozen {
		return &errcode.E{C: errcode.InvalidClock, Op: "rcc", Msg: "frozen"}
	}
	r.hz = hz
	return nil
}

func (r *stm32RCC) Freeze() (uint32, error) {
	if r.frozen {
		return 0, &errcode.E{C: errcode.InvalidClock, Op: "rcc", Msg: "frozen"}
	}
	r.frozen = true
	got := machine.CPUFrequency()
	if got != r.hz {
		println("[rcc] requested", r.hz, "Hz, core runs at", got, "Hz")
	}
	return got, nil
}

// ---- GPIO port A ----

type stm32PortA struct{}

func (stm32PortA) Name() string { return "A" }
func (stm32PortA) Lines() int   { return 16 }

func (stm32PortA) pin(line int) machine.Pin { return machine.PA0 + machine.Pin(line) }

func (p stm32PortA) SetMode(line int, mode core.PinMode) error {
	if line < 0 || line >= 16 {
		return core.ErrUnknownPin
	}
	switch mode {
	case core.ModeOutputPushPull:
		p.pin(line).Configure(machine.PinConfig{Mode: machine.PinOutput})
	default:
		p.pin(line).Configure(machine.PinConfig{Mode: machine.PinInput})
	}
	return nil
}

func (p stm32PortA) Write(line int, high bool) error {
	if line < 0 || line >= 16 {
		return core.ErrUnknownPin
	}
	p.pin(line).Set(high)
	return nil
}

func (p stm32PortA) Read(line int) bool {
	if line < 0 || line >= 16 {
		return false
	}
	return p.pin(line).Get()
}

// ---- Cycle counter ----

// spinChunk stays under drivers/delay's busy-wait ceiling (0xffffff ns).
const spinChunk = 16 * time.Millisecond

// stm32Cycles spins on the drivers/delay cycle-accurate loop. Full chunks
// reuse a duration computed once; only a trailing partial chunk is
// converted at run time.
type stm32Cycles struct {
	hz    uint32
	chunk uint32 // cycles in spinChunk
}

func newCycles() *stm32Cycles {
	hz := machine.CPUFrequency()
	return &stm32Cycles{hz: hz, chunk: uint32(timex.CyclesFromMs(hz, uint32(spinChunk/time.Millisecond)))}
}

func (c *stm32Cycles) MaxSpin() uint32 { return c.chunk }

var _ core.SpinLimiter = (*stm32Cycles)(nil)

func (c *stm32Cycles) Spin(cycles uint32) {
	if cycles == c.chunk {
		delay.Sleep(spinChunk)
		return
	}
	delay.Sleep(time.Duration(timex.NsFromCycles(c.hz, uint64(cycles))))
}

// ---- Source ----

type stm32Board struct {
	latch core.Latch
}

func (b *stm32Board) Take() (*core.Peripherals, error) {
	return b.latch.Take(func() *core.Peripherals {
		return &core.Peripherals{
			RCC:    &stm32RCC{},
			GPIOA:  stm32PortA{},
			Cycles: newCycles(),
		}
	})
}

var board stm32Board

// Default returns the board's peripheral source.
func Default() core.Source { return &board }
