package core

import "devicecode-blink/types"

// ---- Clock tree ----

// RCC is the reset-and-clock-control block. Calls are made once, in order:
// SelectSource, SetSysclk, Freeze.
type RCC interface {
	SelectSource(src types.ClockSource) error
	SetSysclk(hz uint32) error
	// Freeze locks the tree and reports the effective SYSCLK in Hz.
	Freeze() (uint32, error)
}

// ---- GPIO ----

type PinMode uint8

const (
	ModeInput PinMode = iota // reset state
	ModeOutputPushPull
)

// Port is one GPIO register block (e.g. port A, lines 0..15).
type Port interface {
	Name() string
	Lines() int
	SetMode(line int, mode PinMode) error
	Write(line int, high bool) error
	Read(line int) bool
}

// ---- Busy-wait ----

// CycleCounter burns core clock cycles. Spin blocks the caller; it never
// yields to a scheduler.
type CycleCounter interface {
	Spin(cycles uint32)
}

// SpinLimiter is implemented by counters that prefer long spins. MaxSpin is
// the largest cycle count one Spin call should be given; 0 means no
// preference.
type SpinLimiter interface {
	MaxSpin() uint32
}

// ---- Peripheral singleton ----

// Peripherals is the hardware handed out once per process.
type Peripherals struct {
	RCC    RCC
	GPIOA  Port
	Cycles CycleCounter
}

// Source hands out Peripherals. Only the first Take succeeds.
type Source interface {
	Take() (*Peripherals, error)
}
