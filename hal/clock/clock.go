// Package clock configures the system clock tree once at boot.
package clock

import (
	"devicecode-blink/errcode"
	"devicecode-blink/hal/core"
	"devicecode-blink/types"
)

// MaxSysclkHz is the highest SYSCLK the part is rated for.
const MaxSysclkHz = 48_000_000

// DefaultSysclkHz is the HSI frequency out of reset.
const DefaultSysclkHz = 8_000_000

type Config struct {
	Source   types.ClockSource
	SysclkHz uint32
}

// Frozen is the clock configuration after the tree is locked. It never
// changes afterwards.
type Frozen struct {
	source types.ClockSource
	hz     uint32
}

func (f Frozen) Source() types.ClockSource { return f.source }
func (f Frozen) Hz() uint32                { return f.hz }

// Ready reports whether f came from a successful Configure.
func (f Frozen) Ready() bool { return f.hz != 0 }

// Configure selects the oscillator, requests SYSCLK and freezes the tree.
// The returned Frozen carries the frequency the hardware reports, which is
// what delays must be computed from.
func Configure(rcc core.RCC, cfg Config) (Frozen, error) {
	if cfg.SysclkHz == 0 || cfg.SysclkHz > MaxSysclkHz {
		return Frozen{}, &errcode.E{C: errcode.InvalidClock, Op: "clock", Msg: "sysclk out of range"}
	}
	if cfg.Source == "" {
		cfg.Source = types.ClockHSI
	}
	if err := rcc.SelectSource(cfg.Source); err != nil {
		return Frozen{}, errcode.Wrap("clock", err)
	}
	if err := rcc.SetSysclk(cfg.SysclkHz); err != nil {
		return Frozen{}, errcode.Wrap("clock", err)
	}
	hz, err := rcc.Freeze()
	if err != nil {
		return Frozen{}, errcode.Wrap("clock", err)
	}
	if hz == 0 {
		return Frozen{}, &errcode.E{C: errcode.InvalidClock, Op: "clock", Msg: "rcc reported 0 Hz"}
	}
	return Frozen{source: cfg.Source, hz: hz}, nil
}
