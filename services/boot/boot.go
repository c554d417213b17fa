// Package boot brings the board up in order: peripherals, clock, LED pin,
// delay, then the blink service.
package boot

import (
	"devicecode-blink/errcode"
	"devicecode-blink/hal/clock"
	"devicecode-blink/hal/core"
	"devicecode-blink/hal/delay"
	"devicecode-blink/hal/gpio"
	"devicecode-blink/hal/irq"
	"devicecode-blink/services/blink"
	"devicecode-blink/types"
)

type Config struct {
	Clock    clock.Config
	Port     string // only "A" is wired
	Line     int
	Owner    string
	PeriodMs uint32
}

// LED describes the pin cfg drives.
func (cfg Config) LED() types.LEDInfo {
	return types.LEDInfo{Port: cfg.Port, Line: cfg.Line}
}

// DefaultConfig is the board plan: HSI at 8 MHz, LED on PA5, 1 s period.
var DefaultConfig = Config{
	Clock:    clock.Config{Source: types.ClockHSI, SysclkHz: clock.DefaultSysclkHz},
	Port:     "A",
	Line:     5,
	Owner:    "led",
	PeriodMs: blink.DefaultPeriodMs,
}

// Boot takes the peripherals and returns a ready blink service. On error
// no pin has been written.
func Boot(src core.Source, cfg Config) (*blink.Service, error) {
	p, err := src.Take()
	if err != nil {
		return nil, errcode.Wrap("take", err)
	}

	clk, err := clock.Configure(p.RCC, cfg.Clock)
	if err != nil {
		return nil, err
	}
	println("[boot] sysclk", clk.Hz(), "Hz from", string(clk.Source()))

	if cfg.Port != p.GPIOA.Name() {
		return nil, &errcode.E{C: errcode.UnknownPort, Op: "gpio", Msg: "port " + cfg.Port}
	}
	line, err := gpio.NewPort(p.GPIOA).Claim(cfg.Owner, cfg.Line)
	if err != nil {
		return nil, errcode.Wrap("gpio", err)
	}
	var led *gpio.Output
	irq.Free(func(cs irq.CS) {
		led, err = line.IntoPushPullOutput(cs)
	})
	if err != nil {
		return nil, err
	}
	info := cfg.LED()
	println("[boot] P"+info.Port, info.Line, "push-pull output")

	d, err := delay.New(clk, p.Cycles)
	if err != nil {
		return nil, err
	}
	return blink.New(led, d, cfg.PeriodMs), nil
}
