//go:build !tinygo

package gpio

import (
	"errors"
	"testing"

	"devicecode-blink/errcode"
	"devicecode-blink/hal/core"
	"devicecode-blink/hal/irq"
	"devicecode-blink/hal/platform"
	"devicecode-blink/types"
)

func TestClaimOwnership(t *testing.T) {
	h := platform.NewHost()
	p := NewPort(h.GPIOA)

	if _, err := p.Claim("led", 5); err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if _, err := p.Claim("other", 5); !errors.Is(err, core.ErrPinInUse) {
		t.Fatalf("second Claim err = %v, want pin_in_use", err)
	}
	if _, err := p.Claim("led", 16); !errors.Is(err, core.ErrUnknownPin) {
		t.Fatalf("Claim(16) err = %v, want unknown_pin", err)
	}
	if owner, ok := p.Owner(5); !ok || owner != "led" {
		t.Fatalf("Owner(5) = %q, %v", owner, ok)
	}

	p.Release("other", 5) // not the owner: no-op
	if _, ok := p.Owner(5); !ok {
		t.Fatal("Release by non-owner freed the line")
	}
	p.Release("led", 5)
	if _, err := p.Claim("other", 5); err != nil {
		t.Fatalf("Claim after Release: %v", err)
	}
}

func TestIntoPushPullOutputInsideCriticalSection(t *testing.T) {
	h := platform.NewHost()
	l, err := NewPort(h.GPIOA).Claim("led", 5)
	if err != nil {
		t.Fatalf("Claim: %v", err)
	}

	var out *Output
	irq.Free(func(cs irq.CS) {
		out, err = l.IntoPushPullOutput(cs)
	})
	if err != nil {
		t.Fatalf("IntoPushPullOutput: %v", err)
	}
	if h.GPIOA.Pin(5).Mode != core.ModeOutputPushPull {
		t.Fatal("line not switched to push-pull output")
	}
	evs := h.Rec.Events()
	if len(evs) != 1 || evs[0].Op != "gpio.mode" || !evs[0].InCritSec {
		t.Fatalf("events = %+v, want one gpio.mode inside a critical section", evs)
	}
	if len(h.GPIOA.Pin(5).Transitions) != 0 {
		t.Fatal("configuration wrote to the pin")
	}
	if out.Number() != 5 || out.Level() != types.Low {
		t.Fatalf("output = line %d level %v", out.Number(), out.Level())
	}

	// The line is consumed.
	irq.Free(func(cs irq.CS) {
		_, err = l.IntoPushPullOutput(cs)
	})
	if !errors.Is(err, core.ErrPinInUse) {
		t.Fatalf("reconfigure err = %v, want pin_in_use", err)
	}
}

func TestIntoPushPullOutputRejectsInvalidToken(t *testing.T) {
	h := platform.NewHost()
	l, _ := NewPort(h.GPIOA).Claim("led", 5)
	_, err := l.IntoPushPullOutput(irq.CS{})
	if errcode.Of(err) != errcode.NotInCritical {
		t.Fatalf("err = %v, want not_in_critical_section", err)
	}
	if h.Rec.Index("gpio.mode") != -1 {
		t.Fatal("mode written outside a critical section")
	}
}

func TestOutputSetHighLow(t *testing.T) {
	h := platform.NewHost()
	l, _ := NewPort(h.GPIOA).Claim("led", 5)
	var out *Output
	irq.Free(func(cs irq.CS) { out, _ = l.IntoPushPullOutput(cs) })

	if err := out.SetHigh(); err != nil {
		t.Fatalf("SetHigh: %v", err)
	}
	if !h.GPIOA.Read(5) || out.Level() != types.High {
		t.Fatal("pin not high")
	}
	if err := out.SetLow(); err != nil {
		t.Fatalf("SetLow: %v", err)
	}
	if h.GPIOA.Read(5) || out.Level() != types.Low {
		t.Fatal("pin not low")
	}

	h.GPIOA.WriteErr = errcode.Error
	if err := out.SetHigh(); !errors.Is(err, errcode.Error) {
		t.Fatalf("SetHigh err = %v, want the port error", err)
	}
}

func TestClaimRejectsEmptyOwner(t *testing.T) {
	h := platform.NewHost()
	p := NewPort(h.GPIOA)
	if _, err := p.Claim("", 5); errcode.Of(err) != errcode.InvalidParams {
		t.Fatalf("Claim(\"\") err = %v, want invalid_params", err)
	}
	if _, ok := p.Owner(5); ok {
		t.Fatal("line recorded for an empty owner")
	}
	if _, err := p.Claim("led", 5); err != nil {
		t.Fatalf("Claim after rejected empty owner: %v", err)
	}
	if _, err := p.Claim("intruder", 5); !errors.Is(err, core.ErrPinInUse) {
		t.Fatalf("second Claim err = %v, want pin_in_use", err)
	}
}
