package blink

import "context"

// DefaultPeriodMs is the time spent in each state.
const DefaultPeriodMs = 1000

type State uint8

const (
	Unlit State = iota
	Lit
)

func (s State) String() string {
	if s == Lit {
		return "lit"
	}
	return "unlit"
}

// Pin is the owned LED output.
type Pin interface {
	SetHigh() error
	SetLow() error
}

// Delayer blocks the caller for a number of milliseconds.
type Delayer interface {
	DelayMs(ms uint32)
}

// Service alternates the LED between lit and unlit, blocking a fixed
// period after each write.
type Service struct {
	led      Pin
	delay    Delayer
	periodMs uint32
	state    State
}

// New takes ownership of led. periodMs==0 selects DefaultPeriodMs.
func New(led Pin, d Delayer, periodMs uint32) *Service {
	if periodMs == 0 {
		periodMs = DefaultPeriodMs
	}
	return &Service{led: led, delay: d, periodMs: periodMs, state: Unlit}
}

func (s *Service) State() State     { return s.state }
func (s *Service) PeriodMs() uint32 { return s.periodMs }

// Step performs one transition and then blocks for the period.
// Pin write errors are discarded.
func (s *Service) Step() {
	switch s.state {
	case Unlit:
		_ = s.led.SetHigh()
		s.state = Lit
	default:
		_ = s.led.SetLow()
		s.state = Unlit
	}
	s.delay.DelayMs(s.periodMs)
}

// Run steps until ctx is cancelled. Firmware passes a context that never
// is, so Run does not return there.
func (s *Service) Run(ctx context.Context) {
	done := ctx.Done()
	for {
		select {
		case <-done:
			return
		default:
		}
		s.Step()
	}
}
