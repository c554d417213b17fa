//go:build !tinygo

package platform

import (
	"sync"
	"time"

	"devicecode-blink/errcode"
	"devicecode-blink/hal/core"
	"devicecode-blink/hal/irq"
	"devicecode-blink/types"
	"devicecode-blink/x/timex"
)

// ----------------------------- Trace -----------------------------------------

// Event is one recorded peripheral access.
type Event struct {
	Op        string // "rcc.source", "rcc.sysclk", "rcc.freeze", "gpio.mode", "gpio.write"
	Line      int
	Level     types.Level
	AtMs      int64
	InCritSec bool // interrupts were suppressed at the time
}

// Recorder keeps the order of every peripheral access on a Host.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) add(ev Event) {
	ev.InCritSec = irq.Active()
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of the trace.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Index returns the position of the first event with op, or -1.
func (r *Recorder) Index(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, ev := range r.events {
		if ev.Op == op {
			return i
		}
	}
	return -1
}

// ----------------------------- Simulated cycles ------------------------------

type timer struct {
	at time.Duration
	fn func()
}

// SimCycles advances simulated time by the cycles spun at the frozen
// clock frequency.
type SimCycles struct {
	mu     sync.Mutex
	hz     uint32
	now    time.Duration
	cycles uint64
	timers []timer
}

func (s *SimCycles) setHz(hz uint32) {
	s.mu.Lock()
	s.hz = hz
	s.mu.Unlock()
}

func (s *SimCycles) Spin(cycles uint32) {
	s.mu.Lock()
	s.cycles += uint64(cycles)
	s.now = time.Duration(timex.NsFromCycles(s.hz, s.cycles))
	var due []func()
	kept := s.timers[:0]
	for _, t := range s.timers {
		if s.now >= t.at {
			due = append(due, t.fn)
		} else {
			kept = append(kept, t)
		}
	}
	s.timers = kept
	s.mu.Unlock()
	for _, fn := range due {
		fn()
	}
}

// Now is the simulated time since boot.
func (s *SimCycles) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Cycles is the total number of cycles spun.
func (s *SimCycles) Cycles() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycles
}

// AfterFunc runs fn once simulated time reaches d.
func (s *SimCycles) AfterFunc(d time.Duration, fn func()) {
	s.mu.Lock()
	s.timers = append(s.timers, timer{at: d, fn: fn})
	s.mu.Unlock()
}

// ----------------------------- RCC (host) ------------------------------------

// FakeRCC records clock configuration calls.
type FakeRCC struct {
	mu     sync.Mutex
	rec    *Recorder
	sim    *SimCycles
	src    types.ClockSource
	hz     uint32
	frozen bool

	// Effective overrides the frequency Freeze reports (0 => requested).
	Effective uint32
}

func (r *FakeRCC) SelectSource(src types.ClockSource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return &errcode.E{C: errcode.InvalidClock, Op: "rcc", Msg: "frozen"}
	}
	r.src = src
	r.rec.add(Event{Op: "rcc.source", AtMs: r.sim.Now().Milliseconds()})
	return nil
}

func (r *FakeRCC) SetSysclk(hz uint32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return &errcode.E{C: errcode.InvalidClock, Op: "rcc", Msg: "frozen"}
	}
	r.hz = hz
	r.rec.add(Event{Op: "rcc.sysclk", AtMs: r.sim.Now().Milliseconds()})
	return nil
}

func (r *FakeRCC) Freeze() (uint32, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return 0, &errcode.E{C: errcode.InvalidClock, Op: "rcc", Msg: "frozen"}
	}
	hz := r.hz
	if r.Effective != 0 {
		hz = r.Effective
	}
	r.frozen = true
	r.sim.setHz(hz)
	r.rec.add(Event{Op: "rcc.freeze", AtMs: r.sim.Now().Milliseconds()})
	return hz, nil
}

// Source is the oscillator selected before Freeze.
func (r *FakeRCC) Source() types.ClockSource {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src
}

// ----------------------------- GPIO (host) -----------------------------------

// FakePin is one line of a FakePort.
type FakePin struct {
	Mode        core.PinMode
	High        bool
	Transitions []types.Transition
}

// FakePort implements core.Port, recording every mode change and write.
type FakePort struct {
	mu   sync.Mutex
	name string
	rec  *Recorder
	sim  *SimCycles
	pins [16]FakePin

	// WriteErr, when set, is returned by every Write after the level is
	// applied.
	WriteErr error
}

func (p *FakePort) Name() string { return p.name }
func (p *FakePort) Lines() int   { return len(p.pins) }

func (p *FakePort) SetMode(line int, mode core.PinMode) error {
	if line < 0 || line >= len(p.pins) {
		return core.ErrUnknownPin
	}
	p.mu.Lock()
	p.pins[line].Mode = mode
	p.mu.Unlock()
	p.rec.add(Event{Op: "gpio.mode", Line: line, AtMs: p.sim.Now().Milliseconds()})
	return nil
}

func (p *FakePort) Write(line int, high bool) error {
	if line < 0 || line >= len(p.pins) {
		return core.ErrUnknownPin
	}
	at := p.sim.Now().Milliseconds()
	lvl := types.LevelOf(high)
	p.mu.Lock()
	pin := &p.pins[line]
	pin.High = high
	pin.Transitions = append(pin.Transitions, types.Transition{Level: lvl, AtMs: at})
	err := p.WriteErr
	p.mu.Unlock()
	p.rec.add(Event{Op: "gpio.write", Line: line, Level: lvl, AtMs: at})
	return err
}

func (p *FakePort) Read(line int) bool {
	if line < 0 || line >= len(p.pins) {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pins[line].High
}

// Pin returns a snapshot of line.
func (p *FakePort) Pin(line int) FakePin {
	p.mu.Lock()
	defer p.mu.Unlock()
	pin := p.pins[line]
	pin.Transitions = append([]types.Transition(nil), pin.Transitions...)
	return pin
}

// ----------------------------- Source (host) ---------------------------------

// Host is an in-memory board: an RCC, port A and a simulated cycle counter
// sharing one trace.
type Host struct {
	latch core.Latch

	Rec   *Recorder
	Sim   *SimCycles
	RCC   *FakeRCC
	GPIOA *FakePort
}

func NewHost() *Host {
	rec := &Recorder{}
	sim := &SimCycles{}
	return &Host{
		Rec:   rec,
		Sim:   sim,
		RCC:   &FakeRCC{rec: rec, sim: sim},
		GPIOA: &FakePort{name: "A", rec: rec, sim: sim},
	}
}

func (h *Host) Take() (*core.Peripherals, error) {
	return h.latch.Take(func() *core.Peripherals {
		return &core.Peripherals{RCC: h.RCC, GPIOA: h.GPIOA, Cycles: h.Sim}
	})
}

var (
	defaultOnce sync.Once
	defaultHost *Host
)

// Default returns the process-wide host board.
func Default() core.Source {
	defaultOnce.Do(func() { defaultHost = NewHost() })
	return defaultHost
}
