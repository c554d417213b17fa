// Package gpio hands out exclusive ownership of port lines and turns them
// into push-pull outputs.
package gpio

import (
	"sync"

	"devicecode-blink/errcode"
	"devicecode-blink/hal/core"
	"devicecode-blink/hal/irq"
	"devicecode-blink/types"
)

// Port tracks which owner holds each line of a register block.
type Port struct {
	mu   sync.Mutex
	hw   core.Port
	used map[int]string // line -> owner
}

func NewPort(hw core.Port) *Port {
	return &Port{hw: hw, used: make(map[int]string)}
}

func (p *Port) Name() string { return p.hw.Name() }

// Claim gives owner exclusive use of line. owner must be non-empty.
func (p *Port) Claim(owner string, line int) (*Line, error) {
	if owner == "" {
		return nil, &errcode.E{C: errcode.InvalidParams, Op: "gpio", Msg: "empty owner"}
	}
	if line < 0 || line >= p.hw.Lines() {
		return nil, core.ErrUnknownPin
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, inUse := p.used[line]; inUse {
		return nil, core.ErrPinInUse
	}
	p.used[line] = owner
	return &Line{port: p, n: line, owner: owner}, nil
}

// Release returns line to the pool if owner holds it.
func (p *Port) Release(owner string, line int) {
	p.mu.Lock()
	if cur, ok := p.used[line]; ok && cur == owner {
		delete(p.used, line)
	}
	p.mu.Unlock()
}

// Owner reports who holds line, if anyone.
func (p *Port) Owner(line int) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	o, ok := p.used[line]
	return o, ok
}

// Line is a claimed, not yet configured pin.
type Line struct {
	port  *Port
	n     int
	owner string
	spent bool
}

func (l *Line) Number() int { return l.n }

// IntoPushPullOutput switches the line to push-pull output. The mode write
// must happen inside irq.Free; cs is checked. The Line is consumed: a second
// call fails with PinInUse. The output level is left at its reset value
// (low) and nothing is written to it here.
func (l *Line) IntoPushPullOutput(cs irq.CS) (*Output, error) {
	if !cs.Valid() {
		return nil, &errcode.E{C: errcode.NotInCritical, Op: "gpio"}
	}
	if l.spent {
		return nil, core.ErrPinInUse
	}
	if err := l.port.hw.SetMode(l.n, core.ModeOutputPushPull); err != nil {
		return nil, errcode.Wrap("gpio", err)
	}
	l.spent = true
	return &Output{hw: l.port.hw, n: l.n, level: types.Low}, nil
}

// Output is an owned push-pull pin.
type Output struct {
	hw    core.Port
	n     int
	level types.Level
}

func (o *Output) Number() int { return o.n }

// Level is the last level driven onto the pin.
func (o *Output) Level() types.Level { return o.level }

func (o *Output) SetHigh() error { return o.set(types.High) }
func (o *Output) SetLow() error  { return o.set(types.Low) }

func (o *Output) set(l types.Level) error {
	o.level = l
	return o.hw.Write(o.n, l == types.High)
}
