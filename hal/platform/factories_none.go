//go:build tinygo && !stm32

package platform

import (
	"devicecode-blink/errcode"
	"devicecode-blink/hal/core"
)

// Boards without a port A have nothing to hand out.
type noBoard struct{}

func (noBoard) Take() (*core.Peripherals, error) {
	return nil, &errcode.E{C: errcode.Unsupported, Op: "platform", Msg: "no port A on this target"}
}

func Default() core.Source { return noBoard{} }
