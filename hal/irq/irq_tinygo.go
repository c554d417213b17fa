//go:build tinygo

package irq

import "runtime/interrupt"

func disable() interrupt.State { return interrupt.Disable() }

func restore(st interrupt.State) { interrupt.Restore(st) }
