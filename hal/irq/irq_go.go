//go:build !tinygo

package irq

import "sync/atomic"

// state is the nesting depth before disable, for host builds.
type state int32

var depth atomic.Int32

func disable() state { return state(depth.Add(1) - 1) }

func restore(st state) { depth.Store(int32(st)) }

// Active reports whether a critical section is open (host builds only).
func Active() bool { return depth.Load() > 0 }
