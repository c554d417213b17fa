// Package irq provides a scoped critical section.
package irq

// CS is proof that the holder runs with interrupts suppressed. Only Free
// hands out a valid CS.
type CS struct {
	live *bool
}

// Valid reports whether cs came from an enclosing Free call that is still
// running.
func (cs CS) Valid() bool { return cs.live != nil && *cs.live }

// Free runs fn with interrupts disabled and restores the previous state on
// every exit path, panics included.
func Free(fn func(cs CS)) {
	st := disable()
	live := true
	defer func() {
		live = false
		restore(st)
	}()
	fn(CS{live: &live})
}
