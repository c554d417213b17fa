//go:build !tinygo

package irq

import "testing"

func TestFreeScopesCriticalSection(t *testing.T) {
	if Active() {
		t.Fatal("critical section open before Free")
	}
	var kept CS
	Free(func(cs CS) {
		if !Active() {
			t.Fatal("interrupts not suppressed inside Free")
		}
		if !cs.Valid() {
			t.Fatal("token invalid inside Free")
		}
		kept = cs
	})
	if Active() {
		t.Fatal("critical section left open after Free")
	}
	if kept.Valid() {
		t.Fatal("token still valid after Free returned")
	}
	var zero CS
	if zero.Valid() {
		t.Fatal("zero CS must be invalid")
	}
}

func TestFreeNestsAndRestoresOnPanic(t *testing.T) {
	func() {
		defer func() { _ = recover() }()
		Free(func(CS) {
			Free(func(CS) {})
			if !Active() {
				t.Fatal("inner Free closed the outer section")
			}
			panic("boom")
		})
	}()
	if Active() {
		t.Fatal("panic left interrupts suppressed")
	}
}
