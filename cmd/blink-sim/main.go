//go:build !tinygo

// blink-sim runs the firmware against the in-memory host board and prints
// the LED transitions it produced.
package main

import (
	"context"
	"time"

	"devicecode-blink/hal/platform"
	"devicecode-blink/services/boot"
)

const simDuration = 10 * time.Second

func main() {
	h := platform.NewHost()
	svc, err := boot.Boot(h, boot.DefaultConfig)
	if err != nil {
		println("[sim] boot failed:", err.Error())
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.Sim.AfterFunc(simDuration, cancel)

	led := boot.DefaultConfig.LED()
	println("[sim] LED on P"+led.Port, led.Line, "running for", simDuration.String(), "simulated")
	svc.Run(ctx)

	for _, tr := range h.GPIOA.Pin(led.Line).Transitions {
		println("[sim]", tr.AtMs, "ms", tr.Level.String())
	}
	println("[sim] cycles spun:", h.Sim.Cycles())
}
