package main

import (
	"context"

	"devicecode-blink/hal/platform"
	"devicecode-blink/services/boot"
)

func main() {
	svc, err := boot.Boot(platform.Default(), boot.DefaultConfig)
	if err != nil {
		println("[main] boot failed:", err.Error())
		halt()
	}
	println("[main] blinking")
	svc.Run(context.Background())
	halt()
}

// halt parks the core without touching any peripheral.
func halt() {
	for {
	}
}
