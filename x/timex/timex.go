package timex

// CyclesFromMs converts a millisecond duration into core clock cycles.
// Computed in 64 bits: 1000 ms at 48 MHz does not fit the intermediate
// product in 32 bits.
func CyclesFromMs(freqHz, ms uint32) uint64 {
	return uint64(ms) * uint64(freqHz) / 1000
}

// CyclesPerMs returns the cycle count of one millisecond, at least 1.
func CyclesPerMs(freqHz uint32) uint32 {
	n := freqHz / 1000
	if n == 0 {
		return 1
	}
	return n
}

// NsFromCycles converts a cycle count back into nanoseconds.
func NsFromCycles(freqHz uint32, cycles uint64) uint64 {
	if freqHz == 0 {
		return 0
	}
	return cycles * 1_000_000_000 / uint64(freqHz)
}
