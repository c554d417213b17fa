package types

// ---- Clock tree ----

// ClockSource names the oscillator feeding SYSCLK.
type ClockSource string

const (
	ClockHSI ClockSource = "hsi" // internal RC oscillator, the reset default
	ClockHSE ClockSource = "hse" // external crystal
)

// ---- Pin levels ----

type Level uint8

const (
	Low Level = iota
	High
)

func (l Level) String() string {
	if l == High {
		return "high"
	}
	return "low"
}

// LevelOf maps a raw pin bit to a Level.
func LevelOf(b bool) Level {
	if b {
		return High
	}
	return Low
}

// ---- Observed output ----

// Transition is one recorded pin write.
type Transition struct {
	Level Level `json:"level"`
	AtMs  int64 `json:"at_ms"` // simulated or wall-clock ms since boot
}

// LEDInfo describes the pin the blinker owns.
type LEDInfo struct {
	Port string `json:"port"`
	Line int    `json:"line"`
}
