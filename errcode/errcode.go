package errcode

// Code is a stable, short error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK    Code = "ok"
	Error Code = "error" // generic fallback

	InvalidParams    Code = "invalid_params"

	PeripheralsTaken Code = "peripherals_taken"
	InvalidClock     Code = "invalid_clock"
	ClockNotReady    Code = "clock_not_ready"
	UnknownPort      Code = "unknown_port"
	UnknownPin       Code = "unknown_pin"
	PinInUse         Code = "pin_in_use"
	NotInCritical    Code = "not_in_critical_section"
	Unsupported      Code = "unsupported"
)

// E keeps context and a cause alongside a Code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap attaches an operation name to err, keeping its Code.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: Of(err), Op: op, Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
