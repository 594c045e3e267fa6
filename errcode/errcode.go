package errcode

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK              Code = "ok"
	UnknownCommand  Code = "unknown_command"
	UnknownSetting  Code = "unknown_setting"
	BadAddress      Code = "bad_address"
	KeyOutOfRange   Code = "key_out_of_range"
	InvalidParams   Code = "invalid_params"
	ValueOutOfRange Code = "value_out_of_range"
	NameLength      Code = "name_length"

	BadMagic    Code = "bad_magic"
	BadLayout   Code = "bad_layout"
	BadChecksum Code = "bad_checksum"
	ShortBlob   Code = "short_blob"
	FlashFailed Code = "flash_failed"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

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
