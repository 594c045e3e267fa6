// services/serial/command.go
package serial

import (
	"keypadcode-go/errcode"
	"keypadcode-go/x/strconvx"
)

// Key class prefixes on the wire. Analog keys are addressed as
// "hkey[N].setting", digital keys as "dkey[N].setting"; the bare prefix
// without an index addresses every key of the class.
const (
	analogPrefix  = "hkey"
	digitalPrefix = "dkey"
)

// Class identifies which key collection a command addresses.
type Class uint8

const (
	ClassAnalog Class = iota
	ClassDigital
)

// Kind tags the parsed command shape. Global and key-scoped matching
// are mutually exclusive: a token containing a '.' is only ever a key
// command, anything else is only ever a global command.
type Kind uint8

const (
	KindGlobal Kind = iota
	KindKey
)

// Command is the parsed form of one input line, produced before any
// dispatch or validation runs.
type Command struct {
	Kind Kind

	// Global command fields.
	Name string

	// Key command fields. Index is zero-based and only meaningful
	// when All is false.
	Class   Class
	All     bool
	Index   int
	Setting string

	// Argument views shared by both shapes.
	Params string
	Arg0   string
}

// Parse normalizes and classifies one raw line. Key-address failures
// (bad index syntax, out-of-range index) drop the whole command here,
// before any validator can run.
func Parse(raw string, analogCount, digitalCount int) (Command, error) {
	ln := Normalize(raw)
	cmd := Command{Params: ln.Params, Arg0: ln.Arg0}

	if ln.Command == "" {
		return cmd, errcode.UnknownCommand
	}

	dot := indexByte(ln.Command, '.')
	if dot < 0 {
		cmd.Kind = KindGlobal
		cmd.Name = ln.Command
		return cmd, nil
	}

	selector, setting := ln.Command[:dot], ln.Command[dot+1:]

	var prefix string
	var count int
	switch {
	case hasPrefix(selector, analogPrefix):
		cmd.Class, prefix, count = ClassAnalog, analogPrefix, analogCount
	case hasPrefix(selector, digitalPrefix):
		cmd.Class, prefix, count = ClassDigital, digitalPrefix, digitalCount
	default:
		return cmd, errcode.UnknownCommand
	}

	cmd.Kind = KindKey
	cmd.Setting = setting

	if len(selector) == len(prefix) {
		cmd.All = true
		return cmd, nil
	}

	// Trailing digits form a 1-based key index.
	v, err := strconvx.ParseUint(selector[len(prefix):])
	if err != nil {
		return cmd, errcode.BadAddress
	}
	// Compare before narrowing: a huge index must not wrap negative.
	if v < 1 || v > uint64(count) {
		return cmd, errcode.KeyOutOfRange
	}
	cmd.Index = int(v) - 1
	return cmd, nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
