// services/serial/dispatch.go
package serial

import (
	"io"

	"keypadcode-go/errcode"
	"keypadcode-go/types"
)

// Keypad is the live-state collaborator behind the `out` command. The
// values it reports come from the running sampler, not from Config.
type Keypad interface {
	LiveState(index int) (raw, mapped uint16)
	SetStreaming(on bool)
}

// Saver persists the full Config when `save` arrives. Failure handling
// belongs to the collaborator; the wire protocol stays silent.
type Saver interface {
	Save(cfg *types.Config) error
}

type handlerFunc func(d *Dispatcher, cmd Command) error

// Dispatcher routes parsed commands to the global command table or to
// the key-scoped validators. It is the single writer of cfg: one line
// is handled to completion before the next begins.
type Dispatcher struct {
	cfg    *types.Config
	keypad Keypad
	store  Saver
	boot   func()
	w      io.Writer

	global map[string]handlerFunc
	debug  bool
}

// Option adjusts dispatcher construction.
type Option func(*Dispatcher)

// WithDebug registers the debug-only commands (`echo`) and marks the
// reported firmware version with a -dev suffix. The command table is
// built at wiring time, so one binary can carry both configurations.
func WithDebug() Option {
	return func(d *Dispatcher) {
		d.debug = true
		d.global["echo"] = (*Dispatcher).handleEcho
	}
}

// New builds a dispatcher over the shared Config. Replies are written
// to w as single lines.
func New(cfg *types.Config, keypad Keypad, store Saver, boot func(), w io.Writer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:    cfg,
		keypad: keypad,
		store:  store,
		boot:   boot,
		w:      w,
		global: map[string]handlerFunc{
			"boot": (*Dispatcher).handleBoot,
			"save": (*Dispatcher).handleSave,
			"get":  (*Dispatcher).handleGet,
			"name": (*Dispatcher).handleName,
			"out":  (*Dispatcher).handleOut,
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HandleLine runs one full command. The returned code is informational
// only; nothing is ever written back for a rejected command.
func (d *Dispatcher) HandleLine(raw string) error {
	cmd, err := Parse(raw, len(d.cfg.AnalogKeys), len(d.cfg.DigitalKeys))
	if err != nil {
		return err
	}

	switch cmd.Kind {
	case KindGlobal:
		h, ok := d.global[cmd.Name]
		if !ok {
			return errcode.UnknownCommand
		}
		return h(d, cmd)
	case KindKey:
		return d.applyKey(cmd)
	}
	return errcode.UnknownCommand
}

// applyKey applies a setting to every addressed key. In whole-class
// mode each key is validated independently against its own fields, so
// one value may land on some keys and be rejected on others.
func (d *Dispatcher) applyKey(cmd Command) error {
	switch cmd.Class {
	case ClassAnalog:
		if cmd.All {
			for i := range d.cfg.AnalogKeys {
				_ = applyAnalog(&d.cfg.AnalogKeys[i], cmd.Setting, cmd.Arg0)
			}
			return nil
		}
		return applyAnalog(&d.cfg.AnalogKeys[cmd.Index], cmd.Setting, cmd.Arg0)
	case ClassDigital:
		if cmd.All {
			for i := range d.cfg.DigitalKeys {
				_ = applyDigital(&d.cfg.DigitalKeys[i], cmd.Setting, cmd.Arg0)
			}
			return nil
		}
		return applyDigital(&d.cfg.DigitalKeys[cmd.Index], cmd.Setting, cmd.Arg0)
	}
	return errcode.UnknownCommand
}
