// services/serial/handlers.go
package serial

import (
	"keypadcode-go/errcode"
	"keypadcode-go/types"
	"keypadcode-go/x/fmtx"
)

// handleBoot hands control to the platform bootloader. Fire-and-forget:
// on real hardware the call does not return.
func (d *Dispatcher) handleBoot(Command) error {
	if d.boot != nil {
		d.boot()
	}
	return nil
}

// handleSave delegates the in-memory Config to the persistence
// collaborator. Until this runs, every accepted mutation is volatile.
func (d *Dispatcher) handleSave(Command) error {
	if d.store == nil {
		return nil
	}
	return d.store.Save(d.cfg)
}

// handleGet serializes the full settings state as GET lines, in fixed
// order, terminated by the GET END sentinel.
func (d *Dispatcher) handleGet(Command) error {
	suffix := ""
	if d.debug {
		suffix = "-dev"
	}
	fmtx.Fprintf(d.w, "GET version=%s%s\n", types.FirmwareVersion, suffix)
	fmtx.Fprintf(d.w, "GET hkeys=%d\n", len(d.cfg.AnalogKeys))
	fmtx.Fprintf(d.w, "GET dkeys=%d\n", len(d.cfg.DigitalKeys))
	fmtx.Fprintf(d.w, "GET name=%s\n", d.cfg.Name)
	fmtx.Fprintf(d.w, "GET htol=%d\n", types.HysteresisTolerance)
	fmtx.Fprintf(d.w, "GET rtol=%d\n", types.RapidTriggerTolerance)
	fmtx.Fprintf(d.w, "GET trdt=%d\n", types.TravelDistance)
	fmtx.Fprintf(d.w, "GET ares=%d\n", types.AnalogResolution)

	for i := range d.cfg.AnalogKeys {
		k := &d.cfg.AnalogKeys[i]
		n := i + 1
		fmtx.Fprintf(d.w, "GET hkey%d.rt=%d\n", n, k.RapidTrigger)
		fmtx.Fprintf(d.w, "GET hkey%d.crt=%d\n", n, k.ContinuousRapidTrigger)
		fmtx.Fprintf(d.w, "GET hkey%d.rtus=%d\n", n, k.RapidTriggerUpSensitivity)
		fmtx.Fprintf(d.w, "GET hkey%d.rtds=%d\n", n, k.RapidTriggerDownSensitivity)
		fmtx.Fprintf(d.w, "GET hkey%d.lh=%d\n", n, k.LowerHysteresis)
		fmtx.Fprintf(d.w, "GET hkey%d.uh=%d\n", n, k.UpperHysteresis)
		fmtx.Fprintf(d.w, "GET hkey%d.char=%d\n", n, k.KeyChar)
		fmtx.Fprintf(d.w, "GET hkey%d.rest=%d\n", n, k.RestPosition)
		fmtx.Fprintf(d.w, "GET hkey%d.down=%d\n", n, k.DownPosition)
		fmtx.Fprintf(d.w, "GET hkey%d.hid=%d\n", n, k.HIDEnabled)
	}

	for i := range d.cfg.DigitalKeys {
		k := &d.cfg.DigitalKeys[i]
		n := i + 1
		fmtx.Fprintf(d.w, "GET dkey%d.char=%d\n", n, k.KeyChar)
		fmtx.Fprintf(d.w, "GET dkey%d.hid=%d\n", n, k.HIDEnabled)
	}

	fmtx.Fprintf(d.w, "GET END\n")
	return nil
}

// handleName replaces the stored keypad name iff the new one is within
// the byte-length bounds; otherwise the previous name is kept.
func (d *Dispatcher) handleName(cmd Command) error {
	n := len(cmd.Params)
	if n < types.NameMinLen || n > types.NameMaxLen {
		return errcode.NameLength
	}
	d.cfg.Name = cmd.Params
	return nil
}

// handleOut either toggles the keypad runtime's calibration streaming
// flag (explicit boolean argument) or emits one snapshot line per
// analog key from the runtime's live values.
func (d *Dispatcher) handleOut(cmd Command) error {
	if d.keypad == nil {
		return nil
	}
	if cmd.Arg0 != "" {
		d.keypad.SetStreaming(boolArg(cmd.Arg0))
		return nil
	}
	for i := range d.cfg.AnalogKeys {
		raw, mapped := d.keypad.LiveState(i)
		fmtx.Fprintf(d.w, "OUT hkey%d=%d %d\n", i+1, raw, mapped)
	}
	return nil
}

// handleEcho reflects the parameter tail. Debug builds only; the table
// in New never routes here unless WithDebug was applied.
func (d *Dispatcher) handleEcho(cmd Command) error {
	fmtx.Fprintf(d.w, "%s\n", cmd.Params)
	return nil
}
