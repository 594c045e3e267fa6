// services/serial/validate.go
package serial

import (
	"keypadcode-go/errcode"
	"keypadcode-go/types"
	"keypadcode-go/x/mathx"
	"keypadcode-go/x/strconvx"
)

// Field validators. Each one parses its raw argument, decides
// acceptance against the key's current fields and the static
// tolerances, and on acceptance writes exactly one field. On rejection
// the key is left untouched and a code is returned; the serial
// boundary discards it (the wire protocol is fail-closed-and-silent)
// but tests and the state topic can observe it.
//
// All range guards widen to int before comparing, so no check relies
// on unsigned wraparound.

// boolArg interprets a boolean argument: "1" and "true" are true,
// anything else is false. It cannot fail.
func boolArg(s string) bool { return s == "1" || s == "true" }

// intArg parses an integer argument bounded to uint16.
func intArg(s string) (int, error) {
	v, err := strconvx.Atoi(s)
	if err != nil || v < 0 || v > 0xFFFF {
		return 0, errcode.InvalidParams
	}
	return v, nil
}

// charArg accepts either a single ASCII character or its numeric code.
func charArg(s string) (uint8, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	v, err := strconvx.Atoi(s)
	if err != nil || v < 0 || v > 0xFF {
		return 0, errcode.InvalidParams
	}
	return uint8(v), nil
}

// applyAnalog validates and applies one setting on a hall-effect key.
func applyAnalog(k *types.AnalogKey, setting, arg string) error {
	switch setting {
	case "rt":
		k.RapidTrigger = boolArg(arg)
	case "crt":
		k.ContinuousRapidTrigger = boolArg(arg)
	case "rtus":
		return setSensitivity(&k.RapidTriggerUpSensitivity, arg)
	case "rtds":
		return setSensitivity(&k.RapidTriggerDownSensitivity, arg)
	case "lh":
		v, err := intArg(arg)
		if err != nil {
			return err
		}
		// The press band must stay at least the tolerance wide.
		if int(k.UpperHysteresis)-v < int(types.HysteresisTolerance) {
			return errcode.ValueOutOfRange
		}
		k.LowerHysteresis = uint16(v)
	case "uh":
		v, err := intArg(arg)
		if err != nil {
			return err
		}
		// Keep the band width and leave headroom below full travel,
		// otherwise the key could latch in a pressed state.
		if v-int(k.LowerHysteresis) < int(types.HysteresisTolerance) ||
			int(types.TravelDistance)-v < int(types.HysteresisTolerance) {
			return errcode.ValueOutOfRange
		}
		k.UpperHysteresis = uint16(v)
	case "char":
		c, err := charArg(arg)
		if err != nil {
			return err
		}
		if c < 'a' || c > 'z' {
			return errcode.ValueOutOfRange
		}
		k.KeyChar = c
	case "rest":
		v, err := intArg(arg)
		if err != nil {
			return err
		}
		if v <= int(k.DownPosition) || v > int(types.MaxAnalogValue) {
			return errcode.ValueOutOfRange
		}
		k.RestPosition = uint16(v)
	case "down":
		v, err := intArg(arg)
		if err != nil {
			return err
		}
		if v >= int(k.RestPosition) {
			return errcode.ValueOutOfRange
		}
		k.DownPosition = uint16(v)
	case "hid":
		k.HIDEnabled = boolArg(arg)
	default:
		return errcode.UnknownSetting
	}
	return nil
}

// setSensitivity applies the shared rapid-trigger sensitivity bound.
func setSensitivity(field *uint16, arg string) error {
	v, err := intArg(arg)
	if err != nil {
		return err
	}
	if !mathx.Between(v, int(types.RapidTriggerTolerance), int(types.TravelDistance)) {
		return errcode.ValueOutOfRange
	}
	*field = uint16(v)
	return nil
}

// applyDigital validates and applies one setting on a digital key.
// Digital keys carry no travel fields, so `char` takes any byte value.
func applyDigital(k *types.DigitalKey, setting, arg string) error {
	switch setting {
	case "char":
		c, err := charArg(arg)
		if err != nil {
			return err
		}
		k.KeyChar = c
	case "hid":
		k.HIDEnabled = boolArg(arg)
	default:
		return errcode.UnknownSetting
	}
	return nil
}
