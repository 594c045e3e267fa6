// services/store/defaults.go
package store

import (
	"github.com/andreyvit/tinyjson"

	"keypadcode-go/types"
)

// Factory settings, embedded as JSON so a board variant can swap them
// without touching code. Shared numeric fields apply to every analog
// key; chars/dchars assign one character per key in index order.
var defaultConfigJSON = []byte(`{
	"name": "keypad",
	"chars": "zxc",
	"dchars": "asd",
	"rtus": 50,
	"rtds": 50,
	"lh": 250,
	"uh": 300,
	"rest": 4000,
	"down": 1000,
	"hid": true
}`)

// Defaults builds the factory Config from the embedded JSON. The
// embedded data is trusted; a malformed field falls back to a safe
// per-field zero rather than failing the boot.
func Defaults() *types.Config {
	r := tinyjson.Raw(defaultConfigJSON)
	val := r.Value()
	r.EnsureEOF()

	m, _ := val.(map[string]any)

	cfg := &types.Config{
		Name:        jsonString(m, "name"),
		AnalogKeys:  make([]types.AnalogKey, types.AnalogKeyCount),
		DigitalKeys: make([]types.DigitalKey, types.DigitalKeyCount),
	}

	chars := jsonString(m, "chars")
	dchars := jsonString(m, "dchars")
	hid := jsonBool(m, "hid")

	for i := range cfg.AnalogKeys {
		k := &cfg.AnalogKeys[i]
		k.Index = uint8(i)
		k.RapidTriggerUpSensitivity = jsonU16(m, "rtus")
		k.RapidTriggerDownSensitivity = jsonU16(m, "rtds")
		k.LowerHysteresis = jsonU16(m, "lh")
		k.UpperHysteresis = jsonU16(m, "uh")
		k.RestPosition = jsonU16(m, "rest")
		k.DownPosition = jsonU16(m, "down")
		k.KeyChar = charAt(chars, i, 'a')
		k.HIDEnabled = hid
	}
	for i := range cfg.DigitalKeys {
		k := &cfg.DigitalKeys[i]
		k.Index = uint8(i)
		k.KeyChar = charAt(dchars, i, 'a')
		k.HIDEnabled = hid
	}
	return cfg
}

func charAt(s string, i int, fallback byte) byte {
	if i >= 0 && i < len(s) {
		return s[i]
	}
	return fallback
}

func jsonString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func jsonBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// jsonU16 tolerates the numeric type the decoder happens to produce.
func jsonU16(m map[string]any, key string) uint16 {
	switch v := m[key].(type) {
	case float64:
		if v < 0 || v > 0xFFFF {
			return 0
		}
		return uint16(v)
	case int:
		if v < 0 || v > 0xFFFF {
			return 0
		}
		return uint16(v)
	case int64:
		if v < 0 || v > 0xFFFF {
			return 0
		}
		return uint16(v)
	case uint64:
		if v > 0xFFFF {
			return 0
		}
		return uint16(v)
	}
	return 0
}
