// types.go
package types

// Firmware identity, reported on the first line of a `get` response.
const FirmwareVersion = "0.4.0"

// Physical layout of the keypad.
const (
	AnalogKeyCount  = 3
	DigitalKeyCount = 3
)

// Static tolerances and sensor characteristics. Travel values are in
// 0.01 mm units (400 = 4.00 mm switches).
const (
	TravelDistance        uint16 = 400
	HysteresisTolerance   uint16 = 10
	RapidTriggerTolerance uint16 = 10
	AnalogResolution             = 12
	MaxAnalogValue        uint16 = 1<<AnalogResolution - 1
)

// Keypad name length bounds, in bytes.
const (
	NameMinLen = 1
	NameMaxLen = 128
)

// AnalogKey holds the stored settings of one hall-effect key. Index is
// the stable zero-based identity; all travel values are 0.01 mm units,
// rest/down are raw sensor units.
type AnalogKey struct {
	Index                       uint8
	RapidTrigger                bool
	ContinuousRapidTrigger      bool
	RapidTriggerUpSensitivity   uint16
	RapidTriggerDownSensitivity uint16
	LowerHysteresis             uint16
	UpperHysteresis             uint16
	KeyChar                     uint8
	RestPosition                uint16
	DownPosition                uint16
	HIDEnabled                  bool
}

// DigitalKey holds the stored settings of one digital key.
type DigitalKey struct {
	Index      uint8
	KeyChar    uint8
	HIDEnabled bool
}

// Config is the single shared settings aggregate. It is allocated once
// at load time; the serial interpreter mutates fields in place and
// never resizes the key collections.
type Config struct {
	Name        string
	AnalogKeys  []AnalogKey
	DigitalKeys []DigitalKey
}
