// services/keypad/keypad.go
package keypad

import (
	"sync"

	"keypadcode-go/bus"
	"keypadcode-go/types"
	"keypadcode-go/x/mathx"
	"keypadcode-go/x/strconvx"
	"keypadcode-go/x/timex"
)

// State is the live reading of one hall-effect key: the last raw
// sensor sample and its mapped travel position in 0.01 mm units.
type State struct {
	LastSensorValue uint16
	LastMappedValue uint16
}

// OutEvent is the payload published on keypad/out/<n> while streaming.
type OutEvent struct {
	Key    int    `json:"key"` // 1-based
	Raw    uint16 `json:"raw"`
	Mapped uint16 `json:"mapped"`
	TSMs   int64  `json:"ts_ms"`
}

// Runtime holds the live analog key state the serial `out` command
// reads. The sampling loop feeds it; it never computes key presses and
// never touches the stored settings beyond reading calibration.
type Runtime struct {
	cfg  *types.Config
	conn *bus.Connection

	mu        sync.Mutex
	states    []State
	streaming bool
}

func New(cfg *types.Config, conn *bus.Connection) *Runtime {
	return &Runtime{
		cfg:    cfg,
		conn:   conn,
		states: make([]State, len(cfg.AnalogKeys)),
	}
}

// Feed records one raw sample for a key. The raw value is clamped to
// the sensor resolution and mapped through the key's rest/down
// calibration: rest reads as 0 travel, down as full travel. While
// streaming is on, every sample is also published retained on the bus.
func (r *Runtime) Feed(index int, raw uint16) {
	if index < 0 || index >= len(r.states) {
		return
	}
	k := &r.cfg.AnalogKeys[index]

	raw = mathx.Clamp(raw, 0, types.MaxAnalogValue)
	fromDown := mathx.MapU16(raw, k.DownPosition, k.RestPosition, 0, types.TravelDistance)
	mapped := types.TravelDistance - fromDown

	r.mu.Lock()
	r.states[index] = State{LastSensorValue: raw, LastMappedValue: mapped}
	streaming := r.streaming
	r.mu.Unlock()

	if streaming && r.conn != nil {
		ev := OutEvent{Key: index + 1, Raw: raw, Mapped: mapped, TSMs: timex.NowMs()}
		topic := bus.T("keypad", "out", strconvx.Itoa(index+1))
		r.conn.Publish(r.conn.NewMessage(topic, ev, true))
	}
}

// LiveState returns the last raw and mapped values for a key.
func (r *Runtime) LiveState(index int) (raw, mapped uint16) {
	if index < 0 || index >= len(r.states) {
		return 0, 0
	}
	r.mu.Lock()
	st := r.states[index]
	r.mu.Unlock()
	return st.LastSensorValue, st.LastMappedValue
}

// SetStreaming toggles calibration output mode.
func (r *Runtime) SetStreaming(on bool) {
	r.mu.Lock()
	r.streaming = on
	r.mu.Unlock()
}

// Streaming reports whether calibration output mode is on.
func (r *Runtime) Streaming() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.streaming
}
