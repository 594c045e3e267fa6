// services/store/store.go
package store

import (
	"keypadcode-go/bus"
	"keypadcode-go/errcode"
	"keypadcode-go/types"
	"keypadcode-go/x/timex"
)

// Flash is the persistence device, injected by the platform layer. On
// the device it is a flash region; on the host an in-memory buffer.
type Flash interface {
	ReadAll() ([]byte, error)
	WriteAll(p []byte) error
}

// loadedEvent is published retained on config/loaded after Load.
type loadedEvent struct {
	Source string `json:"source"` // "flash" | "defaults"
	Layout int    `json:"layout"`
	TSMs   int64  `json:"ts_ms"`
}

var topicLoaded = bus.T("config", "loaded")

// Store owns Config persistence. Load happens once at startup; Save
// only runs when the serial `save` command delegates here.
type Store struct {
	flash Flash
	conn  *bus.Connection
}

func New(flash Flash, conn *bus.Connection) *Store {
	return &Store{flash: flash, conn: conn}
}

// Load returns the persisted Config, or the factory defaults when the
// flash is empty or its blob fails verification.
func (s *Store) Load() *types.Config {
	if s.flash != nil {
		if blob, err := s.flash.ReadAll(); err == nil {
			if cfg, err := Decode(blob); err == nil {
				s.announce("flash")
				return cfg
			}
		}
	}
	s.announce("defaults")
	return Defaults()
}

// Save encodes the Config and writes it to flash.
func (s *Store) Save(cfg *types.Config) error {
	if s.flash == nil {
		return errcode.FlashFailed
	}
	if err := s.flash.WriteAll(Encode(cfg)); err != nil {
		return &errcode.E{C: errcode.FlashFailed, Op: "store.save", Err: err}
	}
	return nil
}

func (s *Store) announce(source string) {
	if s.conn == nil {
		return
	}
	ev := loadedEvent{Source: source, Layout: layoutVersion, TSMs: timex.NowMs()}
	s.conn.Publish(s.conn.NewMessage(topicLoaded, ev, true))
}
