// services/store/store_test.go
package store

import (
	"testing"
	"time"

	"keypadcode-go/bus"
	"keypadcode-go/platform"
	"keypadcode-go/types"
)

func TestDefaultsHoldInvariants(t *testing.T) {
	cfg := Defaults()
	if len(cfg.AnalogKeys) != types.AnalogKeyCount || len(cfg.DigitalKeys) != types.DigitalKeyCount {
		t.Fatalf("key counts: %d/%d", len(cfg.AnalogKeys), len(cfg.DigitalKeys))
	}
	if cfg.Name == "" || len(cfg.Name) > types.NameMaxLen {
		t.Errorf("name = %q", cfg.Name)
	}
	for i := range cfg.AnalogKeys {
		k := &cfg.AnalogKeys[i]
		if int(k.UpperHysteresis)-int(k.LowerHysteresis) < int(types.HysteresisTolerance) {
			t.Errorf("key %d: hysteresis band too narrow", i+1)
		}
		if int(types.TravelDistance)-int(k.UpperHysteresis) < int(types.HysteresisTolerance) {
			t.Errorf("key %d: upper hysteresis too close to full travel", i+1)
		}
		for _, v := range []uint16{k.RapidTriggerUpSensitivity, k.RapidTriggerDownSensitivity} {
			if v < types.RapidTriggerTolerance || v > types.TravelDistance {
				t.Errorf("key %d: sensitivity %d out of range", i+1, v)
			}
		}
		if !(k.DownPosition < k.RestPosition && k.RestPosition <= types.MaxAnalogValue) {
			t.Errorf("key %d: rest/down ordering broken: %d/%d", i+1, k.RestPosition, k.DownPosition)
		}
		if k.KeyChar < 'a' || k.KeyChar > 'z' {
			t.Errorf("key %d: default char %d outside a-z", i+1, k.KeyChar)
		}
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	s := New(platform.NewMemFlash(), nil)
	cfg := s.Load() // empty flash: blob fails verification
	want := Defaults()
	if cfg.Name != want.Name {
		t.Errorf("name = %q, want %q", cfg.Name, want.Name)
	}
}

func TestSaveThenLoadRoundtrip(t *testing.T) {
	flash := platform.NewMemFlash()
	s := New(flash, nil)

	cfg := Defaults()
	cfg.Name = "tuned"
	cfg.AnalogKeys[0].RapidTrigger = true
	if err := s.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	got := New(flash, nil).Load()
	if got.Name != "tuned" || !got.AnalogKeys[0].RapidTrigger {
		t.Errorf("loaded config lost mutations: %+v", got)
	}
}

func TestSaveWithoutFlashFails(t *testing.T) {
	s := New(nil, nil)
	if err := s.Save(Defaults()); err == nil {
		t.Error("expected error without a flash device")
	}
}

func TestLoadAnnouncesSource(t *testing.T) {
	b := bus.New(4)
	mon := b.NewConnection("monitor")
	sub := mon.Subscribe(bus.T("config", "loaded"))

	New(platform.NewMemFlash(), b.NewConnection("store")).Load()

	select {
	case m := <-sub.Channel():
		ev, ok := m.Payload.(loadedEvent)
		if !ok {
			t.Fatalf("payload type %T", m.Payload)
		}
		if ev.Source != "defaults" {
			t.Errorf("source = %q, want defaults", ev.Source)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for config/loaded")
	}
}
