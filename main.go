package main

import (
	"context"
	"time"

	"keypadcode-go/bus"
	"keypadcode-go/platform"
	"keypadcode-go/services/keypad"
	"keypadcode-go/services/serial"
	"keypadcode-go/services/store"
)

const serialBaud = 115200

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	ctx := context.Background()
	b := bus.New(8)

	st := store.New(platform.NewMemFlash(), b.NewConnection("store"))
	cfg := st.Load()

	kp := keypad.New(cfg, b.NewConnection("keypad"))

	port := platform.OpenSerial(serialBaud)
	opts := []serial.Option{}
	if debugCommands {
		opts = append(opts, serial.WithDebug())
	}
	d := serial.New(cfg, kp, st, platform.EnterBootloader, port, opts...)

	svc := serial.NewService(b.NewConnection("serial"), d)
	svc.Run(ctx, platform.ReadLines(ctx, port, 256))
}
