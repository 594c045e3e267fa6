//go:build !tinygo

// platform/serial_host.go
package platform

import (
	"io"
	"os"
)

type stdio struct{}

func (stdio) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdio) Write(p []byte) (int, error) { return os.Stdout.Write(p) }

// OpenSerial on the host wires the interpreter to stdin/stdout, which
// makes the device binary drivable from a terminal for development.
func OpenSerial(_ uint32) io.ReadWriter { return stdio{} }
