// platform/platform.go
package platform

import (
	"context"
	"io"
)

// EnterBootloader re-enters the platform's bootloader. The device
// build replaces this from its bootstrap (e.g. the RP2040 boot ROM
// call); the host default is a no-op so `boot` is harmless in tests.
var EnterBootloader = func() {}

// ReadLines starts a bounded reader goroutine that assembles complete
// lines from a byte stream: CR is ignored, LF flushes, and lines longer
// than maxLine are truncated. The channel closes on read error or when
// ctx is cancelled.
func ReadLines(ctx context.Context, r io.Reader, maxLine int) <-chan string {
	if maxLine < 16 {
		maxLine = 16
	}
	if maxLine > 1024 {
		maxLine = 1024
	}
	out := make(chan string, 8)

	go func() {
		defer close(out)
		buf := make([]byte, 64)
		line := make([]byte, 0, maxLine)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			n, err := r.Read(buf)
			for i := 0; i < n; i++ {
				switch b := buf[i]; b {
				case '\n':
					select {
					case out <- string(line):
					case <-ctx.Done():
						return
					}
					line = line[:0]
				case '\r':
					// ignore
				default:
					if len(line) < maxLine {
						line = append(line, b)
					}
				}
			}
			if err != nil {
				return
			}
		}
	}()

	return out
}
