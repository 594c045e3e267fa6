//go:build tinygo

// platform/serial_tinygo.go
package platform

import (
	"io"

	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

// OpenSerial configures UART0 on the default pins and returns it as a
// byte stream for the line reader and response writer.
func OpenSerial(baud uint32) io.ReadWriter {
	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: baud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
	return u
}
