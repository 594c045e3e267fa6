// cmd/console: host-side serial console for the keypad controller.
// Forwards stdin lines to the device verbatim and prints every reply,
// e.g.:
//
//	console -port /dev/ttyACM0
//	> get
//	GET version=0.4.0
//	...
//	GET END
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/tarm/serial"
)

func main() {
	portName := flag.String("port", "/dev/ttyACM0", "serial port of the keypad controller")
	baud := flag.Int("baud", 115200, "baud rate")
	flag.Parse()

	port, err := serial.OpenPort(&serial.Config{Name: *portName, Baud: *baud})
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer port.Close()

	// Device -> terminal.
	go func() {
		buf := make([]byte, 256)
		for {
			n, err := port.Read(buf)
			if n > 0 {
				os.Stdout.Write(buf[:n])
			}
			if err != nil {
				fmt.Fprintln(os.Stderr, "read:", err)
				os.Exit(1)
			}
		}
	}()

	// Terminal -> device, line by line.
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		if _, err := port.Write(append(sc.Bytes(), '\n')); err != nil {
			fmt.Fprintln(os.Stderr, "write:", err)
			os.Exit(1)
		}
	}
}
