// services/serial/service.go
package serial

import (
	"context"

	"keypadcode-go/bus"
	"keypadcode-go/errcode"
	"keypadcode-go/x/timex"
)

// state is published retained on serial/state after every handled line.
type state struct {
	RxLines int    `json:"rx_lines"`
	Applied int    `json:"applied"`
	Dropped int    `json:"dropped"`
	LastErr string `json:"last_err"`
	TSMs    int64  `json:"ts_ms"`
}

var topicState = bus.T("serial", "state")

// Service drives the dispatcher from a line source. Lines arrive fully
// assembled (the transport owns framing); each one is handled to
// completion before the next is read, which is what keeps the pairwise
// Config invariants safe without locking.
type Service struct {
	conn *bus.Connection
	d    *Dispatcher
	st   state
}

func NewService(conn *bus.Connection, d *Dispatcher) *Service {
	return &Service{conn: conn, d: d}
}

// Run consumes lines until the channel closes or ctx is cancelled.
func (s *Service) Run(ctx context.Context, lines <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			s.handle(line)
		}
	}
}

func (s *Service) handle(line string) {
	err := s.d.HandleLine(line)

	s.st.RxLines++
	if err != nil {
		s.st.Dropped++
	} else {
		s.st.Applied++
	}
	s.st.LastErr = string(errcode.Of(err))
	s.st.TSMs = timex.NowMs()

	if s.conn != nil {
		s.conn.Publish(s.conn.NewMessage(topicState, s.st, true))
	}
}
