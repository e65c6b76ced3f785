// Package serlink adapts a go.bug.st/serial port to the polled
// available/read/write surface the protocol decoder and the pattern
// engine expect.
package serlink

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.bug.st/serial"
)

// Port wraps a serial port with a non-blocking poll buffer. Pending
// drains whatever the OS has already delivered into the buffer and
// reports how much is waiting; ReadByte consumes from it.
type Port struct {
	port serial.Port
	buf  []byte
	tmp  [64]byte
	log  zerolog.Logger
}

// Open opens the named serial device at the given baud rate.
func Open(device string, baud int, log zerolog.Logger) (*Port, error) {
	mode := &serial.Mode{BaudRate: baud}
	p, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("serial open %s: %w", device, err)
	}
	// Reads must never stall the control loop waiting for bytes that
	// have not arrived.
	if err := p.SetReadTimeout(time.Millisecond); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("serial read timeout: %w", err)
	}
	log.Info().Str("device", device).Int("baud", baud).Msg("serial link open")
	return &Port{port: p, log: log.With().Str("comp", "serlink").Logger()}, nil
}

// Pending polls the port once and returns the number of buffered
// bytes.
func (p *Port) Pending() int {
	n, err := p.port.Read(p.tmp[:])
	if err != nil {
		p.log.Error().Err(err).Msg("serial read failed")
	}
	if n > 0 {
		p.buf = append(p.buf, p.tmp[:n]...)
	}
	return len(p.buf)
}

// ReadByte consumes one buffered byte. It reports false when nothing
// is buffered.
func (p *Port) ReadByte() (byte, bool) {
	if len(p.buf) == 0 {
		return 0, false
	}
	b := p.buf[0]
	p.buf = p.buf[1:]
	return b, true
}

// Write pushes bytes to the host and drains the output buffer, so a
// returned nil error means the bytes are on the wire.
func (p *Port) Write(b []byte) (int, error) {
	n, err := p.port.Write(b)
	if err != nil {
		return n, err
	}
	return n, p.port.Drain()
}

func (p *Port) Close() error {
	p.log.Info().Msg("closing serial link")
	return p.port.Close()
}
