// Package protocol decodes the fixed-format command frames the
// composition host streams over the serial link.
//
// Every frame is exactly 11 bytes, bounded by '%' and '&':
//
//	frame[0]    '%'
//	frame[1]    command: '0' drone off, '1' drone on, '2' note
//	frame[2]    note frames: raw pitch class 0-11; otherwise 0x00
//	frame[3..9] note frames: ASCII decimal duration in microseconds,
//	            NUL-padded; otherwise all 0x00
//	frame[10]   '&'
//
// A valid frame is acknowledged with the single byte '1' before any
// pattern work starts; an invalid frame gets nothing at all. The host
// infers failure from an ack timeout, so the presence or absence of
// that byte is the only status channel there is.
package protocol

const (
	// FrameLen is the exact size of every command frame.
	FrameLen = 11

	StartMarker = '%'
	EndMarker   = '&'

	// Ack is the single byte written for an accepted frame.
	Ack = '1'

	cmdDroneOff = '0'
	cmdDroneOn  = '1'
	cmdNote     = '2'

	maxNoteIndex = 11
)

// Kind discriminates decoded commands.
type Kind int

const (
	DroneOff Kind = iota
	DroneOn
	Note
)

func (k Kind) String() string {
	switch k {
	case DroneOff:
		return "drone-off"
	case DroneOn:
		return "drone-on"
	case Note:
		return "note"
	}
	return "unknown"
}

// Command is a validated frame, ready to dispatch. NoteIndex and
// DurationMicros are meaningful only for Kind == Note.
type Command struct {
	Kind           Kind
	NoteIndex      int
	DurationMicros uint32
}

// Link is the byte-level surface of the host connection. Pending
// reports bytes already delivered by the OS without blocking;
// ReadByte consumes one of them. Write pushes bytes out and flushes.
type Link interface {
	Pending() int
	ReadByte() (byte, bool)
	Write(p []byte) (int, error)
}
