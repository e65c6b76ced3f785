package protocol

import "github.com/rs/zerolog"

// Decoder reads command frames off a Link. Rejected frames are
// dropped silently; the wire only ever carries the ack byte back.
type Decoder struct {
	link Link
	log  zerolog.Logger
}

func NewDecoder(link Link, log zerolog.Logger) *Decoder {
	return &Decoder{
		link: link,
		log:  log.With().Str("comp", "protocol").Logger(),
	}
}

// Decode consumes one frame's worth of pending bytes and returns the
// command it carries, if any. It never blocks waiting for bytes that
// have not arrived: a short read leaves the end marker unset and the
// frame is rejected. Anything pending beyond the 11th byte this cycle
// is stale and gets flushed.
//
// The ack byte is written before Decode returns, so it is on the wire
// before the caller starts pattern work. The host times out waiting
// for it.
func (d *Decoder) Decode() (Command, bool) {
	var buf [FrameLen]byte
	n := 0
	for n < FrameLen && d.link.Pending() > 0 {
		b, ok := d.link.ReadByte()
		if !ok {
			break
		}
		buf[n] = b
		n++
	}
	for d.link.Pending() > 0 {
		if _, ok := d.link.ReadByte(); !ok {
			break
		}
	}

	if buf[0] != StartMarker || buf[FrameLen-1] != EndMarker {
		d.log.Debug().Int("read", n).Msg("dropped frame: bad markers")
		return Command{}, false
	}

	switch buf[1] {
	case cmdDroneOff:
		d.ack()
		return Command{Kind: DroneOff}, true
	case cmdDroneOn:
		d.ack()
		return Command{Kind: DroneOn}, true
	case cmdNote:
		note := int(buf[2])
		if note > maxNoteIndex {
			d.log.Debug().Int("note", note).Msg("dropped frame: pitch class out of range")
			return Command{}, false
		}
		dur, ok := parseDuration(buf[3:])
		if !ok {
			d.log.Debug().Msg("dropped frame: bad duration")
			return Command{}, false
		}
		d.ack()
		return Command{Kind: Note, NoteIndex: note, DurationMicros: dur}, true
	default:
		d.log.Debug().Uint8("cmd", buf[1]).Msg("dropped frame: unknown command")
		return Command{}, false
	}
}

func (d *Decoder) ack() {
	if _, err := d.link.Write([]byte{Ack}); err != nil {
		d.log.Error().Err(err).Msg("ack write failed")
	}
}

// parseDuration reads the ASCII decimal numeral from the digit region
// of a note frame (frame[3:], digit slots plus the end marker). The
// numeral ends at the first NUL or at the end marker; anything else
// after the digits invalidates the frame. An empty numeral is a
// duration of zero.
func parseDuration(region []byte) (uint32, bool) {
	var v uint64
	i := 0
	for i < len(region)-1 && region[i] >= '0' && region[i] <= '9' {
		v = v*10 + uint64(region[i]-'0')
		i++
	}
	if t := region[i]; t != 0 && t != EndMarker {
		return 0, false
	}
	// At most 7 digits fit in the frame, so v fits in uint32.
	return uint32(v), true
}
