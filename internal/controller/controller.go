// Package controller runs the decode/dispatch loop: poll the link,
// decode a frame, hand the command to the pattern engine.
package controller

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/thenewark/arklights/internal/palette"
	"github.com/thenewark/arklights/internal/pattern"
	"github.com/thenewark/arklights/internal/protocol"
)

// idlePoll is how long the loop sleeps when the link is quiet.
const idlePoll = time.Millisecond

// Controller owns the protocol decoder and the pattern engine.
type Controller struct {
	link protocol.Link
	dec  *protocol.Decoder
	eng  *pattern.Engine
	log  zerolog.Logger
}

func New(link protocol.Link, eng *pattern.Engine, log zerolog.Logger) *Controller {
	return &Controller{
		link: link,
		dec:  protocol.NewDecoder(link, log),
		eng:  eng,
		log:  log.With().Str("comp", "controller").Logger(),
	}
}

// Run polls until ctx is canceled. Patterns block the loop for their
// whole duration by design; cancellation is only observed between
// frames.
func (c *Controller) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		handled, err := c.Step()
		if err != nil {
			return err
		}
		if !handled {
			time.Sleep(idlePoll)
		}
	}
}

// Step services at most one pending frame and reports whether a
// command was executed. The decoder has already written the ack by
// the time a command reaches the engine.
func (c *Controller) Step() (bool, error) {
	if c.link.Pending() == 0 {
		return false, nil
	}
	cmd, ok := c.dec.Decode()
	if !ok {
		return false, nil
	}
	return true, c.dispatch(cmd)
}

func (c *Controller) dispatch(cmd protocol.Command) error {
	switch cmd.Kind {
	case protocol.DroneOff:
		c.log.Info().Msg("drone off")
		return c.eng.AllOff()
	case protocol.DroneOn:
		c.log.Info().Msg("drone on")
		return c.eng.DroneCycle()
	case protocol.Note:
		c.log.Info().
			Str("note", palette.Name(cmd.NoteIndex)).
			Uint32("dur_us", cmd.DurationMicros).
			Msg("note flash")
		return c.eng.NoteFlash(palette.ColorOf(cmd.NoteIndex), cmd.DurationMicros)
	}
	return nil
}
