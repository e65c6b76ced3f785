package controller

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenewark/arklights/internal/brightness"
	"github.com/thenewark/arklights/internal/driver/fake"
	"github.com/thenewark/arklights/internal/pattern"
	"github.com/thenewark/arklights/internal/protocol"
	"github.com/thenewark/arklights/internal/topology"
)

// events is shared between the link and the driver so tests can
// assert the ack hits the wire before any LED commit.
type events struct {
	names []string
}

type scriptLink struct {
	in  []byte
	out []byte
	ev  *events
}

func (l *scriptLink) Pending() int { return len(l.in) }

func (l *scriptLink) ReadByte() (byte, bool) {
	if len(l.in) == 0 {
		return 0, false
	}
	b := l.in[0]
	l.in = l.in[1:]
	return b, true
}

func (l *scriptLink) Write(p []byte) (int, error) {
	l.out = append(l.out, p...)
	l.ev.names = append(l.ev.names, "ack")
	return len(p), nil
}

type tracingDriver struct {
	*fake.Driver
	ev *events
}

func (d *tracingDriver) Show() error {
	d.ev.names = append(d.ev.names, "show")
	return d.Driver.Show()
}

type fakeClock struct {
	slept []time.Duration
}

func (c *fakeClock) Sleep(d time.Duration) { c.slept = append(c.slept, d) }

func newHarness(t *testing.T) (*Controller, *scriptLink, *tracingDriver, *fakeClock) {
	t.Helper()
	ev := &events{}
	link := &scriptLink{ev: ev}
	drv := &tracingDriver{Driver: fake.New(topology.NumLEDs), ev: ev}
	clock := &fakeClock{}
	eng, err := pattern.NewEngine(drv, link, 42, clock, zerolog.Nop())
	require.NoError(t, err)
	return New(link, eng, zerolog.Nop()), link, drv, clock
}

func noteFrame(note byte, digits string) []byte {
	f := make([]byte, protocol.FrameLen)
	f[0] = protocol.StartMarker
	f[1] = '2'
	f[2] = note
	copy(f[3:protocol.FrameLen-1], digits)
	f[protocol.FrameLen-1] = protocol.EndMarker
	return f
}

func droneOffFrame() []byte {
	f := make([]byte, protocol.FrameLen)
	f[0] = protocol.StartMarker
	f[1] = '0'
	f[protocol.FrameLen-1] = protocol.EndMarker
	return f
}

func TestNoteEndToEnd(t *testing.T) {
	ctrl, link, drv, clock := newHarness(t)
	// [%,'2',0,'1','2','0',0,0,0,0,&]: pitch class 0 (C, red),
	// duration 120 microseconds.
	link.in = noteFrame(0, "120")

	handled, err := ctrl.Step()
	require.NoError(t, err)
	require.True(t, handled)

	assert.Equal(t, []byte{protocol.Ack}, link.out)
	require.GreaterOrEqual(t, len(link.ev.names), 3)
	assert.Equal(t, "ack", link.ev.names[0], "ack must precede any LED commit")
	assert.Equal(t, []string{"ack", "show", "show"}, link.ev.names)

	require.Len(t, drv.Frames, 2)
	red := brightness.Color{R: 255}
	lit := 0
	for _, c := range drv.Frames[0] {
		if c == red {
			lit++
		} else {
			assert.Equal(t, brightness.Black, c)
		}
	}
	// Six side zones light 1-4 LEDs each; the top adds 0-4 more.
	assert.GreaterOrEqual(t, lit, 6)
	assert.LessOrEqual(t, lit, 28)

	assert.Equal(t, []time.Duration{120 * time.Microsecond}, clock.slept)
	for i, c := range drv.Frames[1] {
		assert.Equal(t, brightness.Black, c, "bulb %d still lit after flash", i)
	}
}

func TestDroneOffIdempotent(t *testing.T) {
	ctrl, link, drv, _ := newHarness(t)

	link.in = droneOffFrame()
	handled, err := ctrl.Step()
	require.NoError(t, err)
	require.True(t, handled)

	link.in = droneOffFrame()
	handled, err = ctrl.Step()
	require.NoError(t, err)
	require.True(t, handled)

	require.Len(t, drv.Frames, 2)
	assert.Equal(t, drv.Frames[0], drv.Frames[1])
	for _, c := range drv.Last() {
		assert.Equal(t, brightness.Black, c)
	}
	assert.Equal(t, []byte{protocol.Ack, protocol.Ack}, link.out)
}

func TestMalformedFrameIsSilent(t *testing.T) {
	ctrl, link, drv, _ := newHarness(t)
	bad := noteFrame(0, "120")
	bad[protocol.FrameLen-1] = 0 // end marker missing

	link.in = bad
	handled, err := ctrl.Step()
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Empty(t, link.out, "no ack for a rejected frame")
	assert.Empty(t, drv.Frames, "no LED state change for a rejected frame")
}

func TestIdleStep(t *testing.T) {
	ctrl, _, drv, _ := newHarness(t)
	handled, err := ctrl.Step()
	require.NoError(t, err)
	assert.False(t, handled)
	assert.Empty(t, drv.Frames)
}
