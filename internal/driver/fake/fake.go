package fake

import "github.com/thenewark/arklights/internal/brightness"

// Driver records every committed frame, useful for headless runs and
// tests.
type Driver struct {
	buf    []brightness.Color
	Frames [][]brightness.Color
}

func New(count int) *Driver {
	return &Driver{buf: make([]brightness.Color, count)}
}

func (d *Driver) SetPixel(i int, c brightness.Color) {
	if i < 0 || i >= len(d.buf) {
		return
	}
	d.buf[i] = c
}

func (d *Driver) Show() error {
	snap := make([]brightness.Color, len(d.buf))
	copy(snap, d.buf)
	d.Frames = append(d.Frames, snap)
	return nil
}

func (d *Driver) Count() int { return len(d.buf) }

// Last returns the most recently committed frame, or nil.
func (d *Driver) Last() []brightness.Color {
	if len(d.Frames) == 0 {
		return nil
	}
	return d.Frames[len(d.Frames)-1]
}
