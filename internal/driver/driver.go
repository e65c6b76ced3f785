// Package driver abstracts the LED transport.
package driver

import "github.com/thenewark/arklights/internal/brightness"

// Driver buffers per-bulb colors and pushes the whole frame to the
// hardware on Show. One Show per intended visual frame; committing
// partially composed buffers tears visibly.
type Driver interface {
	SetPixel(i int, c brightness.Color)
	Show() error
	Count() int
}
