// Package spihw drives the strips through a periph.io NRZ-over-SPI
// device (WS2811 timing). When no SPI port is present, e.g. on a
// bench machine, it falls back to a console screen so patterns stay
// visible.
package spihw

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/extra/devices/screen"
	"periph.io/x/host/v3"

	"github.com/thenewark/arklights/internal/brightness"
)

// refreshRate is the WS2811 strip clock in kHz.
const refreshRate = 800

// Driver renders the pixel buffer as a 1xN image through a
// display.Drawer, the same way whether the drawer is the SPI device
// or the console fallback.
type Driver struct {
	drawer display.Drawer
	img    *image.NRGBA
	count  int
	spi    bool
	log    zerolog.Logger
}

// New initializes the periph host, opens the named SPI port (empty
// means the first available) and prepares the NRZ encoder for count
// pixels.
func New(port string, count int, log zerolog.Logger) (*Driver, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	d := &Driver{
		img:   image.NewNRGBA(image.Rect(0, 0, count, 1)),
		count: count,
		log:   log.With().Str("comp", "spihw").Logger(),
	}

	sp, err := spireg.Open(port)
	if err != nil {
		d.log.Warn().Err(err).Msg("no SPI port, rendering to console")
		d.drawer = screen.New(count)
		return d, nil
	}

	opts := nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      ((refreshRate * 3) + 100) * physic.KiloHertz,
	}
	dev, err := nrzled.NewSPI(sp, &opts)
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	_ = dev.Halt()
	d.drawer = dev
	d.spi = true
	d.log.Info().Int("pixels", count).Msg("SPI LED device ready")
	return d, nil
}

func (d *Driver) SetPixel(i int, c brightness.Color) {
	if i < 0 || i >= d.count {
		return
	}
	d.img.SetNRGBA(i, 0, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
}

func (d *Driver) Show() error {
	return d.drawer.Draw(d.drawer.Bounds(), d.img, image.Point{})
}

func (d *Driver) Count() int { return d.count }

// Halt blanks the device.
func (d *Driver) Halt() error {
	return d.drawer.Halt()
}
