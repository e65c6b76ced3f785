// Package pattern implements the sculpture's lighting behaviors: the
// drone breathing cycle and the randomized note flash.
package pattern

import (
	"errors"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/thenewark/arklights/internal/brightness"
	"github.com/thenewark/arklights/internal/driver"
	"github.com/thenewark/arklights/internal/topology"
)

// The "50 bpm drone" is used: it peaks at 3.35 seconds and ends at
// 4.8 seconds. (The "30 bpm drone" would peak at 2.73 and end at 4.0.)
const (
	droneSteps      = 100
	droneUpMicros   = 3_350_000
	droneDownMicros = 1_450_000
	droneIterMicros = 4_800_000
)

var droneColor = brightness.Color{R: 255}

// InputPoller reports whether the host link has bytes waiting. The
// drone cycle polls it at every step; it is the only cancellation
// point any pattern has.
type InputPoller interface {
	Pending() int
}

// Engine composes patterns onto a Driver. Exactly one control flow
// owns it: patterns block until they finish, and the pixel buffer is
// committed once per intended visual frame.
type Engine struct {
	drv   driver.Driver
	link  InputPoller
	clock Clock
	rng   *rand.Rand
	drone []brightness.Color
	log   zerolog.Logger
}

// NewEngine builds the process-lifetime drone brightness table and
// seeds the shared random stream. A failure here is fatal to the
// caller: there is no safe degraded lighting mode.
func NewEngine(drv driver.Driver, link InputPoller, seed int64, clock Clock, log zerolog.Logger) (*Engine, error) {
	if droneUpMicros+droneDownMicros != droneIterMicros {
		return nil, errors.New("drone timing mismatch")
	}
	table := brightness.Quadratic(droneColor, droneSteps)
	if len(table) != droneSteps {
		return nil, errors.New("drone brightness table truncated")
	}
	return &Engine{
		drv:   drv,
		link:  link,
		clock: clock,
		rng:   rand.New(rand.NewSource(seed)),
		drone: table,
		log:   log.With().Str("comp", "pattern").Logger(),
	}, nil
}

// choose picks among k options with a single raw draw reduced modulo
// k. The slight bias for k not a power of two is part of the
// sculpture's captured behavior for a given seed; keep it.
func (e *Engine) choose(k int) int {
	return e.rng.Int() % k
}

// AllOff blanks the whole array in one commit. Idempotent.
func (e *Engine) AllOff() error {
	for i := 0; i < e.drv.Count(); i++ {
		e.drv.SetPixel(i, brightness.Black)
	}
	return e.drv.Show()
}

// NoteFlash lights a random half-panel in each of the six side zones
// with the note's color, lights the top zone half the time, holds the
// composed frame, then blanks everything. Blocking; there is no
// cancellation point once it starts.
//
// Draw order is fixed: side subgroup choices, then side counts, then
// the top coin (and, if lit, the top base and count). Changing it
// changes the observable output of a seeded stream.
func (e *Engine) NoteFlash(c brightness.Color, durationMicros uint32) error {
	zones := topology.SideZones()

	picks := make([]int, len(zones))
	for i, z := range zones {
		picks[i] = e.choose(len(topology.Subgroups(z)))
	}
	counts := make([]int, len(zones))
	for i := range zones {
		counts[i] = 1 + e.choose(4)
	}

	if e.choose(2) != 0 {
		bases := topology.TopBases()
		base := bases[1]
		if e.choose(2) != 0 {
			base = bases[0]
		}
		n := 1 + e.choose(4)
		for j := 0; j < n; j++ {
			e.drv.SetPixel(base+j, c)
		}
	}

	for i, z := range zones {
		sg := topology.Subgroups(z)[picks[i]]
		for j := 0; j < counts[i]; j++ {
			e.drv.SetPixel(sg[j], c)
		}
	}

	if err := e.drv.Show(); err != nil {
		return err
	}
	e.log.Debug().Uint32("hold_us", durationMicros).Msg("note flash")
	e.clock.Sleep(time.Duration(durationMicros) * time.Microsecond)
	return e.AllOff()
}

// DroneCycle breathes the whole array on the red channel until the
// host sends something. If input is already pending on entry it
// returns without lighting anything. Otherwise each pass ascends
// through all 100 brightness steps and descends back down; new input
// during a pass only flags a stop, and the pass in flight always runs
// to completion at its normal rate. On exit the array is left at its
// last rendered brightness, not forced off.
func (e *Engine) DroneCycle() error {
	if e.link.Pending() > 0 {
		return nil
	}

	stepUp := time.Duration(droneUpMicros/droneSteps) * time.Microsecond
	stepDown := time.Duration(droneDownMicros/droneSteps) * time.Microsecond
	e.log.Debug().Dur("step_up", stepUp).Dur("step_down", stepDown).Msg("drone cycle start")

	stop := false
	for {
		for i := 0; i < droneSteps; i++ {
			if !stop && e.link.Pending() > 0 {
				stop = true
			}
			if err := e.renderAll(brightness.Color{R: e.drone[i].R}, stepUp); err != nil {
				return err
			}
		}
		for i := droneSteps - 1; i >= 0; i-- {
			if !stop && e.link.Pending() > 0 {
				stop = true
			}
			if err := e.renderAll(brightness.Color{R: e.drone[i].R}, stepDown); err != nil {
				return err
			}
		}
		if stop {
			e.log.Debug().Msg("drone cycle stopped")
			return nil
		}
	}
}

// renderAll commits one solid-color frame and holds it.
func (e *Engine) renderAll(c brightness.Color, hold time.Duration) error {
	for i := 0; i < e.drv.Count(); i++ {
		e.drv.SetPixel(i, c)
	}
	if err := e.drv.Show(); err != nil {
		return err
	}
	e.clock.Sleep(hold)
	return nil
}
