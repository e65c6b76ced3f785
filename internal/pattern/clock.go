package pattern

import "time"

// Clock abstracts the timed holds inside patterns so tests can
// fast-forward instead of sleeping for real. Pattern steps hold tens
// of milliseconds and note flashes can hold for seconds.
type Clock interface {
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// RealClock returns a Clock backed by time.Sleep.
func RealClock() Clock { return realClock{} }
