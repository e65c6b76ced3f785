package topology

import "fmt"

// The 88 bulbs are wired as 6 output strips and mounted as 11 panels
// of 8 LEDs each. Intervals are flat LED addresses; panel 11 sits on
// top of the Ark.
//
//	Strip 1: panels 1-2; 16 LEDs.    Strip 4: panels 7-8; 16 LEDs.
//	Strip 2: panels 3-4; 16 LEDs.    Strip 5: panels 9-10; 16 LEDs.
//	Strip 3: panels 5-6; 16 LEDs.    Strip 6: panel 11; 8 LEDs.
//
//	                       P11 [80,87]
//
//	              P9 [64,71] P8 [56,63] P7 [48,55]
//	P10 [72,79]                                      P6 [40,47]
//	P1  [0,7]                                        P5 [32,39]
//	              P2 [8,15]  P3 [16,23] P4 [24,31]
//
// The panels group into 7 zones:
//
//	Front      : P1, P10        Back       : P5, P6
//	Right-left : P2, half of P3 Right-right: P4, half of P3
//	Left-left  : P7, half of P8 Left-right : P9, half of P8
//	Top        : P11
const (
	NumLEDs      = 88
	NumStrips    = 6
	NumPanels    = 11
	LEDsPerPanel = 8
	LEDsPerStrip = 16 // maximum; strip 6 carries only panel 11

	SubgroupSize = 4
)

// Zone is one of the 7 logical LED groupings.
type Zone int

const (
	Front Zone = iota
	Back
	LeftLeft
	LeftRight
	RightLeft
	RightRight
	Top
)

func (z Zone) String() string {
	switch z {
	case Front:
		return "front"
	case Back:
		return "back"
	case LeftLeft:
		return "left-left"
	case LeftRight:
		return "left-right"
	case RightLeft:
		return "right-left"
	case RightRight:
		return "right-right"
	case Top:
		return "top"
	}
	return fmt.Sprintf("zone(%d)", int(z))
}

// Subgroup is a selectable quadruple of LED addresses within a zone.
type Subgroup [SubgroupSize]int

var (
	front = []Subgroup{
		{72, 73, 74, 75},
		{76, 77, 78, 79},
		{0, 1, 2, 3},
		{4, 5, 6, 7},
	}

	back = []Subgroup{
		{32, 33, 34, 35},
		{36, 37, 38, 39},
		{40, 41, 42, 43},
		{44, 45, 46, 47},
	}

	leftLeft = []Subgroup{
		{48, 49, 50, 51},
		{52, 53, 54, 55},
		{56, 57, 58, 59},
	}

	leftRight = []Subgroup{
		{60, 61, 62, 63},
		{64, 65, 66, 67},
		{68, 69, 70, 71},
	}

	rightLeft = []Subgroup{
		{8, 9, 10, 11},
		{12, 13, 14, 15},
		{16, 17, 18, 19},
	}

	rightRight = []Subgroup{
		{20, 21, 22, 23},
		{24, 25, 26, 27},
		{28, 29, 30, 31},
	}

	// Top exposes two base offsets into panel 11 rather than a
	// subgroup list; each spans SubgroupSize LEDs.
	topBases = [2]int{80, 84}
)

// Subgroups returns the ordered selectable quadruples of a non-top
// zone. Top has no subgroup list; it returns nil.
func Subgroups(z Zone) []Subgroup {
	switch z {
	case Front:
		return front
	case Back:
		return back
	case LeftLeft:
		return leftLeft
	case LeftRight:
		return leftRight
	case RightLeft:
		return rightLeft
	case RightRight:
		return rightRight
	}
	return nil
}

// TopBases returns the two selectable base offsets of the top zone.
func TopBases() [2]int {
	return topBases
}

// SideZones lists the 6 non-top zones in the order a note flash
// draws them.
func SideZones() []Zone {
	return []Zone{Front, Back, LeftLeft, LeftRight, RightLeft, RightRight}
}

// Validate checks the partition invariant: the non-top subgroups
// cover addresses 0-79 exactly once with consecutive quadruples, and
// the top bases cover 80-87. The tables are compile-time constants
// but a miswired table lights the wrong bulbs forever, so this runs
// once at startup.
func Validate() error {
	seen := make([]bool, NumLEDs)

	for _, z := range SideZones() {
		subs := Subgroups(z)
		if len(subs) == 0 {
			return fmt.Errorf("zone %s has no subgroups", z)
		}
		for si, sg := range subs {
			for j, idx := range sg {
				if idx < 0 || idx >= NumLEDs-LEDsPerPanel {
					return fmt.Errorf("zone %s subgroup %d: address %d outside side panels", z, si, idx)
				}
				if j > 0 && idx != sg[j-1]+1 {
					return fmt.Errorf("zone %s subgroup %d: addresses not consecutive", z, si)
				}
				if seen[idx] {
					return fmt.Errorf("zone %s subgroup %d: address %d claimed twice", z, si, idx)
				}
				seen[idx] = true
			}
		}
	}
	for i := 0; i < NumLEDs-LEDsPerPanel; i++ {
		if !seen[i] {
			return fmt.Errorf("address %d not covered by any zone", i)
		}
	}

	for _, base := range topBases {
		for j := 0; j < SubgroupSize; j++ {
			idx := base + j
			if idx < NumLEDs-LEDsPerPanel || idx >= NumLEDs {
				return fmt.Errorf("top base %d: address %d outside top panel", base, idx)
			}
			if seen[idx] {
				return fmt.Errorf("top base %d: address %d claimed twice", base, idx)
			}
			seen[idx] = true
		}
	}
	for i := NumLEDs - LEDsPerPanel; i < NumLEDs; i++ {
		if !seen[i] {
			return fmt.Errorf("top address %d not covered", i)
		}
	}
	return nil
}
