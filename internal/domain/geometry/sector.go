package geometry

import "math"

// SectorCount is the number of fixed scoring areas around the ground.
const SectorCount = 8

// sectorWidth is the angular width of one scoring area in degrees.
const sectorWidth = fullTurn / SectorCount

// Sector is a field-frame angular range. Ranges are half-open [Start, End),
// except the last sector, which also contains End (360°, the same direction
// as 0°).
type Sector struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Sectors returns the eight fixed scoring areas in field-frame order.
func Sectors() []Sector {
	out := make([]Sector, SectorCount)
	for i := range out {
		out[i] = Sector{
			Index: i,
			Start: float64(i) * sectorWidth,
			End:   float64(i+1) * sectorWidth,
		}
	}
	return out
}

// Contains reports whether a field-frame angle falls in the sector.
func (s Sector) Contains(angle float64) bool {
	if s.Index == SectorCount-1 {
		return angle >= s.Start && angle <= s.End
	}
	return angle >= s.Start && angle < s.End
}

// Mid is the field-frame midpoint of the sector.
func (s Sector) Mid() float64 {
	return (s.Start + s.End) / 2
}

// SectorOf returns the index of the sector containing angle. Angles outside
// [0, 360] and NaN belong to no sector.
func SectorOf(angle float64) (int, bool) {
	if math.IsNaN(angle) || angle < 0 || angle > fullTurn {
		return 0, false
	}
	i := int(angle / sectorWidth)
	if i >= SectorCount {
		i = SectorCount - 1
	}
	return i, true
}
