package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownHand is returned when a handedness label cannot be parsed.
var ErrUnknownHand = errors.New("unknown batting hand")

// Handedness is the batter's stance.
type Handedness int

// Batting stances.
const (
	Right Handedness = iota
	Left
)

// String returns the stored label, "Right" or "Left".
func (h Handedness) String() string {
	switch h {
	case Right:
		return "Right"
	case Left:
		return "Left"
	default:
		return fmt.Sprintf("Handedness(%d)", int(h))
	}
}

// Valid reports whether h is one of the defined stances.
func (h Handedness) Valid() bool {
	return h == Right || h == Left
}

// ParseHandedness accepts the labels used by ball-by-ball feeds:
// Right/Left, RHB/LHB and R/L, case-insensitive.
func ParseHandedness(s string) (Handedness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "rhb", "r", "right-handed":
		return Right, nil
	case "left", "lhb", "l", "left-handed":
		return Left, nil
	default:
		return Right, fmt.Errorf("%w: %q", ErrUnknownHand, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (h Handedness) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHand, int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Handedness) UnmarshalText(b []byte) error {
	v, err := ParseHandedness(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}
