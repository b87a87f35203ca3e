package render

import "errors"

// Sentinel kinds for render errors.
var (
	ErrWrite       = errors.New("render write failed")
	ErrEmptyFigure = errors.New("figure has no radial limit")
)
