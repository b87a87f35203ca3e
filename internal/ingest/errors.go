package ingest

import "errors"

// Sentinel errors returned by the CSV reader and the import runner.
var (
	ErrEmptyInput    = errors.New("empty input")
	ErrMissingColumn = errors.New("missing required column")
	ErrInvalidRow    = errors.New("invalid row")
	ErrNoSource      = errors.New("no input file and generation disabled")
)
