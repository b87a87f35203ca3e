package wheel

import "errors"

// ErrNoData means a delivery set cannot produce any wheel.
var ErrNoData = errors.New("no wheel data")
