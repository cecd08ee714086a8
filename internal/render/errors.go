package render

import "errors"

// ErrUnknownFormat is returned when an output format name is not recognised.
var ErrUnknownFormat = errors.New("unknown output format")
