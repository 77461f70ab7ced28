package ocrsource

import "errors"

// ErrNoText is returned when recognition produces no usable text fragments.
var ErrNoText = errors.New("no text detected")
