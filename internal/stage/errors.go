package stage

import (
	"errors"

	"github.com/vovakirdan/mayhem/internal/stage/formats"
)

var (
	// ErrMalformedMap is returned for course files that cannot be parsed or
	// whose colliders are invalid.
	ErrMalformedMap = formats.ErrMalformed

	// ErrNotFound is returned by LoadByID for unknown IDs.
	ErrNotFound = errors.New("stage not found")
)
