package geom

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation marks a violated precondition: a query on a shape that
// was never initialized, or an operation with no defined result.
var ErrInvalidOperation = errors.New("geom: invalid operation")

// ErrZeroVector is returned when a direction is requested from a zero vector.
var ErrZeroVector = fmt.Errorf("%w: zero-length vector has no direction", ErrInvalidOperation)
