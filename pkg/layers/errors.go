package layers

import "errors"

// ErrDimensionMismatch is returned by layer constructors that validate
// the shapes of explicitly supplied parameters against each other.
var ErrDimensionMismatch = errors.New("layers: dimension mismatch between supplied parameters")
