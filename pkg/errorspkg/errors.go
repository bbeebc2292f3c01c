// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates an internal server error, e.g. a store failure.
var ErrInternal = errors.New("internal")
