package community

import "errors"

// Common sentinel errors
var (
	ErrNilGraph  = errors.New("graph is nil")
	ErrCancelled = errors.New("detection cancelled")
)
