package types

import "errors"

// Domain specific errors for location resolution.
var (
	ErrNoLocation = errors.New("location could not be resolved")
	ErrBadRequest = errors.New("bad request")
)
