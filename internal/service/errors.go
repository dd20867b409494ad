package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks a request the caller must fix.
	ErrInvalidArgument = errors.New("service: invalid argument")
	// ErrUnauthorized marks a missing or rejected credential.
	ErrUnauthorized = errors.New("service: unauthorized")
	// ErrNoAreas is returned when an import yields no usable area.
	ErrNoAreas = fmt.Errorf("%w: no valid areas found", ErrInvalidArgument)
)
