package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks input rejected before touching storage.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrWriteFailed marks a user-initiated write the store did not accept.
	ErrWriteFailed = errors.New("write failed")
	// ErrInternal marks a read failure on a path that propagates errors.
	ErrInternal = errors.New("internal error")
	// ErrUsernameTaken marks a profile save whose username belongs to another
	// user. It is also an ErrInvalidArgument.
	ErrUsernameTaken = fmt.Errorf("%w: username is already taken", ErrInvalidArgument)
)
