package session

import "errors"

var (
	// ErrInvalidConfig indicates a driver was selected without the
	// options it requires.
	ErrInvalidConfig = errors.New("invalid session store configuration")

	// ErrUnknownDriver indicates an unrecognized driver name.
	ErrUnknownDriver = errors.New("unknown session store driver")

	// ErrStoreClosed indicates an operation on a closed store.
	ErrStoreClosed = errors.New("session store is closed")
)
