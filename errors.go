package buddy

import "errors"

var (
	// ErrTooBig is returned when a requested pool size exceeds the
	// 64GB ceiling.
	ErrTooBig = errors.New("buddy: pool size exceeds ceiling")

	// ErrReservation is returned, wrapping the OS error, when the
	// backing region could not be reserved.
	ErrReservation = errors.New("buddy: arena reservation failed")

	// ErrInitialized is returned by Init when the default pool
	// already exists.
	ErrInitialized = errors.New("buddy: already initialized")

	// ErrTooLarge is returned when a request cannot fit the pool even
	// if it were empty.
	ErrTooLarge = errors.New("buddy: request exceeds pool capacity")

	// ErrNoSpace is returned when no sufficiently large free block is
	// available.
	ErrNoSpace = errors.New("buddy: no space")

	// ErrBadArgument is returned for non-positive sizes and for
	// Realloc(nil, 0).
	ErrBadArgument = errors.New("buddy: bad argument")

	// ErrClosed is returned by operations on a closed pool.
	ErrClosed = errors.New("buddy: closed")
)
