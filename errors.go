package uuidshim

import "errors"

var (
	// ErrInvalidFormat indicates that the UUID string format is invalid
	ErrInvalidFormat = errors.New("uuidshim: invalid UUID format")

	// ErrInvalidLength indicates that the UUID byte slice has incorrect length
	ErrInvalidLength = errors.New("uuidshim: invalid UUID length (expected 16 bytes)")

	// ErrNotTimeBased indicates that a time or node query was made on a UUID
	// that is not version 1
	ErrNotTimeBased = errors.New("uuidshim: UUID is not time-based (expected version 1)")
)
