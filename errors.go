package sox

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument reports a malformed request that is rejected
	// before any process is launched.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFileNotFound reports a missing input file.
	ErrFileNotFound = errors.New("file not found")

	// ErrNotWritable reports an output destination that cannot be
	// written to.
	ErrNotWritable = errors.New("destination not writable")
)

// SoxiError is returned when soxi exits with a non-zero status. General
// processing calls report failures through Result.Status instead; the
// introspection path raises because a caller waiting on a single scalar
// cannot proceed past a missing field.
type SoxiError struct {
	ExitCode int
	Stderr   string
}

func (e *SoxiError) Error() string {
	return fmt.Sprintf("soxi failed with exit code %d", e.ExitCode)
}
