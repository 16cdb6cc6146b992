package expreplay

import "errors"

// ExpReplayError implements errors unique to an experience replay
// buffer. Op names the buffer operation that failed and Err is one of
// the sentinel errors below, possibly wrapped with more detail.
type ExpReplayError struct {
	Op     string
	Err    error
	Detail string
}

// Error satisifes the error interface
func (e *ExpReplayError) Error() string {
	if e.Detail == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error() + ": " + e.Detail
}

// Unwrap returns the sentinel error so that errors.Is can be used
func (e *ExpReplayError) Unwrap() error {
	return e.Err
}

// ErrShapeMismatch is reported when the fields of a batch disagree in
// leading dimension or record shape, or do not match the schema
var ErrShapeMismatch = errors.New("shape mismatch")

// ErrEmptyBuffer is reported when sampling from an empty buffer
var ErrEmptyBuffer = errors.New("buffer empty")

// ErrCapacityExceeded is reported when a single batch is larger than
// the total capacity of a buffer
var ErrCapacityExceeded = errors.New("batch committed to replay is too large")

// ErrConfiguration is reported when a buffer is configured or loaded
// inconsistently
var ErrConfiguration = errors.New("invalid configuration")

// newError returns a new *ExpReplayError
func newError(op string, err error, detail string) error {
	return &ExpReplayError{Op: op, Err: err, Detail: detail}
}

// IsShapeMismatch returns whether or not an error reports that a batch
// did not have the expected shape
func IsShapeMismatch(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

// IsEmptyBuffer returns whether or not an error reports that a
// replay buffer is empty.
func IsEmptyBuffer(err error) bool {
	return errors.Is(err, ErrEmptyBuffer)
}

// IsCapacityExceeded returns whether or not an error reports that a
// batch was too large to store
func IsCapacityExceeded(err error) bool {
	return errors.Is(err, ErrCapacityExceeded)
}

// IsConfiguration returns whether or not an error reports an invalid
// buffer configuration
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}
