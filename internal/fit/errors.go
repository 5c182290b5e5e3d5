package fit

import "errors"

// ErrInvalidInput is returned by ClassifyStrict when totalRAM is not positive
// or either operand is NaN.
var ErrInvalidInput = errors.New("invalid fit input")

// IsInvalidInput reports whether err wraps ErrInvalidInput.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
