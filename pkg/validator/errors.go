package validator

import "errors"

var (
	// ErrValidationFailed matches every *Failure via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrFieldConflict is raised (as a panic) when Extend would redefine an existing field.
	ErrFieldConflict = errors.New("validator: field already defined")

	// ErrInvalidPattern is raised (as a panic) when a pattern does not compile.
	ErrInvalidPattern = errors.New("validator: invalid pattern")

	// ErrRestRequired is raised (as a panic) when a tuple maximum is set without a rest validator.
	ErrRestRequired = errors.New("validator: tuple maximum length requires a rest validator")
)
