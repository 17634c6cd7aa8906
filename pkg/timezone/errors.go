package timezone

import "errors"

// Validation failure kinds produced while resolving a timezone.
// Match them with errors.Is against a *ValidationError.
var (
	ErrOffsetForm   = errors.New("timezone given as a raw UTC offset")
	ErrAbbreviation = errors.New("timezone given as an abbreviation")
	ErrInvalidName  = errors.New("timezone not found in the IANA database")
)

// ValidationError is a caller-correctable input failure.
// Message is suitable for showing to the caller as-is.
type ValidationError struct {
	Kind    error
	Input   string
	Message string
}

// Error returns the human-readable message.
func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the failure kind so errors.Is can classify the error.
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
