package leads

import "errors"

var (
	// ErrSheetsNotConfigured is returned when the spreadsheet credentials are
	// missing. The sheet is the system of record, so this fails the whole
	// submission rather than degrading silently.
	ErrSheetsNotConfigured = errors.New("google sheets credentials are not fully configured")
)

// ValidationError is a rejected submission; Message is safe to show the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
