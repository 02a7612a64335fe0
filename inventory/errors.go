package inventory

import "errors"

// ValidationKind tags a ValidationError so callers can branch on the kind of
// rule that failed instead of matching message text.
type ValidationKind string

// The validation failure kinds.
const (
	KindEmptyField    ValidationKind = "empty_field"
	KindOutOfRange    ValidationKind = "out_of_range"
	KindDuplicateKey  ValidationKind = "duplicate_key"
	KindNotFound      ValidationKind = "not_found"
	KindInvalidEnum   ValidationKind = "invalid_enum"
	KindInvertedRange ValidationKind = "inverted_range"
)

// ValidationError is returned for any business-rule violation. It is always
// recoverable: correct the input and retry.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func emptyField(message string) *ValidationError {
	return &ValidationError{Kind: KindEmptyField, Message: message}
}

func outOfRange(message string) *ValidationError {
	return &ValidationError{Kind: KindOutOfRange, Message: message}
}

func invalidEnum(message string) *ValidationError {
	return &ValidationError{Kind: KindInvalidEnum, Message: message}
}
