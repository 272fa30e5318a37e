package services

import "fmt"

// ValidationError reports an input that violates a documented constraint. It
// is recoverable: the caller fixes the field and retries with new input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ComputationError reports an arithmetic result that should be unreachable
// for validated input (NaN or infinity). It always indicates a defect, never
// bad user input.
type ComputationError struct {
	Detail string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation produced a non-finite result: %s", e.Detail)
}
