package errors

import "errors"

// Error codes shared across domains. Handlers branch on these to pick a
// status code and the services use them to classify provider failures.
const (
	CodeInvalidInput         = "invalid_input"
	CodeSchemaError          = "schema_error"
	CodeEmptyDataset         = "empty_dataset"
	CodeNotFound             = "not_found"
	CodeCredentialMissing    = "credential_missing"
	CodeResolutionFailed     = "resolution_failed"
	CodePollutionUnavailable = "pollution_unavailable"
	CodeTransportFailure     = "transport_failure"
	CodeGenerationFailure    = "generation_failure"
)

// AppError encodes domain specific error details.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap produces a new AppError instance.
func Wrap(code, message string, err error) error {
	if err == nil {
		return &AppError{Code: code, Message: message}
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// IsCode helps handlers differentiate failures.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Code extracts the machine readable code, or empty for foreign errors.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Message returns the stable top-level message without the wrapped cause.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
