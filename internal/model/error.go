package model

import "errors"

// Application level sentinel errors. Services wrap these into AppError so
// handlers can map them to HTTP statuses without inspecting messages.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("resource conflict")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrWrongCredentials = errors.New("wrong credentials")
	ErrInternalServer   = errors.New("internal server error")
)

// AppError carries a machine code, a human message and optionally the name
// of the request field the error refers to (validation style errors).
type AppError struct {
	Code    string
	Message string
	Field   string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{Code: code, Message: message, Field: field, Err: err}
}
