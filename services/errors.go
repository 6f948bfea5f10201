package services

import "fmt"

// ValidationError means the request itself is malformed (blank or
// oversize fields, empty item list). The caller can fix the input and
// retry.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced user, vegetable or order does not
// exist. When several ids were requested the message lists the missing
// ones.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFoundError(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError means the request is valid but the current state
// forbids it: out of stock, insufficient stock, or an order status that
// no longer allows cancel/delete.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// TransactionError wraps a store failure during begin/commit or a write
// inside an open transaction.
type TransactionError struct {
	Message string
	Err     error
}

func (e *TransactionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TransactionError) Unwrap() error { return e.Err }

func NewTransactionError(err error, format string, args ...interface{}) *TransactionError {
	return &TransactionError{Message: fmt.Sprintf(format, args...), Err: err}
}
