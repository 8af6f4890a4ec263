package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateCode indicates that the code is already in use within the tenant.
var ErrDuplicateCode = errors.New("code already in use")

// ErrInvalidLine indicates a journal line carrying both sides, no side, or a negative amount.
var ErrInvalidLine = errors.New("invalid journal line")

// ErrEmptyEntry indicates an attempt to post a journal entry without lines.
var ErrEmptyEntry = errors.New("journal entry has no lines")

// ErrUnbalanced indicates the entry's debit and credit totals differ at posting time.
var ErrUnbalanced = errors.New("journal entry is not balanced")

// ErrInvalidStateTransition indicates an operation not allowed for the entry's current status.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// ErrAlreadyReversed indicates a reversal already exists for the entry.
var ErrAlreadyReversed = errors.New("journal entry already reversed")

// ErrAlreadyMatched indicates the bank transaction is already matched.
var ErrAlreadyMatched = errors.New("bank transaction already matched")

// ErrAlreadyPaid indicates the invoice has no open amount left to pay.
var ErrAlreadyPaid = errors.New("invoice already paid")

// ErrInvoiceNotPostable indicates the invoice is still a draft and cannot receive payments.
var ErrInvoiceNotPostable = errors.New("invoice is not postable")

// ErrNotACreditTransaction indicates the bank transaction amount is not positive.
var ErrNotACreditTransaction = errors.New("bank transaction is not an incoming payment")

// ErrNotMatched indicates an unmatch attempt on a transaction that carries no match.
var ErrNotMatched = errors.New("bank transaction is not matched")

// ErrConfiguration indicates a required system account or journal is missing.
// This is a deployment precondition failure, not a user error.
var ErrConfiguration = errors.New("ledger configuration incomplete")

// ErrAccountTypeLocked indicates an attempt to change the type of an account
// that already has posted lines against it.
var ErrAccountTypeLocked = errors.New("account type is locked by posted lines")

// ErrInternal indicates an unexpected infrastructure failure. It must never be
// interpreted as a successful domain operation.
var ErrInternal = errors.New("internal error")

// AppError wraps an infrastructure failure with a status-like code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInternal
}

// NewAppError creates a new AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches apperrors.ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
