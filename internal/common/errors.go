// Package common defines sentinel errors and small helpers shared by the
// toldya server and client. Callers should use errors.Is to match the errors.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors. ErrorInternal is the only error surfaced to callers
	// for store or unexpected failures; the cause is logged server-side.
	ErrorInternal = errors.New("internal error")

	// ErrorValidation is the base of every caller-input error.
	ErrorValidation = errors.New("validation error")

	ErrMissingFields       = fmt.Errorf("%w: missing required fields", ErrorValidation)
	ErrFieldLengthExceeded = fmt.Errorf("%w: field length exceeded", ErrorValidation)
	ErrInvalidRevealTime   = fmt.Errorf("%w: revealTime is not a number", ErrorValidation)
	ErrMissingMessageID    = fmt.Errorf("%w: missing message_id", ErrorValidation)
)
