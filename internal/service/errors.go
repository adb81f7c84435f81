package service

import (
	"errors"
	"fmt"

	"github.com/NOTIVEAPP/notive-backend/internal/util"
)

var (
	// ErrDuplicateEmail is returned when registering an already used address.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUnknownEmail is returned by Login when no user has the address.
	ErrUnknownEmail = errors.New("unknown email")
	// ErrInvalidCredentials is returned by Login on a password mismatch.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrSessionInvalid covers bad, expired and revoked session tokens.
	ErrSessionInvalid = errors.New("session invalid")
)

// ValidationError reports a missing or malformed field. Message is client facing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// InvalidEmailError wraps the parser's reason for rejecting an address.
type InvalidEmailError struct {
	Err error
}

func (e *InvalidEmailError) Error() string { return e.Err.Error() }
func (e *InvalidEmailError) Unwrap() error { return e.Err }

// NotFoundError is returned when a resource does not exist (or not under the given parent).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s does not exist", e.Resource) }

// ForbiddenError is returned when a resource belongs to another user.
type ForbiddenError struct {
	Resource string
}

func (e *ForbiddenError) Error() string { return fmt.Sprintf("%s is not yours", e.Resource) }

// StorageError wraps any failure of the backing store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

func validationErr(msg string) error {
	return &ValidationError{Message: msg}
}

// MsgNameTooLong is returned for list, item and user names over util.MaxNameLength.
var MsgNameTooLong = fmt.Sprintf("Error: Name must be at most %d characters!", util.MaxNameLength)

// MsgPasswordTooLong is returned for passwords bcrypt cannot hash.
const MsgPasswordTooLong = "Error: Password is too long!"

// nameErr turns a util.ValidateName failure into a ValidationError; emptyMsg
// is used for a blank name.
func nameErr(err error, emptyMsg string) error {
	if errors.Is(err, util.ErrNameTooLong) {
		return validationErr(MsgNameTooLong)
	}
	return validationErr(emptyMsg)
}
