package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

var (
	ErrValidation         = errors.New("validation failure")
	ErrPhoneInvalid       = fmt.Errorf("%w: invalid phone number", ErrValidation)
	ErrUnauthorized       = errors.New("unauthorized")
	ErrPersistence        = errors.New("persistence failure")
	ErrMissingCredentials = errors.New("missing credentials")
	ErrRender             = errors.New("render failure")
)

func NewError(model string, err error) error {
	return fmt.Errorf("%s: %w", strings.ToLower(model), err)
}

// KeyedError attaches a message catalog key to an error so the
// transport layer can answer in the caller's language.
type KeyedError struct {
	Err error
	Key string
}

func NewKeyedError(err error, key string) *KeyedError {
	return &KeyedError{Err: err, Key: key}
}

func (e *KeyedError) Error() string {
	return e.Err.Error()
}

func (e *KeyedError) Unwrap() error {
	return e.Err
}

// MessageKey returns the catalog key carried by err, if any.
func MessageKey(err error) (string, bool) {
	var kerr *KeyedError
	if errors.As(err, &kerr) && kerr.Key != "" {
		return kerr.Key, true
	}
	return "", false
}
