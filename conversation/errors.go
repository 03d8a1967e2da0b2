package conversation

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Kind classifies a service failure so transports can map it to a status
type Kind uint8

// Failure kinds
const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindStore
)

// Error is returned by every Service method that fails
type Error struct {
	Kind    Kind
	Message string
	// Field names the offending input for validation failures
	Field string
	Err   error
}

// Sentinels for errors.Is. They match any Error of the same kind.
var (
	ErrValidation = &Error{Kind: KindValidation}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrStore      = &Error{Kind: KindStore}
)

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Message != "" || t.Err != nil {
		return false
	}
	return t.Kind == e.Kind
}

func validationError(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

func notFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// storeError maps a missing document to NotFound and anything else to a store failure
func storeError(message, notFoundMessage string, err error) *Error {
	if notFoundMessage != "" && errors.Is(err, mongo.ErrNoDocuments) {
		return notFound(notFoundMessage)
	}
	return &Error{Kind: KindStore, Message: message, Err: err}
}
