package domain

import "errors"

// ErrorKind é a taxonomia de falhas exposta pelas operações públicas.
// Callers decidem pelo kind, nunca pelo texto da mensagem.
type ErrorKind string

const (
	ErrorKindNotFound      ErrorKind = "not_found"
	ErrorKindUnauthorized  ErrorKind = "unauthorized"
	ErrorKindConflict      ErrorKind = "conflict"
	ErrorKindLimitExceeded ErrorKind = "limit_exceeded"
	ErrorKindInternal      ErrorKind = "internal"
)

type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewNotFound(message string) *Error {
	return &Error{Kind: ErrorKindNotFound, Message: message}
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: ErrorKindUnauthorized, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Kind: ErrorKindConflict, Message: message}
}

func NewLimitExceeded(message string) *Error {
	return &Error{Kind: ErrorKindLimitExceeded, Message: message}
}

func NewInternal(message string, cause error) *Error {
	return &Error{Kind: ErrorKindInternal, Message: message, cause: cause}
}

// KindOf classifica qualquer erro: falhas não estruturadas viram Internal.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ErrorKindInternal
}
