package errors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrInvalidEmail       = New(ErrInvalid, "invalid email")
	ErrPasswordRequired   = New(ErrInvalid, "password required")
	ErrTitleRequired      = New(ErrInvalid, "title required")
	ErrUnknownFilter      = New(ErrInvalid, "unknown filter")
	ErrSelfFollow         = New(ErrInvalid, "users cannot follow themselves")
	ErrUserExists         = New(ErrConflict, "user with that email already exists")
	ErrInvalidCredentials = New(ErrUnauthorized, "invalid credentials")
	ErrPostNotOwned       = New(ErrUnauthorized, "user not authorized to modify this micro post")
	ErrUserNotFound       = New(ErrNotFound, "user not found")
	ErrPostNotFound       = New(ErrNotFound, "micro post not found")
)

// kindError carries a client facing message while still matching its kind
// through errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Unwrap() error {
	return e.kind
}

func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}
