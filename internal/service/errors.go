package service

import "errors"

// Kind classifies an error for callers. Kinds are stable; transports map
// them to status codes.
type Kind int

const (
	KindAuth       Kind = iota + 1 // missing or invalid credential
	KindForbidden                  // authenticated, but not the owner
	KindNotFound                   // referenced entity absent
	KindValidation                 // malformed input, field messages attached
	KindConflict                   // duplicate unique field
)

// Error is the failure type surfaced by the service layer. Fields carries
// every violated field message for validation failures, not just the first.
type Error struct {
	Kind    Kind
	Message string
	Fields  []string
}

func (e *Error) Error() string {
	return e.Message
}

func errAuth() error {
	return &Error{Kind: KindAuth, Message: "not authenticated"}
}

func errForbidden() error {
	return &Error{Kind: KindForbidden, Message: "not authorized"}
}

func errNotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func errValidation(msg string, fields ...string) error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func errConflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// AsError extracts a service Error, if err carries one.
func AsError(err error) (*Error, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
