package dm

import (
	"errors"
	"fmt"
)

// Status is a data-model result code, numbered like CoAP response codes
// (class << 5 | detail).
type Status uint8

const (
	StatusOK               Status = 0
	StatusBadRequest       Status = 4<<5 | 0
	StatusInvalidArgument  Status = 4<<5 | 6
	StatusNotFound         Status = 4<<5 | 4
	StatusMethodNotAllowed Status = 4<<5 | 5
	StatusInternal         Status = 5<<5 | 0
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusBadRequest:
		return "bad_request"
	case StatusInvalidArgument:
		return "invalid_argument"
	case StatusNotFound:
		return "not_found"
	case StatusMethodNotAllowed:
		return "method_not_allowed"
	case StatusInternal:
		return "internal"
	}
	return fmt.Sprintf("status(%d.%02d)", s>>5, s&0x1f)
}

// Error is a failed data-model request.
type Error struct {
	Status   Status
	Op       string
	Resource ResourceID
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	s := e.Status.String()
	if e.Op != "" {
		s = e.Op + " " + e.Resource.String() + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same status, so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Status == e.Status
}

// Sentinels for errors.Is.
var (
	ErrBadRequest       = &Error{Status: StatusBadRequest}
	ErrInvalidArgument  = &Error{Status: StatusInvalidArgument}
	ErrNotFound         = &Error{Status: StatusNotFound}
	ErrMethodNotAllowed = &Error{Status: StatusMethodNotAllowed}
	ErrInternal         = &Error{Status: StatusInternal}
)

// StatusOf extracts the status of err; nil is StatusOK and foreign errors are
// StatusInternal.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return StatusInternal
}

func fail(status Status, op string, rid ResourceID, err error) error {
	return &Error{Status: status, Op: op, Resource: rid, Err: err}
}
