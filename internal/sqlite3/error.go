package sqlite3

import (
	"errors"
	"fmt"

	"github.com/nsqlite/wsq/internal/wsq"
)

var (
	// ErrNoName is returned by Open when the connection info has no name.
	ErrNoName = errors.New("no name in connection info")
	// ErrNoResults is returned when fetching from a cursor without a
	// pending row.
	ErrNoResults = errors.New("no results to fetch")
	// ErrClosed is returned when using a closed connection.
	ErrClosed = errors.New("connection is closed")
)

// Error is a failure reported by the engine, captured from the database
// handle right after the failing call.
type Error struct {
	Code     wsq.Code
	Extended wsq.Code
	Message  string
}

func (e *Error) Error() string {
	if e.Extended != e.Code && e.Extended != 0 {
		return fmt.Sprintf("%s (%s): %s", e.Code, e.Extended, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// newError reads the error state of db. When the handle reports no error,
// fallback is used as the code.
func newError(db wsq.DB, fallback wsq.Code) *Error {
	e := &Error{
		Code:     wsq.Errcode(db),
		Extended: wsq.ExtendedErrcode(db),
		Message:  wsq.Errmsg(db),
	}
	if !e.Code.IsError() {
		e.Code = fallback.Primary()
		e.Extended = fallback
	}
	return e
}

// ErrorCode returns the primary engine code carried by err, or SQLITE_OK if
// err does not wrap an *Error.
func ErrorCode(err error) wsq.Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return wsq.SQLITE_OK
}

// ExtendedErrorCode returns the extended engine code carried by err, or
// SQLITE_OK if err does not wrap an *Error.
func ExtendedErrorCode(err error) wsq.Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Extended
	}
	return wsq.SQLITE_OK
}
