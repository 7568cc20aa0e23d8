package sqlite3

import (
	"fmt"
	"time"

	"github.com/nsqlite/wsq/internal/wsq"
)

// Conn is an open database connection.
type Conn struct {
	db   wsq.DB
	name string
}

// Open opens the database described by info.
//
// When the engine fails to open the database the returned error is an
// *Error read from the half-open handle, which is then closed.
func Open(info ConnInfo) (*Conn, error) {
	name, err := info.name()
	if err != nil {
		return nil, err
	}
	flags, err := info.flags()
	if err != nil {
		return nil, err
	}
	vfs, err := info.vfs()
	if err != nil {
		return nil, err
	}
	timeout, hasTimeout, err := info.busyTimeout()
	if err != nil {
		return nil, err
	}

	db, resCode := wsq.Open(name, flags, vfs)
	if resCode != wsq.SQLITE_OK {
		var openErr *Error
		if db.IsNil() {
			openErr = &Error{Code: resCode.Primary(), Extended: resCode, Message: "unable to allocate database handle"}
		} else {
			openErr = newError(db, resCode)
			_ = wsq.Close(db)
		}
		return nil, fmt.Errorf("failed to open database %q: %w", name, openErr)
	}

	conn := &Conn{db: db, name: name}
	if hasTimeout {
		if err := conn.BusyTimeout(timeout); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}

	return conn, nil
}

// Name returns the name the connection was opened with.
func (conn *Conn) Name() string {
	return conn.name
}

// Handle returns the underlying database handle. It is the NULL handle once
// the connection has been closed.
func (conn *Conn) Handle() wsq.DB {
	return conn.db
}

// Cursor returns a new cursor on the connection.
func (conn *Conn) Cursor() *Cursor {
	return &Cursor{conn: conn}
}

// BusyTimeout makes the connection wait up to d for locks held by other
// connections. Zero or a negative value turns waiting off.
func (conn *Conn) BusyTimeout(d time.Duration) error {
	if conn.db.IsNil() {
		return ErrClosed
	}

	resCode := wsq.BusyTimeout(conn.db, int(d.Milliseconds()))
	if resCode != wsq.SQLITE_OK {
		return fmt.Errorf("failed to set busy timeout: %w", newError(conn.db, resCode))
	}
	return nil
}

// Close closes the connection. All cursors must be closed first. Closing a
// closed connection forwards the NULL handle, which the engine accepts.
func (conn *Conn) Close() error {
	resCode := wsq.Close(conn.db)
	if resCode != wsq.SQLITE_OK {
		return fmt.Errorf("failed to close database: %w", newError(conn.db, resCode))
	}
	conn.db = wsq.DB{}
	return nil
}
