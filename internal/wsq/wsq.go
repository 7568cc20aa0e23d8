package wsq

/*
#cgo LDFLAGS: -lsqlite3
#include <stdlib.h>
#include "wrapper.h"
*/
import "C"
import "unsafe"

// DB is an opaque database connection handle. The zero value is the NULL
// handle.
//
// https://www.sqlite.org/c3ref/sqlite3.html
type DB struct {
	p C.wsq_db
}

// IsNil reports whether the handle is NULL.
func (db DB) IsNil() bool {
	return db.p == nil
}

// Stmt is an opaque prepared statement handle. The zero value is the NULL
// handle.
//
// https://www.sqlite.org/c3ref/stmt.html
type Stmt struct {
	p C.wsq_st
}

// IsNil reports whether the handle is NULL.
func (st Stmt) IsNil() bool {
	return st.p == nil
}

// Open opens the database file name. An empty vfs selects the default VFS.
//
// The engine may hand back a non-NULL handle even when it fails, in which
// case the caller still has to Close it.
//
// https://www.sqlite.org/c3ref/open.html
func Open(name string, flags OpenFlag, vfs string) (DB, Code) {
	cName := C.CString(name)
	defer C.free(unsafe.Pointer(cName))

	var cVfs *C.char
	if vfs != "" {
		cVfs = C.CString(vfs)
		defer C.free(unsafe.Pointer(cVfs))
	}

	var db DB
	resCode := C.wsq_open(cName, &db.p, C.int(flags), cVfs)
	return db, Code(resCode)
}

// Prepare compiles the first statement in sql. It returns the statement
// handle, the unparsed remainder of sql and the engine status code.
//
// Input made only of whitespace or comments yields SQLITE_OK and a NULL
// statement.
//
// https://www.sqlite.org/c3ref/prepare.html
func Prepare(db DB, sql string) (Stmt, string, Code) {
	cSQL := C.CString(sql)
	defer C.free(unsafe.Pointer(cSQL))

	var st Stmt
	var cTail *C.char
	resCode := C.wsq_prepare(db.p, cSQL, C.int(len(sql)), &st.p, &cTail)

	tail := ""
	if cTail != nil {
		offset := int(uintptr(unsafe.Pointer(cTail)) - uintptr(unsafe.Pointer(cSQL)))
		if offset >= 0 && offset < len(sql) {
			tail = sql[offset:]
		}
	}

	return st, tail, Code(resCode)
}

// Step evaluates the statement up to the next row. It returns SQLITE_ROW,
// SQLITE_DONE or an error code.
//
// https://www.sqlite.org/c3ref/step.html
func Step(st Stmt) Code {
	return Code(C.wsq_step(st.p))
}

// ColumnCount returns the number of columns in the result set of st.
//
// https://www.sqlite.org/c3ref/column_count.html
func ColumnCount(st Stmt) int {
	return int(C.wsq_column_count(st.p))
}

// ColumnType returns the datatype of the value in column col of the current
// row.
//
// https://www.sqlite.org/c3ref/column_blob.html
func ColumnType(st Stmt, col int) Datatype {
	return Datatype(C.wsq_column_type(st.p, C.int(col)))
}

// ColumnName returns the name of column col.
//
// https://www.sqlite.org/c3ref/column_name.html
func ColumnName(st Stmt, col int) string {
	return C.GoString(C.wsq_column_name(st.p, C.int(col)))
}

// ColumnText returns the value of column col in the current row as text.
// A NULL value is returned as the empty string.
//
// https://www.sqlite.org/c3ref/column_blob.html
func ColumnText(st Stmt, col int) string {
	text := C.wsq_column_text(st.p, C.int(col))
	return C.GoString((*C.char)(unsafe.Pointer(text)))
}

// Finalize destroys the statement.
//
// https://www.sqlite.org/c3ref/finalize.html
func Finalize(st Stmt) Code {
	return Code(C.wsq_finalize(st.p))
}

// Close closes the database connection.
//
// https://www.sqlite.org/c3ref/close.html
func Close(db DB) Code {
	return Code(C.wsq_close(db.p))
}

// Errcode returns the primary result code of the most recent failed call on
// db.
//
// https://www.sqlite.org/c3ref/errcode.html
func Errcode(db DB) Code {
	return Code(C.wsq_errcode(db.p))
}

// ExtendedErrcode returns the extended result code of the most recent failed
// call on db.
//
// https://www.sqlite.org/c3ref/errcode.html
func ExtendedErrcode(db DB) Code {
	return Code(C.wsq_extended_errcode(db.p))
}

// Errmsg returns the English-language message of the most recent failed call
// on db.
//
// https://www.sqlite.org/c3ref/errcode.html
func Errmsg(db DB) string {
	return C.GoString(C.wsq_errmsg(db.p))
}

// LibVersion returns the version string of the linked SQLite library.
//
// https://www.sqlite.org/c3ref/libversion.html
func LibVersion() string {
	return C.GoString(C.wsq_libversion())
}

// SourceID returns the check-in identifier of the linked SQLite library.
//
// https://www.sqlite.org/c3ref/libversion.html
func SourceID() string {
	return C.GoString(C.wsq_sourceid())
}

// LibVersionNumber returns the version of the linked SQLite library as
// X*1000000 + Y*1000 + Z.
//
// https://www.sqlite.org/c3ref/libversion.html
func LibVersionNumber() int {
	return int(C.wsq_libversion_number())
}

// BusyTimeout sets a busy handler that sleeps for up to ms milliseconds
// while a table is locked. A value of zero or less turns the handler off.
//
// https://www.sqlite.org/c3ref/busy_timeout.html
func BusyTimeout(db DB, ms int) Code {
	return Code(C.wsq_busy_timeout(db.p, C.int(ms)))
}
