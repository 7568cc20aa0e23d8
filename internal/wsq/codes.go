package wsq

import (
	"fmt"
	"strings"
)

// Code is an engine result code, either primary or extended. The values
// match sqlite3.h, which keeps the standard names searchable.
//
// https://www.sqlite.org/rescode.html
type Code int

const (
	SQLITE_OK         Code = 0   // Successful result
	SQLITE_ERROR      Code = 1   // Generic error
	SQLITE_INTERNAL   Code = 2   // Internal logic error in SQLite
	SQLITE_PERM       Code = 3   // Access permission denied
	SQLITE_ABORT      Code = 4   // Callback routine requested an abort
	SQLITE_BUSY       Code = 5   // The database file is locked
	SQLITE_LOCKED     Code = 6   // A table in the database is locked
	SQLITE_NOMEM      Code = 7   // A malloc() failed
	SQLITE_READONLY   Code = 8   // Attempt to write a readonly database
	SQLITE_INTERRUPT  Code = 9   // Operation terminated by sqlite3_interrupt()
	SQLITE_IOERR      Code = 10  // Some kind of disk I/O error occurred
	SQLITE_CORRUPT    Code = 11  // The database disk image is malformed
	SQLITE_NOTFOUND   Code = 12  // Unknown opcode in sqlite3_file_control()
	SQLITE_FULL       Code = 13  // Insertion failed because database is full
	SQLITE_CANTOPEN   Code = 14  // Unable to open the database file
	SQLITE_PROTOCOL   Code = 15  // Database lock protocol error
	SQLITE_EMPTY      Code = 16  // Internal use only
	SQLITE_SCHEMA     Code = 17  // The database schema changed
	SQLITE_TOOBIG     Code = 18  // String or BLOB exceeds size limit
	SQLITE_CONSTRAINT Code = 19  // Abort due to constraint violation
	SQLITE_MISMATCH   Code = 20  // Data type mismatch
	SQLITE_MISUSE     Code = 21  // Library used incorrectly
	SQLITE_NOLFS      Code = 22  // Uses OS features not supported on host
	SQLITE_AUTH       Code = 23  // Authorization denied
	SQLITE_FORMAT     Code = 24  // Not used
	SQLITE_RANGE      Code = 25  // 2nd parameter to sqlite3_bind out of range
	SQLITE_NOTADB     Code = 26  // File opened that is not a database file
	SQLITE_NOTICE     Code = 27  // Notifications from sqlite3_log()
	SQLITE_WARNING    Code = 28  // Warnings from sqlite3_log()
	SQLITE_ROW        Code = 100 // sqlite3_step() has another row ready
	SQLITE_DONE       Code = 101 // sqlite3_step() has finished executing
)

const (
	SQLITE_ERROR_MISSING_COLLSEQ   = SQLITE_ERROR | (1 << 8)
	SQLITE_ERROR_RETRY             = SQLITE_ERROR | (2 << 8)
	SQLITE_ERROR_SNAPSHOT          = SQLITE_ERROR | (3 << 8)
	SQLITE_IOERR_READ              = SQLITE_IOERR | (1 << 8)
	SQLITE_IOERR_SHORT_READ        = SQLITE_IOERR | (2 << 8)
	SQLITE_IOERR_WRITE             = SQLITE_IOERR | (3 << 8)
	SQLITE_IOERR_FSYNC             = SQLITE_IOERR | (4 << 8)
	SQLITE_IOERR_DIR_FSYNC         = SQLITE_IOERR | (5 << 8)
	SQLITE_IOERR_TRUNCATE          = SQLITE_IOERR | (6 << 8)
	SQLITE_IOERR_FSTAT             = SQLITE_IOERR | (7 << 8)
	SQLITE_IOERR_UNLOCK            = SQLITE_IOERR | (8 << 8)
	SQLITE_IOERR_RDLOCK            = SQLITE_IOERR | (9 << 8)
	SQLITE_IOERR_DELETE            = SQLITE_IOERR | (10 << 8)
	SQLITE_IOERR_NOMEM             = SQLITE_IOERR | (12 << 8)
	SQLITE_IOERR_ACCESS            = SQLITE_IOERR | (13 << 8)
	SQLITE_IOERR_LOCK              = SQLITE_IOERR | (15 << 8)
	SQLITE_IOERR_CLOSE             = SQLITE_IOERR | (16 << 8)
	SQLITE_IOERR_SHMOPEN           = SQLITE_IOERR | (18 << 8)
	SQLITE_IOERR_SHMSIZE           = SQLITE_IOERR | (19 << 8)
	SQLITE_IOERR_SHMMAP            = SQLITE_IOERR | (21 << 8)
	SQLITE_IOERR_SEEK              = SQLITE_IOERR | (22 << 8)
	SQLITE_IOERR_DELETE_NOENT      = SQLITE_IOERR | (23 << 8)
	SQLITE_IOERR_MMAP              = SQLITE_IOERR | (24 << 8)
	SQLITE_LOCKED_SHAREDCACHE      = SQLITE_LOCKED | (1 << 8)
	SQLITE_LOCKED_VTAB             = SQLITE_LOCKED | (2 << 8)
	SQLITE_BUSY_RECOVERY           = SQLITE_BUSY | (1 << 8)
	SQLITE_BUSY_SNAPSHOT           = SQLITE_BUSY | (2 << 8)
	SQLITE_BUSY_TIMEOUT            = SQLITE_BUSY | (3 << 8)
	SQLITE_CANTOPEN_NOTEMPDIR      = SQLITE_CANTOPEN | (1 << 8)
	SQLITE_CANTOPEN_ISDIR          = SQLITE_CANTOPEN | (2 << 8)
	SQLITE_CANTOPEN_FULLPATH       = SQLITE_CANTOPEN | (3 << 8)
	SQLITE_CANTOPEN_CONVPATH       = SQLITE_CANTOPEN | (4 << 8)
	SQLITE_CANTOPEN_SYMLINK        = SQLITE_CANTOPEN | (6 << 8)
	SQLITE_CORRUPT_VTAB            = SQLITE_CORRUPT | (1 << 8)
	SQLITE_CORRUPT_SEQUENCE        = SQLITE_CORRUPT | (2 << 8)
	SQLITE_CORRUPT_INDEX           = SQLITE_CORRUPT | (3 << 8)
	SQLITE_READONLY_RECOVERY       = SQLITE_READONLY | (1 << 8)
	SQLITE_READONLY_CANTLOCK       = SQLITE_READONLY | (2 << 8)
	SQLITE_READONLY_ROLLBACK       = SQLITE_READONLY | (3 << 8)
	SQLITE_READONLY_DBMOVED        = SQLITE_READONLY | (4 << 8)
	SQLITE_READONLY_CANTINIT       = SQLITE_READONLY | (5 << 8)
	SQLITE_READONLY_DIRECTORY      = SQLITE_READONLY | (6 << 8)
	SQLITE_ABORT_ROLLBACK          = SQLITE_ABORT | (2 << 8)
	SQLITE_CONSTRAINT_CHECK        = SQLITE_CONSTRAINT | (1 << 8)
	SQLITE_CONSTRAINT_COMMITHOOK   = SQLITE_CONSTRAINT | (2 << 8)
	SQLITE_CONSTRAINT_FOREIGNKEY   = SQLITE_CONSTRAINT | (3 << 8)
	SQLITE_CONSTRAINT_FUNCTION     = SQLITE_CONSTRAINT | (4 << 8)
	SQLITE_CONSTRAINT_NOTNULL      = SQLITE_CONSTRAINT | (5 << 8)
	SQLITE_CONSTRAINT_PRIMARYKEY   = SQLITE_CONSTRAINT | (6 << 8)
	SQLITE_CONSTRAINT_TRIGGER      = SQLITE_CONSTRAINT | (7 << 8)
	SQLITE_CONSTRAINT_UNIQUE       = SQLITE_CONSTRAINT | (8 << 8)
	SQLITE_CONSTRAINT_VTAB         = SQLITE_CONSTRAINT | (9 << 8)
	SQLITE_CONSTRAINT_ROWID        = SQLITE_CONSTRAINT | (10 << 8)
	SQLITE_CONSTRAINT_PINNED       = SQLITE_CONSTRAINT | (11 << 8)
	SQLITE_CONSTRAINT_DATATYPE     = SQLITE_CONSTRAINT | (12 << 8)
	SQLITE_NOTICE_RECOVER_WAL      = SQLITE_NOTICE | (1 << 8)
	SQLITE_NOTICE_RECOVER_ROLLBACK = SQLITE_NOTICE | (2 << 8)
	SQLITE_WARNING_AUTOINDEX       = SQLITE_WARNING | (1 << 8)
	SQLITE_AUTH_USER               = SQLITE_AUTH | (1 << 8)
)

var codeNames = map[Code]string{
	SQLITE_OK:         "SQLITE_OK",
	SQLITE_ERROR:      "SQLITE_ERROR",
	SQLITE_INTERNAL:   "SQLITE_INTERNAL",
	SQLITE_PERM:       "SQLITE_PERM",
	SQLITE_ABORT:      "SQLITE_ABORT",
	SQLITE_BUSY:       "SQLITE_BUSY",
	SQLITE_LOCKED:     "SQLITE_LOCKED",
	SQLITE_NOMEM:      "SQLITE_NOMEM",
	SQLITE_READONLY:   "SQLITE_READONLY",
	SQLITE_INTERRUPT:  "SQLITE_INTERRUPT",
	SQLITE_IOERR:      "SQLITE_IOERR",
	SQLITE_CORRUPT:    "SQLITE_CORRUPT",
	SQLITE_NOTFOUND:   "SQLITE_NOTFOUND",
	SQLITE_FULL:       "SQLITE_FULL",
	SQLITE_CANTOPEN:   "SQLITE_CANTOPEN",
	SQLITE_PROTOCOL:   "SQLITE_PROTOCOL",
	SQLITE_EMPTY:      "SQLITE_EMPTY",
	SQLITE_SCHEMA:     "SQLITE_SCHEMA",
	SQLITE_TOOBIG:     "SQLITE_TOOBIG",
	SQLITE_CONSTRAINT: "SQLITE_CONSTRAINT",
	SQLITE_MISMATCH:   "SQLITE_MISMATCH",
	SQLITE_MISUSE:     "SQLITE_MISUSE",
	SQLITE_NOLFS:      "SQLITE_NOLFS",
	SQLITE_AUTH:       "SQLITE_AUTH",
	SQLITE_FORMAT:     "SQLITE_FORMAT",
	SQLITE_RANGE:      "SQLITE_RANGE",
	SQLITE_NOTADB:     "SQLITE_NOTADB",
	SQLITE_NOTICE:     "SQLITE_NOTICE",
	SQLITE_WARNING:    "SQLITE_WARNING",
	SQLITE_ROW:        "SQLITE_ROW",
	SQLITE_DONE:       "SQLITE_DONE",

	SQLITE_ERROR_MISSING_COLLSEQ:   "SQLITE_ERROR_MISSING_COLLSEQ",
	SQLITE_ERROR_RETRY:             "SQLITE_ERROR_RETRY",
	SQLITE_ERROR_SNAPSHOT:          "SQLITE_ERROR_SNAPSHOT",
	SQLITE_IOERR_READ:              "SQLITE_IOERR_READ",
	SQLITE_IOERR_SHORT_READ:        "SQLITE_IOERR_SHORT_READ",
	SQLITE_IOERR_WRITE:             "SQLITE_IOERR_WRITE",
	SQLITE_IOERR_FSYNC:             "SQLITE_IOERR_FSYNC",
	SQLITE_IOERR_DIR_FSYNC:         "SQLITE_IOERR_DIR_FSYNC",
	SQLITE_IOERR_TRUNCATE:          "SQLITE_IOERR_TRUNCATE",
	SQLITE_IOERR_FSTAT:             "SQLITE_IOERR_FSTAT",
	SQLITE_IOERR_UNLOCK:            "SQLITE_IOERR_UNLOCK",
	SQLITE_IOERR_RDLOCK:            "SQLITE_IOERR_RDLOCK",
	SQLITE_IOERR_DELETE:            "SQLITE_IOERR_DELETE",
	SQLITE_IOERR_NOMEM:             "SQLITE_IOERR_NOMEM",
	SQLITE_IOERR_ACCESS:            "SQLITE_IOERR_ACCESS",
	SQLITE_IOERR_LOCK:              "SQLITE_IOERR_LOCK",
	SQLITE_IOERR_CLOSE:             "SQLITE_IOERR_CLOSE",
	SQLITE_IOERR_SHMOPEN:           "SQLITE_IOERR_SHMOPEN",
	SQLITE_IOERR_SHMSIZE:           "SQLITE_IOERR_SHMSIZE",
	SQLITE_IOERR_SHMMAP:            "SQLITE_IOERR_SHMMAP",
	SQLITE_IOERR_SEEK:              "SQLITE_IOERR_SEEK",
	SQLITE_IOERR_DELETE_NOENT:      "SQLITE_IOERR_DELETE_NOENT",
	SQLITE_IOERR_MMAP:              "SQLITE_IOERR_MMAP",
	SQLITE_LOCKED_SHAREDCACHE:      "SQLITE_LOCKED_SHAREDCACHE",
	SQLITE_LOCKED_VTAB:             "SQLITE_LOCKED_VTAB",
	SQLITE_BUSY_RECOVERY:           "SQLITE_BUSY_RECOVERY",
	SQLITE_BUSY_SNAPSHOT:           "SQLITE_BUSY_SNAPSHOT",
	SQLITE_BUSY_TIMEOUT:            "SQLITE_BUSY_TIMEOUT",
	SQLITE_CANTOPEN_NOTEMPDIR:      "SQLITE_CANTOPEN_NOTEMPDIR",
	SQLITE_CANTOPEN_ISDIR:          "SQLITE_CANTOPEN_ISDIR",
	SQLITE_CANTOPEN_FULLPATH:       "SQLITE_CANTOPEN_FULLPATH",
	SQLITE_CANTOPEN_CONVPATH:       "SQLITE_CANTOPEN_CONVPATH",
	SQLITE_CANTOPEN_SYMLINK:        "SQLITE_CANTOPEN_SYMLINK",
	SQLITE_CORRUPT_VTAB:            "SQLITE_CORRUPT_VTAB",
	SQLITE_CORRUPT_SEQUENCE:        "SQLITE_CORRUPT_SEQUENCE",
	SQLITE_CORRUPT_INDEX:           "SQLITE_CORRUPT_INDEX",
	SQLITE_READONLY_RECOVERY:       "SQLITE_READONLY_RECOVERY",
	SQLITE_READONLY_CANTLOCK:       "SQLITE_READONLY_CANTLOCK",
	SQLITE_READONLY_ROLLBACK:       "SQLITE_READONLY_ROLLBACK",
	SQLITE_READONLY_DBMOVED:        "SQLITE_READONLY_DBMOVED",
	SQLITE_READONLY_CANTINIT:       "SQLITE_READONLY_CANTINIT",
	SQLITE_READONLY_DIRECTORY:      "SQLITE_READONLY_DIRECTORY",
	SQLITE_ABORT_ROLLBACK:          "SQLITE_ABORT_ROLLBACK",
	SQLITE_CONSTRAINT_CHECK:        "SQLITE_CONSTRAINT_CHECK",
	SQLITE_CONSTRAINT_COMMITHOOK:   "SQLITE_CONSTRAINT_COMMITHOOK",
	SQLITE_CONSTRAINT_FOREIGNKEY:   "SQLITE_CONSTRAINT_FOREIGNKEY",
	SQLITE_CONSTRAINT_FUNCTION:     "SQLITE_CONSTRAINT_FUNCTION",
	SQLITE_CONSTRAINT_NOTNULL:      "SQLITE_CONSTRAINT_NOTNULL",
	SQLITE_CONSTRAINT_PRIMARYKEY:   "SQLITE_CONSTRAINT_PRIMARYKEY",
	SQLITE_CONSTRAINT_TRIGGER:      "SQLITE_CONSTRAINT_TRIGGER",
	SQLITE_CONSTRAINT_UNIQUE:       "SQLITE_CONSTRAINT_UNIQUE",
	SQLITE_CONSTRAINT_VTAB:         "SQLITE_CONSTRAINT_VTAB",
	SQLITE_CONSTRAINT_ROWID:        "SQLITE_CONSTRAINT_ROWID",
	SQLITE_CONSTRAINT_PINNED:       "SQLITE_CONSTRAINT_PINNED",
	SQLITE_CONSTRAINT_DATATYPE:     "SQLITE_CONSTRAINT_DATATYPE",
	SQLITE_NOTICE_RECOVER_WAL:      "SQLITE_NOTICE_RECOVER_WAL",
	SQLITE_NOTICE_RECOVER_ROLLBACK: "SQLITE_NOTICE_RECOVER_ROLLBACK",
	SQLITE_WARNING_AUTOINDEX:       "SQLITE_WARNING_AUTOINDEX",
	SQLITE_AUTH_USER:               "SQLITE_AUTH_USER",
}

// Primary returns the primary result code, the least significant 8 bits of
// an extended code.
func (c Code) Primary() Code {
	return c & 0xff
}

// IsError reports whether c signals a failure. SQLITE_OK, SQLITE_ROW and
// SQLITE_DONE are the only non-error codes.
func (c Code) IsError() bool {
	return c != SQLITE_OK && c != SQLITE_ROW && c != SQLITE_DONE
}

// String returns the symbolic name of the code as spelled in sqlite3.h.
// Extended codes without a known name fall back to their primary name.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	if name, ok := codeNames[c.Primary()]; ok {
		return fmt.Sprintf("%s(%d)", name, int(c))
	}
	return fmt.Sprintf("SQLITE_UNKNOWN(%d)", int(c))
}

// OpenFlag is a bit set of flags for Open.
//
// https://www.sqlite.org/c3ref/c_open_autoproxy.html
type OpenFlag int

const (
	SQLITE_OPEN_READONLY     OpenFlag = 0x00000001
	SQLITE_OPEN_READWRITE    OpenFlag = 0x00000002
	SQLITE_OPEN_CREATE       OpenFlag = 0x00000004
	SQLITE_OPEN_URI          OpenFlag = 0x00000040
	SQLITE_OPEN_MEMORY       OpenFlag = 0x00000080
	SQLITE_OPEN_NOMUTEX      OpenFlag = 0x00008000
	SQLITE_OPEN_FULLMUTEX    OpenFlag = 0x00010000
	SQLITE_OPEN_SHAREDCACHE  OpenFlag = 0x00020000
	SQLITE_OPEN_PRIVATECACHE OpenFlag = 0x00040000
	SQLITE_OPEN_NOFOLLOW     OpenFlag = 0x01000000
	SQLITE_OPEN_EXRESCODE    OpenFlag = 0x02000000
)

var openFlagNames = []struct {
	flag OpenFlag
	name string
}{
	{SQLITE_OPEN_READONLY, "SQLITE_OPEN_READONLY"},
	{SQLITE_OPEN_READWRITE, "SQLITE_OPEN_READWRITE"},
	{SQLITE_OPEN_CREATE, "SQLITE_OPEN_CREATE"},
	{SQLITE_OPEN_URI, "SQLITE_OPEN_URI"},
	{SQLITE_OPEN_MEMORY, "SQLITE_OPEN_MEMORY"},
	{SQLITE_OPEN_NOMUTEX, "SQLITE_OPEN_NOMUTEX"},
	{SQLITE_OPEN_FULLMUTEX, "SQLITE_OPEN_FULLMUTEX"},
	{SQLITE_OPEN_SHAREDCACHE, "SQLITE_OPEN_SHAREDCACHE"},
	{SQLITE_OPEN_PRIVATECACHE, "SQLITE_OPEN_PRIVATECACHE"},
	{SQLITE_OPEN_NOFOLLOW, "SQLITE_OPEN_NOFOLLOW"},
	{SQLITE_OPEN_EXRESCODE, "SQLITE_OPEN_EXRESCODE"},
}

// String returns the flag names joined with "|". Unknown bits are appended
// in hexadecimal.
func (f OpenFlag) String() string {
	if f == 0 {
		return "0"
	}

	var parts []string
	rest := f
	for _, fn := range openFlagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
			rest &^= fn.flag
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", int(rest)))
	}

	return strings.Join(parts, "|")
}

// Datatype is one of the fundamental datatypes reported by ColumnType.
//
// https://www.sqlite.org/c3ref/c_blob.html
type Datatype int

const (
	SQLITE_INTEGER Datatype = 1
	SQLITE_FLOAT   Datatype = 2
	SQLITE_TEXT    Datatype = 3
	SQLITE_BLOB    Datatype = 4
	SQLITE_NULL    Datatype = 5
)

// String returns the SQL name of the datatype.
func (t Datatype) String() string {
	switch t {
	case SQLITE_INTEGER:
		return "INTEGER"
	case SQLITE_FLOAT:
		return "FLOAT"
	case SQLITE_TEXT:
		return "TEXT"
	case SQLITE_BLOB:
		return "BLOB"
	case SQLITE_NULL:
		return "NULL"
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}
