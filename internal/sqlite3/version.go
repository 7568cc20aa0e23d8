package sqlite3

import (
	"strconv"

	"github.com/nsqlite/wsq/internal/version"
	"github.com/nsqlite/wsq/internal/wsq"
)

// Version describes the linked engine and this binding. Keys specific to
// SQLite carry the "sqlite3." prefix.
//
//	version                 engine version string
//	binding                 version of this module
//	sqlite3.sourceid        engine check-in identifier
//	sqlite3.version_number  engine version as X*1000000+Y*1000+Z
func Version() map[string]string {
	return map[string]string{
		"version":                wsq.LibVersion(),
		"binding":                version.Version,
		"sqlite3.sourceid":       wsq.SourceID(),
		"sqlite3.version_number": strconv.Itoa(wsq.LibVersionNumber()),
	}
}
