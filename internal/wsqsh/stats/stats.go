// Package stats counts what a shell session ran, by kind of statement.
package stats

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/nsqlite/wsq/internal/util/syncutil"
	"github.com/orsinium-labs/enum"
)

// QueryType is the kind of SQL text the shell executed.
type QueryType enum.Member[string]

var (
	QueryTypeRead     = QueryType{Value: "read"}
	QueryTypeWrite    = QueryType{Value: "write"}
	QueryTypeBegin    = QueryType{Value: "begin"}
	QueryTypeCommit   = QueryType{Value: "commit"}
	QueryTypeRollback = QueryType{Value: "rollback"}

	QueryTypes = enum.New(
		QueryTypeRead,
		QueryTypeWrite,
		QueryTypeBegin,
		QueryTypeCommit,
		QueryTypeRollback,
	)
)

// DetectQueryType detects the type of a single statement between read,
// write, begin, commit, and rollback. Transaction control is recognized by
// its leading keyword; anything else is a read when it produced result
// columns. Multi-statement text must be split first, the shell classifies
// what sqlite3.Cursor.Executed reports.
func DetectQueryType(query string, hasColumns bool) QueryType {
	trimmed := strings.ToLower(strings.TrimSpace(query))

	switch {
	case strings.HasPrefix(trimmed, "begin"):
		return QueryTypeBegin
	case strings.HasPrefix(trimmed, "commit"), strings.HasPrefix(trimmed, "end"):
		return QueryTypeCommit
	case strings.HasPrefix(trimmed, "rollback"):
		return QueryTypeRollback
	}

	if hasColumns {
		return QueryTypeRead
	}
	return QueryTypeWrite
}

// SessionStats holds counters for one shell session. It is safe for
// concurrent use.
type SessionStats struct {
	startedAt   time.Time
	lastQueryAt *syncutil.AtomicTime

	reads     atomic.Int64
	writes    atomic.Int64
	begins    atomic.Int64
	commits   atomic.Int64
	rollbacks atomic.Int64
	errors    atomic.Int64
}

// Snapshot is a point-in-time copy of SessionStats.
type Snapshot struct {
	StartedAt   time.Time
	Uptime      time.Duration
	LastQueryAt time.Time
	Reads       int64
	Writes      int64
	Begins      int64
	Commits     int64
	Rollbacks   int64
	Errors      int64
}

// Count returns the counter of the given statement type.
func (s Snapshot) Count(qt QueryType) int64 {
	switch qt {
	case QueryTypeRead:
		return s.Reads
	case QueryTypeWrite:
		return s.Writes
	case QueryTypeBegin:
		return s.Begins
	case QueryTypeCommit:
		return s.Commits
	case QueryTypeRollback:
		return s.Rollbacks
	}
	return 0
}

// NewSessionStats returns empty stats starting now.
func NewSessionStats() *SessionStats {
	return &SessionStats{
		startedAt:   time.Now(),
		lastQueryAt: syncutil.NewAtomicTime(time.Time{}),
	}
}

// Record counts one successful statement of the given type.
func (s *SessionStats) Record(qt QueryType) {
	s.lastQueryAt.Store(time.Now())

	switch qt {
	case QueryTypeRead:
		s.reads.Add(1)
	case QueryTypeWrite:
		s.writes.Add(1)
	case QueryTypeBegin:
		s.begins.Add(1)
	case QueryTypeCommit:
		s.commits.Add(1)
	case QueryTypeRollback:
		s.rollbacks.Add(1)
	}
}

// RecordError counts one failed statement.
func (s *SessionStats) RecordError() {
	s.lastQueryAt.Store(time.Now())
	s.errors.Add(1)
}

// Load returns a snapshot of the current counters.
func (s *SessionStats) Load() Snapshot {
	return Snapshot{
		StartedAt:   s.startedAt,
		Uptime:      time.Since(s.startedAt).Round(time.Second),
		LastQueryAt: s.lastQueryAt.Load(),
		Reads:       s.reads.Load(),
		Writes:      s.writes.Load(),
		Begins:      s.begins.Load(),
		Commits:     s.commits.Load(),
		Rollbacks:   s.rollbacks.Load(),
		Errors:      s.errors.Load(),
	}
}
