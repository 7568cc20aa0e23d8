package wsq

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultFlags = SQLITE_OPEN_READWRITE | SQLITE_OPEN_CREATE

func tempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), uuid.NewString()+".db")
}

func mustOpen(t *testing.T, name string) DB {
	t.Helper()
	db, rc := Open(name, defaultFlags, "")
	require.Equal(t, SQLITE_OK, rc)
	require.False(t, db.IsNil())
	t.Cleanup(func() { Close(db) })
	return db
}

func mustExec(t *testing.T, db DB, sql string) {
	t.Helper()
	st, _, rc := Prepare(db, sql)
	require.Equal(t, SQLITE_OK, rc, Errmsg(db))
	defer Finalize(st)
	require.Equal(t, SQLITE_DONE, Step(st), Errmsg(db))
}

func TestWsq(t *testing.T) {
	t.Run("OpenClose", func(t *testing.T) {
		db, rc := Open(tempDBPath(t), defaultFlags, "")
		assert.Equal(t, SQLITE_OK, rc)
		assert.False(t, db.IsNil())
		assert.Equal(t, SQLITE_OK, Close(db))
	})

	t.Run("OpenMemory", func(t *testing.T) {
		db, rc := Open(":memory:", defaultFlags|SQLITE_OPEN_MEMORY, "")
		assert.Equal(t, SQLITE_OK, rc)
		assert.False(t, db.IsNil())
		assert.Equal(t, SQLITE_OK, Close(db))
	})

	t.Run("OpenInvalidFlags", func(t *testing.T) {
		db, rc := Open(tempDBPath(t), 0, "")
		assert.Equal(t, SQLITE_MISUSE, rc)
		assert.Equal(t, SQLITE_OK, Close(db))
	})

	t.Run("OpenMissingDirectory", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "missing", "dir", "test.db")
		db, rc := Open(name, defaultFlags, "")
		assert.Equal(t, SQLITE_CANTOPEN, rc)
		require.False(t, db.IsNil())
		assert.Equal(t, SQLITE_CANTOPEN, Errcode(db))
		assert.NotEmpty(t, Errmsg(db))
		assert.Equal(t, SQLITE_OK, Close(db))
	})

	t.Run("OpenReadOnlyMissingFile", func(t *testing.T) {
		db, rc := Open(tempDBPath(t), SQLITE_OPEN_READONLY, "")
		assert.Equal(t, SQLITE_CANTOPEN, rc)
		assert.Equal(t, SQLITE_OK, Close(db))
	})

	t.Run("OpenUnknownVFS", func(t *testing.T) {
		db, rc := Open(tempDBPath(t), defaultFlags, "no-such-vfs")
		assert.Equal(t, SQLITE_ERROR, rc)
		if !db.IsNil() {
			assert.Contains(t, Errmsg(db), "no such vfs")
		}
		assert.Equal(t, SQLITE_OK, Close(db))
	})

	t.Run("CloseTwice", func(t *testing.T) {
		db, rc := Open(":memory:", defaultFlags, "")
		require.Equal(t, SQLITE_OK, rc)
		assert.Equal(t, SQLITE_OK, Close(db))

		// The released handle must not be reused, the NULL handle is what
		// a well behaved caller forwards after release.
		assert.Equal(t, SQLITE_OK, Close(DB{}))
	})

	t.Run("FinalizeNil", func(t *testing.T) {
		assert.Equal(t, SQLITE_OK, Finalize(Stmt{}))
	})

	t.Run("PrepareValid", func(t *testing.T) {
		db := mustOpen(t, ":memory:")

		st, tail, rc := Prepare(db, "SELECT 1")
		assert.Equal(t, SQLITE_OK, rc)
		assert.False(t, st.IsNil())
		assert.Equal(t, "", tail)
		assert.Equal(t, SQLITE_OK, Finalize(st))
	})

	t.Run("PrepareTail", func(t *testing.T) {
		db := mustOpen(t, ":memory:")

		st, tail, rc := Prepare(db, "SELECT 1; SELECT 2")
		assert.Equal(t, SQLITE_OK, rc)
		assert.Equal(t, " SELECT 2", tail)
		assert.Equal(t, SQLITE_OK, Finalize(st))
	})

	t.Run("PrepareEmpty", func(t *testing.T) {
		db := mustOpen(t, ":memory:")

		st, tail, rc := Prepare(db, "  -- only a comment")
		assert.Equal(t, SQLITE_OK, rc)
		assert.True(t, st.IsNil())
		assert.Equal(t, "", tail)
	})

	t.Run("PrepareSyntaxError", func(t *testing.T) {
		db := mustOpen(t, ":memory:")

		st, _, rc := Prepare(db, "SELEC 1")
		assert.Equal(t, SQLITE_ERROR, rc)
		assert.True(t, st.IsNil())
		assert.Equal(t, SQLITE_ERROR, Errcode(db))
		assert.Contains(t, Errmsg(db), "syntax error")
	})

	t.Run("PrepareMissingTable", func(t *testing.T) {
		db := mustOpen(t, ":memory:")

		_, _, rc := Prepare(db, "SELECT * FROM nope")
		assert.Equal(t, SQLITE_ERROR, rc)
		assert.Contains(t, Errmsg(db), "no such table: nope")
	})

	t.Run("StepNoRows", func(t *testing.T) {
		db := mustOpen(t, ":memory:")
		mustExec(t, db, "CREATE TABLE empty (id INTEGER PRIMARY KEY)")

		st, _, rc := Prepare(db, "SELECT id FROM empty")
		require.Equal(t, SQLITE_OK, rc)
		assert.Equal(t, SQLITE_DONE, Step(st))
		assert.Equal(t, SQLITE_OK, Finalize(st))
	})

	t.Run("StepRows", func(t *testing.T) {
		db := mustOpen(t, ":memory:")
		mustExec(t, db, "CREATE TABLE multi (id INTEGER PRIMARY KEY, val TEXT)")
		for i := 1; i <= 3; i++ {
			mustExec(t, db, fmt.Sprintf("INSERT INTO multi (val) VALUES ('v%d')", i))
		}

		st, _, rc := Prepare(db, "SELECT id, val FROM multi ORDER BY id")
		require.Equal(t, SQLITE_OK, rc)
		defer Finalize(st)

		var got []string
		for Step(st) == SQLITE_ROW {
			got = append(got, ColumnText(st, 0)+"="+ColumnText(st, 1))
		}
		assert.Equal(t, []string{"1=v1", "2=v2", "3=v3"}, got)
	})

	t.Run("Columns", func(t *testing.T) {
		db := mustOpen(t, ":memory:")

		st, _, rc := Prepare(db, "SELECT 1 AS one, 2.5 AS two, 'hola' AS three, x'00ff' AS four, NULL AS five")
		require.Equal(t, SQLITE_OK, rc)
		defer Finalize(st)

		assert.Equal(t, 5, ColumnCount(st))
		assert.Equal(t, SQLITE_ROW, Step(st))

		names := []string{"one", "two", "three", "four", "five"}
		types := []Datatype{SQLITE_INTEGER, SQLITE_FLOAT, SQLITE_TEXT, SQLITE_BLOB, SQLITE_NULL}
		for i := range names {
			assert.Equal(t, names[i], ColumnName(st, i))
			assert.Equal(t, types[i], ColumnType(st, i))
		}

		assert.Equal(t, "1", ColumnText(st, 0))
		assert.Equal(t, "2.5", ColumnText(st, 1))
		assert.Equal(t, "hola", ColumnText(st, 2))
		assert.Equal(t, "", ColumnText(st, 4))

		assert.Equal(t, SQLITE_DONE, Step(st))
	})

	t.Run("ColumnCountNoResult", func(t *testing.T) {
		db := mustOpen(t, ":memory:")

		st, _, rc := Prepare(db, "CREATE TABLE t (id INTEGER)")
		require.Equal(t, SQLITE_OK, rc)
		assert.Equal(t, 0, ColumnCount(st))
		assert.Equal(t, SQLITE_OK, Finalize(st))
	})

	t.Run("ExtendedErrcode", func(t *testing.T) {
		db := mustOpen(t, ":memory:")
		mustExec(t, db, "CREATE TABLE pk (id INTEGER PRIMARY KEY)")
		mustExec(t, db, "INSERT INTO pk (id) VALUES (1)")

		st, _, rc := Prepare(db, "INSERT INTO pk (id) VALUES (1)")
		require.Equal(t, SQLITE_OK, rc)
		assert.Equal(t, SQLITE_CONSTRAINT, Step(st))
		assert.Equal(t, SQLITE_CONSTRAINT, Errcode(db))
		assert.Equal(t, SQLITE_CONSTRAINT_PRIMARYKEY, ExtendedErrcode(db))
		assert.Equal(t, Errcode(db), ExtendedErrcode(db).Primary())
		assert.Contains(t, Errmsg(db), "UNIQUE constraint failed")
		assert.Equal(t, SQLITE_CONSTRAINT, Finalize(st))
	})

	t.Run("Version", func(t *testing.T) {
		version := LibVersion()
		parts := strings.Split(version, ".")
		require.Len(t, parts, 3)

		var x, y, z int
		_, err := fmt.Sscanf(version, "%d.%d.%d", &x, &y, &z)
		require.NoError(t, err)
		assert.Equal(t, 3, x)
		assert.Equal(t, x*1_000_000+y*1_000+z, LibVersionNumber())

		sourceID := SourceID()
		require.GreaterOrEqual(t, len(sourceID), 10)
		_, err = time.Parse("2006-01-02", sourceID[:10])
		assert.NoError(t, err)

		assert.Equal(t, version, LibVersion())
		assert.Equal(t, sourceID, SourceID())
	})

	t.Run("BusyTimeout", func(t *testing.T) {
		name := tempDBPath(t)
		holder := mustOpen(t, name)
		waiter := mustOpen(t, name)

		mustExec(t, holder, "CREATE TABLE busy (id INTEGER)")
		mustExec(t, holder, "BEGIN EXCLUSIVE")
		defer mustExec(t, holder, "COMMIT")

		timeout := 100 * time.Millisecond
		assert.Equal(t, SQLITE_OK, BusyTimeout(waiter, int(timeout.Milliseconds())))

		start := time.Now()
		st, _, rc := Prepare(waiter, "INSERT INTO busy (id) VALUES (1)")
		if rc == SQLITE_OK {
			rc = Step(st)
			Finalize(st)
		}
		assert.Equal(t, SQLITE_BUSY, rc)
		assert.Equal(t, SQLITE_BUSY, Errcode(waiter))
		assert.GreaterOrEqual(t, time.Since(start), timeout/2)
	})

	t.Run("BusyTimeoutDisabled", func(t *testing.T) {
		db := mustOpen(t, ":memory:")
		assert.Equal(t, SQLITE_OK, BusyTimeout(db, 0))
		assert.Equal(t, SQLITE_OK, BusyTimeout(db, -1))
	})
}
