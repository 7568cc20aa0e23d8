package repl

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/nsqlite/wsq/internal/log"
	"github.com/nsqlite/wsq/internal/sqlite3"
	"github.com/nsqlite/wsq/internal/wsqsh/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepl(t *testing.T) (*Repl, *bytes.Buffer) {
	t.Helper()

	conn, err := sqlite3.Open(sqlite3.ConnInfo{sqlite3.KeyName: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := NewRepl(ctx, cancel, config.Config{Database: ":memory:", Mode: "table"}, conn, log.NewDiscardLogger())
	out := &bytes.Buffer{}
	r.out = out
	r.colored = false
	return r, out
}

func TestRepl(t *testing.T) {
	t.Run("Quit", func(t *testing.T) {
		r, _ := newTestRepl(t)
		assert.False(t, r.handle(".quit"))
		assert.False(t, r.handle(".exit"))
		assert.False(t, r.handle("exit"))
	})

	t.Run("Close", func(t *testing.T) {
		r, out := newTestRepl(t)
		r.Close()
		r.Close()

		assert.False(t, r.handle("SELECT 'late' AS v"))
		assert.Empty(t, out.String())
		assert.NoError(t, r.Start())
		assert.Empty(t, out.String())
	})

	t.Run("CloseWaitsForRunningLine", func(t *testing.T) {
		r, _ := newTestRepl(t)

		r.mu.Lock()
		closed := make(chan struct{})
		go func() {
			r.Close()
			close(closed)
		}()

		select {
		case <-closed:
			t.Fatal("Close returned while a line was being handled")
		case <-time.After(50 * time.Millisecond):
		}

		r.mu.Unlock()
		select {
		case <-closed:
		case <-time.After(time.Second):
			t.Fatal("Close did not return after the line finished")
		}
	})

	t.Run("Help", func(t *testing.T) {
		r, out := newTestRepl(t)
		assert.True(t, r.handle(".help"))
		assert.Contains(t, out.String(), "Available commands:")
		assert.Contains(t, out.String(), ".tables")
	})

	t.Run("UnknownCommand", func(t *testing.T) {
		r, out := newTestRepl(t)
		assert.True(t, r.handle(".nope"))
		assert.Contains(t, out.String(), "Unknown command")
		assert.ErrorIs(t, r.runDotCmd(".nope"), errUnknownCommand)
	})

	t.Run("QueryAndTables", func(t *testing.T) {
		r, out := newTestRepl(t)
		require.NoError(t, r.RunScript([]string{
			"CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT)",
			"INSERT INTO users (email) VALUES ('a@example.com'), ('b@example.com')",
		}))
		assert.Contains(t, out.String(), "OK")

		out.Reset()
		assert.True(t, r.handle("SELECT email FROM users ORDER BY id"))
		assert.Contains(t, out.String(), "a@example.com")
		assert.Contains(t, out.String(), "b@example.com")
		assert.Contains(t, out.String(), "2 rows")

		out.Reset()
		assert.True(t, r.handle(".tables"))
		assert.Contains(t, out.String(), "users")
	})

	t.Run("Count", func(t *testing.T) {
		r, out := newTestRepl(t)
		require.NoError(t, r.RunScript([]string{
			`CREATE TABLE "odd""name" (id INTEGER)`,
			`INSERT INTO "odd""name" VALUES (1), (2), (3)`,
		}))

		out.Reset()
		require.NoError(t, r.runDotCmd(`.count odd"name`))
		assert.Contains(t, out.String(), "3")

		assert.Error(t, r.runDotCmd(".count"))
	})

	t.Run("ColumnsAndSchema", func(t *testing.T) {
		r, out := newTestRepl(t)
		require.NoError(t, r.RunScript([]string{
			"CREATE TABLE items (id INTEGER PRIMARY KEY, label TEXT NOT NULL DEFAULT 'x')",
			"CREATE INDEX items_label ON items(label)",
		}))

		out.Reset()
		require.NoError(t, r.runDotCmd(".columns items"))
		assert.Contains(t, out.String(), "label")
		assert.Contains(t, out.String(), "INTEGER")

		out.Reset()
		require.NoError(t, r.runDotCmd(".schema items"))
		assert.Contains(t, out.String(), "CREATE TABLE items")
		assert.Contains(t, out.String(), "CREATE INDEX items_label")

		out.Reset()
		require.NoError(t, r.runDotCmd(".indexes"))
		assert.Contains(t, out.String(), "items_label")

		assert.Error(t, r.runDotCmd(".columns"))
	})

	t.Run("Mode", func(t *testing.T) {
		r, out := newTestRepl(t)
		require.NoError(t, r.runDotCmd(".mode"))
		assert.Contains(t, out.String(), "table")

		require.NoError(t, r.runDotCmd(".mode csv"))
		assert.Equal(t, config.OutputModeCSV, r.mode)

		out.Reset()
		require.NoError(t, r.runQuery("SELECT 1 AS a, NULL AS b"))
		assert.Contains(t, out.String(), "a,b")
		assert.Contains(t, out.String(), "1,")

		assert.Error(t, r.runDotCmd(".mode yaml"))
		assert.Equal(t, config.OutputModeCSV, r.mode)
	})

	t.Run("Timeout", func(t *testing.T) {
		r, out := newTestRepl(t)
		require.NoError(t, r.runDotCmd(".timeout 250"))
		assert.Contains(t, out.String(), "250ms")

		assert.Error(t, r.runDotCmd(".timeout"))
		assert.Error(t, r.runDotCmd(".timeout soon"))
		assert.Error(t, r.runDotCmd(".timeout -1"))
	})

	t.Run("Version", func(t *testing.T) {
		r, out := newTestRepl(t)
		require.NoError(t, r.runDotCmd(".version"))
		assert.Contains(t, out.String(), "sqlite3.sourceid")
		assert.Contains(t, out.String(), "binding")
	})

	t.Run("Stats", func(t *testing.T) {
		r, out := newTestRepl(t)
		require.NoError(t, r.RunScript([]string{
			"CREATE TABLE st (id INTEGER)",
			"BEGIN",
			"INSERT INTO st VALUES (1)",
			"COMMIT",
			"SELECT * FROM st",
		}))
		assert.Error(t, r.runQuery("SELEC"))

		snap := r.stats.Load()
		assert.Equal(t, int64(1), snap.Reads)
		assert.Equal(t, int64(2), snap.Writes)
		assert.Equal(t, int64(1), snap.Begins)
		assert.Equal(t, int64(1), snap.Commits)
		assert.Equal(t, int64(1), snap.Errors)

		out.Reset()
		require.NoError(t, r.runDotCmd(".stats"))
		assert.Contains(t, out.String(), "Last statement")
		assert.Contains(t, out.String(), "rollback")
		assert.Contains(t, out.String(), "errors")
	})

	t.Run("StatsPerStatement", func(t *testing.T) {
		r, _ := newTestRepl(t)
		require.NoError(t, r.runQuery(
			"CREATE TABLE ps (id INTEGER); BEGIN; INSERT INTO ps VALUES (1); COMMIT; SELECT * FROM ps; -- done",
		))

		snap := r.stats.Load()
		assert.Equal(t, int64(2), snap.Writes)
		assert.Equal(t, int64(1), snap.Begins)
		assert.Equal(t, int64(1), snap.Commits)
		assert.Equal(t, int64(1), snap.Reads)

		assert.Error(t, r.runQuery("INSERT INTO ps VALUES (2); INSERT INTO nope VALUES (1)"))
		snap = r.stats.Load()
		assert.Equal(t, int64(3), snap.Writes)
		assert.Equal(t, int64(1), snap.Errors)
	})

	t.Run("TrailingCommentKeepsRows", func(t *testing.T) {
		r, out := newTestRepl(t)
		require.NoError(t, r.runQuery("SELECT 'kept' AS v; -- note"))
		assert.Contains(t, out.String(), "kept")
		assert.Contains(t, out.String(), "1 row")
	})

	t.Run("ErrorIsRendered", func(t *testing.T) {
		r, out := newTestRepl(t)
		require.NoError(t, r.runQuery("CREATE TABLE pk (id INTEGER PRIMARY KEY)"))
		require.NoError(t, r.runQuery("INSERT INTO pk VALUES (1)"))

		out.Reset()
		assert.True(t, r.handle("INSERT INTO pk VALUES (1)"))
		assert.Contains(t, out.String(), "UNIQUE constraint failed")
		assert.Contains(t, out.String(), "SQLITE_CONSTRAINT_PRIMARYKEY")
	})

	t.Run("ScriptStopsAtFirstError", func(t *testing.T) {
		r, _ := newTestRepl(t)
		err := r.RunScript([]string{
			"CREATE TABLE s (id INTEGER)",
			"SELEC 1",
			"CREATE TABLE never (id INTEGER)",
		})
		assert.Error(t, err)

		res, err := r.execute("SELECT name FROM sqlite_master WHERE name = 'never'")
		require.NoError(t, err)
		assert.Empty(t, res.rows)
	})
}

func TestCmdHelpCompleter(t *testing.T) {
	assert.Contains(t, cmdHelpCompleter(".ta"), ".tables")
	assert.Contains(t, cmdHelpCompleter("sel"), "SELECT ")
	assert.Empty(t, cmdHelpCompleter("zzz"))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, `"plain"`, quoteIdent("plain"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
	assert.Equal(t, `'plain'`, quoteLiteral("plain"))
	assert.Equal(t, `'it''s'`, quoteLiteral("it's"))
}
