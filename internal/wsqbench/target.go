package wsqbench

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/nsqlite/wsq/internal/sqlite3"
)

// target is a database the benchmarks drive with plain SQL text.
type target interface {
	Name() string
	Exec(query string) error
	CountRows(query string) (uint64, error)
	Close() error
}

// wsqTarget drives the forwarding layer through the sqlite3 binding.
type wsqTarget struct {
	conn *sqlite3.Conn
}

func newWsqTarget(dir string) (*wsqTarget, error) {
	dbPath, err := benchPath(dir, "wsq")
	if err != nil {
		return nil, err
	}

	conn, err := sqlite3.Open(sqlite3.ConnInfo{
		sqlite3.KeyName:        dbPath,
		sqlite3.KeyBusyTimeout: 5 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	return &wsqTarget{conn: conn}, nil
}

func (t *wsqTarget) Name() string {
	return "wsq"
}

func (t *wsqTarget) Exec(query string) error {
	cur := t.conn.Cursor()
	defer func() { _ = cur.Close() }()

	if err := cur.Execute(query); err != nil {
		return err
	}
	_, err := cur.FetchAll()
	return err
}

func (t *wsqTarget) CountRows(query string) (uint64, error) {
	cur := t.conn.Cursor()
	defer func() { _ = cur.Close() }()

	if err := cur.Execute(query); err != nil {
		return 0, err
	}

	var count uint64
	for cur.MoreResults() {
		if _, err := cur.FetchOne(); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func (t *wsqTarget) Close() error {
	return t.conn.Close()
}

// mattnTarget drives mattn/go-sqlite3 through database/sql. The pool is
// limited to one connection so BEGIN and COMMIT land on the same one.
type mattnTarget struct {
	db *sql.DB
}

func newMattnTarget(dir string) (*mattnTarget, error) {
	dbPath, err := benchPath(dir, "mattn")
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &mattnTarget{db: db}, nil
}

func (t *mattnTarget) Name() string {
	return "mattn/go-sqlite3"
}

func (t *mattnTarget) Exec(query string) error {
	_, err := t.db.Exec(query)
	return err
}

func (t *mattnTarget) CountRows(query string) (uint64, error) {
	rows, err := t.db.Query(query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, err
	}

	values := make([]sql.RawBytes, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	var count uint64
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return count, err
		}
		count++
	}
	return count, rows.Err()
}

func (t *mattnTarget) Close() error {
	return t.db.Close()
}

// benchPath creates dir/name and returns the path of the database inside.
func benchPath(dir string, name string) (string, error) {
	dbDir := filepath.Join(dir, name)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s bench dir: %w", name, err)
	}
	return filepath.Join(dbDir, "bench.db"), nil
}

// quote returns value as an SQL string literal.
func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
