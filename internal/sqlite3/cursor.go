package sqlite3

import (
	"fmt"
	"strings"

	"github.com/nsqlite/wsq/internal/wsq"
)

// Cursor executes SQL text on a connection and iterates over the rows of
// its last statement.
type Cursor struct {
	conn     *Conn
	stmt     wsq.Stmt
	hasRow   bool
	columns  []string
	executed []ExecutedStatement
}

// ExecutedStatement is one statement run by Execute.
type ExecutedStatement struct {
	SQL     string
	Columns int
}

// Execute runs every statement in query, in order. All statements but the
// last are stepped to completion; if the last one produces rows they are
// left pending for the Fetch methods. A statement is the last one when
// nothing but whitespace, separators or comments follows it.
//
// Any statement left pending by a previous Execute is finalized first.
func (cur *Cursor) Execute(query string) error {
	if err := cur.Close(); err != nil {
		return err
	}
	cur.executed = nil

	db := cur.conn.db
	if db.IsNil() {
		return ErrClosed
	}

	stmt, src, tail, err := prepare(db, query)
	if err != nil {
		return err
	}

	for !stmt.IsNil() {
		resCode := wsq.Step(stmt)
		if resCode != wsq.SQLITE_ROW && resCode != wsq.SQLITE_DONE {
			err := newError(db, resCode)
			_ = wsq.Finalize(stmt)
			return fmt.Errorf("failed to step statement: %w", err)
		}
		cur.executed = append(cur.executed, ExecutedStatement{
			SQL:     statementText(src, tail),
			Columns: wsq.ColumnCount(stmt),
		})

		// The tail is prepared only after the first step so it can see
		// schema changes made by the current statement.
		next, nextSrc, nextTail, prepErr := prepare(db, tail)
		if prepErr != nil {
			drain(stmt, resCode)
			_ = wsq.Finalize(stmt)
			return prepErr
		}

		if next.IsNil() {
			cur.columns = columnNames(stmt)
			if resCode == wsq.SQLITE_ROW {
				cur.stmt = stmt
				cur.hasRow = true
				return nil
			}
			_ = wsq.Finalize(stmt)
			return nil
		}

		if resCode = drain(stmt, resCode); resCode != wsq.SQLITE_DONE {
			err := newError(db, resCode)
			_ = wsq.Finalize(stmt)
			_ = wsq.Finalize(next)
			return fmt.Errorf("failed to step statement: %w", err)
		}
		_ = wsq.Finalize(stmt)

		stmt, src, tail = next, nextSrc, nextTail
	}

	return nil
}

// Executed returns the statements run by the last Execute, including the
// ones that completed before a failure.
func (cur *Cursor) Executed() []ExecutedStatement {
	return cur.executed
}

// MoreResults reports whether a row is pending.
func (cur *Cursor) MoreResults() bool {
	return cur.hasRow
}

// Columns returns the column names of the last executed statement.
func (cur *Cursor) Columns() []string {
	return cur.columns
}

// Description maps each column name of the pending row to the engine
// datatype of its value.
func (cur *Cursor) Description() (map[string]string, error) {
	if !cur.hasRow {
		return nil, ErrNoResults
	}

	desc := make(map[string]string, len(cur.columns))
	for i, name := range cur.columns {
		desc[name] = wsq.ColumnType(cur.stmt, i).String()
	}
	return desc, nil
}

// FetchOne returns the pending row and advances to the next one. Values are
// strings as produced by the engine's text accessor, or nil for SQL NULL.
func (cur *Cursor) FetchOne() ([]any, error) {
	if !cur.hasRow {
		return nil, ErrNoResults
	}

	count := wsq.ColumnCount(cur.stmt)
	data := make([]any, count)
	for i := 0; i < count; i++ {
		data[i] = columnValue(cur.stmt, i)
	}

	if err := cur.advance(); err != nil {
		return nil, err
	}
	return data, nil
}

// FetchRow is FetchOne keyed by column name. When two columns share a name
// the rightmost one wins.
func (cur *Cursor) FetchRow() (map[string]any, error) {
	if !cur.hasRow {
		return nil, ErrNoResults
	}

	count := wsq.ColumnCount(cur.stmt)
	data := make(map[string]any, count)
	for i := 0; i < count; i++ {
		data[wsq.ColumnName(cur.stmt, i)] = columnValue(cur.stmt, i)
	}

	if err := cur.advance(); err != nil {
		return nil, err
	}
	return data, nil
}

// FetchMany returns at most count of the remaining rows. It returns an empty
// slice once the rows are exhausted.
func (cur *Cursor) FetchMany(count int) ([][]any, error) {
	rows := [][]any{}
	for cur.hasRow && len(rows) < count {
		row, err := cur.FetchOne()
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchAll returns all remaining rows.
func (cur *Cursor) FetchAll() ([][]any, error) {
	rows := [][]any{}
	for cur.hasRow {
		row, err := cur.FetchOne()
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchManyRows is FetchMany keyed by column name.
func (cur *Cursor) FetchManyRows(count int) ([]map[string]any, error) {
	rows := []map[string]any{}
	for cur.hasRow && len(rows) < count {
		row, err := cur.FetchRow()
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchAllRows is FetchAll keyed by column name.
func (cur *Cursor) FetchAllRows() ([]map[string]any, error) {
	rows := []map[string]any{}
	for cur.hasRow {
		row, err := cur.FetchRow()
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close finalizes the pending statement, if any.
func (cur *Cursor) Close() error {
	cur.hasRow = false
	cur.columns = nil
	if cur.stmt.IsNil() {
		return nil
	}

	stmt := cur.stmt
	cur.stmt = wsq.Stmt{}
	resCode := wsq.Finalize(stmt)
	if resCode != wsq.SQLITE_OK {
		return fmt.Errorf("failed to finalize statement: %w", newError(cur.conn.db, resCode))
	}
	return nil
}

// advance steps the pending statement and finalizes it once it is done.
func (cur *Cursor) advance() error {
	resCode := wsq.Step(cur.stmt)
	if resCode == wsq.SQLITE_ROW {
		return nil
	}

	cur.hasRow = false
	stmt := cur.stmt
	cur.stmt = wsq.Stmt{}

	if resCode == wsq.SQLITE_DONE {
		_ = wsq.Finalize(stmt)
		return nil
	}

	err := newError(cur.conn.db, resCode)
	_ = wsq.Finalize(stmt)
	return fmt.Errorf("failed to step statement: %w", err)
}

func columnNames(stmt wsq.Stmt) []string {
	count := wsq.ColumnCount(stmt)
	names := make([]string, count)
	for i := 0; i < count; i++ {
		names[i] = wsq.ColumnName(stmt, i)
	}
	return names
}

func columnValue(stmt wsq.Stmt, col int) any {
	if wsq.ColumnType(stmt, col) == wsq.SQLITE_NULL {
		return nil
	}
	return wsq.ColumnText(stmt, col)
}

// prepare compiles the first statement of sql, skipping empty statements
// such as a lone separator. It also returns the text the statement was
// compiled from. A nil statement means sql holds nothing left to run.
func prepare(db wsq.DB, sql string) (wsq.Stmt, string, string, error) {
	for {
		stmt, tail, resCode := wsq.Prepare(db, sql)
		if resCode != wsq.SQLITE_OK {
			err := newError(db, resCode)
			_ = wsq.Finalize(stmt)
			return wsq.Stmt{}, "", "", fmt.Errorf("failed to prepare statement: %w", err)
		}
		if !stmt.IsNil() || tail == "" || len(tail) >= len(sql) {
			return stmt, sql, tail, nil
		}
		sql = tail
	}
}

// statementText returns the statement compiled from sql, given the tail the
// engine left unparsed.
func statementText(sql string, tail string) string {
	text := sql[:len(sql)-len(tail)]
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text), ";"))
}

// drain steps stmt until it stops producing rows and returns the final code.
func drain(stmt wsq.Stmt, resCode wsq.Code) wsq.Code {
	for resCode == wsq.SQLITE_ROW {
		resCode = wsq.Step(stmt)
	}
	return resCode
}
