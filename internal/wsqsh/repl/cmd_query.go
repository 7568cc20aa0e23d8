package repl

import (
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/wsq/internal/log"
	"github.com/nsqlite/wsq/internal/sqlite3"
	"github.com/nsqlite/wsq/internal/util/numutil"
	"github.com/nsqlite/wsq/internal/wsqsh/stats"
	"github.com/nsqlite/wsq/internal/wsqsh/styled"
)

// result is what running SQL text in the shell produced.
type result struct {
	columns  []string
	rows     [][]any
	duration time.Duration
	executed []sqlite3.ExecutedStatement
}

// runQuery executes query, prints its rows or its error, and returns the
// error so scripts can stop.
func (r *Repl) runQuery(query string) error {
	r.logger.DebugNs("repl", "executing statement", log.KV{"sql": query})

	res, err := r.execute(query)
	types := r.recordStats(res.executed)
	if err != nil {
		r.stats.RecordError()
		r.logger.WarnNs("repl", "statement failed", log.KV{
			"error":    err.Error(),
			"code":     sqlite3.ErrorCode(err).String(),
			"extended": sqlite3.ExtendedErrorCode(err).String(),
		})
		r.printError(err)
		return err
	}

	r.logger.InfoNs("repl", "statement executed", log.KV{
		"types":    types,
		"rows":     len(res.rows),
		"columns":  len(res.columns),
		"duration": res.duration.String(),
	})
	r.printResult(res)
	return nil
}

// execute runs query on a fresh cursor and collects every row of its last
// statement.
func (r *Repl) execute(query string) (result, error) {
	cur := r.conn.Cursor()
	defer func() {
		_ = cur.Close()
	}()

	start := time.Now()
	if err := cur.Execute(query); err != nil {
		return result{executed: cur.Executed()}, err
	}

	rows, err := cur.FetchAll()
	if err != nil {
		return result{executed: cur.Executed()}, err
	}

	return result{
		columns:  cur.Columns(),
		rows:     rows,
		duration: time.Since(start),
		executed: cur.Executed(),
	}, nil
}

// recordStats counts each statement the engine ran and returns their types.
func (r *Repl) recordStats(executed []sqlite3.ExecutedStatement) []string {
	types := make([]string, 0, len(executed))
	for _, stmt := range executed {
		queryType := stats.DetectQueryType(stmt.SQL, stmt.Columns > 0)
		r.stats.Record(queryType)
		types = append(types, queryType.Value)
	}
	return types
}

func (r *Repl) printResult(res result) {
	if len(res.columns) == 0 {
		styled.DimmedColor().Fprintf(r.out, "OK (%s)\n", res.duration.Round(time.Microsecond))
		return
	}

	fmt.Fprintln(r.out, render(r.mode, res, r.colored))

	label := "rows"
	if len(res.rows) == 1 {
		label = "row"
	}
	styled.DimmedColor().Fprintf(
		r.out, "%s %s in %s\n",
		numutil.IntWithCommas(len(res.rows)), label, res.duration.Round(time.Microsecond),
	)
}

func (r *Repl) printError(err error) {
	tw := r.newTableWriter()

	var sqliteErr *sqlite3.Error
	if errors.As(err, &sqliteErr) {
		tw.AppendHeader(table.Row{"Error", "Code", "Extended"})
		tw.AppendRow(table.Row{sqliteErr.Message, sqliteErr.Code.String(), sqliteErr.Extended.String()})
	} else {
		tw.AppendHeader(table.Row{"Error"})
		tw.AppendRow(table.Row{err.Error()})
	}

	fmt.Fprintln(r.out, tw.Render())
}

func (r *Repl) newTableWriter() table.Writer {
	if r.colored {
		return styled.NewTableWriter()
	}
	return styled.NewPlainTableWriter()
}
