package repl

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/wsq/internal/log"
	"github.com/nsqlite/wsq/internal/sqlite3"
	"github.com/nsqlite/wsq/internal/util/numutil"
	"github.com/nsqlite/wsq/internal/wsqsh/config"
	"github.com/nsqlite/wsq/internal/wsqsh/stats"
	"github.com/nsqlite/wsq/internal/wsqsh/styled"
)

var errUnknownCommand = errors.New("unknown command, type .help for usage hints")

// runDotCmd runs a dot command. Errors are printed and returned.
func (r *Repl) runDotCmd(input string) error {
	fields := strings.Fields(input)
	name, args := fields[0], fields[1:]

	var err error
	switch name {
	case ".help":
		cmdHelp(r)
	case ".tables":
		err = r.runQuery(`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	case ".indexes":
		err = r.runQuery(`SELECT name, tbl_name AS "table" FROM sqlite_master WHERE type = 'index' ORDER BY name`)
	case ".schema":
		err = r.cmdSchema(args)
	case ".columns":
		err = r.cmdColumns(args)
	case ".count":
		err = r.cmdCount(args)
	case ".version":
		r.cmdVersion()
	case ".stats":
		r.cmdStats()
	case ".timeout":
		err = r.cmdTimeout(args)
	case ".mode":
		err = r.cmdMode(args)
	default:
		err = errUnknownCommand
		styled.ErrorColor().Fprintln(r.out, "Unknown command, type .help for usage hints")
	}

	return err
}

func (r *Repl) cmdSchema(args []string) error {
	query := `SELECT sql FROM sqlite_master WHERE sql IS NOT NULL ORDER BY tbl_name, type DESC, name`
	if len(args) > 0 {
		query = fmt.Sprintf(
			`SELECT sql FROM sqlite_master WHERE sql IS NOT NULL AND tbl_name = %s ORDER BY type DESC, name`,
			quoteLiteral(args[0]),
		)
	}
	return r.runQuery(query)
}

func (r *Repl) cmdColumns(args []string) error {
	if len(args) == 0 {
		return r.usageError(".columns [table_name]")
	}
	return r.runQuery(fmt.Sprintf(
		`SELECT name, type, "notnull", dflt_value AS "default", pk FROM pragma_table_info(%s)`,
		quoteLiteral(args[0]),
	))
}

func (r *Repl) cmdCount(args []string) error {
	if len(args) == 0 {
		return r.usageError(".count [table_name]")
	}
	return r.runQuery(fmt.Sprintf(`SELECT COUNT(*) AS count FROM %s`, quoteIdent(args[0])))
}

func (r *Repl) cmdVersion() {
	info := sqlite3.Version()
	keys := make([]string, 0, len(info))
	for key := range info {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tw := r.newTableWriter()
	tw.AppendHeader(table.Row{"Key", "Value"})
	for _, key := range keys {
		tw.AppendRow(table.Row{key, info[key]})
	}
	fmt.Fprintln(r.out, tw.Render())
}

func (r *Repl) cmdStats() {
	snap := r.stats.Load()

	lastQuery := "never"
	if !snap.LastQueryAt.IsZero() {
		lastQuery = snap.LastQueryAt.Format(time.RFC3339)
	}

	tw := r.newTableWriter()
	tw.AppendHeader(table.Row{"Stat", "Value"})
	tw.AppendRows([]table.Row{
		{"Started at", snap.StartedAt.Format(time.RFC3339)},
		{"Uptime", snap.Uptime},
		{"Last statement", lastQuery},
	})
	tw.AppendSeparator()
	for _, qt := range stats.QueryTypes.Members() {
		tw.AppendRow(table.Row{qt.Value, numutil.IntWithCommas(int(snap.Count(qt)))})
	}
	tw.AppendRow(table.Row{"errors", numutil.IntWithCommas(int(snap.Errors))})
	fmt.Fprintln(r.out, tw.Render())
}

func (r *Repl) cmdTimeout(args []string) error {
	if len(args) == 0 {
		return r.usageError(".timeout [milliseconds]")
	}

	ms, err := strconv.Atoi(args[0])
	if err != nil || ms < 0 {
		return r.usageError(".timeout [milliseconds]")
	}

	timeout := time.Duration(ms) * time.Millisecond
	if err := r.conn.BusyTimeout(timeout); err != nil {
		r.printError(err)
		return err
	}

	r.logger.InfoNs("repl", "busy timeout changed", log.KV{"timeout": timeout.String()})
	styled.DimmedColor().Fprintf(r.out, "Busy timeout set to %s\n", timeout)
	return nil
}

func (r *Repl) cmdMode(args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "Current output mode: %s\n", r.mode.Value)
		return nil
	}

	mode, err := config.ParseOutputMode(args[0])
	if err != nil {
		styled.ErrorColor().Fprintln(r.out, err)
		return err
	}

	r.mode = mode
	styled.DimmedColor().Fprintf(r.out, "Output mode set to %s\n", mode.Value)
	return nil
}

func (r *Repl) usageError(usage string) error {
	err := fmt.Errorf("usage: %s", usage)
	styled.ErrorColor().Fprintln(r.out, err)
	return err
}

// quoteIdent quotes name as an SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteLiteral quotes value as an SQL string literal.
func quoteLiteral(value string) string {
	return `'` + strings.ReplaceAll(value, `'`, `''`) + `'`
}
