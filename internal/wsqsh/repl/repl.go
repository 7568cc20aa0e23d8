package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/nsqlite/wsq/internal/log"
	"github.com/nsqlite/wsq/internal/sqlite3"
	"github.com/nsqlite/wsq/internal/util/sysutil"
	"github.com/nsqlite/wsq/internal/wsq"
	"github.com/nsqlite/wsq/internal/wsqsh/config"
	"github.com/nsqlite/wsq/internal/wsqsh/stats"
	"github.com/peterh/liner"
)

type Repl struct {
	conf        config.Config
	conn        *sqlite3.Conn
	logger      log.Logger
	ctx         context.Context
	stop        context.CancelFunc
	out         io.Writer
	mode        config.OutputMode
	colored     bool
	historyPath string
	stats       *stats.SessionStats

	// mu is held while a line is handled, so Close never races a
	// running statement.
	mu     sync.Mutex
	line   *liner.State
	closed bool
}

func NewRepl(
	ctx context.Context,
	stop context.CancelFunc,
	conf config.Config,
	conn *sqlite3.Conn,
	logger log.Logger,
) *Repl {
	mode, err := config.ParseOutputMode(conf.Mode)
	if err != nil {
		mode = config.OutputModeTable
	}

	return &Repl{
		conf:        conf,
		conn:        conn,
		logger:      logger,
		ctx:         ctx,
		stop:        stop,
		out:         os.Stdout,
		mode:        mode,
		colored:     !color.NoColor,
		historyPath: filepath.Join(os.TempDir(), ".wsqsh_history"),
		stats:       stats.NewSessionStats(),
	}
}

// Start runs the interactive loop until the user quits or the context is
// canceled.
func (r *Repl) Start() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	line := liner.NewLiner()
	r.line = line
	r.mu.Unlock()
	defer r.Close()

	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "Connected to %s running SQLite %s\n", r.conn.Name(), wsq.LibVersion())
	fmt.Fprintln(r.out, `Enter ".help" for usage hints and ".quit" or "CTRL+C" to quit`)
	fmt.Fprintln(r.out)

	line.SetCtrlCAborts(true)
	line.SetCompleter(cmdHelpCompleter)

	if file, err := os.Open(r.historyPath); err == nil {
		_, _ = line.ReadHistory(file)
		file.Close()
	}

	for {
		select {
		case <-r.ctx.Done():
			return nil
		default:
		}

		input, err := line.Prompt(r.label())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(r.out, "CTRL+C pressed, exiting...")
				r.Shutdown()
				return nil
			}
			if errors.Is(err, io.EOF) {
				r.Shutdown()
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)
		if file, err := os.Create(r.historyPath); err == nil {
			_, _ = line.WriteHistory(file)
			file.Close()
		}

		if !r.handle(input) {
			r.Shutdown()
			return nil
		}
	}
}

// RunScript runs each entry as SQL text or a dot command, stopping at the
// first failing one.
func (r *Repl) RunScript(inputs []string) error {
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		var err error
		if strings.HasPrefix(input, ".") {
			err = r.runDotCmd(input)
		} else {
			err = r.runQuery(input)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Shutdown stops the REPL.
func (r *Repl) Shutdown() {
	r.stop()
}

// Close waits for the line being handled, if any, then restores the
// terminal. Lines arriving afterwards are ignored. It is safe to call more
// than once and from another goroutine than Start.
func (r *Repl) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true

	if r.line != nil {
		_ = r.line.Close()
	}
}

// handle runs a single line of input. It returns false when the user asked
// to quit.
func (r *Repl) handle(input string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}

	switch input {
	case "exit", ".exit", ".quit":
		return false
	case "clear", ".clear":
		sysutil.ClearTerminal(r.out)
		return true
	case "help", ".help":
		cmdHelp(r)
		return true
	}

	if strings.HasPrefix(input, ".") {
		_ = r.runDotCmd(input)
		return true
	}

	_ = r.runQuery(input)
	return true
}

// label returns the prompt label.
func (r *Repl) label() string {
	if r.conf.ReadOnly {
		return "wsq(ro)> "
	}
	return "wsq> "
}
