package wsqsh

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nsqlite/wsq/internal/log"
	"github.com/nsqlite/wsq/internal/sqlite3"
	"github.com/nsqlite/wsq/internal/version"
	"github.com/nsqlite/wsq/internal/wsqsh/config"
	"github.com/nsqlite/wsq/internal/wsqsh/repl"
)

// Run runs the wsq shell.
func Run(ctx context.Context) error {
	conf := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, logFile, err := log.NewFileLogger(conf.LogFile, conf.Debug)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	conn, err := sqlite3.Open(conf.ConnInfo())
	if err != nil {
		logger.ErrorNs("wsqsh", "failed to open database", log.KV{
			"database": conf.Database,
			"error":    err.Error(),
		})
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.ErrorNs("wsqsh", "failed to close database", log.KV{"error": err.Error()})
		}
	}()
	logger.InfoNs("wsqsh", "database opened", log.KV{
		"database": conn.Name(),
		"flags":    conf.OpenFlags().String(),
		"readonly": conf.ReadOnly,
	})

	if err := applyInit(conf, conn, logger); err != nil {
		return err
	}

	rp := repl.NewRepl(ctx, stop, conf, conn, logger)

	if len(conf.Exec) > 0 {
		return rp.RunScript(conf.Exec)
	}

	fmt.Println(version.ShellVersion())

	go func() {
		if err := rp.Start(); err != nil {
			fmt.Println(err)
			stop()
		}
	}()

	<-ctx.Done()

	// The prompt goroutine may still be blocked reading stdin. Close waits
	// for a running statement and restores the terminal, so the connection
	// can be closed safely once it returns.
	rp.Close()

	fmt.Printf("\nGoodbye!\n\n")
	return nil
}

// applyInit runs the init file against a freshly opened connection. Its
// busy timeout overrides the one given on the command line.
func applyInit(conf config.Config, conn *sqlite3.Conn, logger log.Logger) error {
	if conf.Init.BusyTimeout > 0 {
		if err := conn.BusyTimeout(conf.Init.BusyTimeout); err != nil {
			return fmt.Errorf("failed to apply init busy_timeout: %w", err)
		}
	}

	for _, stmt := range conf.Init.Statements {
		cur := conn.Cursor()
		err := cur.Execute(stmt)
		if err == nil {
			_, err = cur.FetchAll()
		}
		_ = cur.Close()
		if err != nil {
			logger.ErrorNs("wsqsh", "init statement failed", log.KV{
				"sql":   stmt,
				"error": err.Error(),
			})
			return fmt.Errorf("failed to run init statement %q: %w", stmt, err)
		}
	}

	if len(conf.Init.Statements) > 0 {
		logger.InfoNs("wsqsh", "init file applied", log.KV{
			"file":       conf.InitFile,
			"statements": len(conf.Init.Statements),
		})
	}
	return nil
}
