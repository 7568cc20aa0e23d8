package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/nsqlite/wsq/internal/sqlite3"
	"github.com/nsqlite/wsq/internal/version"
	"github.com/nsqlite/wsq/internal/wsq"
)

// Config represents the configuration for wsqsh.
type Config struct {
	Database    string        `arg:"positional" help:"Path of the SQLite database file, or :memory: for a transient one" default:":memory:"`
	ReadOnly    bool          `arg:"--readonly,env:WSQ_READONLY" help:"Open the database in read-only mode" default:"false"`
	NoCreate    bool          `arg:"--no-create,env:WSQ_NO_CREATE" help:"Fail instead of creating a missing database file" default:"false"`
	VFS         string        `arg:"--vfs,env:WSQ_VFS" help:"Name of the SQLite VFS to open the database with; leave empty for the default one"`
	BusyTimeout time.Duration `arg:"--busy-timeout,env:WSQ_BUSY_TIMEOUT" help:"How long to wait for locks held by other connections. Valid time units are ns, us (or µs), ms, s, m, h" default:"5s"`
	Mode        string        `arg:"--mode,env:WSQ_MODE" help:"Output mode for result rows (table, csv, markdown, html, line)" default:"table"`
	Exec        []string      `arg:"-e,--exec,separate" help:"Run this SQL and exit instead of starting the interactive shell; can be repeated"`
	InitFile    string        `arg:"--init,env:WSQ_INIT" help:"YAML file with statements to run right after opening the database"`
	LogFile     string        `arg:"--log-file,env:WSQ_LOG_FILE" help:"Append structured JSON logs to this file; logs are discarded when empty"`
	Debug       bool          `arg:"--debug,env:WSQ_DEBUG" help:"Include debug entries, such as every executed statement, in the log file" default:"false"`
	Init        InitScript    `arg:"-"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n%s\n", version.ShellVersion(), version.EngineLine(wsq.LibVersion(), wsq.SourceID()))
}

// MustParse parses and validates the configuration from the command
// line arguments. It returns a Config struct or exits the program
// with an error.
func MustParse(args []string) Config {
	cfg := Config{}

	parser, err := arg.NewParser(
		arg.Config{},
		&cfg,
	)
	if err != nil {
		log.Fatal(err)
	}
	parser.MustParse(args[1:])

	if err := cfg.validate(); err != nil {
		log.Fatal(err)
	}

	if cfg.InitFile != "" {
		cfg.Init, err = LoadInitScript(cfg.InitFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	return cfg
}

func (cfg Config) validate() error {
	if err := validateDatabase(cfg.Database); err != nil {
		return err
	}
	if err := validateBusyTimeout(cfg.BusyTimeout); err != nil {
		return err
	}
	if _, err := ParseOutputMode(cfg.Mode); err != nil {
		return err
	}
	if cfg.ReadOnly && cfg.NoCreate {
		return errors.New("--readonly and --no-create cannot be combined, read-only never creates")
	}
	return nil
}

// OpenFlags returns the engine open flags derived from the configuration.
func (cfg Config) OpenFlags() wsq.OpenFlag {
	var flags wsq.OpenFlag
	switch {
	case cfg.ReadOnly:
		flags = wsq.SQLITE_OPEN_READONLY
	case cfg.NoCreate:
		flags = wsq.SQLITE_OPEN_READWRITE
	default:
		flags = wsq.SQLITE_OPEN_READWRITE | wsq.SQLITE_OPEN_CREATE
	}

	if strings.HasPrefix(cfg.Database, "file:") {
		flags |= wsq.SQLITE_OPEN_URI
	}
	return flags
}

// ConnInfo returns the connection info to open the configured database.
func (cfg Config) ConnInfo() sqlite3.ConnInfo {
	info := sqlite3.ConnInfo{
		sqlite3.KeyName:        cfg.Database,
		sqlite3.KeyFlags:       cfg.OpenFlags(),
		sqlite3.KeyBusyTimeout: cfg.BusyTimeout,
	}
	if cfg.VFS != "" {
		info[sqlite3.KeyVFS] = cfg.VFS
	}
	return info
}

// validateDatabase validates that a database path was given.
func validateDatabase(database string) error {
	if strings.TrimSpace(database) == "" {
		return errors.New("invalid database, path cannot be empty")
	}
	return nil
}

// validateBusyTimeout validates that the busy timeout is not negative and
// fits the engine's millisecond argument.
func validateBusyTimeout(timeout time.Duration) error {
	if timeout < 0 {
		return errors.New("invalid busy timeout, must be zero or greater")
	}
	if timeout.Milliseconds() > int64(^uint32(0)>>1) {
		return errors.New("invalid busy timeout, too large")
	}
	return nil
}
