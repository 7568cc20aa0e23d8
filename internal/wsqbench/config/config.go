package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/nsqlite/wsq/internal/version"
	"github.com/nsqlite/wsq/internal/wsq"
)

// Config represents the configuration for wsqbench.
type Config struct {
	Users      int    `arg:"--users,env:WSQBENCH_USERS" help:"Number of users inserted by the Simple and Many benchmarks" default:"10000"`
	Queries    int    `arg:"--queries,env:WSQBENCH_QUERIES" help:"Number of times the Many benchmark reads every user" default:"100"`
	LargeRows  int    `arg:"--large-rows,env:WSQBENCH_LARGE_ROWS" help:"Number of rows inserted by the Large benchmark" default:"1000"`
	LargeBytes int    `arg:"--large-bytes,env:WSQBENCH_LARGE_BYTES" help:"Size in bytes of the text stored in each Large benchmark row" default:"100000"`
	Dir        string `arg:"--dir,env:WSQBENCH_DIR" help:"Directory where the temporary databases are created; the system temp directory when empty"`
	LogFile    string `arg:"--log-file,env:WSQBENCH_LOG_FILE" help:"Append structured JSON logs to this file; logs are discarded when empty"`
	Debug      bool   `arg:"--debug,env:WSQBENCH_DEBUG" help:"Include debug entries in the log file" default:"false"`
}

func (Config) Version() string {
	return fmt.Sprintf("%s\n%s\n", version.BenchVersion(), version.EngineLine(wsq.LibVersion(), wsq.SourceID()))
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

	return cfg
}

func (cfg Config) validate() error {
	if err := validatePositive("users", cfg.Users); err != nil {
		return err
	}
	if err := validatePositive("queries", cfg.Queries); err != nil {
		return err
	}
	if err := validatePositive("large rows", cfg.LargeRows); err != nil {
		return err
	}
	if err := validatePositive("large bytes", cfg.LargeBytes); err != nil {
		return err
	}
	return validateDir(cfg.Dir)
}

func validatePositive(name string, value int) error {
	if value <= 0 {
		return fmt.Errorf("invalid %s, must be greater than zero", name)
	}
	return nil
}

// validateDir validates that dir, when given, is an existing directory.
func validateDir(dir string) error {
	if dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("invalid dir: %w", err)
	}
	if !info.IsDir() {
		return errors.New("invalid dir, not a directory")
	}
	return nil
}
