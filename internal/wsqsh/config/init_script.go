package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// InitScript is the content of the --init YAML file:
//
//	busy_timeout: 10s
//	statements:
//	  - PRAGMA foreign_keys = ON
//	  - PRAGMA journal_mode = WAL
type InitScript struct {
	BusyTimeout time.Duration `yaml:"-"`
	Statements  []string      `yaml:"statements"`

	RawBusyTimeout string `yaml:"busy_timeout"`
}

// LoadInitScript reads and validates the init file at path.
func LoadInitScript(path string) (InitScript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InitScript{}, fmt.Errorf("failed to read init file: %w", err)
	}
	return parseInitScript(data)
}

func parseInitScript(data []byte) (InitScript, error) {
	script := InitScript{}
	if err := yaml.UnmarshalStrict(data, &script); err != nil {
		return InitScript{}, fmt.Errorf("failed to parse init file: %w", err)
	}

	if script.RawBusyTimeout != "" {
		timeout, err := time.ParseDuration(script.RawBusyTimeout)
		if err != nil {
			return InitScript{}, fmt.Errorf("invalid busy_timeout in init file: %w", err)
		}
		if err := validateBusyTimeout(timeout); err != nil {
			return InitScript{}, err
		}
		script.BusyTimeout = timeout
	}

	return script, nil
}
