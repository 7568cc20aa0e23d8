package config

import (
	"fmt"
	"strings"

	"github.com/orsinium-labs/enum"
)

// OutputMode is the format used to print result rows.
type OutputMode enum.Member[string]

var (
	OutputModeTable    = OutputMode{Value: "table"}
	OutputModeCSV      = OutputMode{Value: "csv"}
	OutputModeMarkdown = OutputMode{Value: "markdown"}
	OutputModeHTML     = OutputMode{Value: "html"}
	OutputModeLine     = OutputMode{Value: "line"}

	OutputModes = enum.New(
		OutputModeTable,
		OutputModeCSV,
		OutputModeMarkdown,
		OutputModeHTML,
		OutputModeLine,
	)
)

// ParseOutputMode returns the output mode named by s, case-insensitive.
func ParseOutputMode(s string) (OutputMode, error) {
	mode := OutputModes.Parse(strings.ToLower(strings.TrimSpace(s)))
	if mode == nil {
		return OutputMode{}, fmt.Errorf(
			"invalid output mode %q, valid values are: %s",
			s, strings.Join(OutputModes.Values(), ", "),
		)
	}
	return *mode, nil
}
