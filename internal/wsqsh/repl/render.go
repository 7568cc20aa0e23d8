package repl

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nsqlite/wsq/internal/wsqsh/config"
	"github.com/nsqlite/wsq/internal/wsqsh/styled"
)

const nullText = "NULL"

// render formats the rows of res in the given output mode.
func render(mode config.OutputMode, res result, colored bool) string {
	if mode == config.OutputModeLine {
		return renderLines(res)
	}

	tw := styled.NewPlainTableWriter()
	if colored && mode == config.OutputModeTable {
		tw = styled.NewTableWriter()
	}

	null := nullText
	if mode == config.OutputModeCSV {
		null = ""
	}

	header := make(table.Row, len(res.columns))
	for i, col := range res.columns {
		header[i] = col
	}
	tw.AppendHeader(header)

	for _, row := range res.rows {
		tableRow := make(table.Row, len(row))
		for i, value := range row {
			if value == nil {
				tableRow[i] = null
				continue
			}
			tableRow[i] = value
		}
		tw.AppendRow(tableRow)
	}

	switch mode {
	case config.OutputModeCSV:
		return tw.RenderCSV()
	case config.OutputModeMarkdown:
		return tw.RenderMarkdown()
	case config.OutputModeHTML:
		return tw.RenderHTML()
	}
	return tw.Render()
}

// renderLines prints one "column = value" line per column, with a blank
// line between rows and column names aligned to the right.
func renderLines(res result) string {
	width := 0
	for _, col := range res.columns {
		width = max(width, len(col))
	}

	var sb strings.Builder
	for i, row := range res.rows {
		if i > 0 {
			sb.WriteString("\n")
		}
		for j, value := range row {
			if value == nil {
				value = nullText
			}
			fmt.Fprintf(&sb, "%*s = %v\n", width, res.columns[j], value)
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
