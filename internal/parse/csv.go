// Package parse turns loosely formatted user input into typed values.
package parse

import "strings"

// CSV splits text into rows of fields. Blank lines are dropped. A double quote
// toggles quoted mode and is never kept, so "" inside a quoted field does not
// produce a literal quote.
func CSV(text string) [][]string {
	var rows [][]string

	for line := range strings.Lines(strings.ReplaceAll(text, "\r\n", "\n")) {
		line = strings.TrimSuffix(line, "\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		rows = append(rows, splitLine(line))
	}

	return rows
}

func splitLine(line string) []string {
	var (
		row     []string
		field   strings.Builder
		inQuote bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ',' && !inQuote:
			row = append(row, field.String())
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}

	return append(row, field.String())
}
