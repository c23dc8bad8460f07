// table.go implements table block buffering and parsing.
package md

import (
	"fmt"
	"regexp"
	"strings"
)

// separatorCell matches one cell of a table separator row.
var separatorCell = regexp.MustCompile(`^:?-+:?$`)

// tableState buffers consecutive table rows. It is idle while lines is
// empty and buffering otherwise; flush is the only way back to idle that
// may emit a token.
type tableState struct {
	lines []string
	start int // source line number of the first buffered row
}

func (ts *tableState) buffering() bool {
	return len(ts.lines) > 0
}

func (ts *tableState) push(line string, lineNo int) {
	if !ts.buffering() {
		ts.start = lineNo
	}
	ts.lines = append(ts.lines, line)
}

func (ts *tableState) reset() {
	ts.lines = nil
	ts.start = 0
}

// flush parses the buffered rows into a table token and returns to idle.
// An invalid block is discarded without a token.
func (ts *tableState) flush(result *ParseResult) {
	if !ts.buffering() {
		return
	}
	defer ts.reset()

	table, reason := parseTable(ts.lines)
	if table == nil {
		result.AddWarning("line %d: table block discarded: %s", ts.start, reason)
		return
	}
	result.AddToken(Token{Type: TokenTable, Table: table})
}

// parseTable builds a Table from header, separator and data rows. On
// failure it returns nil and the reason.
func parseTable(lines []string) (*Table, string) {
	if len(lines) < 3 {
		return nil, "needs a header, a separator and at least one row"
	}

	headers := splitCells(lines[0])

	separators := splitCells(lines[1])
	for _, cell := range separators {
		if !separatorCell.MatchString(cell) {
			return nil, fmt.Sprintf("invalid separator cell %q", cell)
		}
	}

	alignments := make([]Alignment, len(headers))
	for i := range alignments {
		alignments[i] = AlignLeft
		if i < len(separators) {
			alignments[i] = parseAlignment(separators[i])
		}
	}

	rows := make([][]string, 0, len(lines)-2)
	for _, line := range lines[2:] {
		rows = append(rows, normalizeRow(splitCells(line), len(headers)))
	}

	return &Table{
		Headers:    headers,
		Alignments: alignments,
		Rows:       rows,
	}, ""
}

// splitCells splits a row on '|', trims every cell and drops empty cells.
func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		if cell := strings.TrimSpace(part); cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

func parseAlignment(cell string) Alignment {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")
	switch {
	case left && right:
		return AlignCenter
	case right:
		return AlignRight
	default:
		return AlignLeft
	}
}

// normalizeRow pads a row with empty cells or truncates it to width.
func normalizeRow(cells []string, width int) []string {
	if len(cells) >= width {
		return cells[:width]
	}
	row := make([]string, width)
	copy(row, cells)
	return row
}
