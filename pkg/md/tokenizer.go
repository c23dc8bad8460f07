// tokenizer.go implements the line-oriented block tokenizer.
package md

import (
	"regexp"
	"strings"
)

var (
	ruleLine    = regexp.MustCompile(`^(-{3,}|\*{3,})$`)
	headingLine = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
)

// listMarkers are the two-byte prefixes that start a list item.
var listMarkers = []string{"- ", "* ", "+ "}

// Parse splits markdown into block tokens. It is a pure function: every call
// returns a freshly allocated slice and is safe for concurrent use.
func Parse(markdown string) []Token {
	return ParseWithWarnings(markdown).Tokens
}

// ParseWithWarnings is Parse with diagnostics. Warnings describe content
// that was silently dropped; they never change the returned tokens.
//
// A single line without any recognized syntax is returned as one paragraph
// holding the input verbatim, without inline substitution.
func ParseWithWarnings(markdown string) *ParseResult {
	result := &ParseResult{}

	if !strings.Contains(markdown, "\n") && !HasMarkdownSyntax(markdown) {
		result.AddToken(Token{Type: TokenParagraph, Content: markdown})
		return result
	}

	lines := strings.Split(markdown, "\n")
	table := &tableState{}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		lineNo := i + 1

		if ruleLine.MatchString(line) {
			result.AddToken(Token{Type: TokenHorizontalRule})
			continue
		}

		if isTableRow(line) {
			table.push(line, lineNo)
			if i+1 >= len(lines) || !continuesTable(lines[i+1]) {
				table.flush(result)
			}
			continue
		}

		switch {
		case line == "":
			// blank lines separate nothing and close nothing
		case strings.HasPrefix(line, "#"):
			parseHeading(result, line, lineNo)
		case hasListMarker(line):
			result.AddToken(Token{Type: TokenListItem, Content: Transform(line[2:])})
		case strings.HasPrefix(line, "> "):
			result.AddToken(Token{Type: TokenBlockquote, Content: Transform(line[2:])})
		case table.buffering():
			result.AddWarning("line %d: dropped inside table block: %q", lineNo, line)
		default:
			result.AddToken(Token{Type: TokenParagraph, Content: Transform(line)})
		}
	}

	if table.buffering() {
		result.AddWarning("line %d: unterminated table block discarded (%d lines)",
			table.start, len(table.lines))
		table.reset()
	}

	return result
}

// parseHeading emits a heading token, or nothing when the line has no text
// after its marker or more than six '#'.
func parseHeading(result *ParseResult, line string, lineNo int) {
	m := headingLine.FindStringSubmatch(line)
	if m == nil {
		result.AddWarning("line %d: malformed heading dropped: %q", lineNo, line)
		return
	}
	result.AddToken(Token{
		Type:    TokenHeading,
		Level:   len(m[1]),
		Content: Transform(m[2]),
	})
}

func hasListMarker(line string) bool {
	for _, marker := range listMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// isTableRow reports whether a trimmed line is a pipe-delimited table row.
func isTableRow(line string) bool {
	return strings.HasPrefix(line, "|") && strings.HasSuffix(line, "|")
}

// continuesTable reports whether the raw line following a table row keeps
// the table block open. Only the leading pipe is checked, so a line such as
// "| note" holds the block open and is then dropped.
func continuesTable(next string) bool {
	return strings.HasPrefix(strings.TrimSpace(next), "|")
}
