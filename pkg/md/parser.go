// parser.go defines the parse result shared by the tokenizer and its callers.
package md

import "fmt"

// ParseResult contains the tokens of a parsed document together with the
// diagnostics for any content that was discarded along the way.
type ParseResult struct {
	Tokens   []Token
	Warnings []string // one entry per dropped line, table or heading
}

// AddToken appends a token to the result.
func (pr *ParseResult) AddToken(tok Token) {
	pr.Tokens = append(pr.Tokens, tok)
}

// AddWarning stores a warning in the result. Reporting is left to the
// caller.
func (pr *ParseResult) AddWarning(format string, args ...interface{}) {
	pr.Warnings = append(pr.Warnings, fmt.Sprintf(format, args...))
}
