// token.go defines the block token types produced by the tokenizer.
package md

import (
	"encoding/json"
	"fmt"
)

// TokenType identifies the block construct a Token represents.
type TokenType int

const (
	TokenParagraph      TokenType = iota // default fallback for any other line
	TokenHeading                         // # .. ###### heading
	TokenListItem                        // "- ", "* " or "+ " item, flat
	TokenBlockquote                      // "> " line
	TokenHorizontalRule                  // --- or ***
	TokenTable                           // header + separator + rows
	TokenCodeBlock                       // rendered, never produced by Parse
	TokenBlankLine                       // closes an open list, never produced by Parse
)

var tokenTypeNames = map[TokenType]string{
	TokenParagraph:      "paragraph",
	TokenHeading:        "heading",
	TokenListItem:       "list_item",
	TokenBlockquote:     "blockquote",
	TokenHorizontalRule: "hr",
	TokenTable:          "table",
	TokenCodeBlock:      "code_block",
	TokenBlankLine:      "blank_line",
}

// String returns the lowercase name of the token type.
func (t TokenType) String() string {
	if name, ok := tokenTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// MarshalJSON encodes the token type by name.
func (t TokenType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a token type name.
func (t *TokenType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for typ, n := range tokenTypeNames {
		if n == name {
			*t = typ
			return nil
		}
	}
	return fmt.Errorf("unknown token type %q", name)
}

// Alignment is the text alignment of a table column.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Table holds the parsed cells of a table block. Header and cell text is
// kept raw; inline spans are rendered by Render.
type Table struct {
	Headers    []string    `json:"headers"`
	Alignments []Alignment `json:"alignments"` // one per header column
	Rows       [][]string  `json:"rows"`       // each row has len(Headers) cells
}

// Token is a single block-level unit of a parsed document.
type Token struct {
	Type    TokenType `json:"type"`
	Level   int       `json:"level,omitempty"`   // set for TokenHeading (1-6)
	Content string    `json:"content,omitempty"` // inline-rendered HTML for text blocks
	Table   *Table    `json:"table,omitempty"`   // set for TokenTable
}
