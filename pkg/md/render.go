// render.go serializes block tokens to an HTML fragment.
package md

import (
	"strconv"
	"strings"
)

// Render serializes tokens to HTML, one element per line. Consecutive list
// items share a single <ul>; any other token closes an open list first.
// Table header and cell text is passed through Transform here.
func Render(tokens []Token) string {
	var sb strings.Builder
	inList := false

	closeList := func() {
		if inList {
			sb.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, tok := range tokens {
		if tok.Type != TokenListItem {
			closeList()
		}

		switch tok.Type {
		case TokenHorizontalRule:
			sb.WriteString("<hr>\n")

		case TokenTable:
			if tok.Table != nil {
				renderTable(&sb, tok.Table)
			}

		case TokenHeading:
			level := strconv.Itoa(tok.Level)
			sb.WriteString("<h" + level + ">")
			sb.WriteString(tok.Content)
			sb.WriteString("</h" + level + ">\n")

		case TokenParagraph:
			sb.WriteString("<p>")
			sb.WriteString(tok.Content)
			sb.WriteString("</p>\n")

		case TokenListItem:
			if !inList {
				sb.WriteString("<ul>\n")
				inList = true
			}
			sb.WriteString("<li>")
			sb.WriteString(tok.Content)
			sb.WriteString("</li>\n")

		case TokenBlockquote:
			sb.WriteString("<blockquote>")
			sb.WriteString(tok.Content)
			sb.WriteString("</blockquote>\n")

		case TokenCodeBlock:
			sb.WriteString("<pre><code>")
			sb.WriteString(tok.Content)
			sb.WriteString("</code></pre>\n")

		case TokenBlankLine:
			// the list, if any, was closed above
		}
	}

	closeList()

	return sb.String()
}

func renderTable(sb *strings.Builder, table *Table) {
	sb.WriteString("<table>\n")

	sb.WriteString("<thead>\n<tr>\n")
	for i, header := range table.Headers {
		writeCell(sb, "th", columnAlignment(table, i), header)
	}
	sb.WriteString("</tr>\n</thead>\n")

	sb.WriteString("<tbody>\n")
	for _, row := range table.Rows {
		sb.WriteString("<tr>\n")
		for i, cell := range row {
			writeCell(sb, "td", columnAlignment(table, i), cell)
		}
		sb.WriteString("</tr>\n")
	}
	sb.WriteString("</tbody>\n</table>\n")
}

func writeCell(sb *strings.Builder, tag string, align Alignment, text string) {
	sb.WriteString("<" + tag + ` style="text-align:` + string(align) + `">`)
	sb.WriteString(Transform(text))
	sb.WriteString("</" + tag + ">\n")
}

// columnAlignment tolerates hand-built tables whose alignments are shorter
// than their rows.
func columnAlignment(table *Table, col int) Alignment {
	if col < len(table.Alignments) && table.Alignments[col] != "" {
		return table.Alignments[col]
	}
	return AlignLeft
}
