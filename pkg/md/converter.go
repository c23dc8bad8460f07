// Package md converts a small, fixed Markdown dialect to HTML for live
// preview.
//
// The dialect covers ATX headings, flat unordered lists, single-line
// blockquotes, pipe tables with alignment, horizontal rules, paragraphs and
// the inline spans ~~del~~, **strong**, *em*, `code` and [text](url). Output
// is an HTML fragment and is not sanitized: source text, link text and URLs
// are interpolated verbatim.
package md

// ToHTML converts markdown to an HTML fragment.
func ToHTML(markdown string) string {
	return Render(Parse(markdown))
}

// Convert converts markdown to an HTML fragment and reports what the
// tokenizer discarded.
func Convert(markdown string) (string, []string) {
	result := ParseWithWarnings(markdown)
	return Render(result.Tokens), result.Warnings
}
