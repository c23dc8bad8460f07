// detect.go implements the syntax detector behind the single-line fast path.
package md

import "regexp"

var syntaxDetectors = []*regexp.Regexp{
	regexp.MustCompile(`^#{1,6}\s`),    // heading
	regexp.MustCompile(`^\s*[-+*]\s`),  // list item
	regexp.MustCompile(`^\s*>\s`),      // blockquote
	regexp.MustCompile(`\*\*.*\*\*`),   // bold
	regexp.MustCompile(`\*.*\*`),       // italic
	regexp.MustCompile("`.*`"),         // inline code
	regexp.MustCompile(`\[.*\]\(.*\)`), // link
	regexp.MustCompile(`^-{3,}$`),      // horizontal rule
	regexp.MustCompile(`^[|].*[|]$`),   // table row
	regexp.MustCompile(`~~.*~~`),       // strikethrough
}

// HasMarkdownSyntax reports whether text contains any construct the
// tokenizer would treat specially.
func HasMarkdownSyntax(text string) bool {
	for _, re := range syntaxDetectors {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
