// inline.go implements the inline span substitutions applied inside blocks.
package md

import "regexp"

// inlineRule rewrites one kind of inline span.
type inlineRule struct {
	name        string
	pattern     *regexp.Regexp
	replacement string
}

// inlineRules run in order, each over the output of the previous one.
// Later rules see the tags inserted by earlier ones; nothing is escaped.
var inlineRules = []inlineRule{
	{"strikethrough", regexp.MustCompile(`~~(.+?)~~`), `<del>${1}</del>`},
	{"bold", regexp.MustCompile(`\*\*(.+?)\*\*`), `<strong>${1}</strong>`},
	{"italic", regexp.MustCompile(`\*(.+?)\*`), `<em>${1}</em>`},
	{"code", regexp.MustCompile("`(.+?)`"), `<code>${1}</code>`},
	{"link", regexp.MustCompile(`\[(.+?)\]\((.+?)\)`), `<a href="${2}">${1}</a>`},
}

// Transform rewrites the inline spans of text into HTML tags:
//
//	~~x~~     -> <del>x</del>
//	**x**     -> <strong>x</strong>
//	*x*       -> <em>x</em>
//	`x`       -> <code>x</code>
//	[t](u)    -> <a href="u">t</a>
//
// Text and URLs are interpolated verbatim. Transform is safe for concurrent use.
func Transform(text string) string {
	for _, rule := range inlineRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return text
}
