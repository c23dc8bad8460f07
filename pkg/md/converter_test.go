package md

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "<p></p>\n",
		},
		{
			name:     "basic paragraph",
			input:    "Hello world",
			expected: "<p>Hello world</p>\n",
		},
		{
			name:     "multiple paragraphs",
			input:    "First paragraph.\n\nSecond paragraph.",
			expected: "<p>First paragraph.</p>\n<p>Second paragraph.</p>\n",
		},
		{
			name:     "h1 header",
			input:    "# Title",
			expected: "<h1>Title</h1>\n",
		},
		{
			name:     "h2 header",
			input:    "## Subtitle",
			expected: "<h2>Subtitle</h2>\n",
		},
		{
			name:     "bold text",
			input:    "This is **bold** text",
			expected: "<p>This is <strong>bold</strong> text</p>\n",
		},
		{
			name:     "italic text",
			input:    "This is *italic* text",
			expected: "<p>This is <em>italic</em> text</p>\n",
		},
		{
			name:     "strikethrough",
			input:    "This is ~~gone~~",
			expected: "<p>This is <del>gone</del></p>\n",
		},
		{
			name:     "unordered list",
			input:    "- Item 1\n- Item 2\n- Item 3",
			expected: "<ul>\n<li>Item 1</li>\n<li>Item 2</li>\n<li>Item 3</li>\n</ul>\n",
		},
		{
			name:     "ordered list is plain text",
			input:    "1. First",
			expected: "<p>1. First</p>\n",
		},
		{
			name:     "inline code",
			input:    "Use `code` here",
			expected: "<p>Use <code>code</code> here</p>\n",
		},
		{
			name:     "link",
			input:    "[Google](https://google.com)",
			expected: "<p><a href=\"https://google.com\">Google</a></p>\n",
		},
		{
			name:     "blockquote",
			input:    "> This is a quote",
			expected: "<blockquote>This is a quote</blockquote>\n",
		},
		{
			name:     "horizontal rule",
			input:    "---",
			expected: "<hr>\n",
		},
		{
			name:     "raw html not escaped",
			input:    "a <b>c</b>\nd & e",
			expected: "<p>a <b>c</b></p>\n<p>d & e</p>\n",
		},
		{
			name:  "simple table",
			input: "| A | B |\n|---|---|\n| 1 | 2 |",
			expected: "<table>\n<thead>\n<tr>\n" +
				"<th style=\"text-align:left\">A</th>\n<th style=\"text-align:left\">B</th>\n" +
				"</tr>\n</thead>\n<tbody>\n<tr>\n" +
				"<td style=\"text-align:left\">1</td>\n<td style=\"text-align:left\">2</td>\n" +
				"</tr>\n</tbody>\n</table>\n",
		},
		{
			name:     "invalid table dropped",
			input:    "|A|B|\n|xx|yy|\n|1|2|",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToHTML(tt.input))
		})
	}
}

func TestConvert_ReportsWarnings(t *testing.T) {
	html, warnings := Convert("# Kept\n|A|\n|x|\n|1|")
	assert.Equal(t, "<h1>Kept</h1>\n", html)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "line 2")
}

func TestConvert_NoWarnings(t *testing.T) {
	html, warnings := Convert("plain")
	assert.Equal(t, "<p>plain</p>\n", html)
	assert.Empty(t, warnings)
}
