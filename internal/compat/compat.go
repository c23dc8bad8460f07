// Package compat compares the preview dialect with a CommonMark + GFM
// reference renderer, block by block.
package compat

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"

	"github.com/open-cli-collective/md-preview/pkg/md"
)

// reference renders the same source with GFM tables and strikethrough.
var reference = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// blockSelector picks the elements compared between both renderings.
var blockSelector = cascadia.MustCompile("h1, h2, h3, h4, h5, h6, p, li, blockquote, th, td, hr, pre")

// Op is the kind of a diff line.
type Op byte

const (
	OpEqual  Op = ' '
	OpDelete Op = '-' // block only in the preview dialect
	OpInsert Op = '+' // block only in the reference rendering
)

// Line is one block line of a diff.
type Line struct {
	Op   Op
	Text string
}

// Report is the result of Compare.
type Report struct {
	Ours      []string // block lines of the preview dialect
	Reference []string // block lines of the reference rendering
	Lines     []Line
	Warnings  []string // tokenizer warnings for the source
}

// Equal reports whether both renderings have the same blocks.
func (r *Report) Equal() bool {
	for _, l := range r.Lines {
		if l.Op != OpEqual {
			return false
		}
	}
	return true
}

// Changes returns only the lines that differ.
func (r *Report) Changes() []Line {
	var changes []Line
	for _, l := range r.Lines {
		if l.Op != OpEqual {
			changes = append(changes, l)
		}
	}
	return changes
}

// Compare renders markdown with both renderers and diffs their blocks.
func Compare(markdown string) (*Report, error) {
	ours, warnings := md.Convert(markdown)

	var buf bytes.Buffer
	if err := reference.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("failed to render reference: %w", err)
	}

	ourBlocks, err := Blocks(ours)
	if err != nil {
		return nil, err
	}
	refBlocks, err := Blocks(buf.String())
	if err != nil {
		return nil, err
	}

	return &Report{
		Ours:      ourBlocks,
		Reference: refBlocks,
		Lines:     diffLines(ourBlocks, refBlocks),
		Warnings:  warnings,
	}, nil
}

// Blocks reduces an HTML fragment to one "tag: text" line per block
// element, in document order. Text is whitespace-collapsed; table cells
// carry their alignment.
func Blocks(fragment string) ([]string, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	var blocks []string
	for _, n := range blockSelector.MatchAll(doc) {
		blocks = append(blocks, describe(n))
	}
	return blocks, nil
}

func describe(n *html.Node) string {
	tag := n.Data
	if tag == "th" || tag == "td" {
		tag += "[" + cellAlignment(n) + "]"
	}
	text := strings.Join(strings.Fields(md.TextContent(n)), " ")
	if text == "" {
		return tag
	}
	return tag + ": " + text
}

// cellAlignment reads the alignment from either a style attribute
// (text-align:x) or an align attribute, defaulting to left.
func cellAlignment(n *html.Node) string {
	for _, attr := range n.Attr {
		switch attr.Key {
		case "align":
			return attr.Val
		case "style":
			style := strings.ReplaceAll(attr.Val, " ", "")
			if i := strings.Index(style, "text-align:"); i >= 0 {
				value := style[i+len("text-align:"):]
				if end := strings.IndexByte(value, ';'); end >= 0 {
					value = value[:end]
				}
				return value
			}
		}
	}
	return string(md.AlignLeft)
}

// diffLines computes a line-level diff of a against b.
func diffLines(a, b []string) []Line {
	dmp := diffmatchpatch.New()
	textA := joinLines(a)
	textB := joinLines(b)

	charsA, charsB, lineArray := dmp.DiffLinesToChars(textA, textB)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(charsA, charsB, false), lineArray)

	var lines []Line
	for _, d := range diffs {
		op := OpEqual
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = OpDelete
		case diffmatchpatch.DiffInsert:
			op = OpInsert
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			lines = append(lines, Line{Op: op, Text: strings.TrimSuffix(text, "\n")})
		}
	}
	return lines
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
