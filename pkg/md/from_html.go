// from_html.go recovers Markdown source from exported or pasted HTML.
package md

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

var (
	editorSelector  = cascadia.MustCompile("#" + EditorElementID)
	previewSelector = cascadia.MustCompile("#" + PreviewElementID)
)

// ImportDocument returns the Markdown source of an opened file. Markdown and
// text files are returned as-is. For HTML files the source embedded by
// ExportDocument is preferred; otherwise the preview element is converted
// back to Markdown. HTML without either element is returned unchanged.
func ImportDocument(name string, content []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return fromExportedHTML(string(content))
	default:
		return string(content), nil
	}
}

func fromExportedHTML(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	if editor := editorSelector.MatchFirst(doc); editor != nil {
		if source := TextContent(editor); source != "" {
			return source, nil
		}
	}

	if preview := previewSelector.MatchFirst(doc); preview != nil {
		inner, err := innerHTML(preview)
		if err != nil {
			return "", err
		}
		return FromHTML(inner)
	}

	return content, nil
}

// FromHTML converts an HTML fragment to Markdown.
func FromHTML(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return "", fmt.Errorf("failed to convert html: %w", err)
	}

	return strings.TrimSpace(markdown), nil
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func innerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("failed to render html: %w", err)
		}
	}
	return buf.String(), nil
}
