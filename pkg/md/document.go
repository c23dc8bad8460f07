// document.go wraps a rendered preview in a standalone HTML document.
package md

import (
	"bytes"
	"fmt"
	"html/template"
)

// Element IDs shared by exported documents and ImportDocument.
const (
	EditorElementID  = "markdown-editor"
	PreviewElementID = "markdown-preview"
)

// DefaultDocumentTitle is used when ExportOptions.Title is empty.
const DefaultDocumentTitle = "Markdown Document"

// ExportOptions configures ExportDocument.
type ExportOptions struct {
	Title string
	Theme string // written to data-theme on <html> when set
}

var documentTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html{{if .Theme}} data-theme="{{.Theme}}"{{end}}>
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <style>
        img { max-width: 100%; }
        a { color: #0366d6; text-decoration: none; }
        a:hover { text-decoration: underline; }
    </style>
</head>
<body>
    <textarea id="{{.EditorID}}" style="display:none;">
{{.Markdown}}</textarea>
    <div id="{{.PreviewID}}">
{{.Preview}}    </div>
</body>
</html>
`))

type documentData struct {
	Title     string
	Theme     string
	EditorID  string
	PreviewID string
	Markdown  string
	Preview   template.HTML
}

// ExportDocument renders markdown into a complete HTML document. The source
// is embedded, escaped, in a hidden textarea so ImportDocument can recover
// it exactly.
func ExportDocument(markdown string, opts ExportOptions) (string, error) {
	title := opts.Title
	if title == "" {
		title = DefaultDocumentTitle
	}

	data := documentData{
		Title:     title,
		Theme:     opts.Theme,
		EditorID:  EditorElementID,
		PreviewID: PreviewElementID,
		Markdown:  markdown,
		Preview:   template.HTML(ToHTML(markdown)),
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render document: %w", err)
	}
	return buf.String(), nil
}
