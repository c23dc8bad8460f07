// Package view provides output formatting for mdp commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// DefaultWidth is used for wrapping when the output is not a terminal.
const DefaultWidth = 80

// ValidFormats returns the accepted --output values.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat checks an --output value. Empty selects the default.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidFormats() {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q: must be one of %s", format, strings.Join(ValidFormats(), ", "))
}

// Renderer renders command output in a specific format.
type Renderer struct {
	format  Format
	writer  io.Writer
	noColor bool
	width   int
}

// NewRenderer creates a new renderer writing to stdout.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	if format == "" {
		format = FormatTable
	}
	return &Renderer{
		format:  format,
		writer:  os.Stdout,
		noColor: noColor,
		width:   TerminalWidth(os.Stdout),
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// SetWidth overrides the wrap width.
func (r *Renderer) SetWidth(width int) {
	r.width = width
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format {
	return r.format
}

// TerminalWidth returns the width of f when it is a terminal, DefaultWidth
// otherwise.
func TerminalWidth(f *os.File) int {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// RenderTable renders rows under headers. Table format pads columns, plain
// format emits tab-separated rows without headers, and JSON emits one
// object per row keyed by lowercased header.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	switch r.format {
	case FormatJSON:
		r.renderTableAsJSON(headers, rows)
	case FormatPlain:
		r.renderTableAsPlain(rows)
	default:
		r.renderTableAsTable(headers, rows)
	}
}

func (r *Renderer) renderTableAsTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) && len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
	}

	bold := color.New(color.Bold)
	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(r.writer, "  ")
		}
		_, _ = bold.Fprint(r.writer, pad(h, widths[i], i == len(headers)-1))
	}
	fmt.Fprintln(r.writer)

	for _, row := range rows {
		for i, val := range row {
			if i > 0 {
				fmt.Fprint(r.writer, "  ")
			}
			if i < len(widths) {
				val = pad(val, widths[i], i == len(row)-1)
			}
			fmt.Fprint(r.writer, val)
		}
		fmt.Fprintln(r.writer)
	}
}

func pad(s string, width int, last bool) string {
	if last || len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func (r *Renderer) renderTableAsJSON(headers []string, rows [][]string) {
	var result []map[string]string
	for _, row := range rows {
		item := make(map[string]string)
		for i, header := range headers {
			if i < len(row) {
				item[strings.ToLower(header)] = row[i]
			}
		}
		result = append(result, item)
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(r.writer, string(data))
}

func (r *Renderer) renderTableAsPlain(rows [][]string) {
	for _, row := range rows {
		fmt.Fprintln(r.writer, strings.Join(row, "\t"))
	}
}

// RenderJSON renders an object as indented JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.writer, string(data))
	return nil
}

// RenderText renders text followed by a newline.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderKeyValue renders a key-value pair.
func (r *Renderer) RenderKeyValue(key, value string) {
	if r.format == FormatJSON {
		data, _ := json.Marshal(map[string]string{key: value})
		fmt.Fprintln(r.writer, string(data))
		return
	}
	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(r.writer, "%s: ", key)
	fmt.Fprintln(r.writer, value)
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	green := color.New(color.FgGreen)
	_, _ = green.Fprintln(r.writer, "✓ "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	red := color.New(color.FgRed)
	_, _ = red.Fprintln(r.writer, "✗ "+msg)
}

// Warning prints a warning, word-wrapped to the renderer width with
// continuation lines indented under the text.
func (r *Renderer) Warning(msg string) {
	yellow := color.New(color.FgYellow)
	const prefix = "! "
	lines := strings.Split(Wrap(msg, r.width-len(prefix)), "\n")
	for i, line := range lines {
		if i == 0 {
			_, _ = yellow.Fprintln(r.writer, prefix+line)
			continue
		}
		_, _ = yellow.Fprintln(r.writer, strings.Repeat(" ", len(prefix))+line)
	}
}

// Warnings prints each message with Warning.
func (r *Renderer) Warnings(msgs []string) {
	for _, msg := range msgs {
		r.Warning(msg)
	}
}

// DiffLine prints one line of a line diff: '-' red, '+' green, anything
// else unstyled.
func (r *Renderer) DiffLine(op byte, text string) {
	line := string(op) + " " + text
	switch op {
	case '-':
		_, _ = color.New(color.FgRed).Fprintln(r.writer, line)
	case '+':
		_, _ = color.New(color.FgGreen).Fprintln(r.writer, line)
	default:
		fmt.Fprintln(r.writer, line)
	}
}

// Wrap word-wraps text to width columns. Non-positive widths disable
// wrapping.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// Truncate truncates a string to the specified length.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
