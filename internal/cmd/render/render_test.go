package render

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/md-preview/internal/cmd/cmdutil"
	"github.com/open-cli-collective/md-preview/pkg/md"
)

func newTestOptions(t *testing.T, input string) (*renderOptions, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("MDP_THEME", "")
	var stdout, stderr bytes.Buffer
	return &renderOptions{
		globals: cmdutil.Globals{ConfigPath: filepath.Join(t.TempDir(), "config.yml"), NoColor: true},
		stdin:   strings.NewReader(input),
		stdout:  &stdout,
		stderr:  &stderr,
	}, &stdout, &stderr
}

func TestRunRender_Stdin(t *testing.T) {
	opts, stdout, stderr := newTestOptions(t, "# Title\n\nSome **bold** text\n- a\n- b")

	err := runRender(opts)
	require.NoError(t, err)

	assert.Equal(t, "<h1>Title</h1>\n<p>Some <strong>bold</strong> text</p>\n<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunRender_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("> quoted"), 0644))

	opts, stdout, _ := newTestOptions(t, "")
	opts.file = path

	require.NoError(t, runRender(opts))
	assert.Equal(t, "<blockquote>quoted</blockquote>\n", stdout.String())
}

func TestRunRender_OutFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.html")
	opts, stdout, _ := newTestOptions(t, "---")
	opts.out = out

	require.NoError(t, runRender(opts))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "<hr>\n", string(data))
}

func TestRunRender_Warnings(t *testing.T) {
	opts, stdout, stderr := newTestOptions(t, "# ok\n|A|B|\n|xx|yy|\n|1|2|")

	require.NoError(t, runRender(opts))
	assert.Equal(t, "<h1>ok</h1>\n", stdout.String())
	assert.Contains(t, stderr.String(), "table block discarded")
	assert.True(t, strings.HasPrefix(stderr.String(), "! "))
}

func TestRunRender_Quiet(t *testing.T) {
	opts, _, stderr := newTestOptions(t, "#\nx")
	opts.quiet = true

	require.NoError(t, runRender(opts))
	assert.Empty(t, stderr.String())
}

func TestRunRender_QuietWritesNothing(t *testing.T) {
	var logged bytes.Buffer
	log.SetOutput(&logged)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	opts, stdout, stderr := newTestOptions(t, "|A|B|\n|xx|yy|\n|1|2|")
	opts.quiet = true

	require.NoError(t, runRender(opts))
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
	assert.Empty(t, logged.String())
}

func TestRunRender_WarningsReportedOnce(t *testing.T) {
	var logged bytes.Buffer
	log.SetOutput(&logged)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	opts, _, stderr := newTestOptions(t, "|A|B|\n|xx|yy|\n|1|2|")

	require.NoError(t, runRender(opts))
	assert.Equal(t, 1, strings.Count(stderr.String(), "table block discarded"))
	assert.Empty(t, logged.String())
}

func TestRunRender_ConfigFormat(t *testing.T) {
	opts, stdout, _ := newTestOptions(t, "# One")
	opts.tokens = true
	require.NoError(t, os.WriteFile(opts.globals.ConfigPath, []byte("output_format: json\n"), 0644))

	require.NoError(t, runRender(opts))

	var tokens []md.Token
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &tokens))
	assert.Equal(t, []md.Token{{Type: md.TokenHeading, Level: 1, Content: "One"}}, tokens)
}

func TestRunRender_ConfigFormatFlagWins(t *testing.T) {
	opts, stdout, _ := newTestOptions(t, "# One")
	opts.tokens = true
	opts.globals.Output = "plain"
	require.NoError(t, os.WriteFile(opts.globals.ConfigPath, []byte("output_format: json\n"), 0644))

	require.NoError(t, runRender(opts))
	assert.False(t, strings.HasPrefix(stdout.String(), "["))
}

func TestRunRender_TokensTable(t *testing.T) {
	opts, stdout, _ := newTestOptions(t, "## Sub\n- item\n|A|B|\n|---|---|\n|1|2|")
	opts.tokens = true

	require.NoError(t, runRender(opts))

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"TYPE", "LEVEL", "CONTENT"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"heading", "2", "Sub"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"list_item", "item"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"table", "2", "columns,", "1", "rows"}, strings.Fields(lines[3]))
}

func TestRunRender_TokensJSON(t *testing.T) {
	opts, stdout, _ := newTestOptions(t, "# One\ntext")
	opts.tokens = true
	opts.globals.Output = "json"

	require.NoError(t, runRender(opts))

	var tokens []md.Token
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &tokens))
	assert.Equal(t, []md.Token{
		{Type: md.TokenHeading, Level: 1, Content: "One"},
		{Type: md.TokenParagraph, Content: "text"},
	}, tokens)
}

func TestRunRender_TokensJSONEmpty(t *testing.T) {
	opts, stdout, _ := newTestOptions(t, "\n\n")
	opts.tokens = true
	opts.globals.Output = "json"

	require.NoError(t, runRender(opts))
	assert.Equal(t, "[]\n", stdout.String())
}

func TestRunRender_InvalidFormat(t *testing.T) {
	opts, _, _ := newTestOptions(t, "x")
	opts.globals.Output = "yaml"

	err := runRender(opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestNewCmdRender(t *testing.T) {
	cmd := NewCmdRender()
	assert.Equal(t, "render [file]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("tokens"))
	assert.NotNil(t, cmd.Flags().Lookup("out"))
	assert.NotNil(t, cmd.Flags().ShorthandLookup("q"))
}
