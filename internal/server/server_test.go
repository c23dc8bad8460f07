package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/md-preview/internal/config"
	"github.com/open-cli-collective/md-preview/internal/store"
	"github.com/open-cli-collective/md-preview/pkg/md"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return New(Options{PreviewDelayMS: 100, SaveDelayMS: 1000}, st), st
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{Listen: "127.0.0.1:9000", Theme: "dark", PreviewDelayMS: 50, SaveDelayMS: 500}
	opts := OptionsFromConfig(cfg)
	assert.Equal(t, Options{Addr: "127.0.0.1:9000", Theme: "dark", PreviewDelayMS: 50, SaveDelayMS: 500}, opts)
}

func TestIndex(t *testing.T) {
	srv, st := newTestServer(t)
	require.NoError(t, st.Put(store.KeyContent, "# Hello"))

	rec := do(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	body := rec.Body.String()
	assert.Contains(t, body, `data-theme="light"`)
	assert.Contains(t, body, "# Hello</textarea>")
	assert.Contains(t, body, `<div id="markdown-preview"><h1>Hello</h1>`)
	assert.Regexp(t, `var previewDelay = \s*100\s*;`, body)
	assert.Regexp(t, `var saveDelay = \s*1000\s*;`, body)
}

func TestIndex_ExportLink(t *testing.T) {
	srv, _ := newTestServer(t)

	body := do(t, srv, http.MethodGet, "/", "").Body.String()
	assert.Contains(t, body, `<a id="export" class="button" href="/api/export"`)
	assert.NotRegexp(t, `<a[^>]*>\s*<button`, body)
}

func TestIndex_EscapesContent(t *testing.T) {
	srv, st := newTestServer(t)
	require.NoError(t, st.Put(store.KeyContent, "</textarea><script>x</script>"))

	rec := do(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "&lt;/textarea&gt;&lt;script&gt;x&lt;/script&gt;</textarea>")
}

func TestIndex_UnknownPath(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRender(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name         string
		body         string
		wantHTML     string
		wantWarnings int
	}{
		{
			name:     "heading",
			body:     "# Title",
			wantHTML: "<h1>Title</h1>\n",
		},
		{
			name:     "single line paragraph",
			body:     "plain text",
			wantHTML: "<p>plain text</p>\n",
		},
		{
			name:         "malformed table",
			body:         "|A|B|\n|xx|yy|\n|1|2|",
			wantHTML:     "",
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/render", tt.body)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp RenderResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantHTML, resp.HTML)
			assert.Len(t, resp.Warnings, tt.wantWarnings)
			assert.NotNil(t, resp.Warnings)
		})
	}
}

func TestRender_WrongMethod(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/render", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDocumentLifecycle(t *testing.T) {
	srv, st := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/document", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"content":""}`, rec.Body.String())

	rec = do(t, srv, http.MethodPut, "/api/document", "- item\n- other")
	require.Equal(t, http.StatusNoContent, rec.Code)

	stored, err := st.Get(store.KeyContent)
	require.NoError(t, err)
	assert.Equal(t, "- item\n- other", stored)

	rec = do(t, srv, http.MethodGet, "/api/document", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"content":"- item\n- other"}`, rec.Body.String())

	rec = do(t, srv, http.MethodDelete, "/api/document", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, err = st.Get(store.KeyContent)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTheme(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/theme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"theme":"light"}`, rec.Body.String())

	rec = do(t, srv, http.MethodPut, "/api/theme", "dark")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/theme", "")
	assert.JSONEq(t, `{"theme":"dark"}`, rec.Body.String())

	rec = do(t, srv, http.MethodGet, "/", "")
	assert.Contains(t, rec.Body.String(), `data-theme="dark"`)
}

func TestTheme_Invalid(t *testing.T) {
	srv, st := newTestServer(t)

	rec := do(t, srv, http.MethodPut, "/api/theme", "solarized")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "theme must be one of")

	_, err := st.Get(store.KeyTheme)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTheme_ConfiguredDefault(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	srv := New(Options{Theme: "dark"}, st)

	rec := do(t, srv, http.MethodGet, "/api/theme", "")
	assert.JSONEq(t, `{"theme":"dark"}`, rec.Body.String())
}

func TestExport(t *testing.T) {
	srv, st := newTestServer(t)
	require.NoError(t, st.Put(store.KeyContent, "# Export me"))
	require.NoError(t, st.Put(store.KeyTheme, "dark"))

	rec := do(t, srv, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="markdown.html"`, rec.Header().Get("Content-Disposition"))

	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
	assert.Contains(t, body, `data-theme="dark"`)
	assert.Contains(t, body, "<h1>Export me</h1>")

	// an exported document imports back to its source
	content, err := md.ImportDocument("markdown.html", rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "# Export me", content)
}

func TestImport(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name     string
		target   string
		body     string
		wantCode int
		want     string
	}{
		{
			name:     "markdown file",
			target:   "/api/import?name=notes.md",
			body:     "# Notes\n\n- a",
			wantCode: http.StatusOK,
			want:     "# Notes\n\n- a",
		},
		{
			name:     "html preview",
			target:   "/api/import?name=page.html",
			body:     `<div id="markdown-preview"><h2>Title</h2><p>Some <strong>bold</strong> text</p></div>`,
			wantCode: http.StatusOK,
			want:     "## Title\n\nSome **bold** text",
		},
		{
			name:     "missing name",
			target:   "/api/import",
			body:     "x",
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, tt.target, tt.body)
			require.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusOK {
				return
			}
			var resp DocumentResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp.Content)
		})
	}
}

func TestImport_DoesNotSave(t *testing.T) {
	srv, st := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/api/import?name=a.md", "imported")
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := st.Get(store.KeyContent)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReadBody_TooLarge(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/render", strings.NewReader(strings.Repeat("a", maxBodyBytes+1)))
	_, err := readBody(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds")
}

func TestListenAndServe(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	srv := New(Options{Addr: "127.0.0.1:0"}, st)

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(ctx, func(addr string) { addrCh <- addr })
	}()

	var addr string
	select {
	case addr = <-addrCh:
	case err := <-errCh:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Post("http://"+addr+"/api/render", "text/plain", strings.NewReader("## Live"))
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.JSONEq(t, `{"html":"<h2>Live</h2>\n","warnings":[]}`, string(data))

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServe_BadAddress(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	srv := New(Options{Addr: "not an address"}, st)

	err = srv.ListenAndServe(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
