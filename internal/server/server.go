// Package server implements the local live-preview HTTP server.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/open-cli-collective/md-preview/internal/config"
	"github.com/open-cli-collective/md-preview/internal/store"
	"github.com/open-cli-collective/md-preview/pkg/md"
)

// maxBodyBytes bounds request bodies accepted by the API.
const maxBodyBytes = 8 << 20

//go:embed static/index.html
var staticFiles embed.FS

var editorTemplate = template.Must(template.ParseFS(staticFiles, "static/index.html"))

// Options configures a Server.
type Options struct {
	Addr           string
	Theme          string // used until a theme has been saved
	PreviewDelayMS int
	SaveDelayMS    int
}

// OptionsFromConfig maps the CLI configuration onto server options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Addr:           cfg.Listen,
		Theme:          cfg.Theme,
		PreviewDelayMS: cfg.PreviewDelayMS,
		SaveDelayMS:    cfg.SaveDelayMS,
	}
}

// Server serves the editor page and its JSON API.
type Server struct {
	opts  Options
	store *store.Store
	mux   *http.ServeMux
}

// New creates a Server backed by st.
func New(opts Options, st *store.Store) *Server {
	if opts.Theme == "" {
		opts.Theme = config.DefaultTheme
	}
	s := &Server{opts: opts, store: st, mux: http.NewServeMux()}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /api/render", s.handleRender)
	s.mux.HandleFunc("GET /api/document", s.handleGetDocument)
	s.mux.HandleFunc("PUT /api/document", s.handlePutDocument)
	s.mux.HandleFunc("DELETE /api/document", s.handleDeleteDocument)
	s.mux.HandleFunc("GET /api/theme", s.handleGetTheme)
	s.mux.HandleFunc("PUT /api/theme", s.handlePutTheme)
	s.mux.HandleFunc("GET /api/export", s.handleExport)
	s.mux.HandleFunc("POST /api/import", s.handleImport)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe serves on opts.Addr until ctx is cancelled, then shuts
// down gracefully. ready, if non-nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, ready func(addr string)) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}

	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if ready != nil {
		ready(ln.Addr().String())
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down: %w", err)
		}
		return nil
	}
}

type indexData struct {
	Theme          string
	Content        string
	Preview        template.HTML
	PreviewDelayMS int
	SaveDelayMS    int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	theme, err := s.store.GetOr(store.KeyTheme, s.opts.Theme)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	content, err := s.store.GetOr(store.KeyContent, "")
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = editorTemplate.Execute(w, indexData{
		Theme:          theme,
		Content:        content,
		Preview:        template.HTML(md.ToHTML(content)),
		PreviewDelayMS: s.opts.PreviewDelayMS,
		SaveDelayMS:    s.opts.SaveDelayMS,
	})
	if err != nil {
		log.Printf("WARN: failed to render editor page: %v", err)
	}
}

// RenderResponse is returned by POST /api/render.
type RenderResponse struct {
	HTML     string   `json:"html"`
	Warnings []string `json:"warnings"`
}

// DocumentResponse is returned by the document and import endpoints.
type DocumentResponse struct {
	Content string `json:"content"`
}

// ThemeResponse is returned by GET /api/theme.
type ThemeResponse struct {
	Theme string `json:"theme"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	html, warnings := md.Convert(body)
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, http.StatusOK, RenderResponse{HTML: html, Warnings: warnings})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	content, err := s.store.GetOr(store.KeyContent, "")
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentResponse{Content: content})
}

func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	if err := s.store.Put(store.KeyContent, body); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(store.KeyContent); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.store.GetOr(store.KeyTheme, s.opts.Theme)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: theme})
}

func (s *Server) handlePutTheme(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	if !config.ValidTheme(body) {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("theme must be one of %v", config.Themes))
		return
	}
	if err := s.store.Put(store.KeyTheme, body); err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	content, err := s.store.GetOr(store.KeyContent, "")
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	theme, err := s.store.GetOr(store.KeyTheme, s.opts.Theme)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	doc, err := md.ExportDocument(content, md.ExportOptions{Theme: theme})
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="markdown.html"`)
	_, _ = io.WriteString(w, doc)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		s.fail(w, http.StatusBadRequest, errors.New("name query parameter is required"))
		return
	}
	body, err := readBody(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	content, err := md.ImportDocument(name, []byte(body))
	if err != nil {
		s.fail(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, DocumentResponse{Content: content})
}

func readBody(r *http.Request) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read request body: %w", err)
	}
	if len(data) > maxBodyBytes {
		return "", fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}
	return string(data), nil
}

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Message string `json:"message"`
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.Printf("WARN: %v", err)
	}
	writeJSON(w, status, errorResponse{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("WARN: failed to write response: %v", err)
	}
}
