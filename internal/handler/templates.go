package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
)

//go:embed templates/*.html
var templateFS embed.FS

// TemplateCache holds the parsed page templates, keyed by file name.
type TemplateCache struct {
	cache map[string]*template.Template
}

func NewTemplateCache() (*TemplateCache, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	tc := &TemplateCache{cache: make(map[string]*template.Template, len(files))}
	for _, file := range files {
		name := filepath.Base(file)
		tmpl, err := template.New(name).ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", file, err)
		}
		tc.cache[name] = tmpl
	}
	return tc, nil
}

// Render executes the named template into a buffer first so a template
// error never leaves a half-written page behind.
func (tc *TemplateCache) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := tc.cache[name]
	if !ok {
		slog.Error("template not found", "name", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		slog.Error("template execution failed", "name", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
