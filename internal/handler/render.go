// Package handler contains the HTTP handlers. Handlers parse form and path
// parameters, call exactly one service operation, and pick the response
// shape: a rendered template, a redirect, or a plain-text error string.
package handler

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
)

// pageNames lists every page template. Each one is parsed together with
// base.html so its {{define "content"}} block fills the base layout.
var pageNames = []string{
	"homepage",
	"haircut",
	"haircolor",
	"beard_lineup",
	"short_haircut",
	"book_appointment",
	"list_appointment",
	"edit_appointment",
	"signup",
	"login",
}

// Renderer holds the parsed page templates. Parsing happens once at
// startup; a broken template fails server construction instead of the
// first request that hits it.
//
// Each page gets its own *template.Template set (base + page) because all
// pages define a "content" block — a single shared set would let the last
// parsed page win.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses all page templates from templateDir.
func NewRenderer(templateDir string, logger *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, name+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("handler: parsing %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Render executes the named page template into the response.
func (rd *Renderer) Render(w http.ResponseWriter, page string, data map[string]any) {
	tmpl, ok := rd.pages[page]
	if !ok {
		rd.logger.Error("unknown page template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		rd.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
