// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the fact board.
// It supports full-page and HTMX partial rendering, automatically detecting
// the request type via the HX-Request header, plus named fragments for the
// pieces HTMX swaps in place (the fact list, a single fact, the form).
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"factshare/internal/middleware"
	"factshare/internal/models"
	"factshare/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// partialsFile holds every named fragment. It is parsed into each page and
// into the standalone fragment set.
const partialsFile = "partials.html"

// PageData holds all data passed to templates.
type PageData struct {
	Title     string          // Page title for <title> tag
	CSRFToken string          // CSRF token for forms and HTMX headers
	Data      map[string]any  // Page-specific data
	Flashes   []session.Flash // One-time notification messages
}

// Renderer handles template parsing and execution.
type Renderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
	funcMap   template.FuncMap
}

// New creates a Renderer by parsing all templates from the embedded
// filesystem. Each page template is paired with the base layout and the
// shared partials.
func New() (*Renderer, error) {
	r := &Renderer{
		pages: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			"categoryColor": models.CategoryColor,
			"categories":    models.Categories,
			"voteColumns":   func() []models.VoteColumn { return models.VoteColumns },
			"upper":         strings.ToUpper,
			// dict builds a map from alternating keys and values so a
			// fragment can receive more than one argument.
			"dict": func(pairs ...any) (map[string]any, error) {
				if len(pairs)%2 != 0 {
					return nil, errors.New("dict: odd number of arguments")
				}
				m := make(map[string]any, len(pairs)/2)
				for i := 0; i < len(pairs); i += 2 {
					key, ok := pairs[i].(string)
					if !ok {
						return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
					}
					m[key] = pairs[i+1]
				}
				return m, nil
			},
		},
	}

	fragments, err := template.New(partialsFile).Funcs(r.funcMap).ParseFS(templateFS, "templates/"+partialsFile)
	if err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}
	r.fragments = fragments

	entries, err := fs.ReadDir(templateFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "base.html" || name == partialsFile {
			continue
		}

		tmpl, err := template.New("base.html").Funcs(r.funcMap).ParseFS(
			templateFS, "templates/base.html", "templates/"+partialsFile, "templates/"+name,
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}

		r.pages[strings.TrimSuffix(name, ".html")] = tmpl
	}

	return r, nil
}

// Page renders a full page or, for HTMX requests, only its "content"
// block.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	tmpl, ok := rn.pages[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	execName := "base.html"
	if IsHTMX(r) {
		execName = "content"
	}
	rn.execute(w, r, status, tmpl, execName, data)
}

// Fragment renders one named partial, regardless of request type.
func (rn *Renderer) Fragment(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	if rn.fragments.Lookup(name) == nil {
		http.Error(w, fmt.Sprintf("fragment %q not found", name), http.StatusInternalServerError)
		return
	}
	rn.execute(w, r, status, rn.fragments, name, data)
}

// execute renders into a buffer first so a template error never leaves a
// half-written response behind.
func (rn *Renderer) execute(w http.ResponseWriter, r *http.Request, status int, tmpl *template.Template, name string, data *PageData) {
	if data == nil {
		data = &PageData{}
	}
	if data.Data == nil {
		data.Data = map[string]any{}
	}
	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("template execution failed", "template", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// IsHTMX returns true if the request was made by HTMX (has HX-Request
// header). History restores ask for the whole page and report false.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true" && r.Header.Get("HX-History-Restore-Request") != "true"
}
