package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/dtroode/codepad-server/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Pages rendered by the application.
const (
	PageIndex    = "index"
	PageCodes    = "codes"
	PageLogin    = "login"
	PageRegister = "register"
	PageEditor   = "editor"
)

var pages = []string{PageIndex, PageCodes, PageLogin, PageRegister, PageEditor}

// Data is passed to every page template.
type Data struct {
	Identity         *model.Identity
	Error            string
	Email            string
	Name             string
	FileID           string
	Code             string
	Files            []string
	FederatedEnabled bool
}

// Renderer renders HTML pages from embedded templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses all page templates, each combined with the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}

	for _, page := range pages {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		r.templates[page] = t
	}

	return r, nil
}

// Render writes page with the given status.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Data) error {
	t, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
