package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/miniblog/backend/internal/models"
	"github.com/miniblog/backend/internal/session"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames are the renderable pages; each is parsed together with the layout
var pageNames = []string{"index.html", "home.html", "about.html", "register.html", "login.html"}

// Renderer executes embedded page templates
type Renderer struct {
	pages  map[string]*template.Template
	logger *zap.Logger
}

// NewRenderer parses all embedded templates up front
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{
		pages:  pages,
		logger: logger,
	}, nil
}

// PageData carries everything a page template can show
type PageData struct {
	Session *models.Session // nil when anonymous
	Flashes []session.Flash
	Posts   []models.Post
	Users   []models.User
	// Form holds the previous submission so a rejected form re-renders with
	// the user's input intact
	Form url.Values
}

// Render writes the named page. Rendering is buffered so a failure degrades
// to a redirect instead of a half-written response.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.pages[name]
	if !ok {
		rn.logger.Error("unknown template", zap.String("template", name))
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		rn.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
