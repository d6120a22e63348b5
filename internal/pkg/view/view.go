// Package view renders the embedded HTML pages.
//
// Every page shares the base layout; page templates only define the "content"
// block. Templates are parsed once at startup so a broken template fails the
// boot instead of the first request.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/codewithraj/blog/internal/pkg/jwt"
)

//go:embed templates/*.html
var templateFS embed.FS

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	// Category is the display category (success, danger, info).
	Category string
	// Message is the user-facing text.
	Message string
}

// Data is the payload every page template receives.
type Data struct {
	// Title is the page title.
	Title string
	// User holds the session claims, nil for anonymous visitors.
	User *jwt.Claims
	// IsAdmin is true when the session belongs to the privileged identity.
	IsAdmin bool
	// Flashes are one-shot messages from the previous request.
	Flashes []Flash
	// Errors maps form field names to validation messages.
	Errors map[string]string
	// Form holds submitted values for re-rendering a failed form.
	Form map[string]string
	// Content is the page-specific payload.
	Content any
	// Year is the current year for the footer.
	Year int
}

// Renderer renders named pages from the embedded template set.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"longdate": func(t time.Time) string {
		return t.Format("January 02, 2006")
	},
}

// New parses all embedded pages against the base layout.
func New() (*Renderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template)
	for _, entry := range entries {
		name := entry.Name()
		if name == "base.html" {
			continue
		}

		tpl, err := template.New("base.html").
			Funcs(funcs).
			ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		pages[name] = tpl
	}

	return &Renderer{pages: pages}, nil
}

// Render writes the named page to w.
func (r *Renderer) Render(w io.Writer, page string, data Data) error {
	tpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("view: unknown page %q", page)
	}

	if data.Year == 0 {
		data.Year = time.Now().Year()
	}

	return tpl.ExecuteTemplate(w, "base.html", data)
}
