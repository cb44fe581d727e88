package web

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/solegrid/storefront/internal/domain"
)

//go:embed templates static
var assetsFS embed.FS

var pageNames = []string{
	"home",
	"listing",
	"detail",
	"cart",
	"checkout",
	"payment",
	"payment_missing",
	"orders",
	"login",
	"signup",
	"notfound",
}

// Renderer holds one template set per page, each page parsed together with
// the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer(backendBaseURL string) (*Renderer, error) {
	funcs := template.FuncMap{
		"money": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		"img": func(raw string) string {
			return domain.ResolveImageURL(backendBaseURL, raw)
		},
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(assetsFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data interface{}) {
	tmpl, ok := r.templates[name]
	if !ok {
		log.Printf("unknown template %q", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}
