package view

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/sinobridge-erp/sinobridge-erp/web"
)

// Engine renders HTML templates for the public site.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates. T holds the
// translated strings for the active language.
type TemplateData struct {
	Title       string
	Lang        string
	CurrentPath string
	T           map[string]string
	Data        any
}

// NewEngine parses templates at build-time.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		},
		"money": func(v float64) string {
			return fmt.Sprintf("¥%.2f", v)
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}
