// Package web holds the HTML templates rendered by the handlers.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates
var files embed.FS

// Templates parses every page and partial. Each file names its template
// with a define block matching its path under templates/.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"formatTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 02, 2006 at 15:04")
		},
	}).ParseFS(files,
		"templates/*.html",
		"templates/users/*.html",
		"templates/messages/*.html",
		"templates/admin/*.html",
	)
}
