// Package views holds the embedded page templates, static assets and the
// small view-model helpers the pages render from.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"fixed3":  FormatProbability,
	"percent": Percent,
}

// Templates parses every page template. Each page is a named template
// ("login", "dashboard", ...) sharing the "head", "nav" and "foot" partials.
func Templates() (*template.Template, error) {
	return template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}

// MustTemplates is Templates for callers that treat a parse failure of the
// embedded templates as a programming error.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// Static serves the embedded stylesheet and images.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
