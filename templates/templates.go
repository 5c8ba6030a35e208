// Package templates embeds the HTML pages.
package templates

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed *.html
var files embed.FS

// Parse loads every page. imageURL resolves a stored image path for <img>
// tags.
func Parse(imageURL func(string) string) (*template.Template, error) {
	funcs := template.FuncMap{
		"imageURL": imageURL,
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", max(0, 5-n))
		},
	}
	return template.New("").Funcs(funcs).ParseFS(files, "*.html")
}
