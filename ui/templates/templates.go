// Package templates embeds the UI's HTML pages.
package templates

import (
	"embed"
	"html/template"

	"github.com/like-mike/loja/shared/models"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"money": func(m models.Money) string {
		return "R$ " + m.String()
	},
	"date": func(d models.Date) string {
		return d.Format("02/01/2006")
	},
}

// Load parses every page. Pages are addressed by file name, e.g. "login.html".
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "*.html")
}
