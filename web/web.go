// Package web holds the bundled browser front end.
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed static templates
var assets embed.FS

// Static is the tree served under /static (index.html, style.css, script.js).
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Index is the chat page served at /.
func Index() []byte {
	data, err := assets.ReadFile("static/index.html")
	if err != nil {
		panic(err)
	}
	return data
}

// AdminTemplate is the /admin status page.
func AdminTemplate() *template.Template {
	return template.Must(template.ParseFS(assets, "templates/admin.html"))
}
