// Package web embeds the dashboard's page templates and static assets so the
// server ships as a single binary.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed static templates
var content embed.FS

// StaticFS returns the stylesheet and asset tree served under /static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		log.Fatalf("embedded static assets missing: %v", err)
	}
	return sub
}

// TemplatesFS returns the page template tree consumed by the template loader.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(content, "templates")
	if err != nil {
		log.Fatalf("embedded templates missing: %v", err)
	}
	return sub
}
