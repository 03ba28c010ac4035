package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names registered with the renderer.
const (
	TemplateDashboard = "dashboard.html"
	TemplateLogin     = "login.html"
)

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}
