// Package view renders the console pages. Templates consume the pure view
// models from internal/render; no data shaping happens here.
package view

import (
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/console.css
var consoleCSS []byte

// ConsoleCSS returns the embedded stylesheet served at /static/console.css.
func ConsoleCSS() []byte {
	return consoleCSS
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded template set.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the named page into the response.
func (r *Renderer) Render(c *fiber.Ctx, name string, data any) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return r.tmpl.ExecuteTemplate(c.Response().BodyWriter(), name, data)
}
