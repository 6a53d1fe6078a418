package handler

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

//go:embed templates
var embedded embed.FS

type Renderer struct {
	files     fs.FS
	templates map[string]*template.Template
	mu        sync.RWMutex
	funcs     template.FuncMap
}

// NewRenderer serves pages from files, or from the embedded templates when
// files is nil. files must hold layouts/ and pages/ at its root.
func NewRenderer(files fs.FS) *Renderer {
	if files == nil {
		files, _ = fs.Sub(embedded, "templates")
	}
	return &Renderer{
		files:     files,
		templates: make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}
}

func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"upper": strings.ToUpper,
		"join":  strings.Join,
	}
}

func (r *Renderer) loadTemplate(name string) (*template.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.templates[name]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.templates[name]; ok {
		return tmpl, nil
	}

	tmpl, err := template.New("").Funcs(r.funcs).ParseFS(r.files,
		path.Join("layouts", "base.html"),
		path.Join("pages", name+".html"),
	)
	if err != nil {
		return nil, err
	}

	r.templates[name] = tmpl
	return tmpl, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any) error {
	tmpl, err := r.loadTemplate(name)
	if err != nil {
		return err
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}

func (r *Renderer) HTML(c *gin.Context, code int, name string, data any) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(code)
	if err := r.Render(c.Writer, name, data); err != nil {
		c.String(500, "Template error: %v", err)
	}
}
