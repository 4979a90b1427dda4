// Package view renders the HTML pages. Page templates are wrapped in
// layout.html together with the shared partials unless they are full
// documents themselves.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/go-visitors/auth"
	"github.com/diewo77/go-visitors/i18n"
)

const layoutName = "layout.html"

var partials = []string{
	"partials/header.html",
	"partials/errors-alert.html",
	"partials/stat-card.html",
	"partials/field-text.html",
	"partials/visitor-form.html",
}

// Renderer parses templates from fsys once (on every render in dev mode)
// and binds per-request helpers at execution time.
type Renderer struct {
	fsys     fs.FS
	dev      bool
	defaults func(*http.Request, map[string]any)

	mu    sync.RWMutex
	cache map[string]*template.Template
}

type Option func(*Renderer)

// WithDev disables the template cache.
func WithDev(dev bool) Option { return func(v *Renderer) { v.dev = dev } }

// WithDefaults registers a hook that fills common page data (session,
// company) before every render. Keys already set by the handler win.
func WithDefaults(f func(*http.Request, map[string]any)) Option {
	return func(v *Renderer) { v.defaults = f }
}

func New(fsys fs.FS, opts ...Option) *Renderer {
	v := &Renderer{fsys: fsys, cache: map[string]*template.Template{}}
	for _, o := range opts {
		o(v)
	}
	return v
}

// baseFuncs are the helpers that do not depend on the request. Request-bound
// helpers are declared here with placeholders so templates parse.
func baseFuncs() template.FuncMap {
	return template.FuncMap{
		"t":     func(string) string { return "" },
		"tf":    func(string, ...any) string { return "" },
		"lang":  func() string { return "" },
		"langs": i18n.Supported,
		"year":  func() int { return time.Now().Year() },
		"add":   func(a, b int) int { return a + b },
		"split": strings.Split,
		"clock": func(t time.Time) string { return t.Local().Format("15:04") },
		"date":  func(t time.Time) string { return t.Local().Format("02.01.2006 15:04") },
		"derefTime": func(t *time.Time) time.Time {
			if t == nil {
				return time.Time{}
			}
			return *t
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"safeURL": func(s string) template.URL {
			if strings.HasPrefix(s, "data:image/") {
				return template.URL(s)
			}
			return ""
		},
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			m := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				m[key] = values[i+1]
			}
			return m
		},
	}
}

// requestFuncs bind translation helpers to the request language.
func requestFuncs(r *http.Request) template.FuncMap {
	lang := i18n.FromContext(r.Context())
	return template.FuncMap{
		"t":    func(code string) string { return i18n.Text(lang, i18n.Key(code)) },
		"tf":   func(code string, args ...any) string { return i18n.Textf(lang, i18n.Key(code), args...) },
		"lang": func() string { return string(lang) },
	}
}

func (v *Renderer) parse(name string) (*template.Template, error) {
	content, err := fs.ReadFile(v.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	if bytes.Contains(bytes.ToLower(content), []byte("<!doctype")) {
		return template.New(path.Base(name)).Funcs(baseFuncs()).ParseFS(v.fsys, name)
	}
	files := []string{layoutName, name}
	for _, p := range partials {
		if _, err := fs.Stat(v.fsys, p); err == nil {
			files = append(files, p)
		}
	}
	return template.New(layoutName).Funcs(baseFuncs()).ParseFS(v.fsys, files...)
}

func (v *Renderer) lookup(name string) (*template.Template, error) {
	if !v.dev {
		v.mu.RLock()
		t, ok := v.cache[name]
		v.mu.RUnlock()
		if ok {
			return t, nil
		}
	}
	t, err := v.parse(name)
	if err != nil {
		return nil, err
	}
	if !v.dev {
		v.mu.Lock()
		v.cache[name] = t
		v.mu.Unlock()
	}
	return t, nil
}

// Render writes the page with status 200.
func (v *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) error {
	return v.RenderStatus(w, r, http.StatusOK, name, data)
}

// RenderStatus executes into a buffer first so a template error never
// leaves a half-written page.
func (v *Renderer) RenderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Year"]; !ok {
		data["Year"] = time.Now().Year()
	}
	if _, ok := data["IsLoggedIn"]; !ok {
		_, loggedIn := auth.UserIDFromContext(r.Context())
		data["IsLoggedIn"] = loggedIn
	}
	if _, ok := data["Path"]; !ok {
		data["Path"] = r.URL.Path
	}
	if v.defaults != nil {
		v.defaults(r, data)
	}

	base, err := v.lookup(name)
	if err != nil {
		return err
	}
	t, err := base.Clone()
	if err != nil {
		return err
	}
	t.Funcs(requestFuncs(r))

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
