package render

import (
	"errors"
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Engine renders pongo2 templates resolved against an ordered list of search
// directories. Compiled templates are cached per engine; an Engine is safe
// for concurrent use.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// NewEngine builds an engine searching the given directories in order. With
// no directories the current directory is searched.
func NewEngine(dirs ...string) (*Engine, error) {
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	loaders := make([]pongo2.TemplateLoader, 0, len(dirs))
	for _, dir := range dirs {
		loader, err := pongo2.NewLocalFileSystemLoader(dir)
		if err != nil {
			return nil, fmt.Errorf("render: create loader for %s: %w", dir, err)
		}
		loaders = append(loaders, loader)
	}

	return &Engine{
		set:       pongo2.NewSet("kodudo", loaders...),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// Render executes the named template file with the given variables.
func (e *Engine) Render(name string, vars map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("render: engine is nil")
	}

	tmpl, err := e.template(name)
	if err != nil {
		return "", err
	}

	out, err := tmpl.Execute(pongo2.Context(vars))
	if err != nil {
		return "", fmt.Errorf("render: %w: execute template %q: %v", ErrRender, name, err)
	}
	return out, nil
}

// RenderString executes an inline template string with the given variables.
func (e *Engine) RenderString(content string, vars map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("render: engine is nil")
	}

	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("render: %w: parse template string: %v", ErrRender, err)
	}

	out, err := tmpl.Execute(pongo2.Context(vars))
	if err != nil {
		return "", fmt.Errorf("render: %w: execute template string: %v", ErrRender, err)
	}
	return out, nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[name]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("render: %w: load template %q: %v", ErrRender, name, err)
	}

	e.templates[name] = tmpl
	return tmpl, nil
}
