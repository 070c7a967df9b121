package render

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

// ErrRender marks template loading and execution failures.
var ErrRender = errors.New("render failed")

// Job carries everything a renderer needs for one output document. The
// template's own directory is always the first search path; TemplateDirs are
// tried after it, in order.
type Job struct {
	Template     string
	TemplateDirs []string
	Records      []map[string]any
	Meta         map[string]any
	Config       map[string]any
	Context      map[string]any
}

// Renderer converts a Job into document bytes.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, job Job) ([]byte, error)
}

type formatRenderer struct {
	name        string
	contentType string
	setup       func()
}

// NewHTMLRenderer returns the html renderer. It registers the bluemonday
// backed "sanitize" filter so templates can safely embed record-supplied
// markup.
func NewHTMLRenderer() Renderer {
	return &formatRenderer{name: "html", contentType: "text/html; charset=utf-8", setup: registerSanitizeFilter}
}

// NewMarkdownRenderer returns the markdown renderer.
func NewMarkdownRenderer() Renderer {
	return &formatRenderer{name: "markdown", contentType: "text/markdown; charset=utf-8"}
}

// NewTextRenderer returns the plain-text renderer.
func NewTextRenderer() Renderer {
	return &formatRenderer{name: "text", contentType: "text/plain; charset=utf-8"}
}

func (r *formatRenderer) Name() string {
	return r.name
}

func (r *formatRenderer) ContentType() string {
	return r.contentType
}

func (r *formatRenderer) Render(ctx context.Context, job Job) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("render: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.setup != nil {
		r.setup()
	}

	dirs := append([]string{filepath.Dir(job.Template)}, job.TemplateDirs...)
	engine, err := NewEngine(dirs...)
	if err != nil {
		return nil, err
	}

	out, err := engine.Render(filepath.Base(job.Template), templateVars(job))
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// templateVars assembles the variables visible to a template: the merged
// context first, then the reserved data/meta/config names, which always win.
func templateVars(job Job) map[string]any {
	vars := make(map[string]any, len(job.Context)+3)
	for key, value := range job.Context {
		vars[key] = value
	}

	records := job.Records
	if records == nil {
		records = []map[string]any{}
	}
	meta := job.Meta
	if meta == nil {
		meta = map[string]any{}
	}
	cfg := job.Config
	if cfg == nil {
		cfg = map[string]any{}
	}

	vars["data"] = records
	vars["meta"] = meta
	vars["config"] = cfg
	return vars
}

var sanitizeOnce sync.Once

// registerSanitizeFilter installs the "sanitize" filter. pongo2 filters are
// process-global, hence the once guard.
func registerSanitizeFilter() {
	sanitizeOnce.Do(func() {
		if pongo2.FilterExists("sanitize") {
			return
		}
		policy := bluemonday.UGCPolicy()
		_ = pongo2.RegisterFilter("sanitize", func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsSafeValue(policy.Sanitize(in.String())), nil
		})
	})
}
