// Package kodudo cooks structured data into documents: it loads a YAML batch
// configuration, expands it into concrete render jobs, renders each job's
// data through a pongo2 template and writes the results.
//
// Example:
//
//	paths, err := kodudo.Cook("config.yaml")
//
// or programmatically:
//
//	out, err := kodudo.Render(kodudo.RenderRequest{
//		Records:  []map[string]any{{"name": "Item 1"}},
//		Template: "templates/list.html.j2",
//	})
package kodudo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/aptoro/kodudo/pkg/config"
	"github.com/aptoro/kodudo/pkg/data"
	"github.com/aptoro/kodudo/pkg/output"
	"github.com/aptoro/kodudo/pkg/render"
)

// Config is one fully specified single-output render job.
type Config = config.Config

// OutputSpec is one entry of a multi-output list.
type OutputSpec = config.OutputSpec

// BatchConfig pairs a base Config with an optional multi-output list.
type BatchConfig = config.BatchConfig

// LoadedData is the parsed content of a data file.
type LoadedData = data.LoadedData

// Option customises a Cook or CookFromConfig call.
type Option func(*cookOptions)

type cookOptions struct {
	outputs  []config.OutputSpec
	context  map[string]any
	output   string
	registry *render.Registry
	dryRun   bool
}

// WithOutputs supplies the multi-output specs to expand against. A nil slice
// means the base config renders as-is.
func WithOutputs(specs []config.OutputSpec) Option {
	return func(o *cookOptions) {
		o.outputs = specs
	}
}

// WithContext merges runtime context variables over the config's inline
// context before expansion.
func WithContext(ctx map[string]any) Option {
	return func(o *cookOptions) {
		o.context = ctx
	}
}

// WithOutput overrides the config's output path.
func WithOutput(path string) Option {
	return func(o *cookOptions) {
		o.output = path
	}
}

// WithRegistry injects a renderer registry, replacing the default html,
// markdown and text renderers.
func WithRegistry(registry *render.Registry) Option {
	return func(o *cookOptions) {
		o.registry = registry
	}
}

// WithDryRun renders every job but writes the results to stdout instead of
// the configured output paths.
func WithDryRun() Option {
	return func(o *cookOptions) {
		o.dryRun = true
	}
}

// Cook loads the config file at configPath and renders everything it
// describes. It returns the resolved output paths in render order.
func Cook(configPath string, opts ...Option) ([]string, error) {
	batch, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return CookFromConfig(batch.Config, append([]Option{WithOutputs(batch.Outputs)}, opts...)...)
}

// CookFromConfig renders everything cfg describes: it loads the input data
// once, expands the config into concrete jobs, renders each job and writes
// its output. The first failure aborts and is returned; on success the
// resolved output paths come back in render order.
func CookFromConfig(cfg config.Config, opts ...Option) ([]string, error) {
	o := &cookOptions{registry: render.DefaultRegistry()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(o)
	}

	if o.output != "" {
		cfg.Output = o.output
	}
	if o.context != nil {
		cfg.Context = config.MergeContext(cfg.Context, o.context)
	}

	loaded, err := data.Load(cfg.ResolvedInput())
	if err != nil {
		return nil, err
	}

	expander := config.Expander{LoadContext: config.LoadContextFile}
	jobs, err := expander.Expand(cfg, o.outputs, loaded.Records)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("jobs", len(jobs)).Int("records", loaded.Len()).Msg("config expanded")

	ctx := context.Background()
	paths := make([]string, 0, len(jobs))
	for _, job := range jobs {
		outPath, err := cookSingle(ctx, job, loaded, o)
		if err != nil {
			return nil, err
		}
		paths = append(paths, outPath)
	}

	return paths, nil
}

// cookSingle renders one concrete job and writes its output, returning the
// resolved output path.
func cookSingle(ctx context.Context, cfg config.Config, loaded data.LoadedData, o *cookOptions) (string, error) {
	format := cfg.EffectiveFormat()
	renderer, err := o.registry.Get(string(format))
	if err != nil {
		return "", err
	}

	outPath := cfg.ResolvedOutput()
	job := render.Job{
		Template:     cfg.ResolvedTemplate(),
		TemplateDirs: cfg.ResolvedTemplateDirs(),
		Records:      loaded.Records,
		Meta:         loaded.Meta,
		Config: map[string]any{
			"input":  cfg.ResolvedInput(),
			"output": outPath,
			"format": string(format),
		},
		Context: cfg.Context,
	}

	content, err := renderer.Render(ctx, job)
	if err != nil {
		return "", fmt.Errorf("cook %s: %w", cfg.Template, err)
	}

	target := outPath
	if o.dryRun {
		target = "-"
	}
	if err := output.Write(target, content); err != nil {
		return "", err
	}

	log.Debug().Str("template", cfg.Template).Str("output", outPath).Str("format", string(format)).Msg("cooked output")
	return outPath, nil
}

// RenderRequest describes a one-shot programmatic render.
type RenderRequest struct {
	// Records are the rows exposed to the template as "data".
	Records []map[string]any

	// Template is the path to the main template file.
	Template string

	// Meta is the optional schema metadata exposed as "meta".
	Meta map[string]any

	// Context holds extra template variables.
	Context map[string]any

	// TemplateDirs lists additional template search paths.
	TemplateDirs []string

	// Format selects the renderer; inferred from the template name when
	// empty.
	Format config.Format
}

// Render renders records through a template without a config file.
func Render(req RenderRequest) (string, error) {
	format := req.Format
	if format == "" {
		format = config.Config{Template: req.Template}.EffectiveFormat()
	}

	renderer, err := render.DefaultRegistry().Get(string(format))
	if err != nil {
		return "", err
	}

	content, err := renderer.Render(context.Background(), render.Job{
		Template:     req.Template,
		TemplateDirs: req.TemplateDirs,
		Records:      req.Records,
		Meta:         req.Meta,
		Context:      req.Context,
	})
	if err != nil {
		return "", err
	}
	return string(content), nil
}
