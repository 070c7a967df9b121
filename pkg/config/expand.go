package config

import (
	"fmt"
	"slices"
	"strings"
)

// reservedForEachNames are the template variables the renderer always
// injects; a foreach variable with one of these names would shadow them.
var reservedForEachNames = map[string]struct{}{
	"data":   {},
	"meta":   {},
	"config": {},
}

// Expander turns a batch configuration plus optional data records into the
// ordered list of concrete single-output render jobs.
//
// LoadContext, when set, supplies the mapping stored in a job's context file
// so expansion can fold it below the inline context. The zero value performs
// no I/O and treats every context-file layer as empty, which keeps Expand a
// pure function for callers that resolve context files themselves.
type Expander struct {
	LoadContext func(path string) (map[string]any, error)
}

// Expand validates cfg against outputs and produces one Config per
// output-spec x record pair. The output axis is the outer loop, so all
// records of outputs[0] precede any record of outputs[1]; within one spec,
// records keep their input order. A nil outputs slice means "render cfg
// itself"; an empty one means zero jobs. Likewise a configured foreach with
// no records yields zero jobs.
//
// Each produced Config is single-output: its Output holds the interpolated
// path and its Context the merged layers (context file, inline context,
// per-record variable). The first interpolation failure aborts the whole
// expansion; no partial job list is returned.
func (e Expander) Expand(cfg Config, outputs []OutputSpec, data []map[string]any) ([]Config, error) {
	if err := validateBatch(cfg, outputs); err != nil {
		return nil, err
	}

	var bases []Config
	if outputs == nil {
		bases = []Config{cfg}
	} else {
		bases = make([]Config, len(outputs))
		for i, spec := range outputs {
			bases[i] = applyOutputSpec(cfg, spec)
		}
	}

	records := 1
	if cfg.ForEach != "" {
		records = len(data)
	}
	jobs := make([]Config, 0, len(bases)*records)

	for _, base := range bases {
		fileLayer, err := e.contextFileLayer(base)
		if err != nil {
			return nil, err
		}

		if cfg.ForEach == "" {
			jobs = append(jobs, newJob(base, base.Output, MergeContext(fileLayer, base.Context)))
			continue
		}

		for _, record := range data {
			outPath, err := Interpolate(base.Output, cfg.ForEach, record)
			if err != nil {
				return nil, err
			}
			merged := MergeContext(fileLayer, base.Context, map[string]any{cfg.ForEach: record})
			jobs = append(jobs, newJob(base, outPath, merged))
		}
	}

	return jobs, nil
}

// Expand is the pure convenience form of Expander.Expand: context files are
// treated as empty layers.
func Expand(cfg Config, outputs []OutputSpec, data []map[string]any) ([]Config, error) {
	return Expander{}.Expand(cfg, outputs, data)
}

func (e Expander) contextFileLayer(base Config) (map[string]any, error) {
	if base.ContextFile == "" || e.LoadContext == nil {
		return nil, nil
	}
	layer, err := e.LoadContext(base.ResolvedContextFile())
	if err != nil {
		return nil, fmt.Errorf("config: context file %s: %w", base.ContextFile, err)
	}
	return layer, nil
}

// newJob builds the immutable Config for one expanded job. The context map is
// freshly merged already; the template dir slice is cloned so produced jobs
// share no mutable state with the input or with each other.
func newJob(base Config, output string, context map[string]any) Config {
	job := base
	job.Output = output
	if len(context) == 0 && base.Context == nil {
		context = nil
	}
	job.Context = context
	job.TemplateDirs = slices.Clone(base.TemplateDirs)
	return job
}

// applyOutputSpec derives the per-spec base config: full replacement for
// every override except Context, which shallow-merges over the base context.
func applyOutputSpec(cfg Config, spec OutputSpec) Config {
	out := cfg
	out.Output = spec.Output
	if spec.Input != "" {
		out.Input = spec.Input
	}
	if spec.Template != "" {
		out.Template = spec.Template
	}
	if spec.Format != "" {
		out.Format = spec.Format
	}
	if spec.TemplateDirs != nil {
		out.TemplateDirs = slices.Clone(spec.TemplateDirs)
	}
	if spec.ContextFile != "" {
		out.ContextFile = spec.ContextFile
	}
	if spec.Context != nil {
		out.Context = MergeContext(cfg.Context, spec.Context)
	}
	return out
}

// validateBatch runs the fail-fast structural checks shared by the loader and
// the expander.
func validateBatch(cfg Config, outputs []OutputSpec) error {
	hasOutput := cfg.Output != ""
	hasOutputs := outputs != nil

	if hasOutput && hasOutputs {
		return fmt.Errorf("config: %w: 'output' and 'outputs' are mutually exclusive", ErrInvalidConfig)
	}
	if !hasOutput && !hasOutputs {
		return fmt.Errorf("config: %w: one of 'output' or 'outputs' is required", ErrInvalidConfig)
	}

	for i, spec := range outputs {
		if strings.TrimSpace(spec.Output) == "" {
			return fmt.Errorf("config: %w: outputs[%d] is missing 'output'", ErrInvalidConfig, i)
		}
		if spec.Format != "" && !spec.Format.Valid() {
			return fmt.Errorf("config: %w: outputs[%d] has unknown format %q (want html, markdown or text)", ErrInvalidConfig, i, spec.Format)
		}
	}

	if cfg.ForEach != "" {
		if _, reserved := reservedForEachNames[cfg.ForEach]; reserved {
			return fmt.Errorf("config: %w: foreach variable %q is reserved (data, meta and config are injected by the renderer)", ErrInvalidConfig, cfg.ForEach)
		}
	}

	if cfg.Format != "" && !cfg.Format.Valid() {
		return fmt.Errorf("config: %w: unknown format %q (want html, markdown or text)", ErrInvalidConfig, cfg.Format)
	}

	return nil
}
