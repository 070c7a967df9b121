package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type rawBatch struct {
	Input        string          `yaml:"input"`
	Template     string          `yaml:"template"`
	Output       *string         `yaml:"output"`
	Outputs      []rawOutputSpec `yaml:"outputs"`
	Format       string          `yaml:"format"`
	TemplateDirs []string        `yaml:"template_dirs"`
	ContextFile  string          `yaml:"context_file"`
	Context      map[string]any  `yaml:"context"`
	ForEach      string          `yaml:"foreach"`
}

type rawOutputSpec struct {
	Output       string         `yaml:"output"`
	Input        string         `yaml:"input"`
	Template     string         `yaml:"template"`
	Format       string         `yaml:"format"`
	TemplateDirs []string       `yaml:"template_dirs"`
	ContextFile  string         `yaml:"context_file"`
	Context      map[string]any `yaml:"context"`
}

// Load reads and validates a kodudo YAML config file. Relative paths inside
// the file are anchored at the file's directory via BasePath.
func Load(path string) (BatchConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatchConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var doc rawBatch
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return BatchConfig{}, fmt.Errorf("config: %w: parse %s: %v", ErrInvalidConfig, path, err)
	}

	return parseBatch(doc, filepath.Dir(path))
}

func parseBatch(doc rawBatch, basePath string) (BatchConfig, error) {
	if doc.Input == "" {
		return BatchConfig{}, fmt.Errorf("config: %w: 'input' is required", ErrInvalidConfig)
	}
	if doc.Template == "" {
		return BatchConfig{}, fmt.Errorf("config: %w: 'template' is required", ErrInvalidConfig)
	}

	cfg := Config{
		Input:        doc.Input,
		Template:     doc.Template,
		Format:       Format(doc.Format),
		TemplateDirs: doc.TemplateDirs,
		ContextFile:  doc.ContextFile,
		Context:      doc.Context,
		BasePath:     basePath,
		ForEach:      doc.ForEach,
	}
	if doc.Output != nil {
		cfg.Output = *doc.Output
	}

	var outputs []OutputSpec
	if doc.Outputs != nil {
		outputs = make([]OutputSpec, len(doc.Outputs))
		for i, spec := range doc.Outputs {
			outputs[i] = OutputSpec{
				Output:       spec.Output,
				Input:        spec.Input,
				Template:     spec.Template,
				Format:       Format(spec.Format),
				TemplateDirs: spec.TemplateDirs,
				ContextFile:  spec.ContextFile,
				Context:      spec.Context,
			}
		}
	}

	if err := validateBatch(cfg, outputs); err != nil {
		return BatchConfig{}, err
	}

	return BatchConfig{Config: cfg, Outputs: outputs}, nil
}

// LoadContextFile reads a YAML context file into a flat mapping. An empty
// file yields an empty mapping; any other non-mapping document is an error.
func LoadContextFile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read context file %s: %w", path, err)
	}

	var content any
	if err := yaml.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("config: %w: parse context file %s: %v", ErrInvalidConfig, path, err)
	}

	switch v := content.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	default:
		return nil, fmt.Errorf("config: %w: context file %s must contain a YAML mapping", ErrInvalidConfig, path)
	}
}
