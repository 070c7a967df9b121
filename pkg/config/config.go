package config

import (
	"path/filepath"
	"strings"
)

// Format enumerates the document formats kodudo can produce.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// Valid reports whether f is one of the supported formats.
func (f Format) Valid() bool {
	switch f {
	case FormatHTML, FormatMarkdown, FormatText:
		return true
	}
	return false
}

// Config describes one fully specified single-output render job. Values are
// treated as immutable once constructed; derived variants are produced by
// whole-value copies, never by mutating an existing Config.
//
// Path fields may be relative, in which case the Resolved* helpers join them
// against BasePath.
type Config struct {
	// Input is the path to the JSON data file (plain array or aptoro
	// envelope).
	Input string

	// Template is the path to the main template.
	Template string

	// Output is the output file path. Before expansion it may be a path
	// template containing {foreach.field} placeholders.
	Output string

	// Format selects the output format. When empty it is inferred from the
	// template file name, see EffectiveFormat.
	Format Format

	// TemplateDirs lists additional template search paths, in order.
	TemplateDirs []string

	// ContextFile points at an external YAML mapping merged below the inline
	// context.
	ContextFile string

	// Context holds inline template variables.
	Context map[string]any

	// BasePath anchors relative paths. Usually the config file's directory.
	BasePath string

	// ForEach, when set, names the per-record variable for fan-out rendering.
	ForEach string
}

// EffectiveFormat returns the configured format, falling back to the template
// file name: a stem ending in ".html" means html, ".md" means markdown,
// anything else text. "fauna_list.html.j2" renders as html.
func (c Config) EffectiveFormat() Format {
	if c.Format != "" {
		return c.Format
	}
	base := filepath.Base(c.Template)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	switch {
	case strings.HasSuffix(stem, ".html"):
		return FormatHTML
	case strings.HasSuffix(stem, ".md"):
		return FormatMarkdown
	default:
		return FormatText
	}
}

func (c Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.BasePath == "" {
		return path
	}
	return filepath.Join(c.BasePath, path)
}

// ResolvedInput returns the input path resolved against BasePath.
func (c Config) ResolvedInput() string {
	return c.resolve(c.Input)
}

// ResolvedTemplate returns the template path resolved against BasePath.
func (c Config) ResolvedTemplate() string {
	return c.resolve(c.Template)
}

// ResolvedOutput returns the output path resolved against BasePath.
func (c Config) ResolvedOutput() string {
	return c.resolve(c.Output)
}

// ResolvedContextFile returns the context file path resolved against
// BasePath, or "" when no context file is configured.
func (c Config) ResolvedContextFile() string {
	return c.resolve(c.ContextFile)
}

// ResolvedTemplateDirs returns a fresh slice of template directories resolved
// against BasePath.
func (c Config) ResolvedTemplateDirs() []string {
	if len(c.TemplateDirs) == 0 {
		return nil
	}
	dirs := make([]string, len(c.TemplateDirs))
	for i, dir := range c.TemplateDirs {
		dirs[i] = c.resolve(dir)
	}
	return dirs
}
