package config

// OutputSpec is one entry of a multi-output list: a mandatory output path
// template plus optional overrides for the base Config. Every override
// replaces the corresponding base field wholesale, except Context, which
// shallow-merges on top of the base context (the spec wins on collisions).
// Zero values mean "no override"; a nil TemplateDirs is distinct from an
// explicitly empty one.
type OutputSpec struct {
	Output       string
	Input        string
	Template     string
	Format       Format
	TemplateDirs []string
	ContextFile  string
	Context      map[string]any
}

// BatchConfig is the root artifact produced by config loading: one base
// Config paired with an optional ordered multi-output list. When Outputs is
// present the base Config carries no output path of its own; the loader and
// the expander both enforce that.
type BatchConfig struct {
	Config  Config
	Outputs []OutputSpec
}
