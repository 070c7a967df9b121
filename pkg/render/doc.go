// Package render turns a concrete render job into document bytes. The
// templating engine is pongo2, so templates use the same syntax as the
// Jinja2 templates kodudo configs were written for. Renderers are looked up
// by format name through a Registry.
package render
