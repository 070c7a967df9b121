// Package config holds the kodudo configuration model and the expansion
// engine that turns one batch configuration into the ordered list of concrete
// single-output render jobs. Expansion is a pure computation: the only I/O it
// can perform is delegated to the context-file loader injected into an
// Expander.
package config
