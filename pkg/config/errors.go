package config

import "errors"

// ErrInvalidConfig marks structural problems in a batch configuration:
// mutual-exclusivity violations, missing required fields, unknown formats, or
// reserved foreach names. It is always raised before any expansion work.
var ErrInvalidConfig = errors.New("invalid config")

// ErrInterpolation marks output-path placeholder failures: a field missing
// from the current record, a placeholder that does not start with the foreach
// variable, or unsupported placeholder syntax.
var ErrInterpolation = errors.New("cannot interpolate path")
