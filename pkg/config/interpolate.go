package config

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([^{}]*)\}`)

// Interpolate replaces every {varName.field} placeholder in pathTemplate with
// the string form of record[field]. Placeholders are restricted to exactly
// two dotted segments whose leading segment equals varName; anything else is
// an ErrInterpolation, as is a field the record lacks. Literal text passes
// through unchanged, so a template without placeholders comes back as-is.
func Interpolate(pathTemplate, varName string, record map[string]any) (string, error) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(pathTemplate, -1)
	if len(matches) == 0 {
		return pathTemplate, nil
	}

	var out strings.Builder
	last := 0
	for _, m := range matches {
		out.WriteString(pathTemplate[last:m[0]])

		expr := pathTemplate[m[2]:m[3]]
		parts := strings.Split(expr, ".")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return "", fmt.Errorf("config: %w: placeholder {%s} must have the form {%s.field}", ErrInterpolation, expr, varName)
		}
		if parts[0] != varName {
			return "", fmt.Errorf("config: %w: placeholder {%s} does not start with foreach variable %q", ErrInterpolation, expr, varName)
		}
		value, ok := record[parts[1]]
		if !ok {
			return "", fmt.Errorf("config: %w: record has no field %q for placeholder {%s}", ErrInterpolation, parts[1], expr)
		}
		fmt.Fprintf(&out, "%v", value)

		last = m[1]
	}
	out.WriteString(pathTemplate[last:])

	return out.String(), nil
}
