package filter

import (
	"strings"

	"github.com/spf13/cast"
)

// helperFunctions returns the functions available in every expression.
// contains, startsWith and endsWith are expr operators, so the
// case-insensitive variants carry an i prefix.
func helperFunctions() map[string]any {
	return map[string]any{
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"istartsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"iendsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower":   strings.ToLower,
		"upper":   strings.ToUpper,
		"percent": percent,
	}
}

// percent parses stat text such as "12.5%" or "4.20"; unparsable text is 0
func percent(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return cast.ToFloat64(s)
}
