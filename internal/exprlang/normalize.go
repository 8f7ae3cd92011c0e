package exprlang

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Normalize applies the shared coercion rule used by equality comparisons
// and the dependency gate (SPEC_FULL §9 open question, resolved): a string
// "true"/"false" becomes a bool, an otherwise numeric-castable string
// becomes a float64, everything else passes through unchanged.
// Params: v is the raw operand value.
// Returns: the normalized value.
func Normalize(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Stringify renders any normalized operand as the string used for equality
// comparison and for template substitution. Objects and arrays use a
// canonical JSON encoding (SPEC_FULL §9 open question, resolved); nil
// renders as the empty string.
// Params: v is the value to render.
// Returns: the string form.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		encoded, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}

// AsNumber attempts to read v as a finite number for ordering comparisons.
// Booleans, nil, and the empty string are excluded even though they may be
// numeric-castable in other contexts (SPEC_FULL §4.1 ordering rule).
// Params: v is the operand to inspect.
// Returns: the numeric value and true on success.
func AsNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		if t == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Truthy implements the spec's boolean cast: a non-empty string is always
// true (even the literal "false"); everything else follows the standard
// cast (zero/nil/false are falsy, anything else is truthy).
// Params: v is the value to test.
// Returns: the truthiness of v.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}
