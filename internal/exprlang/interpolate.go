package exprlang

import "strings"

// Interpolate scans a template for "${…}" occurrences and substitutes each
// with its resolved value, supporting nested braces by depth counting
// (SPEC_FULL §4.1). Non-string templates are returned unchanged.
// Params: template is the raw config string (or any other value);
// value/payload/store are passed through to ResolvePlaceholder.
// Returns: the substituted string, or template itself if it was not a
// string.
func Interpolate(template any, value any, payload any, store StoreReader) any {
	s, ok := template.(string)
	if !ok {
		return template
	}

	var out strings.Builder
	i := 0
	for i < len(s) {
		start := strings.Index(s[i:], "${")
		if start < 0 {
			out.WriteString(s[i:])
			break
		}
		start += i
		out.WriteString(s[i:start])

		end := matchClosingBrace(s, start+2)
		if end < 0 {
			out.WriteString(s[start:])
			break
		}
		spec := s[start+2 : end]
		resolved := ResolvePlaceholder(spec, value, payload, store)
		out.WriteString(stringifyResolved(resolved))
		i = end + 1
	}
	return out.String()
}

// stringifyResolved renders a resolved placeholder for substitution into a
// template: null/undefined become the empty string, objects/arrays render
// as canonical JSON, everything else uses Stringify.
func stringifyResolved(v any) string {
	if v == nil {
		return ""
	}
	return Stringify(v)
}

// matchClosingBrace finds the index of the "}" that closes the "${" found
// at position start-2, counting nested "{"/"}" pairs within the spec body.
func matchClosingBrace(s string, start int) int {
	depth := 1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
