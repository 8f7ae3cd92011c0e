package exprlang

import "strings"

// LookupPath walks a dotted path through a decoded JSON payload one segment
// at a time. Adapted from the teacher's extractJSONPathString walk of
// map[string]any/[]any trees, generalized to return the raw leaf value
// instead of coercing it to a string.
// Params: payload is the decoded JSON document (any); path is a dotted
// field path such as "fields.used_percent"; an empty path returns payload
// itself.
// Returns: the leaf value and true, or (nil, false) if any segment is
// missing or the tree shape does not match the path.
func LookupPath(payload any, path string) (any, bool) {
	if path == "" {
		return payload, true
	}

	current := payload
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			index, ok := parseIndex(segment)
			if !ok || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}

func parseIndex(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	n := 0
	for _, r := range segment {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
