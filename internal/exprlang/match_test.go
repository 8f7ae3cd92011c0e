package exprlang

import "testing"

func TestMatchTypedValue(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		declared any
		extract  any
		want     bool
	}{
		{"nil declared matches anything", nil, "whatever", true},
		{"bool equality", false, false, true},
		{"bool mismatch", false, true, false},
		{"float equality", float64(90), float64(90), true},
		{"float normalizes against a numeric string", float64(90), "90", true},
		{"string equality", "open", "open", true},
		{"string normalizes against bool text", "true", true, true},
		{"unsupported declared type never matches", map[string]any{"x": 1}, "x", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MatchTypedValue(tc.declared, tc.extract)
			if got != tc.want {
				t.Errorf("MatchTypedValue(%v, %v) = %v, want %v", tc.declared, tc.extract, got, tc.want)
			}
		})
	}
}
