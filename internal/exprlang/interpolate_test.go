package exprlang

import "testing"

func TestInterpolate(t *testing.T) {
	t.Parallel()

	payload := map[string]any{
		"fields": map[string]any{"used_percent": 91.234},
		"tags":   map[string]any{"host": "srv1", "path": "/"},
	}
	store := fakeStore{values: map[string]any{"lock.contact": true}}

	cases := []struct {
		name     string
		template string
		value    any
		want     string
	}{
		{
			name:     "plain text with no placeholders passes through",
			template: "no substitution here",
			want:     "no substitution here",
		},
		{
			name:     "single placeholder substitutes the payload field",
			template: "path ${tags.path}",
			want:     "path /",
		},
		{
			name:     "helper chain formats and uppercases",
			template: "ALERT ${tags.path} ${fields.used_percent:pct(1)} on ${tags.host:upper}",
			want:     "ALERT / 91.2% on SRV1",
		},
		{
			name:     "value keyword substitutes the bound subject value",
			template: "got ${value}",
			value:    "contact",
			want:     "got contact",
		},
		{
			name:     "store placeholder reads a cross-watcher value",
			template: "lock is ${store.lock.contact}",
			want:     "lock is true",
		},
		{
			name:     "missing payload path renders empty",
			template: "x=${fields.missing}",
			want:     "x=",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := Interpolate(tc.template, tc.value, payload, store)
			if got != tc.want {
				t.Errorf("Interpolate(%q) = %q, want %q", tc.template, got, tc.want)
			}
		})
	}
}

func TestInterpolateNonStringTemplatePassesThrough(t *testing.T) {
	t.Parallel()
	got := Interpolate(42.0, nil, nil, nil)
	if got != 42.0 {
		t.Errorf("Interpolate(42.0) = %v, want 42.0", got)
	}
}

func TestInterpolateUnterminatedPlaceholderKeepsRemainder(t *testing.T) {
	t.Parallel()
	got := Interpolate("prefix ${unterminated", nil, nil, nil)
	if got != "prefix ${unterminated" {
		t.Errorf("Interpolate with unterminated placeholder = %q, want verbatim remainder", got)
	}
}

func TestResolvePlaceholderBaseForms(t *testing.T) {
	t.Parallel()

	payload := map[string]any{"status": "ok"}
	store := fakeStore{values: map[string]any{"w.s": "42"}}

	if got := ResolvePlaceholder("value", "bound", payload, store); got != "bound" {
		t.Errorf(`ResolvePlaceholder("value") = %v, want "bound"`, got)
	}
	if got := ResolvePlaceholder("status", "bound", payload, store); got != "ok" {
		t.Errorf(`ResolvePlaceholder("status") = %v, want "ok"`, got)
	}
	if got := ResolvePlaceholder("store.w.s", "bound", payload, store); got != "42" {
		t.Errorf(`ResolvePlaceholder("store.w.s") = %v, want "42"`, got)
	}
	if got := ResolvePlaceholder("store.w.s", "bound", payload, nil); got != nil {
		t.Errorf(`ResolvePlaceholder("store.w.s") with nil store = %v, want nil`, got)
	}
}
