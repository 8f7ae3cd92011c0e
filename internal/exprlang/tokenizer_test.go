package exprlang

import "testing"

func TestTokenizeOperatorsAndLiterals(t *testing.T) {
	t.Parallel()

	tokens, err := tokenize(`${x} == 42 && !value || "on"`)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}

	want := []tokenKind{
		tokPlaceholder, tokEq, tokNumber, tokAnd, tokBang, tokValue, tokOr, tokString,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i, k := range want {
		if tokens[i].kind != k {
			t.Errorf("token %d: got kind %d, want %d (%+v)", i, tokens[i].kind, k, tokens[i])
		}
	}
	if tokens[0].text != "x" {
		t.Errorf("placeholder text = %q, want %q", tokens[0].text, "x")
	}
	if tokens[7].text != "on" {
		t.Errorf("string text = %q, want %q", tokens[7].text, "on")
	}
}

func TestTokenizeIdentifierCaseFolding(t *testing.T) {
	t.Parallel()

	cases := []struct {
		word string
		kind tokenKind
	}{
		{"true", tokBool},
		{"TRUE", tokBool},
		{"false", tokBool},
		{"value", tokValue},
		{"VALUE", tokValue},
		{"ok", tokIdent},
	}
	for _, tc := range cases {
		tokens, err := tokenize(tc.word)
		if err != nil {
			t.Fatalf("tokenize(%q): %v", tc.word, err)
		}
		if len(tokens) != 1 || tokens[0].kind != tc.kind {
			t.Errorf("tokenize(%q) = %+v, want single token of kind %d", tc.word, tokens, tc.kind)
		}
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	t.Parallel()
	if _, err := tokenize(`"unterminated`); err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestTokenizeUnterminatedPlaceholder(t *testing.T) {
	t.Parallel()
	if _, err := tokenize(`${fields.x`); err == nil {
		t.Fatal("expected error for unterminated placeholder")
	}
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	t.Parallel()
	if _, err := tokenize(`@`); err == nil {
		t.Fatal("expected error for unexpected character")
	}
}
