package exprlang

// MatchTypedValue implements the non-expression condition match rule of
// SPEC_FULL §4.2: a condition declaring "value" (rather than "condition")
// matches the extracted payload value by typed equality.
// Params: declared is the condition's configured value (nil for
// "undefined"/"null" declarations); extracted is the value read from the
// payload at the event's subject.
// Returns: true when the condition matches.
func MatchTypedValue(declared any, extracted any) bool {
	if declared == nil {
		return true
	}
	switch declared.(type) {
	case bool, float64, int, string:
		return Stringify(Normalize(declared)) == Stringify(Normalize(extracted))
	default:
		return false
	}
}
