package exprlang

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Helper transforms one placeholder value in a colon-chained helper call.
// Params: input is the value produced by the previous step of the chain;
// args are the parsed call arguments, already coerced to string/float64/bool.
// Returns: the transformed value, passed to the next helper or stringified.
type Helper func(input any, args []any) any

var helperTable = map[string]Helper{
	"upper":    helperUpper,
	"lower":    helperLower,
	"trim":     helperTrim,
	"len":      helperLen,
	"sub":      helperSub,
	"slice":    helperSlice,
	"cat":      helperCat,
	"padStart": helperPadStart,
	"padEnd":   helperPadEnd,
	"round":    helperRound,
	"toFixed":  helperToFixed,
	"bytes":    helperBytes,
	"pct":      helperPct,
}

// ApplyHelper runs one named helper, falling back to the identity
// transform for unknown names per SPEC_FULL §4.1's helper contract table.
// Params: name is the helper identifier; input/args as in Helper.
// Returns: the transformed value.
func ApplyHelper(name string, input any, args []any) any {
	fn, ok := helperTable[name]
	if !ok {
		return input
	}
	return fn(input, args)
}

func helperUpper(input any, _ []any) any { return strings.ToUpper(Stringify(input)) }
func helperLower(input any, _ []any) any { return strings.ToLower(Stringify(input)) }
func helperTrim(input any, _ []any) any  { return strings.TrimSpace(Stringify(input)) }

func helperLen(input any, _ []any) any {
	return float64(len([]rune(Stringify(input))))
}

func helperSub(input any, args []any) any {
	s := []rune(Stringify(input))
	start := argInt(args, 0, 0)
	length := argInt(args, 1, len(s)-start)
	if start < 0 {
		start = 0
	}
	if start > len(s) {
		start = len(s)
	}
	end := start + length
	if end < start {
		end = start
	}
	if end > len(s) {
		end = len(s)
	}
	return string(s[start:end])
}

func helperSlice(input any, args []any) any {
	s := []rune(Stringify(input))
	start := argInt(args, 0, 0)
	end := argInt(args, 1, len(s))
	if start < 0 {
		start = 0
	}
	if start > len(s) {
		start = len(s)
	}
	if end < start {
		end = start
	}
	if end > len(s) {
		end = len(s)
	}
	return string(s[start:end])
}

func helperCat(input any, args []any) any {
	suffix := ""
	if len(args) > 0 {
		suffix = Stringify(args[0])
	}
	return Stringify(input) + suffix
}

func helperPadStart(input any, args []any) any {
	s := Stringify(input)
	width := argInt(args, 0, len([]rune(s)))
	fill := argString(args, 1, " ")
	return padTo(s, width, fill, true)
}

func helperPadEnd(input any, args []any) any {
	s := Stringify(input)
	width := argInt(args, 0, len([]rune(s)))
	fill := argString(args, 1, " ")
	return padTo(s, width, fill, false)
}

func padTo(s string, width int, fill string, start bool) string {
	if fill == "" {
		fill = " "
	}
	runes := []rune(s)
	need := width - len(runes)
	if need <= 0 {
		return s
	}
	fillRunes := []rune(fill)
	padding := make([]rune, 0, need)
	for len(padding) < need {
		padding = append(padding, fillRunes...)
	}
	padding = padding[:need]
	if start {
		return string(padding) + s
	}
	return s + string(padding)
}

func helperRound(input any, args []any) any {
	f, ok := AsNumber(stringifyIfNeeded(input))
	if !ok {
		return input
	}
	dec := argInt(args, 0, 0)
	mul := math.Pow(10, float64(dec))
	return math.Round(f*mul) / mul
}

func helperToFixed(input any, args []any) any {
	f, ok := AsNumber(stringifyIfNeeded(input))
	if !ok {
		return input
	}
	dec := argInt(args, 0, 0)
	return strconv.FormatFloat(f, 'f', dec, 64)
}

// helperPct suffixes "%". With a decimals argument it formats like toFixed
// first; without one the input is suffixed as it stands, so a value already
// formatted by an earlier toFixed keeps its decimals.
func helperPct(input any, args []any) any {
	if len(args) == 0 {
		return fmt.Sprintf("%s%%", Stringify(input))
	}
	fixed := helperToFixed(input, args)
	return fmt.Sprintf("%s%%", fixed)
}

var byteUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

func helperBytes(input any, _ []any) any {
	f, ok := AsNumber(stringifyIfNeeded(input))
	if !ok {
		return input
	}
	value := f
	unitIndex := 0
	for value >= 1024 && unitIndex < len(byteUnits)-1 {
		value /= 1024
		unitIndex++
	}
	decimals := 1
	if value >= 10 || value == math.Trunc(value) {
		decimals = 0
	}
	return fmt.Sprintf("%s %s", strconv.FormatFloat(value, 'f', decimals, 64), byteUnits[unitIndex])
}

// stringifyIfNeeded lets numeric helpers accept a raw float64 operand
// (e.g. a placeholder resolved straight from the payload) as well as the
// string form produced by an earlier helper in the chain.
func stringifyIfNeeded(v any) any {
	if f, ok := v.(float64); ok {
		return f
	}
	return Stringify(v)
}

func argInt(args []any, index, def int) int {
	if index >= len(args) {
		return def
	}
	f, ok := AsNumber(args[index])
	if !ok {
		return def
	}
	return int(f)
}

func argString(args []any, index int, def string) string {
	if index >= len(args) {
		return def
	}
	return Stringify(args[index])
}
