package value

import (
	"math"
	"strconv"
	"strings"
)

// Format renders v as RQL literal text.
//
// Strings are wrapped in double quotes verbatim. Embedded quotes are not
// escaped, matching the output the SDK has always produced. Numbers use
// FormatNumber. Arrays and objects are not RQL operands and render as
// canonical JSON for diagnostics.
func Format(v Value) string {
	switch val := v.(type) {
	case nil, Null:
		return "null"
	case String:
		return `"` + string(val) + `"`
	case Number:
		return FormatNumber(float64(val))
	case Bool:
		if val {
			return "true"
		}
		return "false"
	default:
		data, err := MarshalCanonical(v)
		if err != nil {
			return "<invalid>"
		}
		return string(data)
	}
}

// FormatNumber formats f the way JavaScript's Number.prototype.toString does:
// the shortest round-tripping digits, fixed notation for magnitudes in
// [1e-6, 1e21), exponent notation otherwise. This is also the RFC 8785 number
// encoding.
func FormatNumber(f float64) string {
	if f == 0 {
		return "0" // also covers -0
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	// Go pads the exponent to two digits ("1e-07"); JavaScript does not.
	s := strconv.FormatFloat(f, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}
