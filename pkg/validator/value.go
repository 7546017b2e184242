package validator

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind reports which scalar a Value holds.
type Kind uint8

const (
	KindText Kind = iota
	KindNumber
)

func (k Kind) String() string {
	if k == KindNumber {
		return "number"
	}
	return "text"
}

// Value is a single field value: either text or a number.
// The zero Value is empty text.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Text returns a text Value.
func Text(s string) Value {
	return Value{kind: KindText, text: s}
}

// Number returns a numeric Value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Int is a convenience wrapper around Number.
func Int(n int) Value {
	return Number(float64(n))
}

// ValueOf converts a decoded JSON scalar into a Value.
// Strings become text, numbers become numbers and nil becomes empty text.
// Any other type is rejected.
func ValueOf(v any) (Value, bool) {
	switch t := v.(type) {
	case nil:
		return Text(""), true
	case Value:
		return t, true
	case string:
		return Text(t), true
	case float64:
		return Number(t), true
	case float32:
		return Number(float64(t)), true
	case int:
		return Number(float64(t)), true
	case int64:
		return Number(float64(t)), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Text(t.String()), true
		}
		return Number(f), true
	}
	return Value{}, false
}

func (v Value) Kind() Kind { return v.kind }

// IsNumber reports whether v holds a number.
func (v Value) IsNumber() bool { return v.kind == KindNumber }

// String returns the text form of v. Numbers use the shortest decimal
// representation; NaN and infinities are spelled out.
func (v Value) String() string {
	if v.kind == KindText {
		return v.text
	}
	return formatNumber(v.num)
}

// Truthy reports whether v counts as "present": non-empty text, or a
// number that is neither zero nor NaN.
func (v Value) Truthy() bool {
	if v.kind == KindText {
		return v.text != ""
	}
	return v.num != 0 && !math.IsNaN(v.num)
}

// IsEmpty reports whether v is empty text. Numbers are never empty.
func (v Value) IsEmpty() bool {
	return v.kind == KindText && v.text == ""
}

// Float returns the numeric form of v. Text is trimmed; empty text is 0,
// decimal, Infinity and 0x/0o/0b integer literals are parsed, anything else
// is NaN.
func (v Value) Float() float64 {
	if v.kind == KindNumber {
		return v.num
	}
	return parseNumber(v.text)
}

// Equal reports whether a and b hold the same kind and the same scalar.
// NaN numbers are equal to each other.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindText {
		return v.text == o.text
	}
	if math.IsNaN(v.num) && math.IsNaN(o.num) {
		return true
	}
	return v.num == o.num
}

// MarshalJSON encodes text as a JSON string and numbers as JSON numbers.
// Non-finite numbers are encoded as their string form.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindNumber && !math.IsNaN(v.num) && !math.IsInf(v.num, 0) {
		return json.Marshal(v.num)
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON accepts a JSON string, number or null.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	val, ok := ValueOf(raw)
	if !ok {
		return &json.UnsupportedValueError{Str: string(data)}
	}
	*v = val
	return nil
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if decimalLiteral.MatchString(s) {
		// out-of-range literals come back as ±Inf, which is what we want
		f, _ := strconv.ParseFloat(s, 64)
		return f
	}

	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			n, err := strconv.ParseUint(strings.ToLower(s), 0, 64)
			if err == nil {
				return float64(n)
			}
		}
	}

	return math.NaN()
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	case math.Abs(n) >= 1e21, math.Abs(n) < 1e-6:
		return formatExponent(n)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// formatExponent writes n as 1.5e-7 or 1e+21: shortest mantissa, signed
// exponent without leading zeros.
func formatExponent(n float64) string {
	s := strconv.FormatFloat(n, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	exp := strings.TrimLeft(s[i+2:], "0")
	return s[:i+2] + exp
}
