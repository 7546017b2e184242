package validator

import (
	"fmt"
	"unicode/utf16"
)

// Required rejects values that are not truthy: empty text, zero and NaN.
func Required(label string) Rule {
	return func(v Value) string {
		if !v.Truthy() {
			return requiredMessage(label)
		}
		return ""
	}
}

// MinLength requires non-empty text of at least min characters.
// Numbers are measured by their text form.
func MinLength(label string, min int) Rule {
	return func(v Value) string {
		s := v.String()
		if s == "" {
			return requiredMessage(label)
		}
		if textLength(s) < min {
			return fmt.Sprintf("%s must be at least %d characters", label, min)
		}
		return ""
	}
}

func requiredMessage(label string) string {
	return label + " is required"
}

// textLength measures s in UTF-16 code units, the unit browsers use for
// input lengths. Characters outside the Basic Multilingual Plane count twice.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		if l := utf16.RuneLen(r); l > 0 {
			n += l
		} else {
			n++
		}
	}
	return n
}
