package validator

import (
	"fmt"
	"regexp"
)

// PasswordMinLength is the shortest password Password accepts.
const PasswordMinLength = 8

var (
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	digitRegex     = regexp.MustCompile(`[0-9]`)
)

// Password requires at least PasswordMinLength characters including one
// lowercase letter, one uppercase letter and one digit, in any order.
func Password(label string) Rule {
	return func(v Value) string {
		s := v.String()
		if s == "" {
			return requiredMessage(label)
		}
		if textLength(s) < PasswordMinLength {
			return fmt.Sprintf("%s must be at least %d characters", label, PasswordMinLength)
		}
		if !lowercaseRegex.MatchString(s) || !uppercaseRegex.MatchString(s) || !digitRegex.MatchString(s) {
			return label + " must contain at least one uppercase letter, one lowercase letter, and one number"
		}
		return ""
	}
}
