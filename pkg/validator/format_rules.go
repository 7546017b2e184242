package validator

import "regexp"

var (
	emailRegex = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)
)

const (
	msgEmailRequired = "Email is required"
	msgEmailInvalid  = "Please enter a valid email"
	msgPhoneRequired = "Phone number is required"
	msgPhoneInvalid  = "Please enter a valid phone number (10 digit)"
)

// Email accepts local@domain.tld addresses whose top-level domain has at
// least two letters. Matching is case-insensitive.
func Email() Rule {
	return func(v Value) string {
		s := v.String()
		if s == "" {
			return msgEmailRequired
		}
		if !emailRegex.MatchString(s) {
			return msgEmailInvalid
		}
		return ""
	}
}

// PhoneNumber accepts an optional leading "+" followed by at least ten
// digits, spaces or hyphens.
func PhoneNumber() Rule {
	return func(v Value) string {
		s := v.String()
		if s == "" {
			return msgPhoneRequired
		}
		if !phoneRegex.MatchString(s) {
			return msgPhoneInvalid
		}
		return ""
	}
}
