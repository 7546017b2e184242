package validator

import "math"

// Accepted age bounds, inclusive.
const (
	MinAge = 18
	MaxAge = 120
)

const (
	msgAgeRequired = "Age is required"
	// The advertised upper bound (90) does not match MaxAge. Kept as shipped
	// until product decides which one is right.
	msgAgeInvalid = "Please enter a valid age , must be a number between 18-90 "
)

// Age requires a present value whose numeric form lies in [MinAge, MaxAge].
// Text input is parsed as a number.
func Age() Rule {
	return func(v Value) string {
		if !v.Truthy() {
			return msgAgeRequired
		}
		n := v.Float()
		if math.IsNaN(n) || n < MinAge || n > MaxAge {
			return msgAgeInvalid
		}
		return ""
	}
}
