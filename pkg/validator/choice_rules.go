package validator

import "slices"

// OneOf requires a present value whose text form is one of options.
func OneOf(label string, options ...string) Rule {
	allowed := slices.Clone(options)
	return func(v Value) string {
		if !v.Truthy() {
			return requiredMessage(label)
		}
		if !slices.Contains(allowed, v.String()) {
			return "Please select a valid " + label
		}
		return ""
	}
}
