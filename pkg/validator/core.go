package validator

// Rule validates a single field value. It returns a human-readable message
// when the value is unacceptable and an empty string when it passes.
//
// Rules must be pure: the result depends only on the argument, and calling a
// rule has no side effects.
type Rule func(v Value) string

// Check evaluates rule against v. A nil rule accepts every value.
func Check(rule Rule, v Value) string {
	if rule == nil {
		return ""
	}
	return rule(v)
}

// Chain combines rules into one. Rules run in order and the first non-empty
// message is returned. Nil rules are skipped.
func Chain(rules ...Rule) Rule {
	return func(v Value) string {
		for _, rule := range rules {
			if msg := Check(rule, v); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// Func adapts a boolean predicate into a Rule that reports message when the
// predicate returns false.
func Func(message string, ok func(Value) bool) Rule {
	return func(v Value) string {
		if ok(v) {
			return ""
		}
		return message
	}
}
