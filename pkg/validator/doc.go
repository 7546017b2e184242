// Package validator provides a small catalogue of pure, parameterised
// validation rules for single form field values.
//
// A Rule is a plain function that receives one Value and returns a
// human-readable message describing why the value is unacceptable, or an
// empty string when the value passes. Rules never look at other fields, never
// perform I/O and never keep state, so the same rule can be shared between any
// number of forms and goroutines.
//
// # Architecture
//
// Each source file groups a family of rules (`string_rules.go`,
// `format_rules.go`, `password_rules.go`, `numeric_rules.go`,
// `choice_rules.go`). Every exported constructor captures its configuration
// (a field label, a minimum length) and returns a Rule closure.
//
// Core building blocks:
//   - Value – a text-or-number scalar with the coercions rules rely on
//   - Rule  – func(Value) string, "" means valid
//   - Chain – combines rules, first failure wins
//   - Check – evaluates a possibly nil rule
//
// # Usage
//
//	rules := map[string]validator.Rule{
//	    "fullName": validator.Required("Full Name"),
//	    "email":    validator.Email(),
//	    "age":      validator.Age(),
//	}
//
//	if msg := rules["email"](validator.Text("a@b")); msg != "" {
//	    // msg == "Please enter a valid email"
//	}
//
// # Coercion
//
// Rules accept any Value kind. Text rules stringify numbers, numeric rules
// parse text, so a number input that delivers its raw text still validates
// the same way as a typed number.
package validator
