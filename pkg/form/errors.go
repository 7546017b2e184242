package form

import "errors"

var (
	// ErrRuleSetMismatch is returned by New when the rule set does not cover
	// exactly the fields of the initial values.
	ErrRuleSetMismatch = errors.New("form: rule set does not match form fields")

	// ErrNoFields is returned by New when the initial values are empty.
	ErrNoFields = errors.New("form: no fields")

	// ErrUnknownField is returned when a field outside the form's field set is
	// addressed.
	ErrUnknownField = errors.New("form: unknown field")
)
