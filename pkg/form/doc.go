// Package form implements a small, generic form-state engine: it owns the
// current value of every field of one form, applies one validation rule per
// field, keeps the resulting field-level messages and reports whether the
// whole form is valid.
//
// A Form is parameterised by its field identifier type, so callers can use a
// named string type as a closed set of fields:
//
//	type Field string
//
//	const (
//	    FullName Field = "fullName"
//	    Email    Field = "email"
//	)
//
//	f, err := form.New(
//	    form.Values[Field]{FullName: validator.Text(""), Email: validator.Text("")},
//	    form.Rules[Field]{FullName: validator.Required("Full Name"), Email: validator.Email()},
//	)
//
// # Entry points
//
// Change sets one field and immediately re-validates that field only.
// Validate re-validates every field, rebuilds the error map from scratch and
// returns whether the form may be submitted. Reset restores the values the
// form was created with and clears all errors.
//
// The field set is fixed at construction: the rule set must cover exactly
// the fields of the initial values, and Change rejects unknown fields.
//
// # Snapshots
//
// Values and Errors return copies; nothing a caller does with them can
// change the engine's state.
//
// # Concurrency
//
// A Form performs no internal synchronisation. Each instance must be confined
// to one goroutine or guarded by a lock held by its owner.
package form
