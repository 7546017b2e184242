package form

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/dmitrymomot/regform/pkg/logger"
	"github.com/dmitrymomot/regform/pkg/validator"
)

// Values maps every field of a form to its current value.
type Values[K ~string] map[K]validator.Value

// Errors maps fields to their current validation message. Fields without an
// entry have no error.
type Errors[K ~string] map[K]string

// Rules maps every field of a form to the rule that validates it. A nil rule
// accepts every value.
type Rules[K ~string] map[K]validator.Rule

// Get returns the message recorded for field, or "" when there is none.
func (e Errors[K]) Get(field K) string {
	return e[field]
}

// Has reports whether field has a message.
func (e Errors[K]) Has(field K) bool {
	return e[field] != ""
}

// Form owns the values and validation messages of one form instance.
// All state is private; callers read copies through the accessor methods.
type Form[K ~string] struct {
	fields  []K
	rules   Rules[K]
	initial Values[K]
	values  Values[K]
	errors  Errors[K]
	log     *slog.Logger
}

// New creates a Form holding a copy of initial. The rule set must have an
// entry for every field of initial and no other entries; otherwise the
// returned error wraps ErrRuleSetMismatch and lists the offending fields.
func New[K ~string](initial Values[K], rules Rules[K], opts ...Option) (*Form[K], error) {
	if len(initial) == 0 {
		return nil, ErrNoFields
	}
	if err := matchRules(initial, rules); err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	log := cfg.logger
	if cfg.name != "" {
		log = log.With(slog.String("form", cfg.name))
	}

	return &Form[K]{
		fields:  slices.Sorted(maps.Keys(initial)),
		rules:   maps.Clone(rules),
		initial: maps.Clone(initial),
		values:  maps.Clone(initial),
		errors:  make(Errors[K]),
		log:     log,
	}, nil
}

// MustNew is like New but panics on a configuration error.
func MustNew[K ~string](initial Values[K], rules Rules[K], opts ...Option) *Form[K] {
	f, err := New(initial, rules, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func matchRules[K ~string](initial Values[K], rules Rules[K]) error {
	var errs []error
	for _, field := range slices.Sorted(maps.Keys(initial)) {
		if _, ok := rules[field]; !ok {
			errs = append(errs, fmt.Errorf("missing rule for field %q", field))
		}
	}
	for _, field := range slices.Sorted(maps.Keys(rules)) {
		if _, ok := initial[field]; !ok {
			errs = append(errs, fmt.Errorf("rule for undeclared field %q", field))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(append([]error{ErrRuleSetMismatch}, errs...)...)
}

// Change sets field to v and re-validates that field only. The message of
// every other field is left untouched.
func (f *Form[K]) Change(field K, v validator.Value) error {
	if _, ok := f.values[field]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	f.values[field] = v
	msg := validator.Check(f.rules[field], v)
	if msg == "" {
		delete(f.errors, field)
	} else {
		f.errors[field] = msg
	}

	// values are never logged, they may hold secrets
	f.log.Debug("field changed",
		logger.Field(string(field)),
		slog.Bool("valid", msg == ""),
	)
	return nil
}

// Fill applies Change to every field of values in field order. Unknown
// fields are rejected before anything is changed.
func (f *Form[K]) Fill(values Values[K]) error {
	for _, field := range slices.Sorted(maps.Keys(values)) {
		if _, ok := f.values[field]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
	}
	for _, field := range slices.Sorted(maps.Keys(values)) {
		if err := f.Change(field, values[field]); err != nil {
			return err
		}
	}
	return nil
}

// Validate evaluates every field against its current value, replaces the
// error map with the result and reports whether no field failed.
func (f *Form[K]) Validate() bool {
	errs := make(Errors[K], len(f.fields))
	for _, field := range f.fields {
		if msg := validator.Check(f.rules[field], f.values[field]); msg != "" {
			errs[field] = msg
		}
	}
	f.errors = errs

	f.log.Debug("form validated",
		slog.Bool("valid", len(errs) == 0),
		slog.Int("invalid_fields", len(errs)),
	)
	return len(errs) == 0
}

// Reset restores the values the form was created with and clears all errors.
func (f *Form[K]) Reset() {
	f.values = maps.Clone(f.initial)
	f.errors = make(Errors[K])
	f.log.Debug("form reset")
}

// Values returns a copy of the current values.
func (f *Form[K]) Values() Values[K] {
	return maps.Clone(f.values)
}

// Errors returns a copy of the current error messages.
func (f *Form[K]) Errors() Errors[K] {
	return maps.Clone(f.errors)
}

// Value returns the current value of field.
func (f *Form[K]) Value(field K) (validator.Value, bool) {
	v, ok := f.values[field]
	return v, ok
}

// Error returns the current message of field, or "" when it has none.
func (f *Form[K]) Error(field K) string {
	return f.errors[field]
}

// Fields returns the form's fields in sorted order.
func (f *Form[K]) Fields() []K {
	return slices.Clone(f.fields)
}

// Has reports whether field belongs to the form.
func (f *Form[K]) Has(field K) bool {
	_, ok := f.values[field]
	return ok
}

// HasErrors reports whether any field currently has a message. Unlike
// Validate it does not re-evaluate rules, so messages may be stale.
func (f *Form[K]) HasErrors() bool {
	return len(f.errors) > 0
}

// Filled reports whether no field holds empty text.
func (f *Form[K]) Filled() bool {
	for _, v := range f.values {
		if v.IsEmpty() {
			return false
		}
	}
	return true
}
