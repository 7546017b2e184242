package registration

import (
	"fmt"

	"github.com/dmitrymomot/regform/pkg/form"
	"github.com/dmitrymomot/regform/pkg/validator"
)

// Signal names besides the field names.
const (
	SignalAgreed    = "agreed"
	SignalCanSubmit = "canSubmit"
)

// Signals is the Datastar signal store posted by the page.
type Signals map[string]any

// Value returns the signal of f. A missing signal is empty text.
func (s Signals) Value(f Field) (validator.Value, error) {
	raw, ok := s[string(f)]
	if !ok {
		return validator.Text(""), nil
	}
	v, ok := validator.ValueOf(raw)
	if !ok {
		return validator.Value{}, fmt.Errorf("%w: %s is %T", ErrInvalidSignal, f, raw)
	}
	return v, nil
}

// Values returns the field signals present in s.
func (s Signals) Values() (form.Values[Field], error) {
	values := make(form.Values[Field], len(Fields()))
	for _, f := range Fields() {
		if _, ok := s[string(f)]; !ok {
			continue
		}
		v, err := s.Value(f)
		if err != nil {
			return nil, err
		}
		values[f] = v
	}
	return values, nil
}

// Agreed reports whether the terms checkbox is ticked.
func (s Signals) Agreed() bool {
	b, _ := s[SignalAgreed].(bool)
	return b
}

// SignalsOf is the signal store matching snap.
func SignalsOf(snap Snapshot) Signals {
	s := make(Signals, len(snap.Values)+2)
	for f, v := range snap.Values {
		s[string(f)] = v
	}
	s[SignalAgreed] = snap.Agreed
	s[SignalCanSubmit] = snap.CanSubmit
	return s
}
