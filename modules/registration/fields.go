package registration

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/regform/pkg/form"
	"github.com/dmitrymomot/regform/pkg/validator"
)

// Field names a registration form field. The string value is also the
// Datastar signal name and the element id prefix.
type Field string

const (
	FieldFullName    Field = "fullName"
	FieldEmail       Field = "email"
	FieldPassword    Field = "password"
	FieldPhoneNumber Field = "phoneNumber"
	FieldAge         Field = "age"
	FieldCountry     Field = "country"
)

// Fields lists the form fields in display order.
func Fields() []Field {
	return []Field{FieldFullName, FieldEmail, FieldPassword, FieldPhoneNumber, FieldAge, FieldCountry}
}

// ParseField maps a path segment to a Field.
func ParseField(s string) (Field, error) {
	for _, f := range Fields() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// Country is one option of the country select.
type Country struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

//go:embed countries.yaml
var countriesYAML []byte

var loadCountries = sync.OnceValues(func() ([]Country, error) {
	return ParseCountries(countriesYAML)
})

// Countries returns the embedded country catalogue.
func Countries() []Country {
	c, err := loadCountries()
	if err != nil {
		// the catalogue is compiled in
		panic(err)
	}
	return c
}

// ParseCountries decodes a country catalogue. Values must be non-empty and
// unique.
func ParseCountries(data []byte) ([]Country, error) {
	var doc struct {
		Countries []Country `yaml:"countries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidCountries, err)
	}
	if len(doc.Countries) == 0 {
		return nil, fmt.Errorf("%w: empty list", ErrInvalidCountries)
	}
	seen := make(map[string]bool, len(doc.Countries))
	for _, c := range doc.Countries {
		if c.Value == "" || c.Label == "" {
			return nil, fmt.Errorf("%w: country needs a label and a value", ErrInvalidCountries)
		}
		if seen[c.Value] {
			return nil, fmt.Errorf("%w: duplicate value %q", ErrInvalidCountries, c.Value)
		}
		seen[c.Value] = true
	}
	return doc.Countries, nil
}

// Rules returns the rule of every field. The country must be one of the
// given options.
func Rules(countries []Country) form.Rules[Field] {
	values := make([]string, len(countries))
	for i, c := range countries {
		values[i] = c.Value
	}
	return form.Rules[Field]{
		FieldFullName:    validator.Required("Full Name"),
		FieldEmail:       validator.Email(),
		FieldPassword:    validator.Password("Password"),
		FieldPhoneNumber: validator.PhoneNumber(),
		FieldAge:         validator.Age(),
		FieldCountry: validator.Chain(
			validator.Required("Country"),
			validator.OneOf("Country", values...),
		),
	}
}

// InitialValues is the empty form.
func InitialValues() form.Values[Field] {
	values := make(form.Values[Field], len(Fields()))
	for _, f := range Fields() {
		values[f] = validator.Text("")
	}
	return values
}

// NewForm builds an empty registration form whose country must be one of
// countries.
func NewForm(countries []Country, opts ...form.Option) *form.Form[Field] {
	opts = append([]form.Option{form.WithName("registration")}, opts...)
	return form.MustNew(InitialValues(), Rules(countries), opts...)
}

// CountryLabel returns the label of value, or value itself when it is not
// in countries.
func CountryLabel(countries []Country, value string) string {
	for _, c := range countries {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}
