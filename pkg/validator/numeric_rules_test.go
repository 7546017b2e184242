package validator_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/regform/pkg/validator"
)

const msgAgeInvalid = "Please enter a valid age , must be a number between 18-90 "

func TestAge(t *testing.T) {
	t.Parallel()

	rule := validator.Age()

	tests := []struct {
		name     string
		value    validator.Value
		expected string
	}{
		{"empty text", validator.Text(""), "Age is required"},
		{"zero number", validator.Int(0), "Age is required"},
		{"nan number", validator.Number(math.NaN()), "Age is required"},
		{"below range as text", validator.Text("17"), msgAgeInvalid},
		{"lower bound", validator.Text("18"), ""},
		{"in range as text", validator.Text("25"), ""},
		{"in range as number", validator.Int(25), ""},
		{"upper bound", validator.Int(120), ""},
		{"above range", validator.Text("121"), msgAgeInvalid},
		{"fractional in range", validator.Text("30.5"), ""},
		{"padded text", validator.Text(" 40 "), ""},
		{"non numeric text", validator.Text("abc"), msgAgeInvalid},
		{"zero as text is present but out of range", validator.Text("0"), msgAgeInvalid},
		{"whitespace is present but reads as zero", validator.Text(" "), msgAgeInvalid},
		{"negative", validator.Int(-20), msgAgeInvalid},
		{"infinity", validator.Number(math.Inf(1)), msgAgeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, rule(tt.value))
		})
	}
}

// Known inconsistency: the accepted range ends at 120 while the message
// advertises 90. This test pins the shipped behaviour until the two are
// reconciled.
func TestAge_KnownInconsistency_MessageAdvertisesNinety(t *testing.T) {
	t.Parallel()

	rule := validator.Age()

	assert.Empty(t, rule(validator.Int(100)), "values between 91 and 120 are accepted")
	assert.Contains(t, rule(validator.Int(121)), "18-90")
	assert.Equal(t, 120, validator.MaxAge)
}
