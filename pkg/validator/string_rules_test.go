package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/regform/pkg/validator"
)

func TestRequired(t *testing.T) {
	t.Parallel()

	rule := validator.Required("Full Name")

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Full Name is required", rule(validator.Text("")))
	})

	t.Run("non-empty text", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, rule(validator.Text("Ann")))
	})

	t.Run("whitespace counts as present", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, rule(validator.Text(" ")))
	})

	t.Run("zero is missing", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Full Name is required", rule(validator.Int(0)))
	})

	t.Run("non-zero number", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, rule(validator.Int(7)))
	})
}

func TestMinLength(t *testing.T) {
	t.Parallel()

	rule := validator.MinLength("Username", 4)

	tests := []struct {
		name     string
		value    validator.Value
		expected string
	}{
		{"empty", validator.Text(""), "Username is required"},
		{"too short", validator.Text("abc"), "Username must be at least 4 characters"},
		{"exact", validator.Text("abcd"), ""},
		{"longer", validator.Text("abcdef"), ""},
		{"counts characters not bytes", validator.Text("ñandú"), ""},
		{"multibyte too short", validator.Text("ñañ"), "Username must be at least 4 characters"},
		{"astral characters count twice", validator.Text("😀😀"), ""},
		{"one astral character is two units", validator.Text("😀a"), "Username must be at least 4 characters"},
		{"number stringified", validator.Int(12345), ""},
		{"short number", validator.Int(12), "Username must be at least 4 characters"},
		{"zero stringifies to 0", validator.Int(0), "Username must be at least 4 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, rule(tt.value))
		})
	}
}
