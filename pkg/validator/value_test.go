package validator_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/regform/pkg/validator"
)

func TestValue_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    validator.Value
		expected string
	}{
		{"empty text", validator.Text(""), ""},
		{"zero value", validator.Value{}, ""},
		{"text", validator.Text("Ann"), "Ann"},
		{"integer", validator.Int(25), "25"},
		{"fraction", validator.Number(1.5), "1.5"},
		{"negative zero", validator.Number(math.Copysign(0, -1)), "0"},
		{"nan", validator.Number(math.NaN()), "NaN"},
		{"positive infinity", validator.Number(math.Inf(1)), "Infinity"},
		{"negative infinity", validator.Number(math.Inf(-1)), "-Infinity"},
		{"huge number", validator.Number(1e21), "1e+21"},
		{"huge fraction", validator.Number(-1.5e300), "-1.5e+300"},
		{"smallest plain fraction", validator.Number(0.000001), "0.000001"},
		{"tiny number", validator.Number(1e-7), "1e-7"},
		{"tiny fraction", validator.Number(-2.5e-10), "-2.5e-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.value.String())
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	t.Parallel()

	assert.False(t, validator.Text("").Truthy())
	assert.True(t, validator.Text(" ").Truthy())
	assert.True(t, validator.Text("0").Truthy(), "non-empty text is truthy even if it reads as zero")
	assert.False(t, validator.Int(0).Truthy())
	assert.False(t, validator.Number(math.NaN()).Truthy())
	assert.True(t, validator.Int(-1).Truthy())
	assert.True(t, validator.Number(math.Inf(1)).Truthy())
}

func TestValue_Float(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected float64
	}{
		{"", 0},
		{"   ", 0},
		{"25", 25},
		{" 25 ", 25},
		{"-3.5", -3.5},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"+7", 7},
		{"0x1A", 26},
		{"0b101", 5},
		{"0o17", 15},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, validator.Text(tt.input).Float())
		})
	}

	t.Run("non numeric text is NaN", func(t *testing.T) {
		t.Parallel()
		for _, s := range []string{"abc", "12abc", "1,5", "inf", "NaN", "1_000", "--1"} {
			assert.True(t, math.IsNaN(validator.Text(s).Float()), "expected NaN for %q", s)
		}
	})

	t.Run("numbers pass through", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 42.0, validator.Int(42).Float())
	})
}

func TestValue_Equal(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.Text("a").Equal(validator.Text("a")))
	assert.False(t, validator.Text("1").Equal(validator.Int(1)))
	assert.True(t, validator.Int(1).Equal(validator.Number(1)))
	assert.True(t, validator.Number(math.NaN()).Equal(validator.Number(math.NaN())))
	assert.True(t, validator.Value{}.Equal(validator.Text("")))
}

func TestValueOf(t *testing.T) {
	t.Parallel()

	v, ok := validator.ValueOf("x")
	require.True(t, ok)
	assert.Equal(t, validator.Text("x"), v)

	v, ok = validator.ValueOf(float64(30))
	require.True(t, ok)
	assert.Equal(t, validator.Int(30), v)

	v, ok = validator.ValueOf(nil)
	require.True(t, ok)
	assert.True(t, v.IsEmpty())

	v, ok = validator.ValueOf(json.Number("18"))
	require.True(t, ok)
	assert.Equal(t, validator.Int(18), v)

	_, ok = validator.ValueOf(true)
	assert.False(t, ok)

	_, ok = validator.ValueOf([]string{"a"})
	assert.False(t, ok)
}

func TestValue_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(map[string]validator.Value{
		"age":  validator.Int(30),
		"name": validator.Text("Ann"),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"age":30,"name":"Ann"}`, string(data))

	var decoded map[string]validator.Value
	require.NoError(t, json.Unmarshal([]byte(`{"age":30,"name":"Ann","country":null}`), &decoded))
	assert.Equal(t, validator.Int(30), decoded["age"])
	assert.Equal(t, validator.Text("Ann"), decoded["name"])
	assert.Equal(t, validator.Text(""), decoded["country"])

	var bad validator.Value
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
}
