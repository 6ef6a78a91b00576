package mapsafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	m := map[string]any{
		"int":        42,
		"int_as_f64": 42.0,
		"float":      1.5,
		"string":     "hello",
		"bool":       true,
	}

	assert.Equal(t, 42, Get(m, "int", 0))
	assert.Equal(t, 42, Get(m, "int_as_f64", 0))
	assert.Equal(t, 1.5, Get(m, "float", 0.0))
	assert.Equal(t, "hello", Get(m, "string", ""))
	assert.Equal(t, true, Get(m, "bool", false))

	// Missing keys and type mismatches fall back to the default.
	assert.Equal(t, 7, Get(m, "missing", 7))
	assert.Equal(t, 0, Get(m, "string", 0))
}

func TestGetFloats(t *testing.T) {
	m := map[string]any{
		"mixed":   []any{1, 2.5, 3},
		"strings": []any{"a"},
	}

	assert.Equal(t, []float64{1, 2.5, 3}, GetFloats(m, "mixed", nil))
	assert.Nil(t, GetFloats(m, "strings", nil))
	assert.Equal(t, []float64{0, 0, 0}, GetFloats(m, "missing", []float64{0, 0, 0}))
}
