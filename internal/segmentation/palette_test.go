package segmentation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewColorTable(t *testing.T) {
	table := NewColorTable(nil)

	// Stock palette occupies the leading entries.
	for i, color := range defaultPalette {
		assert.Equal(t, color, table[i])
	}

	// The generated tail is stable between runs.
	assert.Equal(t, table, NewColorTable(nil))
}

func TestNewColorTable_CustomPalette(t *testing.T) {
	palette := []Color{{1, 2, 3}, {4, 5, 6}}

	table := NewColorTable(palette)

	assert.Equal(t, Color{1, 2, 3}, table[0])
	assert.Equal(t, Color{4, 5, 6}, table[1])
	assert.NotEqual(t, Color{}, table[2])
}

func TestLoadPalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.txt")
	require.NoError(t, os.WriteFile(path, []byte("(150, 150, 150)\n\n(58, 55, 169)\n"), 0o644))

	palette, err := LoadPalette(path)
	require.NoError(t, err)

	assert.Equal(t, []Color{{150, 150, 150}, {58, 55, 169}}, palette)
}

func TestLoadPalette_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"too few components", "(1, 2)\n"},
		{"out of range", "(300, 0, 0)\n"},
		{"not a number", "(a, b, c)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "colors.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadPalette(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadPalette_MissingFile(t *testing.T) {
	_, err := LoadPalette(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
