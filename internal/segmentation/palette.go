// Package segmentation turns raw network output into a class mask and
// blends a color-mapped visualization over the source frame.
package segmentation

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// Color is a BGR triplet, matching OpenCV channel order.
type Color [3]uint8

// paletteSeed keeps the generated tail of the color table stable
// between runs.
const paletteSeed = 0xACE

// defaultPalette holds the stock class colors.
var defaultPalette = []Color{
	{150, 150, 150},
	{58, 55, 169},
	{211, 51, 17},
	{157, 80, 44},
	{23, 95, 189},
	{210, 133, 34},
	{76, 226, 202},
	{101, 138, 127},
	{223, 91, 182},
	{80, 128, 113},
	{235, 155, 55},
	{44, 151, 243},
	{159, 80, 170},
	{239, 208, 44},
	{128, 50, 51},
	{82, 141, 193},
	{9, 107, 10},
	{223, 90, 142},
	{50, 248, 83},
	{178, 101, 130},
	{71, 30, 204},
}

// ColorTable maps every possible class index to a color.
type ColorTable [256]Color

// NewColorTable builds a full 256-entry table from a palette. Entries
// beyond the palette are filled with seeded pseudo-random colors so
// unknown classes render consistently between runs.
func NewColorTable(palette []Color) ColorTable {
	if len(palette) == 0 {
		palette = defaultPalette
	}

	var table ColorTable
	n := copy(table[:], palette)

	rng := rand.New(rand.NewSource(paletteSeed))
	for i := n; i < len(table); i++ {
		table[i] = Color{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256))}
	}

	return table
}

// LoadPalette reads class colors from a text file with one "(b, g, r)"
// triplet per line. Blank lines are skipped.
func LoadPalette(path string) ([]Color, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open palette file: %w", err)
	}
	defer file.Close()

	var palette []Color

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		color, err := parseColor(line)
		if err != nil {
			return nil, fmt.Errorf("invalid palette entry %q: %w", line, err)
		}
		palette = append(palette, color)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}

	if len(palette) == 0 {
		return nil, fmt.Errorf("palette file %s contains no colors", path)
	}

	return palette, nil
}

// parseColor parses a "(b, g, r)" triplet.
func parseColor(line string) (Color, error) {
	line = strings.Trim(line, "()")

	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return Color{}, fmt.Errorf("expected 3 components, got %d", len(parts))
	}

	var color Color
	for i, part := range parts {
		var value int
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%d", &value); err != nil {
			return Color{}, err
		}
		if value < 0 || value > 255 {
			return Color{}, fmt.Errorf("component %d out of range: %d", i, value)
		}
		color[i] = uint8(value)
	}

	return color, nil
}
