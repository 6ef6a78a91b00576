package segmentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArgmaxMask(t *testing.T) {
	// 3 channels, 2x2 pixels, NCHW plane layout.
	scores := []float32{
		// channel 0
		0.9, 0.1,
		0.2, 0.3,
		// channel 1
		0.05, 0.8,
		0.2, 0.3,
		// channel 2
		0.05, 0.1,
		0.6, 0.4,
	}

	mask := ArgmaxMask(scores, 3, 2, 2)

	assert.Equal(t, []byte{0, 1, 2, 2}, mask)
}

func TestArgmaxMask_TiesPreferLowestClass(t *testing.T) {
	scores := []float32{
		0.5, 0.5,
		0.5, 0.5,
		// channel 1 ties everywhere
		0.5, 0.5,
		0.5, 0.5,
	}

	mask := ArgmaxMask(scores, 2, 2, 2)

	assert.Equal(t, []byte{0, 0, 0, 0}, mask)
}

func TestColorize(t *testing.T) {
	renderer := NewRenderer([]Color{{10, 20, 30}, {40, 50, 60}})

	out := renderer.Colorize(Mask{Classes: []byte{0, 1}, Width: 2, Height: 1})

	assert.Equal(t, []byte{10, 20, 30, 40, 50, 60}, out)
}
