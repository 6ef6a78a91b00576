package segmentation

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Renderer blends color-mapped class masks over source frames.
type Renderer struct {
	table ColorTable
}

// NewRenderer creates a Renderer with the given palette. A nil palette
// selects the default one.
func NewRenderer(palette []Color) *Renderer {
	return &Renderer{
		table: NewColorTable(palette),
	}
}

// Colorize maps class indices to BGR bytes.
func (r *Renderer) Colorize(mask Mask) []byte {
	out := make([]byte, 0, len(mask.Classes)*3)
	for _, class := range mask.Classes {
		color := r.table[class]
		out = append(out, color[0], color[1], color[2])
	}

	return out
}

// Render overlays the colorized mask on the frame with equal weight,
// resizing the mask to the frame size when they differ. The caller
// owns the returned Mat.
func (r *Renderer) Render(frame gocv.Mat, mask Mask) (gocv.Mat, error) {
	colorized, err := gocv.NewMatFromBytes(mask.Height, mask.Width, gocv.MatTypeCV8UC3, r.Colorize(mask))
	if err != nil {
		return gocv.Mat{}, errors.Wrap(err, "failed to build color mat")
	}
	defer colorized.Close()

	if mask.Width != frame.Cols() || mask.Height != frame.Rows() {
		gocv.Resize(colorized, &colorized, image.Pt(frame.Cols(), frame.Rows()), 0, 0, gocv.InterpolationNearestNeighbor)
	}

	blended := gocv.NewMat()
	gocv.AddWeighted(frame, 0.5, colorized, 0.5, 0, &blended)

	return blended, nil
}
