package segmentation

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Mask is a per-pixel class-index map.
type Mask struct {
	Classes []byte
	Width   int
	Height  int
}

// ArgmaxMask reduces an NCHW score tensor to a class-index mask by
// taking the channel with the highest score per pixel.
func ArgmaxMask(scores []float32, channels, height, width int) []byte {
	mask := make([]byte, height*width)
	plane := height * width

	for pixel := 0; pixel < plane; pixel++ {
		best := 0
		bestScore := scores[pixel]
		for c := 1; c < channels; c++ {
			if score := scores[c*plane+pixel]; score > bestScore {
				best = c
				bestScore = score
			}
		}
		mask[pixel] = byte(best)
	}

	return mask
}

// MaskFromMat converts a network output Mat to a class mask. Supported
// shapes: [1,C,H,W] float scores (argmaxed over C) and [H,W] 8-bit
// class indices.
func MaskFromMat(output gocv.Mat) (Mask, error) {
	sizes := output.Size()

	switch len(sizes) {
	case 4:
		if sizes[0] != 1 {
			return Mask{}, errors.Errorf("unsupported batch size %d in network output", sizes[0])
		}

		channels, height, width := sizes[1], sizes[2], sizes[3]
		scores, err := output.DataPtrFloat32()
		if err != nil {
			return Mask{}, errors.Wrap(err, "failed to access network output data")
		}

		var classes []byte
		if channels == 1 {
			classes = make([]byte, height*width)
			for i, score := range scores {
				classes[i] = byte(score)
			}
		} else {
			classes = ArgmaxMask(scores, channels, height, width)
		}

		return Mask{Classes: classes, Width: width, Height: height}, nil

	case 2:
		if output.Type() != gocv.MatTypeCV8U {
			return Mask{}, errors.Errorf("unsupported 2D output type %v", output.Type())
		}

		return Mask{
			Classes: output.ToBytes(),
			Width:   sizes[1],
			Height:  sizes[0],
		}, nil

	default:
		return Mask{}, errors.Errorf("unsupported network output shape %v", sizes)
	}
}
