// Package capture opens an image file, a video file or a camera device
// and hands out frames one at a time.
package capture

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// imageSuffixes are inputs served as a single (possibly looped) image.
var imageSuffixes = map[string]bool{
	".bmp":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".tiff": true,
}

// Source reads frames from an image, video or camera input.
type Source struct {
	capture   *gocv.VideoCapture
	imagePath string
	loop      bool
	served    bool
}

// Open prepares the input. Numeric inputs select a camera device,
// image suffixes a still image, anything else is handed to OpenCV's
// video capture.
func Open(input string, loop bool) (*Source, error) {
	if deviceID, err := strconv.Atoi(input); err == nil {
		capture, err := gocv.VideoCaptureDevice(deviceID)
		if err != nil {
			return nil, errors.Wrapf(err, "can't open camera device %d", deviceID)
		}
		return &Source{capture: capture, loop: loop}, nil
	}

	if imageSuffixes[strings.ToLower(filepath.Ext(input))] {
		return &Source{imagePath: input, loop: loop}, nil
	}

	capture, err := gocv.OpenVideoCapture(input)
	if err != nil {
		return nil, errors.Wrapf(err, "can't open video capture for %s", input)
	}

	return &Source{capture: capture, loop: loop}, nil
}

// Read fetches the next frame into dst. It returns false when the
// input is exhausted.
func (s *Source) Read(dst *gocv.Mat) bool {
	if s.imagePath != "" {
		if s.served && !s.loop {
			return false
		}

		img := gocv.IMRead(s.imagePath, gocv.IMReadColor)
		if img.Empty() {
			return false
		}
		defer img.Close()

		img.CopyTo(dst)
		s.served = true
		return true
	}

	if s.capture.Read(dst) && !dst.Empty() {
		return true
	}

	if !s.loop {
		return false
	}

	// Rewind and retry once; gives video files loop semantics.
	s.capture.Set(gocv.VideoCapturePosFrames, 0)
	return s.capture.Read(dst) && !dst.Empty()
}

// Close releases the underlying capture.
func (s *Source) Close() error {
	if s.capture != nil {
		return s.capture.Close()
	}

	return nil
}
