// Package launcher loads resolved model artifacts into an OpenCV DNN
// network and runs synchronous inference on frames.
package launcher

import (
	"context"
	"image"
	"log/slog"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/APrigarina/open-model-zoo/internal/mapsafe"
	"github.com/APrigarina/open-model-zoo/internal/model"
)

// OpenCV wraps a gocv DNN network built from resolved artifacts.
type OpenCV struct {
	net         gocv.Net
	outputNames []string
	params      Params
}

// Params holds preprocessing parameters parsed from model options.
type Params struct {
	Width  int
	Height int
	Scale  float64
	Mean   gocv.Scalar
	SwapRB bool
}

// ParseParams extracts preprocessing parameters from a model options map.
// Missing keys fall back to pass-through defaults.
func ParseParams(options map[string]any) Params {
	mean := mapsafe.GetFloats(options, "mean", []float64{0, 0, 0})
	if len(mean) < 3 {
		mean = []float64{0, 0, 0}
	}

	return Params{
		Width:  mapsafe.Get(options, "input_width", 0),
		Height: mapsafe.Get(options, "input_height", 0),
		Scale:  mapsafe.Get(options, "scale", 1.0),
		Mean:   gocv.NewScalar(mean[0], mean[1], mean[2], 0),
		SwapRB: mapsafe.Get(options, "swap_rb", false),
	}
}

// New loads the network described by the resolved artifacts and pins it
// to the requested backend and device.
func New(artifacts model.Result, deviceName, backendName string, tags []string, options map[string]any) (*OpenCV, error) {
	if artifacts.Precompiled {
		return nil, errors.Errorf("precompiled blob %s cannot be loaded by the OpenCV launcher", artifacts.ModelFile)
	}

	backend, err := ParseBackend(backendName)
	if err != nil {
		return nil, err
	}

	target, err := ParseTarget(PromoteDevice(deviceName, tags))
	if err != nil {
		return nil, err
	}

	net := gocv.ReadNet(artifacts.ModelFile, artifacts.WeightsFile)
	if net.Empty() {
		return nil, errors.Errorf("failed to read network from %s", artifacts.ModelFile)
	}

	if err := net.SetPreferableBackend(backend); err != nil {
		net.Close()
		return nil, errors.Wrapf(err, "can't set backend %s", backendName)
	}

	if err := net.SetPreferableTarget(target); err != nil {
		net.Close()
		return nil, errors.Wrapf(err, "can't set target %s", deviceName)
	}

	layerIndexes := net.GetUnconnectedOutLayers()
	if len(layerIndexes) == 0 {
		net.Close()
		return nil, errors.Errorf("network %s has no unconnected output layers", artifacts.ModelFile)
	}

	outputNames := make([]string, 0, len(layerIndexes))
	for _, idx := range layerIndexes {
		layer := net.GetLayer(idx)
		outputNames = append(outputNames, layer.GetName())
	}

	slog.Info("Network loaded", "model", artifacts.ModelFile, "weights", artifacts.WeightsFile,
		"backend", backendName, "device", deviceName, "outputs", outputNames)

	return &OpenCV{
		net:         net,
		outputNames: outputNames,
		params:      ParseParams(options),
	}, nil
}

// Infer runs a forward pass on a single frame and returns the raw
// output of the first output layer. The caller owns the returned Mat.
func (l *OpenCV) Infer(ctx context.Context, frame gocv.Mat) (gocv.Mat, error) {
	if err := ctx.Err(); err != nil {
		return gocv.Mat{}, err
	}

	if len(l.outputNames) == 0 {
		return gocv.Mat{}, errors.New("network has no output layers")
	}

	size := image.Pt(l.params.Width, l.params.Height)
	if size.X == 0 || size.Y == 0 {
		size = image.Pt(frame.Cols(), frame.Rows())
	}

	blob := gocv.BlobFromImage(frame, l.params.Scale, size, l.params.Mean, l.params.SwapRB, false)
	defer blob.Close()

	l.net.SetInput(blob, "")

	output := l.net.Forward(l.outputNames[0])
	if output.Empty() {
		output.Close()
		return gocv.Mat{}, errors.New("network produced an empty output")
	}

	return output, nil
}

// Close releases the underlying network.
func (l *OpenCV) Close() error {
	return l.net.Close()
}
