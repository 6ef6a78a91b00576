// Package app wires capture, inference and rendering into the
// segmentation demo loop.
package app

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/APrigarina/open-model-zoo/internal/capture"
	"github.com/APrigarina/open-model-zoo/internal/config"
	"github.com/APrigarina/open-model-zoo/internal/launcher"
	"github.com/APrigarina/open-model-zoo/internal/metrics"
	"github.com/APrigarina/open-model-zoo/internal/model"
	"github.com/APrigarina/open-model-zoo/internal/pipeline"
	"github.com/APrigarina/open-model-zoo/internal/segmentation"
	"github.com/APrigarina/open-model-zoo/internal/stream"
)

const defaultMjpegPort = 8080

var statsColor = color.RGBA{R: 10, G: 200, B: 10}

// Frame pairs a captured image with its capture time.
type Frame struct {
	Image gocv.Mat
	Start time.Time
}

// Application runs the segmentation demo over a video or image source.
type Application struct {
	cfg      config.DemoConfig
	launcher *launcher.OpenCV
	renderer *segmentation.Renderer
	metrics  *metrics.PerformanceMetrics
	mjpeg    *stream.MJPEG

	stopped bool
	runErr  error
}

// New builds the demo application around a resolved model instance.
func New(cfg config.DemoConfig, instance *model.Instance) (*Application, error) {
	if instance.Status != model.StatusResolved {
		return nil, errors.Errorf("model %s is not resolved: %s", instance.ID, instance.Error)
	}

	var palette []segmentation.Color
	if cfg.Colors != "" {
		loaded, err := segmentation.LoadPalette(cfg.Colors)
		if err != nil {
			return nil, err
		}
		palette = loaded
	}

	netLauncher, err := launcher.New(instance.Artifacts, cfg.Device, cfg.Backend, cfg.Tags, instance.Config.Options)
	if err != nil {
		return nil, err
	}

	app := &Application{
		cfg:      cfg,
		launcher: netLauncher,
		renderer: segmentation.NewRenderer(palette),
		metrics:  metrics.New(),
	}

	if cfg.Mjpeg.Enable {
		port := cfg.Mjpeg.Port
		if port == 0 {
			port = defaultMjpegPort
		}
		app.mjpeg = stream.New(port)
	}

	return app, nil
}

// Run drives the capture/inference/render loop until the input is
// exhausted, the context is canceled or the user closes the window.
func (app *Application) Run(ctx context.Context) error {
	source, err := capture.Open(app.cfg.Input, app.cfg.Loop)
	if err != nil {
		return err
	}
	defer source.Close()

	var window *gocv.Window
	if !app.cfg.NoShow {
		window = gocv.NewWindow("Segmentation Results")
		defer window.Close()
	}

	if app.mjpeg != nil {
		app.mjpeg.Start()
	}

	pipe := pipeline.New(ctx, app.infer, app.cfg.NumRequests)

	slog.Info("Starting inference", "input", app.cfg.Input)

	for !app.stopped && ctx.Err() == nil {
		img := gocv.NewMat()
		if !source.Read(&img) {
			img.Close()
			break
		}

		frame := Frame{Image: img, Start: time.Now()}
		for !pipe.TrySubmit(frame) {
			// All infer requests busy, wait for one to complete.
			completion, ok := <-pipe.Results()
			if !ok {
				break
			}
			app.handle(completion, window)
		}

		app.drain(pipe, window)
	}

	pipe.Close()
	for completion := range pipe.Results() {
		app.handle(completion, window)
	}

	app.metrics.LogTotal()

	if app.runErr != nil {
		return app.runErr
	}

	return ctx.Err()
}

// Close releases the network.
func (app *Application) Close() error {
	return app.launcher.Close()
}

// infer runs a single frame through the launcher.
func (app *Application) infer(ctx context.Context, frame Frame) (gocv.Mat, error) {
	return app.launcher.Infer(ctx, frame.Image)
}

// drain handles every completion that is already available.
func (app *Application) drain(pipe *pipeline.Pipeline[Frame, gocv.Mat], window *gocv.Window) {
	for {
		select {
		case completion, ok := <-pipe.Results():
			if !ok {
				return
			}
			app.handle(completion, window)
		default:
			return
		}
	}
}

// handle renders one completed frame and pushes it to the outputs.
func (app *Application) handle(completion pipeline.Completion[Frame, gocv.Mat], window *gocv.Window) {
	defer completion.Input.Image.Close()

	if completion.Err != nil {
		app.fail(errors.Wrapf(completion.Err, "inference failed for frame %d", completion.ID))
		return
	}
	defer completion.Output.Close()

	if app.stopped {
		return
	}

	mask, err := segmentation.MaskFromMat(completion.Output)
	if err != nil {
		app.fail(err)
		return
	}

	rendered, err := app.renderer.Render(completion.Input.Image, mask)
	if err != nil {
		app.fail(err)
		return
	}
	defer rendered.Close()

	app.metrics.Update(completion.Input.Start)
	app.drawStats(&rendered)

	if app.mjpeg != nil {
		buf, err := gocv.IMEncode(".jpg", rendered)
		if err != nil {
			slog.Error("Failed to encode frame for MJPEG stream", "error", err)
		} else {
			app.mjpeg.Update(buf.GetBytes())
			buf.Close()
		}
	}

	if window != nil {
		window.IMShow(rendered)
		key := window.WaitKey(1)
		if key == 27 || key == 'q' || key == 'Q' {
			app.stopped = true
		}
	}
}

// drawStats overlays the moving latency and FPS on the frame.
func (app *Application) drawStats(frame *gocv.Mat) {
	latency := fmt.Sprintf("Latency: %.1f ms", float64(app.metrics.Latency().Microseconds())/1000.0)
	fps := fmt.Sprintf("FPS: %.1f", app.metrics.FPS())

	gocv.PutText(frame, latency, image.Pt(10, 30), gocv.FontHersheyComplex, 0.75, statsColor, 2)
	gocv.PutText(frame, fps, image.Pt(10, 60), gocv.FontHersheyComplex, 0.75, statsColor, 2)
}

// fail records the first fatal error and stops the loop.
func (app *Application) fail(err error) {
	if app.runErr == nil {
		app.runErr = err
	}
	app.stopped = true
}
