package launcher

import (
	"strings"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// backends maps launcher backend tags to OpenCV DNN backends.
var backends = map[string]gocv.NetBackendType{
	"ocv": gocv.NetBackendOpenCV,
	"ie":  gocv.NetBackendOpenVINO,
}

// targets maps device names to OpenCV DNN targets. gpu selects the
// OpenCL target, gpu_fp16 its half-precision variant.
var targets = map[string]gocv.NetTargetType{
	"cpu":      gocv.NetTargetCPU,
	"gpu":      gocv.NetTargetFP32,
	"gpu_fp16": gocv.NetTargetFP16,
}

// ParseBackend maps a backend tag to its OpenCV DNN backend.
// An empty tag defaults to the inference-engine backend.
func ParseBackend(name string) (gocv.NetBackendType, error) {
	if name == "" {
		name = "ie"
	}

	backend, ok := backends[strings.ToLower(name)]
	if !ok {
		return 0, errors.Errorf("%s is not a supported backend, accepted: ocv, ie", name)
	}

	return backend, nil
}

// ParseTarget maps a device name to its OpenCV DNN target.
// An empty name defaults to cpu.
func ParseTarget(name string) (gocv.NetTargetType, error) {
	if name == "" {
		name = "cpu"
	}

	target, ok := targets[strings.ToLower(name)]
	if !ok {
		return 0, errors.Errorf("%s is not a supported device, accepted: cpu, gpu, gpu_fp16", name)
	}

	return target, nil
}

// PromoteDevice upgrades gpu to gpu_fp16 when an fp16 tag is present.
func PromoteDevice(device string, tags []string) string {
	if !strings.EqualFold(device, "gpu") {
		return device
	}

	for _, tag := range tags {
		if strings.EqualFold(tag, "fp16") {
			return "gpu_fp16"
		}
	}

	return device
}
