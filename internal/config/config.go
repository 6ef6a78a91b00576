package config

// Config holds the main configuration for the application.
type Config struct {
	Version string                 `json:"version"           yaml:"version"`
	Storage StorageConfig          `json:"storage,omitempty" yaml:"storage,omitempty"`
	Search  SearchConfig           `json:"search,omitempty"  yaml:"search,omitempty"`
	Models  map[string]ModelConfig `json:"models"            yaml:"models"`
	Demo    DemoConfig             `json:"demo"              yaml:"demo"`
}

// StorageConfig holds configuration for the models directory.
type StorageConfig struct {
	ModelsDir string `json:"models_dir,omitempty" yaml:"models_dir,omitempty"`
}

// SearchConfig controls artifact search behavior.
type SearchConfig struct {
	// ParentFallback widens a directory search that found no candidate
	// to the directory's parent. Defaults to true.
	ParentFallback *bool `json:"parent_fallback,omitempty" yaml:"parent_fallback,omitempty"`
}

// ParentFallbackEnabled reports the effective parent-fallback setting.
func (s SearchConfig) ParentFallbackEnabled() bool {
	if s.ParentFallback == nil {
		return true
	}

	return *s.ParentFallback
}

// ModelConfig holds configuration for a specific model.
type ModelConfig struct {
	// Name is the logical base name used for exact-match search.
	// Defaults to the entry's key in the models map.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Model is the path to a model file or a directory to search.
	Model string `json:"model" yaml:"model"`

	// Weights is an explicit weights file or directory.
	Weights string `json:"weights,omitempty" yaml:"weights,omitempty"`

	// Type is the declared format tag (ir, onnx, blob, paddle,
	// tf-frozen, caffe). Empty means autodetect.
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Params is the Paddle params companion file.
	Params string `json:"params,omitempty" yaml:"params,omitempty"`

	// Options carries launcher-specific tuning (input size, scale,
	// mean values, swap_rb and similar).
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// DemoConfig holds configuration for the segmentation demo.
type DemoConfig struct {
	// ModelID selects the model entry to run.
	ModelID string `json:"model_id" yaml:"model_id"`

	// Input is a single image, a video file or a camera index.
	Input string `json:"input" yaml:"input"`

	// Device name: cpu, gpu or gpu_fp16.
	Device string `json:"device,omitempty" yaml:"device,omitempty"`

	// Backend name: ocv or ie.
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty"`

	// Tags adjust device selection (an fp16 tag promotes gpu to gpu_fp16).
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// NumRequests is the number of in-flight inference requests.
	NumRequests int `json:"num_requests,omitempty" yaml:"num_requests,omitempty"`

	// Colors is an optional palette file for class colors.
	Colors string `json:"colors,omitempty" yaml:"colors,omitempty"`

	// Loop re-reads the input in a loop.
	Loop bool `json:"loop,omitempty" yaml:"loop,omitempty"`

	// NoShow disables the display window.
	NoShow bool `json:"no_show,omitempty" yaml:"no_show,omitempty"`

	Mjpeg MjpegConfig `json:"mjpeg,omitempty" yaml:"mjpeg,omitempty"`
}

// MjpegConfig holds configuration for the MJPEG output stream.
type MjpegConfig struct {
	Enable bool `json:"enable,omitempty" yaml:"enable,omitempty"`
	Port   int  `json:"port,omitempty"   yaml:"port,omitempty"`
}
