package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schemaPath = "../../configs/omz.v1.schema.json"

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadAndValidate(t *testing.T) {
	path := writeConfig(t, `
version: "1"
search:
  parent_fallback: false
models:
  road-segmentation:
    model: /models/road-segmentation
    type: ir
    options:
      input_width: 896
      input_height: 512
demo:
  model_id: road-segmentation
  input: "0"
  device: cpu
  num_requests: 2
`)

	cfg, err := LoadAndValidate(path, schemaPath)
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.False(t, cfg.Search.ParentFallbackEnabled())
	assert.Equal(t, "road-segmentation", cfg.Demo.ModelID)
	assert.Equal(t, 2, cfg.Demo.NumRequests)

	modelCfg, ok := cfg.Models["road-segmentation"]
	require.True(t, ok)
	assert.Equal(t, "/models/road-segmentation", modelCfg.Model)
	assert.Equal(t, "ir", modelCfg.Type)
	assert.Equal(t, 896, modelCfg.Options["input_width"])
}

func TestLoadAndValidate_ParentFallbackDefaultsOn(t *testing.T) {
	path := writeConfig(t, `
version: "1"
models: {}
demo:
  model_id: net
  input: "0"
`)

	cfg, err := LoadAndValidate(path, schemaPath)
	require.NoError(t, err)

	assert.True(t, cfg.Search.ParentFallbackEnabled())
}

func TestLoadAndValidate_SchemaViolation(t *testing.T) {
	// demo.model_id and demo.input are required.
	path := writeConfig(t, `
version: "1"
models: {}
demo:
  device: cpu
`)

	_, err := LoadAndValidate(path, schemaPath)
	assert.Error(t, err)
}

func TestLoadAndValidate_UnknownFormatRejected(t *testing.T) {
	path := writeConfig(t, `
version: "1"
models:
  net:
    model: /models/net
    type: tflite
demo:
  model_id: net
  input: "0"
`)

	_, err := LoadAndValidate(path, schemaPath)
	assert.Error(t, err)
}

func TestLoadAndValidate_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "version: [unclosed")

	_, err := LoadAndValidate(path, schemaPath)
	assert.Error(t, err)
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	_, err := LoadAndValidate(filepath.Join(t.TempDir(), "nope.yaml"), schemaPath)
	assert.Error(t, err)
}
