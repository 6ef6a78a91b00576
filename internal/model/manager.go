package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/APrigarina/open-model-zoo/internal/config"
	"github.com/APrigarina/open-model-zoo/internal/envvar"
	"github.com/APrigarina/open-model-zoo/internal/xfs"
)

// Manager orchestrates artifact resolution for every configured model.
type Manager struct {
	registry *Registry
	mu       sync.RWMutex
}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{
		registry: NewRegistry(),
	}
}

// Registry returns the model registry.
func (m *Manager) Registry() *Registry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.registry
}

// LoadFromConfig resolves artifacts for every model in the config and
// updates the registry. Models removed from the config are dropped.
func (m *Manager) LoadFromConfig(ctx context.Context, cfg *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	resolver := NewResolver(WithParentFallback(cfg.Search.ParentFallbackEnabled()))

	modelsPath := resolveModelsPath(cfg)
	if err := xfs.EnsureDir(modelsPath); err != nil {
		return fmt.Errorf("failed to prepare models directory %s: %w", modelsPath, err)
	}

	loadedKeys := make(map[string]bool)
	for modelID, modelConfig := range cfg.Models {
		if err := ctx.Err(); err != nil {
			return err
		}

		request, err := buildRequest(modelID, &modelConfig, modelsPath)
		if err != nil {
			return fmt.Errorf("invalid config for model %s: %w", modelID, err)
		}

		instance := NewInstance(&modelConfig, modelID)
		loadedKeys[modelID] = true
		m.registry.Set(instance)

		artifacts, err := resolver.Resolve(request)
		if err != nil {
			instance.SetFailed(err)
			return fmt.Errorf("failed to resolve model %s: %w", modelID, err)
		}

		instance.SetResolved(artifacts)
		slog.Info("Model resolved", "model_id", modelID, "model_file", artifacts.ModelFile, "weights_file", artifacts.WeightsFile)
	}

	// Drop registry entries no longer present in the config
	for _, instance := range m.registry.List() {
		if !loadedKeys[instance.ID] {
			m.registry.Delete(instance.ID)
			slog.Info("Model removed from registry", "model_id", instance.ID)
		}
	}

	return nil
}

// buildRequest maps a config entry onto a resolution request. The
// logical name defaults to the entry's config key, and an empty model
// path means "search the models directory".
func buildRequest(modelID string, cfg *config.ModelConfig, modelsPath string) (Request, error) {
	name := cfg.Name
	if name == "" {
		name = modelID
	}

	modelPath := xfs.ExpandTilde(cfg.Model)
	if modelPath == "" {
		modelPath = modelsPath
	}

	var format Format
	if cfg.Type != "" {
		parsed, ok := ParseFormat(cfg.Type)
		if !ok {
			return Request{}, &UnsupportedFormatError{Path: cfg.Type, Accepted: knownFormatTags()}
		}
		format = parsed
	}

	return Request{
		Name:        name,
		ModelPath:   modelPath,
		WeightsPath: xfs.ExpandTilde(cfg.Weights),
		Format:      format,
		ParamsPath:  xfs.ExpandTilde(cfg.Params),
	}, nil
}

// resolveModelsPath returns the default models directory.
// Precedence:
// 1. OMZ_MODELS_PATH environment variable.
// 2. ModelsDir field in the config.
// 3. Default models path.
func resolveModelsPath(cfg *config.Config) string {
	if p := os.Getenv(envvar.OMZModelsPath); p != "" {
		return xfs.ExpandTilde(p)
	}
	if cfg.Storage.ModelsDir != "" {
		return xfs.ExpandTilde(cfg.Storage.ModelsDir)
	}
	return xfs.ExpandTilde(config.DefaultModelsPath())
}
