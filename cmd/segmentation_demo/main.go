package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/APrigarina/open-model-zoo/internal/app"
	"github.com/APrigarina/open-model-zoo/internal/config"
	"github.com/APrigarina/open-model-zoo/internal/env"
	"github.com/APrigarina/open-model-zoo/internal/logger"
	"github.com/APrigarina/open-model-zoo/internal/model"
)

func main() {
	var (
		flagConfigPath = flag.String("config", path.Join(config.DefaultConfigPath(), "config.yaml"), "Path to config file")
		flagSchemaPath = flag.String("schema", path.Join(config.DefaultConfigPath(), "omz.v1.schema.json"), "Path to schema file")
		flagModel      = flag.String("m", "", "Path to a model file or directory (overrides config)")
		flagInput      = flag.String("i", "", "Input to process: image, video file or camera index (overrides config)")
		flagDevice     = flag.String("d", "", "Target device: cpu, gpu or gpu_fp16 (overrides config)")
		flagColors     = flag.String("colors", "", "Path to a text file with class colors (overrides config)")
		flagNireq      = flag.Int("nireq", 0, "Number of infer requests (overrides config)")
		flagLoop       = flag.Bool("loop", false, "Read the input in a loop")
		flagNoShow     = flag.Bool("no-show", false, "Don't show the output window")
	)
	flag.Parse()

	environment := env.FromEnv()

	slog.SetDefault(
		logger.New(environment,
			logger.WithLogToFile(true),
			logger.WithLogFile("logs/segmentation_demo.log"),
		),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := model.NewManager()

	watcher, err := config.NewWatcher(*flagConfigPath, *flagSchemaPath, func(cfg *config.Config, err error) {
		if err != nil {
			slog.Error("Failed to reload config", "error", err)
			return
		}

		if err := manager.LoadFromConfig(ctx, cfg); err != nil {
			slog.Error("Failed to resolve models from config", "error", err)
			return
		}
	})
	if err != nil {
		slog.Error("Failed to create config watcher", "error", err)
		os.Exit(1)
	}
	defer watcher.Close()

	cfg := watcher.Snapshot()
	applyOverrides(cfg, *flagModel, *flagInput, *flagDevice, *flagColors, *flagNireq, *flagLoop, *flagNoShow)

	if err := manager.LoadFromConfig(ctx, cfg); err != nil {
		slog.Error("Failed to resolve models from config", "error", err)
		os.Exit(1)
	}

	slog.Info("Config loaded successfully", "config", *flagConfigPath, "schema", *flagSchemaPath)

	instance, err := manager.Registry().Lookup(cfg.Demo.ModelID)
	if err != nil {
		slog.Error("Demo model not found in config", "model_id", cfg.Demo.ModelID, "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg.Demo, instance)
	if err != nil {
		slog.Error("Failed to initialize demo", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Demo failed", "error", err)
		os.Exit(1)
	}
}

// applyOverrides layers command-line flags over the loaded config.
func applyOverrides(cfg *config.Config, modelPath, input, device, colors string, nireq int, loop, noShow bool) {
	if cfg.Models == nil {
		cfg.Models = make(map[string]config.ModelConfig)
	}

	if modelPath != "" {
		id := cfg.Demo.ModelID
		if id == "" {
			id = "model"
			cfg.Demo.ModelID = id
		}

		entry := cfg.Models[id]
		entry.Model = modelPath
		cfg.Models[id] = entry
	}

	if input != "" {
		cfg.Demo.Input = input
	}
	if device != "" {
		cfg.Demo.Device = device
	}
	if colors != "" {
		cfg.Demo.Colors = colors
	}
	if nireq > 0 {
		cfg.Demo.NumRequests = nireq
	}
	if loop {
		cfg.Demo.Loop = true
	}
	if noShow {
		cfg.Demo.NoShow = true
	}
}
