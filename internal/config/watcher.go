package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 500 * time.Millisecond

// Watcher reloads the configuration whenever the config file or its
// schema changes on disk. Editors and deployment tools usually replace
// files atomically (write a temp file, then rename it over the target),
// which would kill a watch placed on the file itself, so the watch is
// on the parent directories and events are filtered by name.
type Watcher struct {
	configPath string
	schemaPath string
	onReload   func(*Config, error)

	fsw     *fsnotify.Watcher
	current *Config
	mu      sync.RWMutex
	done    chan struct{}
}

// NewWatcher loads the initial config and starts watching for changes.
// onReload is called after every reload attempt, successful or not; on
// failure the previous config stays current.
func NewWatcher(configPath, schemaPath string, onReload func(*Config, error)) (*Watcher, error) {
	cfg, err := LoadAndValidate(configPath, schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load initial config: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	for _, dir := range watchDirs(configPath, schemaPath) {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	watcher := &Watcher{
		configPath: configPath,
		schemaPath: schemaPath,
		onReload:   onReload,
		fsw:        fsw,
		current:    cfg,
		done:       make(chan struct{}),
	}

	go watcher.watch()

	return watcher, nil
}

// watchDirs returns the deduplicated parent directories of the watched
// files.
func watchDirs(paths ...string) []string {
	seen := make(map[string]struct{}, len(paths))
	dirs := make([]string, 0, len(paths))

	for _, path := range paths {
		dir := filepath.Dir(path)
		if _, ok := seen[dir]; ok {
			continue
		}

		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}

	return dirs
}

// watch consumes filesystem events until Close.
func (cw *Watcher) watch() {
	var timer *time.Timer

	for {
		select {
		case <-cw.done:
			return

		case event, ok := <-cw.fsw.Events:
			if !ok {
				return
			}

			if !cw.relevant(event) {
				continue
			}

			if timer != nil {
				timer.Stop()
			}

			timer = time.AfterFunc(reloadDebounce, cw.reload)

		case err, ok := <-cw.fsw.Errors:
			if !ok {
				return
			}

			slog.Error("Watcher error", "error", err)
		}
	}
}

// relevant reports whether the event concerns the config or schema
// file. Create and Rename cover atomic replaces alongside in-place
// writes.
func (cw *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}

	name := filepath.Clean(event.Name)

	return name == filepath.Clean(cw.configPath) || name == filepath.Clean(cw.schemaPath)
}

// reload revalidates the config file against the schema.
func (cw *Watcher) reload() {
	select {
	case <-cw.done:
		return
	default:
	}

	slog.Info("Reloading config file", "path", cw.configPath)

	cfg, err := LoadAndValidate(cw.configPath, cw.schemaPath)
	if err != nil {
		slog.Error("Failed to reload config", "error", err)
		cw.onReload(nil, err)
		return
	}

	cw.mu.Lock()
	cw.current = cfg
	cw.mu.Unlock()

	slog.Info("Config reloaded successfully", "path", cw.configPath)
	cw.onReload(cfg, nil)
}

// Snapshot returns the current config snapshot (thread-safe).
func (cw *Watcher) Snapshot() *Config {
	cw.mu.RLock()
	defer cw.mu.RUnlock()

	return cw.current
}

// Close stops watching for changes.
func (cw *Watcher) Close() error {
	close(cw.done)

	return cw.fsw.Close()
}
