package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reloadEvent struct {
	cfg *Config
	err error
}

func writeDemoConfig(t *testing.T, dir, input string) string {
	t.Helper()

	content := `
version: "1"
models: {}
demo:
  model_id: net
  input: "` + input + `"
`

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

// replaceFile mimics an atomic editor save: write a temp file, then
// rename it over the target.
func replaceFile(t *testing.T, path, content string) {
	t.Helper()

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0o644))
	require.NoError(t, os.Rename(tmp, path))
}

func awaitReload(t *testing.T, events <-chan reloadEvent) reloadEvent {
	t.Helper()

	select {
	case event := <-events:
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("config was not reloaded")
		return reloadEvent{}
	}
}

func TestWatcher_InitialSnapshot(t *testing.T) {
	path := writeDemoConfig(t, t.TempDir(), "0")

	watcher, err := NewWatcher(path, schemaPath, func(*Config, error) {})
	require.NoError(t, err)
	defer watcher.Close()

	assert.Equal(t, "0", watcher.Snapshot().Demo.Input)
}

func TestWatcher_InvalidInitialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: [unclosed"), 0o644))

	_, err := NewWatcher(path, schemaPath, func(*Config, error) {})
	assert.Error(t, err)
}

func TestWatcher_ReloadOnAtomicReplace(t *testing.T) {
	path := writeDemoConfig(t, t.TempDir(), "0")

	events := make(chan reloadEvent, 4)
	watcher, err := NewWatcher(path, schemaPath, func(cfg *Config, err error) {
		events <- reloadEvent{cfg: cfg, err: err}
	})
	require.NoError(t, err)
	defer watcher.Close()

	replaceFile(t, path, `
version: "1"
models: {}
demo:
  model_id: net
  input: video.mp4
`)

	event := awaitReload(t, events)
	require.NoError(t, event.err)
	assert.Equal(t, "video.mp4", event.cfg.Demo.Input)
	assert.Equal(t, "video.mp4", watcher.Snapshot().Demo.Input)
}

func TestWatcher_KeepsLastGoodConfigOnInvalidEdit(t *testing.T) {
	path := writeDemoConfig(t, t.TempDir(), "0")

	events := make(chan reloadEvent, 4)
	watcher, err := NewWatcher(path, schemaPath, func(cfg *Config, err error) {
		events <- reloadEvent{cfg: cfg, err: err}
	})
	require.NoError(t, err)
	defer watcher.Close()

	replaceFile(t, path, "version: [unclosed")

	event := awaitReload(t, events)
	assert.Error(t, event.err)
	assert.Nil(t, event.cfg)

	assert.Equal(t, "0", watcher.Snapshot().Demo.Input)
}

func TestWatchDirs_Deduplicates(t *testing.T) {
	dirs := watchDirs("/etc/omz/config.yaml", "/etc/omz/omz.v1.schema.json")
	assert.Equal(t, []string{"/etc/omz"}, dirs)

	dirs = watchDirs("/etc/omz/config.yaml", "/usr/share/omz/omz.v1.schema.json")
	assert.Len(t, dirs, 2)
}
