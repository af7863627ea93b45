package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestWatcherReloadOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.toml")
	writeConfig(t, path, "[shadow]\nenabled = true\n")

	initial, err := Load(path)
	require.NoError(t, err)

	w := NewWatcher(path, nil)
	reloaded := make(chan *Config, 1)
	w.SetReloadCallback(func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})

	require.NoError(t, w.Start(context.Background(), initial))
	defer w.Stop()

	writeConfig(t, path, "[shadow]\nenabled = false\n")

	select {
	case cfg := <-reloaded:
		assert.False(t, cfg.Shadow.Enabled)
		assert.False(t, w.GetCurrentConfig().Shadow.Enabled)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload callback")
	}
}

func TestWatcherInvalidEditKeepsLastGoodConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.toml")
	writeConfig(t, path, "[shadow]\nenabled = false\n")

	initial, err := Load(path)
	require.NoError(t, err)

	w := NewWatcher(path, nil)
	errs := make(chan error, 1)
	w.SetErrorCallback(func(err error) {
		select {
		case errs <- err:
		default:
		}
	})
	w.SetReloadCallback(func(cfg *Config) {
		t.Error("reload callback must not fire for an invalid config")
	})

	require.NoError(t, w.Start(context.Background(), initial))
	defer w.Stop()

	writeConfig(t, path, "[surface]\nlayer = \"bottom\"\n")

	select {
	case err := <-errs:
		assert.ErrorContains(t, err, "invalid layer")
		assert.False(t, w.GetCurrentConfig().Shadow.Enabled, "last good config retained")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error callback")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.toml")
	writeConfig(t, path, "[shadow]\nenabled = true\n")

	initial, err := Load(path)
	require.NoError(t, err)

	w := NewWatcher(path, nil)
	reloaded := make(chan struct{}, 1)
	w.SetReloadCallback(func(cfg *Config) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	require.NoError(t, w.Start(context.Background(), initial))
	defer w.Stop()

	writeConfig(t, filepath.Join(dir, "unrelated.toml"), "whatever = true\n")

	select {
	case <-reloaded:
		t.Fatal("reload fired for an unrelated file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherStartStopIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.toml")
	writeConfig(t, path, "[shadow]\nenabled = true\n")

	w := NewWatcher(path, nil)
	require.NoError(t, w.Start(context.Background(), DefaultConfig()))
	require.NoError(t, w.Start(context.Background(), DefaultConfig()), "second start is a no-op")

	w.Stop()
	w.Stop() // no-op, must not block or panic
}

func TestWatcherContextCancelStopsLoop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overlay.toml")
	writeConfig(t, path, "[shadow]\nenabled = true\n")

	ctx, cancel := context.WithCancel(context.Background())
	w := NewWatcher(path, nil)
	require.NoError(t, w.Start(ctx, DefaultConfig()))

	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not exit on context cancellation")
	}
}
