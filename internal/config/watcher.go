package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the config file for changes and validates new configs
// before handing them to the reload callback. Invalid edits keep the last
// good config and go to the error callback instead.
type Watcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	configPath string

	// Current valid config
	currentConfig *Config

	// Callbacks
	onReloadCallback func(newConfig *Config)
	onErrorCallback  func(err error)

	fw *fsnotify.Watcher

	// Control channels
	stopCh chan struct{}
	doneCh chan struct{}

	running bool
}

// NewWatcher creates a Watcher for the config file at path. An empty path
// uses the default config location.
func NewWatcher(path string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = Path()
	}
	return &Watcher{
		logger:     logger,
		configPath: path,
		stopCh:     make(chan struct{}),
		doneCh:     make(chan struct{}),
	}
}

// SetReloadCallback sets the callback to invoke when config is successfully reloaded.
func (w *Watcher) SetReloadCallback(callback func(newConfig *Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReloadCallback = callback
}

// SetErrorCallback sets the callback to invoke when config reload fails validation.
func (w *Watcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onErrorCallback = callback
}

// Start begins watching the config file for changes.
func (w *Watcher) Start(ctx context.Context, initialConfig *Config) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	// Watch the directory rather than the file: editors replace config
	// files by rename, which drops a file-level watch.
	if err := fw.Add(filepath.Dir(w.configPath)); err != nil {
		fw.Close()
		w.mu.Unlock()
		return err
	}

	w.running = true
	w.currentConfig = initialConfig
	w.fw = fw
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.watchLoop(ctx)

	w.logger.Debug("config watcher started", "path", w.configPath)
	return nil
}

// Stop stops watching the config file.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	w.mu.Unlock()

	// Wait for goroutine to finish
	<-w.doneCh
	w.logger.Debug("config watcher stopped")
}

// GetCurrentConfig returns the current valid configuration.
func (w *Watcher) GetCurrentConfig() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.currentConfig
}

// watchLoop consumes fsnotify events until stopped.
func (w *Watcher) watchLoop(ctx context.Context) {
	defer close(w.doneCh)
	defer w.fw.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.configPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.logger.Debug("config watch error", "error", err)
		}
	}
}

// reload loads and validates the config file, then notifies the appropriate
// callback.
func (w *Watcher) reload() {
	w.mu.RLock()
	reloadCallback := w.onReloadCallback
	errorCallback := w.onErrorCallback
	w.mu.RUnlock()

	w.logger.Debug("config file changed", "path", w.configPath)

	newConfig, err := Load(w.configPath)
	if err != nil {
		w.logger.Warn("config file changed but validation failed", "error", err)
		if errorCallback != nil {
			errorCallback(err)
		}
		return
	}

	w.mu.Lock()
	w.currentConfig = newConfig
	w.mu.Unlock()

	w.logger.Info("config reloaded successfully")
	if reloadCallback != nil {
		reloadCallback(newConfig)
	}
}
