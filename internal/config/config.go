// Package config handles configuration file loading and parsing for the
// overlay subsystem: window-manager shadow hints, default positioning
// behavior and the layer-shell surface options of the GTK backend.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/kestrelui/overlay/internal/geom"
	"github.com/kestrelui/overlay/internal/popup"
)

// Adjustment tokens accepted in the config file.
const (
	AdjustmentAll     = "all"
	AdjustmentNone    = "none"
	AdjustmentFlipX   = "flip-x"
	AdjustmentFlipY   = "flip-y"
	AdjustmentSlideX  = "slide-x"
	AdjustmentSlideY  = "slide-y"
	AdjustmentResizeX = "resize-x"
	AdjustmentResizeY = "resize-y"
)

// Layer names accepted for the layer-shell surface.
const (
	LayerTop     = "top"
	LayerOverlay = "overlay"
)

// Config is the overlay subsystem configuration.
// Loaded from ~/.config/overlay/overlay.toml.
type Config struct {
	Shadow      ShadowConfig      `toml:"shadow"`
	Positioning PositioningConfig `toml:"positioning"`
	Surface     SurfaceConfig     `toml:"surface"`
	Logging     LoggingConfig     `toml:"logging"`
}

// ShadowConfig controls the window-manager shadow hint for popup surfaces.
type ShadowConfig struct {
	Enabled bool `toml:"enabled"`
}

// PositioningConfig holds default positioning behavior applied to requests
// that do not specify their own.
type PositioningConfig struct {
	Adjustments []string `toml:"adjustments"` // overflow policy tokens
	OffsetX     float64  `toml:"offset_x"`    // default offset in pixels
	OffsetY     float64  `toml:"offset_y"`
	// Fallback maximum auto-size when the platform cannot report one.
	MaxAutoWidth  float64 `toml:"max_auto_width"`
	MaxAutoHeight float64 `toml:"max_auto_height"`
}

// SurfaceConfig holds layer-shell options for the GTK backend.
type SurfaceConfig struct {
	Namespace string `toml:"namespace"` // layer-shell namespace for WMs
	Layer     string `toml:"layer"`     // "top" or "overlay"
}

// LoggingConfig holds the log level for the subsystem's slog output.
type LoggingConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Shadow: ShadowConfig{
			Enabled: true,
		},
		Positioning: PositioningConfig{
			Adjustments:   []string{AdjustmentAll},
			OffsetX:       0,
			OffsetY:       0,
			MaxAutoWidth:  1920,
			MaxAutoHeight: 1080,
		},
		Surface: SurfaceConfig{
			Namespace: "overlay-popup",
			Layer:     LayerTop,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Path returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "overlay", "overlay.toml")
}

// Load loads configuration from the specified path. If path is empty, the
// default config path is used. A missing file yields the defaults; an
// invalid file is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	// Start with defaults, then overlay with file contents.
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path, creating parent
// directories if needed. The write goes through a temp file and rename.
func (c *Config) Save(path string) error {
	if path == "" {
		path = Path()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	for _, tok := range c.Positioning.Adjustments {
		if _, err := parseAdjustmentToken(tok); err != nil {
			return err
		}
	}

	if c.Positioning.MaxAutoWidth < 0 || c.Positioning.MaxAutoHeight < 0 {
		return fmt.Errorf("max auto size must not be negative, got %gx%g",
			c.Positioning.MaxAutoWidth, c.Positioning.MaxAutoHeight)
	}

	if c.Surface.Layer != LayerTop && c.Surface.Layer != LayerOverlay {
		return fmt.Errorf("invalid layer %q, must be %q or %q",
			c.Surface.Layer, LayerTop, LayerOverlay)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}

	return nil
}

// Adjustment returns the constraint-adjustment flag set described by the
// positioning section. The config is assumed validated.
func (c *Config) Adjustment() popup.Adjustment {
	var a popup.Adjustment
	for _, tok := range c.Positioning.Adjustments {
		flags, err := parseAdjustmentToken(tok)
		if err != nil {
			continue
		}
		a |= flags
	}
	return a
}

// Offset returns the default request offset from the positioning section.
func (c *Config) Offset() geom.Vector {
	return geom.Vec(c.Positioning.OffsetX, c.Positioning.OffsetY)
}

// MaxAutoSize returns the fallback maximum auto-size.
func (c *Config) MaxAutoSize() geom.Size {
	return geom.Sz(c.Positioning.MaxAutoWidth, c.Positioning.MaxAutoHeight)
}

// parseAdjustmentToken maps one config token to its flag set.
func parseAdjustmentToken(tok string) (popup.Adjustment, error) {
	switch tok {
	case AdjustmentAll:
		return popup.AdjustAll, nil
	case AdjustmentNone:
		return popup.AdjustNone, nil
	case AdjustmentFlipX:
		return popup.AdjustFlipX, nil
	case AdjustmentFlipY:
		return popup.AdjustFlipY, nil
	case AdjustmentSlideX:
		return popup.AdjustSlideX, nil
	case AdjustmentSlideY:
		return popup.AdjustSlideY, nil
	case AdjustmentResizeX:
		return popup.AdjustResizeX, nil
	case AdjustmentResizeY:
		return popup.AdjustResizeY, nil
	default:
		return 0, fmt.Errorf("invalid adjustment %q", tok)
	}
}
