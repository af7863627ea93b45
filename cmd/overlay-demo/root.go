package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
	"github.com/spf13/cobra"

	"github.com/kestrelui/overlay/internal/config"
	"github.com/kestrelui/overlay/internal/geom"
	"github.com/kestrelui/overlay/internal/platform/gtkshell"
	"github.com/kestrelui/overlay/internal/popup"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var (
	cfg        *config.Config
	logger     *slog.Logger
	globalOpts struct {
		verbose    bool
		configPath string

		placement string
		offsetX   float64
		offsetY   float64
		anchorX   float64
		anchorY   float64
		anchorW   float64
		anchorH   float64
		text      string
	}
)

// placements maps the --placement flag values.
var placements = map[string]popup.Placement{
	"pointer":      popup.PlacementPointer,
	"top":          popup.PlacementTop,
	"top-start":    popup.PlacementTopStart,
	"top-end":      popup.PlacementTopEnd,
	"bottom":       popup.PlacementBottom,
	"bottom-start": popup.PlacementBottomStart,
	"bottom-end":   popup.PlacementBottomEnd,
	"left":         popup.PlacementLeft,
	"right":        popup.PlacementRight,
	"center":       popup.PlacementCenter,
}

var rootCmd = &cobra.Command{
	Use:   "overlay-demo",
	Short: "Interactive harness for the overlay popup subsystem",
	Long: `overlay-demo opens a GTK4 anchor surface and positions a popup
against it through the overlay host and positioner, so placement, gravity
and constraint-adjustment behavior can be exercised against a real
compositor.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.Load(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		placement, ok := placements[globalOpts.placement]
		if !ok {
			return fmt.Errorf("invalid placement %q", globalOpts.placement)
		}
		return runDemo(placement)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/overlay/overlay.toml)")

	rootCmd.Flags().StringVar(&globalOpts.placement, "placement", "bottom-start",
		"Popup placement relative to the anchor rect")
	rootCmd.Flags().Float64Var(&globalOpts.offsetX, "offset-x", 0, "Popup X offset in pixels")
	rootCmd.Flags().Float64Var(&globalOpts.offsetY, "offset-y", 0, "Popup Y offset in pixels")
	rootCmd.Flags().Float64Var(&globalOpts.anchorX, "anchor-x", 100, "Anchor rect X")
	rootCmd.Flags().Float64Var(&globalOpts.anchorY, "anchor-y", 100, "Anchor rect Y")
	rootCmd.Flags().Float64Var(&globalOpts.anchorW, "anchor-w", 120, "Anchor rect width")
	rootCmd.Flags().Float64Var(&globalOpts.anchorH, "anchor-h", 32, "Anchor rect height")
	rootCmd.Flags().StringVar(&globalOpts.text, "text", "overlay popup", "Popup label text")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// fixedContent is a demo child that always wants the same size.
type fixedContent struct {
	size geom.Size
}

func (c *fixedContent) Measure(available geom.Size) {}
func (c *fixedContent) Arrange(final geom.Rect)     {}
func (c *fixedContent) DesiredSize() geom.Size      { return c.size }

// runDemo runs the GTK application loop and shows one popup.
func runDemo(placement popup.Placement) error {
	app := gtk.NewApplication("dev.kestrelui.overlay-demo", 0)

	app.ConnectActivate(func() {
		parentWin := gtk.NewApplicationWindow(app)
		parentWin.SetTitle("overlay-demo anchor")
		parentWin.SetDefaultSize(640, 480)

		anchorLbl := gtk.NewLabel("anchor surface")
		parentWin.SetChild(anchorLbl)
		parentWin.Present()

		parent := gtkshell.NewTopLevel(&parentWin.Window, logger)
		win := gtkshell.NewWindow(app, cfg, logger)

		popupLbl := gtk.NewLabel(globalOpts.text)
		win.SetChildWidget(popupLbl)

		host := popup.NewHost(parent, win, logger)
		host.SetContent(&fixedContent{size: geom.Sz(220, 80)})
		host.SetShadowHint(cfg.Shadow.Enabled)

		// Hot-reload the shadow hint while the demo runs.
		watcher := config.NewWatcher(globalOpts.configPath, logger)
		watcher.SetReloadCallback(func(newConfig *config.Config) {
			host.SetShadowHint(newConfig.Shadow.Enabled)
		})
		if err := watcher.Start(context.Background(), cfg); err != nil {
			logger.Warn("config watcher unavailable", "error", err)
		}

		size := host.Measure(geom.Inf())
		host.Arrange(size)

		req := popup.NewRequest(parent, placement,
			popup.WithOffset(cfg.Offset().Add(geom.Vec(globalOpts.offsetX, globalOpts.offsetY))),
			popup.WithAnchorRect(geom.NewRect(
				globalOpts.anchorX, globalOpts.anchorY,
				globalOpts.anchorW, globalOpts.anchorH,
			)),
			popup.WithConstraintAdjustment(cfg.Adjustment()),
		)
		host.ConfigurePosition(req)
		host.Show()
	})

	if code := app.Run(nil); code != 0 {
		return fmt.Errorf("gtk application exited with code %d", code)
	}
	return nil
}
