package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/window"
)

var (
	flagWindowW int
	flagWindowH int
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Open a resizable desktop window and play with native pixels.

Controls:
  Space/Up/W/Enter  - Flap (starts a run when idle or after game over)
  Click or tap      - Same as space
  Q/Esc             - Quit

Examples:
  flappy window
  flappy window --width 480 --height 640 --seed 7`,
	Run: runWindow,
}

func init() {
	windowCmd.Flags().IntVar(&flagWindowW, "width", 400, "Window width in pixels")
	windowCmd.Flags().IntVar(&flagWindowH, "height", 600, "Window height in pixels")
}

func runWindow(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(io.Discard, "flappy")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	rt := core.RuntimeConfig{
		ScreenW:  flagWindowW,
		ScreenH:  flagWindowH,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	if err := window.Run(cfg, rt, logger); err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
