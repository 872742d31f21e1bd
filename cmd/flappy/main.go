// flappy is a side-scrolling flap-through-the-pipes game for the terminal,
// SSH, and a desktop window.
//
// Usage:
//
//	flappy                   - Play in the current terminal
//	flappy play              - Same as above
//	flappy serve             - Start SSH server for remote play
//	flappy window            - Play in a desktop window
//	flappy config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible pipes and clouds
//	--config <path>       - Load a custom config YAML
//	--log-level <level>   - debug, info, warn or error (default: info)
//	--log-file <path>     - Append logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - flap through the pipes in your terminal",
	Long: `Flappy is a side-scrolling arcade game. Flap to stay in the air and
pass through the gaps between pipes; every pipe passed scores a point.

Available commands:
  play     - Play in the current terminal (default)
  serve    - Start SSH server for remote play
  window   - Play in a desktop window
  config   - Print the effective configuration

Examples:
  flappy
  flappy play --seed 42
  flappy serve --ssh :2222
  flappy window --width 480 --height 640
  flappy config > ~/.flappy/flappy.yaml`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(configCmd)
}
