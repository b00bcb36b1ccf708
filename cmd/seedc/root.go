// Command seedc compiles seed design documents: parse a source file,
// resolve its tokens and references, expand components, solve layout
// constraints, and emit a render-command scene (one JSON, one terminal
// tree, one watch loop — spec §2's pipeline driven from a CLI).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time version information, set via SetVersionInfo from main.go.
var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

var (
	cfgFile     string
	tokensFile  string
	compsFile   string
	viewWidth   float64
	viewHeight  float64
	defaultFont float64
)

var rootCmd = &cobra.Command{
	Use:   "seedc",
	Short: "Compile seed design documents to layout and render commands",
	Long: `seedc compiles a seed source document through the full pipeline:
parse, resolve tokens, resolve element references, expand components,
solve layout constraints, and build a flattened render-command scene.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "seedc.toml", "path to seedc.toml (layout defaults)")
	rootCmd.PersistentFlags().StringVar(&tokensFile, "tokens", "", "path to a token pack YAML file")
	rootCmd.PersistentFlags().StringVar(&compsFile, "components", "", "path to a component pack YAML file")
	rootCmd.PersistentFlags().Float64Var(&viewWidth, "viewport-width", 0, "override viewport width in pixels")
	rootCmd.PersistentFlags().Float64Var(&viewHeight, "viewport-height", 0, "override viewport height in pixels")
	rootCmd.PersistentFlags().Float64Var(&defaultFont, "default-font-size", 0, "override default font size in pixels")

	rootCmd.AddGroup(
		&cobra.Group{ID: "compiling", Title: "Compiling"},
		&cobra.Group{ID: "watching", Title: "Watching"},
	)
}

// Execute runs the root command. Called from main.go.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets build-time version information from ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion, appCommit, appDate = version, commit, date
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("seedc %s (commit: %s, built: %s)\n", version, commit, date))
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
