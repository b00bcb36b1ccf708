package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/seed/pkg/export"
	"github.com/dshills/seed/pkg/pipeline"
	"github.com/dshills/seed/pkg/scene"
)

var compileCmd = &cobra.Command{
	Use:     "compile <source.seed>",
	Aliases: []string{"c"},
	Short:   "Compile a source document to a render-command scene",
	GroupID: "compiling",
	Args:    cobra.ExactArgs(1),
	Example: `  seedc compile button.seed
  seedc compile button.seed --output button.json
  seedc compile button.seed --format svg --output button.svg
  seedc compile card.seed --tokens theme.yaml --components widgets.yaml`,
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	compileCmd.Flags().StringP("format", "f", "json", "output format: json or svg")
}

func runCompile(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "json" && format != "svg" {
		return fmt.Errorf("invalid format %q (valid: json, svg)", format)
	}

	res, src, err := compileFile(args[0])
	if err != nil {
		return describeError(src, err)
	}

	var data []byte
	switch format {
	case "svg":
		data, err = export.Render(res.Scene, svgOptions(res))
		if err != nil {
			return fmt.Errorf("rendering SVG: %w", err)
		}
	default:
		data, err = json.MarshalIndent(sceneDocument{Commands: res.Scene.Commands}, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding scene: %w", err)
		}
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(output, data, 0644)
}

// svgOptions sizes the SVG canvas to the compiled content bounds so a
// document smaller than the viewport doesn't render into a mostly
// empty canvas.
func svgOptions(res *pipeline.Result) export.Options {
	opts := export.DefaultOptions()
	content := res.Layout.ContentBounds()
	if w := int(math.Ceil(content.X + content.W)); w > 0 {
		opts.Width = w
	}
	if h := int(math.Ceil(content.Y + content.H)); h > 0 {
		opts.Height = h
	}
	return opts
}

// sceneDocument is the JSON envelope around a Scene's command stream.
// scene.Command isn't itself tagged for JSON (it's an in-process value
// type, spec §4.7), so this wrapper is the CLI's own serialization
// concern, not something pkg/scene needs to carry.
type sceneDocument struct {
	Commands []scene.Command `json:"commands"`
}
