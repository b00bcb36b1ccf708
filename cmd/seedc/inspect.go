package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dshills/seed/pkg/layout"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true)
	kindStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#A0A0A0"})
	boundStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00A5D9", Dark: "#00D9FF"})
)

var inspectCmd = &cobra.Command{
	Use:     "inspect <source.seed>",
	Aliases: []string{"i"},
	Short:   "Print the computed layout tree",
	GroupID: "compiling",
	Args:    cobra.ExactArgs(1),
	Example: `  seedc inspect card.seed`,
	RunE:    runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	res, src, err := compileFile(args[0])
	if err != nil {
		return describeError(src, err)
	}
	for _, r := range res.Layout.Roots() {
		printNode(res.Layout, r, 0)
	}
	return nil
}

func printNode(tree *layout.Tree, id layout.NodeID, depth int) {
	n := tree.Node(id)
	indent := strings.Repeat("  ", depth)
	label := n.Name
	if label == "" {
		label = string(n.ID)
	}
	fmt.Printf("%s%s %s %s\n",
		indent,
		nameStyle.Render(label),
		kindStyle.Render(kindName(n)),
		boundStyle.Render(fmt.Sprintf("[%.0f,%.0f %0.fx%.0f]", n.Absolute.X, n.Absolute.Y, n.Absolute.W, n.Absolute.H)),
	)
	for _, c := range n.Children {
		printNode(tree, c, depth+1)
	}
}

func kindName(n *layout.Node) string {
	return n.Kind.String()
}
