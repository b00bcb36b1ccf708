package main

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:     "watch <source.seed>",
	Aliases: []string{"w"},
	Short:   "Recompile a source document on every change",
	GroupID: "watching",
	Args:    cobra.ExactArgs(1),
	Example: `  seedc watch button.seed
  seedc watch button.seed --debounce 200ms`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("debounce", 150*time.Millisecond, "delay after the last event before recompiling")
}

// runWatch mirrors the teacher pack's debounced fsnotify loop (a single
// file instead of a directory tree: recompiling always means one
// Compile call over one source path), printing the layout tree after
// every successful recompile and the failing stage on error.
func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	debounce, _ := cmd.Flags().GetDuration("debounce")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	recompile := func() {
		res, src, err := compileFile(path)
		if err != nil {
			fmt.Printf("%s: %v\n", path, describeError(src, err))
			return
		}
		for _, r := range res.Layout.Roots() {
			printNode(res.Layout, r, 0)
		}
	}

	fmt.Printf("watching %s (^C to stop)\n", path)
	recompile()

	timer := time.NewTimer(0)
	<-timer.C
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(debounce)

		case <-timer.C:
			recompile()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Printf("watch error: %v\n", err)
		}
	}
}
