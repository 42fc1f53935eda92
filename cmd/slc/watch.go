package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	compiler "slc/internal/cmd"
	"slc/internal/context"
)

func newWatchCmd() *cobra.Command {
	var debounceMs int
	var debug bool

	cmd := &cobra.Command{
		Use:   "watch <file>...",
		Short: "Recompile shader files whenever they change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(args, time.Duration(debounceMs)*time.Millisecond, debug)
		},
	}

	cmd.Flags().IntVar(&debounceMs, "debounce", 250, "milliseconds to wait after the last change before recompiling")
	cmd.Flags().BoolVar(&debug, "debug", false, "print phase progress on stderr")
	return cmd
}

func runWatch(paths []string, debounce time.Duration, debug bool) error {
	watched := map[string]bool{}
	dirs := map[string]bool{}
	files := make([]string, 0, len(paths))

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		abs = filepath.Clean(abs)
		watched[abs] = true
		dirs[filepath.Dir(abs)] = true
		files = append(files, abs)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the containing directories, not the files: editors that
	// write via rename would otherwise drop the watch on every save.
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	compile := func() {
		ctx := context.New(&context.CompilerOptions{Debug: debug})
		if err := compiler.Compile(files, ctx); err != nil {
			fmt.Println("error:", err)
			return
		}
		ctx.EmitDiagnostics()
		if !ctx.HasErrors() {
			fmt.Printf("ok: compiled %d file(s)\n", len(files))
		}
	}

	compile()
	fmt.Printf("watching %d file(s); press Ctrl-C to stop\n", len(files))

	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	pending := false

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if pending {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}
			timer.Reset(debounce)
			pending = true

		case <-timer.C:
			if pending {
				pending = false
				compile()
			}

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}
