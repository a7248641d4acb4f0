// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/api2spec/odata2openapi/internal/openapi"
)

var (
	watchDebounce int
	watchOnChange string
)

var watchCmd = &cobra.Command{
	Use:   "watch [model]",
	Short: "Watch the model and regenerate the document",
	Long: `Watch the model document and configuration file, regenerating the
OpenAPI document whenever either changes.

Bursts of file events are debounced into one regeneration. An optional
command runs after every successful regeneration.

Example:
  odata2openapi watch                               # Watch model.yaml
  odata2openapi watch service.yaml                  # Watch a specific model
  odata2openapi watch --debounce 1000               # Wait 1s before regenerating
  odata2openapi watch --on-change "make lint-api"   # Run command after regeneration`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: from config)")
	watchCmd.Flags().StringVar(&watchOnChange, "on-change", "", "command to run after regeneration")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if watchDebounce > 0 {
		cfg.Watch.Debounce = watchDebounce
	}
	if watchOnChange != "" {
		cfg.Watch.OnChange = watchOnChange
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	files := []string{cfg.Model}
	if cfgFile != "" {
		files = append(files, cfgFile)
	}

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", cfg.Watch.Debounce)
	if cfg.Watch.OnChange != "" {
		printVerbose("  On change: %s", cfg.Watch.OnChange)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	onChange := cfg.Watch.OnChange
	regenerate := func() error {
		// Reload so edits to the config file apply.
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		if onChange != "" {
			cfg.Watch.OnChange = onChange
		}
		doc, err := generateDocument(cfg)
		if err != nil {
			return err
		}
		if err := openapi.NewWriter().WriteFile(doc, cfg.Output, cfg.Format); err != nil {
			return err
		}
		printInfo("Regenerated %s (%d paths)", cfg.Output, len(doc.Paths))
		return runOnChange(ctx, cfg.Watch.OnChange)
	}

	if err := regenerate(); err != nil {
		printError("%v", err)
	}

	w, err := newFileWatcher(files)
	if err != nil {
		return err
	}
	defer w.Close()

	printInfo("Watching %v for changes", files)
	printInfo("Press Ctrl+C to stop")

	debounce := time.Duration(cfg.Watch.Debounce) * time.Millisecond
	return watchLoop(ctx, w, debounce, regenerate)
}

// fileWatcher reports changes to a fixed set of files. The parent directories
// are watched so files replaced by editors keep being tracked.
type fileWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
}

func newFileWatcher(files []string) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &fileWatcher{watcher: watcher, files: make(map[string]bool)}
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// relevant reports whether ev touches one of the watched files.
func (w *fileWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

func (w *fileWatcher) Close() error {
	return w.watcher.Close()
}

// watchLoop calls regenerate once per burst of relevant events, after the
// events have been quiet for debounce. It returns when ctx is done.
func watchLoop(ctx context.Context, w *fileWatcher, debounce time.Duration, regenerate func() error) error {
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			printInfo("Stopped watching")
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			logger.Debug("file changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-timer.C:
			if err := regenerate(); err != nil {
				printError("%v", err)
			}
		}
	}
}

// runOnChange runs command through the shell, if set.
func runOnChange(ctx context.Context, command string) error {
	if command == "" {
		return nil
	}
	logger.Debug("running on-change command", "command", command)

	c := exec.CommandContext(ctx, "sh", "-c", command)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("on-change command failed: %w", err)
	}
	return nil
}
