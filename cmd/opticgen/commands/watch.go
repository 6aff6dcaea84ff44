package commands

import (
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lens-go/opticgen/config"
	"github.com/lens-go/opticgen/logger"
	"github.com/lens-go/opticgen/optics"
	"github.com/lens-go/opticgen/workspace"
)

// debouncePeriod coalesces editor write bursts into one regeneration
const debouncePeriod = 500 * time.Millisecond

// watch re-runs the full pipeline whenever a scanned source file or
// manifest changes. Each pass is still a complete run-to-completion
// invocation; only the triggering is event-driven. last may be nil when
// the initial pass failed; the watcher then discovers its paths itself so
// a fixing edit still triggers a retry.
func watch(cfg *config.Config, provider workspace.Provider, out io.Writer, last *optics.Summary) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if last != nil {
		registerPaths(watcher, last.Manifests, last.SourceFiles)
	} else {
		manifests, files, err := discoverWatchPaths(cfg, provider)
		if err != nil {
			return err
		}
		registerPaths(watcher, manifests, files)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	statusInfo.Println("Watching for source changes (ctrl-c to stop)")

	var debounce *time.Timer
	runs := make(chan struct{}, 1)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debugw("source changed", logger.FieldPath, event.Name)
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debouncePeriod, func() {
				select {
				case runs <- struct{}{}:
				default:
				}
			})

		case <-runs:
			// Failed passes keep the previous registration; the next
			// edit triggers another attempt
			summary, runErr := runOnce(cfg, provider, out, true)
			if runErr != nil || summary == nil {
				continue
			}
			registerPaths(watcher, summary.Manifests, summary.SourceFiles)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Errorw("watch error", logger.FieldError, err)

		case <-sigs:
			statusInfo.Println("Stopping watch")
			return nil
		}
	}
}

// registerPaths points the watcher at the manifests and source files the
// last pass aggregated. Re-registering after every pass picks up newly
// created files.
func registerPaths(watcher *fsnotify.Watcher, manifests, files []string) {
	for _, watched := range watcher.WatchList() {
		_ = watcher.Remove(watched)
	}
	// Watch errors on individual paths are non-fatal; a momentarily absent
	// file reappears on the next registration
	for _, manifest := range manifests {
		_ = watcher.Add(manifest)
	}
	for _, file := range files {
		_ = watcher.Add(file)
	}
}

// discoverWatchPaths queries the provider directly, for watch sessions that
// start without a successful pass to take paths from
func discoverWatchPaths(cfg *config.Config, provider workspace.Provider) (manifests, files []string, err error) {
	members, err := provider.Discover(workspace.Request{
		DumpSourceFiles: true,
		Patterns:        cfg.Patterns,
	})
	if err != nil {
		return nil, nil, err
	}
	for _, member := range members {
		manifests = append(manifests, member.ManifestPath)
		files = append(files, member.SourceFiles...)
	}
	return manifests, files, nil
}
