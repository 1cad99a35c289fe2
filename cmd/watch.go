package cmd

import (
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli"
)

// Wait this long after the last change before rewriting so that the exporter
// can finish writing the scene.
const watchSettleDelay = 250 * time.Millisecond

// Rewrite the scene every time the exported scene or the material library
// changes.
func WatchScene(ctx *cli.Context) error {
	setupLogging(ctx)

	opts, err := parseRewriteOptions(ctx)
	if err != nil {
		return err
	}

	scenePath, _ := filepath.Abs(opts.scenePath)
	outPath, _ := filepath.Abs(opts.outPath)
	if scenePath == outPath {
		return errors.New("watch requires an --out file different from the watched scene")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the parent dirs; exporters usually replace files instead of
	// writing them in place.
	watched := map[string]bool{
		scenePath: true,
	}
	libraryPath, _ := filepath.Abs(opts.libraryPath)
	watched[libraryPath] = true
	for path := range watched {
		if err = watcher.Add(filepath.Dir(path)); err != nil {
			return err
		}
	}

	if err = runRewrite(opts); err != nil {
		logger.Error(err)
	}
	logger.Noticef("watching %s for changes", opts.scenePath)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	var settle <-chan time.Time
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(event.Name)
			if !watched[abs] || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Debugf("detected change: %s", event)
			settle = time.After(watchSettleDelay)
		case <-settle:
			settle = nil
			if err = runRewrite(opts); err != nil {
				logger.Error(err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warningf("watcher error: %s", err)
		case <-interrupt:
			logger.Notice("stopping watcher")
			return nil
		}
	}
}
