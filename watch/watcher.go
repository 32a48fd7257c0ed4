// Package watch re-runs generation when Rust sources change.
//
// File events under the input directory are filtered through the scan
// matcher and debounced; when the debounce timer fires the callback runs
// once with every path that changed. Callbacks never overlap: events that
// arrive during a rebuild queue exactly one more rebuild.
package watch

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/misha-mad/vercel-rpc-sub000/errors"
	"github.com/misha-mad/vercel-rpc-sub000/logger"
	"github.com/misha-mad/vercel-rpc-sub000/parser"
	"go.uber.org/zap"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\033[2J\033[H"

// Callback rebuilds output. changed lists the paths that triggered it, sorted.
// A returned error is logged and the watcher keeps running.
type Callback func(ctx context.Context, changed []string) error

// Options configure a Watcher.
type Options struct {
	Dir         string
	Matcher     *parser.Matcher
	Debounce    time.Duration
	ClearScreen bool
	// Out receives the clear-screen sequence; nil means os.Stdout.
	Out io.Writer
}

// Watcher watches Options.Dir recursively, including directories created
// after it starts.
type Watcher struct {
	opts     Options
	callback Callback
	watcher  *fsnotify.Watcher
	log      *zap.SugaredLogger

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer

	// trigger holds at most one queued rebuild.
	trigger chan struct{}
}

// New creates a watcher over opts.Dir. Call Run to start it.
func New(opts Options, callback Callback) (*Watcher, error) {
	if opts.Matcher == nil {
		opts.Matcher = parser.NewMatcher(nil, nil)
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		opts:     opts,
		callback: callback,
		watcher:  fw,
		log:      logger.ComponentLogger(logger.ComponentWatch),
		pending:  make(map[string]struct{}),
		trigger:  make(chan struct{}, 1),
	}
	if err := w.addTree(opts.Dir); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == dir {
				return errors.NewNotFoundError("watch directory %s does not exist", dir)
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		w.log.Debugw("watching directory", logger.FieldDir, path)
		return nil
	})
}

// Run processes events until ctx is cancelled. It returns nil on
// cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.rebuildLoop(ctx)
	}()
	defer func() {
		cancel()
		w.stopTimer()
		<-done
		w.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.log.Warnw("failed to watch new directory", logger.FieldDir, event.Name, logger.FieldError, err)
			}
			// Files created together with the directory produce no events
			// of their own.
			w.scheduleTree(event.Name)
			return
		}
	}

	if w.matches(event.Name) {
		w.log.Debugw("source changed", logger.FieldFile, event.Name, "op", event.Op.String())
		w.schedule(event.Name)
	}
}

func (w *Watcher) matches(path string) bool {
	rel, err := filepath.Rel(w.opts.Dir, path)
	if err != nil {
		return false
	}
	ok, err := w.opts.Matcher.Match(rel)
	return err == nil && ok
}

func (w *Watcher) scheduleTree(dir string) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() && w.matches(path) {
			w.schedule(path)
		}
		return nil
	})
}

// schedule records path and restarts the debounce timer.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, func() {
		select {
		case w.trigger <- struct{}{}:
		default: // a rebuild is already queued and will see the pending paths
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}

// takePending returns and clears the changed paths.
func (w *Watcher) takePending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	changed := make([]string, 0, len(w.pending))
	for p := range w.pending {
		changed = append(changed, p)
	}
	w.pending = make(map[string]struct{})
	sort.Strings(changed)
	return changed
}

// rebuildLoop is the only goroutine that runs the callback.
func (w *Watcher) rebuildLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.trigger:
		}

		changed := w.takePending()
		if len(changed) == 0 {
			continue
		}
		if w.opts.ClearScreen {
			io.WriteString(w.opts.Out, clearScreen)
		}

		start := time.Now()
		if err := w.callback(ctx, changed); err != nil {
			w.log.Errorw("rebuild failed", logger.FieldError, err, logger.FieldFiles, len(changed))
			continue
		}
		w.log.Debugw("rebuild complete",
			logger.FieldFiles, len(changed),
			logger.FieldDurationMS, time.Since(start).Milliseconds())
	}
}
