package file

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/clipdex/clipdex-cli/internal/logger"
)

// rebuildRate paces how often a burst of file events may trigger the
// change callback. Extraction tools drop many files in quick succession;
// one incremental build picks them all up.
var rebuildRate = rate.Every(2 * time.Second)

// Watcher watches the transcript directory and invokes a callback when
// records are added or rewritten. Event bursts coalesce into a single
// callback invocation.
type Watcher struct {
	dir      string
	fs       *fsnotify.Watcher
	limiter  *rate.Limiter
	onChange func()
	kick     chan struct{}
}

// NewWatcher creates a watcher over the store's directory. onChange runs
// on the watcher's goroutine; it should be a quick trigger (an incremental
// build call), not long-lived work of its own.
func NewWatcher(store *RecordStore, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fsw.Add(store.Dir()); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", store.Dir(), err)
	}

	return &Watcher{
		dir:      store.Dir(),
		fs:       fsw,
		limiter:  rate.NewLimiter(rebuildRate, 1),
		onChange: onChange,
		kick:     make(chan struct{}, 1),
	}, nil
}

// Run blocks, forwarding file events to the change callback until the
// context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	go w.consume(ctx)

	logger.Info("Watching %s for new transcripts", w.dir)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fs.Events:
			if !ok {
				return errors.New("watcher event channel closed")
			}
			if !isRecordEvent(ev) {
				continue
			}
			logger.Debug("Store event: %s", ev)
			select {
			case w.kick <- struct{}{}:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// consume drains kicks at the limiter's pace, collapsing bursts.
func (w *Watcher) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.kick:
		}
		if err := w.limiter.Wait(ctx); err != nil {
			return
		}
		// Drop anything queued while waiting; one callback covers it.
		select {
		case <-w.kick:
		default:
		}
		w.onChange()
	}
}

// isRecordEvent reports whether an event plausibly changes the record set.
func isRecordEvent(ev fsnotify.Event) bool {
	if !strings.HasSuffix(ev.Name, ".json") {
		return false
	}
	return ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Rename)
}
