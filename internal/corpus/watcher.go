package corpus

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"exsolver/internal/util"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a Repository when documents in its directory change.
// Bursts of events within the debounce window trigger a single reload.
type Watcher struct {
	repo     *Repository
	watcher  *fsnotify.Watcher
	debounce time.Duration
	log      *zap.Logger
	stop     chan struct{}
	done     chan struct{}
}

func NewWatcher(repo *Repository, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fs watcher: %w", err)
	}
	return &Watcher{
		repo:     repo,
		watcher:  fw,
		debounce: debounce,
		log:      log.Named("corpus.watcher"),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.repo.Dir()); err != nil {
		return fmt.Errorf("watch %s: %w", w.repo.Dir(), err)
	}
	go w.processEvents(ctx)
	return nil
}

// Stop ends the event loop and waits for it to exit. Safe to call twice.
func (w *Watcher) Stop() {
	select {
	case <-w.stop:
		return
	default:
		close(w.stop)
		_ = w.watcher.Close()
	}
	<-w.done
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			w.log.Debug("example directory changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C
		case <-fire:
			fire = nil
			if err := w.repo.Reload(ctx); err != nil {
				w.log.Error("corpus reload failed", zap.Error(err))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("fs watcher error", zap.Error(err))
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return false
	}
	if !util.HasExt(ev.Name, SupportedExtensions...) {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
