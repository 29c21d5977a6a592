// Package corpus owns the in-memory set of solved example exercises read
// from a directory of documents.
package corpus

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"exsolver/internal/metrics"
	"exsolver/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type snapshot struct {
	examples []*Example
	byID     map[string]*Example
	loadedAt time.Time
}

// Repository publishes immutable snapshots of the corpus. Readers never block
// and never observe a partially built snapshot; loads are serialized.
type Repository struct {
	dir     string
	log     *zap.Logger
	metrics *metrics.Metrics

	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

func NewRepository(dir string, log *zap.Logger, m *metrics.Metrics) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Repository{dir: dir, log: log.Named("corpus"), metrics: m}
	r.snap.Store(&snapshot{byID: map[string]*Example{}})
	return r
}

func (r *Repository) Dir() string { return r.dir }

// Load scans the directory, builds a new snapshot and publishes it. Documents
// that cannot be decoded or split are logged and skipped. An unreadable
// directory is an error and leaves the current snapshot in place.
func (r *Repository) Load(ctx context.Context) ([]*Example, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	paths, err := util.ListFiles(r.dir, SupportedExtensions...)
	if err != nil {
		r.metrics.ObserveReload(0, err)
		return nil, fmt.Errorf("%w: %w", util.ErrCorpusDirUnreadable, err)
	}

	examples := make([]*Example, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			r.metrics.ObserveReload(0, err)
			return nil, err
		}
		ex, err := buildExample(p)
		if err != nil {
			r.log.Warn("skipping example document", zap.String("path", p), zap.Error(err))
			r.metrics.IncSkippedDocument()
			continue
		}
		examples = append(examples, ex)
	}

	r.publish(examples)
	r.metrics.ObserveReload(len(examples), nil)
	r.log.Info("corpus loaded", zap.String("dir", r.dir), zap.Int("examples", len(examples)), zap.Int("documents", len(paths)))
	return r.All(), nil
}

// Reload is Load for callers that only need the outcome.
func (r *Repository) Reload(ctx context.Context) error {
	_, err := r.Load(ctx)
	return err
}

func (r *Repository) publish(examples []*Example) {
	byID := make(map[string]*Example, len(examples))
	for _, ex := range examples {
		byID[ex.ID] = ex
	}
	r.snap.Store(&snapshot{examples: examples, byID: byID, loadedAt: time.Now().UTC()})
}

// All returns the examples of the current snapshot in file name order.
func (r *Repository) All() []*Example {
	s := r.snap.Load()
	out := make([]*Example, len(s.examples))
	copy(out, s.examples)
	return out
}

func (r *Repository) Len() int { return len(r.snap.Load().examples) }

func (r *Repository) LoadedAt() time.Time { return r.snap.Load().loadedAt }

func (r *Repository) Get(id string) (*Example, error) {
	ex, ok := r.snap.Load().byID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, util.ErrExampleNotFound)
	}
	return ex, nil
}

// Validate decodes and splits a document without publishing it.
func (r *Repository) Validate(path string) (*Example, error) {
	return buildExample(path)
}

// Save stages an uploaded document, validates it, moves it into the
// directory under name and reloads. An invalid document is discarded and the
// corpus is left untouched.
func (r *Repository) Save(ctx context.Context, name string, src io.Reader) (*Example, error) {
	name = filepath.Base(name)
	if _, err := formatOf(name); err != nil {
		return nil, err
	}

	staging := filepath.Join(r.dir, ".staging", uuid.NewString()+filepath.Ext(name))
	if err := util.WriteFileAtomic(staging, src); err != nil {
		return nil, err
	}
	defer os.Remove(staging)

	ex, err := buildExample(staging)
	if err != nil {
		return nil, err
	}
	final := util.SafeJoin(r.dir, name)
	if err := os.Rename(staging, final); err != nil {
		return nil, fmt.Errorf("move example into place: %w", err)
	}
	r.log.Info("example saved", zap.String("id", name), zap.Int("pages", ex.Pages))

	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r.Get(name)
}

// Import validates the document at path and copies it into the directory.
// The corpus is not reloaded; callers batch imports and reload once.
func (r *Repository) Import(path string) (*Example, error) {
	ex, err := buildExample(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open example: %w", err)
	}
	defer f.Close()
	if err := util.WriteFileAtomic(util.SafeJoin(r.dir, ex.ID), f); err != nil {
		return nil, err
	}
	return ex, nil
}

// Owns reports whether path lies directly in the examples directory.
func (r *Repository) Owns(path string) bool {
	dir, err1 := filepath.Abs(filepath.Dir(path))
	root, err2 := filepath.Abs(r.dir)
	return err1 == nil && err2 == nil && dir == root
}
