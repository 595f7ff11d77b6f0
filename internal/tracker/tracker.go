package tracker

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/capcom6/filetracker/internal/watcher"
	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

// Tracker keeps the last known digest of every tracked file and records
// a change whenever a notification shows different content.
type Tracker struct {
	hasher  Hasher
	journal Journal
	watcher DirWatcher
	sinks   []Sink
	now     func() time.Time

	mu    sync.RWMutex
	files map[string]*trackedFile

	startOnce sync.Once
	startErr  error
	wg        sync.WaitGroup
}

func New(hasher Hasher, journal Journal, watcher DirWatcher, sinks ...Sink) *Tracker {
	return &Tracker{
		hasher:  hasher,
		journal: journal,
		watcher: watcher,
		sinks:   sinks,
		now:     time.Now,

		files: make(map[string]*trackedFile),
	}
}

// Track registers paths and starts the dispatch loop on the first call.
// A path that can't be hashed or watched is skipped; its error is
// returned together with the others once the whole batch is processed.
// ctx of the first call bounds the lifetime of the loop.
func (t *Tracker) Track(ctx context.Context, paths ...string) error {
	var result *multierror.Error

	for _, path := range lo.Uniq(paths) {
		if err := t.track(path); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		log.Printf("[INFO] tracking %s", path)
	}

	if err := t.start(ctx); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// Wait blocks until the dispatch loop has stopped.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

// Digest returns the last known digest of path.
func (t *Tracker) Digest(path string) (string, bool) {
	key, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	f, ok := t.files[key]
	if !ok {
		return "", false
	}

	return f.digest, true
}

// Status returns a snapshot of every tracked file ordered by path.
func (t *Tracker) Status() []FileStatus {
	t.mu.RLock()
	statuses := make([]FileStatus, 0, len(t.files))
	for _, f := range t.files {
		statuses = append(statuses, f.status())
	}
	t.mu.RUnlock()

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Path < statuses[j].Path
	})

	return statuses
}

func (t *Tracker) track(path string) error {
	key, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("can't track %s: %w", path, err)
	}

	digest, err := t.hasher.Sum(key)
	if err != nil {
		return fmt.Errorf("can't track %s: %w", path, err)
	}

	if err := t.watcher.Add(filepath.Dir(key)); err != nil {
		return fmt.Errorf("can't track %s: %w", path, err)
	}

	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if f, ok := t.files[key]; ok {
		f.digest = digest
		f.checkedAt = now
		f.lastErr = nil
		return nil
	}

	t.files[key] = &trackedFile{
		path:      path,
		digest:    digest,
		trackedAt: now,
		checkedAt: now,
	}

	return nil
}

func (t *Tracker) start(ctx context.Context) error {
	t.startOnce.Do(func() {
		events, err := t.watcher.Watch(ctx, &t.wg)
		if err != nil {
			t.startErr = fmt.Errorf("can't start watcher: %w", err)
			return
		}

		t.wg.Add(1)
		go func() {
			defer t.wg.Done()

			for event := range events {
				t.handle(ctx, event)
			}
		}()
	})

	return t.startErr
}

func (t *Tracker) handle(ctx context.Context, event watcher.Event) {
	t.mu.RLock()
	f, ok := t.files[event.AbsPath]
	var path string
	if ok {
		path = f.path
	}
	t.mu.RUnlock()

	if !ok {
		return
	}

	if event.Type == watcher.EventRemoved {
		log.Printf("[WARN] %s was removed or renamed, keeping last digest", path)
		return
	}

	digest, err := t.hasher.Sum(event.AbsPath)
	if err != nil {
		log.Printf("[WARN] can't re-check %s: %s", path, err)
		t.mu.Lock()
		f.lastErr = err
		t.mu.Unlock()
		return
	}

	change, changed, err := t.apply(f, digest)
	if err != nil {
		log.Printf("[ERROR] can't record change of %s: %s", path, err)
		return
	}
	if !changed {
		log.Printf("[DEBUG] %s: content unchanged", path)
		return
	}

	log.Printf("[INFO] %s was modified", path)

	for _, sink := range t.sinks {
		if err := sink.Changed(ctx, change); err != nil {
			log.Printf("[ERROR] can't publish change of %s: %s", path, err)
		}
	}
}

// apply compares digest with the stored one and records a change on
// mismatch. The stored digest is only replaced once the record is written.
func (t *Tracker) apply(f *trackedFile, digest string) (Change, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	f.checkedAt = now
	f.lastErr = nil

	if digest == f.digest {
		return Change{}, false, nil
	}

	logFile, err := t.journal.Append(f.path, now)
	if err != nil {
		f.lastErr = err
		return Change{}, false, err
	}

	change := Change{
		Path:       f.path,
		Digest:     digest,
		Previous:   f.digest,
		DetectedAt: now,
		LogFile:    logFile,
	}

	f.digest = digest
	f.changedAt = now
	f.changes++

	return change, true, nil
}
