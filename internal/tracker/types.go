package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/capcom6/filetracker/internal/watcher"
)

type Hasher interface {
	Sum(path string) (string, error)
}

type Journal interface {
	Append(path string, at time.Time) (string, error)
}

type DirWatcher interface {
	Add(dir string) error
	Watch(ctx context.Context, wg *sync.WaitGroup) (watcher.EventsChannel, error)
}

// Sink receives every change after its record has been written.
type Sink interface {
	Changed(ctx context.Context, change Change) error
}

type Change struct {
	Path       string
	Digest     string
	Previous   string
	DetectedAt time.Time
	LogFile    string
}

type FileStatus struct {
	Path      string
	Digest    string
	TrackedAt time.Time
	CheckedAt time.Time
	ChangedAt time.Time
	Changes   int
	LastError error
}

type trackedFile struct {
	path      string
	digest    string
	trackedAt time.Time
	checkedAt time.Time
	changedAt time.Time
	changes   int
	lastErr   error
}

func (f *trackedFile) status() FileStatus {
	return FileStatus{
		Path:      f.path,
		Digest:    f.digest,
		TrackedAt: f.trackedAt,
		CheckedAt: f.checkedAt,
		ChangedAt: f.changedAt,
		Changes:   f.changes,
		LastError: f.lastErr,
	}
}
