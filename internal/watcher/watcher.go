package watcher

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
)

// Watcher delivers modification events for files inside a set of
// non-recursively watched directories.
type Watcher struct {
	mu        sync.Mutex
	dirs      map[string]struct{}
	fswatcher *fsnotify.Watcher

	once     sync.Once
	events   chan Event
	startErr error
}

func New() *Watcher {
	return &Watcher{
		dirs: make(map[string]struct{}),
	}
}

// Add starts watching dir. Adding an already watched directory is a no-op.
func (w *Watcher) Add(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("filepath.Abs: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.init(); err != nil {
		return err
	}

	if _, ok := w.dirs[absDir]; ok {
		return nil
	}

	if err := w.fswatcher.Add(absDir); err != nil {
		return fmt.Errorf("can't watch %s: %w", absDir, err)
	}
	w.dirs[absDir] = struct{}{}

	return nil
}

// Dirs returns the watched directories in lexical order.
func (w *Watcher) Dirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	dirs := lo.Keys(w.dirs)
	sort.Strings(dirs)

	return dirs
}

// Watch starts the dispatch loop. Only the first call starts it; later
// calls return the same channel. The channel is closed once ctx is done.
func (w *Watcher) Watch(ctx context.Context, wg *sync.WaitGroup) (EventsChannel, error) {
	w.once.Do(func() {
		w.mu.Lock()
		err := w.init()
		fswatcher := w.fswatcher
		w.mu.Unlock()
		if err != nil {
			w.startErr = err
			return
		}

		w.events = make(chan Event)

		wg.Add(1)
		go func() {
			defer func() {
				fswatcher.Close()
				close(w.events)
				wg.Done()
			}()

			w.loop(ctx, fswatcher)
		}()
	})

	if w.startErr != nil {
		return nil, w.startErr
	}

	return w.events, nil
}

func (w *Watcher) init() error {
	if w.fswatcher != nil {
		return nil
	}

	fswatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	w.fswatcher = fswatcher

	return nil
}

func (w *Watcher) loop(ctx context.Context, fswatcher *fsnotify.Watcher) {
	for {
		select {
		case source, ok := <-fswatcher.Events:
			if !ok {
				return
			}

			event, ok := translate(source)
			if !ok {
				continue
			}

			log.Printf("[DEBUG] %s: %s", event.Type, event.AbsPath)

			select {
			case w.events <- event:
			case <-ctx.Done():
				return
			}

		case err, ok := <-fswatcher.Errors:
			if !ok {
				return
			}
			log.Println("[ERROR] watcher:", err)
		case <-ctx.Done():
			return
		}
	}
}

func translate(source fsnotify.Event) (Event, bool) {
	if source.Name == "" || source.Name == "." {
		return Event{}, false
	}

	var eventType EventType
	switch {
	case source.Has(fsnotify.Remove) || source.Has(fsnotify.Rename):
		eventType = EventRemoved
	case source.Has(fsnotify.Write) || source.Has(fsnotify.Create):
		eventType = EventModified
	default:
		return Event{}, false
	}

	absPath, err := filepath.Abs(source.Name)
	if err != nil {
		return Event{}, false
	}

	return Event{
		AbsPath: absPath,
		Type:    eventType,
	}, true
}
