package changelog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	dateLayout = "20060102"
	// same layout as C ctime(3)
	timestampLayout = time.ANSIC
)

// Journal appends change records to per-file, per-day log files.
type Journal struct {
	Dir string

	mu sync.Mutex
}

func New(dir string) *Journal {
	if dir == "" {
		dir = "."
	}

	return &Journal{
		Dir: dir,
	}
}

// FileName returns the log file name for a change of path detected at at.
func FileName(path string, at time.Time) string {
	return fmt.Sprintf("%s_%s.log", filepath.Base(path), at.Format(dateLayout))
}

func Line(path string, at time.Time) string {
	return fmt.Sprintf("File %s was modified at %s\n", path, at.Format(timestampLayout))
}

// Append writes one record for path and returns the log file it went to.
func (j *Journal) Append(path string, at time.Time) (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := os.MkdirAll(j.Dir, 0o755); err != nil {
		return "", fmt.Errorf("can't create log directory %s: %w", j.Dir, err)
	}

	logFile := filepath.Join(j.Dir, FileName(path, at))

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("can't open log file %s: %w", logFile, err)
	}

	if _, err := f.WriteString(Line(path, at)); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("can't write log file %s: %w", logFile, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("can't close log file %s: %w", logFile, err)
	}

	return logFile, nil
}
