package store

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Store owns the managed temp directory. It hands out unique paths to
// strategy code, deletes artifacts on demand, and sweeps aged entries.
// Callers write the files themselves; Store never opens them.
type Store struct {
	dir string
}

// New creates a store over dir, creating it if missing.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Dir returns the managed directory.
func (s *Store) Dir() string {
	return s.dir
}

// Allocate returns a path under the managed directory with a fresh unique
// basename and the given extension. The file is not created. UUIDs keep
// concurrent callers collision-free without cross-process coordination.
func (s *Store) Allocate(ext string) string {
	// The directory may have been removed underneath us (manual cleanup,
	// container restart); recreate lazily so the next write succeeds.
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(s.dir, 0755); mkErr != nil {
			log.Error().Err(mkErr).Str("dir", s.dir).Msg("recreating store directory failed")
		}
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(s.dir, uuid.NewString()+ext)
}

// Stage returns a unique path under the staging subdirectory for an uploaded
// input. The sweep scans the managed directory non-recursively and skips
// directories, so staged inputs are exempt from the retention window; the
// dispatcher deletes them itself once the job settles.
func (s *Store) Stage(ext string) string {
	staging := filepath.Join(s.dir, "staging")
	if err := os.MkdirAll(staging, 0755); err != nil {
		log.Error().Err(err).Str("dir", staging).Msg("creating staging directory failed")
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(staging, uuid.NewString()+ext)
}

// Resolve maps a bare generated filename back to a path inside the managed
// directory, rejecting anything that would escape it.
func (s *Store) Resolve(filename string) (string, bool) {
	clean := filepath.Base(filepath.Clean(filename))
	if clean == "." || clean == ".." || clean == "" {
		return "", false
	}
	path := filepath.Join(s.dir, clean)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}
	return path, true
}

// Delete removes a file if present. A missing file is a no-op and reports
// false; only files under management are touched.
func (s *Store) Delete(path string) bool {
	if path == "" {
		return false
	}
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("artifact delete failed")
		}
		return false
	}
	return true
}

// Sweep removes entries strictly older than maxAge by last-modified time.
// The scan is non-recursive. Per-file failures are logged and skipped so one
// held-open file never aborts the sweep. Returns the number removed.
func (s *Store) Sweep(maxAge time.Duration) int {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Error().Err(err).Str("dir", s.dir).Msg("sweep: reading store directory failed")
		return 0
	}

	now := time.Now()
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			log.Warn().Err(err).Str("name", entry.Name()).Msg("sweep: stat failed, skipping")
			continue
		}
		if now.Sub(info.ModTime()) <= maxAge {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("sweep: delete failed, skipping")
			continue
		}
		removed++
	}
	return removed
}

// Usage reports a best-effort file count and total size of current entries.
// Unreadable entries are skipped rather than failing the whole aggregate.
func (s *Store) Usage() (files int, bytes int64) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, 0
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files++
		bytes += info.Size()
	}
	return files, bytes
}
