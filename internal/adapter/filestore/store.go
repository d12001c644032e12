package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/ports/secondary"
	"gitlab.com/pagetest.net/internal/core/services/keys"
	"gitlab.com/pagetest.net/internal/static/errs"
)

var _ secondary.ArtifactStore = (*Store)(nil)

// Store keeps one script file per key in a single flat directory.
type Store struct {
	dir    string
	suffix string
	logger primary.Logger
}

// New creates the artifact directory if needed and returns a store rooted at its absolute path.
func New(dir, suffix string, logger primary.Logger) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve artifact dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		logger.Error("Failed to create artifact dir", "dir", abs, "error", err)
		return nil, errs.IOError("create artifact dir", err)
	}
	return &Store{dir: abs, suffix: suffix, logger: logger}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+s.suffix)
}

func (s *Store) Exists(key string) bool {
	info, err := os.Stat(s.Path(key))
	return err == nil && info.Mode().IsRegular()
}

func (s *Store) Read(key string) (string, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", errs.NotFound("read artifact "+key, err)
		}
		s.logger.Error("Failed to read artifact", "key", key, "error", err)
		return "", errs.IOError("read artifact "+key, err)
	}
	return string(data), nil
}

// Write replaces the script for key through a temp file and rename, so readers
// never see a partially written script.
func (s *Store) Write(key string, script string) error {
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		s.logger.Error("Failed to create temp artifact", "key", key, "error", err)
		return errs.IOError("write artifact "+key, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(script); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		s.logger.Error("Failed to write temp artifact", "key", key, "error", err)
		return errs.IOError("write artifact "+key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errs.IOError("write artifact "+key, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return errs.IOError("write artifact "+key, err)
	}
	if err := os.Rename(tmpPath, s.Path(key)); err != nil {
		os.Remove(tmpPath)
		s.logger.Error("Failed to move artifact into place", "key", key, "error", err)
		return errs.IOError("write artifact "+key, err)
	}

	s.logger.Debug("Artifact written", "key", key, "bytes", len(script))
	return nil
}

// Resolve accepts an absolute path, a path relative to the working directory,
// or a bare file name inside the store, and returns the key it names.
func (s *Store) Resolve(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("artifact path is empty")
	}

	var abs string
	switch {
	case filepath.IsAbs(path):
		abs = filepath.Clean(path)
	case filepath.Base(path) == path:
		abs = filepath.Join(s.dir, path)
	default:
		var err error
		if abs, err = filepath.Abs(path); err != nil {
			return "", fmt.Errorf("failed to resolve artifact path: %w", err)
		}
	}

	rel, err := filepath.Rel(s.dir, abs)
	if err != nil || rel != filepath.Base(rel) || rel == "." || rel == ".." {
		return "", fmt.Errorf("artifact path %q is not inside %s", path, s.dir)
	}
	if !strings.HasSuffix(rel, s.suffix) {
		return "", fmt.Errorf("artifact path %q does not end in %s", path, s.suffix)
	}

	key := strings.TrimSuffix(rel, s.suffix)
	if !keys.Valid(key) {
		return "", fmt.Errorf("artifact path %q does not name an artifact", path)
	}
	return key, nil
}

// SweepTemp removes temp files of interrupted writes last modified before cutoff.
func (s *Store) SweepTemp(cutoff time.Time) (int, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, ".*.tmp"))
	if err != nil {
		return 0, fmt.Errorf("failed to list temp artifacts: %w", err)
	}

	removed := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Failed to remove temp artifact", "path", path, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}
