package filestore

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/structfile"
	"github.com/hupe1980/structfile/codec"
	"github.com/hupe1980/structfile/internal/fs"
)

// DirStorage keeps structured files in a single directory. It is safe for
// concurrent use.
type DirStorage struct {
	dir    string
	fsys   fs.FileSystem
	codec  codec.Codec
	logger *slog.Logger

	mu      sync.Mutex
	tracked *tracker
}

// NewDirStorage creates the directory if needed and returns a storage
// rooted at it.
func NewDirStorage(dir string, opts ...Option) (*DirStorage, error) {
	o := applyOptions(opts)

	if err := o.fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create dir %s: %w", dir, err)
	}

	return &DirStorage{
		dir:     dir,
		fsys:    o.fsys,
		codec:   o.codec,
		logger:  o.logger,
		tracked: newTracker(),
	}, nil
}

// Dir returns the storage's root directory.
func (s *DirStorage) Dir() string { return s.dir }

func (s *DirStorage) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(s.dir, name), nil
}

// hook registers the open instance and returns the close hook that
// unregisters it.
func (s *DirStorage) hook(name string) func(*structfile.File) {
	s.mu.Lock()
	s.tracked.acquire(name)
	s.mu.Unlock()

	return func(*structfile.File) {
		s.mu.Lock()
		s.tracked.release(name)
		s.mu.Unlock()
	}
}

// Create creates (or truncates) the named file for writing. The returned
// File is write-only and unmapped; reopen it with Open to read it back.
func (s *DirStorage) Create(name string) (*structfile.File, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}

	h, err := s.fsys.OpenFile(p, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("filestore: create %s: %w", name, err)
	}

	s.logger.Debug("filestore: created file", slog.String("name", name))

	return structfile.New(h,
		structfile.WithName(name),
		structfile.WithMapping(false),
		structfile.WithCodec(s.codec),
		structfile.WithCloseHook(s.hook(name)),
	)
}

// Open opens the named file for reading, memory mapped when possible.
func (s *DirStorage) Open(name string) (*structfile.File, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}

	h, err := s.fsys.OpenFile(p, os.O_RDONLY, 0)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return nil, fmt.Errorf("filestore: open %s: %w", name, err)
	}

	return structfile.New(h,
		structfile.WithName(name),
		structfile.WithCodec(s.codec),
		structfile.WithCloseHook(s.hook(name)),
		structfile.WithLogger(s.logger),
	)
}

// Delete removes the named file.
func (s *DirStorage) Delete(name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := s.fsys.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, name)
		}
		return fmt.Errorf("filestore: delete %s: %w", name, err)
	}
	return nil
}

// Rename renames a file, replacing any existing file under the new name.
func (s *DirStorage) Rename(oldName, newName string) error {
	oldPath, err := s.path(oldName)
	if err != nil {
		return err
	}
	newPath, err := s.path(newName)
	if err != nil {
		return err
	}
	if err := s.fsys.Rename(oldPath, newPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, oldName)
		}
		return fmt.Errorf("filestore: rename %s to %s: %w", oldName, newName, err)
	}
	return nil
}

// Exists reports whether the named file exists.
func (s *DirStorage) Exists(name string) (bool, error) {
	p, err := s.path(name)
	if err != nil {
		return false, err
	}
	if _, err := s.fsys.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List returns the names of all regular files in the directory, sorted.
func (s *DirStorage) List() ([]string, error) {
	entries, err := s.fsys.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("filestore: list %s: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// OpenCount returns how many File instances are still open.
func (s *DirStorage) OpenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracked.n
}

var _ Storage = (*DirStorage)(nil)
