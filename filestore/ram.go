package filestore

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/hupe1980/structfile"
	"github.com/hupe1980/structfile/codec"
)

// RAMStorage keeps structured files in memory. Its handles expose no OS
// descriptor, so every File it opens runs on the synthetic view; the
// observable behavior matches DirStorage. It is safe for concurrent use.
type RAMStorage struct {
	codec  codec.Codec
	logger *slog.Logger

	mu      sync.Mutex
	files   map[string][]byte
	tracked *tracker
}

// NewRAMStorage returns an empty in-memory storage.
func NewRAMStorage(opts ...Option) *RAMStorage {
	o := applyOptions(opts)
	return &RAMStorage{
		codec:   o.codec,
		logger:  o.logger,
		files:   make(map[string][]byte),
		tracked: newTracker(),
	}
}

func (s *RAMStorage) hook(name string) func(*structfile.File) {
	s.mu.Lock()
	s.tracked.acquire(name)
	s.mu.Unlock()

	return func(*structfile.File) {
		s.mu.Lock()
		s.tracked.release(name)
		s.mu.Unlock()
	}
}

// Create creates (or truncates) the named file for writing. The bytes are
// committed to the storage when the File is closed.
func (s *RAMStorage) Create(name string) (*structfile.File, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	s.mu.Lock()
	s.files[name] = nil
	s.mu.Unlock()

	h := &memFile{name: name, commit: func(data []byte) {
		s.mu.Lock()
		s.files[name] = data
		s.mu.Unlock()
	}}

	return structfile.New(h,
		structfile.WithName(name),
		structfile.WithMapping(false),
		structfile.WithCodec(s.codec),
		structfile.WithCloseHook(s.hook(name)),
	)
}

// Open opens the named file for reading. The reader sees a snapshot of
// the bytes committed so far, mirroring the mapped view's construction-
// time capture.
func (s *RAMStorage) Open(name string) (*structfile.File, error) {
	s.mu.Lock()
	data, ok := s.files[name]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}

	h := &memFile{name: name, data: data, readonly: true}

	return structfile.New(h,
		structfile.WithName(name),
		structfile.WithCodec(s.codec),
		structfile.WithCloseHook(s.hook(name)),
	)
}

// Delete removes the named file.
func (s *RAMStorage) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[name]; !ok {
		return fmt.Errorf("%w: %s", ErrFileNotFound, name)
	}
	delete(s.files, name)
	return nil
}

// Rename renames a file, replacing any existing file under the new name.
func (s *RAMStorage) Rename(oldName, newName string) error {
	if newName == "" {
		return fmt.Errorf("%w: %q", ErrInvalidName, newName)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[oldName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrFileNotFound, oldName)
	}
	delete(s.files, oldName)
	s.files[newName] = data
	return nil
}

// Exists reports whether the named file exists.
func (s *RAMStorage) Exists(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[name]
	return ok, nil
}

// List returns the names of all stored files, sorted.
func (s *RAMStorage) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// OpenCount returns how many File instances are still open.
func (s *RAMStorage) OpenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracked.n
}

var _ Storage = (*RAMStorage)(nil)

// memFile is an in-memory handle implementing the structfile Handle
// contract plus io.ReaderAt and io.Closer. It is not safe for concurrent
// sequential use, matching the contract of a real file handle.
type memFile struct {
	name     string
	data     []byte
	pos      int64
	readonly bool
	closed   bool
	// commit receives the final bytes on Close; nil for read handles.
	commit func(data []byte)
}

func (m *memFile) Name() string { return m.name }

func (m *memFile) Read(p []byte) (int, error) {
	if m.closed {
		return 0, fmt.Errorf("filestore: %s: %w", m.name, os.ErrClosed)
	}
	if m.pos >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memFile) ReadAt(p []byte, off int64) (int, error) {
	if m.closed {
		return 0, fmt.Errorf("filestore: %s: %w", m.name, os.ErrClosed)
	}
	if off < 0 {
		return 0, fmt.Errorf("filestore: %s: negative offset", m.name)
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *memFile) Write(p []byte) (int, error) {
	if m.closed {
		return 0, fmt.Errorf("filestore: %s: %w", m.name, os.ErrClosed)
	}
	if m.readonly {
		return 0, fmt.Errorf("filestore: %s: write on read-only file", m.name)
	}
	if grow := m.pos + int64(len(p)) - int64(len(m.data)); grow > 0 {
		m.data = append(m.data, make([]byte, grow)...)
	}
	n := copy(m.data[m.pos:], p)
	m.pos += int64(n)
	return n, nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = 0
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = int64(len(m.data))
	default:
		return 0, fmt.Errorf("filestore: %s: invalid whence %d", m.name, whence)
	}
	if base+offset < 0 {
		return 0, fmt.Errorf("filestore: %s: negative seek position", m.name)
	}
	m.pos = base + offset
	return m.pos, nil
}

func (m *memFile) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	if m.commit != nil {
		m.commit(m.data)
	}
	return nil
}
