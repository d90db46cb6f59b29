package filestore

import (
	"errors"
	"io"
	"log/slog"

	"github.com/hupe1980/structfile"
	"github.com/hupe1980/structfile/codec"
	"github.com/hupe1980/structfile/internal/fs"
)

var (
	// ErrFileNotFound is returned when opening or deleting a name the
	// storage does not hold.
	ErrFileNotFound = errors.New("filestore: file not found")

	// ErrInvalidName is returned for empty names or names containing path
	// separators.
	ErrInvalidName = errors.New("filestore: invalid file name")
)

// Storage names structured files and tracks the open instances.
type Storage interface {
	// Create creates (or truncates) the named file for writing. The
	// returned File is unmapped and write-only.
	Create(name string) (*structfile.File, error)

	// Open opens the named file for reading.
	Open(name string) (*structfile.File, error)

	// Delete removes the named file.
	Delete(name string) error

	// Rename renames a file. The old name must exist.
	Rename(oldName, newName string) error

	// Exists reports whether the named file exists.
	Exists(name string) (bool, error)

	// List returns the names of all stored files, sorted.
	List() ([]string, error)

	// OpenCount returns how many File instances handed out by this
	// storage have not been closed yet.
	OpenCount() int
}

type options struct {
	fsys   fs.FileSystem
	codec  codec.Codec
	logger *slog.Logger
}

// Option configures a Storage implementation.
type Option func(*options)

// WithFS sets the file system used by DirStorage (default the local one).
// RAMStorage ignores it.
func WithFS(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// WithCodec sets the codec handed to every File this storage opens.
// If nil is passed, codec.Default is used.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithLogger configures structured logging. Pass nil to discard.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(opts []Option) options {
	o := options{
		fsys:  fs.Default,
		codec: codec.Default,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// tracker counts open File instances per name. It is the receiving end of
// the structfile close hook.
type tracker struct {
	open map[string]int
	n    int
}

func newTracker() *tracker {
	return &tracker{open: make(map[string]int)}
}

// acquire must be called with the owner's lock held.
func (t *tracker) acquire(name string) {
	t.open[name]++
	t.n++
}

// release must be called with the owner's lock held.
func (t *tracker) release(name string) {
	if t.open[name] > 0 {
		t.open[name]--
		t.n--
		if t.open[name] == 0 {
			delete(t.open, name)
		}
	}
}
