package structfile

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/hupe1980/structfile/codec"
	"github.com/hupe1980/structfile/internal/mmap"
)

// Handle is the minimum contract for a wrapped file: positioned read and
// write plus cursor query/seek. Further capabilities are probed once at
// construction and used when present:
//
//	io.Closer                    closed by Close
//	io.ReaderAt                  positioned reads for the synthetic view
//	interface{ Flush() error }   Flush delegates
//	interface{ Sync() error }    Sync delegates
//	interface{ Name() string }   default diagnostic label
//	Fd() uintptr + Stat()        real memory mapping (e.g. *os.File)
type Handle interface {
	io.ReadWriteSeeker
}

// descriptor is the surface a handle must expose for a real memory mapping.
type descriptor interface {
	Fd() uintptr
	Stat() (os.FileInfo, error)
}

// File wraps an open handle and provides typed read/write/get operations
// over one big-endian wire format. See the package documentation for the
// format and the two access paths.
//
// A File never opens or creates files itself and does not own the handle's
// lifetime exclusively; see Close.
type File struct {
	h    Handle
	name string
	size int64

	view view

	// probed capabilities, nil when absent
	closer  io.Closer
	flusher interface{ Flush() error }
	syncer  interface{ Sync() error }

	cdc      codec.Codec
	onClose  func(*File)
	mantissa int
	zeroExp  int

	closed atomic.Bool
}

// New wraps an already-open handle. The mapped view is established here,
// exactly once: if mapping is requested (the default) and the handle
// exposes a descriptor, the file size is captured and a real read-only
// mapping is attempted; a zero-size file or any mapping failure falls back
// to the synthetic view. The fallback is never a constructor error.
func New(h Handle, opts ...Option) (*File, error) {
	if h == nil {
		return nil, ErrNilHandle
	}

	o := options{
		mapped:   true,
		codec:    codec.Default,
		mantissa: DefaultMantissaBits,
		zeroExp:  DefaultZeroExp,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	f := &File{
		h:        h,
		name:     o.name,
		cdc:      o.codec,
		onClose:  o.onClose,
		mantissa: o.mantissa,
		zeroExp:  o.zeroExp,
	}

	f.closer, _ = h.(io.Closer)
	f.flusher, _ = h.(interface{ Flush() error })
	f.syncer, _ = h.(interface{ Sync() error })

	if f.name == "" {
		if n, ok := h.(interface{ Name() string }); ok {
			f.name = n.Name()
		}
	}

	f.view = f.newView(o.mapped, o.logger)

	return f, nil
}

// newView selects the mapping strategy. The size is captured here and
// never re-derived: bytes appended after construction are invisible to the
// real mapping. That staleness is a documented limitation, not handled
// dynamically.
func (f *File) newView(mapped bool, logger *slog.Logger) view {
	d, ok := f.h.(descriptor)
	if !ok {
		return &syntheticView{f: f}
	}

	fi, err := d.Stat()
	if err != nil {
		return &syntheticView{f: f}
	}
	f.size = fi.Size()

	if !mapped || f.size == 0 {
		return &syntheticView{f: f}
	}

	m, err := mmap.Map(d.Fd(), f.size)
	if err != nil {
		// Write-only descriptors, exhausted address space and exotic
		// handle types all land here; the synthetic view serves the
		// same contract through the handle.
		logger.Debug("structfile: mmap failed, using synthetic view",
			slog.String("name", f.name), slog.Any("error", err))
		return &syntheticView{f: f}
	}

	// Advisory only; the Get family is random access.
	_ = m.Advise(mmap.AccessRandom)

	logger.Debug("structfile: mapped",
		slog.String("name", f.name), slog.Int64("size", f.size))

	return m
}

// Name returns the diagnostic label.
func (f *File) Name() string { return f.name }

// Size returns the file size captured at construction, or 0 when the
// handle exposes no Stat capability. It is not updated by writes.
func (f *File) Size() int64 { return f.size }

// Offset returns the current sequential cursor position.
func (f *File) Offset() (int64, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	return f.h.Seek(0, io.SeekCurrent)
}

// Seek moves the sequential cursor. The mapped view is unaffected.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	return f.h.Seek(offset, whence)
}

// Write writes raw bytes at the cursor.
func (f *File) Write(p []byte) (int, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	return f.h.Write(p)
}

// Read reads raw bytes at the cursor.
func (f *File) Read(p []byte) (int, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	return f.h.Read(p)
}

// Flush delegates to the handle's Flush capability; it is a no-op when the
// handle has none.
func (f *File) Flush() error {
	if f.closed.Load() {
		return ErrClosed
	}
	if f.flusher == nil {
		return nil
	}
	return f.flusher.Flush()
}

// Sync delegates to the handle's Sync capability; it is a no-op when the
// handle has none.
func (f *File) Sync() error {
	if f.closed.Load() {
		return ErrClosed
	}
	if f.syncer == nil {
		return nil
	}
	return f.syncer.Sync()
}

// Close releases the mapped view, invokes the close hook with the receiver
// if one is registered, closes the handle if it is an io.Closer, and marks
// the File closed. Open to closed is the only transition: every later
// operation, including a second Close, returns ErrClosed.
func (f *File) Close() error {
	if f.closed.Swap(true) {
		return ErrClosed
	}

	verr := f.view.Close()

	if f.onClose != nil {
		f.onClose(f)
	}

	if f.closer != nil {
		if err := f.closer.Close(); err != nil {
			return err
		}
	}

	return verr
}
