package structfile

import (
	"io"
)

// view is the mapped-view contract: read exactly the requested span at an
// absolute offset, without touching the sequential cursor. A real mapping
// (*mmap.Mapping) and the synthetic fallback both satisfy it; the choice
// is made once at construction and callers cannot tell them apart.
type view interface {
	io.ReaderAt
	io.Closer
}

// syntheticView emulates the mapped view with positioned reads against the
// handle. When the handle is an io.ReaderAt the read never moves the
// cursor; otherwise the cursor is saved, the span is read with a
// seek/read pair, and the cursor is restored.
type syntheticView struct {
	f *File
}

func (v *syntheticView) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrInvalidOffset
	}

	if ra, ok := v.f.h.(io.ReaderAt); ok {
		return ra.ReadAt(p, off)
	}

	cur, err := v.f.h.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	if _, err := v.f.h.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}

	n, err := io.ReadFull(v.f.h, p)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}

	if _, serr := v.f.h.Seek(cur, io.SeekStart); serr != nil && err == nil {
		err = serr
	}

	return n, err
}

// Close is a no-op: the synthetic view holds no resources of its own.
func (v *syntheticView) Close() error { return nil }
