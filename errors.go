package structfile

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrClosed is returned by any operation on a closed File, including a
	// second Close.
	ErrClosed = errors.New("structfile: file is closed")

	// ErrNilHandle is returned by New when no handle is supplied.
	ErrNilHandle = errors.New("structfile: nil handle")

	// ErrStringTooLong is returned when a length-prefixed value exceeds what
	// its encoding can carry, or when a read length prefix is implausibly
	// large for a well-formed file.
	ErrStringTooLong = errors.New("structfile: string too long")

	// ErrInvalidOffset is returned by the Get family for negative offsets.
	ErrInvalidOffset = errors.New("structfile: invalid offset")
)

// TruncatedError reports a fixed-width read that hit the end of the file
// before obtaining the expected number of bytes. The index file may be
// corrupted or incomplete.
//
// It unwraps to io.ErrUnexpectedEOF.
type TruncatedError struct {
	// Name is the file's diagnostic label.
	Name string
	// Offset is the cursor position the read started at.
	Offset int64
	// Expected is the byte count the encoding requires.
	Expected int
	// Got is the byte count actually obtained.
	Got int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("structfile %s: truncated read at offset %d: expected %d bytes, got %d (index file may be corrupted or incomplete)",
		e.Name, e.Offset, e.Expected, e.Got)
}

func (e *TruncatedError) Unwrap() error { return io.ErrUnexpectedEOF }
