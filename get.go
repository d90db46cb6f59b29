package structfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// viewSpan fills buf from the mapped view at [off, off+len(buf)). A short
// span is an error: the Get family decodes exact fixed-width encodings and
// never partial ones.
func (f *File) viewSpan(buf []byte, off int64) error {
	if f.closed.Load() {
		return ErrClosed
	}
	if off < 0 {
		return ErrInvalidOffset
	}
	n, err := f.view.ReadAt(buf, off)
	if n < len(buf) {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return fmt.Errorf("structfile %s: get %d bytes at offset %d: %w", f.name, len(buf), off, err)
	}
	return nil
}

// ReadAt reads raw bytes from the mapped view. It implements io.ReaderAt
// and never moves the sequential cursor.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	return f.view.ReadAt(p, off)
}

// GetByte reads the byte at the given absolute offset as an unsigned
// value 0-255.
func (f *File) GetByte(off int64) (byte, error) {
	var b [1]byte
	if err := f.viewSpan(b[:], off); err != nil {
		return 0, err
	}
	return b[0], nil
}

// GetInt8 reads a signed byte at the given absolute offset.
func (f *File) GetInt8(off int64) (int8, error) {
	b, err := f.GetByte(off)
	return int8(b), err
}

// GetUint16 reads 2 bytes big-endian at the given absolute offset.
func (f *File) GetUint16(off int64) (uint16, error) {
	var b [2]byte
	if err := f.viewSpan(b[:], off); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// GetInt32 reads 4 bytes big-endian at the given absolute offset.
func (f *File) GetInt32(off int64) (int32, error) {
	v, err := f.GetUint32(off)
	return int32(v), err
}

// GetUint32 reads 4 bytes big-endian at the given absolute offset.
func (f *File) GetUint32(off int64) (uint32, error) {
	var b [4]byte
	if err := f.viewSpan(b[:], off); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// GetUint64 reads 8 bytes big-endian at the given absolute offset.
func (f *File) GetUint64(off int64) (uint64, error) {
	var b [8]byte
	if err := f.viewSpan(b[:], off); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// GetFloat32 reads 4 big-endian bytes as IEEE-754 bits at the given
// absolute offset.
func (f *File) GetFloat32(off int64) (float32, error) {
	bits, err := f.GetUint32(off)
	return math.Float32frombits(bits), err
}

// GetFloat64 reads 8 big-endian bytes as IEEE-754 bits at the given
// absolute offset.
func (f *File) GetFloat64(off int64) (float64, error) {
	bits, err := f.GetUint64(off)
	return math.Float64frombits(bits), err
}

// GetFloat8 reads a 1-byte compact float at the given absolute offset,
// using the File's compact-float parameters.
func (f *File) GetFloat8(off int64) (float32, error) {
	b, err := f.GetByte(off)
	if err != nil {
		return 0, err
	}
	return ByteToFloat(b, f.mantissa, f.zeroExp), nil
}

// GetInt32Slice reads count packed big-endian elements at the given
// absolute offset.
func (f *File) GetInt32Slice(off int64, count int) ([]int32, error) {
	buf := make([]byte, 4*count)
	if err := f.viewSpan(buf, off); err != nil {
		return nil, err
	}
	vals := make([]int32, count)
	for i := range vals {
		vals[i] = int32(binary.BigEndian.Uint32(buf[i*4:]))
	}
	return vals, nil
}

// GetUint32Slice reads count packed big-endian elements at the given
// absolute offset.
func (f *File) GetUint32Slice(off int64, count int) ([]uint32, error) {
	buf := make([]byte, 4*count)
	if err := f.viewSpan(buf, off); err != nil {
		return nil, err
	}
	vals := make([]uint32, count)
	for i := range vals {
		vals[i] = binary.BigEndian.Uint32(buf[i*4:])
	}
	return vals, nil
}

// GetUint64Slice reads count packed big-endian elements at the given
// absolute offset.
func (f *File) GetUint64Slice(off int64, count int) ([]uint64, error) {
	buf := make([]byte, 8*count)
	if err := f.viewSpan(buf, off); err != nil {
		return nil, err
	}
	vals := make([]uint64, count)
	for i := range vals {
		vals[i] = binary.BigEndian.Uint64(buf[i*8:])
	}
	return vals, nil
}

// GetFloat32Slice reads count packed big-endian elements at the given
// absolute offset.
func (f *File) GetFloat32Slice(off int64, count int) ([]float32, error) {
	buf := make([]byte, 4*count)
	if err := f.viewSpan(buf, off); err != nil {
		return nil, err
	}
	vals := make([]float32, count)
	for i := range vals {
		vals[i] = math.Float32frombits(binary.BigEndian.Uint32(buf[i*4:]))
	}
	return vals, nil
}
