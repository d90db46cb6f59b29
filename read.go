package structfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// maxPrefixLen caps length prefixes read back from a file. A prefix above
// it means a corrupt file, not a legitimate 2 GiB value; failing here
// beats attempting the allocation.
const maxPrefixLen = 1 << 31

// ReadByte reads a single raw byte as an unsigned value 0-255. It
// satisfies io.ByteReader.
func (f *File) ReadByte() (byte, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	var b [1]byte
	if _, err := io.ReadFull(f.h, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt8 reads a signed byte (two's complement).
func (f *File) ReadInt8() (int8, error) {
	b, err := f.ReadByte()
	return int8(b), err
}

// ReadUint16 reads 2 bytes big-endian.
func (f *File) ReadUint16() (uint16, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	var b [2]byte
	if _, err := io.ReadFull(f.h, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

// ReadInt32 reads 4 bytes big-endian. Unlike the other fixed-width reads,
// a short read is reported as a *TruncatedError naming the file, the
// cursor position the read started at and the expected and obtained byte
// counts; int32 fields carry the offsets and counts index readers follow,
// so a truncated one is diagnosed precisely instead of surfacing as a
// generic EOF somewhere downstream.
func (f *File) ReadInt32() (int32, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	var b [4]byte
	n, err := io.ReadFull(f.h, b[:])
	if err != nil {
		start := int64(-1)
		if cur, serr := f.h.Seek(0, io.SeekCurrent); serr == nil {
			start = cur - int64(n)
		}
		return 0, &TruncatedError{Name: f.name, Offset: start, Expected: 4, Got: n}
	}
	return int32(binary.BigEndian.Uint32(b[:])), nil
}

// ReadUint32 reads 4 bytes big-endian.
func (f *File) ReadUint32() (uint32, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	var b [4]byte
	if _, err := io.ReadFull(f.h, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

// ReadUint64 reads 8 bytes big-endian.
func (f *File) ReadUint64() (uint64, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	var b [8]byte
	if _, err := io.ReadFull(f.h, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b[:]), nil
}

// ReadFloat32 reads 4 big-endian bytes as IEEE-754 bits.
func (f *File) ReadFloat32() (float32, error) {
	bits, err := f.ReadUint32()
	return math.Float32frombits(bits), err
}

// ReadFloat64 reads 8 big-endian bytes as IEEE-754 bits.
func (f *File) ReadFloat64() (float64, error) {
	bits, err := f.ReadUint64()
	return math.Float64frombits(bits), err
}

// ReadUvarint reads a variable-length unsigned integer written by
// WriteUvarint.
func (f *File) ReadUvarint() (uint64, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	return binary.ReadUvarint(f)
}

// ReadString reads a string written by WriteString: a uvarint byte length
// followed by that many raw bytes.
func (f *File) ReadString() (string, error) {
	n, err := f.ReadUvarint()
	if err != nil {
		return "", err
	}
	if n > maxPrefixLen {
		return "", fmt.Errorf("structfile %s: string length prefix %d: %w", f.name, n, ErrStringTooLong)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(f.h, b); err != nil {
		return "", fmt.Errorf("structfile %s: read string of %d bytes: %w", f.name, n, err)
	}
	return string(b), nil
}

// SkipString reads the length prefix of a WriteString value and advances
// the cursor past the bytes without materializing them.
func (f *File) SkipString() error {
	n, err := f.ReadUvarint()
	if err != nil {
		return err
	}
	_, err = f.h.Seek(int64(n), io.SeekCurrent)
	return err
}

// ReadShortString reads a string written by WriteShortString: a 2-byte
// big-endian length followed by that many raw bytes.
func (f *File) ReadShortString() (string, error) {
	n, err := f.ReadUint16()
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(f.h, b); err != nil {
		return "", fmt.Errorf("structfile %s: read short string of %d bytes: %w", f.name, n, err)
	}
	return string(b), nil
}

// ReadFloat8 reads a 1-byte compact float written by WriteFloat8, using
// the File's compact-float parameters.
func (f *File) ReadFloat8() (float32, error) {
	b, err := f.ReadByte()
	if err != nil {
		return 0, err
	}
	return ByteToFloat(b, f.mantissa, f.zeroExp), nil
}

// ReadObject reads an opaque serialized value written by WriteObject into
// v, which must be a pointer. Decoding is delegated to the injected codec.
func (f *File) ReadObject(v any) error {
	n, err := f.ReadUvarint()
	if err != nil {
		return err
	}
	if n > maxPrefixLen {
		return fmt.Errorf("structfile %s: object length prefix %d: %w", f.name, n, ErrStringTooLong)
	}
	data := make([]byte, n)
	if _, err := io.ReadFull(f.h, data); err != nil {
		return fmt.Errorf("structfile %s: read object of %d bytes: %w", f.name, n, err)
	}
	if err := f.cdc.Unmarshal(data, v); err != nil {
		return fmt.Errorf("structfile %s: unmarshal object: %w", f.name, err)
	}
	return nil
}

// ReadInt32Slice reads count packed big-endian elements.
func (f *File) ReadInt32Slice(count int) ([]int32, error) {
	if f.closed.Load() {
		return nil, ErrClosed
	}
	buf := make([]byte, 4*count)
	if _, err := io.ReadFull(f.h, buf); err != nil {
		return nil, err
	}
	vals := make([]int32, count)
	for i := range vals {
		vals[i] = int32(binary.BigEndian.Uint32(buf[i*4:]))
	}
	return vals, nil
}

// ReadUint32Slice reads count packed big-endian elements.
func (f *File) ReadUint32Slice(count int) ([]uint32, error) {
	if f.closed.Load() {
		return nil, ErrClosed
	}
	buf := make([]byte, 4*count)
	if _, err := io.ReadFull(f.h, buf); err != nil {
		return nil, err
	}
	vals := make([]uint32, count)
	for i := range vals {
		vals[i] = binary.BigEndian.Uint32(buf[i*4:])
	}
	return vals, nil
}

// ReadUint64Slice reads count packed big-endian elements.
func (f *File) ReadUint64Slice(count int) ([]uint64, error) {
	if f.closed.Load() {
		return nil, ErrClosed
	}
	buf := make([]byte, 8*count)
	if _, err := io.ReadFull(f.h, buf); err != nil {
		return nil, err
	}
	vals := make([]uint64, count)
	for i := range vals {
		vals[i] = binary.BigEndian.Uint64(buf[i*8:])
	}
	return vals, nil
}

// ReadFloat32Slice reads count packed big-endian elements.
func (f *File) ReadFloat32Slice(count int) ([]float32, error) {
	if f.closed.Load() {
		return nil, ErrClosed
	}
	buf := make([]byte, 4*count)
	if _, err := io.ReadFull(f.h, buf); err != nil {
		return nil, err
	}
	vals := make([]float32, count)
	for i := range vals {
		vals[i] = math.Float32frombits(binary.BigEndian.Uint32(buf[i*4:]))
	}
	return vals, nil
}
