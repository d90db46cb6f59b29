package structfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteByte writes a single raw byte. It satisfies io.ByteWriter.
func (f *File) WriteByte(c byte) error {
	if f.closed.Load() {
		return ErrClosed
	}
	var b [1]byte
	b[0] = c
	_, err := f.h.Write(b[:])
	return err
}

// WriteInt8 writes a signed byte (two's complement).
func (f *File) WriteInt8(v int8) error {
	return f.WriteByte(byte(v))
}

// WriteUint16 writes 2 bytes big-endian.
func (f *File) WriteUint16(v uint16) error {
	if f.closed.Load() {
		return ErrClosed
	}
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	_, err := f.h.Write(b[:])
	return err
}

// WriteInt32 writes 4 bytes big-endian.
func (f *File) WriteInt32(v int32) error {
	return f.WriteUint32(uint32(v))
}

// WriteUint32 writes 4 bytes big-endian.
func (f *File) WriteUint32(v uint32) error {
	if f.closed.Load() {
		return ErrClosed
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	_, err := f.h.Write(b[:])
	return err
}

// WriteUint64 writes 8 bytes big-endian.
func (f *File) WriteUint64(v uint64) error {
	if f.closed.Load() {
		return ErrClosed
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	_, err := f.h.Write(b[:])
	return err
}

// WriteFloat32 writes the IEEE-754 bits, 4 bytes big-endian.
func (f *File) WriteFloat32(v float32) error {
	return f.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 writes the IEEE-754 bits, 8 bytes big-endian.
func (f *File) WriteFloat64(v float64) error {
	return f.WriteUint64(math.Float64bits(v))
}

// WriteUvarint writes a variable-length unsigned integer: 7 payload bits
// per byte, continuation flag in the top bit, least-significant group
// first. Round-trips all of uint64.
func (f *File) WriteUvarint(v uint64) error {
	if f.closed.Load() {
		return ErrClosed
	}
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], v)
	_, err := f.h.Write(b[:n])
	return err
}

// WriteString writes the string's byte length as a uvarint followed by its
// raw bytes.
func (f *File) WriteString(s string) error {
	if err := f.WriteUvarint(uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(f.h, s)
	return err
}

// WriteShortString writes the string's byte length as a 2-byte big-endian
// value followed by its raw bytes. This is a distinct wire format from
// WriteString, used where a bounded 16-bit length and a fixed-size header
// are preferred. Strings longer than 65535 bytes return ErrStringTooLong.
func (f *File) WriteShortString(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("structfile %s: short string of %d bytes: %w", f.name, len(s), ErrStringTooLong)
	}
	if err := f.WriteUint16(uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(f.h, s)
	return err
}

// WriteFloat8 writes a 1-byte compact representation of v using the
// File's compact-float parameters (see WithFloat8Params and FloatToByte).
// Values outside the representable range saturate.
func (f *File) WriteFloat8(v float32) error {
	return f.WriteByte(FloatToByte(v, f.mantissa, f.zeroExp))
}

// WriteObject writes an opaque serialized value: the codec's payload bytes
// behind a uvarint length. The payload format is owned by the injected
// codec, not by this package.
func (f *File) WriteObject(v any) error {
	if f.closed.Load() {
		return ErrClosed
	}
	data, err := f.cdc.Marshal(v)
	if err != nil {
		return fmt.Errorf("structfile %s: marshal object: %w", f.name, err)
	}
	if err := f.WriteUvarint(uint64(len(data))); err != nil {
		return err
	}
	_, err = f.h.Write(data)
	return err
}

// WriteInt32Slice writes packed big-endian elements without a length
// prefix; the caller tracks the count.
func (f *File) WriteInt32Slice(vals []int32) error {
	if f.closed.Load() {
		return ErrClosed
	}
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(buf[i*4:], uint32(v))
	}
	_, err := f.h.Write(buf)
	return err
}

// WriteUint32Slice writes packed big-endian elements without a length
// prefix; the caller tracks the count.
func (f *File) WriteUint32Slice(vals []uint32) error {
	if f.closed.Load() {
		return ErrClosed
	}
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(buf[i*4:], v)
	}
	_, err := f.h.Write(buf)
	return err
}

// WriteUint64Slice writes packed big-endian elements without a length
// prefix; the caller tracks the count.
func (f *File) WriteUint64Slice(vals []uint64) error {
	if f.closed.Load() {
		return ErrClosed
	}
	buf := make([]byte, 8*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint64(buf[i*8:], v)
	}
	_, err := f.h.Write(buf)
	return err
}

// WriteFloat32Slice writes packed big-endian elements without a length
// prefix; the caller tracks the count.
func (f *File) WriteFloat32Slice(vals []float32) error {
	if f.closed.Load() {
		return ErrClosed
	}
	buf := make([]byte, 4*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	_, err := f.h.Write(buf)
	return err
}
