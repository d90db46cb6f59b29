package structfile_test

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/structfile"
	"github.com/hupe1980/structfile/codec"
)

// newRW opens a fresh read-write file for sequential round-trip tests.
func newRW(t *testing.T, opts ...structfile.Option) *structfile.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "segment.bin")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)

	sf, err := structfile.New(f, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sf.Close() })
	return sf
}

func rewind(t *testing.T, sf *structfile.File) {
	t.Helper()
	_, err := sf.Seek(0, io.SeekStart)
	require.NoError(t, err)
}

func TestUvarint_RoundTrip(t *testing.T) {
	vals := []uint64{
		0, 1, 42, 127,
		128, 129, 16383,
		16384, 1<<21 - 1, 1 << 21,
		1<<32 - 1, 1 << 32,
		math.MaxInt64, math.MaxUint64,
	}

	sf := newRW(t)
	for _, v := range vals {
		require.NoError(t, sf.WriteUvarint(v))
	}

	rewind(t, sf)
	for _, want := range vals {
		got, err := sf.ReadUvarint()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestUvarint_WireFormat(t *testing.T) {
	// 7 payload bits per byte, continuation flag in the top bit,
	// least-significant group first: 300 = 0b10_0101100.
	sf := newRW(t)
	require.NoError(t, sf.WriteUvarint(300))

	rewind(t, sf)
	b0, err := sf.ReadByte()
	require.NoError(t, err)
	b1, err := sf.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAC), b0)
	assert.Equal(t, byte(0x02), b1)
}

func TestFixedWidth_RoundTrip(t *testing.T) {
	sf := newRW(t)

	require.NoError(t, sf.WriteInt8(-100))
	require.NoError(t, sf.WriteUint16(65535))
	require.NoError(t, sf.WriteInt32(-123456789))
	require.NoError(t, sf.WriteUint32(3_000_000_000))
	require.NoError(t, sf.WriteUint64(math.MaxUint64))
	require.NoError(t, sf.WriteFloat32(3.5))
	require.NoError(t, sf.WriteFloat64(-2.5e300))
	require.NoError(t, sf.WriteByte(0xFE))

	rewind(t, sf)

	i8, err := sf.ReadInt8()
	require.NoError(t, err)
	assert.Equal(t, int8(-100), i8)

	u16, err := sf.ReadUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), u16)

	i32, err := sf.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(-123456789), i32)

	u32, err := sf.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(3_000_000_000), u32)

	u64, err := sf.ReadUint64()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), u64)

	f32, err := sf.ReadFloat32()
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), f32)

	f64, err := sf.ReadFloat64()
	require.NoError(t, err)
	assert.Equal(t, -2.5e300, f64)

	b, err := sf.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xFE), b)
}

func TestString_RoundTrip(t *testing.T) {
	vals := []string{"", "a", "abc", "بِسْمِ", string([]byte{0x00, 0xFF, 0x80})}

	t.Run("varint prefixed", func(t *testing.T) {
		sf := newRW(t)
		for _, s := range vals {
			require.NoError(t, sf.WriteString(s))
		}
		rewind(t, sf)
		for _, want := range vals {
			got, err := sf.ReadString()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("ushort prefixed", func(t *testing.T) {
		sf := newRW(t)
		for _, s := range vals {
			require.NoError(t, sf.WriteShortString(s))
		}
		rewind(t, sf)
		for _, want := range vals {
			got, err := sf.ReadShortString()
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})
}

func TestString_EncodingsNotInterchangeable(t *testing.T) {
	// "abc" varint-prefixed is 0x03 'a' 'b' 'c'; ushort-prefixed is
	// 0x00 0x03 'a' 'b' 'c'. Distinct wire formats.
	sf := newRW(t)
	require.NoError(t, sf.WriteString("abc"))
	off, err := sf.Offset()
	require.NoError(t, err)
	assert.Equal(t, int64(4), off)

	require.NoError(t, sf.WriteShortString("abc"))
	off, err = sf.Offset()
	require.NoError(t, err)
	assert.Equal(t, int64(9), off)
}

func TestSkipString(t *testing.T) {
	sf := newRW(t)
	require.NoError(t, sf.WriteString("skip me"))
	require.NoError(t, sf.WriteUint32(77))

	rewind(t, sf)
	require.NoError(t, sf.SkipString())

	v, err := sf.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(77), v)
}

func TestShortString_TooLong(t *testing.T) {
	sf := newRW(t)
	err := sf.WriteShortString(string(make([]byte, 65536)))
	require.ErrorIs(t, err, structfile.ErrStringTooLong)
}

func TestReadInt32_Truncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xAA, 0xBB}, 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)

	sf, err := structfile.New(f, structfile.WithName("truncated.bin"))
	require.NoError(t, err)
	defer sf.Close()

	_, err = sf.ReadInt32()
	require.Error(t, err)

	var te *structfile.TruncatedError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "truncated.bin", te.Name)
	assert.Equal(t, int64(0), te.Offset)
	assert.Equal(t, 4, te.Expected)
	assert.Equal(t, 2, te.Got)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	assert.Contains(t, err.Error(), "truncated.bin")
	assert.Contains(t, err.Error(), "expected 4 bytes, got 2")
}

func TestReadInt32_TruncatedMidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truncated.bin")
	require.NoError(t, os.WriteFile(path, []byte{0, 0, 0, 1, 0xAA}, 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)

	sf, err := structfile.New(f)
	require.NoError(t, err)
	defer sf.Close()

	v, err := sf.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)

	_, err = sf.ReadInt32()
	var te *structfile.TruncatedError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, int64(4), te.Offset)
	assert.Equal(t, 1, te.Got)
}

func TestSlices_RoundTrip(t *testing.T) {
	sf := newRW(t)

	i32s := []int32{-1, 0, 1, math.MaxInt32, math.MinInt32}
	u32s := []uint32{0, 1, math.MaxUint32}
	u64s := []uint64{0, 1 << 40, math.MaxUint64}
	f32s := []float32{0, -0.5, 3.5, math.MaxFloat32}

	require.NoError(t, sf.WriteInt32Slice(i32s))
	require.NoError(t, sf.WriteUint32Slice(u32s))
	require.NoError(t, sf.WriteUint64Slice(u64s))
	require.NoError(t, sf.WriteFloat32Slice(f32s))

	rewind(t, sf)

	// No length prefix on the wire; the caller supplies the counts.
	gotI32, err := sf.ReadInt32Slice(len(i32s))
	require.NoError(t, err)
	assert.Equal(t, i32s, gotI32)

	gotU32, err := sf.ReadUint32Slice(len(u32s))
	require.NoError(t, err)
	assert.Equal(t, u32s, gotU32)

	gotU64, err := sf.ReadUint64Slice(len(u64s))
	require.NoError(t, err)
	assert.Equal(t, u64s, gotU64)

	gotF32, err := sf.ReadFloat32Slice(len(f32s))
	require.NoError(t, err)
	assert.Equal(t, f32s, gotF32)
}

type termInfo struct {
	Text      string  `json:"text" msgpack:"text"`
	DocFreq   uint64  `json:"doc_freq" msgpack:"doc_freq"`
	Weight    float64 `json:"weight" msgpack:"weight"`
	PostingAt int64   `json:"posting_at" msgpack:"posting_at"`
}

func TestObject_RoundTrip(t *testing.T) {
	want := termInfo{Text: "hello", DocFreq: 12, Weight: 0.25, PostingAt: 4096}

	for _, c := range []codec.Codec{codec.Msgpack{}, codec.JSON{}, codec.GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			sf := newRW(t, structfile.WithCodec(c))
			require.NoError(t, sf.WriteObject(want))
			require.NoError(t, sf.WriteUint16(999)) // value after the object frame

			rewind(t, sf)

			var got termInfo
			require.NoError(t, sf.ReadObject(&got))
			assert.Equal(t, want, got)

			// The object frame is self-contained: the next value follows.
			u16, err := sf.ReadUint16()
			require.NoError(t, err)
			assert.Equal(t, uint16(999), u16)
		})
	}
}

func TestObject_UndecodableValue(t *testing.T) {
	sf := newRW(t, structfile.WithCodec(codec.JSON{}))
	err := sf.WriteObject(func() {}) // JSON cannot encode a func
	require.Error(t, err)
}

func TestEndToEnd_WriteCloseReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segment.bin")

	w, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)

	sfw, err := structfile.New(w, structfile.WithMapping(false))
	require.NoError(t, err)

	require.NoError(t, sfw.WriteInt32(42))
	require.NoError(t, sfw.WriteUint16(7))
	require.NoError(t, sfw.WriteString("abc"))
	require.NoError(t, sfw.WriteFloat32(3.5))
	require.NoError(t, sfw.Flush())
	require.NoError(t, sfw.Close())

	r, err := os.Open(path)
	require.NoError(t, err)

	sfr, err := structfile.New(r)
	require.NoError(t, err)
	defer sfr.Close()

	i32, err := sfr.ReadInt32()
	require.NoError(t, err)
	u16, err := sfr.ReadUint16()
	require.NoError(t, err)
	s, err := sfr.ReadString()
	require.NoError(t, err)
	f32, err := sfr.ReadFloat32()
	require.NoError(t, err)

	assert.Equal(t, int32(42), i32)
	assert.Equal(t, uint16(7), u16)
	assert.Equal(t, "abc", s)
	assert.Equal(t, float32(3.5), f32)

	// Same bytes through the mapped view.
	got, err := sfr.GetInt32(0)
	require.NoError(t, err)
	assert.Equal(t, int32(42), got)
}

func TestReadString_CorruptPrefix(t *testing.T) {
	// A huge length prefix means a corrupt file; the read must fail
	// before attempting the allocation.
	path := filepath.Join(t.TempDir(), "corrupt.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x01}, 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)

	sf, err := structfile.New(f)
	require.NoError(t, err)
	defer sf.Close()

	_, err = sf.ReadString()
	require.Error(t, err)
	assert.True(t, errors.Is(err, structfile.ErrStringTooLong))
}
