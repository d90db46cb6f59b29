// Package structfile provides a structured binary file layer for on-disk
// index storage.
//
// A File wraps an already-open handle and adds typed operations for the
// fixed-width integers, floats, variable-length integers, length-prefixed
// strings, packed arrays and opaque serialized objects that make up a
// segment file, plus a random-access Get family served from a read-only
// memory-mapped view of the same bytes.
//
// # Wire Format
//
// All multi-byte fixed-width values are big-endian for the entire file;
// this is a format-level invariant, not a per-call choice.
//
//	int8/byte      1 byte
//	uint16         2 bytes big-endian
//	int32/uint32   4 bytes big-endian
//	uint64         8 bytes big-endian
//	float32/64     IEEE-754 bits, 4/8 bytes big-endian
//	uvarint        7 payload bits per byte, continuation flag in the top
//	               bit, least-significant group first
//	string         uvarint byte length + raw bytes
//	short string   2-byte big-endian length + raw bytes (max 65535)
//	float8         1 byte, see FloatToByte
//	object         uvarint length + codec-owned payload bytes
//	slices         packed big-endian elements, no length prefix; the
//	               caller tracks the element count
//
// Strings are byte sequences: both string encodings write the string's raw
// bytes verbatim and prefix the byte count. No character encoding is
// applied or assumed.
//
// # Access Paths
//
// Sequential operations (Write*/Read*) move the handle's cursor. The Get
// family reads absolute offsets from the mapped view and never moves the
// cursor. Both paths decode one format: GetUint32(off) equals seeking to
// off and calling ReadUint32.
//
// The mapped view is established once at construction. When a real memory
// mapping cannot be used (handle without a descriptor, zero-size file,
// mapping not requested, OS failure) the view is emulated with positioned
// reads against the handle; callers cannot observe the difference. The
// view does not see bytes appended after construction.
//
// # Thread Safety
//
// Concurrent readers of the mapped view are safe. Sequential operations
// share the cursor and need external locking for concurrent use.
package structfile
