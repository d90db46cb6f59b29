// Package mmap provides read-only memory mapping of open file descriptors.
//
// # Overview
//
// Memory mapping allows direct access to file contents without copying data
// through kernel buffers. Index segment files are read far more often than
// they are written, so mapping them once and serving random reads from the
// mapped bytes avoids a seek/read syscall pair per access.
//
// # Usage
//
//	m, err := mmap.Map(f.Fd(), size)
//	if err != nil { ... }
//	defer m.Close()
//
//	// Zero-copy access to file contents
//	data := m.Bytes()
//
//	// Provide kernel hints for access patterns
//	m.Advise(mmap.AccessRandom)
//
// The descriptor is only needed during Map; the mapping stays valid after
// the descriptor is closed.
//
// # Platform Support
//
// The package provides a unified API across platforms:
//
//   - Unix (Linux, macOS, BSD): Uses mmap(2) with madvise(2) for access hints
//   - Windows: Uses CreateFileMapping/MapViewOfFile (madvise is a no-op)
//
// Mapping a descriptor that was opened write-only fails; callers are
// expected to fall back to ordinary positioned reads.
//
// # Thread Safety
//
// Mapping is safe for concurrent read access. The Close() method is
// idempotent and protected by atomic operations. However, callers must
// ensure no goroutines access Bytes() after Close() returns.
package mmap
