// Package filestore provides the storage layer that owns structured files.
//
// A Storage names files, opens them as structfile.File instances and keeps
// a count of the instances still open, driven by the close hook each File
// invokes when it is closed. Two implementations are provided:
//
//   - DirStorage keeps files in a directory on disk. Files opened for
//     reading are memory mapped.
//   - RAMStorage keeps files in memory, for tests and throwaway indexes.
//     Its handles expose no OS descriptor, so reads always go through the
//     synthetic view.
//
// Created files are write-only and unmapped; opened files are read-only.
// The bytes a reader sees are the bytes present when it was opened —
// writing and reading the same name concurrently is not coordinated here.
//
// Consistency across files (commit points, segment generations) is the
// caller's concern; a Storage only hands out files and tracks them.
package filestore
