// Package fs abstracts the filesystem for the storage layer.
//
// [FileSystem] covers the directory operations a file store needs and
// [File] the open-file surface; [LocalFS] is the production implementation
// over the os package, [FaultyFS] a test wrapper that injects I/O errors.
//
// The interfaces carry no context.Context: local filesystem calls are fast
// and non-interruptible at the syscall level, so a context would add
// overhead without cancellation value.
package fs
