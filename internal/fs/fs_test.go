package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "segments")
	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, "_seg1.trm")
	f, err := lfs.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	require.NoError(t, err)

	_, err = f.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	buf := make([]byte, 2)
	_, err = f.ReadAt(buf, 3)
	require.NoError(t, err)
	assert.Equal(t, "lo", string(buf))

	require.NoError(t, f.Close())

	entries, err := lfs.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "_seg1.trm", entries[0].Name())

	renamed := filepath.Join(dir, "_seg2.trm")
	require.NoError(t, lfs.Rename(path, renamed))

	_, err = lfs.Stat(renamed)
	require.NoError(t, err)

	require.NoError(t, lfs.Remove(renamed))
	_, err = lfs.Stat(renamed)
	assert.True(t, os.IsNotExist(err))
}

func TestFaultyFS_WriteLimit(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule("limited", Fault{FailAfterBytes: 4})

	path := filepath.Join(t.TempDir(), "limited.bin")
	f, err := ffs.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Write([]byte{1, 2, 3})
	require.NoError(t, err)

	_, err = f.Write([]byte{4, 5})
	require.ErrorIs(t, err, ErrInjected)
}

func TestFaultyFS_SyncAndClose(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule("seg", Fault{FailAfterBytes: -1, FailOnSync: true, FailOnClose: true})

	path := filepath.Join(t.TempDir(), "seg.bin")
	f, err := ffs.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)

	_, err = f.Write([]byte("payload"))
	require.NoError(t, err)

	require.ErrorIs(t, f.Sync(), ErrInjected)
	require.ErrorIs(t, f.Close(), ErrInjected)
}

func TestFaultyFS_UnmatchedFilesPass(t *testing.T) {
	ffs := NewFaultyFS(nil)
	ffs.AddRule("other", Fault{FailAfterBytes: 0})

	path := filepath.Join(t.TempDir(), "clean.bin")
	f, err := ffs.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)

	_, err = f.Write([]byte("unaffected"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())
}
