package sfs_test

import (
	"bytes"
	"testing"

	"github.com/dargueta/sfs"
	"github.com/dargueta/sfs/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatAndMount(t *testing.T, numBlocks uint32) (*sfs.FileSystem, disk.Disk) {
	t.Helper()
	d := disk.NewMemoryDisk(numBlocks)
	require.NoError(t, sfs.Format(d))

	fs, err := sfs.Mount(d)
	require.NoError(t, err)
	return fs, d
}

func TestFormatRequiresUnmountedDisk(t *testing.T) {
	d := disk.NewMemoryDisk(10)
	require.NoError(t, sfs.Format(d))
	require.NoError(t, d.Mount())
	assert.Error(t, sfs.Format(d))
}

func TestMountFailsWithoutFormat(t *testing.T) {
	d := disk.NewMemoryDisk(10)
	_, err := sfs.Mount(d)
	assert.Error(t, err)
}

func TestStatOnFreshlyMountedVolumeIsInvalid(t *testing.T) {
	fs, _ := formatAndMount(t, 100)
	_, err := fs.Stat(0)
	assert.Error(t, err)
}

func TestCreateReturnsSequentialInodeNumbers(t *testing.T) {
	fs, _ := formatAndMount(t, 100)

	first, err := fs.Create()
	require.NoError(t, err)
	assert.EqualValues(t, 0, first)

	second, err := fs.Create()
	require.NoError(t, err)
	assert.EqualValues(t, 1, second)

	size, err := fs.Stat(first)
	require.NoError(t, err)
	assert.EqualValues(t, 0, size)
}

func TestWriteThenReadSmallBuffer(t *testing.T) {
	fs, _ := formatAndMount(t, 100)
	inode, err := fs.Create()
	require.NoError(t, err)

	written, err := fs.Write(inode, []byte("ABCD"), 0)
	require.NoError(t, err)
	assert.EqualValues(t, 4, written)

	size, err := fs.Stat(inode)
	require.NoError(t, err)
	assert.EqualValues(t, 4, size)

	out := make([]byte, 4)
	n, err := fs.Read(inode, out, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	assert.Equal(t, []byte("ABCD"), out)
}

func TestWriteFillsAllDirectBlocks(t *testing.T) {
	fs, _ := formatAndMount(t, 100)
	inode, err := fs.Create()
	require.NoError(t, err)

	pattern := bytes.Repeat([]byte{0x5A}, 5*disk.BlockSize)
	written, err := fs.Write(inode, pattern, 0)
	require.NoError(t, err)
	assert.EqualValues(t, len(pattern), written)

	size, err := fs.Stat(inode)
	require.NoError(t, err)
	assert.EqualValues(t, len(pattern), size)

	out := make([]byte, len(pattern))
	n, err := fs.Read(inode, out, 0)
	require.NoError(t, err)
	assert.EqualValues(t, len(pattern), n)
	assert.Equal(t, pattern, out)
}

func TestWriteCrossesIntoIndirectRegion(t *testing.T) {
	fs, _ := formatAndMount(t, 100)
	inode, err := fs.Create()
	require.NoError(t, err)

	pattern := make([]byte, 6*disk.BlockSize)
	for i := range pattern {
		pattern[i] = byte(i)
	}

	written, err := fs.Write(inode, pattern, 0)
	require.NoError(t, err)
	assert.EqualValues(t, len(pattern), written)

	out := make([]byte, len(pattern))
	n, err := fs.Read(inode, out, 0)
	require.NoError(t, err)
	assert.EqualValues(t, len(pattern), n)
	assert.Equal(t, pattern, out)
}

func TestWriteRoundTripAcrossDirectIndirectBoundary(t *testing.T) {
	// Exercises block_idx crossing from the direct into the indirect region.
	fs, _ := formatAndMount(t, 4096)
	inode, err := fs.Create()
	require.NoError(t, err)

	pattern := make([]byte, 32768)
	for i := range pattern {
		pattern[i] = byte(i % 251)
	}

	written, err := fs.Write(inode, pattern, 0)
	require.NoError(t, err)
	assert.EqualValues(t, len(pattern), written)

	out := make([]byte, len(pattern))
	n, err := fs.Read(inode, out, 0)
	require.NoError(t, err)
	assert.EqualValues(t, len(pattern), n)
	assert.Equal(t, pattern, out)
}

func TestRemoveThenStatFails(t *testing.T) {
	fs, _ := formatAndMount(t, 100)
	inode, err := fs.Create()
	require.NoError(t, err)

	_, err = fs.Write(inode, []byte("hello"), 0)
	require.NoError(t, err)

	require.NoError(t, fs.Remove(inode))

	_, err = fs.Stat(inode)
	assert.Error(t, err)
}

func TestPartialWriteOnExhaustedVolume(t *testing.T) {
	// A 6-block disk: block 0 is the superblock, block 1 is the sole inode
	// table block, leaving only 4 free data blocks. A write asking for 5
	// direct blocks' worth of data can only get 4 of them allocated.
	fs, _ := formatAndMount(t, 6)
	inode, err := fs.Create()
	require.NoError(t, err)

	pattern := bytes.Repeat([]byte{0x42}, 5*disk.BlockSize)
	written, err := fs.Write(inode, pattern, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 4*disk.BlockSize, written, "only 4 data blocks are free on a 6-block volume")

	size, err := fs.Stat(inode)
	require.NoError(t, err)
	assert.EqualValues(t, 4*disk.BlockSize, size)

	// The volume is now completely full: no more free blocks remain.
	inode2, err := fs.Create()
	require.NoError(t, err)
	written2, err := fs.Write(inode2, []byte("x"), 0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, written2, "no free blocks should remain")
}

func TestIdempotentFormat(t *testing.T) {
	d1 := disk.NewMemoryDisk(20)
	d2 := disk.NewMemoryDisk(20)

	require.NoError(t, sfs.Format(d1))
	require.NoError(t, sfs.Format(d1))
	require.NoError(t, sfs.Format(d2))

	block1 := make([]byte, disk.BlockSize)
	block2 := make([]byte, disk.BlockSize)
	for b := uint32(0); b < 20; b++ {
		require.NoError(t, d1.ReadBlock(b, block1))
		require.NoError(t, d2.ReadBlock(b, block2))
		assert.Equal(t, block2, block1)
	}
}

func TestCheckFindsNoViolationsOnCleanVolume(t *testing.T) {
	fs, _ := formatAndMount(t, 100)
	inode, err := fs.Create()
	require.NoError(t, err)
	_, err = fs.Write(inode, []byte("abc"), 0)
	require.NoError(t, err)

	assert.NoError(t, fs.Check())
}
