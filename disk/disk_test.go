package disk_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/dargueta/sfs/disk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDisk_ReadWriteRoundTrip(t *testing.T) {
	d := disk.NewMemoryDisk(4)
	assert.EqualValues(t, 4, d.Size())
	assert.False(t, d.Mounted())

	want := bytes.Repeat([]byte{0xAB}, disk.BlockSize)
	require.NoError(t, d.WriteBlock(2, want))

	got := make([]byte, disk.BlockSize)
	require.NoError(t, d.ReadBlock(2, got))
	assert.Equal(t, want, got)

	require.NoError(t, d.Mount())
	assert.True(t, d.Mounted())
}

func TestMemoryDisk_OutOfRange(t *testing.T) {
	d := disk.NewMemoryDisk(2)
	buf := make([]byte, disk.BlockSize)
	assert.Error(t, d.ReadBlock(2, buf))
	assert.Error(t, d.WriteBlock(99, buf))
}

func TestMemoryDisk_WrongBufferSize(t *testing.T) {
	d := disk.NewMemoryDisk(2)
	assert.Error(t, d.ReadBlock(0, make([]byte, 10)))
}

func TestFileDisk_CreateAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bin")

	created, err := disk.CreateFileDisk(path, 6)
	require.NoError(t, err)
	assert.EqualValues(t, 6, created.Size())

	payload := bytes.Repeat([]byte{0x7A}, disk.BlockSize)
	require.NoError(t, created.WriteBlock(1, payload))
	require.NoError(t, created.Close())

	reopened, err := disk.OpenFileDisk(path)
	require.NoError(t, err)
	defer reopened.Close()

	assert.EqualValues(t, 6, reopened.Size())
	got := make([]byte, disk.BlockSize)
	require.NoError(t, reopened.ReadBlock(1, got))
	assert.Equal(t, payload, got)
}
