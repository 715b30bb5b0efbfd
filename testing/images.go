// Package testing holds test fixtures: a compressed-image loader and a
// random-data generator.
package testing

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/dargueta/sfs/disk"
	"github.com/dargueta/sfs/utilities/compression"
	"github.com/stretchr/testify/require"
)

// LoadCompressedImage decompresses an RLE8+gzip SFS volume fixture and wraps
// it as a MemoryDisk. It fails the test outright rather than returning an
// error, since a broken fixture means the test itself can't proceed.
func LoadCompressedImage(t *testing.T, compressedImageBytes []byte, totalBlocks uint32) *disk.MemoryDisk {
	t.Helper()
	require.Greater(t, len(compressedImageBytes), 0, "compressed image is empty")

	compressedBuf := bytes.NewBuffer(compressedImageBytes)
	imageBytes, err := compression.DecompressImageToBytes(compressedBuf)
	require.NoError(t, err)

	require.Equal(
		t,
		int(totalBlocks)*disk.BlockSize,
		len(imageBytes),
		"uncompressed image is the wrong size",
	)
	return disk.NewMemoryDiskFromBytes(imageBytes)
}

// RandomBytes returns n freshly generated random bytes, failing the test on
// any read error.
func RandomBytes(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return buf
}
