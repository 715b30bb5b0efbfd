package testing_test

import (
	"bytes"
	"testing"

	"github.com/dargueta/sfs/disk"
	sfstesting "github.com/dargueta/sfs/testing"
	"github.com/dargueta/sfs/utilities/compression"
	"github.com/stretchr/testify/require"
)

func TestLoadCompressedImageRoundTrip(t *testing.T) {
	raw := make([]byte, 4*disk.BlockSize)
	copy(raw, sfstesting.RandomBytes(t, disk.BlockSize))

	var compressed bytes.Buffer
	_, err := compression.CompressImage(bytes.NewReader(raw), &compressed)
	require.NoError(t, err)

	d := sfstesting.LoadCompressedImage(t, compressed.Bytes(), 4)
	got := make([]byte, disk.BlockSize)
	require.NoError(t, d.ReadBlock(0, got))
	require.Equal(t, raw[:disk.BlockSize], got)
}
