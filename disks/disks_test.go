package disks_test

import (
	"testing"

	"github.com/dargueta/sfs/disks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetKnownPreset(t *testing.T) {
	preset, err := disks.Get("floppy1440")
	require.NoError(t, err)
	assert.EqualValues(t, 360, preset.TotalBlocks)
}

func TestGetUnknownPresetListsKnownSlugs(t *testing.T) {
	_, err := disks.Get("does-not-exist")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "floppy1440")
}

func TestNamesIncludesEveryPreset(t *testing.T) {
	names := disks.Names()
	assert.Contains(t, names, "tiny")
	assert.Contains(t, names, "cdrom")
}
