package sfs

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/dargueta/sfs/internal/layout"
)

// Check walks the mounted volume and reports every invariant violation it
// finds instead of stopping at the first one, using go-multierror to
// accumulate them.
//
// It verifies: block 0 and every inode-table block are marked used; every
// nonzero pointer reachable from a valid inode lies strictly above the
// inode table and below the volume's total block count; and no data block
// is referenced by more than one inode or pointer slot.
func (fs *FileSystem) Check() error {
	var result *multierror.Error

	if !fs.free.InUse(0) {
		result = multierror.Append(result, fmt.Errorf("block 0 (superblock) is not marked in use"))
	}
	for b := uint32(1); b <= fs.inodeBlocks; b++ {
		if !fs.free.InUse(b) {
			result = multierror.Append(result, fmt.Errorf("inode block %d is not marked in use", b))
		}
	}

	seen := make(map[uint32]uint32) // block -> first inode that claimed it

	checkPointer := func(owner uint32, ptr uint32) {
		if ptr == 0 {
			return
		}
		if ptr <= fs.inodeBlocks || ptr >= fs.blocks {
			result = multierror.Append(result, fmt.Errorf(
				"inode %d references out-of-range block %d", owner, ptr))
			return
		}
		if prior, ok := seen[ptr]; ok {
			result = multierror.Append(result, fmt.Errorf(
				"block %d is referenced by both inode %d and inode %d", ptr, prior, owner))
			return
		}
		seen[ptr] = owner
	}

	for n := uint32(0); n < fs.inodes; n++ {
		inode, err := fs.loadInode(n)
		if err != nil {
			continue
		}

		for _, d := range inode.Direct {
			checkPointer(n, d)
		}

		if inode.Indirect != 0 {
			checkPointer(n, inode.Indirect)

			ptrBlock := make([]byte, layout.BlockSize)
			if err := fs.disk.ReadBlock(inode.Indirect, ptrBlock); err != nil {
				result = multierror.Append(result, fmt.Errorf(
					"inode %d: failed to read indirect block %d: %w", n, inode.Indirect, err))
				continue
			}
			for _, p := range layout.DecodePointerBlock(ptrBlock) {
				checkPointer(n, p)
			}
		}
	}

	return result.ErrorOrNil()
}
