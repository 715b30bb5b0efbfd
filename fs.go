// Package sfs implements the Simple File System core: a block-addressed,
// inode-based single-volume filesystem on top of an opaque Disk. The
// filesystem is flat -- inodes are addressed by integer, there are no
// directories or path names.
package sfs

import (
	"github.com/dargueta/sfs/disk"
	"github.com/dargueta/sfs/errors"
	"github.com/dargueta/sfs/internal/bitmap"
	"github.com/dargueta/sfs/internal/layout"
)

// FileSystem is the in-memory state of a mounted volume. It's only valid
// between a successful Mount and the end of the process; there's no
// Unmount in the core surface.
type FileSystem struct {
	disk        disk.Disk
	blocks      uint32
	inodeBlocks uint32
	inodes      uint32
	free        *bitmap.Tracker
}

// Format rewrites d's superblock and zeros every other block, discarding
// whatever was there before. It fails if d is already mounted.
func Format(d disk.Disk) error {
	if d.Mounted() {
		return errors.ErrNotMountable.WithMessage("disk is already mounted")
	}

	totalBlocks := d.Size()
	sb := layout.SuperBlock{
		MagicNumber: layout.MagicNumber,
		Blocks:      totalBlocks,
		InodeBlocks: layout.InodeBlocksFor(totalBlocks),
		Inodes:      layout.InodeBlocksFor(totalBlocks) * layout.InodesPerBlock,
	}

	if err := d.WriteBlock(0, layout.EncodeSuperBlock(sb)); err != nil {
		return err
	}

	zero := make([]byte, layout.BlockSize)
	for b := uint32(1); b < totalBlocks; b++ {
		if err := d.WriteBlock(b, zero); err != nil {
			return err
		}
	}
	return nil
}

// Mount validates d's superblock against the geometry the disk actually
// has, and if it matches, binds the filesystem to d and rebuilds the
// free-block bitmap by scanning every valid inode. It fails if d is already
// mounted or the superblock doesn't match.
func Mount(d disk.Disk) (*FileSystem, error) {
	if d.Mounted() {
		return nil, errors.ErrNotMountable.WithMessage("disk is already mounted")
	}

	block := make([]byte, layout.BlockSize)
	if err := d.ReadBlock(0, block); err != nil {
		return nil, err
	}
	sb := layout.DecodeSuperBlock(block)

	totalBlocks := d.Size()
	wantInodeBlocks := layout.InodeBlocksFor(totalBlocks)
	wantInodes := wantInodeBlocks * layout.InodesPerBlock

	if sb.MagicNumber != layout.MagicNumber ||
		sb.Blocks != totalBlocks ||
		sb.InodeBlocks != wantInodeBlocks ||
		sb.Inodes != wantInodes {
		return nil, errors.ErrNotMountable.WithMessage("superblock does not match disk geometry")
	}

	if err := d.Mount(); err != nil {
		return nil, err
	}

	fs := &FileSystem{
		disk:        d,
		blocks:      sb.Blocks,
		inodeBlocks: sb.InodeBlocks,
		inodes:      sb.Inodes,
	}
	if err := fs.rebuildBitmap(); err != nil {
		return nil, err
	}
	return fs, nil
}

// rebuildBitmap walks every valid inode and its indirect block, marking
// every referenced block used. Block 0 and every inode-table block are
// always marked used.
func (fs *FileSystem) rebuildBitmap() error {
	fs.free = bitmap.New(fs.blocks)
	fs.free.Mark(0)
	for b := uint32(1); b <= fs.inodeBlocks; b++ {
		fs.free.Mark(b)
	}

	for n := uint32(0); n < fs.inodes; n++ {
		inode, err := fs.loadInode(n)
		if err != nil {
			continue // free slot, nothing to mark
		}

		for _, d := range inode.Direct {
			if d != 0 {
				fs.free.Mark(d)
			}
		}

		if inode.Indirect != 0 {
			fs.free.Mark(inode.Indirect)
			ptrBlock := make([]byte, layout.BlockSize)
			if err := fs.disk.ReadBlock(inode.Indirect, ptrBlock); err != nil {
				return err
			}
			pointers := layout.DecodePointerBlock(ptrBlock)
			for _, p := range pointers {
				if p != 0 {
					fs.free.Mark(p)
				}
			}
		}
	}
	return nil
}
