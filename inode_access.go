package sfs

import (
	"github.com/dargueta/sfs/errors"
	"github.com/dargueta/sfs/internal/layout"
)

// loadInode reads the block holding inode n and copies out its slot. It
// never returns a reference into a shared buffer -- a stale reference into
// a reused decode buffer is how an earlier implementation's borrowed-slot
// bug crept in.
func (fs *FileSystem) loadInode(n uint32) (layout.Inode, error) {
	if n >= fs.inodes {
		return layout.Inode{}, errors.ErrInvalidInode
	}

	blockNum, slot := layout.InodeLocation(n)
	raw := make([]byte, layout.BlockSize)
	if err := fs.disk.ReadBlock(blockNum, raw); err != nil {
		return layout.Inode{}, err
	}

	inode := layout.DecodeInode(raw[slot*layout.InodeSize : (slot+1)*layout.InodeSize])
	if !inode.IsValid() {
		return layout.Inode{}, errors.ErrInvalidInode
	}
	return inode, nil
}

// saveInode writes inode back into its slot, read-modify-write of the whole
// containing block. It refuses to resurrect a slot that wasn't already
// valid; Create is the only path that may flip Valid from 0 to 1, and it
// writes the block directly rather than going through saveInode.
func (fs *FileSystem) saveInode(n uint32, inode layout.Inode) error {
	if n >= fs.inodes {
		return errors.ErrInvalidInode
	}

	blockNum, slot := layout.InodeLocation(n)
	raw := make([]byte, layout.BlockSize)
	if err := fs.disk.ReadBlock(blockNum, raw); err != nil {
		return err
	}

	existing := layout.DecodeInode(raw[slot*layout.InodeSize : (slot+1)*layout.InodeSize])
	if !existing.IsValid() {
		return errors.ErrInvalidInode
	}

	copy(raw[slot*layout.InodeSize:(slot+1)*layout.InodeSize], layout.EncodeInode(inode))
	return fs.disk.WriteBlock(blockNum, raw)
}

// Create allocates the first free inode slot, in ascending block-major,
// slot-minor order, and returns its absolute inode number (blockIndex*128 +
// slot), never the bare slot%128 -- the latter would alias inodes across
// different inode blocks once more than 128 files are live. Returns
// ErrExhausted if no free slot exists.
func (fs *FileSystem) Create() (uint32, error) {
	for blockNum := uint32(1); blockNum <= fs.inodeBlocks; blockNum++ {
		raw := make([]byte, layout.BlockSize)
		if err := fs.disk.ReadBlock(blockNum, raw); err != nil {
			return 0, err
		}

		for slot := uint32(0); slot < layout.InodesPerBlock; slot++ {
			record := raw[slot*layout.InodeSize : (slot+1)*layout.InodeSize]
			inode := layout.DecodeInode(record)
			if inode.IsValid() {
				continue
			}

			inode = layout.Inode{Valid: 1}
			copy(record, layout.EncodeInode(inode))
			if err := fs.disk.WriteBlock(blockNum, raw); err != nil {
				return 0, err
			}

			return (blockNum-1)*layout.InodesPerBlock + slot, nil
		}
	}

	return 0, errors.ErrExhausted
}

// Remove frees every block owned by inode n -- its direct blocks, its
// indirect block, and every pointer the indirect block contains -- then
// marks the inode itself free. Fails if n isn't currently valid.
func (fs *FileSystem) Remove(n uint32) error {
	inode, err := fs.loadInode(n)
	if err != nil {
		return err
	}

	for i, d := range inode.Direct {
		if d != 0 {
			fs.freeBlock(d)
			inode.Direct[i] = 0
		}
	}

	if inode.Indirect != 0 {
		ptrBlock := make([]byte, layout.BlockSize)
		if err := fs.disk.ReadBlock(inode.Indirect, ptrBlock); err != nil {
			return err
		}
		pointers := layout.DecodePointerBlock(ptrBlock)
		for _, p := range pointers {
			if p != 0 {
				fs.freeBlock(p)
			}
		}
		fs.freeBlock(inode.Indirect)
		inode.Indirect = 0
	}

	inode.Valid = 0
	inode.Size = 0
	return fs.saveInode(n, inode)
}

// Stat returns the logical size, in bytes, of inode n, or ErrInvalidInode
// if it isn't currently allocated.
func (fs *FileSystem) Stat(n uint32) (uint32, error) {
	inode, err := fs.loadInode(n)
	if err != nil {
		return 0, err
	}
	return inode.Size, nil
}

// freeBlock clears b in the bitmap and zeros it on disk. Errors zeroing
// the block are swallowed -- its caller, Remove, has no recovery path for a
// dying disk mid-cleanup.
func (fs *FileSystem) freeBlock(b uint32) {
	fs.free.Free(b)
	zero := make([]byte, layout.BlockSize)
	_ = fs.disk.WriteBlock(b, zero)
}
