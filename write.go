package sfs

import (
	"github.com/dargueta/sfs/internal/layout"
)

// Write copies bytes from src into inode n starting at byte offset,
// allocating data blocks (and an indirect pointer block) on demand. Unlike
// Read, it never clamps against the inode's current size -- a write may
// extend the file up to layout.MaxFileSize.
//
// If the volume runs out of free blocks partway through, the write is not
// an error: running out of space is locally recovered. The
// inode's Size is advanced by exactly how much was actually written, the
// inode is saved, and the partial byte count is returned. The same applies
// if the write would cross block index 1029, the end of the addressable
// range -- it stops cleanly and returns what it managed.
func (fs *FileSystem) Write(n uint32, src []byte, offset uint32) (uint32, error) {
	inode, err := fs.loadInode(n)
	if err != nil {
		return 0, err
	}

	srcCursor := uint32(0)
	blockIdx := offset / layout.BlockSize
	byteOff := offset % layout.BlockSize
	remaining := uint32(len(src))
	written := uint32(0)

	finish := func() (uint32, error) {
		inode.Size += written
		if err := fs.saveInode(n, inode); err != nil {
			return written, err
		}
		return written, nil
	}

	dataBlock := make([]byte, layout.BlockSize)

	// Direct phase.
	for blockIdx < layout.PointersPerInode && remaining > 0 {
		if inode.Direct[blockIdx] == 0 {
			b, allocErr := fs.free.Allocate()
			if allocErr != nil {
				return finish()
			}
			inode.Direct[blockIdx] = b
		}

		blockNum := inode.Direct[blockIdx]
		if byteOff > 0 {
			if err := fs.disk.ReadBlock(blockNum, dataBlock); err != nil {
				return written, err
			}
		} else {
			for i := range dataBlock {
				dataBlock[i] = 0
			}
		}

		chunk := min32(remaining, layout.BlockSize-byteOff)
		copy(dataBlock[byteOff:byteOff+chunk], src[srcCursor:srcCursor+chunk])
		if err := fs.disk.WriteBlock(blockNum, dataBlock); err != nil {
			return written, err
		}

		srcCursor += chunk
		written += chunk
		remaining -= chunk
		byteOff = 0
		blockIdx++
	}

	// Indirect phase.
	if remaining > 0 && blockIdx < layout.PointersPerInode+layout.PointersPerBlock {
		if inode.Indirect == 0 {
			b, allocErr := fs.free.Allocate()
			if allocErr != nil {
				return finish()
			}
			inode.Indirect = b
			zero := make([]byte, layout.BlockSize)
			if err := fs.disk.WriteBlock(b, zero); err != nil {
				return written, err
			}
		}

		ptrBlock := make([]byte, layout.BlockSize)
		if err := fs.disk.ReadBlock(inode.Indirect, ptrBlock); err != nil {
			return written, err
		}
		pointers := layout.DecodePointerBlock(ptrBlock)

		p := blockIdx - layout.PointersPerInode
		for p < layout.PointersPerBlock && remaining > 0 {
			if pointers[p] == 0 {
				b, allocErr := fs.free.Allocate()
				if allocErr != nil {
					if err := fs.disk.WriteBlock(inode.Indirect, layout.EncodePointerBlock(pointers)); err != nil {
						return written, err
					}
					return finish()
				}
				pointers[p] = b
			}

			blockNum := pointers[p]
			if byteOff > 0 {
				if err := fs.disk.ReadBlock(blockNum, dataBlock); err != nil {
					return written, err
				}
			} else {
				for i := range dataBlock {
					dataBlock[i] = 0
				}
			}

			chunk := min32(remaining, layout.BlockSize-byteOff)
			copy(dataBlock[byteOff:byteOff+chunk], src[srcCursor:srcCursor+chunk])
			if err := fs.disk.WriteBlock(blockNum, dataBlock); err != nil {
				return written, err
			}

			srcCursor += chunk
			written += chunk
			remaining -= chunk
			byteOff = 0
			p++
		}

		if err := fs.disk.WriteBlock(inode.Indirect, layout.EncodePointerBlock(pointers)); err != nil {
			return written, err
		}
	}

	return finish()
}
