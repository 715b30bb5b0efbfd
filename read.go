package sfs

import (
	"github.com/dargueta/sfs/errors"
	"github.com/dargueta/sfs/internal/layout"
)

// Read copies up to len(dst) bytes from inode n starting at byte offset
// into dst, clamping the read to the inode's current size. It returns the
// number of bytes actually copied.
//
// Crossing from the direct region into the indirect region costs exactly
// one indirect-pointer-block read, no matter how many data blocks are
// traversed on either side of the boundary.
func (fs *FileSystem) Read(n uint32, dst []byte, offset uint32) (uint32, error) {
	inode, err := fs.loadInode(n)
	if err != nil {
		return 0, err
	}

	if offset > inode.Size {
		return 0, errors.ErrOutOfRange
	}

	length := uint32(len(dst))
	if offset+length > inode.Size {
		length = inode.Size - offset
	}

	dstCursor := uint32(0)
	blockIdx := offset / layout.BlockSize
	byteOff := offset % layout.BlockSize
	remaining := length

	dataBlock := make([]byte, layout.BlockSize)

	// Direct phase.
	for blockIdx < layout.PointersPerInode && remaining > 0 {
		blockNum := inode.Direct[blockIdx]
		if blockNum != 0 {
			if err := fs.disk.ReadBlock(blockNum, dataBlock); err != nil {
				return dstCursor, err
			}
		} else {
			for i := range dataBlock {
				dataBlock[i] = 0
			}
		}

		n := min32(remaining, layout.BlockSize-byteOff)
		copy(dst[dstCursor:dstCursor+n], dataBlock[byteOff:byteOff+n])

		dstCursor += n
		remaining -= n
		byteOff = 0
		blockIdx++
	}

	// Indirect phase.
	if remaining > 0 {
		if inode.Indirect == 0 {
			return dstCursor, errors.ErrInvalidArgument.WithMessage(
				"read extends into unallocated indirect region")
		}

		ptrBlock := make([]byte, layout.BlockSize)
		if err := fs.disk.ReadBlock(inode.Indirect, ptrBlock); err != nil {
			return dstCursor, err
		}
		pointers := layout.DecodePointerBlock(ptrBlock)

		p := blockIdx - layout.PointersPerInode
		for p < layout.PointersPerBlock && remaining > 0 {
			blockNum := pointers[p]
			if blockNum != 0 {
				if err := fs.disk.ReadBlock(blockNum, dataBlock); err != nil {
					return dstCursor, err
				}
			} else {
				for i := range dataBlock {
					dataBlock[i] = 0
				}
			}

			n := min32(remaining, layout.BlockSize-byteOff)
			copy(dst[dstCursor:dstCursor+n], dataBlock[byteOff:byteOff+n])

			dstCursor += n
			remaining -= n
			byteOff = 0
			p++
		}
	}

	return dstCursor, nil
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}
