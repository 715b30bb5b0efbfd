package sfs

import (
	"fmt"
	"io"

	"github.com/dargueta/sfs/disk"
	"github.com/dargueta/sfs/internal/layout"
)

// Debug reads d's superblock directly -- no Mount required -- and writes a
// human-readable dump of the superblock and every valid inode to w.
func Debug(d disk.Disk, w io.Writer) error {
	block := make([]byte, layout.BlockSize)
	if err := d.ReadBlock(0, block); err != nil {
		return err
	}
	sb := layout.DecodeSuperBlock(block)

	fmt.Fprintf(w, "SuperBlock:\n")
	fmt.Fprintf(w, "    magic number is valid: %v\n", sb.MagicNumber == layout.MagicNumber)
	fmt.Fprintf(w, "    %d blocks\n", sb.Blocks)
	fmt.Fprintf(w, "    %d inode blocks\n", sb.InodeBlocks)
	fmt.Fprintf(w, "    %d inodes\n", sb.Inodes)

	for blockNum := uint32(1); blockNum <= sb.InodeBlocks; blockNum++ {
		raw := make([]byte, layout.BlockSize)
		if err := d.ReadBlock(blockNum, raw); err != nil {
			return err
		}
		inodes := layout.DecodeInodeBlock(raw)

		for slot, inode := range inodes {
			if !inode.IsValid() {
				continue
			}

			n := (blockNum-1)*layout.InodesPerBlock + uint32(slot)
			fmt.Fprintf(w, "Inode %d:\n", n)
			fmt.Fprintf(w, "    size: %d bytes\n", inode.Size)

			directs := nonzero(inode.Direct[:])
			if len(directs) > 0 {
				fmt.Fprintf(w, "    direct blocks:")
				for _, b := range directs {
					fmt.Fprintf(w, " %d", b)
				}
				fmt.Fprintf(w, "\n")
			}

			if inode.Indirect != 0 {
				fmt.Fprintf(w, "    indirect block: %d\n", inode.Indirect)

				ptrBlock := make([]byte, layout.BlockSize)
				if err := d.ReadBlock(inode.Indirect, ptrBlock); err != nil {
					return err
				}
				pointers := nonzero(layout.DecodePointerBlock(ptrBlock)[:])
				if len(pointers) > 0 {
					fmt.Fprintf(w, "    indirect data blocks:")
					for _, b := range pointers {
						fmt.Fprintf(w, " %d", b)
					}
					fmt.Fprintf(w, "\n")
				}
			}
		}
	}

	return nil
}

func nonzero(values []uint32) []uint32 {
	out := make([]uint32, 0, len(values))
	for _, v := range values {
		if v != 0 {
			out = append(out, v)
		}
	}
	return out
}
