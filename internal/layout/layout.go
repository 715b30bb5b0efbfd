// Package layout defines the fixed binary encoding of every block type on an
// SFS volume: the superblock, inode table blocks, and indirect pointer
// blocks. Data blocks are opaque and have no encoding of their own.
//
// Every record is little-endian, chosen for portability across the
// architectures most likely to mount one of these volumes.
package layout

import "encoding/binary"

// BlockSize is the size, in bytes, of every block on the volume.
const BlockSize = 4096

// MagicNumber identifies a valid SFS superblock.
const MagicNumber = 0xf0f03410

// InodesPerBlock is the number of 32-byte inode records packed into one
// inode-table block.
const InodesPerBlock = 128

// PointersPerInode is the number of direct block pointers an inode carries.
const PointersPerInode = 5

// PointersPerBlock is the number of 32-bit block numbers packed into one
// indirect pointer block.
const PointersPerBlock = 1024

// InodeSize is the on-disk size, in bytes, of a single inode record.
const InodeSize = 4 + 4 + 4*PointersPerInode + 4 // Valid, Size, Direct[5], Indirect

// DirectRegionSize is the number of bytes addressable through an inode's
// direct pointers alone.
const DirectRegionSize = PointersPerInode * BlockSize

// IndirectRegionSize is the number of bytes addressable through an inode's
// indirect pointer block.
const IndirectRegionSize = PointersPerBlock * BlockSize

// MaxFileSize is the largest file size representable by one inode.
const MaxFileSize = DirectRegionSize + IndirectRegionSize

var byteOrder = binary.LittleEndian

// SuperBlock mirrors the first 16 significant bytes of block 0. The
// remainder of the block is zero and carries no information.
type SuperBlock struct {
	MagicNumber uint32
	Blocks      uint32
	InodeBlocks uint32
	Inodes      uint32
}

// EncodeSuperBlock serializes sb into a full BlockSize-byte block, zero
// padded after the four header fields.
func EncodeSuperBlock(sb SuperBlock) []byte {
	buf := make([]byte, BlockSize)
	byteOrder.PutUint32(buf[0:4], sb.MagicNumber)
	byteOrder.PutUint32(buf[4:8], sb.Blocks)
	byteOrder.PutUint32(buf[8:12], sb.InodeBlocks)
	byteOrder.PutUint32(buf[12:16], sb.Inodes)
	return buf
}

// DecodeSuperBlock reads the header fields out of a raw block. block must
// be exactly BlockSize bytes.
func DecodeSuperBlock(block []byte) SuperBlock {
	return SuperBlock{
		MagicNumber: byteOrder.Uint32(block[0:4]),
		Blocks:      byteOrder.Uint32(block[4:8]),
		InodeBlocks: byteOrder.Uint32(block[8:12]),
		Inodes:      byteOrder.Uint32(block[12:16]),
	}
}

// Inode is the in-memory form of a single 32-byte on-disk inode record.
type Inode struct {
	Valid    uint32
	Size     uint32
	Direct   [PointersPerInode]uint32
	Indirect uint32
}

// IsValid reports whether the inode's Valid flag is set.
func (inode *Inode) IsValid() bool {
	return inode.Valid != 0
}

// EncodeInode serializes inode into its InodeSize-byte on-disk record,
// field order Valid, Size, Direct[0..5], Indirect.
func EncodeInode(inode Inode) []byte {
	buf := make([]byte, InodeSize)
	byteOrder.PutUint32(buf[0:4], inode.Valid)
	byteOrder.PutUint32(buf[4:8], inode.Size)
	for i, d := range inode.Direct {
		offset := 8 + i*4
		byteOrder.PutUint32(buf[offset:offset+4], d)
	}
	byteOrder.PutUint32(buf[8+PointersPerInode*4:], inode.Indirect)
	return buf
}

// DecodeInode parses a single InodeSize-byte record.
func DecodeInode(buf []byte) Inode {
	var inode Inode
	inode.Valid = byteOrder.Uint32(buf[0:4])
	inode.Size = byteOrder.Uint32(buf[4:8])
	for i := range inode.Direct {
		offset := 8 + i*4
		inode.Direct[i] = byteOrder.Uint32(buf[offset : offset+4])
	}
	inode.Indirect = byteOrder.Uint32(buf[8+PointersPerInode*4:])
	return inode
}

// EncodeInodeBlock packs InodesPerBlock inodes into one BlockSize-byte block.
func EncodeInodeBlock(inodes [InodesPerBlock]Inode) []byte {
	buf := make([]byte, BlockSize)
	for i, inode := range inodes {
		copy(buf[i*InodeSize:(i+1)*InodeSize], EncodeInode(inode))
	}
	return buf
}

// DecodeInodeBlock unpacks a full inode-table block into its InodesPerBlock
// records.
func DecodeInodeBlock(block []byte) [InodesPerBlock]Inode {
	var inodes [InodesPerBlock]Inode
	for i := range inodes {
		inodes[i] = DecodeInode(block[i*InodeSize : (i+1)*InodeSize])
	}
	return inodes
}

// EncodePointerBlock packs PointersPerBlock block numbers into one
// BlockSize-byte block.
func EncodePointerBlock(pointers [PointersPerBlock]uint32) []byte {
	buf := make([]byte, BlockSize)
	for i, p := range pointers {
		byteOrder.PutUint32(buf[i*4:(i+1)*4], p)
	}
	return buf
}

// DecodePointerBlock unpacks a full pointer block into its PointersPerBlock
// entries.
func DecodePointerBlock(block []byte) [PointersPerBlock]uint32 {
	var pointers [PointersPerBlock]uint32
	for i := range pointers {
		pointers[i] = byteOrder.Uint32(block[i*4 : (i+1)*4])
	}
	return pointers
}

// InodeBlocksFor computes ceil(totalBlocks / 10), the number of blocks the
// inode table occupies for a volume of the given size.
func InodeBlocksFor(totalBlocks uint32) uint32 {
	return (totalBlocks + 9) / 10
}

// InodeLocation returns the inode-table block holding inode n and its slot
// index within that block.
func InodeLocation(n uint32) (block uint32, slot uint32) {
	return n/InodesPerBlock + 1, n % InodesPerBlock
}
