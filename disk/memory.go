package disk

import (
	"io"

	"github.com/xaionaro-go/bytesextra"
)

// MemoryDisk is an in-memory Disk backed by a plain byte slice through
// bytesextra's seekable wrapper. It never touches the filesystem, which
// makes it the natural backing store for tests.
type MemoryDisk struct {
	stream    io.ReadWriteSeeker
	numBlocks uint32
	mounted   bool
}

// NewMemoryDisk allocates a zero-filled MemoryDisk with room for numBlocks
// blocks.
func NewMemoryDisk(numBlocks uint32) *MemoryDisk {
	backing := make([]byte, uint64(numBlocks)*BlockSize)
	return &MemoryDisk{
		stream:    bytesextra.NewReadWriteSeeker(backing),
		numBlocks: numBlocks,
	}
}

// NewMemoryDiskFromBytes wraps existing image bytes (whose length must be an
// exact multiple of BlockSize) as a MemoryDisk.
func NewMemoryDiskFromBytes(image []byte) *MemoryDisk {
	return &MemoryDisk{
		stream:    bytesextra.NewReadWriteSeeker(image),
		numBlocks: uint32(len(image) / BlockSize),
	}
}

func (d *MemoryDisk) Size() uint32 {
	return d.numBlocks
}

func (d *MemoryDisk) Mount() error {
	d.mounted = true
	return nil
}

func (d *MemoryDisk) Mounted() bool {
	return d.mounted
}

func (d *MemoryDisk) ReadBlock(num uint32, buf []byte) error {
	if err := checkBounds(num, d.numBlocks, len(buf)); err != nil {
		return err
	}
	if _, err := d.stream.Seek(int64(num)*BlockSize, io.SeekStart); err != nil {
		return err
	}
	_, err := io.ReadFull(d.stream, buf)
	return err
}

func (d *MemoryDisk) WriteBlock(num uint32, buf []byte) error {
	if err := checkBounds(num, d.numBlocks, len(buf)); err != nil {
		return err
	}
	if _, err := d.stream.Seek(int64(num)*BlockSize, io.SeekStart); err != nil {
		return err
	}
	_, err := d.stream.Write(buf)
	return err
}
