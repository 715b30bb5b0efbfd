package disk

import (
	"io"
	"os"

	"github.com/dargueta/sfs/errors"
)

// FileDisk is a Disk backed by a regular file on the host filesystem,
// addressed in BlockSize-byte chunks via seek-then-read/write.
type FileDisk struct {
	file      *os.File
	numBlocks uint32
	mounted   bool
}

// OpenFileDisk opens an existing image file and derives its block count
// from its size. The file must be a nonzero multiple of BlockSize bytes.
func OpenFileDisk(path string) (*FileDisk, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	if info.Size() == 0 || info.Size()%BlockSize != 0 {
		f.Close()
		return nil, errors.ErrInvalidArgument.WithMessage(
			"image size is not a nonzero multiple of the block size")
	}

	return &FileDisk{file: f, numBlocks: uint32(info.Size() / BlockSize)}, nil
}

// CreateFileDisk creates (or truncates) a file of exactly numBlocks blocks,
// ready for Format.
func CreateFileDisk(path string, numBlocks uint32) (*FileDisk, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	if err := f.Truncate(int64(numBlocks) * BlockSize); err != nil {
		f.Close()
		return nil, err
	}

	return &FileDisk{file: f, numBlocks: numBlocks}, nil
}

func (d *FileDisk) Close() error {
	return d.file.Close()
}

func (d *FileDisk) Size() uint32 {
	return d.numBlocks
}

func (d *FileDisk) Mount() error {
	d.mounted = true
	return nil
}

func (d *FileDisk) Mounted() bool {
	return d.mounted
}

func (d *FileDisk) ReadBlock(num uint32, buf []byte) error {
	if err := checkBounds(num, d.numBlocks, len(buf)); err != nil {
		return err
	}
	if _, err := d.file.Seek(int64(num)*BlockSize, io.SeekStart); err != nil {
		return err
	}
	_, err := io.ReadFull(d.file, buf)
	return err
}

func (d *FileDisk) WriteBlock(num uint32, buf []byte) error {
	if err := checkBounds(num, d.numBlocks, len(buf)); err != nil {
		return err
	}
	if _, err := d.file.Seek(int64(num)*BlockSize, io.SeekStart); err != nil {
		return err
	}
	_, err := d.file.Write(buf)
	return err
}
