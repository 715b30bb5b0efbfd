// Package disk defines the block-device contract the file system core is
// built against, and two concrete implementations of it.
//
// The core treats a Disk as an opaque collaborator: uniform 4096-byte
// blocks, addressed by a zero-based 32-bit block number, with a mount flag
// the core must respect but never mutates directly except via Mount.
package disk

import (
	"fmt"

	"github.com/dargueta/sfs/errors"
)

// BlockSize is the fixed size, in bytes, of every block on an SFS volume.
const BlockSize = 4096

// Disk is the external collaborator the core filesystem logic depends on:
// a fixed-block random-access device with a single mount flag.
// Out-of-range block numbers are a programming error and implementations
// should report them rather than silently clamp or wrap.
type Disk interface {
	// ReadBlock fills buf (which must be exactly BlockSize bytes) with the
	// contents of block num.
	ReadBlock(num uint32, buf []byte) error

	// WriteBlock writes buf (which must be exactly BlockSize bytes) to
	// block num.
	WriteBlock(num uint32, buf []byte) error

	// Size returns the total number of blocks on the device.
	Size() uint32

	// Mount marks the device as mounted. It does not itself validate
	// anything; that's the file system core's job.
	Mount() error

	// Mounted reports whether Mount has been called without a matching
	// reset of the underlying device.
	Mounted() bool
}

func checkBounds(num uint32, total uint32, bufLen int) error {
	if num >= total {
		return errors.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("block %d not in range [0, %d)", num, total))
	}
	if bufLen != BlockSize {
		return errors.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("buffer must be exactly %d bytes, got %d", BlockSize, bufLen))
	}
	return nil
}
