// Package bitmap tracks which blocks of an SFS volume are in use.
//
// It does first-fit single-block allocation only, and is sized to the
// volume's true block count -- a fixed-size array here would silently stop
// tracking free space past its capacity on a larger volume.
package bitmap

import (
	bm "github.com/boljen/go-bitmap"

	"github.com/dargueta/sfs/errors"
)

// Tracker is the in-memory free-block bitmap. bitmap[b] == true iff block b
// is currently in use.
type Tracker struct {
	bits  bm.Bitmap
	total uint32
}

// New creates a Tracker with every bit cleared, sized for total blocks.
func New(total uint32) *Tracker {
	return &Tracker{bits: bm.New(int(total)), total: total}
}

// Mark sets block b as in use without allocating it via Allocate. Used
// during the mount-time scan to seed the bitmap from on-disk state.
func (t *Tracker) Mark(b uint32) {
	t.bits.Set(int(b), true)
}

// InUse reports whether block b is currently marked as used.
func (t *Tracker) InUse(b uint32) bool {
	return t.bits.Get(int(b))
}

// Allocate finds the lowest-indexed free block, marks it used, and returns
// it. This implementation sets the bit as part of allocation rather than
// leaving that to the caller.
func (t *Tracker) Allocate() (uint32, error) {
	for i := uint32(0); i < t.total; i++ {
		if !t.bits.Get(int(i)) {
			t.bits.Set(int(i), true)
			return i, nil
		}
	}
	return 0, errors.ErrNoSpace
}

// Free clears block b. Freeing an already-free block is a no-op, matching
// the core's remove() which may be asked to free a block twice during
// cleanup of a partially-consistent inode.
func (t *Tracker) Free(b uint32) {
	t.bits.Set(int(b), false)
}

// Total returns the number of blocks this tracker covers.
func (t *Tracker) Total() uint32 {
	return t.total
}
