package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/dargueta/sfs/errors"
	"github.com/stretchr/testify/assert"
)

func TestSFSErrorWithMessage(t *testing.T) {
	newErr := errors.ErrInvalidInode.WithMessage("inode 42")
	assert.Equal(t, "inode is not allocated: inode 42", newErr.Error())
	assert.ErrorIs(t, newErr, errors.ErrInvalidInode)
}

func TestSFSErrorWrap(t *testing.T) {
	originalErr := stderrors.New("short read")
	newErr := errors.ErrIOFailed.WrapError(originalErr)
	assert.Equal(t, "input/output error: short read", newErr.Error())
	assert.ErrorIs(t, newErr, errors.ErrIOFailed)
	assert.ErrorIs(t, newErr, originalErr)
}

func TestSFSErrorChaining(t *testing.T) {
	newErr := errors.ErrNoSpace.WithMessage("allocating direct block").
		WithMessage("write(inode=3)")
	assert.ErrorIs(t, newErr, errors.ErrNoSpace)
}

func TestSFSErrorWrapThenWithMessage(t *testing.T) {
	originalErr := stderrors.New("disk read failed")
	newErr := errors.ErrIOFailed.WrapError(originalErr).WithMessage("loadInode(5)")
	assert.ErrorIs(t, newErr, errors.ErrIOFailed)
	assert.ErrorIs(t, newErr, originalErr)
}
