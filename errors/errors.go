// Package errors defines the error vocabulary shared by the disk, bitmap,
// and filesystem packages.
package errors

import "fmt"

// SFSError is a sentinel error type, usable directly with errors.Is. Each
// constant below names one of the abstract error kinds a caller can expect
// from the core filesystem operations.
type SFSError string

func (e SFSError) Error() string {
	return string(e)
}

// WithMessage returns a DriverError carrying e as its sentinel and message
// as additional context, e.g. ErrInvalidInode.WithMessage("inode 42").
func (e SFSError) WithMessage(message string) DriverError {
	return wrappedError{message: fmt.Sprintf("%s: %s", e.Error(), message), sentinel: e}
}

// WrapError returns a DriverError carrying e as its sentinel, with err's
// text folded into the message.
func (e SFSError) WrapError(err error) DriverError {
	return wrappedError{
		message:  fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		sentinel: e,
		wrapped:  err,
	}
}

// DriverError is the interface returned by the core API wherever an
// operation needs to report failure detail alongside an error. It chains back
// to its originating SFSError via errors.Is/errors.Unwrap.
type DriverError interface {
	error
	WithMessage(message string) DriverError
	WrapError(err error) DriverError
	Unwrap() error
}

type wrappedError struct {
	message  string
	sentinel SFSError
	wrapped  error
}

func (e wrappedError) Error() string {
	return e.message
}

func (e wrappedError) WithMessage(message string) DriverError {
	return wrappedError{
		message:  fmt.Sprintf("%s: %s", e.message, message),
		sentinel: e.sentinel,
		wrapped:  e,
	}
}

func (e wrappedError) WrapError(err error) DriverError {
	return wrappedError{
		message:  fmt.Sprintf("%s: %s", e.Error(), err.Error()),
		sentinel: e.sentinel,
		wrapped:  err,
	}
}

// Is reports whether target is the sentinel this error was built from, so
// errors.Is(err, ErrInvalidInode) succeeds regardless of how much context
// has been layered on top via WithMessage/WrapError.
func (e wrappedError) Is(target error) bool {
	return e.sentinel == target
}

// Unwrap exposes the immediate parent -- the error passed to WrapError, or
// the previous wrappedError in a WithMessage chain -- so errors.Is/errors.As
// can keep walking past the sentinel down to whatever was wrapped. Is
// handles sentinel matching, so this only needs to fall back to the
// sentinel when there's nothing else to unwrap to.
func (e wrappedError) Unwrap() error {
	if e.wrapped != nil {
		return e.wrapped
	}
	return e.sentinel
}

////////////////////////////////////////////////////////////////////////////////
// Abstract error kinds

// ErrNotMountable is returned by Format/Mount when the superblock doesn't
// match expectations or the disk is already mounted.
const ErrNotMountable = SFSError("disk is not mountable")

// ErrInvalidInode is returned whenever a Valid=0 slot is observed by an
// operation that requires a live inode (load, remove, stat, read, write).
const ErrInvalidInode = SFSError("inode is not allocated")

// ErrOutOfRange is returned by Read when the requested offset exceeds the
// file's current size.
const ErrOutOfRange = SFSError("offset exceeds file size")

// ErrNoSpace marks allocation failure during a write. The core never
// surfaces it as an API error -- a write recovers locally and returns the
// partial byte count -- but internal helpers use it to signal the condition
// up to the point where it gets absorbed.
const ErrNoSpace = SFSError("no free blocks available")

// ErrExhausted is returned by Create when every inode slot is in use.
const ErrExhausted = SFSError("no free inode slots available")

////////////////////////////////////////////////////////////////////////////////
// General-purpose codes retained for the disk and CLI layers, where none of
// the five kinds above apply.

const ErrInvalidArgument = SFSError("invalid argument")
const ErrIOFailed = SFSError("input/output error")
const ErrFileSystemCorrupted = SFSError("file system structure needs cleaning")
const ErrBusy = SFSError("device or resource busy")
const ErrNotImplemented = SFSError("function not implemented")
