package utils

import (
	"errors"
	"fmt"
)

// ErrProcessNotFound is returned before any OS call when no target process is tracked.
var ErrProcessNotFound = errors.New("process not found")

// HandleError reports that the OS refused to open a tracked process.
type HandleError struct {
	PID uint32
	Err error
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("failed to get process handle for pid %d: %v", e.PID, e.Err)
}

func (e *HandleError) Unwrap() error { return e.Err }

// ReadError reports a failed read of Size bytes at Address.
type ReadError struct {
	Address uint32
	Size    int
	Err     error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("could not read %d bytes at address 0x%08X: %v", e.Size, e.Address, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed write at Address. Index is the offset of the
// first byte that could not be written; bytes before it were applied.
type WriteError struct {
	Address uint32
	Index   int
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write byte %d at address 0x%08X: %v", e.Index, e.Address, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// ProtectionError reports a failed page protection change.
type ProtectionError struct {
	Address uint32
	Size    int
	Err     error
}

func (e *ProtectionError) Error() string {
	return fmt.Sprintf("failed to change memory protection of %d bytes at 0x%08X: %v", e.Size, e.Address, e.Err)
}

func (e *ProtectionError) Unwrap() error { return e.Err }
