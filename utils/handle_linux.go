//go:build linux

package utils

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// linuxHandle reaches a Wine/Proton hosted game through process_vm_readv(2)
// and process_vm_writev(2).
type linuxHandle struct {
	pid int
}

func openProcess(pid uint32) (ProcessHandle, error) {
	if err := unix.Kill(int(pid), 0); err != nil {
		return nil, err
	}
	return &linuxHandle{pid: int(pid)}, nil
}

func (l *linuxHandle) ReadMemory(address uintptr, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	local := []unix.Iovec{{Base: &buf[0]}}
	local[0].SetLen(len(buf))
	remote := []unix.RemoteIovec{{Base: address, Len: len(buf)}}
	n, err := unix.ProcessVMReadv(l.pid, local, remote, 0)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("short read: %d of %d bytes", n, len(buf))
	}
	return nil
}

func (l *linuxHandle) WriteMemory(address uintptr, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	local := []unix.Iovec{{Base: &data[0]}}
	local[0].SetLen(len(data))
	remote := []unix.RemoteIovec{{Base: address, Len: len(data)}}
	n, err := unix.ProcessVMWritev(l.pid, local, remote, 0)
	if err != nil {
		return err
	}
	if n != len(data) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(data))
	}
	return nil
}

// Protect is unsupported: Linux has no call to change another process's
// page protection.
func (l *linuxHandle) Protect(address uintptr, size int) error {
	return errors.New("page protection of another process cannot be changed on linux")
}

func (l *linuxHandle) Close() error { return nil }
