//go:build windows

package utils

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const processAccess = windows.PROCESS_QUERY_INFORMATION | windows.PROCESS_VM_OPERATION |
	windows.PROCESS_VM_READ | windows.PROCESS_VM_WRITE | windows.SYNCHRONIZE

type windowsHandle struct {
	hProcess windows.Handle
}

func openProcess(pid uint32) (ProcessHandle, error) {
	hProcess, err := windows.OpenProcess(processAccess, false, pid)
	if err != nil {
		return nil, err
	}
	return &windowsHandle{hProcess: hProcess}, nil
}

func (w *windowsHandle) ReadMemory(address uintptr, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	var bytesRead uintptr
	err := windows.ReadProcessMemory(w.hProcess, address, &buf[0], uintptr(len(buf)), &bytesRead)
	if err != nil {
		return err
	}
	if bytesRead != uintptr(len(buf)) {
		return fmt.Errorf("short read: %d of %d bytes", bytesRead, len(buf))
	}
	return nil
}

func (w *windowsHandle) WriteMemory(address uintptr, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	var bytesWritten uintptr
	err := windows.WriteProcessMemory(w.hProcess, address, &data[0], uintptr(len(data)), &bytesWritten)
	if err != nil {
		return err
	}
	if bytesWritten != uintptr(len(data)) {
		return fmt.Errorf("short write: %d of %d bytes", bytesWritten, len(data))
	}
	return nil
}

func (w *windowsHandle) Protect(address uintptr, size int) error {
	var oldProtect uint32
	return windows.VirtualProtectEx(w.hProcess, address, uintptr(size), windows.PAGE_READWRITE, &oldProtect)
}

func (w *windowsHandle) Close() error {
	return windows.CloseHandle(w.hProcess)
}
