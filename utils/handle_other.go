//go:build !windows && !linux

package utils

import (
	"fmt"
	"runtime"
)

func openProcess(pid uint32) (ProcessHandle, error) {
	return nil, fmt.Errorf("remote memory access is not supported on %s", runtime.GOOS)
}
