// utils/memory.go

package utils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// DataType names a fixed-width scalar layout in the target's memory.
type DataType string

const (
	UChar  DataType = "UChar"
	Char   DataType = "Char"
	UShort DataType = "UShort"
	Short  DataType = "Short"
	UInt   DataType = "UInt"
	Int    DataType = "Int"
	Double DataType = "Double"
)

var aTypeSize = map[DataType]int{
	UChar: 1, Char: 1,
	UShort: 2, Short: 2,
	UInt: 4, Int: 4,
	Double: 8,
}

// Size returns the width in bytes of dataType, or 0 if it is unknown.
func (dt DataType) Size() int {
	return aTypeSize[dt]
}

// Target publishes the identifier of the process to operate on.
type Target interface {
	CurrentTarget() (uint32, bool)
}

// ProcessHandle is an open view of another process's address space.
// All OS-specific unsafe calls live behind it.
type ProcessHandle interface {
	ReadMemory(address uintptr, buf []byte) error
	WriteMemory(address uintptr, data []byte) error
	Protect(address uintptr, size int) error
	Close() error
}

// Opener acquires a ProcessHandle for pid.
type Opener func(pid uint32) (ProcessHandle, error)

// ClassMemory gives typed access to the memory of whatever process the
// Target currently reports. Every call opens its own handle; nothing is
// batched, cached or retried.
type ClassMemory struct {
	target Target
	open   Opener
}

// NewClassMemory uses the native OS backend.
func NewClassMemory(target Target) *ClassMemory {
	return NewClassMemoryWithOpener(target, openProcess)
}

func NewClassMemoryWithOpener(target Target, open Opener) *ClassMemory {
	return &ClassMemory{target: target, open: open}
}

// withHandle resolves the target and runs fn against a freshly opened handle.
func (cm *ClassMemory) withHandle(fn func(h ProcessHandle) error) error {
	pid, ok := cm.target.CurrentTarget()
	if !ok {
		return ErrProcessNotFound
	}
	h, err := cm.open(pid)
	if err != nil {
		return &HandleError{PID: pid, Err: err}
	}
	defer h.Close()
	return fn(h)
}

// ReadRaw reads size bytes at address.
func (cm *ClassMemory) ReadRaw(address uint32, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("invalid read size %d", size)
	}
	buf := make([]byte, size)
	err := cm.withHandle(func(h ProcessHandle) error {
		if size == 0 {
			return nil
		}
		if err := h.ReadMemory(uintptr(address), buf); err != nil {
			return &ReadError{Address: address, Size: size, Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteRaw writes data at address. The write is not atomic: a single OS
// write is tried first and, if it fails, the bytes are written one at a time
// so the returned WriteError names the first byte that could not be written.
// Bytes before that index stay written.
func (cm *ClassMemory) WriteRaw(address uint32, data []byte) error {
	return cm.withHandle(func(h ProcessHandle) error {
		if len(data) == 0 {
			return nil
		}
		if err := h.WriteMemory(uintptr(address), data); err == nil {
			return nil
		}
		for i := range data {
			if err := h.WriteMemory(uintptr(address)+uintptr(i), data[i:i+1]); err != nil {
				return &WriteError{Address: address, Index: i, Err: err}
			}
		}
		return nil
	})
}

// SetProtection makes size bytes at address readable and writable so later
// writes into code or read-only data succeed.
func (cm *ClassMemory) SetProtection(address uint32, size int) error {
	return cm.withHandle(func(h ProcessHandle) error {
		if err := h.Protect(uintptr(address), size); err != nil {
			return &ProtectionError{Address: address, Size: size, Err: err}
		}
		return nil
	})
}

// Read reads a scalar of the given type. The dynamic type of the result is
// uint8, int8, uint16, int16, uint32, int32 or float64.
func (cm *ClassMemory) Read(address uint32, dataType DataType) (interface{}, error) {
	size := dataType.Size()
	if size == 0 {
		return nil, fmt.Errorf("invalid data type %q", dataType)
	}
	buf, err := cm.ReadRaw(address, size)
	if err != nil {
		return nil, err
	}
	return ReadBuffer(buf, 0, dataType)
}

// Write stores value as dataType. Integer and float values of another Go
// type are converted when they fit.
func (cm *ClassMemory) Write(address uint32, value interface{}, dataType DataType) error {
	v, err := coerce(value, dataType)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
		return err
	}
	return cm.WriteRaw(address, buf.Bytes())
}

// ReadBuffer reads a value of the specified type from a byte slice at the given offset.
func ReadBuffer(data []byte, offset int, dataType DataType) (interface{}, error) {
	size := dataType.Size()
	if size == 0 {
		return nil, fmt.Errorf("invalid data type %q", dataType)
	}
	if offset < 0 || offset+size > len(data) {
		return nil, fmt.Errorf("offset %d out of range for %s in %d bytes", offset, dataType, len(data))
	}
	b := data[offset : offset+size]
	switch dataType {
	case UChar:
		return b[0], nil
	case Char:
		return int8(b[0]), nil
	case UShort:
		return binary.LittleEndian.Uint16(b), nil
	case Short:
		return int16(binary.LittleEndian.Uint16(b)), nil
	case UInt:
		return binary.LittleEndian.Uint32(b), nil
	case Int:
		return int32(binary.LittleEndian.Uint32(b)), nil
	default:
		return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
	}
}

func coerce(value interface{}, dataType DataType) (interface{}, error) {
	var i int64
	var f float64
	isFloat := false
	switch v := value.(type) {
	case uint8:
		i = int64(v)
	case int8:
		i = int64(v)
	case uint16:
		i = int64(v)
	case int16:
		i = int64(v)
	case uint32:
		i = int64(v)
	case int32:
		i = int64(v)
	case int:
		i = int64(v)
	case int64:
		i = v
	case uint64:
		if v > math.MaxInt64 {
			return nil, fmt.Errorf("value %d out of range for %s", v, dataType)
		}
		i = int64(v)
	case float32:
		f, isFloat = float64(v), true
	case float64:
		f, isFloat = v, true
	default:
		return nil, fmt.Errorf("unsupported value type %T", value)
	}

	if dataType == Double {
		if isFloat {
			return f, nil
		}
		return float64(i), nil
	}
	if isFloat {
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("value %v is not an integer for %s", f, dataType)
		}
		i = int64(f)
	}

	inRange := func(lo, hi int64) error {
		if i < lo || i > hi {
			return fmt.Errorf("value %d out of range for %s", i, dataType)
		}
		return nil
	}
	switch dataType {
	case UChar:
		return uint8(i), inRange(0, math.MaxUint8)
	case Char:
		return int8(i), inRange(math.MinInt8, math.MaxInt8)
	case UShort:
		return uint16(i), inRange(0, math.MaxUint16)
	case Short:
		return int16(i), inRange(math.MinInt16, math.MaxInt16)
	case UInt:
		return uint32(i), inRange(0, math.MaxUint32)
	case Int:
		return int32(i), inRange(math.MinInt32, math.MaxInt32)
	}
	return nil, fmt.Errorf("invalid data type %q", dataType)
}
