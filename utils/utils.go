package utils

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"path/filepath"
	"runtime"
)

// Scalar lists the fixed-width kinds the target's memory is read as.
type Scalar interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 | ~float64
}

// ReadAndAssert reads a little-endian T at addr.
func ReadAndAssert[T Scalar](cm *ClassMemory, addr uint32) (T, error) {
	var val T
	buf, err := cm.ReadRaw(addr, binary.Size(val))
	if err != nil {
		return val, err
	}
	err = binary.Read(bytes.NewReader(buf), binary.LittleEndian, &val)
	return val, err
}

// WriteValue stores v little-endian at addr.
func WriteValue[T Scalar](cm *ClassMemory, addr uint32, v T) error {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
		return err
	}
	return cm.WriteRaw(addr, buf.Bytes())
}

// ReadBufferAndAssert reads a T from a byte slice at the given offset.
func ReadBufferAndAssert[T Scalar](data []byte, offset int) (T, error) {
	var val T
	size := binary.Size(val)
	if offset < 0 || offset+size > len(data) {
		return val, fmt.Errorf("failed to read buffer at offset %v: need %d of %d bytes", offset, size, len(data))
	}
	err := binary.Read(bytes.NewReader(data[offset:offset+size]), binary.LittleEndian, &val)
	return val, err
}

// IfError logs err with the caller's file and line when it is not nil
func IfError(err error, message string) {
	if err != nil {
		_, file, line, _ := runtime.Caller(1)
		Log.Warnf("%s:%d: %s: %v", filepath.Base(file), line, message, err)
	}
}

// ReadNullTerminatedString converts a byte slice to a string, stopping at the first null byte.
func ReadNullTerminatedString(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return string(data[:i])
	}
	return string(data)
}
