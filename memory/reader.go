package memory

import (
	"errors"

	"FF7Ultima/utils"
)

// ErrIndexOutOfRange is returned when a record refers past the end of a
// name catalog.
var ErrIndexOutOfRange = errors.New("index out of range")

// fieldReader reads many scalars and keeps the first error. After a failure
// every further read returns the zero value without touching the target.
type fieldReader struct {
	ff7 *utils.ClassMemory
	err error
}

func newFieldReader(ff7 *utils.ClassMemory) *fieldReader {
	return &fieldReader{ff7: ff7}
}

func read[T utils.Scalar](r *fieldReader, addr uint32) T {
	var zero T
	if r.err != nil {
		return zero
	}
	v, err := utils.ReadAndAssert[T](r.ff7, addr)
	if err != nil {
		r.err = err
		return zero
	}
	return v
}

func (r *fieldReader) raw(addr uint32, size int) []byte {
	if r.err != nil {
		return nil
	}
	buf, err := r.ff7.ReadRaw(addr, size)
	if err != nil {
		r.err = err
		return nil
	}
	return buf
}

// block is a record already copied out of the target.
type block struct {
	data []byte
	err  error
}

func readBlock(ff7 *utils.ClassMemory, addr uint32, size int) *block {
	data, err := ff7.ReadRaw(addr, size)
	return &block{data: data, err: err}
}

func field[T utils.Scalar](b *block, offset int) T {
	var zero T
	if b.err != nil {
		return zero
	}
	v, err := utils.ReadBufferAndAssert[T](b.data, offset)
	if err != nil {
		b.err = err
		return zero
	}
	return v
}
