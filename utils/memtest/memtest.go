// Package memtest provides an in-process stand-in for a target process, for
// use in tests of code built on utils.ClassMemory.
package memtest

import (
	"encoding/binary"
	"errors"
	"math"

	"FF7Ultima/utils"

	"github.com/sasha-s/go-deadlock"
)

// ErrFault is returned for any access touching an address marked with Fail.
var ErrFault = errors.New("memtest: access violation")

// Process is a sparse little-endian address space. Bytes never written read
// as zero.
type Process struct {
	mu        deadlock.Mutex
	mem       map[uint32]byte
	faults    map[uint32]bool
	protected map[uint32]int
	readOnly  map[uint32]bool
	opens     int
	openErr   error
}

func New() *Process {
	return &Process{
		mem:       make(map[uint32]byte),
		faults:    make(map[uint32]bool),
		protected: make(map[uint32]int),
		readOnly:  make(map[uint32]bool),
	}
}

// Poke stores data at addr.
func (p *Process) Poke(addr uint32, data ...byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, b := range data {
		p.mem[addr+uint32(i)] = b
	}
}

func (p *Process) PokeU16(addr uint32, v uint16) {
	p.Poke(addr, binary.LittleEndian.AppendUint16(nil, v)...)
}

func (p *Process) PokeU32(addr uint32, v uint32) {
	p.Poke(addr, binary.LittleEndian.AppendUint32(nil, v)...)
}

func (p *Process) PokeI32(addr uint32, v int32) {
	p.PokeU32(addr, uint32(v))
}

func (p *Process) PokeF64(addr uint32, v float64) {
	p.Poke(addr, binary.LittleEndian.AppendUint64(nil, math.Float64bits(v))...)
}

// Peek returns n bytes at addr.
func (p *Process) Peek(addr uint32, n int) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]byte, n)
	for i := range out {
		out[i] = p.mem[addr+uint32(i)]
	}
	return out
}

// Fail makes every access touching addr fail with ErrFault.
func (p *Process) Fail(addr uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.faults[addr] = true
}

// ReadOnly makes writes to addr fail until Protect covers it.
func (p *Process) ReadOnly(addr uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.readOnly[addr] = true
}

// FailOpen makes every Open return err.
func (p *Process) FailOpen(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.openErr = err
}

// Opens reports how many handles were acquired.
func (p *Process) Opens() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opens
}

// Protected returns the size of the last protection change at addr.
func (p *Process) Protected(addr uint32) (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	size, ok := p.protected[addr]
	return size, ok
}

// Open satisfies utils.Opener.
func (p *Process) Open(pid uint32) (utils.ProcessHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.openErr != nil {
		return nil, p.openErr
	}
	p.opens++
	return &handle{p: p}, nil
}

// Memory returns a ClassMemory bound to p through target.
func (p *Process) Memory(target utils.Target) *utils.ClassMemory {
	return utils.NewClassMemoryWithOpener(target, p.Open)
}

type handle struct {
	p *Process
}

func (h *handle) ReadMemory(address uintptr, buf []byte) error {
	h.p.mu.Lock()
	defer h.p.mu.Unlock()
	base := uint32(address)
	for i := range buf {
		if h.p.faults[base+uint32(i)] {
			return ErrFault
		}
	}
	for i := range buf {
		buf[i] = h.p.mem[base+uint32(i)]
	}
	return nil
}

// WriteMemory applies bytes in order and stops at the first faulting one.
func (h *handle) WriteMemory(address uintptr, data []byte) error {
	h.p.mu.Lock()
	defer h.p.mu.Unlock()
	base := uint32(address)
	for i, b := range data {
		a := base + uint32(i)
		if h.p.faults[a] || h.p.readOnly[a] {
			return ErrFault
		}
		h.p.mem[a] = b
	}
	return nil
}

func (h *handle) Protect(address uintptr, size int) error {
	h.p.mu.Lock()
	defer h.p.mu.Unlock()
	base := uint32(address)
	if h.p.faults[base] {
		return ErrFault
	}
	for i := 0; i < size; i++ {
		delete(h.p.readOnly, base+uint32(i))
	}
	h.p.protected[base] = size
	return nil
}

func (h *handle) Close() error { return nil }

// Target is a fixed utils.Target.
type Target struct {
	PID   uint32
	Alive bool
}

func (t Target) CurrentTarget() (uint32, bool) {
	return t.PID, t.Alive
}

// Live is a Target reporting pid 1 as alive.
var Live = Target{PID: 1, Alive: true}
