// Package memory implements a byte addressable space whose reads and
// writes are routed through handlers installed per address range.
//
// Ranges are keyed by their inclusive upper bound. An access at addr is
// served by the handler with the smallest upper bound >= addr, which
// mirrors the way the NES decodes addresses with a handful of high
// address lines. A default handler is always installed at 0xFFFF so
// that every address resolves.
package memory

import (
	"sort"
)

const MAX_ADDRESS = 0xFFFF

// ReadFunc serves a read of addr. It may have side effects.
type ReadFunc func(m *Memory, addr uint16) uint8

// WriteFunc serves a write of val to addr. It may have side effects.
type WriteFunc func(m *Memory, addr uint16, val uint8)

type readRange struct {
	upper uint16
	f     ReadFunc
}

type writeRange struct {
	upper uint16
	f     WriteFunc
}

// Memory is a contiguous buffer overlaid with range handlers.
type Memory struct {
	Data []uint8
	// Bus holds the last value read or written through the
	// dispatch path, which is what open bus reads return.
	Bus uint8

	reads  []readRange
	writes []writeRange
}

// New returns a Memory with a buffer of size bytes and the standard
// handlers installed.
func New(size int) *Memory {
	m := &Memory{Data: make([]uint8, size)}
	m.Unmap()
	return m
}

// Unmap discards every installed handler and reinstalls the standard
// buffer handlers over the whole address space.
func (m *Memory) Unmap() {
	m.reads = []readRange{{MAX_ADDRESS, StandardRead}}
	m.writes = []writeRange{{MAX_ADDRESS, StandardWrite}}
}

// Layout is a copy of a Memory's buffer, bus latch and handlers.
type Layout struct {
	data   []uint8
	bus    uint8
	reads  []readRange
	writes []writeRange
}

// Save captures the buffer and every installed handler.
func (m *Memory) Save() Layout {
	return Layout{
		data:   append([]uint8(nil), m.Data...),
		bus:    m.Bus,
		reads:  append([]readRange(nil), m.reads...),
		writes: append([]writeRange(nil), m.writes...),
	}
}

// Restore puts back what Save captured. The same Layout may be
// restored more than once.
func (m *Memory) Restore(l Layout) {
	m.Data = append([]uint8(nil), l.data...)
	m.Bus = l.bus
	m.reads = append([]readRange(nil), l.reads...)
	m.writes = append([]writeRange(nil), l.writes...)
}

// Len returns the size of the backing buffer.
func (m *Memory) Len() int {
	return len(m.Data)
}

// Resize changes the size of the backing buffer, preserving as much
// of the existing contents as fits.
func (m *Memory) Resize(size int) {
	d := make([]uint8, size)
	copy(d, m.Data)
	m.Data = d
}

// Reset zeroes the buffer and the bus latch. Handlers are untouched.
func (m *Memory) Reset() {
	for i := range m.Data {
		m.Data[i] = 0
	}
	m.Bus = 0
}

// MapRead installs f for the range ending at upper. The range starts
// one past the next lower installed bound.
func (m *Memory) MapRead(upper uint16, f ReadFunc) {
	i := sort.Search(len(m.reads), func(i int) bool { return m.reads[i].upper >= upper })
	if i < len(m.reads) && m.reads[i].upper == upper {
		m.reads[i].f = f
		return
	}
	m.reads = append(m.reads, readRange{})
	copy(m.reads[i+1:], m.reads[i:])
	m.reads[i] = readRange{upper, f}
}

// MapWrite installs f for the range ending at upper.
func (m *Memory) MapWrite(upper uint16, f WriteFunc) {
	i := sort.Search(len(m.writes), func(i int) bool { return m.writes[i].upper >= upper })
	if i < len(m.writes) && m.writes[i].upper == upper {
		m.writes[i].f = f
		return
	}
	m.writes = append(m.writes, writeRange{})
	copy(m.writes[i+1:], m.writes[i:])
	m.writes[i] = writeRange{upper, f}
}

// Map installs both a read and a write handler for the range ending
// at upper.
func (m *Memory) Map(upper uint16, r ReadFunc, w WriteFunc) {
	m.MapRead(upper, r)
	m.MapWrite(upper, w)
}

// Read dispatches a read of addr.
func (m *Memory) Read(addr uint16) uint8 {
	i := sort.Search(len(m.reads), func(i int) bool { return m.reads[i].upper >= addr })
	v := m.reads[i].f(m, addr)
	m.Bus = v
	return v
}

// Write dispatches a write of val to addr.
func (m *Memory) Write(addr uint16, val uint8) {
	m.Bus = val
	i := sort.Search(len(m.writes), func(i int) bool { return m.writes[i].upper >= addr })
	m.writes[i].f(m, addr, val)
}

// Read16 returns the little endian word at addr. addr+1 wraps at the
// top of the address space.
func (m *Memory) Read16(addr uint16) uint16 {
	lsb := uint16(m.Read(addr))
	msb := uint16(m.Read(addr + 1))
	return msb<<8 | lsb
}

// StandardRead reads the buffer directly. Addresses beyond the
// buffer behave as open bus.
func StandardRead(m *Memory, addr uint16) uint8 {
	if int(addr) >= len(m.Data) {
		return m.Bus
	}
	return m.Data[addr]
}

// StandardWrite writes the buffer directly. Addresses beyond the
// buffer are dropped.
func StandardWrite(m *Memory, addr uint16, val uint8) {
	if int(addr) < len(m.Data) {
		m.Data[addr] = val
	}
}

// OpenBusRead returns whatever was last driven on the bus.
func OpenBusRead(m *Memory, addr uint16) uint8 {
	return m.Bus
}

// OpenBusWrite discards the write.
func OpenBusWrite(m *Memory, addr uint16, val uint8) {}

// MirrorRead returns a handler that masks the address before reading
// the buffer.
func MirrorRead(mask uint16) ReadFunc {
	return func(m *Memory, addr uint16) uint8 {
		return StandardRead(m, addr&mask)
	}
}

// MirrorWrite returns a handler that masks the address before writing
// the buffer.
func MirrorWrite(mask uint16) WriteFunc {
	return func(m *Memory, addr uint16, val uint8) {
		StandardWrite(m, addr&mask, val)
	}
}
