package memory

// Iterator walks the address space through the handler dispatch, so
// block copies observe the same mapping as single accesses.
type Iterator struct {
	m    *Memory
	addr uint16
}

// Begin returns an iterator at address 0.
func (m *Memory) Begin() Iterator {
	return Iterator{m: m}
}

// At returns an iterator at addr.
func (m *Memory) At(addr uint16) Iterator {
	return Iterator{m: m, addr: addr}
}

// Addr returns the current address.
func (it Iterator) Addr() uint16 {
	return it.addr
}

// Read reads the current address.
func (it Iterator) Read() uint8 {
	return it.m.Read(it.addr)
}

// Write writes val to the current address.
func (it Iterator) Write(val uint8) {
	it.m.Write(it.addr, val)
}

// Offset reads the address i bytes past the current one, wrapping at
// the top of the address space.
func (it Iterator) Offset(i int) uint8 {
	return it.m.Read(it.addr + uint16(i))
}

// Next returns an iterator at the following address.
func (it Iterator) Next() Iterator {
	return Iterator{m: it.m, addr: it.addr + 1}
}

// CopyTo fills dst with consecutive reads starting at the current
// address and returns the iterator that follows the last byte read.
func (it Iterator) CopyTo(dst []uint8) Iterator {
	for i := range dst {
		dst[i] = it.Read()
		it = it.Next()
	}
	return it
}
