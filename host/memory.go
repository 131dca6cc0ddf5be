// Copyright 2026 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

const pageSize = 256

// memory is a sparse 32-bit byte-addressable address space. Pages are
// allocated when first written; unwritten memory reads as zero.
type memory struct {
	pages map[uint32]*[pageSize]byte
}

func newMemory() *memory {
	return &memory{pages: make(map[uint32]*[pageSize]byte)}
}

func (m *memory) LoadByte(addr uint32) byte {
	if p, ok := m.pages[addr/pageSize]; ok {
		return p[addr%pageSize]
	}
	return 0
}

func (m *memory) StoreByte(addr uint32, v byte) {
	p, ok := m.pages[addr/pageSize]
	if !ok {
		if v == 0 {
			return
		}
		p = new([pageSize]byte)
		m.pages[addr/pageSize] = p
	}
	p[addr%pageSize] = v
}

// StoreBytes stores b starting at addr, wrapping at the end of the address
// space.
func (m *memory) StoreBytes(addr uint32, b []byte) {
	for i, v := range b {
		m.StoreByte(addr+uint32(i), v)
	}
}

// Fill stores v at every address from addr0 through addr1 inclusive.
func (m *memory) Fill(addr0, addr1 uint32, v byte) {
	for a := uint64(addr0); a <= uint64(addr1); a++ {
		m.StoreByte(uint32(a), v)
	}
}
