// memory.go - the flat byte-addressable memory array (spec §3, §4.1)

package main

import "encoding/binary"

// Memory is the VM's contiguous, byte-addressable backing store. Unlike the
// teacher's SystemBus (memory_bus.go) it carries no mutex and no I/O region
// map: the VM is single-threaded and has no memory-mapped peripherals, so
// the concurrency and dispatch machinery that motivates those in the
// teacher would be dead weight here.
type Memory struct {
	bytes []byte
}

// NewMemory allocates a zeroed memory array of the given size in bytes.
func NewMemory(size uint32) *Memory {
	return &Memory{bytes: make([]byte, size)}
}

// Size returns the memory's total length in bytes.
func (m *Memory) Size() uint32 { return uint32(len(m.bytes)) }

// InRange reports whether [addr, addr+width) lies entirely within memory.
func (m *Memory) InRange(addr uint32, width uint32) bool {
	if width == 0 {
		return addr <= m.Size()
	}
	end := uint64(addr) + uint64(width)
	return end <= uint64(m.Size())
}

func (m *Memory) readByte(addr uint32) byte {
	return m.bytes[addr]
}

func (m *Memory) writeByte(addr uint32, v byte) {
	m.bytes[addr] = v
}

func (m *Memory) readWord(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(m.bytes[addr : addr+WordSize])
}

func (m *Memory) writeWord(addr uint32, v uint32) {
	binary.LittleEndian.PutUint32(m.bytes[addr:addr+WordSize], v)
}

// readBlock copies up to BlockSize bytes starting at a block-aligned base
// address into dst, zero-filling any tail that runs past the end of memory.
func (m *Memory) readBlock(base uint32, dst []byte) {
	for i := range dst {
		addr := uint64(base) + uint64(i)
		if addr < uint64(m.Size()) {
			dst[i] = m.bytes[addr]
		} else {
			dst[i] = 0
		}
	}
}

// writeBlock writes src back starting at a block-aligned base address,
// discarding any tail that runs past the end of memory (the cache geometry
// guarantees base is always < memory size when this is called).
func (m *Memory) writeBlock(base uint32, src []byte) {
	for i, b := range src {
		addr := uint64(base) + uint64(i)
		if addr < uint64(m.Size()) {
			m.bytes[addr] = b
		}
	}
}

// LoadImage copies data verbatim into memory starting at offset 0, as the
// loader requires (spec §4.1).
func (m *Memory) LoadImage(data []byte) {
	copy(m.bytes, data)
}
