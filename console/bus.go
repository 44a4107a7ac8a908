package console

import (
	"github.com/bdwalton/nescycle/memory"
)

const (
	CPU_MEMORY_SIZE = memory.MAX_ADDRESS + 1
	PPU_MEMORY_SIZE = 0x4000

	// 0x800-0x1FFF mirrors the 2KB of internal RAM at 0x0000-0x07FF
	RAM_END  = 0x1FFF
	RAM_MASK = 0x07FF

	CONTROLLER_1 = 0x4016
	CONTROLLER_2 = 0x4017
)

// installBus lays the console's own devices over the cartridge's
// handlers. Loading a cartridge clears both address spaces, so this
// runs after every load.
//
// https://www.nesdev.org/wiki/CPU_memory_map
//
//	0x0000-0x1FFF  internal RAM, mirrored every 2KB
//	0x2000-0x3FFF  PPU registers, mirrored every 8 bytes
//	0x4000-0x4013  APU channels
//	0x4014         OAM DMA
//	0x4015         APU status
//	0x4016         controller strobe, controller 1
//	0x4017         controller 2 (reads), APU frame counter (writes)
//	0x4018-0xFFFF  cartridge
func (m *Machine) installBus() {
	m.cpuMem.Map(RAM_END, memory.MirrorRead(RAM_MASK), memory.MirrorWrite(RAM_MASK))
	m.ppu.Install(m.cpuMem)
	m.apu.Install(m.cpuMem)
	m.cpuMem.Map(CONTROLLER_1, m.readController, m.writeStrobe)
	m.cpuMem.MapRead(CONTROLLER_2, m.readController)
}

func (m *Machine) readController(mem *memory.Memory, addr uint16) uint8 {
	// Only the low bits are driven. The rest is whatever was last on
	// the bus, normally 0x40 from the operand's high byte.
	return mem.Bus&0xE0 | m.pads[addr-CONTROLLER_1].read()
}

func (m *Machine) writeStrobe(mem *memory.Memory, addr uint16, val uint8) {
	for i := range m.pads {
		m.pads[i].write(val)
	}
}
