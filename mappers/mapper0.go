package mappers

import (
	"fmt"
	"io"

	"github.com/bdwalton/nescycle/logger"
	"github.com/bdwalton/nescycle/memory"
	"github.com/bdwalton/nescycle/nesrom"
)

func init() {
	RegisterMapper(0, "NROM", newMapper0)
}

const (
	PRG_START     = 0x8000
	TRAINER_START = 0x7000
	CHR_END       = 0x1FFF
	NAMETABLE_END = 0x3EFF
)

// Nametable mirroring masks. The PPU has 2KB of nametable RAM, and
// masking off A10 or A11 folds the four logical tables onto it.
const (
	MIRROR_MASK_VERTICAL    = 0x27FF
	MIRROR_MASK_HORIZONTAL  = 0x2BFF
	MIRROR_MASK_FOUR_SCREEN = 0x2FFF // cartridge supplies the other 2KB
)

// mapper0 is NROM: 16 or 32KB of PRG at 0x8000 and 8KB of CHR, with no
// bank switching.
//
// https://www.nesdev.org/wiki/NROM
type mapper0 struct {
	*baseMapper
}

func newMapper0(rom *nesrom.ROM, cpuMem, ppuMem *memory.Memory, save io.ReadWriteSeeker, log logger.Logger) (Mapper, error) {
	banks := rom.NumPrgBlocks()
	if banks > 2 {
		return nil, fmt.Errorf("NROM has at most 2 PRG banks, ROM has %d", banks)
	}

	m := &mapper0{baseMapper: newBaseMapper(0, "NROM", cpuMem, save, log)}

	if cpuMem.Len() < memory.MAX_ADDRESS+1 {
		cpuMem.Resize(memory.MAX_ADDRESS + 1)
	}
	if ppuMem.Len() < NAMETABLE_END+1 {
		ppuMem.Resize(NAMETABLE_END + 1)
	}

	// CPU side
	cpuMem.Map(SRAM_START-1, memory.OpenBusRead, memory.OpenBusWrite)
	switch {
	case rom.HasSaveRAM():
		if err := m.installSRAM(); err != nil {
			return nil, err
		}
	case rom.HasTrainer():
		// The trainer needs somewhere to live, so the board gets
		// PRG RAM even without a battery.
		cpuMem.Map(SRAM_END, memory.StandardRead, memory.StandardWrite)
	default:
		cpuMem.Map(SRAM_END, memory.OpenBusRead, memory.OpenBusWrite)
	}
	if t := rom.Trainer(); t != nil {
		copy(cpuMem.Data[TRAINER_START:], t)
	}

	copy(cpuMem.Data[PRG_START:], rom.PRG())
	prgRead := memory.StandardRead
	if banks == 1 {
		prgRead = memory.MirrorRead(0xBFFF)
	}
	cpuMem.Map(memory.MAX_ADDRESS, prgRead, memory.OpenBusWrite)

	// PPU side
	chrWrite := memory.OpenBusWrite
	if rom.NumChrBlocks() == 0 {
		chrWrite = memory.StandardWrite
	} else {
		copy(ppuMem.Data[:CHR_END+1], rom.CHR())
	}
	ppuMem.Map(CHR_END, memory.StandardRead, chrWrite)

	mask := mirrorMask(rom.MirroringMode())
	ppuMem.Map(NAMETABLE_END, memory.MirrorRead(mask), memory.MirrorWrite(mask))

	return m, nil
}

func mirrorMask(mode uint8) uint16 {
	switch mode {
	case nesrom.MIRROR_VERTICAL:
		return MIRROR_MASK_VERTICAL
	case nesrom.MIRROR_FOUR_SCREEN:
		return MIRROR_MASK_FOUR_SCREEN
	default:
		return MIRROR_MASK_HORIZONTAL
	}
}
