// Package mappers implements and registers mappers that are
// referenced numerically by iNES and NES2.0 ROM files.
//
// A mapper doesn't sit between the CPU and memory. Loading one
// installs its read and write handlers into the CPU and PPU address
// spaces and copies the banks it needs into their buffers, after which
// the memory dispatch does the rest.
package mappers

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/bdwalton/nescycle/counter"
	"github.com/bdwalton/nescycle/logger"
	"github.com/bdwalton/nescycle/memory"
	"github.com/bdwalton/nescycle/nesrom"
)

var ErrUnsupportedMapper = errors.New("unsupported mapper")

const (
	SRAM_START = 0x6000
	SRAM_END   = 0x7FFF
	SRAM_SIZE  = SRAM_END - SRAM_START + 1

	// Dirty save RAM is written back about once per emulated
	// second, counted in master clock ticks.
	FLUSH_INTERVAL = 21477272
)

type Mapper interface {
	ID() uint8
	Name() string
	// Tick advances the mapper n master clock ticks.
	Tick(n int)
	// Flush writes dirty save RAM to the save stream.
	Flush() error
	SaveState() State
	LoadState(State) error
}

// State is the part of a mapper that isn't in the CPU or PPU memory
// buffers.
type State struct {
	ID    uint8
	Dirty bool
	Flush counter.State
	Regs  []uint8 // bank registers, for the mappers that have them
}

// Factory installs a mapper for rom into the two address spaces. save
// may be nil.
type Factory func(rom *nesrom.ROM, cpuMem, ppuMem *memory.Memory, save io.ReadWriteSeeker, log logger.Logger) (Mapper, error)

type registration struct {
	name string
	f    Factory
}

// A global registry of mappers, keyed by mapper id
var allMappers = map[uint8]registration{}

// RegisterMapper makes a mapper available to Load. It is meant to be
// called from init().
func RegisterMapper(id uint8, name string, f Factory) {
	if _, ok := allMappers[id]; ok {
		panic(fmt.Sprintf("mapper %d registered twice", id))
	}
	allMappers[id] = registration{name, f}
}

// Supported returns the registered mapper ids in order.
func Supported() []uint8 {
	var ids []uint8
	for id := range allMappers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Load clears both address spaces and installs the mapper rom asks
// for. The console installs its own handlers afterwards. If the
// mapper can't be built, both address spaces are put back the way
// they were.
func Load(rom *nesrom.ROM, cpuMem, ppuMem *memory.Memory, save io.ReadWriteSeeker, log logger.Logger) (Mapper, error) {
	id := rom.MapperNum()
	reg, ok := allMappers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, id)
	}

	log = logger.Or(log)
	cpuLayout, ppuLayout := cpuMem.Save(), ppuMem.Save()
	cpuMem.Unmap()
	ppuMem.Unmap()
	m, err := reg.f(rom, cpuMem, ppuMem, save, log)
	if err != nil {
		cpuMem.Restore(cpuLayout)
		ppuMem.Restore(ppuLayout)
		return nil, fmt.Errorf("mapper %d (%s): %w", id, reg.name, err)
	}
	log.Logf("mapper", "installed %d (%s): %s", id, reg.name, rom)
	return m, nil
}

// baseMapper carries the things every mapper has: save RAM and the
// periodic flush of it.
type baseMapper struct {
	id     uint8
	name   string
	cpuMem *memory.Memory
	save   io.ReadWriteSeeker
	log    logger.Logger
	flush  *counter.Counter
	dirty  bool
}

func newBaseMapper(id uint8, name string, cpuMem *memory.Memory, save io.ReadWriteSeeker, log logger.Logger) *baseMapper {
	bm := &baseMapper{id: id, name: name, cpuMem: cpuMem, save: save, log: log}
	bm.flush = counter.New(FLUSH_INTERVAL-1, bm.flushTick)
	return bm
}

func (bm *baseMapper) ID() uint8 {
	return bm.id
}

func (bm *baseMapper) Name() string {
	return bm.name
}

func (bm *baseMapper) String() string {
	return bm.name
}

func (bm *baseMapper) Tick(n int) {
	bm.flush.Tick(n)
}

func (bm *baseMapper) flushTick() {
	if err := bm.Flush(); err != nil {
		bm.log.Logf("mapper", "flushing save RAM: %v", err)
	}
}

func (bm *baseMapper) sram() []uint8 {
	return bm.cpuMem.Data[SRAM_START : SRAM_END+1]
}

// installSRAM maps save RAM at 0x6000-0x7FFF and preloads it from the
// save stream. A short or empty stream leaves the rest zeroed.
func (bm *baseMapper) installSRAM() error {
	bm.cpuMem.Map(SRAM_END, memory.StandardRead, bm.writeSRAM)
	if bm.save == nil {
		return nil
	}

	if _, err := bm.save.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding save: %w", err)
	}
	n, err := io.ReadFull(bm.save, bm.sram())
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		bm.log.Logf("mapper", "loaded %d bytes of save RAM", n)
		return nil
	default:
		return fmt.Errorf("reading save: %w", err)
	}
}

func (bm *baseMapper) writeSRAM(m *memory.Memory, addr uint16, val uint8) {
	if m.Data[addr] != val {
		m.Data[addr] = val
		bm.dirty = true
	}
}

func (bm *baseMapper) Flush() error {
	if !bm.dirty || bm.save == nil {
		return nil
	}
	if _, err := bm.save.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding save: %w", err)
	}
	if _, err := bm.save.Write(bm.sram()); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	bm.dirty = false
	bm.log.Logf("mapper", "flushed %d bytes of save RAM", SRAM_SIZE)
	return nil
}

func (bm *baseMapper) SaveState() State {
	return State{ID: bm.id, Dirty: bm.dirty, Flush: bm.flush.State()}
}

func (bm *baseMapper) LoadState(s State) error {
	if s.ID != bm.id {
		return fmt.Errorf("state is for mapper %d, not %d (%s)", s.ID, bm.id, bm.name)
	}
	bm.dirty = s.Dirty
	bm.flush.SetState(s.Flush)
	return nil
}
