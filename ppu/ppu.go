// Package ppu implements the 2C02 picture processing unit, one dot at
// a time.
//
// The dots of a scanline are driven by a small table of operation
// sequences, one per rendering phase, selected by a (state, cursor)
// pair. Sprite evaluation for the next line runs alongside as its own
// state machine. Pixels are handed to an output function as they are
// produced.
package ppu

import (
	"fmt"

	"github.com/bdwalton/nescycle/counter"
	"github.com/bdwalton/nescycle/logger"
	"github.com/bdwalton/nescycle/memory"
)

const (
	OAM_SIZE           = 256
	SECONDARY_OAM_SIZE = 32
	PALETTE_SIZE       = 32
	MAX_SPRITES        = 8
)

// Display constants
const (
	NES_RES_WIDTH  = 256
	NES_RES_HEIGHT = 240
)

// Scan position.
const (
	PRERENDER_LINE  = -1
	POSTRENDER_LINE = 240
	VBLANK_LINE     = 241
	LAST_LINE       = 260
	DOTS_PER_LINE   = 341
)

// Special Registers. These are the addresses on which they're exposed
// to the CPU. The eight registers repeat every 8 bytes up to 0x3FFF.
const (
	PPUCTRL   = 0x2000
	PPUMASK   = 0x2001
	PPUSTATUS = 0x2002
	OAMADDR   = 0x2003
	OAMDATA   = 0x2004
	PPUSCROLL = 0x2005
	PPUADDR   = 0x2006
	PPUDATA   = 0x2007
	OAMDMA    = 0x4014
)

// PPUCTRL bit flags
// 7  bit  0
// ---- ----
// VPHB SINN
// |||| ||||
// |||| ||++- Base nametable address
// |||| ||    (0 = $2000; 1 = $2400; 2 = $2800; 3 = $2C00)
// |||| |+--- VRAM address increment per CPU read/write of PPUDATA
// |||| |     (0: add 1, going across; 1: add 32, going down)
// |||| +---- Sprite pattern table address for 8x8 sprites
// ||||       (0: $0000; 1: $1000; ignored in 8x16 mode)
// |||+------ Background pattern table address (0: $0000; 1: $1000)
// ||+------- Sprite size (0: 8x8 pixels; 1: 8x16 pixels)
// |+-------- PPU master/slave select
// |          (0: read backdrop from EXT pins; 1: output color on EXT pins)
// +--------- Generate an NMI at the start of the
//            vertical blanking interval (0: off; 1: on)
const (
	CTRL_NAMETABLE1              = 1
	CTRL_NAMETABLE2              = 1 << 1
	CTRL_VRAM_ADD_INCREMENT      = 1 << 2
	CTRL_SPRITE_PATTERN_ADDR     = 1 << 3
	CTRL_BACKGROUND_PATTERN_ADDR = 1 << 4
	CTRL_SPRITE_SIZE             = 1 << 5
	CTRL_MASTER_SLAVE_SELECT     = 1 << 6
	CTRL_GENERATE_NMI            = 1 << 7
)

// VRAM increment options
const (
	CTRL_INCR_ACROSS = 1
	CTRL_INCR_DOWN   = 32
)

// 7  bit  0
// ---- ----
// VSO. ....
// |||| ||||
// |||+-++++- PPU open bus. Returns stale PPU bus contents.
// ||+------- Sprite overflow. The intent was for this flag to be set
// ||         whenever more than eight sprites appear on a scanline, but a
// ||         hardware bug causes the actual behavior to be more complicated
// ||         and generate false positives as well as false negatives; see
// ||         PPU sprite evaluation. This flag is set during sprite
// ||         evaluation and cleared at dot 1 (the second dot) of the
// ||         pre-render line.
// |+-------- Sprite 0 Hit.  Set when a nonzero pixel of sprite 0 overlaps
// |          a nonzero background pixel; cleared at dot 1 of the pre-render
// |          line.  Used for raster timing.
// +--------- Vertical blank has started (0: not in vblank; 1: in vblank).
//            Set at dot 1 of line 241 (the line *after* the post-render
//            line); cleared after reading $2002 and at dot 1 of the
//            pre-render line.
const (
	STATUS_SPRITE_OVERFLOW = 1 << 5
	STATUS_SPRITE_0_HIT    = 1 << 6
	STATUS_VERTICAL_BLANK  = 1 << 7
)

// 7  bit  0
// ---- ----
// BGRs bMmG
// |||| ||||
// |||| |||+- Greyscale (0: normal color, 1: produce a greyscale display)
// |||| ||+-- 1: Show background in leftmost 8 pixels of screen, 0: Hide
// |||| |+--- 1: Show sprites in leftmost 8 pixels of screen, 0: Hide
// |||| +---- 1: Show background
// |||+------ 1: Show sprites
// ||+------- Emphasize red (green on PAL/Dendy)
// |+-------- Emphasize green (red on PAL/Dendy)
// +--------- Emphasize blue

// Mask flags
const (
	MASK_GREYSCALE         = 1 << 0
	MASK_SHOW_LEFT_TILES   = 1 << 1
	MASK_SHOW_LEFT_SPRITES = 1 << 2
	MASK_RENDER_BG         = 1 << 3
	MASK_RENDER_FG         = 1 << 4
	MASK_EMPHASIZE_RED     = 1 << 5
	MASK_EMPHASIZE_GREEN   = 1 << 6
	MASK_EMPHASIZE_BLUE    = 1 << 7
)


const (
	PATTERN_TABLE_0 = 0x0000
	PATTERN_TABLE_1 = 0x1000
	PALETTE_RAM     = 0x3F00
	PPU_ADDR_MASK   = 0x3FFF
)

// CPU is what the PPU needs from the processor: the NMI line and a way
// to hold it off the bus during OAM DMA.
type CPU interface {
	EdgeNMI()
	Stall(cycles int)
	Cycles() uint64
}

type PPU struct {
	mem     *memory.Memory // the PPU address space
	cpuMem  *memory.Memory // source for OAM DMA
	cpu     CPU
	log     logger.Logger
	timer   *counter.Counter
	output  func(x, y int, rgb uint32)
	frameFn func()

	// registers that maintain state not captured in v, t, etc.
	ctrl    uint8
	mask    uint8
	status  uint8
	oamAddr uint8

	// internal registers
	v, t loopy // current vram addr, temp vram addr
	x    uint8 // fine x scroll, only 3 bits used
	w    bool  // first or second write toggle

	ioLatch        uint8 // last value driven on the CPU side data bus
	readBuffer     uint8 // PPUDATA reads are delayed by one access
	suppressVBlank bool  // PPUSTATUS was read as vblank was about to start

	scanline int // -1 (pre-render) through 260
	dot      int // 0 through 340
	frame    uint64
	state    int
	cursor   int

	// background pipeline
	ntLatch, atLatch uint8
	loLatch, hiLatch uint8
	patLo, patHi     uint16
	attrLo, attrHi   uint16

	// sprite evaluation for the next line
	oam       [OAM_SIZE]uint8
	secondary [SECONDARY_OAM_SIZE]uint8
	eval      evaluator

	// sprites fetched for the current line
	spriteCount    int
	spriteZeroLine bool
	spriteLo       [MAX_SPRITES]uint8
	spriteHi       [MAX_SPRITES]uint8
	spriteAttr     [MAX_SPRITES]uint8
	spriteX        [MAX_SPRITES]uint8

	palette [PALETTE_SIZE]uint8
}

// New returns a PPU working on mem, the 16k PPU address space. It steps
// one dot per Tick until SetDivider says otherwise.
func New(mem *memory.Memory, cpu CPU, log logger.Logger) *PPU {
	p := &PPU{
		mem: mem,
		cpu: cpu,
		log: logger.Or(log),
	}
	p.timer = counter.New(0, p.step)
	p.Reset()
	return p
}

// Install maps the registers and OAM DMA into CPU memory and palette
// RAM into the top of PPU memory. It must follow cartridge loading,
// which clears both maps.
func (p *PPU) Install(cpuMem *memory.Memory) {
	p.cpuMem = cpuMem
	cpuMem.Map(0x3FFF, p.readRegister, p.writeRegister)
	cpuMem.Map(OAMDMA, memory.OpenBusRead, p.writeDMA)
	p.mem.Map(PPU_ADDR_MASK, p.readPalette, p.writePalette)
}

// SetDivider makes the PPU run one dot every reload+1 ticks.
func (p *PPU) SetDivider(reload int) {
	p.timer.SetReload(reload)
	p.timer.Restart()
}

// Reset puts the scan position at the start of the pre-render line and
// clears the registers the reset line clears.
func (p *PPU) Reset() {
	p.ctrl, p.mask, p.status = 0, 0, 0
	p.w = false
	p.t, p.x = 0, 0
	p.readBuffer = 0
	p.suppressVBlank = false
	p.scanline, p.dot = PRERENDER_LINE, 0
	p.frame = 0
	p.state, p.cursor = STATE_INIT_VISIBLE, 0
	p.eval = evaluator{}
	p.spriteCount = 0
}

// Tick advances the PPU n master clock ticks.
func (p *PPU) Tick(n int) {
	p.timer.Tick(n)
}

// SetOutput installs the function called once per visible pixel.
func (p *PPU) SetOutput(f func(x, y int, rgb uint32)) {
	p.output = f
}

// SetFrameFunc installs the function called as each vertical blank
// starts.
func (p *PPU) SetFrameFunc(f func()) {
	p.frameFn = f
}

// Frame returns the number of frames started since reset.
func (p *PPU) Frame() uint64 {
	return p.frame
}

// Position returns the scanline and the dot that will run next.
func (p *PPU) Position() (scanline, dot int) {
	return p.scanline, p.dot
}

func (p *PPU) String() string {
	return fmt.Sprintf("line=%d dot=%d v=%s fineX=%03b t=%s ctrl=%08b mask=%08b status=%08b frame=%d", p.scanline, p.dot, p.v, p.x, p.t, p.ctrl, p.mask, p.status, p.frame)
}

func (p *PPU) renderingEnabled() bool {
	return p.mask&(MASK_RENDER_BG|MASK_RENDER_FG) != 0
}

// renderingLine reports whether the current line fetches tiles, which
// is every visible line and the pre-render line.
func (p *PPU) renderingLine() bool {
	return p.scanline < POSTRENDER_LINE && p.renderingEnabled()
}

func (p *PPU) spriteHeight() int {
	if p.ctrl&CTRL_SPRITE_SIZE != 0 {
		return 16
	}
	return 8
}

func (p *PPU) read(addr uint16) uint8 {
	return p.mem.Read(addr & PPU_ADDR_MASK)
}

func (p *PPU) write(addr uint16, val uint8) {
	p.mem.Write(addr&PPU_ADDR_MASK, val)
}
