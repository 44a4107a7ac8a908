// package nesrom implements support for the NES (iNES, NES2) ROM
// format. https://www.nesdev.org/wiki/INES
package nesrom

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrInvalidHeader = errors.New("invalid iNES header")
	ErrTruncated     = errors.New("truncated ROM image")
)

const (
	TRAINER_SIZE   = 512
	PRG_BLOCK_SIZE = 16384
	CHR_BLOCK_SIZE = 8192
	PC_INST_SIZE   = 8192
	PC_PROM_SIZE   = 32
)

type ROM struct {
	h         *header
	trainer   []byte // if present
	prg       []byte // 16384 * x bytes; x from header
	chr       []byte // 8192 * y bytes; y from header
	pcInstRom []byte // if present
	pcPROM    []byte // if present; often missing - see PC10 ROM-Images
}

// Open reads the image at path.
func Open(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open ROM file %q: %w", path, err)
	}
	defer f.Close()

	r, err := New(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// New reads an iNES image from rd.
func New(rd io.Reader) (*ROM, error) {
	hbytes := make([]byte, HEADER_SIZE)
	if _, err := io.ReadFull(rd, hbytes); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrTruncated, err)
	}

	h, err := parseHeader(hbytes)
	if err != nil {
		return nil, err
	}

	r := &ROM{h: h}
	if h.hasTrainer() {
		if r.trainer, err = readBlock(rd, "trainer", TRAINER_SIZE); err != nil {
			return nil, err
		}
	}
	if r.prg, err = readBlock(rd, "PRG ROM", PRG_BLOCK_SIZE*int(h.prgSize)); err != nil {
		return nil, err
	}
	if r.chr, err = readBlock(rd, "CHR ROM", CHR_BLOCK_SIZE*int(h.chrSize)); err != nil {
		return nil, err
	}

	if h.hasPlayChoice() {
		if r.pcInstRom, err = readBlock(rd, "PlayChoice INST ROM", PC_INST_SIZE); err != nil {
			return nil, err
		}
		// Plenty of dumps leave the PROM off, so it's only kept when
		// it's all there.
		prom := make([]byte, PC_PROM_SIZE)
		if _, err := io.ReadFull(rd, prom); err == nil {
			r.pcPROM = prom
		}
	}

	return r, nil
}

func readBlock(rd io.Reader, what string, size int) ([]byte, error) {
	b := make([]byte, size)
	if n, err := io.ReadFull(rd, b); err != nil {
		return nil, fmt.Errorf("%w: reading %s (read %d, wanted %d): %v", ErrTruncated, what, n, size, err)
	}
	return b, nil
}

func (r *ROM) String() string {
	var sb strings.Builder

	sb.WriteString(r.h.String())
	if r.h.hasTrainer() {
		sb.WriteString(", trainer")
	}
	if r.h.hasPrgRAM() {
		sb.WriteString(", battery")
	}
	if r.h.isNES2Format() {
		sb.WriteString(", NES 2.0")
	}

	return sb.String()
}

func (r *ROM) MapperNum() uint8 {
	return r.h.mapperNum()
}

func (r *ROM) MirroringMode() uint8 {
	return r.h.mirroringMode()
}

// HasSaveRAM reports whether the board has battery backed PRG RAM at
// 0x6000-0x7FFF.
func (r *ROM) HasSaveRAM() bool {
	return r.h.hasPrgRAM()
}

// PrgRAMSize is in 8KB units.
func (r *ROM) PrgRAMSize() uint8 {
	return r.h.prgRAMSize()
}

func (r *ROM) HasTrainer() bool {
	return r.h.hasTrainer()
}

func (r *ROM) IsNES2() bool {
	return r.h.isNES2Format()
}

func (r *ROM) TVSystem() uint8 {
	return r.h.tvSystem()
}

func (r *ROM) NumPrgBlocks() uint8 {
	return r.h.prgSize
}

// NumChrBlocks is 0 for boards with CHR RAM.
func (r *ROM) NumChrBlocks() uint8 {
	return r.h.chrSize
}

// PRG returns a copy of the PRG ROM banks.
func (r *ROM) PRG() []byte {
	return append([]byte(nil), r.prg...)
}

// CHR returns a copy of the CHR ROM banks.
func (r *ROM) CHR() []byte {
	return append([]byte(nil), r.chr...)
}

// Trainer returns a copy of the trainer, or nil when there isn't one.
func (r *ROM) Trainer() []byte {
	if r.trainer == nil {
		return nil
	}
	return append([]byte(nil), r.trainer...)
}
