package nesrom

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// buildROM returns an image with each PRG bank filled with its bank
// number and each CHR bank with 0x80 plus its number.
func buildROM(flags6, prgBanks, chrBanks uint8, extra ...[]byte) []byte {
	b := []byte{'N', 'E', 'S', 0x1A, prgBanks, chrBanks, flags6, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	for _, e := range extra {
		b = append(b, e...)
	}
	for i := uint8(0); i < prgBanks; i++ {
		b = append(b, bytes.Repeat([]byte{i}, PRG_BLOCK_SIZE)...)
	}
	for i := uint8(0); i < chrBanks; i++ {
		b = append(b, bytes.Repeat([]byte{0x80 + i}, CHR_BLOCK_SIZE)...)
	}
	return b
}

func TestNew(t *testing.T) {
	cases := []struct {
		image            []byte
		wantPrg, wantChr int
		wantTrainer      bool
		wantMapper       uint8
	}{
		{buildROM(0x00, 1, 1), PRG_BLOCK_SIZE, CHR_BLOCK_SIZE, false, 0},
		{buildROM(0x31, 2, 0), 2 * PRG_BLOCK_SIZE, 0, false, 3},
		{buildROM(TRAINER, 1, 1, bytes.Repeat([]byte{0xEE}, TRAINER_SIZE)), PRG_BLOCK_SIZE, CHR_BLOCK_SIZE, true, 0},
	}

	for i, tc := range cases {
		r, err := New(bytes.NewReader(tc.image))
		if err != nil {
			t.Errorf("%d: New: %v", i, err)
			continue
		}
		if len(r.PRG()) != tc.wantPrg || len(r.CHR()) != tc.wantChr || r.HasTrainer() != tc.wantTrainer || r.MapperNum() != tc.wantMapper {
			t.Errorf("%d: Got prg=%d chr=%d trainer=%t mapper=%d, want %d %d %t %d", i, len(r.PRG()), len(r.CHR()), r.HasTrainer(), r.MapperNum(), tc.wantPrg, tc.wantChr, tc.wantTrainer, tc.wantMapper)
		}
	}
}

func TestBankContents(t *testing.T) {
	r, err := New(bytes.NewReader(buildROM(TRAINER, 2, 1, bytes.Repeat([]byte{0xEE}, TRAINER_SIZE))))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	prg, chr, tr := r.PRG(), r.CHR(), r.Trainer()
	if prg[0] != 0 || prg[PRG_BLOCK_SIZE] != 1 || chr[0] != 0x80 || tr[0] != 0xEE {
		t.Errorf("Got prg %d/%d, chr 0x%02x, trainer 0x%02x, want 0/1, 0x80, 0xee", prg[0], prg[PRG_BLOCK_SIZE], chr[0], tr[0])
	}

	// The accessors hand out copies.
	prg[0] = 0x55
	if r.PRG()[0] != 0 {
		t.Errorf("PRG() exposed the ROM's own buffer")
	}
}

func TestNewErrors(t *testing.T) {
	full := buildROM(0x00, 2, 1)
	bad := append([]byte(nil), full...)
	bad[0] = 'X'

	cases := []struct {
		image []byte
		want  error
	}{
		{nil, ErrTruncated},
		{full[:10], ErrTruncated},
		{bad, ErrInvalidHeader},
		{full[:HEADER_SIZE+PRG_BLOCK_SIZE], ErrTruncated},
		{full[:len(full)-1], ErrTruncated},
		{buildROM(TRAINER, 1, 1), ErrTruncated},
	}

	for i, tc := range cases {
		if _, err := New(bytes.NewReader(tc.image)); !errors.Is(err, tc.want) {
			t.Errorf("%d: Got %v, want %v", i, err, tc.want)
		}
	}
}

func TestPlayChoice(t *testing.T) {
	img := buildROM(0x00, 1, 1)
	img[7] = PLAYCHOICE_10
	if _, err := New(bytes.NewReader(img)); !errors.Is(err, ErrTruncated) {
		t.Errorf("Got %v with no INST ROM, want %v", err, ErrTruncated)
	}

	// The PROM is optional.
	img = append(img, make([]byte, PC_INST_SIZE)...)
	r, err := New(bytes.NewReader(img))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.pcInstRom == nil || r.pcPROM != nil {
		t.Errorf("Got inst=%t prom=%t, want true false", r.pcInstRom != nil, r.pcPROM != nil)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.nes")
	if err := os.WriteFile(path, buildROM(BATTERY_BACKED_SRAM|MIRRORING, 1, 1), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !r.HasSaveRAM() || r.MirroringMode() != MIRROR_VERTICAL || r.PrgRAMSize() != 1 {
		t.Errorf("Got battery=%t mirroring=%d ram=%d, want true %d 1", r.HasSaveRAM(), r.MirroringMode(), r.PrgRAMSize(), MIRROR_VERTICAL)
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.nes")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Got %v, want %v", err, os.ErrNotExist)
	}
}
