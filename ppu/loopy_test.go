package ppu

import (
	"testing"
)

func TestLoopyGet(t *testing.T) {
	cases := []struct {
		data                           uint16
		wantCoarseX, wantCoarseY       uint16
		wantNameTableX, wantNameTableY uint16
		wantFineY                      uint16
	}{
		{0b0000_0000_0000_0000, 0, 0, 0, 0, 0},
		{0b0111_1011_1001_1000, 0b11000, 0b11100, 0, 1, 0b111},
		{0b0011_0111_1001_0111, 0b10111, 0b11100, 1, 0, 0b011},
		{0b0011_1111_1001_0111, 0b10111, 0b11100, 1, 1, 0b011},
		{0b0011_0011_1011_0111, 0b10111, 0b11101, 0, 0, 0b011},
		{0b0011_0000_0001_0111, 0b10111, 0, 0, 0, 0b011},
	}

	for i, tc := range cases {
		l := loopy(tc.data)

		cx, cy, ntx, nty, fy := l.coarseX(), l.coarseY(), l.nametableX(), l.nametableY(), l.fineY()
		if cx != tc.wantCoarseX || cy != tc.wantCoarseY || ntx != tc.wantNameTableX || nty != tc.wantNameTableY || fy != tc.wantFineY {
			t.Errorf("%d: Got %016b, %016b, %016b, %016b, %016b, wanted %016b, %016b, %016b, %016b, %016b", i, cx, cy, ntx, nty, fy, tc.wantCoarseX, tc.wantCoarseY, tc.wantNameTableX, tc.wantNameTableY, tc.wantFineY)
		}
	}
}

func TestLoopySetCoarseX(t *testing.T) {
	cases := []struct {
		data     uint16
		ocx, ncx uint16
	}{
		{0b0000_0000_0000_0000, 0, 0},
		{0b0111_1011_1001_1000, 0b11000, 0b11100},
		{0b0011_0111_1001_0111, 0b10111, 0b11100},
		{0b0011_1111_1001_0111, 0b10111, 0b10000},
		{0b0011_0011_1011_0111, 0b10111, 0b11101},
		{0b0011_0000_0001_0111, 0b10111, 0b00100},
	}

	for i, tc := range cases {
		l := loopy(tc.data)

		ocx := l.coarseX()
		l.setCoarseX(tc.ncx)
		if got := l.coarseX(); ocx != tc.ocx || got != tc.ncx {
			t.Errorf("%d: Got ocx = %05b, ncx = %05b, wanted %05b, %05b", i, ocx, got, tc.ocx, tc.ncx)

		}
	}
}

func TestLoopySetCoarseY(t *testing.T) {
	cases := []struct {
		data     uint16
		ocy, ncy uint16
	}{
		{0b0000_0000_0000_0000, 0, 0},
		{0b0111_1011_1001_1000, 0b11100, 0b11100},
		{0b0011_0111_1011_0111, 0b11101, 0b10000},
		{0b0011_1111_1111_0111, 0b11111, 0b00000},
		{0b0011_0001_0101_0111, 0b01010, 0b10101},
	}

	for i, tc := range cases {
		l := loopy(tc.data)

		ocy := l.coarseY()
		l.setCoarseY(tc.ncy)
		if got := l.coarseY(); ocy != tc.ocy || got != tc.ncy {
			t.Errorf("%d: Got ocy = %05b, ncy = %05b, wanted %05b, %05b", i, ocy, got, tc.ocy, tc.ncy)

		}
	}
}

func TestLoopySetFineY(t *testing.T) {
	cases := []struct {
		data     uint16
		ofy, nfy uint16
	}{
		{0b0000_0000_0000_0000, 0, 0},
		{0b0111_1011_1001_1000, 0b111, 0b101},
		{0b0011_0111_1011_0111, 0b011, 0},
		{0b0111_1111_1111_0111, 0b111, 0b010},
	}

	for i, tc := range cases {
		l := loopy(tc.data)

		ofy := l.fineY()
		l.setFineY(tc.nfy)
		if got := l.fineY(); ofy != tc.ofy || got != tc.nfy {
			t.Errorf("%d: Got ofy = %03b, nfy = %03b, wanted %03b, %03b", i, ofy, got, tc.ofy, tc.nfy)

		}
	}
}

func TestLoopyIncrementX(t *testing.T) {
	cases := []struct {
		data, want uint16
	}{
		{0x0000, 0x0001},
		{0x7018, 0x7019},
		{0x001F, 0x0400},
		{0x041F, 0x0000},
		{0x0C3F, 0x0820},
	}

	for i, tc := range cases {
		l := loopy(tc.data)
		l.incrementX()
		if uint16(l) != tc.want {
			t.Errorf("%d: Got %016b, wanted %016b", i, uint16(l), tc.want)
		}
	}
}

func TestLoopyIncrementY(t *testing.T) {
	cases := []struct {
		data, want uint16
	}{
		{0x0000, 0x1000},
		{0x601F, 0x701F},
		{0x70A0, 0x00C0},
		{0x73A0, 0x0800}, // row 29 switches nametable
		{0x7BA0, 0x0000},
		{0x73C0, 0x03E0},
		{0x73E0, 0x0000}, // row 31 wraps in place
		{0x7BE0, 0x0800},
	}

	for i, tc := range cases {
		l := loopy(tc.data)
		l.incrementY()
		if uint16(l) != tc.want {
			t.Errorf("%d: Got %016b, wanted %016b", i, uint16(l), tc.want)
		}
	}
}

func TestLoopyCopy(t *testing.T) {
	cases := []struct {
		v, t         uint16
		wantX, wantY uint16
	}{
		{0x7FFF, 0x0000, 0x7BE0, 0x041F},
		{0x0000, 0x7FFF, 0x041F, 0x7BE0},
		{0x1234, 0x4321, 0x1221, 0x4334},
	}

	for i, tc := range cases {
		x, y := loopy(tc.v), loopy(tc.v)
		x.copyX(loopy(tc.t))
		y.copyY(loopy(tc.t))
		if uint16(x) != tc.wantX || uint16(y) != tc.wantY {
			t.Errorf("%d: Got %04x, %04x, wanted %04x, %04x", i, uint16(x), uint16(y), tc.wantX, tc.wantY)
		}
	}
}

func TestLoopyAttribute(t *testing.T) {
	cases := []struct {
		data      uint16
		wantAddr  uint16
		wantShift uint8
	}{
		{0x0000, 0x23C0, 0},
		{0x0FBF, 0x2FFF, 2},
		{0x0042, 0x23C0, 6},
		{0x0002, 0x23C0, 2},
		{0x0040, 0x23C0, 4},
		{0x0484, 0x27C9, 0},
	}

	for i, tc := range cases {
		l := loopy(tc.data)
		if a, s := l.attributeAddr(), l.attributeShift(); a != tc.wantAddr || s != tc.wantShift {
			t.Errorf("%d: Got %04x (shift %d), wanted %04x (shift %d)", i, a, s, tc.wantAddr, tc.wantShift)
		}
	}
}
