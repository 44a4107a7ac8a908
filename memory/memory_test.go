package memory

import (
	"testing"
)

func TestStandardAccess(t *testing.T) {
	m := New(0x800)
	cases := []struct {
		addr uint16
		val  uint8
	}{
		{0x0000, 0x01},
		{0x07FF, 0xFF},
		{0x0123, 0x45},
	}

	for i, tc := range cases {
		m.Write(tc.addr, tc.val)
		if got := m.Read(tc.addr); got != tc.val {
			t.Errorf("%d: Got 0x%02x, want 0x%02x", i, got, tc.val)
		}
	}
}

func TestBeyondBufferIsOpenBus(t *testing.T) {
	m := New(0x10)
	m.Write(0x0001, 0xAB)
	m.Read(0x0001)
	m.Write(0x8000, 0x12) // dropped, but drives the bus

	if got := m.Read(0x8000); got != 0x12 {
		t.Errorf("Got 0x%02x, want 0x12", got)
	}
	if len(m.Data) != 0x10 {
		t.Errorf("buffer grew to %d", len(m.Data))
	}
}

func TestUpperBoundDispatch(t *testing.T) {
	m := New(0x10000)
	m.MapRead(0x1FFF, func(m *Memory, addr uint16) uint8 { return 1 })
	m.MapRead(0x3FFF, func(m *Memory, addr uint16) uint8 { return 2 })
	m.MapRead(0x7FFF, func(m *Memory, addr uint16) uint8 { return 3 })

	cases := []struct {
		addr uint16
		want uint8
	}{
		{0x0000, 1},
		{0x1FFF, 1},
		{0x2000, 2},
		{0x3FFF, 2},
		{0x4000, 3},
		{0x7FFF, 3},
		{0x8000, 0},
		{0xFFFF, 0},
	}

	for i, tc := range cases {
		if got := m.Read(tc.addr); got != tc.want {
			t.Errorf("%d: Read(0x%04x) = %d, want %d", i, tc.addr, got, tc.want)
		}
	}
}

func TestMapReplacesSameBound(t *testing.T) {
	m := New(0x100)
	m.MapRead(0x00FF, func(m *Memory, addr uint16) uint8 { return 1 })
	m.MapRead(0x00FF, func(m *Memory, addr uint16) uint8 { return 2 })

	if got := len(m.reads); got != 2 {
		t.Errorf("Got %d read ranges, want 2", got)
	}
	if got := m.Read(0x0010); got != 2 {
		t.Errorf("Got %d, want 2", got)
	}
}

func TestMirror(t *testing.T) {
	m := New(0x800)
	m.Map(0x1FFF, MirrorRead(0x07FF), MirrorWrite(0x07FF))

	m.Write(0x0802, 0x99)
	for _, a := range []uint16{0x0002, 0x0802, 0x1002, 0x1802} {
		if got := m.Read(a); got != 0x99 {
			t.Errorf("mem[%04x] = %02x, want 0x99", a, got)
		}
	}
}

func TestWriteHandler(t *testing.T) {
	m := New(0x100)
	var gotAddr uint16
	var gotVal uint8
	m.MapWrite(0x000F, func(m *Memory, addr uint16, val uint8) {
		gotAddr, gotVal = addr, val
	})

	m.Write(0x0003, 0x42)
	if gotAddr != 0x0003 || gotVal != 0x42 {
		t.Errorf("Got (0x%04x, 0x%02x), want (0x0003, 0x42)", gotAddr, gotVal)
	}
	if m.Data[0x0003] != 0 {
		t.Errorf("handler write leaked into buffer")
	}

	m.Write(0x0010, 0x24)
	if m.Data[0x0010] != 0x24 {
		t.Errorf("default handler didn't write buffer")
	}
}

func TestUnmap(t *testing.T) {
	m := New(0x100)
	m.MapRead(0x000F, OpenBusRead)
	m.Unmap()
	m.Data[1] = 7

	if got := m.Read(1); got != 7 {
		t.Errorf("Got %d, want 7", got)
	}
}

func TestResize(t *testing.T) {
	m := New(4)
	m.Data[3] = 0x33
	m.Resize(8)

	if len(m.Data) != 8 || m.Data[3] != 0x33 {
		t.Errorf("Got %v after resize, want length 8 with data[3] = 0x33", m.Data)
	}
}

func TestSaveRestore(t *testing.T) {
	m := New(0x100)
	m.MapRead(0x000F, func(m *Memory, addr uint16) uint8 { return 0xEE })
	m.Data[0x20] = 0x42
	l := m.Save()

	for i := 0; i < 2; i++ {
		m.Unmap()
		m.Resize(0x10)
		m.Data[0x01] = 0x99
		m.Restore(l)

		cases := []struct {
			addr uint16
			want uint8
		}{
			{0x0001, 0xEE},
			{0x0020, 0x42},
			{0x00FF, 0x00},
		}
		for j, tc := range cases {
			if got := m.Read(tc.addr); got != tc.want {
				t.Errorf("%d/%d: mem[%04x] = %02x, want %02x", i, j, tc.addr, got, tc.want)
			}
		}
		if len(m.Data) != 0x100 {
			t.Errorf("%d: Got buffer of %d bytes, want 256", i, len(m.Data))
		}
	}
}

func TestRead16(t *testing.T) {
	m := New(0x10000)
	m.Data[0xFFFC] = 0x34
	m.Data[0xFFFD] = 0x12
	m.Data[0xFFFF] = 0xCD
	m.Data[0x0000] = 0xAB

	cases := []struct {
		addr uint16
		want uint16
	}{
		{0xFFFC, 0x1234},
		{0xFFFF, 0xABCD},
	}
	for i, tc := range cases {
		if got := m.Read16(tc.addr); got != tc.want {
			t.Errorf("%d: Got 0x%04x, want 0x%04x", i, got, tc.want)
		}
	}
}

func TestIterator(t *testing.T) {
	m := New(0x10000)
	for i := 0; i < 0x100; i++ {
		m.Data[0x0200+i] = uint8(i)
	}
	m.MapRead(0x02FF, MirrorRead(0xFFFF))

	dst := make([]uint8, 0x100)
	it := m.At(0x0200).CopyTo(dst)
	for i, v := range dst {
		if v != uint8(i) {
			t.Fatalf("dst[%d] = %d, want %d", i, v, i)
		}
	}
	if it.Addr() != 0x0300 {
		t.Errorf("Got iterator at 0x%04x, want 0x0300", it.Addr())
	}

	if got := m.At(0x0200).Offset(0x10); got != 0x10 {
		t.Errorf("Offset(0x10) = %d, want 16", got)
	}

	b := m.Begin()
	b.Write(0x77)
	if got := b.Read(); got != 0x77 {
		t.Errorf("Got 0x%02x, want 0x77", got)
	}
}
