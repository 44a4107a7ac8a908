package ui

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/bdwalton/nescycle/console"
)

func TestButtons(t *testing.T) {
	cases := []struct {
		held []ebiten.Key
		want uint8
	}{
		{nil, 0},
		{[]ebiten.Key{ebiten.KeyA}, console.BUTTON_A},
		{[]ebiten.Key{ebiten.KeyEnter, ebiten.KeyRight}, console.BUTTON_START | console.BUTTON_RIGHT},
		{[]ebiten.Key{ebiten.KeySpace, ebiten.KeyB, ebiten.KeyQ}, console.BUTTON_SELECT | console.BUTTON_B},
		{keys, 0xFF},
	}

	for i, tc := range cases {
		held := make(map[ebiten.Key]bool)
		for _, k := range tc.held {
			held[k] = true
		}
		if got := buttons(func(k ebiten.Key) bool { return held[k] }); got != tc.want {
			t.Errorf("%d: Got %08b, want %08b", i, got, tc.want)
		}
	}
}

func TestRing(t *testing.T) {
	r := newRing(4)
	if _, ok := r.get(); ok {
		t.Errorf("Got a sample from an empty ring")
	}

	for i := uint8(1); i <= 6; i++ {
		r.put(i)
	}
	if r.len() != 4 {
		t.Errorf("Got len %d, want 4", r.len())
	}
	// 1 and 2 were dropped.
	for _, want := range []uint8{3, 4, 5, 6} {
		if got, ok := r.get(); !ok || got != want {
			t.Errorf("Got %d, %t, want %d, true", got, ok, want)
		}
	}
	if r.len() != 0 {
		t.Errorf("Got len %d after draining, want 0", r.len())
	}
}

func TestStream(t *testing.T) {
	cases := []struct {
		inRate, outRate int
		frames          int
		consumed        int
	}{
		{48000, 48000, 10, 10},
		{96000, 48000, 10, 20},
		{24000, 48000, 10, 5},
	}

	for i, tc := range cases {
		r := newRing(100)
		for j := 0; j < 50; j++ {
			r.put(uint8(j))
		}
		s := newStream(r, tc.inRate, tc.outRate)
		p := make([]byte, tc.frames*4+3) // a partial frame is left alone
		n, err := s.Read(p)
		if err != nil || n != tc.frames*4 {
			t.Errorf("%d: Got %d, %v, want %d, nil", i, n, err, tc.frames*4)
		}
		if got := 50 - r.len(); got != tc.consumed {
			t.Errorf("%d: consumed %d samples, want %d", i, got, tc.consumed)
		}
		// Left and right match.
		for j := 0; j < n; j += 4 {
			if p[j] != p[j+2] || p[j+1] != p[j+3] {
				t.Errorf("%d: frame %d channels differ", i, j/4)
			}
		}
	}
}

func TestStreamHoldsLastSample(t *testing.T) {
	r := newRing(4)
	r.put(0x40)
	s := newStream(r, 48000, 48000)

	p := make([]byte, 12)
	s.Read(p)
	// 0x40<<7 = 0x2000, little endian.
	for j := 0; j < len(p); j += 4 {
		if p[j] != 0x00 || p[j+1] != 0x20 {
			t.Errorf("frame %d: Got %02x%02x, want 2000", j/4, p[j+1], p[j])
		}
	}
}

func TestPlot(t *testing.T) {
	m, err := console.New(console.Options{})
	if err != nil {
		t.Fatal(err)
	}
	g := New(m, nil)

	g.plot(1, 2, 0x123456)
	i := (2*WIDTH + 1) * 4
	if got := g.pixels[i : i+4]; got[0] != 0x12 || got[1] != 0x34 || got[2] != 0x56 || got[3] != 0xFF {
		t.Errorf("Got pixel % x, want 12 34 56 ff", got)
	}
	if w, h := g.Layout(1024, 768); w != WIDTH || h != HEIGHT {
		t.Errorf("Got layout %dx%d, want %dx%d", w, h, WIDTH, HEIGHT)
	}
}
