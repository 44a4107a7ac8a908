package ui

import (
	"sync"
)

const (
	OUTPUT_RATE = 48000 // Hz, what the audio device is opened at

	// About a fifth of a second of APU samples.
	RING_SIZE = 12288
)

// ring holds samples between the emulator, which produces them during
// Update, and the audio player, which reads them on its own goroutine.
// When full, the oldest samples are dropped.
type ring struct {
	mu   sync.Mutex
	buf  []uint8
	head int // next sample to read
	n    int
}

func newRing(size int) *ring {
	return &ring{buf: make([]uint8, size)}
}

func (r *ring) put(s uint8) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buf[(r.head+r.n)%len(r.buf)] = s
	if r.n == len(r.buf) {
		r.head = (r.head + 1) % len(r.buf)
		return
	}
	r.n++
}

func (r *ring) get() (uint8, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.n == 0 {
		return 0, false
	}
	s := r.buf[r.head]
	r.head = (r.head + 1) % len(r.buf)
	r.n--
	return s, true
}

func (r *ring) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.n
}

// stream converts the ring's 8-bit mono samples to the 16-bit little
// endian stereo PCM an ebiten audio player reads, resampling from the
// APU's rate by picking the nearest sample. When the ring runs dry the
// last sample is held.
type stream struct {
	src   *ring
	step  float64 // input samples per output sample
	phase float64
	cur   uint8
}

func newStream(src *ring, inRate, outRate int) *stream {
	return &stream{src: src, step: float64(inRate) / float64(outRate)}
}

func (s *stream) Read(p []byte) (int, error) {
	n := len(p) / 4 * 4
	for i := 0; i < n; i += 4 {
		for s.phase += s.step; s.phase >= 1; s.phase-- {
			if v, ok := s.src.get(); ok {
				s.cur = v
			}
		}
		// The DAC level is unipolar, silence is 0.
		v := int16(s.cur) << 7
		p[i], p[i+1] = uint8(v), uint8(v>>8)
		p[i+2], p[i+3] = p[i], p[i+1]
	}
	return n, nil
}
