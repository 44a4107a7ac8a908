// Package ui runs a machine in a window, with the keyboard as
// controller 1 and the APU on the default audio device.
package ui

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/bdwalton/nescycle/apu"
	"github.com/bdwalton/nescycle/console"
	"github.com/bdwalton/nescycle/logger"
)

const (
	WIDTH  = 256
	HEIGHT = 240

	DEFAULT_SCALE = 3
	AUDIO_BUFFER  = 50 * time.Millisecond
)

// Game is an ebiten.Game that runs one machine frame per update.
type Game struct {
	m      *console.Machine
	log    logger.Logger
	pixels []byte // RGBA
	ring   *ring
	paused bool
}

// New attaches a window's frame buffer and audio queue to m.
func New(m *console.Machine, log logger.Logger) *Game {
	g := &Game{
		m:      m,
		log:    logger.Or(log),
		pixels: make([]byte, WIDTH*HEIGHT*4),
		ring:   newRing(RING_SIZE),
	}
	m.SetVideoOutput(g.plot)
	m.SetAudioOutput(g.ring.put)
	return g
}

// RecordAudio passes every sample to f as well as the speakers.
func (g *Game) RecordAudio(f func(uint8)) {
	g.m.SetAudioOutput(func(s uint8) {
		g.ring.put(s)
		f(s)
	})
}

func (g *Game) plot(x, y int, rgb uint32) {
	i := (y*WIDTH + x) * 4
	g.pixels[i] = uint8(rgb >> 16)
	g.pixels[i+1] = uint8(rgb >> 8)
	g.pixels[i+2] = uint8(rgb)
	g.pixels[i+3] = 0xFF
}

// Run opens the window and plays until it is closed or escape is
// pressed. P pauses and R resets.
func (g *Game) Run(title string, scale int) error {
	if scale < 1 {
		scale = DEFAULT_SCALE
	}

	actx := audio.NewContext(OUTPUT_RATE)
	p, err := actx.NewPlayer(newStream(g.ring, apu.SampleRate, OUTPUT_RATE))
	if err != nil {
		return fmt.Errorf("starting audio: %w", err)
	}
	defer p.Close()
	p.SetBufferSize(AUDIO_BUFFER)
	p.Play()

	ebiten.SetWindowSize(WIDTH*scale, HEIGHT*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(60)
	g.log.Logf("ui", "running %q at scale %d", title, scale)
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.paused = !g.paused
		g.log.Logf("ui", "paused: %t", g.paused)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.m.Reset()
	}
	if g.paused {
		return nil
	}

	g.m.SetButtons(0, buttons(ebiten.IsKeyPressed))
	return g.m.StepFrame()
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.pixels)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return WIDTH, HEIGHT
}
