package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bdwalton/nescycle/apu"
	"github.com/bdwalton/nescycle/console"
	"github.com/bdwalton/nescycle/logger"
	"github.com/bdwalton/nescycle/nesrom"
	"github.com/bdwalton/nescycle/ui"
	"github.com/bdwalton/nescycle/wavwriter"
)

var (
	romFile  = flag.String("nes_rom", "", "Path to NES ROM to run.")
	saveFile = flag.String("save", "", "Battery RAM file. Defaults to the ROM path with a .sav extension.")
	headless = flag.Bool("headless", false, "Run without a window for -frames frames.")
	frames   = flag.Int("frames", 600, "Frames to run when headless.")
	wavFile  = flag.String("wav", "", "If set, record audio to this WAV file.")
	pngFile  = flag.String("png", "", "If set with -headless, write the last frame to this PNG file.")
	bios     = flag.Bool("bios", false, "Start the debug console on stdin instead of running.")
	scale    = flag.Int("scale", ui.DEFAULT_SCALE, "Window scale factor.")
	verbose  = flag.Bool("verbose", false, "Log machine events to stderr.")
)

func main() {
	flag.Parse()

	var lg logger.Logger
	if *verbose {
		lg = logger.New(os.Stderr)
	}

	rom, err := nesrom.Open(*romFile)
	if err != nil {
		log.Fatalf("Invalid ROM: %v", err)
	}
	fmt.Println(rom)

	m, err := console.New(console.Options{Logger: lg})
	if err != nil {
		log.Fatalf("Couldn't build machine: %v", err)
	}

	var save io.ReadWriteSeeker
	if rom.HasSaveRAM() {
		f, err := openSave(*romFile, *saveFile)
		if err != nil {
			log.Fatalf("Couldn't open battery RAM file: %v", err)
		}
		defer f.Close()
		save = f
	}

	if err := m.Load(rom, save); err != nil {
		log.Fatalf("Couldn't load %q: %v", *romFile, err)
	}

	var record func(uint8)
	if *wavFile != "" {
		ww, err := wavwriter.New(*wavFile, apu.SampleRate, lg)
		if err != nil {
			log.Fatalf("Couldn't record audio: %v", err)
		}
		defer func() {
			if err := ww.Close(); err != nil {
				log.Printf("Couldn't finish %q: %v", *wavFile, err)
			}
		}()
		record = ww.Add
		m.SetAudioOutput(record)
	}

	switch {
	case *bios:
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
		defer cancel()
		err = m.BIOS(ctx, os.Stdin, os.Stdout)
	case *headless:
		err = runHeadless(m, *frames, *pngFile)
	default:
		g := ui.New(m, lg)
		if record != nil {
			g.RecordAudio(record)
		}
		err = g.Run(filepath.Base(*romFile), *scale)
	}
	if err != nil {
		log.Printf("Stopped: %v", err)
	}

	if save != nil {
		if err := m.Flush(); err != nil {
			log.Printf("Couldn't write battery RAM: %v", err)
		}
	}
}

func openSave(rom, path string) (*os.File, error) {
	if path == "" {
		path = strings.TrimSuffix(rom, filepath.Ext(rom)) + ".sav"
	}
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
}

// runHeadless runs n frames and optionally writes the last one out.
func runHeadless(m *console.Machine, n int, pngPath string) error {
	img := image.NewRGBA(image.Rect(0, 0, ui.WIDTH, ui.HEIGHT))
	m.SetVideoOutput(func(x, y int, rgb uint32) {
		img.SetRGBA(x, y, color.RGBA{uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb), 0xFF})
	})

	for i := 0; i < n; i++ {
		if err := m.StepFrame(); err != nil {
			return err
		}
	}
	fmt.Printf("ran %d frames, %d ticks\n", m.Frames(), m.Ticks())

	if pngPath == "" {
		return nil
	}
	f, err := os.Create(pngPath)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
