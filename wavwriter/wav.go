// Package wavwriter records the APU's 8-bit sample stream as a mono
// WAV file. Samples are buffered in small blocks and streamed to disk,
// so recordings can be as long as the run.
package wavwriter

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/bdwalton/nescycle/logger"
)

const (
	BIT_DEPTH  = 8
	PCM_FORMAT = 1
	BLOCK_SIZE = 4096
)

type WavWriter struct {
	filename string
	f        *os.File
	enc      *wav.Encoder
	buf      *audio.IntBuffer
	log      logger.Logger
	samples  int
	err      error // first write error, reported by Close
}

// New creates filename and prepares to record at sampleRate.
func New(filename string, sampleRate int, log logger.Logger) (*WavWriter, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("wavwriter: %w", err)
	}

	ww := &WavWriter{
		filename: filename,
		f:        f,
		enc:      wav.NewEncoder(f, sampleRate, BIT_DEPTH, 1, PCM_FORMAT),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
			Data:           make([]int, 0, BLOCK_SIZE),
			SourceBitDepth: BIT_DEPTH,
		},
		log: logger.Or(log),
	}
	ww.log.Logf("wavwriter", "recording audio to %s at %dHz", filename, sampleRate)
	return ww, nil
}

// Add records one sample. It has the signature the machine's audio
// output wants.
func (ww *WavWriter) Add(sample uint8) {
	ww.buf.Data = append(ww.buf.Data, int(sample))
	ww.samples++
	if len(ww.buf.Data) == BLOCK_SIZE {
		ww.flush()
	}
}

func (ww *WavWriter) flush() {
	if len(ww.buf.Data) == 0 || ww.err != nil {
		ww.buf.Data = ww.buf.Data[:0]
		return
	}
	if err := ww.enc.Write(ww.buf); err != nil {
		ww.err = fmt.Errorf("wavwriter: %w", err)
	}
	ww.buf.Data = ww.buf.Data[:0]
}

// Samples returns the number of samples recorded.
func (ww *WavWriter) Samples() int {
	return ww.samples
}

// Close writes out what's buffered, finishes the WAV headers and
// closes the file.
func (ww *WavWriter) Close() (rerr error) {
	defer func() {
		if err := ww.f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()

	ww.flush()
	if ww.err != nil {
		return ww.err
	}
	if err := ww.enc.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	ww.log.Logf("wavwriter", "wrote %d samples to %s", ww.samples, ww.filename)
	return nil
}
