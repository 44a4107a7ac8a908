package wavwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestRecord(t *testing.T) {
	cases := []struct {
		rate    int
		samples int
	}{
		{59659, 2},
		{44100, BLOCK_SIZE},
		{59659, 3*BLOCK_SIZE + 100},
	}

	for i, tc := range cases {
		path := filepath.Join(t.TempDir(), "out.wav")
		ww, err := New(path, tc.rate, nil)
		if err != nil {
			t.Fatalf("%d: New: %v", i, err)
		}
		want := make([]byte, tc.samples)
		for j := range want {
			want[j] = uint8(j * 7)
			ww.Add(want[j])
		}
		if ww.Samples() != tc.samples {
			t.Errorf("%d: Got %d samples, want %d", i, ww.Samples(), tc.samples)
		}
		if err := ww.Close(); err != nil {
			t.Fatalf("%d: Close: %v", i, err)
		}

		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		dec := wav.NewDecoder(f)
		if !dec.IsValidFile() {
			t.Errorf("%d: not a valid wav file", i)
		}
		buf, err := dec.FullPCMBuffer()
		f.Close()
		if err != nil {
			t.Fatalf("%d: FullPCMBuffer: %v", i, err)
		}
		if int(dec.SampleRate) != tc.rate || dec.BitDepth != BIT_DEPTH || dec.NumChans != 1 || len(buf.Data) != tc.samples {
			t.Errorf("%d: Got rate=%d depth=%d chans=%d samples=%d, want %d %d 1 %d", i, dec.SampleRate, dec.BitDepth, dec.NumChans, len(buf.Data), tc.rate, BIT_DEPTH, tc.samples)
		}

		// 8-bit PCM is stored as is, after the 44 byte header.
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(raw) < 44+tc.samples || !bytes.Equal(raw[44:44+tc.samples], want) {
			t.Errorf("%d: sample data doesn't match what was added", i)
		}
	}
}

func TestNewBadPath(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing", "out.wav"), 44100, nil); err == nil {
		t.Errorf("Got nil error creating a file in a missing directory")
	}
}
