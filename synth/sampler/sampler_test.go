package sampler_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sightread/sightread"
	"github.com/sightread/sightread/synth/sampler"
)

func ramp(n int) []float32 {
	ret := make([]float32, 2*n)
	for i := range ret {
		ret[i] = float32(i/2) / float32(n)
	}
	return ret
}

func TestDecode(t *testing.T) {
	in := ramp(100)
	var buf bytes.Buffer
	if err := sightread.WriteWav(&buf, in, true); err != nil {
		t.Fatalf("WriteWav failed: %v", err)
	}
	out, err := sampler.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d samples, got %d", len(in), len(out))
	}
	for i := range in {
		if math.Abs(float64(out[i]-in[i])) > 1e-3 {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestSamplerMix(t *testing.T) {
	ones := []float32{1, 1, 1, 1, 1, 1}
	s := sampler.New(map[sightread.Pitch][]float32{"C4": ones, "E4": ones}, 0.5)
	if !s.HasNote("C4") || !s.HasNote(sightread.Rest) || s.HasNote("D4") {
		t.Errorf("unexpected HasNote results")
	}
	buf := make([]float32, 4)
	s.Play("C4", "E4", "D4", sightread.Rest)
	if s.Sounding() != 2 {
		t.Fatalf("expected two voices, got %d", s.Sounding())
	}
	s.Render(buf)
	for i, v := range buf {
		if v != 1 {
			t.Errorf("sample %d: expected two voices at half gain to sum to 1, got %v", i, v)
		}
	}
	// restarting a pitch does not add a second voice
	s.Play("C4")
	s.Render(buf)
	if buf[0] != 1 || buf[2] != 0.5 {
		t.Errorf("expected C4 restarted and E4 ending, got %v", buf)
	}
	if s.Sounding() != 1 {
		t.Errorf("E4 should have ended, %d voices left", s.Sounding())
	}
	s.Stop("C4")
	s.Render(buf)
	for _, v := range buf {
		if v != 0 {
			t.Fatalf("expected silence, got %v", buf)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"C4.wav", "F#3.wav", "H2.wav"} {
		var buf bytes.Buffer
		if err := sightread.WriteWav(&buf, ramp(10), true); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s, err := sampler.Load(dir, 1)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !s.HasNote("C4") || !s.HasNote("F#3") || s.HasNote("H2") {
		t.Errorf("expected the samples named after valid pitches to be loaded")
	}
	if _, err := sampler.Load(filepath.Join(dir, "missing"), 1); err == nil {
		t.Errorf("expected an error for a missing directory")
	}
}
