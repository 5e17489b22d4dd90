package sightread_test

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/sightread/sightread"
)

func testdata(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", name)
}

func acceptAll(float64) bool { return true }

func TestParseFile(t *testing.T) {
	score, err := sightread.ParseFile(testdata("twinkle.scr"), nil, nil)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if score.Name != "Twinkle Twinkle" {
		t.Errorf("expected name %q, got %q", "Twinkle Twinkle", score.Name)
	}
	if score.NumBars() != 3 {
		t.Fatalf("expected 3 bars, got %d", score.NumBars())
	}
	last := score.Bars[2]
	if last.BPM != 80 {
		t.Errorf("expected CHANGE PACE to set bpm 80, got %d", last.BPM)
	}
	if last.Timing != (sightread.TimeSignature{Top: 3, Bottom: 4}) {
		t.Errorf("expected CHANGE TIMING to set 3/4, got %v", last.Timing)
	}
	if score.Bars[0].BPM != 100 {
		t.Errorf("expected first bar at 100 bpm, got %d", score.Bars[0].BPM)
	}
	if got := score.Bars[0].Bass[0].Pitches; len(got) != 2 || got[0] != "C3" || got[1] != "E3" {
		t.Errorf("expected chord C3,E3, got %v", got)
	}
	if !last.Bass[0].IsRest() {
		t.Errorf("expected bass rest in the last bar, got %v", last.Bass[0])
	}
	if score.NumNotes() != 15 {
		t.Errorf("expected 15 notes, got %d", score.NumNotes())
	}
}

func TestParseBarSums(t *testing.T) {
	score, err := sightread.ParseFile(testdata("twinkle.scr"), nil, nil)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	for i, bar := range score.Bars {
		var treble, bass float64
		for _, n := range bar.Treble {
			treble += n.Duration
		}
		for _, n := range bar.Bass {
			bass += n.Duration
		}
		want := bar.Timing.Length()
		if !sightread.FloatEq(treble, want) || !sightread.FloatEq(bass, want) {
			t.Errorf("bar %d: treble %v, bass %v, want %v", i, treble, bass, want)
		}
	}
}

func TestParseWhitespaceLineEndsBar(t *testing.T) {
	src := "Test\n60\n4 4\n\nT C4 4\nB C3 4\n   \nT D4 4\nB D3 4\r\n\t\r\n"
	score, err := sightread.Parse(strings.NewReader(src), nil, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if score.NumBars() != 2 {
		t.Errorf("expected lines of whitespace to close bars, got %d bars", score.NumBars())
	}
}

func TestParseErrors(t *testing.T) {
	const header = "Test\n120\n4 4\n\n"
	cases := []struct {
		name     string
		source   string
		kind     error
		bar      int
		line     int
		message  string
		optional func(float64) bool
	}{
		{
			name:    "short treble closes with wrong timing",
			source:  header + "T C4 1\nT D4 1\nT E4 1\nB C3 4\n\nT C4 4\nB C3 4\n",
			kind:    sightread.ErrInvalidTiming,
			bar:     1,
			line:    8,
			message: "Bar 1 (line 8) appears to be invalid (wrong timing)",
		},
		{
			name:     "3.9 crotchets fail at the closing line of the same bar",
			source:   header + "T C4 4\nB C3 4\n\nT C4 3.9\nB C3 4\n\nT C4 4\nB C3 4\n",
			kind:     sightread.ErrInvalidTiming,
			bar:      2,
			line:     9,
			optional: acceptAll,
		},
		{
			name:    "last bar is closed by the synthetic blank line",
			source:  header + "T C4 4\nB C3 2",
			kind:    sightread.ErrInvalidTiming,
			bar:     1,
			line:    6,
			message: "Bar 1 (line 6) appears to be invalid (wrong timing)",
		},
		{
			name:    "invalid pitch letter",
			source:  header + "T H4 4\nB C3 4\n",
			kind:    sightread.ErrUnplayablePitch,
			bar:     1,
			line:    4,
			message: "Note H4 in Bar 1 (line 4) is not playable",
		},
		{
			name:    "too few tokens",
			source:  header + "T C4 4\nB C3 4\n\nT C4\n",
			kind:    sightread.ErrMalformedLine,
			bar:     2,
			line:    7,
			message: "Bar 2 (line 7) appears to be invalid",
		},
		{
			name:    "unrenderable duration",
			source:  header + "T C4 0.3\n",
			kind:    sightread.ErrUnrenderableDuration,
			bar:     1,
			line:    4,
			message: "Duration 0.30 in Bar 1 (line 4) cannot be displayed",
		},
		{
			name:   "duration is not a number",
			source: header + "T C4 long\n",
			kind:   sightread.ErrMalformedLine,
			bar:    1,
			line:   4,
		},
		{
			name:   "change pace without a value",
			source: header + "CHANGE PACE\n",
			kind:   sightread.ErrMalformedLine,
			bar:    1,
			line:   4,
		},
		{
			name:   "bpm is not a number",
			source: "Test\nfast\n4 4\n\n",
			kind:   sightread.ErrMalformedLine,
			bar:    1,
			line:   1,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			renderable := c.optional
			score, err := sightread.Parse(strings.NewReader(c.source), nil, renderable)
			if err == nil {
				t.Fatalf("expected error, got a score with %d bars", score.NumBars())
			}
			if score != nil {
				t.Errorf("expected no partial score on error")
			}
			if !errors.Is(err, c.kind) {
				t.Fatalf("expected %v, got %v", c.kind, err)
			}
			var perr *sightread.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected a *ParseError, got %T", err)
			}
			if perr.Bar != c.bar || perr.Line != c.line {
				t.Errorf("expected bar %d line %d, got bar %d line %d", c.bar, c.line, perr.Bar, perr.Line)
			}
			if c.message != "" && err.Error() != c.message {
				t.Errorf("expected message %q, got %q", c.message, err.Error())
			}
		})
	}
}

func TestParseFileNotFound(t *testing.T) {
	_, err := sightread.ParseFile(testdata("does-not-exist.scr"), nil, nil)
	if !errors.Is(err, sightread.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
	if err.Error() != "File not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestParseBadTimingFile(t *testing.T) {
	_, err := sightread.ParseFile(testdata("badtiming.scr"), nil, nil)
	if !errors.Is(err, sightread.ErrInvalidTiming) {
		t.Fatalf("expected ErrInvalidTiming, got %v", err)
	}
}

func TestParseIsCaseInsensitive(t *testing.T) {
	src := "lower\n90\n2 4\n\nt c#4,e4 2\nb - 1\nb c3 1\n"
	score, err := sightread.Parse(strings.NewReader(src), nil, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if score.Name != "lower" {
		t.Errorf("the name should be kept as is, got %q", score.Name)
	}
	if got := score.Bars[0].Treble[0].Pitches[0]; got != "C#4" {
		t.Errorf("expected C#4, got %v", got)
	}
}

func TestParsePlayabilityCheck(t *testing.T) {
	src := "Test\n60\n4 4\n\nT C4 4\nB C2 4\n"
	playable := func(p sightread.Pitch) bool { return p != "C2" }
	_, err := sightread.Parse(strings.NewReader(src), playable, nil)
	var perr *sightread.ParseError
	if !errors.As(err, &perr) || perr.Kind != sightread.UnplayablePitch || perr.Pitch != "C2" {
		t.Fatalf("expected C2 to be unplayable, got %v", err)
	}
}

// TestParseGeneratedScores generates random valid scores and checks that the
// number of parsed bars equals the number of blank line delimited blocks.
func TestParseGeneratedScores(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pitches := []string{"C4", "D4", "E4", "F#4", "G3", "A3", "B3", "-"}
	// multiples of a semiquaver, so that every remainder can be filled
	durations := []float64{0.25, 0.5, 0.75, 1, 1.5, 2, 3, 4}
	fill := func(b *strings.Builder, clef string, length float64) {
		for length > 0 {
			var d float64
			for {
				d = durations[rng.Intn(len(durations))]
				if d <= length+sightread.Epsilon {
					break
				}
			}
			fmt.Fprintf(b, "%s %s %v\n", clef, pitches[rng.Intn(len(pitches))], d)
			length -= d
		}
	}
	for i := 0; i < 50; i++ {
		var b strings.Builder
		b.WriteString("Generated\n100\n4 4\n\n")
		numBars := 1 + rng.Intn(8)
		for j := 0; j < numBars; j++ {
			if j > 0 {
				b.WriteString("\n")
			}
			fill(&b, "T", 4)
			fill(&b, "B", 4)
		}
		score, err := sightread.Parse(strings.NewReader(b.String()), nil, nil)
		if err != nil {
			t.Fatalf("generated score %d failed to parse: %v\n%s", i, err, b.String())
		}
		if score.NumBars() != numBars {
			t.Fatalf("generated score %d: expected %d bars, got %d", i, numBars, score.NumBars())
		}
	}
}

func TestRenderable(t *testing.T) {
	for _, d := range []float64{0.25, 0.375, 0.3750004, 1, 4} {
		if !sightread.Renderable(d) {
			t.Errorf("expected %v to be renderable", d)
		}
	}
	for _, d := range []float64{0, 0.3, 1.25, 5, 0.376} {
		if sightread.Renderable(d) {
			t.Errorf("expected %v not to be renderable", d)
		}
	}
}
