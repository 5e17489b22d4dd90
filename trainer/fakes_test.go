package trainer_test

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/sightread/sightread"
	"github.com/sightread/sightread/trainer"
)

type fakeTrigger struct {
	sounding sightread.PitchSet
	played   []sightread.Pitch
	stopAlls int
}

func newFakeTrigger() *fakeTrigger {
	return &fakeTrigger{sounding: sightread.PitchSet{}}
}

func (f *fakeTrigger) Play(pitches ...sightread.Pitch) {
	for _, p := range pitches {
		if p.IsRest() {
			continue
		}
		f.sounding.Add(p)
		f.played = append(f.played, p)
	}
}

func (f *fakeTrigger) Stop(pitches ...sightread.Pitch) { f.sounding.Remove(pitches...) }
func (f *fakeTrigger) HasNote(sightread.Pitch) bool    { return true }

func (f *fakeTrigger) StopAll() {
	f.sounding = sightread.PitchSet{}
	f.stopAlls++
}

// fakeInput delivers the presses and releases queued with Press and Release
// on the next Poll.
type fakeInput struct {
	playable sightread.PitchSet
	pending  map[sightread.Pitch]bool
	updates  map[sightread.Pitch]bool
}

func newFakeInput(playable ...sightread.Pitch) *fakeInput {
	return &fakeInput{
		playable: sightread.NewPitchSet(playable...),
		pending:  map[sightread.Pitch]bool{},
		updates:  map[sightread.Pitch]bool{},
	}
}

func (f *fakeInput) Press(pitches ...sightread.Pitch) {
	for _, p := range pitches {
		f.pending[p] = true
	}
}

func (f *fakeInput) Release(pitches ...sightread.Pitch) {
	for _, p := range pitches {
		f.pending[p] = false
	}
}

func (f *fakeInput) Poll() {
	for p, on := range f.pending {
		f.updates[p] = on
	}
	f.pending = map[sightread.Pitch]bool{}
}

func (f *fakeInput) Updates() map[sightread.Pitch]bool {
	ret := f.updates
	f.updates = map[sightread.Pitch]bool{}
	return ret
}

func (f *fakeInput) PlayablePitches() sightread.PitchSet { return f.playable }

type fakeCanvas struct {
	lines  int
	texts  []string
	glyphs []trainer.Glyph
}

func (c *fakeCanvas) Line(x0, y0, x1, y1 float64, _ color.Color) { c.lines++ }
func (c *fakeCanvas) Rect(image.Rectangle, color.Color)          {}
func (c *fakeCanvas) Clef(sightread.Clef, float64, float64)      {}
func (c *fakeCanvas) Glyph(g trainer.Glyph)                      { c.glyphs = append(c.glyphs, g) }

func (c *fakeCanvas) Text(s string, _, _ float64, _ int, _ trainer.Anchor, _ color.Color) {
	c.texts = append(c.texts, s)
}

// keyboardRange is the range of the default computer keyboard mapping.
var keyboardRange = []sightread.Pitch{"G3", "G#3", "A3", "A#3", "B3", "C4", "C#4", "D4", "D#4", "E4", "F4", "F#4", "G4", "G#4", "A4", "A#4", "B4"}

func mustParse(t *testing.T, src string) *sightread.Score {
	t.Helper()
	score, err := sightread.Parse(strings.NewReader(src), nil, nil)
	if err != nil {
		t.Fatalf("could not parse test score: %v", err)
	}
	return score
}

func newEnv(input sightread.InputSource, library ...*sightread.Score) (*trainer.Env, *fakeTrigger) {
	trigger := newFakeTrigger()
	return &trainer.Env{
		Trigger: trigger,
		Input:   input,
		Layout:  trainer.DefaultLayout(),
		Alerts:  &trainer.Alerts{},
		Library: library,
	}, trigger
}

const fps = 4

// at 60 bpm and 4 fps, every frame is a semiquaver
const twoBars = `Two Bars
60
4 4

T C4 1
T D4 1
T E4 2
B C3 4

T F4 4
B G2 4
`

const threeBars = twoBars + `
T G4 4
B C3 4
`

// pointInRow returns a point inside the i:th of n buttons in the bottom row.
func pointInRow(cfg trainer.LayoutConfig, i, n int) image.Point {
	w := (cfg.Width - 4) / n
	return image.Pt(i*w+w/2+2, cfg.Height-4-15)
}

// pointInColumn returns a point inside the i:th button of a column starting
// at y.
func pointInColumn(cfg trainer.LayoutConfig, i, y int) image.Point {
	return image.Pt(cfg.Width/2, y+i*40+16)
}
