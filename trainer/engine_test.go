package trainer_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/sightread/sightread"
	"github.com/sightread/sightread/trainer"
)

type hookLog struct {
	stopped []sightread.Pitch
	bars    []int
	early   []float64
}

func (h *hookLog) hooks() trainer.Hooks {
	return trainer.Hooks{
		NoteStop:     func(p []sightread.Pitch, _ sightread.Clef) { h.stopped = append(h.stopped, p...) },
		EarlyRelease: func(skipped float64) { h.early = append(h.early, skipped) },
		BarChange:    func(bar int) { h.bars = append(h.bars, bar) },
	}
}

func newTestEngine(t *testing.T, src string) (*trainer.Engine, *fakeTrigger, *hookLog) {
	t.Helper()
	trigger := newFakeTrigger()
	log := &hookLog{}
	return trainer.NewEngine(mustParse(t, src), trainer.DefaultLayout(), trigger, log.hooks()), trigger, log
}

func advance(e *trainer.Engine, frames int) {
	for i := 0; i < frames; i++ {
		e.AdvanceFrame(fps)
	}
}

func TestEngineResumeDoesNotAdvance(t *testing.T) {
	e, trigger, _ := newTestEngine(t, twoBars)
	e.AdvanceFrame(fps)
	if e.Position() != (trainer.Position{}) {
		t.Fatalf("the first frame should not move, got %+v", e.Position())
	}
	if !reflect.DeepEqual(trigger.sounding, sightread.NewPitchSet("C4", "C3")) {
		t.Errorf("expected C4 and C3 to sound, got %v", trigger.sounding.Sorted())
	}
	if c, _ := e.Projection().NoteColor(0, sightread.Treble, 0); c != e.Palette().Playing {
		t.Errorf("the current note should be highlighted, got %v", c)
	}
}

func TestEngineNoteBoundary(t *testing.T) {
	e, trigger, log := newTestEngine(t, twoBars)
	advance(e, 1+4)
	// a note ending exactly at the beat still sounds
	if got := e.CurrentPitches(sightread.Treble); !reflect.DeepEqual(got, []sightread.Pitch{"C4"}) {
		t.Fatalf("expected C4 at beat 1, got %v", got)
	}
	advance(e, 1)
	if got := e.CurrentPitches(sightread.Treble); !reflect.DeepEqual(got, []sightread.Pitch{"D4"}) {
		t.Fatalf("expected D4 at beat 1.25, got %v", got)
	}
	if !reflect.DeepEqual(log.stopped, []sightread.Pitch{"C4"}) {
		t.Errorf("expected NoteStop for C4 only, got %v", log.stopped)
	}
	if !reflect.DeepEqual(trigger.sounding, sightread.NewPitchSet("D4", "C3")) {
		t.Errorf("expected D4 and C3 to sound, got %v", trigger.sounding.Sorted())
	}
	if c, _ := e.Projection().NoteColor(0, sightread.Treble, 0); c != e.Palette().Ink {
		t.Errorf("the finished note should be marked played, got %v", c)
	}
}

func TestEngineBarChange(t *testing.T) {
	e, trigger, log := newTestEngine(t, twoBars)
	advance(e, 1+17)
	if want := (trainer.Position{Bar: 1, Beat: 0.25}); e.Position() != want {
		t.Fatalf("expected %+v, got %+v", want, e.Position())
	}
	if !reflect.DeepEqual(log.bars, []int{1}) {
		t.Errorf("expected BarChange(1), got %v", log.bars)
	}
	if trigger.stopAlls != 1 {
		t.Errorf("expected one StopAll at the bar end, got %d", trigger.stopAlls)
	}
	if !reflect.DeepEqual(log.stopped, []sightread.Pitch{"C4", "D4", "E4", "C3"}) {
		t.Errorf("unexpected stopped notes %v", log.stopped)
	}
	if !reflect.DeepEqual(trigger.sounding, sightread.NewPitchSet("F4", "G2")) {
		t.Errorf("expected the second bar to sound, got %v", trigger.sounding.Sorted())
	}
}

func TestEngineTerminal(t *testing.T) {
	e, _, log := newTestEngine(t, twoBars)
	advance(e, 1+33)
	if !e.Terminal() {
		t.Fatalf("expected the score to end, position %+v", e.Position())
	}
	if !reflect.DeepEqual(log.bars, []int{1, 2}) {
		t.Errorf("expected BarChange(1), BarChange(2), got %v", log.bars)
	}
	pos := e.Position()
	advance(e, 10)
	if e.Position() != pos {
		t.Errorf("advancing a finished score should do nothing")
	}
	if got := e.CurrentPitches(sightread.Treble); got != nil {
		t.Errorf("expected no pitches after the end, got %v", got)
	}
}

func TestEngineRate(t *testing.T) {
	e, _, _ := newTestEngine(t, twoBars)
	e.SetRate(2)
	advance(e, 1+3)
	if got := e.Position().Beat; got != 1.5 {
		t.Errorf("expected beat 1.5 at double rate, got %v", got)
	}
	e.SetRate(0)
	advance(e, 5)
	if got := e.Position().Beat; got != 1.5 {
		t.Errorf("rate 0 should not move, got %v", got)
	}
}

func TestEngineRewindToPreviousBar(t *testing.T) {
	e, _, log := newTestEngine(t, twoBars)
	advance(e, 1+17)
	e.SetRate(-1)
	advance(e, 2)
	if want := (trainer.Position{Bar: 0, Beat: 3.75}); e.Position() != want {
		t.Fatalf("expected %+v, got %+v", want, e.Position())
	}
	if !reflect.DeepEqual(log.bars, []int{1, 0}) {
		t.Errorf("expected BarChange(1), BarChange(0), got %v", log.bars)
	}
	if got := e.CurrentPitches(sightread.Treble); !reflect.DeepEqual(got, []sightread.Pitch{"E4"}) {
		t.Errorf("expected E4 after rewinding, got %v", got)
	}
	// rewinding past the start stops at the start
	advance(e, 40)
	if e.Position() != (trainer.Position{}) {
		t.Errorf("expected to stop at the start, got %+v", e.Position())
	}
}

func TestEnginePageChange(t *testing.T) {
	e, _, _ := newTestEngine(t, threeBars)
	first := e.Projection()
	if first.Page != 0 || len(first.Bars) != 2 {
		t.Fatalf("expected the first page to show bars 0 and 1, got page %d with %d bars", first.Page, len(first.Bars))
	}
	advance(e, 1+17)
	if e.Projection() != first {
		t.Errorf("the projection should be kept within the page")
	}
	advance(e, 16)
	if got := e.Projection(); got.Page != 2 || len(got.Bars) != 1 {
		t.Fatalf("expected the second page to show bar 2, got page %d with %d bars", got.Page, len(got.Bars))
	}
	e.SetRate(-1)
	advance(e, 2)
	if got := e.Projection().Page; got != 0 {
		t.Errorf("rewinding into bar 1 should show the first page, got %d", got)
	}
}

func TestEngineJumpToNextNoteBoundary(t *testing.T) {
	e, _, log := newTestEngine(t, twoBars)
	advance(e, 1+1)
	jump := e.JumpToNextNoteBoundary()
	if math.Abs(jump-0.76) > 1e-9 {
		t.Errorf("expected a jump of 0.76, got %v", jump)
	}
	if !reflect.DeepEqual(log.early, []float64{jump}) {
		t.Errorf("expected EarlyRelease(%v), got %v", jump, log.early)
	}
	if got := e.CurrentPitches(sightread.Treble); !reflect.DeepEqual(got, []sightread.Pitch{"D4"}) {
		t.Errorf("expected D4 after the jump, got %v", got)
	}
	if !reflect.DeepEqual(log.stopped, []sightread.Pitch{"C4"}) {
		t.Errorf("expected C4 to be stopped by the jump, got %v", log.stopped)
	}
}

func TestEnginePauseResumes(t *testing.T) {
	e, trigger, _ := newTestEngine(t, twoBars)
	advance(e, 1+2)
	e.Pause()
	if trigger.sounding.Len() != 0 || trigger.stopAlls != 1 {
		t.Fatalf("pausing should stop all notes")
	}
	e.SetRate(1)
	advance(e, 1)
	if got := e.Position().Beat; got != 0.5 {
		t.Errorf("the first frame after a pause should not move, got beat %v", got)
	}
	if !trigger.sounding.Has("C4") {
		t.Errorf("resuming should restart the current notes")
	}
}

func TestEngineSilent(t *testing.T) {
	e, trigger, log := newTestEngine(t, twoBars)
	e.PlayNotes = false
	e.MarkPlayed = false
	advance(e, 1+6)
	if len(trigger.played) != 0 {
		t.Errorf("expected no notes to be played, got %v", trigger.played)
	}
	if len(log.stopped) != 1 {
		t.Errorf("NoteStop should still be called, got %v", log.stopped)
	}
	if c, _ := e.Projection().NoteColor(0, sightread.Treble, 0); c != e.Palette().Playing {
		t.Errorf("finished notes should keep their colour, got %v", c)
	}
}

func TestEngineDraw(t *testing.T) {
	e, _, _ := newTestEngine(t, twoBars)
	var c fakeCanvas
	e.Draw(&c)
	// C4, D4, E4, F4 and the two bass notes
	if len(c.glyphs) != 6 {
		t.Errorf("expected 6 glyphs, got %d", len(c.glyphs))
	}
	// 10 staff lines, 2 staff starts, 4 bar lines, the play line
	if c.lines != 17 {
		t.Errorf("expected 17 lines, got %d", c.lines)
	}
}
