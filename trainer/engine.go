package trainer

import (
	"image/color"
	"math"

	"github.com/sightread/sightread"
)

type (
	// Position is a point in a score: a bar index and the number of
	// crotchets into that bar. The beat is always within the bar, except for
	// the terminal position where Bar equals the number of bars.
	Position struct {
		Bar  int
		Beat float64
	}

	// Hooks are the callbacks through which a mode reacts to the engine. Any
	// of them may be nil.
	Hooks struct {
		// NoteStop is called after the pitches of a finished note have been
		// stopped, also at bar ends.
		NoteStop func(pitches []sightread.Pitch, clef sightread.Clef)
		// EarlyRelease is called with the number of crotchets skipped by
		// JumpToNextNoteBoundary.
		EarlyRelease func(skipped float64)
		// BarChange is called with the new bar index whenever the position
		// moves to another bar. It is also called with NumBars when the
		// score ends.
		BarChange func(bar int)
	}

	// Engine plays a score frame by frame. It owns the playback position,
	// triggers the notes as the position crosses note boundaries, keeps the
	// colours of the note glyphs up to date and derives the projection of the
	// page being played.
	//
	// Engine is not safe for concurrent use; all methods are called from the
	// frame loop.
	Engine struct {
		// PlayNotes controls whether the engine starts and stops notes on the
		// trigger. The judged mode sounds only what the player presses.
		PlayNotes bool
		// MarkPlayed controls whether finished notes go back to the ink
		// colour.
		MarkPlayed bool

		score   *sightread.Score
		layout  *Layout
		trigger sightread.NoteTrigger
		hooks   Hooks

		pos     Position
		rate    float64
		started bool
		proj    *Projection
	}
)

// boundaryEpsilon is how far past the end of a note JumpToNextNoteBoundary
// lands, so that the next note is the one sounding.
const boundaryEpsilon = 0.01

func NewEngine(score *sightread.Score, cfg LayoutConfig, trigger sightread.NoteTrigger, hooks Hooks) *Engine {
	e := &Engine{
		PlayNotes:  true,
		MarkPlayed: true,
		score:      score,
		layout:     NewLayout(cfg),
		trigger:    trigger,
		hooks:      hooks,
		rate:       1,
	}
	e.proj = e.layout.Project(score, 0)
	return e
}

func (e *Engine) Score() *sightread.Score { return e.score }
func (e *Engine) Layout() *Layout         { return e.layout }
func (e *Engine) Position() Position      { return e.pos }
func (e *Engine) Rate() float64           { return e.rate }
func (e *Engine) Started() bool           { return e.started }
func (e *Engine) Projection() *Projection { return e.proj }
func (e *Engine) Palette() Palette        { return e.layout.Palette }
func (e *Engine) SetRate(rate float64)    { e.rate = rate }

// Terminal reports whether the position is past the last bar.
func (e *Engine) Terminal() bool { return e.pos.Bar >= e.score.NumBars() }

func (e *Engine) currentBar() *sightread.Bar { return &e.score.Bars[e.pos.Bar] }

func (e *Engine) noteIndex(clef sightread.Clef) int {
	return e.currentBar().NoteAt(e.pos.Beat, clef)
}

// Pause stops all sounding notes and sets the rate to zero. The next frame
// after the rate is set again resumes by restarting the current notes.
func (e *Engine) Pause() {
	e.rate = 0
	e.started = false
	if e.trigger != nil {
		e.trigger.StopAll()
	}
}

// CurrentNote returns the note of the clef at the current position.
func (e *Engine) CurrentNote(clef sightread.Clef) sightread.Note {
	if e.Terminal() {
		return sightread.Note{}
	}
	notes := e.currentBar().Notes(clef)
	if len(notes) == 0 {
		return sightread.Note{}
	}
	return notes[e.noteIndex(clef)]
}

// CurrentPitches returns the pitches of the clef's note at the current
// position. Rests are included; callers decide whether to skip them.
func (e *Engine) CurrentPitches(clef sightread.Clef) []sightread.Pitch {
	return e.CurrentNote(clef).Pitches
}

// Expected returns the pitches that should be held at the current position,
// over both clefs, without rests.
func (e *Engine) Expected() sightread.PitchSet {
	ret := sightread.PitchSet{}
	for _, clef := range sightread.Clefs {
		for _, p := range e.CurrentPitches(clef) {
			if !p.IsRest() {
				ret.Add(p)
			}
		}
	}
	return ret
}

// AdvanceFrame moves the position forward by one frame at the given frame
// rate, scaled by the rate and the tempo of the current bar.
func (e *Engine) AdvanceFrame(fps int) {
	if e.Terminal() || fps <= 0 {
		return
	}
	if !e.started {
		e.started = true
		e.startCurrent()
	} else {
		bar := e.currentBar()
		e.moveTo(e.pos.Beat + e.rate*float64(bar.BPM)/60/float64(fps))
	}
	for !e.Terminal() && e.pos.Beat > e.currentBar().Length() {
		e.nextBar()
	}
	if !e.Terminal() && e.pos.Beat < 0 {
		e.previousBar()
	}
}

// JumpToNextNoteBoundary skips to just after whichever of the current treble
// and bass notes ends first and returns the number of crotchets skipped.
func (e *Engine) JumpToNextNoteBoundary() float64 {
	if e.Terminal() {
		return 0
	}
	bar := e.currentBar()
	end := math.Min(
		bar.EndOffset(bar.NoteAt(e.pos.Beat, sightread.Treble), sightread.Treble),
		bar.EndOffset(bar.NoteAt(e.pos.Beat, sightread.Bass), sightread.Bass))
	jump := end + boundaryEpsilon - e.pos.Beat
	e.moveTo(e.pos.Beat + jump)
	if e.hooks.EarlyRelease != nil {
		e.hooks.EarlyRelease(jump)
	}
	return jump
}

// moveTo moves the beat within the current bar, handing over from old to new
// notes in the clefs where the note changes.
func (e *Engine) moveTo(beat float64) {
	if e.pos.Bar == 0 && beat < 0 {
		beat = 0
	}
	bar := e.currentBar()
	prev := e.pos.Beat
	e.pos.Beat = beat
	for _, clef := range sightread.Clefs {
		oldIdx, newIdx := bar.NoteAt(prev, clef), bar.NoteAt(beat, clef)
		if oldIdx == newIdx {
			continue
		}
		notes := bar.Notes(clef)
		e.stop(notes[oldIdx].Pitches...)
		e.noteStop(notes[oldIdx].Pitches, clef)
		e.play(notes[newIdx].Pitches...)
		if e.MarkPlayed {
			e.proj.SetColor(e.pos.Bar, clef, oldIdx, nil, e.layout.Palette.Ink)
		}
		e.proj.SetColor(e.pos.Bar, clef, newIdx, nil, e.layout.Palette.Playing)
	}
}

func (e *Engine) nextBar() {
	e.stopCurrent()
	e.pos.Beat -= e.currentBar().Length()
	e.pos.Bar++
	if e.hooks.BarChange != nil {
		e.hooks.BarChange(e.pos.Bar)
	}
	if e.Terminal() {
		return
	}
	if e.pos.Bar%e.layout.BarsPerPage == 0 {
		e.proj = e.layout.Project(e.score, e.pos.Bar)
	}
	e.startCurrent()
}

func (e *Engine) previousBar() {
	e.stopCurrent()
	e.pos.Bar--
	e.pos.Beat = math.Max(0, e.pos.Beat+e.currentBar().Length())
	if e.hooks.BarChange != nil {
		e.hooks.BarChange(e.pos.Bar)
	}
	if !e.proj.Contains(e.pos.Bar) {
		e.proj = e.layout.Project(e.score, e.layout.Page(e.pos.Bar))
	}
	e.startCurrent()
}

// stopCurrent stops both clefs at a bar boundary.
func (e *Engine) stopCurrent() {
	for _, clef := range sightread.Clefs {
		e.stop(e.CurrentPitches(clef)...)
	}
	if e.PlayNotes && e.trigger != nil {
		e.trigger.StopAll()
	}
	for _, clef := range sightread.Clefs {
		e.noteStop(e.CurrentPitches(clef), clef)
		if e.MarkPlayed {
			e.proj.SetColor(e.pos.Bar, clef, e.noteIndex(clef), nil, e.layout.Palette.Ink)
		}
	}
}

func (e *Engine) startCurrent() {
	for _, clef := range sightread.Clefs {
		e.play(e.CurrentPitches(clef)...)
		e.proj.SetColor(e.pos.Bar, clef, e.noteIndex(clef), nil, e.layout.Palette.Playing)
	}
}

func (e *Engine) play(pitches ...sightread.Pitch) {
	if e.PlayNotes && e.trigger != nil {
		e.trigger.Play(pitches...)
	}
}

func (e *Engine) stop(pitches ...sightread.Pitch) {
	if e.PlayNotes && e.trigger != nil {
		e.trigger.Stop(pitches...)
	}
}

func (e *Engine) noteStop(pitches []sightread.Pitch, clef sightread.Clef) {
	if e.hooks.NoteStop != nil {
		e.hooks.NoteStop(pitches, clef)
	}
}

// Highlight colours the given pitches of the current notes of both clefs.
func (e *Engine) Highlight(pitches sightread.PitchSet, c color.NRGBA) {
	if e.Terminal() || len(pitches) == 0 {
		return
	}
	for _, clef := range sightread.Clefs {
		e.proj.SetColor(e.pos.Bar, clef, e.noteIndex(clef), pitches, c)
	}
}

// PlayLineX returns the x coordinate of the play line.
func (e *Engine) PlayLineX() float64 {
	if e.Terminal() {
		return e.layout.RightMargin
	}
	return e.proj.X(e.pos.Bar, e.pos.Beat) + e.layout.NoteOffset/2
}

// Draw draws the page being played and the play line.
func (e *Engine) Draw(c Canvas) {
	e.proj.Draw(c)
	if e.Terminal() {
		return
	}
	l := e.layout
	x := e.PlayLineX()
	c.Line(x, l.TrebleBottom-5*l.LineSpacing, x, l.BassBottom+l.LineSpacing, l.Palette.Ink)
}
