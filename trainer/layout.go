package trainer

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/sightread/sightread"
	"golang.org/x/image/colornames"
)

type (
	// Palette holds every colour used when drawing the screens.
	Palette struct {
		Background color.NRGBA
		Ink        color.NRGBA // staff, text and notes not yet played
		Playing    color.NRGBA // notes under the play line
		Correct    color.NRGBA // expected pitches that are held
		Missing    color.NRGBA // expected pitches that are not held
		Selected   color.NRGBA // selected list items
		Alert      color.NRGBA
	}

	// LayoutConfig holds the geometry of the score view. All coordinates are
	// in logical pixels of a Width x Height screen.
	LayoutConfig struct {
		Width, Height int

		LeftMargin      float64 // where the staff lines start
		StartLeftMargin float64 // where the first bar starts, after the clef
		RightMargin     float64 // where the staff lines end

		TrebleBottom float64 // y of the lowest treble staff line
		BassBottom   float64 // y of the lowest bass staff line
		LineSpacing  float64 // distance between two staff lines

		BarsPerPage int     // how many bars are visible at once
		TimingWidth float64 // space reserved for the time signature digits
		NoteOffset  float64 // horizontal offset of a note glyph from its start time

		Palette Palette
	}

	// Layout computes the screen positions of notes according to a
	// LayoutConfig. The vertical offsets of the pitches are precomputed per
	// clef.
	Layout struct {
		LayoutConfig
		offsets [2]map[sightread.Pitch]float64
	}

	// Glyph is a single pitch of a note, positioned on the screen.
	Glyph struct {
		Clef     sightread.Clef
		Bar      int // absolute bar index in the score
		Index    int // index of the note within the bar and clef
		Pitch    sightread.Pitch
		Duration float64

		X, Y    float64   // centre of the note head
		Rest    bool      // draw a rest instead of a note head
		Sharp   bool      // draw a sharp sign before the note head
		Flip    bool      // stem points down instead of up
		Ledgers []float64 // y coordinates of the extra lines around the head

		Color color.NRGBA
	}

	// Label is a piece of text drawn on the score, e.g. a bar number.
	Label struct {
		Text string
		X, Y float64
		Size int
	}

	// Projection is the drawable representation of one page of bars. It is
	// derived from the score and the layout and only needs to be recomputed
	// when the page changes. Glyph colours are the only mutable state.
	Projection struct {
		Page     int // index of the first bar on the page
		Bars     []sightread.Bar
		BarLines []float64
		Glyphs   []Glyph
		Labels   []Label

		layout *Layout
		notes  map[noteRef][]int
	}

	noteRef struct {
		bar   int
		clef  sightread.Clef
		index int
	}
)

var letterSteps = map[byte]int{'C': 0, 'D': 1, 'E': 2, 'F': 3, 'G': 4, 'A': 5, 'B': 6}

var paceNames = []struct {
	max  int
	name string
}{
	{24, "Larghissimo"}, {40, "Grave"}, {60, "Largo"}, {76, "Adagio"}, {108, "Andante"},
	{120, "Moderato"}, {156, "Allegro"}, {176, "Vivace"}, {200, "Presto"},
}

// DefaultPalette returns the colours of the trainer.
func DefaultPalette() Palette {
	return Palette{
		Background: color.NRGBA(colornames.White),
		Ink:        color.NRGBA(colornames.Black),
		Playing:    color.NRGBA{R: 47, G: 29, B: 245, A: 255},
		Correct:    color.NRGBA{R: 14, G: 230, B: 71, A: 255},
		Missing:    color.NRGBA{R: 224, G: 9, B: 9, A: 255},
		Selected:   color.NRGBA{R: 39, G: 117, B: 242, A: 255},
		Alert:      color.NRGBA{R: 244, G: 247, B: 35, A: 255},
	}
}

// DefaultLayout returns the layout for a 320x240 screen showing two bars.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		Width:           320,
		Height:          240,
		LeftMargin:      10,
		StartLeftMargin: 50,
		RightMargin:     310,
		TrebleBottom:    70,
		BassBottom:      160,
		LineSpacing:     10,
		BarsPerPage:     2,
		TimingWidth:     20,
		NoteOffset:      10,
		Palette:         DefaultPalette(),
	}
}

// PaceName returns the Italian tempo marking and the bpm, e.g. "Andante 100".
func PaceName(bpm int) string {
	name := "Prestissimo"
	for _, p := range paceNames {
		if bpm <= p.max {
			name = p.name
			break
		}
	}
	return fmt.Sprintf("%s %d", name, bpm)
}

func NewLayout(cfg LayoutConfig) *Layout {
	if cfg.BarsPerPage < 1 {
		cfg.BarsPerPage = 1
	}
	l := &Layout{LayoutConfig: cfg}
	// the lowest treble pitch in the table, F3, sits three lines below the
	// staff; the lowest bass pitch, E2, one line below
	l.offsets[sightread.Treble] = l.offsetTable("F3", -3*cfg.LineSpacing)
	l.offsets[sightread.Bass] = l.offsetTable("E2", -cfg.LineSpacing)
	return l
}

func diatonicStep(p sightread.Pitch) int {
	return p.Octave()*7 + letterSteps[p[0]]
}

// offsetTable maps every natural pitch to its height above the bottom staff
// line; each diatonic step is half a line spacing.
func (l *Layout) offsetTable(anchor sightread.Pitch, anchorOffset float64) map[sightread.Pitch]float64 {
	table := map[sightread.Pitch]float64{sightread.Rest: 2 * l.LineSpacing}
	base := diatonicStep(anchor)
	for octave := 0; octave <= 9; octave++ {
		for letter := range letterSteps {
			p := sightread.Pitch(string(letter) + strconv.Itoa(octave))
			table[p] = anchorOffset + float64(diatonicStep(p)-base)*l.LineSpacing/2
		}
	}
	return table
}

// StaffOffset returns how far above the bottom line of the clef's staff the
// pitch is drawn. Sharps sit on the position of their natural.
func (l *Layout) StaffOffset(p sightread.Pitch, clef sightread.Clef) float64 {
	return l.offsets[clef][p.Natural()]
}

// ClefBottom returns the y of the lowest staff line of the clef.
func (l *Layout) ClefBottom(clef sightread.Clef) float64 {
	if clef == sightread.Bass {
		return l.BassBottom
	}
	return l.TrebleBottom
}

// StaffLines returns the y coordinates of the five lines of the clef's staff.
func (l *Layout) StaffLines(clef sightread.Clef) []float64 {
	bottom := l.ClefBottom(clef)
	ret := make([]float64, 5)
	for i := range ret {
		ret[i] = bottom - float64(4-i)*l.LineSpacing
	}
	return ret
}

// Flipped reports whether a pitch sits on or above the middle line, in which
// case its stem points down.
func (l *Layout) Flipped(p sightread.Pitch, clef sightread.Clef) bool {
	return !p.IsRest() && l.StaffOffset(p, clef) >= 2*l.LineSpacing
}

// LedgerLines returns the y coordinates of the extra lines needed to draw the
// pitch outside the staff.
func (l *Layout) LedgerLines(p sightread.Pitch, clef sightread.Clef) []float64 {
	if p.IsRest() {
		return nil
	}
	adj := l.StaffOffset(p, clef)
	bottom := l.ClefBottom(clef)
	s := l.LineSpacing
	var ret []float64
	for i := 0; i < int(math.Floor(-adj/s)); i++ {
		ret = append(ret, bottom+float64(i+1)*s)
	}
	for i := 0; i < int(math.Floor((adj-4*s)/s)); i++ {
		ret = append(ret, bottom-float64(i+5)*s)
	}
	return ret
}

// BarStartX returns where the bar with the given index within the page
// starts.
func (l *Layout) BarStartX(rel int) float64 {
	return l.StartLeftMargin + (l.RightMargin-l.StartLeftMargin)*float64(rel)/float64(l.BarsPerPage)
}

// Page returns the index of the first bar on the page showing bar.
func (l *Layout) Page(bar int) int {
	return bar - bar%l.BarsPerPage
}

// Project computes the projection of the page that starts at bar page.
func (l *Layout) Project(score *sightread.Score, page int) *Projection {
	p := &Projection{Page: page, layout: l, notes: map[noteRef][]int{}}
	end := min(page+l.BarsPerPage, score.NumBars())
	if page < end {
		p.Bars = score.Bars[page:end]
	}
	top := l.TrebleBottom - 4*l.LineSpacing
	for rel := range p.Bars {
		p.BarLines = append(p.BarLines, l.BarStartX(rel+1))
		bar := &p.Bars[rel]
		startX := l.BarStartX(rel)
		p.Labels = append(p.Labels, Label{Text: strconv.Itoa(page + rel + 1), X: startX + 5, Y: top - 10, Size: 20})
		if rel == 0 || bar.Timing != p.Bars[rel-1].Timing {
			topDigit, bottomDigit := strconv.Itoa(bar.Timing.Top), strconv.Itoa(bar.Timing.Bottom)
			for _, clef := range sightread.Clefs {
				staffTop := l.ClefBottom(clef) - 4*l.LineSpacing
				p.Labels = append(p.Labels,
					Label{Text: topDigit, X: startX + 10, Y: staffTop + 10, Size: 42},
					Label{Text: bottomDigit, X: startX + 10, Y: staffTop + 32, Size: 42})
			}
		}
		if rel == 0 || bar.BPM != p.Bars[rel-1].BPM {
			p.Labels = append(p.Labels, Label{Text: PaceName(bar.BPM), X: startX + 70, Y: top - 10, Size: 20})
		}
		for _, clef := range sightread.Clefs {
			p.addNotes(page+rel, rel, clef)
		}
	}
	return p
}

func (p *Projection) addNotes(bar, rel int, clef sightread.Clef) {
	l := p.layout
	offset := 0.0
	for i, n := range p.Bars[rel].Notes(clef) {
		x := p.noteX(rel, offset) + l.NoteOffset
		flip := false
		for _, pitch := range n.Pitches {
			if l.Flipped(pitch, clef) {
				flip = true
				break
			}
		}
		ref := noteRef{bar: bar, clef: clef, index: i}
		for _, pitch := range n.Pitches {
			p.notes[ref] = append(p.notes[ref], len(p.Glyphs))
			p.Glyphs = append(p.Glyphs, Glyph{
				Clef:     clef,
				Bar:      bar,
				Index:    i,
				Pitch:    pitch,
				Duration: n.Duration,
				X:        x,
				Y:        l.ClefBottom(clef) - l.StaffOffset(pitch, clef),
				Rest:     pitch.IsRest(),
				Sharp:    pitch.Sharp(),
				Flip:     flip,
				Ledgers:  l.LedgerLines(pitch, clef),
				Color:    l.Palette.Ink,
			})
		}
		offset += n.Duration
	}
}

// noteX returns the x of a time offset within the bar at index rel of the
// page.
func (p *Projection) noteX(rel int, offset float64) float64 {
	l := p.layout
	if rel < 0 || rel >= len(p.Bars) {
		return l.BarStartX(0)
	}
	start := l.BarStartX(rel)
	if rel == 0 || p.Bars[rel].Timing != p.Bars[rel-1].Timing {
		start += l.TimingWidth
	}
	end := l.BarStartX(rel + 1)
	length := p.Bars[rel].Length()
	if length <= 0 {
		return start
	}
	return start + (end-start)*offset/length
}

// X returns the x coordinate of beat crotchets into the given absolute bar.
func (p *Projection) X(bar int, beat float64) float64 {
	return p.noteX(bar-p.Page, beat)
}

// Contains reports whether the absolute bar index is on this page.
func (p *Projection) Contains(bar int) bool {
	return bar >= p.Page && bar < p.Page+len(p.Bars)
}

// SetColor colours the glyphs of a note. If pitches is nil, all pitches of the
// note are coloured; otherwise only the ones in the set.
func (p *Projection) SetColor(bar int, clef sightread.Clef, index int, pitches sightread.PitchSet, c color.NRGBA) {
	for _, g := range p.notes[noteRef{bar: bar, clef: clef, index: index}] {
		if pitches == nil || pitches.Has(p.Glyphs[g].Pitch) {
			p.Glyphs[g].Color = c
		}
	}
}

// NoteColor returns the colour of the first glyph of a note.
func (p *Projection) NoteColor(bar int, clef sightread.Clef, index int) (color.NRGBA, bool) {
	g := p.notes[noteRef{bar: bar, clef: clef, index: index}]
	if len(g) == 0 {
		return color.NRGBA{}, false
	}
	return p.Glyphs[g[0]].Color, true
}

// Draw draws the staves, bar lines, labels and notes of the page.
func (p *Projection) Draw(c Canvas) {
	l := p.layout
	ink := l.Palette.Ink
	for _, clef := range sightread.Clefs {
		lines := l.StaffLines(clef)
		for _, y := range lines {
			c.Line(l.LeftMargin, y, l.RightMargin, y, ink)
		}
		c.Line(l.LeftMargin, lines[0], l.LeftMargin, lines[4], ink)
		for _, x := range p.BarLines {
			c.Line(x, lines[0], x, lines[4], ink)
		}
		c.Clef(clef, (l.LeftMargin+l.StartLeftMargin)/2, l.ClefBottom(clef)-2*l.LineSpacing)
	}
	for _, label := range p.Labels {
		c.Text(label.Text, label.X, label.Y, label.Size, AnchorCenter, ink)
	}
	for _, g := range p.Glyphs {
		c.Glyph(g)
	}
}
