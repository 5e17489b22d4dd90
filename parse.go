package sightread

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// firstBarLine is the index of the first line that belongs to the bars; lines
// before it hold the name, the tempo and the time signature.
const firstBarLine = 4

// RenderableDurations lists the note durations, in crotchets, that have a
// glyph: semiquaver, dotted semiquaver, quaver, dotted quaver, crotchet,
// dotted crotchet, minim, dotted minim and semibreve.
var RenderableDurations = []float64{0.25, 0.375, 0.5, 0.75, 1.0, 1.5, 2.0, 3.0, 4.0}

// Renderable reports whether a note of duration d can be drawn. The duration
// is rounded to three decimals before comparing.
func Renderable(d float64) bool {
	r := math.Round(d*1000) / 1000
	for _, v := range RenderableDurations {
		if r == v {
			return true
		}
	}
	return false
}

// ParseFile opens and parses the score at path. If the file cannot be read,
// the error is a *ParseError of kind FileNotFound.
func ParseFile(path string, playable func(Pitch) bool, renderable func(float64) bool) (*Score, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Kind: FileNotFound, Err: err}
	}
	defer f.Close()
	return Parse(f, playable, renderable)
}

// Parse reads a score in the line-oriented score format. playable is asked
// about every pitch (including rests) and renderable about every duration;
// either may be nil, in which case ValidPitch and Renderable are used.
// Parsing stops at the first problem, which is returned as a *ParseError.
func Parse(r io.Reader, playable func(Pitch) bool, renderable func(float64) bool) (*Score, error) {
	if playable == nil {
		playable = ValidPitch
	}
	if renderable == nil {
		renderable = Renderable
	}
	lines, err := readLines(r)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ParseError{Kind: FileNotFound, Err: err}
		}
		return nil, fmt.Errorf("reading score failed: %w", err)
	}
	p := parser{playable: playable, renderable: renderable, bar: 1}
	if err := p.header(lines); err != nil {
		return nil, err
	}
	for i := firstBarLine; i < len(lines); i++ {
		if err := p.line(i, lines[i]); err != nil {
			return nil, err
		}
	}
	// the synthetic blank line that closes the final bar
	if p.pending() {
		if err := p.closeBar(len(lines)); err != nil {
			return nil, err
		}
	}
	return &Score{Name: p.name, Bars: p.bars}, nil
}

type parser struct {
	playable   func(Pitch) bool
	renderable func(float64) bool

	name   string
	bpm    int
	timing TimeSignature
	bars   []Bar
	bar    int // 1-based number of the bar being read

	treble, bass       []Note
	trebleLen, bassLen float64
}

var upper = cases.Upper(language.Und)

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

func (p *parser) header(lines []string) error {
	malformed := func(line int, err error) error {
		return &ParseError{Kind: MalformedLine, Bar: p.bar, Line: line, Err: err}
	}
	if len(lines) < 3 {
		return malformed(len(lines), io.ErrUnexpectedEOF)
	}
	p.name = strings.TrimSpace(lines[0])
	bpm, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil || bpm <= 0 {
		return malformed(1, err)
	}
	p.bpm = bpm
	timing, err := parseTiming(strings.Fields(lines[2]))
	if err != nil {
		return malformed(2, err)
	}
	p.timing = timing
	return nil
}

func parseTiming(fields []string) (TimeSignature, error) {
	if len(fields) < 2 {
		return TimeSignature{}, errors.New("time signature needs two numbers")
	}
	top, err := strconv.Atoi(fields[0])
	if err != nil {
		return TimeSignature{}, err
	}
	bottom, err := strconv.Atoi(fields[1])
	if err != nil {
		return TimeSignature{}, err
	}
	if top <= 0 || bottom <= 0 {
		return TimeSignature{}, fmt.Errorf("time signature %d/%d is not positive", top, bottom)
	}
	return TimeSignature{Top: top, Bottom: bottom}, nil
}

func (p *parser) pending() bool {
	return len(p.treble) > 0 || len(p.bass) > 0
}

func (p *parser) line(no int, line string) error {
	line = upper.String(line)
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "#"):
		return nil
	case trimmed == "": // also lines of only spaces or a stray \r
		return p.closeBar(no)
	case strings.HasPrefix(trimmed, "CHANGE"):
		return p.change(no, strings.Fields(trimmed))
	default:
		return p.note(no, strings.Fields(trimmed))
	}
}

func (p *parser) closeBar(no int) error {
	expected := p.timing.Length()
	if !FloatEq(p.trebleLen, expected) || !FloatEq(p.bassLen, expected) {
		return &ParseError{Kind: InvalidTiming, Bar: p.bar, Line: no}
	}
	p.bars = append(p.bars, Bar{BPM: p.bpm, Timing: p.timing, Treble: p.treble, Bass: p.bass})
	p.treble, p.bass = nil, nil
	p.trebleLen, p.bassLen = 0, 0
	p.bar++
	return nil
}

func (p *parser) change(no int, fields []string) error {
	malformed := &ParseError{Kind: MalformedLine, Bar: p.bar, Line: no}
	if len(fields) < 3 {
		return malformed
	}
	switch fields[1] {
	case "PACE":
		bpm, err := strconv.Atoi(fields[2])
		if err != nil || bpm <= 0 {
			malformed.Err = err
			return malformed
		}
		p.bpm = bpm
	case "TIMING":
		timing, err := parseTiming(fields[2:])
		if err != nil {
			malformed.Err = err
			return malformed
		}
		p.timing = timing
	default:
		return malformed
	}
	return nil
}

func (p *parser) note(no int, fields []string) error {
	if len(fields) < 3 {
		return &ParseError{Kind: MalformedLine, Bar: p.bar, Line: no}
	}
	names := strings.Split(fields[1], ",")
	pitches := make([]Pitch, len(names))
	for i, name := range names {
		pitch := Pitch(name)
		if !p.playable(pitch) {
			return &ParseError{Kind: UnplayablePitch, Bar: p.bar, Line: no, Pitch: pitch}
		}
		pitches[i] = pitch
	}
	duration, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return &ParseError{Kind: MalformedLine, Bar: p.bar, Line: no, Err: err}
	}
	if duration <= 0 || !p.renderable(duration) {
		return &ParseError{Kind: UnrenderableDuration, Bar: p.bar, Line: no, Duration: duration}
	}
	note := Note{Pitches: pitches, Duration: duration}
	if fields[0] == "B" {
		p.bass = append(p.bass, note)
		p.bassLen += duration
	} else {
		p.treble = append(p.treble, note)
		p.trebleLen += duration
	}
	return nil
}
