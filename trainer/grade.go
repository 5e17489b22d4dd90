package trainer

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/sightread/sightread"
)

type (
	// Cutoff is the worst performance that still earns a letter. All
	// percentages must be at most the cutoff values.
	Cutoff struct {
		Letter   string
		MaxWrong float64
		MaxEarly float64
		MaxTime  float64
	}

	// Report is the graded outcome of a judged session.
	Report struct {
		Letter         string
		WrongNotes     int
		EarlyNotes     int
		Frames         int
		FPS            int
		ExpectedFrames float64
		PctWrong       float64
		PctEarly       float64
		PctTime        float64
	}
)

// FailLetter is the grade when no cutoff is met.
const FailLetter = "F"

// Cutoffs are checked in order; the first one met gives the grade.
var Cutoffs = []Cutoff{
	{"S", 1, 1, 110},
	{"A", 5, 5, 125},
	{"B", 15, 15, 140},
	{"C", 30, 30, 180},
	{"D", 50, 50, 200},
}

var reportTemplate = template.Must(template.New("report").Funcs(sprig.TxtFuncMap()).Parse(
	`Wrong Notes: {{ .WrongNotes | toString }}
Early Notes: {{ .EarlyNotes | toString }} ({{ .PctEarly | printf "%.2f" }}%)
Time Used: {{ .Seconds | printf "%.2f" }}s ({{ .PctTime | printf "%.2f" }}%)
Expected: {{ .ExpectedSeconds | printf "%.2f" }}s
`))

// Grade grades a judged session of the score that took frames frames at
// fps. A score without notes or without duration cannot be graded and gets
// FailLetter.
func Grade(wrong, early, frames int, score *sightread.Score, fps int) Report {
	r := Report{Letter: FailLetter, WrongNotes: wrong, EarlyNotes: early, Frames: frames, FPS: fps}
	if score == nil {
		return r
	}
	r.ExpectedFrames = score.ExpectedFrames(fps)
	notes := float64(score.NumNotes())
	if notes == 0 || r.ExpectedFrames <= 0 {
		return r
	}
	r.PctTime = float64(frames) / r.ExpectedFrames * 100
	r.PctEarly = float64(early) / notes * 100
	r.PctWrong = float64(wrong) / notes * 100
	for _, c := range Cutoffs {
		if r.PctWrong <= c.MaxWrong && r.PctEarly <= c.MaxEarly && r.PctTime <= c.MaxTime {
			r.Letter = c.Letter
			break
		}
	}
	return r
}

// Seconds returns the time used in seconds.
func (r Report) Seconds() float64 {
	if r.FPS <= 0 {
		return 0
	}
	return float64(r.Frames) / float64(r.FPS)
}

// ExpectedSeconds returns the nominal duration of the score in seconds.
func (r Report) ExpectedSeconds() float64 {
	if r.FPS <= 0 {
		return 0
	}
	return r.ExpectedFrames / float64(r.FPS)
}

// Lines returns the report as text lines for display.
func (r Report) Lines() []string {
	var b bytes.Buffer
	if err := reportTemplate.Execute(&b, r); err != nil {
		return []string{err.Error()}
	}
	return strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
}
