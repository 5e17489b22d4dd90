package trainer_test

import (
	"reflect"
	"testing"

	"github.com/sightread/sightread"
	"github.com/sightread/sightread/trainer"
)

// tenNotes is one 4/4 bar at 120 bpm with five notes in each clef; it takes
// 60 frames at 30 fps.
const tenNotes = `Ten Notes
120
4 4

T C4 1
T D4 1
T E4 1
T F4 0.5
T G4 0.5
B C3 1
B D3 1
B E3 1
B F3 0.5
B G3 0.5
`

func TestGrade(t *testing.T) {
	score := mustParse(t, tenNotes)
	cases := []struct {
		name                 string
		wrong, early, frames int
		want                 string
	}{
		{"perfect", 0, 0, 60, "S"},
		{"ten percent wrong", 1, 0, 60, "B"},
		{"slightly slow", 0, 0, 65, "S"},
		{"slow", 0, 0, 67, "A"},
		{"twenty percent early", 0, 2, 60, "C"},
		{"half wrong", 5, 0, 60, "D"},
		{"mostly wrong", 6, 0, 60, "F"},
		{"far too slow", 0, 0, 121, "F"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := trainer.Grade(c.wrong, c.early, c.frames, score, 30)
			if r.Letter != c.want {
				t.Errorf("got %s (wrong %.1f%%, early %.1f%%, time %.1f%%), want %s", r.Letter, r.PctWrong, r.PctEarly, r.PctTime, c.want)
			}
		})
	}
}

func TestGradeEmptyScore(t *testing.T) {
	if r := trainer.Grade(0, 0, 10, &sightread.Score{Name: "Empty"}, 30); r.Letter != trainer.FailLetter {
		t.Errorf("a score without notes should fail, got %s", r.Letter)
	}
	if r := trainer.Grade(0, 0, 10, nil, 30); r.Letter != trainer.FailLetter {
		t.Errorf("a missing score should fail, got %s", r.Letter)
	}
}

func TestReportLines(t *testing.T) {
	r := trainer.Grade(1, 1, 60, mustParse(t, tenNotes), 30)
	want := []string{
		"Wrong Notes: 1",
		"Early Notes: 1 (10.00%)",
		"Time Used: 2.00s (100.00%)",
		"Expected: 2.00s",
	}
	if got := r.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}
