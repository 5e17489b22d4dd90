package trainer

import (
	"fmt"
	"image"
	"log"
)

type (
	// SelectionKind tells which mode a Selection starts.
	SelectionKind int

	// Selection lists the scores of the library a page at a time. Clicking a
	// score selects it; Select starts the session. When a judged session
	// completes, the selection opens its report.
	Selection struct {
		env     *Env
		kind    SelectionKind
		fps     int
		stage   *Stage
		slots   [ScoresPerPage]*Button
		page    int
		sel     int
		pending Mode
		quit    bool
	}
)

const (
	SelectTraining SelectionKind = iota
	SelectGame
)

// ScoresPerPage is how many scores a Selection shows at once.
const ScoresPerPage = 4

func NewSelection(env *Env, kind SelectionKind, fps int) *Selection {
	s := &Selection{env: env, kind: kind, fps: fps, sel: -1, stage: NewStage(env.Layout.Palette)}
	for i := range s.slots {
		s.slots[i] = s.stage.Add("", buttonColumn(env.Layout, i, 12), func() { s.choose(i) })
	}
	s.stage.Add("Back", buttonRow(env.Layout, 0, 4), func() { s.quit = true })
	s.stage.Add("Up", buttonRow(env.Layout, 1, 4), s.PageUp)
	s.stage.Add("Down", buttonRow(env.Layout, 2, 4), s.PageDown)
	s.stage.Add("Select", buttonRow(env.Layout, 3, 4), s.Start)
	s.refresh()
	return s
}

func (s *Selection) Page() int     { return s.page }
func (s *Selection) Selected() int { return s.sel }

func (s *Selection) numPages() int {
	return max((len(s.env.Library)+ScoresPerPage-1)/ScoresPerPage, 1)
}

func (s *Selection) choose(slot int) {
	idx := s.page*ScoresPerPage + slot
	if idx >= len(s.env.Library) {
		return
	}
	s.sel = idx
	s.refresh()
}

func (s *Selection) PageUp() {
	if s.page > 0 {
		s.page--
		s.sel = -1
		s.refresh()
	}
}

func (s *Selection) PageDown() {
	if s.page < s.numPages()-1 {
		s.page++
		s.sel = -1
		s.refresh()
	}
}

// Start opens the session for the selected score, if any.
func (s *Selection) Start() {
	if s.sel < 0 {
		return
	}
	score := s.env.Library[s.sel]
	switch s.kind {
	case SelectGame:
		s.pending = NewGame(s.env, score, s.fps)
	default:
		s.pending = NewTraining(s.env, score)
	}
}

func (s *Selection) refresh() {
	for i, b := range s.slots {
		idx := s.page*ScoresPerPage + i
		b.Hidden = idx >= len(s.env.Library)
		b.Selected = idx == s.sel
		if !b.Hidden {
			b.Text = s.env.Library[idx].Name
		}
	}
}

func (s *Selection) ChildQuit(result *SessionResult) {
	if result == nil || !result.Completed {
		return
	}
	report := result.Grade()
	log.Printf("session %v on %q graded %s", result.ID, result.Score.Name, report.Letter)
	s.pending = NewReportScreen(s.env, report)
}

func (s *Selection) Spawn() Mode {
	ret := s.pending
	s.pending = nil
	return ret
}

func (s *Selection) AdvanceFrame(int) {
	s.env.Input.Poll()
	s.env.Input.Updates()
}

func (s *Selection) Draw(c Canvas) {
	cfg := s.env.Layout
	c.Rect(image.Rect(0, 0, cfg.Width, cfg.Height), cfg.Palette.Background)
	s.stage.Draw(c)
	if len(s.env.Library) == 0 {
		c.Text("No scores found", float64(cfg.Width)/2, float64(cfg.Height)/2, 20, AnchorCenter, cfg.Palette.Ink)
		return
	}
	c.Text(fmt.Sprintf("%d/%d", s.page+1, s.numPages()), float64(cfg.Width)-20, 6, 16, AnchorCenter, cfg.Palette.Ink)
}

func (s *Selection) HandleClick(p image.Point) { s.stage.HandleClick(p) }
func (s *Selection) HasQuit() bool             { return s.quit }
