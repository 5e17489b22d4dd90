package trainer

import (
	"image"
	"image/color"

	"github.com/google/uuid"
	"github.com/sightread/sightread"
)

type (
	// Anchor tells which point of a text box is placed at the given
	// coordinates.
	Anchor int

	// Canvas is the drawing surface the screens draw on. The host implements
	// it on top of the actual graphics library.
	Canvas interface {
		Line(x0, y0, x1, y1 float64, c color.Color)
		// Rect fills a rectangle.
		Rect(r image.Rectangle, c color.Color)
		Text(s string, x, y float64, size int, anchor Anchor, c color.Color)
		// Glyph draws a note head with its stem and flags, or a rest, chosen
		// by the duration of the glyph.
		Glyph(g Glyph)
		// Clef draws the clef symbol centred at x, y.
		Clef(clef sightread.Clef, x, y float64)
	}

	// Mode is a screen of the trainer: the menu, a score selection, a
	// training or game session etc.
	Mode interface {
		AdvanceFrame(fps int)
		Draw(c Canvas)
		HandleClick(p image.Point)
		HasQuit() bool
	}

	// Resulter is implemented by modes that produce a result when they quit.
	Resulter interface {
		Result() *SessionResult
	}

	// ChildObserver is implemented by modes that want to know when a mode
	// they opened quits. result is nil if the child produced none.
	ChildObserver interface {
		ChildQuit(result *SessionResult)
	}

	// Spawner is implemented by modes that open other modes. Spawn returns
	// the mode to open, at most once, or nil.
	Spawner interface {
		Spawn() Mode
	}

	// SessionResult is what a judged session hands back to the screen that
	// started it.
	SessionResult struct {
		ID           uuid.UUID
		Score        *sightread.Score
		Completed    bool // false if the player exited before the end
		WrongNotes   int
		EarlyNotes   int
		SkippedBeats float64 // crotchets skipped by early releases
		Frames       int
		FPS          int
	}

	// Env holds the services shared by all the modes.
	Env struct {
		Trigger sightread.NoteTrigger
		Input   sightread.InputSource
		Layout  LayoutConfig
		Alerts  *Alerts
		Library []*sightread.Score
	}

	// Navigator is the stack of open modes. Only the top mode advances,
	// draws and receives clicks. When it quits, it is popped and its result
	// is handed to the mode below it.
	Navigator struct {
		stack []Mode
	}
)

const (
	AnchorCenter Anchor = iota
	AnchorTopLeft
	AnchorLeft
)

// NewResult returns an empty result for a session on the score.
func NewResult(score *sightread.Score, fps int) *SessionResult {
	return &SessionResult{ID: uuid.New(), Score: score, FPS: fps}
}

// Grade grades the result; see Grade.
func (r *SessionResult) Grade() Report {
	return Grade(r.WrongNotes, r.EarlyNotes, r.Frames, r.Score, r.FPS)
}

func NewNavigator(root Mode) *Navigator {
	return &Navigator{stack: []Mode{root}}
}

func (n *Navigator) Push(m Mode) {
	n.stack = append(n.stack, m)
}

// Top returns the active mode or nil if all modes have quit.
func (n *Navigator) Top() Mode {
	if len(n.stack) == 0 {
		return nil
	}
	return n.stack[len(n.stack)-1]
}

func (n *Navigator) Depth() int { return len(n.stack) }

// Done is true once the root mode has quit.
func (n *Navigator) Done() bool { return len(n.stack) == 0 }

func (n *Navigator) AdvanceFrame(fps int) {
	top := n.Top()
	if top == nil {
		return
	}
	top.AdvanceFrame(fps)
	n.settle(top)
}

func (n *Navigator) Draw(c Canvas) {
	if top := n.Top(); top != nil {
		top.Draw(c)
	}
}

func (n *Navigator) HandleClick(p image.Point) {
	top := n.Top()
	if top == nil {
		return
	}
	top.HandleClick(p)
	n.settle(top)
}

// settle pops the mode if it quit, or pushes whatever it spawned.
func (n *Navigator) settle(top Mode) {
	if top.HasQuit() {
		n.stack = n.stack[:len(n.stack)-1]
		var result *SessionResult
		if r, ok := top.(Resulter); ok {
			result = r.Result()
		}
		if parent, ok := n.Top().(ChildObserver); ok {
			parent.ChildQuit(result)
		}
		// the parent may open a follow-up screen, e.g. a report
		if parent := n.Top(); parent != nil {
			n.spawn(parent)
		}
		return
	}
	n.spawn(top)
}

func (n *Navigator) spawn(m Mode) {
	if s, ok := m.(Spawner); ok {
		if child := s.Spawn(); child != nil {
			n.Push(child)
		}
	}
}
