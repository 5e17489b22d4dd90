package trainer

import (
	"sort"
	"time"
)

type (
	Alert struct {
		Message   string
		Priority  AlertPriority
		Duration  time.Duration
		remaining time.Duration
	}

	AlertPriority int

	// Alerts is a queue of messages shown to the user one at a time, highest
	// priority first. Among equal priorities the oldest is shown first. The
	// shown alert stays until its duration has elapsed.
	Alerts struct {
		queue []Alert
	}
)

const (
	None AlertPriority = iota
	Info
	Warning
	Error
)

const defaultAlertDuration = 3 * time.Second

func (p AlertPriority) String() string {
	switch p {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "none"
}

// Add queues a message. Messages with priority None are ignored; a zero
// duration is replaced by the default.
func (a *Alerts) Add(message string, priority AlertPriority, duration time.Duration) {
	if priority == None {
		return
	}
	if duration <= 0 {
		duration = defaultAlertDuration
	}
	a.queue = append(a.queue, Alert{Message: message, Priority: priority, Duration: duration, remaining: duration})
	// the alert being shown is not interrupted by ones of equal priority
	sort.SliceStable(a.queue, func(i, j int) bool { return a.queue[i].Priority > a.queue[j].Priority })
}

// Top returns the alert to show, if any.
func (a *Alerts) Top() (Alert, bool) {
	if len(a.queue) == 0 {
		return Alert{}, false
	}
	return a.queue[0], true
}

func (a *Alerts) Len() int { return len(a.queue) }

// Advance counts the elapsed time against the shown alert and drops it once
// its duration is over.
func (a *Alerts) Advance(elapsed time.Duration) {
	if len(a.queue) == 0 {
		return
	}
	a.queue[0].remaining -= elapsed
	if a.queue[0].remaining <= 0 {
		a.queue = a.queue[1:]
	}
}

// Draw draws the shown alert as a banner at the bottom of the screen.
func (a *Alerts) Draw(c Canvas, cfg LayoutConfig) {
	alert, ok := a.Top()
	if !ok {
		return
	}
	const height = 24
	bg, ink := cfg.Palette.Ink, cfg.Palette.Background
	switch alert.Priority {
	case Warning:
		bg, ink = cfg.Palette.Alert, cfg.Palette.Ink
	case Error:
		bg, ink = cfg.Palette.Missing, cfg.Palette.Background
	}
	r := rectXYWH(0, cfg.Height-height, cfg.Width, height)
	c.Rect(r, bg)
	c.Text(alert.Message, float64(cfg.Width)/2, float64(cfg.Height-height/2), 16, AnchorCenter, ink)
}
