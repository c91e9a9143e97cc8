package sim

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// FrameMsg is delivered once per scheduled frame of a Loop.
type FrameMsg struct {
	ID   int
	Time time.Time
	tag  int
}

// Loop is a cancellable animation handle. A field owns one Loop; the
// bubbletea program delivers its FrameMsgs back through Update. Stopping a
// loop invalidates every frame already in flight, so a stopped field never
// steps again even if a tick was scheduled before Stop.
type Loop struct {
	id       int
	tag      int
	interval time.Duration
	running  bool
}

// NewLoop returns a stopped loop ticking at fps frames per second.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return NewTicker(time.Second / time.Duration(fps))
}

// NewTicker returns a stopped loop ticking every d.
func NewTicker(d time.Duration) *Loop {
	return &Loop{id: nextID(), interval: d}
}

func (l *Loop) ID() int                 { return l.id }
func (l *Loop) Running() bool           { return l.running }
func (l *Loop) Interval() time.Duration { return l.interval }

// Start begins a new run and schedules its first frame.
func (l *Loop) Start() tea.Cmd {
	l.running = true
	l.tag++
	return l.schedule()
}

// Stop ends the current run. Frames already scheduled are dropped by Accept.
func (l *Loop) Stop() {
	l.running = false
	l.tag++
}

// Accept reports whether msg is a frame of this loop's current run.
func (l *Loop) Accept(msg FrameMsg) bool {
	return l.running && msg.ID == l.id && msg.tag == l.tag
}

// Next schedules the frame after an accepted one.
func (l *Loop) Next() tea.Cmd {
	if !l.running {
		return nil
	}
	return l.schedule()
}

// Frame builds a frame of the current run at time t without scheduling it.
// Headless runners and tests drive fields with it.
func (l *Loop) Frame(t time.Time) FrameMsg {
	return FrameMsg{ID: l.id, Time: t, tag: l.tag}
}

func (l *Loop) schedule() tea.Cmd {
	id, tag := l.id, l.tag
	return tea.Tick(l.interval, func(t time.Time) tea.Msg {
		return FrameMsg{ID: id, Time: t, tag: tag}
	})
}
