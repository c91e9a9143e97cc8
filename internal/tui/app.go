package tui

import (
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/mattn/go-runewidth"

	"github.com/san-kum/snowtype/internal/audio"
	"github.com/san-kum/snowtype/internal/caret"
	"github.com/san-kum/snowtype/internal/frontend"
	"github.com/san-kum/snowtype/internal/metrics"
	"github.com/san-kum/snowtype/internal/sim"
	"github.com/san-kum/snowtype/internal/typing"
	"github.com/san-kum/snowtype/internal/viz"
)

type state int

const (
	stateTyping state = iota
	stateResults
)

const (
	footerHeight = 3
	maxTextWidth = 72
	textTop      = 5
)

type model struct {
	opts    frontend.Options
	state   state
	session *typing.Session
	stats   *metrics.Set
	peak    *metrics.Peak
	input   textinput.Model
	scene   *scene

	ticker *sim.Loop
	ui     *sim.Loop
	spring harmonica.Spring
	barPos float64
	barVel float64

	width  int
	height int
}

func newModel(opts frontend.Options) (model, error) {
	opts.Defaults()

	session, err := typing.NewSession(opts.Source, opts.Rand, opts.Clock)
	if err != nil {
		return model{}, err
	}
	peak := metrics.NewPeak()
	stats := metrics.NewSet(metrics.NewSpeed(), peak, metrics.NewAccuracy(), metrics.NewCorrections(), metrics.NewConsistency(0))
	session.AddObserver(stats)

	ti := textinput.New()
	ti.Placeholder = "start typing..."
	ti.Prompt = "› "
	ti.Focus()

	m := model{
		opts:    opts,
		session: session,
		stats:   stats,
		peak:    peak,
		input:   ti,
		ticker:  sim.NewTicker(typing.SpeedInterval),
		ui:      sim.NewLoop(opts.FPS),
		spring:  harmonica.NewSpring(harmonica.FPS(opts.FPS), 6.0, 0.6),
		width:   80,
		height:  24,
	}
	sc, err := newScene(opts, m.width, m.frameHeight())
	if err != nil {
		return model{}, err
	}
	m.scene = sc
	return m, nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.scene.start(), m.ticker.Start(), m.ui.Start())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(m.textWidth()-4, 10)
		m.scene.resize(m.width, m.frameHeight())
		return m, nil
	case tea.MouseMsg:
		m.scene.pointer(msg.X, msg.Y)
		return m, nil
	case sim.FrameMsg:
		switch msg.ID {
		case m.ticker.ID():
			if !m.ticker.Accept(msg) {
				return m, nil
			}
			m.session.Tick(msg.Time)
			return m, m.ticker.Next()
		case m.ui.ID():
			if !m.ui.Accept(msg) {
				return m, nil
			}
			m.barPos, m.barVel = m.spring.Update(m.barPos, m.barVel, float64(m.session.Progress()))
			return m, m.ui.Next()
		}
		return m, m.scene.update(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	switch m.state {
	case stateResults:
		return m.resultsKey(msg)
	default:
		return m.typingKey(msg)
	}
}

func (m model) quit() (model, tea.Cmd) {
	m.scene.stop()
	m.ticker.Stop()
	m.ui.Stop()
	return m, tea.Quit
}

func (m model) resultsKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "esc", "enter", "tab":
		m.state = stateTyping
		m.input.Focus()
	case "r":
		m.stats.Reset()
	}
	return m, nil
}

func (m model) typingKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyTab:
		m.state = stateResults
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == prev {
		return m, cmd
	}
	m = m.apply(fromBox(m.input.Value()))
	return m, cmd
}

// The input box is single line, so a typed newline is shown as
// newlineGlyph and mapped back before it reaches the session.
const newlineGlyph = "⏎"

func fromBox(v string) string { return strings.ReplaceAll(v, newlineGlyph, "\n") }
func toBox(v string) string   { return strings.ReplaceAll(v, "\n", newlineGlyph) }

// apply hands the new input to the session and plays the feedback.
func (m model) apply(next string) model {
	res := m.session.HandleInput(next)
	if !res.Accepted {
		m.input.SetValue(toBox(m.session.Input()))
		m.input.CursorEnd()
		m.opts.Player.Play(audio.Buzz)
		return m
	}
	if res.Grew {
		col, row := m.caretCell(res.Caret)
		m.scene.burst(col, row, m.opts.SparkCount)
		if res.Mismatches > 0 {
			m.opts.Player.Play(audio.Buzz)
		} else {
			m.opts.Player.Play(audio.Click)
		}
	}
	return m
}

// submit handles enter: it completes the sentence when the input is long
// enough, otherwise the newline is typed like any other rune.
func (m model) submit() (model, tea.Cmd) {
	end := utf8.RuneCountInString(m.session.Target())
	col, row := m.caretCell(end)
	if utf8.RuneCountInString(m.session.Input()) < end {
		m = m.apply(m.session.Input() + "\n")
		m.input.SetValue(toBox(m.session.Input()))
		m.input.CursorEnd()
		return m, nil
	}
	if !m.session.HandleInput(m.session.Input() + "\n").Reset {
		return m, nil
	}
	log.Printf("tui: sentence complete, next %q", m.session.Target())
	m.input.SetValue("")
	m.barPos, m.barVel = 0, 0
	m.opts.Player.Play(audio.Chime)
	m.scene.burst(col, row, m.opts.SparkCount*3)
	return m, m.scene.strike(col, row)
}

func (m model) frameHeight() int {
	return max(m.height-footerHeight, 1)
}

func (m model) textWidth() int {
	w := min(m.width-8, maxTextWidth)
	if w < 20 {
		w = max(m.width-2, 10)
	}
	return w
}

func (m model) textLeft() int {
	return max((m.width-m.textWidth())/2, 0)
}

func (m model) probe() caret.Probe {
	return caret.Probe{Width: m.textWidth()}
}

// caretCell returns the screen cell of a rune offset in the target.
func (m model) caretCell(offset int) (col, row int) {
	c, r := m.probe().Locate(m.session.Target(), offset)
	return m.textLeft() + c, textTop + r
}

func (m model) View() string {
	switch m.state {
	case stateResults:
		return m.viewResults()
	default:
		return m.viewTyping()
	}
}

func (m model) viewTyping() string {
	t := m.opts.Theme
	f := viz.NewFrame(m.width, m.frameHeight())
	m.scene.draw(f)

	f.PutString(2, 1, "snowtype", viz.Color(t.Primary), true)
	stats := fmt.Sprintf("%.2f cps  %3d%%", m.session.Speed(), m.session.Progress())
	f.PutString(m.width-2-runewidth.StringWidth(stats), 1, stats, viz.Color(t.Muted), false)

	m.drawBar(f, m.textLeft(), 3, m.textWidth())
	m.drawTarget(f)

	var hint string
	switch {
	case m.session.Locked():
		hint = "fix your mistakes to keep going"
	case m.session.Progress() >= 100:
		hint = "press enter for the next sentence"
	}
	if hint != "" {
		_, rows := m.caretCell(utf8.RuneCountInString(m.session.Target()))
		f.PutString(m.textLeft(), rows+2, hint, viz.Color(t.Muted), false)
	}

	footer := "\n\n" + m.input.View() + "\n" + viz.KeyHint.Render("  enter next · esc results · ctrl+c quit")
	return f.Render() + footer
}

func (m model) drawBar(f *viz.Frame, x, y, width int) {
	t := m.opts.Theme
	seg := max(width/viz.BarSegments, 1)
	filled := viz.FilledSegments(m.barPos, 100, viz.BarSegments)
	colors := viz.SegmentColors(t.BarFrom, t.BarTo, viz.BarSegments)
	empty := viz.Color(t.BarEmpty)
	for i := 0; i < viz.BarSegments; i++ {
		for k := 0; k < seg; k++ {
			if i < filled {
				f.Put(x+i*seg+k, y, '▰', colors[i], false)
			} else {
				f.Put(x+i*seg+k, y, '▱', empty, false)
			}
		}
	}
}

func (m model) drawTarget(f *viz.Frame) {
	t := m.opts.Theme
	target := m.session.Target()
	marks := m.session.Highlight()
	pos := m.probe().Positions(target)
	caretAt := utf8.RuneCountInString(m.session.Input())
	left := m.textLeft()

	i := 0
	for _, r := range target {
		p := pos[i]
		fg := viz.Color(t.Text)
		switch marks[i] {
		case typing.Correct:
			fg = viz.Color(t.Correct)
		case typing.Incorrect:
			fg = viz.Color(t.Incorrect)
			if r == ' ' {
				r = '·'
			}
		}
		if r != '\n' {
			f.Put(left+p.Col, textTop+p.Row, r, fg, i == caretAt)
		}
		i++
	}
}

// Report summarizes a finished run.
type Report struct {
	Samples   []float64
	Completed []typing.Summary
	Values    map[string]float64
}

func (m model) report() *Report {
	return &Report{
		Samples:   m.peak.Samples(),
		Completed: m.session.Completed(),
		Values:    m.stats.Values(),
	}
}

// Run starts the typing trainer and blocks until the user quits.
func Run(opts frontend.Options) (*Report, error) {
	m, err := newModel(opts)
	if err != nil {
		return nil, err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	if fm, ok := final.(model); ok {
		return fm.report(), nil
	}
	return m.report(), nil
}
