package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/snowtype/internal/frontend"
	"github.com/san-kum/snowtype/internal/sim"
	"github.com/san-kum/snowtype/internal/viz"
)

// Mode picks what the ambient screen shows.
type Mode int

const (
	// ModeSnow is snowfall alone.
	ModeSnow Mode = iota
	// ModeStorm adds lightning that strikes at random.
	ModeStorm
)

// strikeOdds is the per-frame chance, as 1/(n+1), that an idle storm
// strikes again.
const strikeOdds = 90

// ambient is a typing-free screen: the effect layers with pointer
// parallax, optionally with lightning.
type ambient struct {
	mode   Mode
	opts   frontend.Options
	scene  *scene
	clock  *sim.Loop
	width  int
	height int
}

func newAmbient(opts frontend.Options, mode Mode) (ambient, error) {
	opts.Defaults()
	opts.Lightning = mode == ModeStorm
	sc, err := newScene(opts, 80, 24)
	if err != nil {
		return ambient{}, err
	}
	return ambient{
		mode:   mode,
		opts:   opts,
		scene:  sc,
		clock:  sim.NewLoop(opts.FPS),
		width:  80,
		height: 24,
	}, nil
}

func (a ambient) Init() tea.Cmd {
	cmds := []tea.Cmd{a.scene.start()}
	if a.mode == ModeStorm {
		cmds = append(cmds, a.clock.Start())
	}
	return tea.Batch(cmds...)
}

func (a ambient) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			a.scene.stop()
			a.clock.Stop()
			return a, tea.Quit
		case " ":
			return a, a.strikeRandom()
		}
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.scene.resize(a.width, a.height)
	case tea.MouseMsg:
		a.scene.pointer(msg.X, msg.Y)
		if msg.Action == tea.MouseActionPress {
			return a, a.scene.strike(msg.X, msg.Y)
		}
	case sim.FrameMsg:
		if msg.ID == a.clock.ID() {
			if !a.clock.Accept(msg) {
				return a, nil
			}
			var strike tea.Cmd
			if !a.scene.boltActive() && a.scene.rng.Intn(strikeOdds+1) == 0 {
				strike = a.strikeRandom()
			}
			return a, tea.Batch(strike, a.clock.Next())
		}
		return a, a.scene.update(msg)
	}
	return a, nil
}

func (a ambient) strikeRandom() tea.Cmd {
	col := a.width/4 + a.scene.rng.Intn(max(a.width/2, 1))
	return a.scene.strike(col, a.scene.rng.Intn(max(a.height/4, 1)))
}

func (a ambient) View() string {
	f := viz.NewFrame(a.width, a.height)
	a.scene.draw(f)
	return f.Render()
}

// RunAmbient shows the effects without a typing session until a key quits.
func RunAmbient(opts frontend.Options, mode Mode) error {
	a, err := newAmbient(opts, mode)
	if err != nil {
		return err
	}
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
