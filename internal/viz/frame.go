package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// Cell is one terminal cell of a composed Frame.
type Cell struct {
	Ch   rune
	Fg   colorful.Color
	Bold bool
	set  bool
	cont bool // right half of a wide rune
}

// Frame is a grid of cells composed bottom-up from canvases and text, then
// rendered to a styled string in one pass.
type Frame struct {
	Width, Height int
	cells         []Cell
}

func NewFrame(w, h int) *Frame {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Frame{Width: w, Height: h, cells: make([]Cell, w*h)}
}

func (f *Frame) at(x, y int) *Cell {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return nil
	}
	return &f.cells[y*f.Width+x]
}

// Get returns the cell at (x, y).
func (f *Frame) Get(x, y int) Cell {
	if c := f.at(x, y); c != nil {
		return *c
	}
	return Cell{}
}

// Blit copies every lit cell of c onto the frame with its top-left at (x, y).
func (f *Frame) Blit(c *Canvas, x, y int) {
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			r, fg, ok := c.Cell(col, row)
			if !ok {
				continue
			}
			if cell := f.at(x+col, y+row); cell != nil {
				f.unlinkWide(x+col, y+row)
				*cell = Cell{Ch: r, Fg: fg, set: true}
			}
		}
	}
}

// Put writes a single rune. Wide runes occupy two cells.
func (f *Frame) Put(x, y int, r rune, fg colorful.Color, bold bool) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return 0
	}
	cell := f.at(x, y)
	if cell == nil {
		return w
	}
	f.unlinkWide(x, y)
	*cell = Cell{Ch: r, Fg: fg, Bold: bold, set: true}
	if w == 2 {
		if next := f.at(x+1, y); next != nil {
			f.unlinkWide(x+1, y)
			*next = Cell{cont: true, set: true}
		}
	}
	return w
}

// unlinkWide breaks a wide rune that overlaps (x, y) so overwriting one of
// its halves does not shift the rest of the line.
func (f *Frame) unlinkWide(x, y int) {
	cell := f.at(x, y)
	if cell == nil || !cell.set {
		return
	}
	if cell.cont {
		if lead := f.at(x-1, y); lead != nil {
			*lead = Cell{}
		}
		return
	}
	if runewidth.RuneWidth(cell.Ch) == 2 {
		if next := f.at(x+1, y); next != nil && next.cont {
			*next = Cell{}
		}
	}
}

// PutString writes s starting at (x, y) and returns the number of cells used.
func (f *Frame) PutString(x, y int, s string, fg colorful.Color, bold bool) int {
	n := 0
	for _, r := range s {
		n += f.Put(x+n, y, r, fg, bold)
	}
	return n
}

// Fill writes r into every cell of the rectangle.
func (f *Frame) Fill(x, y, w, h int, r rune, fg colorful.Color) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			f.Put(xx, yy, r, fg, false)
		}
	}
}

// Render emits the frame as lines of lipgloss-styled runs.
func (f *Frame) Render() string {
	var b strings.Builder
	for y := 0; y < f.Height; y++ {
		var run strings.Builder
		var style lipgloss.Style
		styled := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if styled {
				b.WriteString(style.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		var curHex string
		var curBold bool
		for x := 0; x < f.Width; x++ {
			c := f.cells[y*f.Width+x]
			if c.cont {
				continue
			}
			if !c.set {
				if styled {
					flush()
					styled = false
				}
				run.WriteByte(' ')
				continue
			}
			hex := c.Fg.Hex()
			if !styled || hex != curHex || c.Bold != curBold {
				flush()
				curHex, curBold = hex, c.Bold
				style = lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(c.Bold)
				styled = true
			}
			run.WriteRune(c.Ch)
		}
		flush()
		if y < f.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Plain renders the frame without styling.
func (f *Frame) Plain() string {
	var b strings.Builder
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			c := f.cells[y*f.Width+x]
			switch {
			case c.cont:
			case !c.set:
				b.WriteByte(' ')
			default:
				b.WriteRune(c.Ch)
			}
		}
		if y < f.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
