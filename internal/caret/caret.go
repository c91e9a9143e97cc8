// Package caret locates a cursor offset on screen for text laid out in a
// fixed-width box, the terminal equivalent of measuring a mirrored element.
package caret

import "github.com/mattn/go-runewidth"

// Probe lays text out Width cells wide. A Width of zero disables wrapping.
type Probe struct {
	Width int
}

// Pos is a cell position inside the box.
type Pos struct {
	Col, Row int
}

// Positions returns the cell at which every rune of text is drawn. A wide
// rune that would straddle the right edge moves to the next row whole.
func (p Probe) Positions(text string) []Pos {
	out := make([]Pos, 0, len(text))
	col, row := 0, 0
	for _, r := range text {
		if r == '\n' {
			out = append(out, Pos{col, row})
			col, row = 0, row+1
			continue
		}
		w := runewidth.RuneWidth(r)
		if p.Width > 0 && col+w > p.Width {
			col, row = 0, row+1
		}
		out = append(out, Pos{col, row})
		col += w
	}
	return out
}

// Locate returns the cell where a caret at the given rune offset sits: on
// the rune it precedes, or just past the end of the text. Offsets past the
// end locate the end.
func (p Probe) Locate(text string, offset int) (col, row int) {
	pos := p.Positions(text)
	if offset < 0 {
		offset = 0
	}
	if offset < len(pos) {
		return pos[offset].Col, pos[offset].Row
	}
	for _, r := range text {
		if r == '\n' {
			col, row = 0, row+1
			continue
		}
		w := runewidth.RuneWidth(r)
		if p.Width > 0 && col+w > p.Width {
			col, row = 0, row+1
		}
		col += w
	}
	if p.Width > 0 && col >= p.Width {
		col, row = 0, row+1
	}
	return col, row
}

// Lines splits text into the rows Positions would produce.
func (p Probe) Lines(text string) []string {
	var (
		lines []string
		cur   []rune
		col   int
	)
	for _, r := range text {
		if r == '\n' {
			lines = append(lines, string(cur))
			cur, col = cur[:0], 0
			continue
		}
		w := runewidth.RuneWidth(r)
		if p.Width > 0 && col+w > p.Width {
			lines = append(lines, string(cur))
			cur, col = cur[:0], 0
		}
		cur = append(cur, r)
		col += w
	}
	return append(lines, string(cur))
}
