package caret

import "testing"

func TestLocate(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		text     string
		offset   int
		col, row int
	}{
		{"start", 10, "hello", 0, 0, 0},
		{"middle", 10, "hello", 3, 3, 0},
		{"end", 10, "hello", 5, 5, 0},
		{"past end", 10, "hello", 50, 5, 0},
		{"wraps", 4, "abcdef", 5, 1, 1},
		{"full row moves caret down", 4, "abcd", 4, 0, 1},
		{"newline", 10, "ab\ncd", 4, 1, 1},
		{"wide runes", 10, "첫눈이", 2, 4, 0},
		{"wide rune wraps early", 5, "첫눈이", 3, 2, 1},
		{"no wrap", 0, "abcdefghijkl", 12, 12, 0},
		{"before wrapped wide rune", 5, "첫눈이", 2, 0, 1},
		{"negative offset", 10, "hello", -1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Probe{Width: tt.width}
			col, row := p.Locate(tt.text, tt.offset)
			if col != tt.col || row != tt.row {
				t.Errorf("expected (%d,%d), got (%d,%d)", tt.col, tt.row, col, row)
			}
		})
	}
}

func TestLines(t *testing.T) {
	p := Probe{Width: 4}
	got := p.Lines("abcdef\ngh")
	want := []string{"abcd", "ef", "gh"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestPositions(t *testing.T) {
	p := Probe{Width: 5}
	got := p.Positions("ab첫눈")
	want := []Pos{{0, 0}, {1, 0}, {2, 0}, {0, 1}}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rune %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}
