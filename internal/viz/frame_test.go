package viz

import (
	"strings"
	"testing"
)

func TestFramePutStringWide(t *testing.T) {
	f := NewFrame(10, 1)
	n := f.PutString(0, 0, "가a", white, false)
	if n != 3 {
		t.Errorf("expected 3 cells used, got %d", n)
	}
	if got := f.Plain(); got != "가a       " {
		t.Errorf("unexpected plain render %q", got)
	}
}

func TestFrameOverwriteWideHalf(t *testing.T) {
	f := NewFrame(4, 1)
	f.PutString(0, 0, "가", white, false)
	f.Put(1, 0, 'x', white, false)
	if got := f.Plain(); got != " x  " {
		t.Errorf("unexpected plain render %q", got)
	}
}

func TestFrameBlitSkipsUnlit(t *testing.T) {
	c := NewCanvas(3, 1, 1)
	c.FillRect(2, 0, 1, 1, white, 1)

	f := NewFrame(3, 1)
	f.PutString(0, 0, "abc", white, false)
	f.Blit(c, 0, 0)

	got := []rune(f.Plain())
	if got[0] != 'a' || got[2] != 'c' {
		t.Errorf("unlit cells should keep text, got %q", string(got))
	}
	if got[1] == 'b' {
		t.Error("lit cell should be replaced by braille")
	}
}

func TestFrameRenderLineCount(t *testing.T) {
	f := NewFrame(5, 3)
	f.PutString(1, 1, "hi", white, true)
	out := f.Render()
	if strings.Count(out, "\n") != 2 {
		t.Errorf("expected 3 lines, got %q", out)
	}
	if !strings.Contains(out, "hi") {
		t.Error("expected text in render")
	}
}

func TestFilledSegments(t *testing.T) {
	tests := []struct {
		value float64
		want  int
	}{
		{0, 0},
		{4, 0},
		{5, 1},
		{50, 10},
		{100, 20},
		{150, 20},
		{-3, 0},
	}
	for _, tt := range tests {
		if got := FilledSegments(tt.value, 100, BarSegments); got != tt.want {
			t.Errorf("FilledSegments(%v): expected %d, got %d", tt.value, tt.want, got)
		}
	}
}

func TestGetThemeFallback(t *testing.T) {
	if GetTheme("nope").Name != "winter" {
		t.Error("expected winter fallback")
	}
	if !HasTheme("ocean") || HasTheme("nope") {
		t.Error("HasTheme mismatch")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("ThemeNames length mismatch")
	}
}
