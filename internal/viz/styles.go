package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	// Subtle muted text
	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	// Metric value style
	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	// Metric label style
	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	// Key hint style
	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	// Glass panel effect with subtle border
	GlassPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(1, 2)
)

// BarSegments is the number of segments in the progress bar.
const BarSegments = 20

// FilledSegments returns how many of n segments a value out of max fills.
func FilledSegments(value, max float64, n int) int {
	if max <= 0 {
		return 0
	}
	filled := int(value / max * float64(n))
	if filled < 0 {
		return 0
	}
	if filled > n {
		return n
	}
	return filled
}

// SegmentColors returns the gradient color of every bar segment.
func SegmentColors(from, to lipgloss.Color, n int) []colorful.Color {
	a, b := Color(from), Color(to)
	out := make([]colorful.Color, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = a.BlendLab(b, t).Clamped()
	}
	return out
}

// ProgressBar renders a segmented gradient bar. value is in [0, 100].
func ProgressBar(value float64, width int, t Theme) string {
	if width < BarSegments {
		width = BarSegments
	}
	seg := width / BarSegments
	filled := FilledSegments(value, 100, BarSegments)
	colors := SegmentColors(t.BarFrom, t.BarTo, BarSegments)
	empty := lipgloss.NewStyle().Foreground(t.BarEmpty)

	var b strings.Builder
	for i := 0; i < BarSegments; i++ {
		cell := strings.Repeat("▰", seg)
		if i < filled {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(colors[i].Hex())).Render(cell))
		} else {
			b.WriteString(empty.Render(strings.Repeat("▱", seg)))
		}
	}
	return b.String()
}

// StatBar renders a labelled horizontal bar, value in [0, 100].
func StatBar(label string, value float64, width int, t Theme) string {
	filled := FilledSegments(value, 100, width)
	bar := lipgloss.NewStyle().Foreground(t.BarFrom).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(t.BarEmpty).Render(strings.Repeat("░", width-filled))
	return MetricLabel.Width(14).Align(lipgloss.Right).Render(label) + "  " + bar
}

// Separator draws a decorative separator.
func Separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return ""
	}
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}
