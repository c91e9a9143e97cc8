package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/snowtype/internal/analysis"
	"github.com/san-kum/snowtype/internal/typing"
	"github.com/san-kum/snowtype/internal/viz"
)

// Reference points that map a metric onto a full stat bar.
const (
	fullSpeed       = 10.0 // chars/sec
	fullCorrections = 20.0
)

func (m model) viewResults() string {
	t := m.opts.Theme
	title := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	vals := m.stats.Values()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + title.Render("snowtype") + viz.Subtle.Render("  results") + "\n")
	b.WriteString("  " + viz.Separator(max(min(m.width-4, 64), 10)) + "\n\n")

	samples := m.peak.Samples()
	if len(samples) >= 2 {
		graph := asciigraph.Plot(samples,
			asciigraph.Height(8),
			asciigraph.Width(max(min(m.width-16, 60), 10)),
			asciigraph.Caption("chars/sec"),
		)
		b.WriteString(indent(graph, "  ") + "\n\n")
	} else {
		b.WriteString(viz.Subtle.Render("  keep typing to build a speed chart") + "\n\n")
	}

	barW := max(min(m.width-24, 40), 10)
	b.WriteString(viz.StatBar("speed", clampPct(vals["speed"]/fullSpeed*100), barW, t) +
		viz.MetricValue.Render(fmt.Sprintf(" %.2f", vals["speed"])) + "\n")
	b.WriteString(viz.StatBar("top speed", clampPct(vals["peak"]/fullSpeed*100), barW, t) +
		viz.MetricValue.Render(fmt.Sprintf(" %.2f", vals["peak"])) + "\n")
	b.WriteString(viz.StatBar("accuracy", clampPct(vals["accuracy"]), barW, t) +
		viz.MetricValue.Render(fmt.Sprintf(" %.0f%%", vals["accuracy"])) + "\n")
	b.WriteString(viz.StatBar("consistency", clampPct(vals["consistency"]*100), barW, t) +
		viz.MetricValue.Render(fmt.Sprintf(" %.0f%%", vals["consistency"]*100)) + "\n")
	b.WriteString(viz.StatBar("corrections", clampPct(vals["corrections"]/fullCorrections*100), barW, t) +
		viz.MetricValue.Render(fmt.Sprintf(" %.0f", vals["corrections"])) + "\n\n")

	done := m.session.Completed()
	b.WriteString("  " + viz.MetricLabel.Render("sentences ") + viz.MetricValue.Render(fmt.Sprintf("%d", len(done))) + "\n")
	if n := len(done); n > 0 {
		last := done[n-1]
		b.WriteString("  " + viz.MetricLabel.Render("last      ") +
			viz.Subtle.Render(fmt.Sprintf("%.2f cps in %.1fs", last.Speed, last.Duration.Seconds())) + "\n")
	}
	if freq, period := analysis.Dominant(analysis.PowerSpectrum(samples), typing.SpeedInterval); freq > 0 {
		b.WriteString("  " + viz.MetricLabel.Render("rhythm    ") +
			viz.Subtle.Render(fmt.Sprintf("bursts every %.1fs", period.Seconds())) + "\n")
	}

	b.WriteString("\n" + viz.KeyHint.Render("  enter back · r reset stats · q quit") + "\n")
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func clampPct(v float64) float64 {
	return max(0, min(v, 100))
}
