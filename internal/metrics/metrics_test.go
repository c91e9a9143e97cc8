package metrics

import (
	"math"
	"testing"
)

func keystroke(typed, mismatches int, grew bool) Event {
	return Event{Kind: Keystroke, Typed: typed, Target: 10, Mismatches: mismatches, Grew: grew}
}

func TestAccuracy(t *testing.T) {
	m := NewAccuracy()
	if m.Value() != 100 {
		t.Errorf("expected 100 with no samples, got %f", m.Value())
	}

	m.Observe(keystroke(1, 0, true))
	m.Observe(keystroke(2, 0, true))
	m.Observe(keystroke(3, 1, true))
	m.Observe(keystroke(2, 0, false))
	m.Observe(keystroke(3, 0, true))

	if math.Abs(m.Value()-75) > 1e-9 {
		t.Errorf("expected accuracy 75, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 100 {
		t.Error("expected 100 after reset")
	}
}

func TestCorrections(t *testing.T) {
	m := NewCorrections()
	m.Observe(keystroke(1, 0, true))
	m.Observe(keystroke(0, 0, false))
	m.Observe(Event{Kind: Completion})
	if m.Value() != 1 {
		t.Errorf("expected 1 correction, got %f", m.Value())
	}
}

func TestPeakKeepsSamples(t *testing.T) {
	m := NewPeak()
	for _, v := range []float64{1.5, 4, 2.5} {
		m.Observe(Event{Kind: Sample, Speed: v})
	}
	m.Observe(Event{Kind: Completion, Speed: 9})

	if m.Value() != 4 {
		t.Errorf("expected peak 4, got %f", m.Value())
	}
	if got := m.Samples(); len(got) != 3 || got[1] != 4 {
		t.Errorf("unexpected samples %v", got)
	}
}

func TestConsistency(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		events    []Event
		expected  float64
	}{
		{"empty", 0, nil, 1},
		{"all clean", 0, []Event{keystroke(1, 0, true), keystroke(2, 0, true)}, 1},
		{"half", 0, []Event{keystroke(1, 0, true), keystroke(2, 1, true)}, 0.5},
		{"within threshold", 1, []Event{keystroke(1, 1, true), keystroke(2, 2, true)}, 0.5},
		{"ignores samples", 0, []Event{keystroke(1, 1, true), {Kind: Sample}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewConsistency(tt.threshold)
			for _, ev := range tt.events {
				m.Observe(ev)
			}
			if math.Abs(m.Value()-tt.expected) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.expected, m.Value())
			}
		})
	}
}

func TestSetFansOut(t *testing.T) {
	s := Default()
	s.Observe(keystroke(1, 0, true))
	s.Observe(Event{Kind: Sample, Speed: 3})

	vals := s.Values()
	if vals["speed"] != 3 || vals["peak"] != 3 || vals["accuracy"] != 100 {
		t.Errorf("unexpected values %v", vals)
	}
	if _, ok := s.Get("corrections"); !ok {
		t.Error("expected corrections metric")
	}

	s.Reset()
	if s.Values()["speed"] != 0 {
		t.Error("expected speed reset")
	}
}
