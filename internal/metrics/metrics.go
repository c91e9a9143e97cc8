package metrics

import "time"

type Kind int

const (
	// Keystroke is an accepted input change.
	Keystroke Kind = iota
	// Completion is a finished sentence, reported before the reset.
	Completion
	// Sample is a periodic speed recompute.
	Sample
)

func (k Kind) String() string {
	switch k {
	case Keystroke:
		return "keystroke"
	case Completion:
		return "completion"
	case Sample:
		return "sample"
	}
	return "unknown"
}

type Event struct {
	Kind       Kind
	At         time.Time
	Typed      int // runes in the input after the change
	Target     int // runes in the target sentence
	Mismatches int
	Grew       bool
	Speed      float64 // chars/sec, set on Sample and Completion
}

type Observer interface {
	Observe(ev Event)
}

type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

// Set fans events out to a fixed list of metrics.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

// Default returns the metrics shown on the results screen.
func Default() *Set {
	return NewSet(NewSpeed(), NewPeak(), NewAccuracy(), NewCorrections(), NewConsistency(0))
}

func (s *Set) Observe(ev Event) {
	for _, m := range s.metrics {
		m.Observe(ev)
	}
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

func (s *Set) Metrics() []Metric { return s.metrics }

// Get looks a metric up by name.
func (s *Set) Get(name string) (Metric, bool) {
	for _, m := range s.metrics {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// Values returns every metric value keyed by name.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
