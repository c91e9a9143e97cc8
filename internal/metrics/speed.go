package metrics

// Speed tracks the most recent chars/sec reading.
type Speed struct {
	name    string
	current float64
}

func NewSpeed() *Speed {
	return &Speed{name: "speed"}
}

func (s *Speed) Name() string { return s.name }

func (s *Speed) Observe(ev Event) {
	if ev.Kind == Sample || ev.Kind == Completion {
		s.current = ev.Speed
	}
}

func (s *Speed) Value() float64 { return s.current }

func (s *Speed) Reset() { s.current = 0 }

// Peak keeps the best chars/sec reading and the full sample history for
// the results chart.
type Peak struct {
	name    string
	peak    float64
	samples []float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(ev Event) {
	if ev.Kind != Sample {
		return
	}
	p.samples = append(p.samples, ev.Speed)
	p.peak = max(p.peak, ev.Speed)
}

func (p *Peak) Value() float64 { return p.peak }

func (p *Peak) Samples() []float64 {
	out := make([]float64, len(p.samples))
	copy(out, p.samples)
	return out
}

func (p *Peak) Reset() {
	p.peak = 0
	p.samples = nil
}
