package metrics

// Consistency is the fraction of keystrokes whose mismatch count stayed at
// or below a threshold.
type Consistency struct {
	name       string
	threshold  int
	violations int
	samples    int
}

func NewConsistency(threshold int) *Consistency {
	return &Consistency{
		name:      "consistency",
		threshold: threshold,
	}
}

func (c *Consistency) Name() string {
	return c.name
}

func (c *Consistency) Observe(ev Event) {
	if ev.Kind != Keystroke {
		return
	}
	c.samples++
	if ev.Mismatches > c.threshold {
		c.violations++
	}
}

func (c *Consistency) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Consistency) Reset() {
	c.violations = 0
	c.samples = 0
}
