package metrics

// Corrections counts accepted edits that shortened the input.
type Corrections struct {
	name  string
	count int
}

func NewCorrections() *Corrections {
	return &Corrections{name: "corrections"}
}

func (c *Corrections) Name() string { return c.name }

func (c *Corrections) Observe(ev Event) {
	if ev.Kind == Keystroke && !ev.Grew {
		c.count++
	}
}

func (c *Corrections) Value() float64 { return float64(c.count) }

func (c *Corrections) Reset() { c.count = 0 }
