package metrics

// Accuracy is the share of lengthening keystrokes that left the input
// without any mismatch, as a percentage.
type Accuracy struct {
	name    string
	clean   int
	samples int
}

func NewAccuracy() *Accuracy {
	return &Accuracy{name: "accuracy"}
}

func (a *Accuracy) Name() string { return a.name }

func (a *Accuracy) Observe(ev Event) {
	if ev.Kind != Keystroke || !ev.Grew {
		return
	}
	a.samples++
	if ev.Mismatches == 0 {
		a.clean++
	}
}

func (a *Accuracy) Value() float64 {
	if a.samples == 0 {
		return 100
	}
	return 100 * float64(a.clean) / float64(a.samples)
}

func (a *Accuracy) Reset() {
	a.clean = 0
	a.samples = 0
}
