package sim

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultFPS = 60
)

// Stepper is anything advanced once per frame. Step returns false once the
// stepper has finished and no longer needs frames.
type Stepper interface {
	Step(now time.Time) bool
}

// Observer is notified after every headless frame.
type Observer interface {
	OnFrame(frame int, now time.Time)
}

type Config struct {
	FPS    int
	Frames int
	Start  time.Time
}

type Result struct {
	Frames   int
	Finished []bool
	Elapsed  time.Duration
}

// Runner steps a set of fields on a simulated clock, without a terminal.
type Runner struct {
	steppers  []Stepper
	observers []Observer
}

func NewRunner(steppers ...Stepper) *Runner {
	return &Runner{steppers: steppers}
}

func (r *Runner) Add(s Stepper)          { r.steppers = append(r.steppers, s) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	step := time.Second / time.Duration(cfg.FPS)
	now := cfg.Start
	if now.IsZero() {
		now = time.Unix(0, 0)
	}
	result := &Result{Finished: make([]bool, len(r.steppers))}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		now = now.Add(step)
		for j, s := range r.steppers {
			if result.Finished[j] {
				continue
			}
			if !s.Step(now) {
				result.Finished[j] = true
			}
		}
		for _, o := range r.observers {
			o.OnFrame(i, now)
		}
		result.Frames++
		result.Elapsed += step
	}
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	if cfg.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", cfg.Frames)
	}
	return nil
}
