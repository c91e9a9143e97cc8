// Package typing holds the practice session state machine: target sentence,
// typed input, the error ceiling, progress and speed.
package typing

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/san-kum/snowtype/internal/metrics"
	"github.com/san-kum/snowtype/internal/sentence"
)

// ErrorCeiling is the mismatch count at which lengthening edits are refused.
const ErrorCeiling = 2

// SpeedInterval is how often front ends should call Tick.
const SpeedInterval = time.Second

type State int

const (
	Idle State = iota
	Active
	Complete
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case Complete:
		return "complete"
	}
	return "unknown"
}

type Mark int

const (
	Pending Mark = iota
	Correct
	Incorrect
)

// Result describes what a single HandleInput call did so the caller can
// react with bursts, sounds or a bolt.
type Result struct {
	Accepted   bool
	Grew       bool
	Reset      bool
	Mismatches int
	// Caret is the rune offset of the end of the input after the change.
	Caret int
}

// Summary records one finished sentence.
type Summary struct {
	Target   string
	Duration time.Duration
	Speed    float64
}

type Session struct {
	src   sentence.Source
	rng   *rand.Rand
	clock func() time.Time

	target    string
	input     string
	state     State
	incorrect int
	startedAt time.Time
	speed     float64
	samples   []float64
	completed []Summary

	observers []metrics.Observer
}

// NewSession picks a first target from src. A nil clock means time.Now.
func NewSession(src sentence.Source, r *rand.Rand, clock func() time.Time) (*Session, error) {
	if clock == nil {
		clock = time.Now
	}
	s := &Session{src: src, rng: r, clock: clock}
	target, err := sentence.Pick(src, r)
	if err != nil {
		return nil, fmt.Errorf("typing: new session: %w", err)
	}
	s.target = target
	return s, nil
}

func (s *Session) Target() string                 { return s.target }
func (s *Session) Input() string                  { return s.input }
func (s *Session) State() State                   { return s.state }
func (s *Session) IncorrectCount() int            { return s.incorrect }
func (s *Session) StartedAt() time.Time           { return s.startedAt }
func (s *Session) Speed() float64                 { return s.speed }
func (s *Session) Completed() []Summary           { return s.completed }
func (s *Session) Samples() []float64             { return s.samples }
func (s *Session) Locked() bool                   { return s.incorrect >= ErrorCeiling }
func (s *Session) AddObserver(o metrics.Observer) { s.observers = append(s.observers, o) }

// HandleInput applies the full new contents of the input box.
func (s *Session) HandleInput(newInput string) Result {
	prev := utf8.RuneCountInString(s.input)
	want := utf8.RuneCountInString(s.target)

	// Any other newline is ordinary input and mismatches the target.
	if strings.HasSuffix(newInput, "\n") && prev >= want {
		s.complete()
		return Result{Accepted: true, Reset: true}
	}

	next := utf8.RuneCountInString(newInput)
	if s.incorrect >= ErrorCeiling && next > prev {
		return Result{Mismatches: s.incorrect, Caret: prev}
	}

	now := s.clock()
	if s.startedAt.IsZero() {
		s.startedAt = now
		s.state = Active
	}

	mismatches := Mismatches(s.target, newInput)
	if mismatches > 0 {
		s.incorrect = min(s.incorrect+mismatches, ErrorCeiling)
	} else {
		s.incorrect = 0
	}
	s.input = newInput

	res := Result{
		Accepted:   true,
		Grew:       next > prev,
		Mismatches: mismatches,
		Caret:      next,
	}
	s.notify(metrics.Event{
		Kind:       metrics.Keystroke,
		At:         now,
		Typed:      next,
		Target:     want,
		Mismatches: mismatches,
		Grew:       res.Grew,
	})
	return res
}

func (s *Session) complete() {
	now := s.clock()
	s.state = Complete
	sum := Summary{Target: s.target}
	if !s.startedAt.IsZero() {
		sum.Duration = now.Sub(s.startedAt)
		if secs := sum.Duration.Seconds(); secs > 0 {
			sum.Speed = float64(utf8.RuneCountInString(s.input)) / secs
		}
	}
	s.completed = append(s.completed, sum)
	s.notify(metrics.Event{
		Kind:   metrics.Completion,
		At:     now,
		Typed:  utf8.RuneCountInString(s.input),
		Target: utf8.RuneCountInString(s.target),
		Speed:  sum.Speed,
	})
	log.Printf("typing: completed %q in %s (%.2f cps)", s.target, sum.Duration, sum.Speed)
	s.Reset()
}

// Reset picks a new target, clears the input and returns to Idle.
func (s *Session) Reset() {
	if target, err := sentence.Pick(s.src, s.rng); err == nil {
		s.target = target
	}
	s.input = ""
	s.incorrect = 0
	s.startedAt = time.Time{}
	s.state = Idle
}

// Tick recomputes the typing speed while a sentence is in progress and
// returns it.
func (s *Session) Tick(now time.Time) float64 {
	if s.state != Active || s.startedAt.IsZero() {
		return s.speed
	}
	secs := now.Sub(s.startedAt).Seconds()
	if secs <= 0 {
		return s.speed
	}
	s.speed = float64(utf8.RuneCountInString(s.input)) / secs
	s.samples = append(s.samples, s.speed)
	s.notify(metrics.Event{
		Kind:   metrics.Sample,
		At:     now,
		Typed:  utf8.RuneCountInString(s.input),
		Target: utf8.RuneCountInString(s.target),
		Speed:  s.speed,
	})
	return s.speed
}

// Progress is the typed share of the target as a percentage in [0, 100].
func (s *Session) Progress() int {
	want := utf8.RuneCountInString(s.target)
	if want == 0 {
		return 100
	}
	got := utf8.RuneCountInString(s.input)
	p := int(math.Ceil(float64(got) / float64(want) * 100))
	return max(0, min(p, 100))
}

// Highlight marks every target rune as pending, correct or incorrect.
func (s *Session) Highlight() []Mark {
	return Highlight(s.target, s.input)
}

func (s *Session) notify(ev metrics.Event) {
	for _, o := range s.observers {
		o.Observe(ev)
	}
}

// Mismatches counts input runes that differ from the target at the same
// position. Runes typed past the end of the target all count.
func Mismatches(target, input string) int {
	t := []rune(target)
	n := 0
	for i, r := range []rune(input) {
		if i >= len(t) || t[i] != r {
			n++
		}
	}
	return n
}

func Highlight(target, input string) []Mark {
	t, in := []rune(target), []rune(input)
	marks := make([]Mark, len(t))
	for i := range t {
		switch {
		case i >= len(in):
			marks[i] = Pending
		case t[i] == in[i]:
			marks[i] = Correct
		default:
			marks[i] = Incorrect
		}
	}
	return marks
}
