package typing

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/san-kum/snowtype/internal/metrics"
	"github.com/san-kum/snowtype/internal/sentence"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newSession(t *testing.T, targets ...string) (*Session, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s, err := NewSession(sentence.List(targets), rand.New(rand.NewSource(1)), clock.Now)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s, clock
}

type recorder struct{ events []metrics.Event }

func (r *recorder) Observe(ev metrics.Event) { r.events = append(r.events, ev) }

func TestNewSessionEmptySource(t *testing.T) {
	_, err := NewSession(sentence.List{}, rand.New(rand.NewSource(1)), nil)
	if !errors.Is(err, sentence.ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestCatExample(t *testing.T) {
	s, _ := newSession(t, "cat")
	for _, in := range []string{"c", "ca", "cax"} {
		if res := s.HandleInput(in); !res.Accepted {
			t.Fatalf("input %q rejected", in)
		}
	}
	if got := Mismatches(s.Target(), s.Input()); got != 1 {
		t.Errorf("expected 1 mismatch, got %d", got)
	}
	if s.IncorrectCount() != 1 {
		t.Errorf("expected incorrectCount 1, got %d", s.IncorrectCount())
	}
	want := []Mark{Correct, Correct, Incorrect}
	got := s.Highlight()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mark %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestHighlightPendingPastInput(t *testing.T) {
	marks := Highlight("hello", "hx")
	want := []Mark{Correct, Incorrect, Pending, Pending, Pending}
	for i := range want {
		if marks[i] != want[i] {
			t.Errorf("mark %d: expected %v, got %v", i, want[i], marks[i])
		}
	}
}

func TestErrorCeilingRejectsGrowth(t *testing.T) {
	s, _ := newSession(t, "hello")
	s.HandleInput("x")
	s.HandleInput("xy")
	if s.IncorrectCount() != ErrorCeiling {
		t.Fatalf("expected ceiling reached, got %d", s.IncorrectCount())
	}

	res := s.HandleInput("xyz")
	if res.Accepted || s.Input() != "xy" {
		t.Errorf("expected rejection, input %q accepted=%v", s.Input(), res.Accepted)
	}
	res = s.HandleInput("xyz")
	if res.Accepted || s.Input() != "xy" {
		t.Error("rejection must be idempotent")
	}

	// Deleting is always allowed and clears the count once clean.
	s.HandleInput("x")
	if s.IncorrectCount() != ErrorCeiling {
		t.Errorf("count saturates while mismatches remain, got %d", s.IncorrectCount())
	}
	s.HandleInput("")
	if s.IncorrectCount() != 0 {
		t.Errorf("expected reset count, got %d", s.IncorrectCount())
	}
	if res := s.HandleInput("h"); !res.Accepted || !res.Grew {
		t.Error("expected growth after correction")
	}
}

func TestNewlineCompletesSentence(t *testing.T) {
	s, _ := newSession(t, "abcde")
	s.HandleInput("abcde")
	res := s.HandleInput("abcde\n")
	if !res.Reset {
		t.Fatal("expected reset")
	}
	if s.Input() != "" || s.State() != Idle || !s.StartedAt().IsZero() {
		t.Errorf("expected cleared idle session, got input=%q state=%v", s.Input(), s.State())
	}
	if s.Target() != "abcde" {
		t.Errorf("single-sentence source must repick the same target, got %q", s.Target())
	}
	if len(s.Completed()) != 1 {
		t.Errorf("expected one completed summary, got %d", len(s.Completed()))
	}
}

func TestNewlineBeforeEndIsInput(t *testing.T) {
	cases := []struct {
		name  string
		prev  string
		input string
	}{
		{"trailing", "ca", "ca\n"},
		{"embedded", "c", "c\nt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newSession(t, "cat")
			s.HandleInput(tc.prev)
			res := s.HandleInput(tc.input)
			if !res.Accepted || res.Reset {
				t.Errorf("expected an accepted keystroke, got %+v", res)
			}
			if res.Mismatches != 1 || s.IncorrectCount() != 1 {
				t.Errorf("expected one mismatch, got %d (count %d)", res.Mismatches, s.IncorrectCount())
			}
			if s.Input() != tc.input {
				t.Errorf("expected input %q, got %q", tc.input, s.Input())
			}
			if len(s.Completed()) != 0 {
				t.Error("newline before the end must not complete")
			}
		})
	}
}

func TestStateTransitions(t *testing.T) {
	s, clock := newSession(t, "ab")
	if s.State() != Idle {
		t.Fatalf("expected idle, got %v", s.State())
	}
	s.HandleInput("a")
	if s.State() != Active || !s.StartedAt().Equal(clock.Now()) {
		t.Fatalf("expected active with start time, got %v", s.State())
	}
	start := s.StartedAt()
	clock.Advance(time.Second)
	s.HandleInput("ab")
	if !s.StartedAt().Equal(start) {
		t.Error("start time must only be set on the first keystroke")
	}
}

func TestProgress(t *testing.T) {
	s, _ := newSession(t, "abc")
	prev := s.Progress()
	if prev != 0 {
		t.Fatalf("expected 0, got %d", prev)
	}
	for _, in := range []string{"a", "ab", "abc"} {
		s.HandleInput(in)
		p := s.Progress()
		if p < prev || p < 0 || p > 100 {
			t.Fatalf("progress %d not monotonic within [0,100]", p)
		}
		prev = p
	}
	if prev != 100 {
		t.Errorf("expected 100, got %d", prev)
	}

	s, _ = newSession(t, "abc")
	s.HandleInput("a")
	if s.Progress() != 34 {
		t.Errorf("expected ceil(33.3)=34, got %d", s.Progress())
	}
}

func TestRuneLengths(t *testing.T) {
	s, _ := newSession(t, "첫눈")
	s.HandleInput("첫")
	if s.Progress() != 50 {
		t.Errorf("expected 50, got %d", s.Progress())
	}
	if res := s.HandleInput("첫눈"); res.Caret != 2 || res.Mismatches != 0 {
		t.Errorf("unexpected result %+v", res)
	}
	if !s.HandleInput("첫눈\n").Reset {
		t.Error("expected completion on rune length")
	}
}

func TestTickSpeed(t *testing.T) {
	s, clock := newSession(t, "hello world")
	if got := s.Tick(clock.Now()); got != 0 {
		t.Errorf("idle session must not compute speed, got %f", got)
	}
	s.HandleInput("h")
	s.HandleInput("he")
	s.HandleInput("hel")
	s.HandleInput("hell")
	clock.Advance(2 * time.Second)
	if got := s.Tick(clock.Now()); math.Abs(got-2) > 1e-9 {
		t.Errorf("expected 2 cps, got %f", got)
	}
	if len(s.Samples()) != 1 {
		t.Errorf("expected one sample, got %d", len(s.Samples()))
	}
}

func TestObserversSeeEvents(t *testing.T) {
	s, clock := newSession(t, "ab")
	rec := &recorder{}
	s.AddObserver(rec)

	s.HandleInput("a")
	s.HandleInput("")
	s.HandleInput("a")
	s.HandleInput("ab")
	clock.Advance(time.Second)
	s.Tick(clock.Now())
	s.HandleInput("ab\n")

	kinds := []metrics.Kind{
		metrics.Keystroke, metrics.Keystroke, metrics.Keystroke, metrics.Keystroke,
		metrics.Sample, metrics.Completion,
	}
	if len(rec.events) != len(kinds) {
		t.Fatalf("expected %d events, got %d", len(kinds), len(rec.events))
	}
	for i, k := range kinds {
		if rec.events[i].Kind != k {
			t.Errorf("event %d: expected %v, got %v", i, k, rec.events[i].Kind)
		}
	}
	if rec.events[1].Grew {
		t.Error("deletion must not be reported as growth")
	}
	if math.Abs(rec.events[5].Speed-2) > 1e-9 {
		t.Errorf("expected completion speed 2, got %f", rec.events[5].Speed)
	}
}
