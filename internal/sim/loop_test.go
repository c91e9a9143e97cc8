package sim

import (
	"testing"
	"time"
)

func TestLoopAcceptCurrentRunOnly(t *testing.T) {
	l := NewLoop(30)
	if l.Interval() != time.Second/30 {
		t.Errorf("unexpected interval %v", l.Interval())
	}

	if cmd := l.Start(); cmd == nil {
		t.Fatal("expected start to schedule a frame")
	}
	now := time.Unix(10, 0)
	frame := l.Frame(now)
	if !l.Accept(frame) {
		t.Fatal("expected current frame to be accepted")
	}

	l.Stop()
	if l.Accept(frame) {
		t.Error("frame scheduled before Stop must be dropped")
	}
	if l.Next() != nil {
		t.Error("stopped loop must not schedule")
	}

	l.Start()
	if l.Accept(frame) {
		t.Error("frame from a previous run must be dropped")
	}
	if !l.Accept(l.Frame(now)) {
		t.Error("frame from the new run must be accepted")
	}
}

func TestLoopIgnoresOtherLoops(t *testing.T) {
	a, b := NewLoop(60), NewLoop(60)
	if a.ID() == b.ID() {
		t.Fatal("loops must have unique ids")
	}
	a.Start()
	b.Start()
	if a.Accept(b.Frame(time.Now())) {
		t.Error("loop accepted a frame of another loop")
	}
}

func TestNewLoopDefaultFPS(t *testing.T) {
	l := NewLoop(0)
	if l.Interval() != time.Second/DefaultFPS {
		t.Errorf("expected default interval, got %v", l.Interval())
	}
}
