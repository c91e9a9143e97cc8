// Package audio synthesizes keystroke feedback: a soft click per accepted
// key, a low buzz on a mismatch, and a rising chime on completion. Voices
// are mixed in the portaudio callback.
package audio

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 512

	// MaxVoices bounds how many sounds ring at once; the oldest is dropped.
	MaxVoices = 16
)

type Sound int

const (
	Click Sound = iota
	Buzz
	Chime
)

func (s Sound) String() string {
	switch s {
	case Click:
		return "click"
	case Buzz:
		return "buzz"
	case Chime:
		return "chime"
	}
	return "unknown"
}

// Player is anything that can play a feedback sound.
type Player interface {
	Play(s Sound)
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) Play(Sound) {}

type note struct {
	freq  float64
	delay float64 // seconds before the note starts
}

type voice struct {
	notes []note
	decay float64 // seconds to fall to ~1/e
	dur   float64
	gain  float64
	t     float64
}

var voices = map[Sound]voice{
	Click: {notes: []note{{freq: 1760}}, decay: 0.012, dur: 0.06, gain: 0.5},
	Buzz:  {notes: []note{{freq: 110}, {freq: 116.54}}, decay: 0.08, dur: 0.18, gain: 0.6},
	Chime: {
		notes: []note{{freq: 523.25}, {freq: 659.25, delay: 0.08}, {freq: 783.99, delay: 0.16}, {freq: 1046.5, delay: 0.24}},
		decay: 0.25,
		dur:   1.2,
		gain:  0.35,
	},
}

type Processor struct {
	Stream *portaudio.Stream

	Volume float64

	mu     sync.Mutex
	active []voice

	// Stereo LPF state and a short slap delay.
	FilterState [2]float64
	DelayLine   [2][]float64
	DelayHead   int

	Active bool
}

func NewProcessor(volume float64) *Processor {
	delayLen := int(float64(SampleRate) * 0.09)
	return &Processor{
		Volume:    math.Max(0, math.Min(1, volume)),
		DelayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: initialize: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}
	log.Printf("audio: started %d Hz stereo output", SampleRate)

	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if !a.Active {
		return
	}
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
		a.Stream = nil
	}
	portaudio.Terminate()
	a.Active = false
}

// Play queues a sound. It is safe to call from any goroutine.
func (a *Processor) Play(s Sound) {
	v, ok := voices[s]
	if !ok {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.active) >= MaxVoices {
		a.active = a.active[1:]
	}
	a.active = append(a.active, v)
}

// Voices returns the number of sounds still ringing.
func (a *Processor) Voices() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.active)
}

// Triangle Wave: Smooth, flute-like, no harsh buzz
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// Low Pass Filter (One Pole)
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (v *voice) sample() float64 {
	s := 0.0
	for _, n := range v.notes {
		t := v.t - n.delay
		if t < 0 {
			continue
		}
		s += triangle(t*n.freq) * math.Exp(-t/v.decay)
	}
	return s * v.gain / float64(len(v.notes))
}

// ProcessAudio is the stream callback; out is one buffer per channel.
func (a *Processor) ProcessAudio(out [][]float32) {
	const dt = 1.0 / float64(SampleRate)
	const cutoff = 4000.0

	a.mu.Lock()
	defer a.mu.Unlock()

	for i := 0; i < len(out[0]); i++ {
		mono := 0.0
		for j := range a.active {
			mono += a.active[j].sample()
			a.active[j].t += dt
		}

		var outL, outR float64
		outL, a.FilterState[0] = lpf(mono, cutoff, dt, a.FilterState[0])
		outR, a.FilterState[1] = lpf(mono, cutoff*0.9, dt, a.FilterState[1])

		delayL := a.DelayLine[0][a.DelayHead]
		delayR := a.DelayLine[1][a.DelayHead]
		mixL := outL + delayR*0.25
		mixR := outR + delayL*0.25
		a.DelayLine[0][a.DelayHead] = mixL * 0.4
		a.DelayLine[1][a.DelayHead] = mixR * 0.4
		a.DelayHead = (a.DelayHead + 1) % len(a.DelayLine[0])

		out[0][i] = float32(clamp(mixL * a.Volume))
		if len(out) > 1 {
			out[1][i] = float32(clamp(mixR * a.Volume))
		}
	}

	live := a.active[:0]
	for _, v := range a.active {
		if v.t < v.dur {
			live = append(live, v)
		}
	}
	a.active = live
}

func clamp(x float64) float64 {
	return math.Max(-1, math.Min(1, x))
}
