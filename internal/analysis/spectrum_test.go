package analysis

import (
	"math"
	"testing"
	"time"
)

func TestPowerSpectrumPeriodic(t *testing.T) {
	// speed alternates on a four second cycle
	samples := make([]float64, 64)
	for i := range samples {
		samples[i] = 3 + math.Sin(2*math.Pi*float64(i)/4)
	}
	ps := PowerSpectrum(samples)
	if len(ps) != 32 {
		t.Fatalf("expected 32 bins, got %d", len(ps))
	}

	freq, period := Dominant(ps, time.Second)
	if math.Abs(freq-0.25) > 1e-9 {
		t.Errorf("expected 0.25 hz, got %f", freq)
	}
	if period != 4*time.Second {
		t.Errorf("expected 4s period, got %v", period)
	}
}

func TestPowerSpectrumPads(t *testing.T) {
	ps := PowerSpectrum([]float64{1, 2, 3, 4, 5})
	if len(ps) != 4 {
		t.Errorf("expected padding to 8 samples, got %d bins", len(ps))
	}
}

func TestPowerSpectrumFlat(t *testing.T) {
	ps := PowerSpectrum([]float64{2, 2, 2, 2})
	freq, period := Dominant(ps, time.Second)
	if freq != 0 || period != 0 {
		t.Errorf("expected no peak for a flat run, got %f %v", freq, period)
	}
}

func TestPowerSpectrumTooShort(t *testing.T) {
	if PowerSpectrum([]float64{1}) != nil {
		t.Error("expected nil for a single sample")
	}
	if f, _ := Dominant(nil, time.Second); f != 0 {
		t.Error("expected zero frequency for no spectrum")
	}
}
