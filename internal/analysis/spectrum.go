package analysis

import (
	"math/cmplx"
	"time"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// samples, zero padded to a power of two. The mean is removed first so the
// constant term does not swamp the rest.
func PowerSpectrum(samples []float64) []float64 {
	if len(samples) < 2 {
		return nil
	}
	n := 1
	for n < len(samples) {
		n *= 2
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))

	padded := make([]float64, n)
	for i, v := range samples {
		padded[i] = v - mean
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// Dominant returns the strongest non-constant frequency in ps, in hertz, and
// its period. Both are zero when there is no peak.
func Dominant(ps []float64, interval time.Duration) (freq float64, period time.Duration) {
	if len(ps) < 2 || interval <= 0 {
		return 0, 0
	}
	maxPower, maxIdx := 0.0, 0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0, 0
	}
	n := float64(len(ps) * 2)
	freq = float64(maxIdx) / (n * interval.Seconds())
	return freq, time.Duration(float64(time.Second) / freq)
}
