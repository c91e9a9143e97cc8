// Package analysis looks for rhythm in a run's typing speed.
//
// Speed is sampled once a second. A steady typist gives a
// flat spectrum; bursts of fast typing separated by pauses show up as a peak:
//
//	ps := analysis.PowerSpectrum(samples)
//	freq, period := analysis.Dominant(ps, typing.SpeedInterval)
package analysis
