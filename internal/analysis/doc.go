// Package analysis characterises a simulated run: normal-mode frequencies
// and beat period from the parameters, and the dominant frequencies found
// in a sampled trace.
//
// For the default parameters both masses carry the in-phase and
// anti-phase modes with equal weight, so the spectrum of either position
// shows two peaks whose spacing is the beat frequency:
//
//	peaks := analysis.DominantFrequencies(series.Column(0), dt, 2)
package analysis
