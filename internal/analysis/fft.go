package analysis

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Spectrum returns the one-sided magnitude spectrum of evenly sampled data
// with spacing dt. The mean is removed and a Hann window applied first.
func Spectrum(data []float64, dt float64) (freqs, mags []float64) {
	n := len(data)
	if n < 2 || dt <= 0 {
		return nil, nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	x := make([]float64, n)
	for i, v := range data {
		x[i] = v - mean
	}
	window.Apply(x, window.Hann)

	coeffs := fft.FFTReal(x)
	half := n/2 + 1
	freqs = make([]float64, half)
	mags = make([]float64, half)
	for k := 0; k < half; k++ {
		freqs[k] = float64(k) / (float64(n) * dt)
		mags[k] = cmplx.Abs(coeffs[k]) * 2 / float64(n)
	}
	return freqs, mags
}

type Peak struct {
	Freq      float64
	Magnitude float64
}

// DominantFrequencies returns up to k spectral peaks, strongest first.
// Peak positions are refined by fitting a parabola through the bin and its
// neighbours.
func DominantFrequencies(data []float64, dt float64, k int) []Peak {
	freqs, mags := Spectrum(data, dt)
	if len(mags) < 3 {
		return nil
	}
	df := freqs[1] - freqs[0]

	var peaks []Peak
	for i := 1; i < len(mags)-1; i++ {
		a, b, c := mags[i-1], mags[i], mags[i+1]
		if b <= a || b < c {
			continue
		}
		shift := 0.0
		if den := a - 2*b + c; den != 0 {
			shift = 0.5 * (a - c) / den
		}
		peaks = append(peaks, Peak{
			Freq:      freqs[i] + shift*df,
			Magnitude: b - 0.25*(a-c)*shift,
		})
	}

	sort.Slice(peaks, func(i, j int) bool { return peaks[i].Magnitude > peaks[j].Magnitude })
	if len(peaks) > k {
		peaks = peaks[:k]
	}
	return peaks
}

// Envelope estimates the beat period of a signal from the spacing of its
// two strongest spectral peaks.
func Envelope(data []float64, dt float64) float64 {
	peaks := DominantFrequencies(data, dt, 2)
	if len(peaks) < 2 {
		return math.Inf(1)
	}
	d := math.Abs(peaks[0].Freq - peaks[1].Freq)
	if d == 0 {
		return math.Inf(1)
	}
	return 1 / d
}
