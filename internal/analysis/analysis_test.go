package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/coupledosc/internal/dynamo"
	"github.com/san-kum/coupledosc/internal/physics"
	"github.com/san-kum/coupledosc/internal/sim"
)

func TestNormalModes(t *testing.T) {
	m := NormalModes(physics.NewCoupledOscillator(1, 10, 8))

	if math.Abs(m.OmegaIn-math.Sqrt(10)) > 1e-12 || math.Abs(m.OmegaAnti-math.Sqrt(26)) > 1e-12 {
		t.Errorf("omegas = %v, %v", m.OmegaIn, m.OmegaAnti)
	}
	want := 2 * math.Pi / (math.Sqrt(26) - math.Sqrt(10))
	if math.Abs(m.BeatPeriod-want) > 1e-12 {
		t.Errorf("beat period = %v, want %v", m.BeatPeriod, want)
	}

	if !math.IsInf(NormalModes(physics.NewCoupledOscillator(1, 10, 0)).BeatPeriod, 1) {
		t.Error("uncoupled masses should never beat")
	}
}

func TestModeAmplitudes(t *testing.T) {
	in, anti := ModeAmplitudes(1.75, 0)
	if in != 0.875 || anti != 0.875 {
		t.Errorf("amplitudes = %v, %v", in, anti)
	}
	in, anti = ModeAmplitudes(1, 1)
	if in != 1 || anti != 0 {
		t.Errorf("in-phase start gave %v, %v", in, anti)
	}
}

func exactColumn(osc *physics.CoupledOscillator, grid []float64, j int) []float64 {
	x0 := dynamo.State{1.75, 0, 0, 0}
	out := make([]float64, len(grid))
	for i, t := range grid {
		out[i] = osc.Exact(x0, t)[j]
	}
	return out
}

func TestDominantFrequencies(t *testing.T) {
	osc := physics.NewCoupledOscillator(1, 10, 8)
	grid := sim.Linspace(0, 60, 1000)
	dt := grid[1] - grid[0]
	modes := NormalModes(osc)

	peaks := DominantFrequencies(exactColumn(osc, grid, 0), dt, 2)
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %v", peaks)
	}
	lo, hi := math.Min(peaks[0].Freq, peaks[1].Freq), math.Max(peaks[0].Freq, peaks[1].Freq)
	if math.Abs(lo-modes.FreqIn) > 0.02 || math.Abs(hi-modes.FreqAnti) > 0.02 {
		t.Errorf("peaks at %v and %v, want %v and %v", lo, hi, modes.FreqIn, modes.FreqAnti)
	}

	beat := Envelope(exactColumn(osc, grid, 2), dt)
	if math.Abs(beat-modes.BeatPeriod)/modes.BeatPeriod > 0.1 {
		t.Errorf("envelope period = %v, want about %v", beat, modes.BeatPeriod)
	}
}

func TestSpectrumSineAmplitude(t *testing.T) {
	n, dt := 1024, 0.01
	data := make([]float64, n)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*12.5*float64(i)*dt)
	}

	freqs, mags := Spectrum(data, dt)
	if len(freqs) != n/2+1 {
		t.Fatalf("got %d bins", len(freqs))
	}
	best := 0
	for i := range mags {
		if mags[i] > mags[best] {
			best = i
		}
	}
	if math.Abs(freqs[best]-12.5) > 0.1 {
		t.Errorf("strongest bin at %v Hz", freqs[best])
	}
	if mags[0] > 0.01*mags[best] {
		t.Errorf("mean not removed: dc = %v", mags[0])
	}
}

func TestSpectrumDegenerate(t *testing.T) {
	if f, m := Spectrum([]float64{1}, 0.1); f != nil || m != nil {
		t.Error("single sample should have no spectrum")
	}
	if p := DominantFrequencies([]float64{1, 2}, 0.1, 3); p != nil {
		t.Errorf("expected no peaks, got %v", p)
	}
	if !math.IsInf(Envelope(make([]float64, 64), 0.1), 1) {
		t.Error("flat signal has no beat")
	}
}
