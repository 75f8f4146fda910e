package viz

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/coupledosc/internal/config"
	"github.com/san-kum/coupledosc/internal/sim"
)

// PlotASCII renders both traces as a static line chart over the configured
// x range.
func PlotASCII(traces [2]sim.Trace, rc config.RenderConfig, width, height int) string {
	return asciigraph.PlotMany(
		[][]float64{traces[0].Y, traces[1].Y},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(rc.YRange.Min),
		asciigraph.UpperBound(rc.YRange.Max),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.DodgerBlue, asciigraph.Coral),
		asciigraph.Caption(traces[0].Name+" / "+traces[1].Name+" vs t"),
	)
}

// PlotSpectrum charts a magnitude spectrum.
func PlotSpectrum(mags []float64, width, height int, caption string) string {
	return asciigraph.Plot(mags,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
