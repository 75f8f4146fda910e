// Package viz draws the oscillator in a terminal.
//
// [Preview] is a Bubble Tea program that replays the render timeline on a
// braille [Canvas], with curves and tip dots colored like the animation
// and a legend beside the plot. [PlotASCII] prints a static chart.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart from t=0
//	Q     - Quit
package viz
