// Package scene lays out the oscillator plot in pixel space: axes with
// ticks and labels, one curve and one tip dot per mass, and a legend.
// Snapshot maps a single progress value to the visible curve prefixes and
// dot positions, so every animated element of a frame advances together.
// Rasterization lives in package render.
package scene
