// Package render rasterizes scene frames and encodes them as an animated
// GIF. Curves accumulate on a persistent canvas; each GIF frame carries
// only the rectangle that changed since the previous one.
package render
