package scene

import (
	"image/color"

	"golang.org/x/image/font"
)

// Point is a position in pixels, y growing downwards.
type Point struct {
	X, Y float64
}

type Line struct {
	A, B  Point
	Width float64
	Color color.RGBA
}

// Path is an open polyline stroked with round joins and caps.
type Path struct {
	Points []Point
	Width  float64
	Color  color.RGBA
}

type Disc struct {
	Center Point
	Radius float64
	Color  color.RGBA
}

// Text is anchored at the left end of its baseline.
type Text struct {
	At    Point
	S     string
	Size  float64
	Face  font.Face
	Color color.RGBA
}

// Layer is a flat list of primitives drawn in field order.
type Layer struct {
	Lines []Line
	Paths []Path
	Discs []Disc
	Texts []Text
}

func (l *Layer) append(other Layer) {
	l.Lines = append(l.Lines, other.Lines...)
	l.Paths = append(l.Paths, other.Paths...)
	l.Discs = append(l.Discs, other.Discs...)
	l.Texts = append(l.Texts, other.Texts...)
}
