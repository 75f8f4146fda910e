package export

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/san-kum/coupledosc/internal/scene"
)

// SceneToSVG draws the finished plot: the static layer plus the frame at
// progress 1.
func SceneToSVG(sc *scene.Scene) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, sc.Width, sc.Height, sc.Width, sc.Height, hex(sc.Background)))

	static := sc.Static()
	final := sc.Snapshot(1)

	sb.WriteString("<g stroke-linecap=\"butt\">\n")
	for _, ln := range static.Lines {
		sb.WriteString(fmt.Sprintf(`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.1f"/>
`, ln.A.X, ln.A.Y, ln.B.X, ln.B.Y, hex(ln.Color), ln.Width))
	}
	sb.WriteString("</g>\n")

	for _, p := range final.Curves {
		writePath(&sb, p)
	}
	for _, d := range static.Discs {
		writeDisc(&sb, d)
	}
	for _, d := range final.Dots {
		writeDisc(&sb, d)
	}

	sb.WriteString("<g font-family=\"Go, sans-serif\">\n")
	for _, t := range static.Texts {
		sb.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" font-size="%.1f" fill="%s">%s</text>
`, t.At.X, t.At.Y, t.Size, hex(t.Color), escape(t.S)))
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func WriteSVG(w io.Writer, sc *scene.Scene) error {
	_, err := io.WriteString(w, SceneToSVG(sc))
	return err
}

func writePath(sb *strings.Builder, p scene.Path) {
	if len(p.Points) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round" stroke-linecap="round" d="M`,
		hex(p.Color), p.Width))
	for i, pt := range p.Points {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.2f,%.2f", pt.X, pt.Y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.2f,%.2f", pt.X, pt.Y))
		}
	}
	sb.WriteString("\"/>\n")
}

func writeDisc(sb *strings.Builder, d scene.Disc) {
	sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, d.Center.X, d.Center.Y, d.Radius, hex(d.Color)))
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
