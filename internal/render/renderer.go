package render

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/san-kum/coupledosc/internal/scene"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type Renderer struct {
	scene *scene.Scene
	quant *quantizer
	log   zerolog.Logger
}

func New(sc *scene.Scene, log zerolog.Logger) *Renderer {
	fgs := []color.RGBA{sc.Axes.Color, sc.Axes.Grid}
	for _, c := range sc.Curves {
		fgs = append(fgs, c.Color)
	}
	return &Renderer{
		scene: sc,
		quant: newQuantizer(buildPalette(sc.Background, fgs...)),
		log:   log,
	}
}

// Palette is the color table shared by every frame.
func (r *Renderer) Palette() color.Palette { return r.quant.pal }

// Animate renders every timeline frame. Frame 0 covers the whole image;
// later frames cover only what changed and are drawn over their
// predecessor. The last frame is shown for the hold duration.
func (r *Renderer) Animate(ctx context.Context) (*gif.GIF, error) {
	sc := r.scene
	bounds := image.Rect(0, 0, sc.Width, sc.Height)

	base := image.NewRGBA(bounds)
	draw.Draw(base, bounds, image.NewUniform(sc.Background), image.Point{}, draw.Src)
	r.drawLayer(base, sc.Static())
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, base, image.Point{}, draw.Src)
	work := image.NewRGBA(bounds)

	n := sc.Timeline.Frames()
	delays := Delays(sc.Timeline)
	g := &gif.GIF{
		Image:    make([]*image.Paletted, 0, n),
		Delay:    make([]int, 0, n),
		Disposal: make([]byte, 0, n),
		Config: image.Config{
			ColorModel: r.quant.pal,
			Width:      sc.Width,
			Height:     sc.Height,
		},
	}

	prevTip := -1
	var prevDots image.Rectangle
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fr := sc.Frame(i)

		dirty := prevDots.Union(r.advanceCurves(canvas, base, fr, prevTip))

		var dots image.Rectangle
		for _, d := range fr.Dots {
			dots = dots.Union(discBounds(d))
		}
		dirty = dirty.Union(dots)
		if i == 0 {
			dirty = bounds
		}
		dirty = dirty.Intersect(bounds)
		if dirty.Empty() {
			dirty = image.Rect(0, 0, 1, 1)
		}

		draw.Draw(work, dirty, canvas, dirty.Min, draw.Src)
		for _, d := range fr.Dots {
			b := newBrush()
			b.disc(d.Center, d.Radius)
			b.paint(work, d.Color)
		}

		g.Image = append(g.Image, r.quant.paletted(work, dirty))
		g.Delay = append(g.Delay, delays[i])
		g.Disposal = append(g.Disposal, gif.DisposalNone)

		prevTip, prevDots = fr.Tip, dots
		if i%100 == 0 {
			r.log.Debug().Int("frame", i).Int("of", n).Int("tip", fr.Tip).Msg("rendering")
		}
	}
	return g, nil
}

func (r *Renderer) WriteGIF(ctx context.Context, w io.Writer) error {
	g, err := r.Animate(ctx)
	if err != nil {
		return err
	}
	return gif.EncodeAll(w, g)
}

// WriteFile renders into a temporary file next to path and renames it on
// success, so a failed or cancelled render leaves nothing behind.
func (r *Renderer) WriteFile(ctx context.Context, path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".coupledosc-*.gif")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = r.WriteGIF(ctx, bw); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return err
	}

	tl := r.scene.Timeline
	r.log.Info().
		Str("path", path).
		Int("frames", tl.Frames()).
		Dur("duration", tl.Duration()).
		Int("colors", len(r.quant.pal)).
		Msg("animation written")
	return nil
}

// Delays returns per-frame GIF delays in hundredths of a second. Animated
// frames are rounded cumulatively so their sum tracks RunTime; the final
// frame lasts Hold, or one frame interval when Hold is zero.
func Delays(tl scene.Timeline) []int {
	n := tl.Frames()
	out := make([]int, n)
	cs := func(f int) int { return int(math.Round(100 * float64(f) / float64(tl.FPS))) }
	for f := 0; f < n-1; f++ {
		out[f] = max(1, cs(f+1)-cs(f))
	}
	out[n-1] = int(math.Round(100 * tl.Hold))
	if out[n-1] <= 0 {
		out[n-1] = max(1, cs(1))
	}
	return out
}

func (r *Renderer) drawLayer(dst *image.RGBA, l scene.Layer) {
	for _, ln := range l.Lines {
		b := newBrush()
		b.segment(ln.A, ln.B, ln.Width)
		b.paint(dst, ln.Color)
	}
	for _, p := range l.Paths {
		b := newBrush()
		b.stroke(p.Points, 0, p.Width)
		b.paint(dst, p.Color)
	}
	for _, d := range l.Discs {
		b := newBrush()
		b.disc(d.Center, d.Radius)
		b.paint(dst, d.Color)
	}
	for _, t := range l.Texts {
		dr := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(t.Color),
			Face: t.Face,
			Dot:  fixed.Point26_6{X: fixed.Int26_6(t.At.X * 64), Y: fixed.Int26_6(t.At.Y * 64)},
		}
		dr.DrawString(t.S)
	}
}

// advanceCurves brings canvas from the frame whose tip was prevTip to fr.
// The area around the new segments is restored from base and every
// visible curve is redrawn over it, so each pixel gets one anti-aliased
// pass per curve no matter how many frames its segments were added in.
// It returns the changed rectangle.
func (r *Renderer) advanceCurves(canvas, base *image.RGBA, fr scene.Frame, prevTip int) image.Rectangle {
	var clip image.Rectangle
	for k, c := range r.scene.Curves {
		b := newBrush()
		b.stroke(fr.Curves[k].Points, prevTip+1, c.Width)
		clip = clip.Union(b.bounds())
	}
	clip = clip.Intersect(canvas.Bounds())
	if clip.Empty() {
		return image.Rectangle{}
	}

	draw.Draw(canvas, clip, base, clip.Min, draw.Src)
	for k, c := range r.scene.Curves {
		b := newClippedBrush(clip)
		b.stroke(fr.Curves[k].Points, 0, c.Width)
		b.paintWithin(canvas, c.Color, clip)
	}
	return clip
}

func discBounds(d scene.Disc) image.Rectangle {
	return image.Rect(
		int(math.Floor(d.Center.X-d.Radius))-1, int(math.Floor(d.Center.Y-d.Radius))-1,
		int(math.Ceil(d.Center.X+d.Radius))+1, int(math.Ceil(d.Center.Y+d.Radius))+1,
	)
}
