package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/coupledosc/internal/config"
	"github.com/san-kum/coupledosc/internal/sim"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetLayer(3, 5, 2)
	if c.Grid[1][1] != 0x2800|0x10 {
		t.Errorf("cell = %U", c.Grid[1][1])
	}
	if c.Owner[1][1] != 2 {
		t.Errorf("owner = %d", c.Owner[1][1])
	}

	c.Unset(3, 5)
	if c.Grid[1][1] != blank || c.Owner[1][1] != -1 {
		t.Error("unset did not clear cell")
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	if strings.Count(c.String(), "\n") != 2 {
		t.Error("out of range writes changed the grid shape")
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(5, 1)
	c.DrawLine(0, 0, 9, 0, 1)
	for col := 0; col < 5; col++ {
		if c.Grid[0][col] != 0x2800|0x1|0x8 {
			t.Errorf("col %d = %U", col, c.Grid[0][col])
		}
	}
}

func TestCanvasRender(t *testing.T) {
	c := NewCanvas(3, 1)
	c.SetLayer(0, 0, 0)
	c.SetLayer(4, 0, 1)
	plain := []lipgloss.Style{lipgloss.NewStyle(), lipgloss.NewStyle()}
	if got, want := c.Render(plain), c.String(); got != want {
		t.Errorf("render with empty styles = %q, want %q", got, want)
	}
}

func testTraces(n int) [2]sim.Trace {
	ts := sim.Linspace(0, 60, n)
	a := make([]float64, n)
	b := make([]float64, n)
	for i, t := range ts {
		a[i] = 1.75 * math.Cos(t)
		b[i] = 1.75 * math.Sin(t) / 2
	}
	return [2]sim.Trace{{Name: "Mass 1", T: ts, Y: a}, {Name: "Mass 2", T: ts, Y: b}}
}

func TestPlotDrawFrame(t *testing.T) {
	rc := config.DefaultConfig().Render
	tr := testTraces(100)
	p := NewPlot(40, 10, rc.XRange, rc.YRange)

	if tip := p.DrawFrame(tr[:], 0); tip != 0 {
		t.Errorf("tip at p=0 is %d", tip)
	}
	empty := countLayer(p.Canvas, 1)

	if tip := p.DrawFrame(tr[:], 1); tip != 99 {
		t.Errorf("tip at p=1 is %d", tip)
	}
	full := countLayer(p.Canvas, 1)
	if full <= empty {
		t.Errorf("curve did not grow: %d -> %d cells", empty, full)
	}
	if countLayer(p.Canvas, 0) == 0 {
		t.Error("axes missing")
	}
}

func countLayer(c *Canvas, layer int) int {
	n := 0
	for _, row := range c.Owner {
		for _, o := range row {
			if o == layer {
				n++
			}
		}
	}
	return n
}

func newTestPreview() Preview {
	rc := config.DefaultConfig().Render
	rc.FPS, rc.RunTime, rc.Hold = 10, 1, 0.5
	return NewPreview(testTraces(50), rc, GetTheme("dark"), 30, 8)
}

func TestPreviewTimeline(t *testing.T) {
	m := newTestPreview()

	var model tea.Model = m
	var cmd tea.Cmd
	for i := 0; i < 10; i++ {
		model, cmd = model.Update(TickMsg{})
	}
	p := model.(Preview)
	if p.Frame() != 10 || p.Progress() != 1 {
		t.Fatalf("after 10 ticks frame=%d progress=%v", p.Frame(), p.Progress())
	}
	if p.Done() || cmd == nil {
		t.Fatal("preview ended before the hold")
	}

	for i := 0; i < 5; i++ {
		model, cmd = model.Update(TickMsg{})
	}
	if !model.(Preview).Done() {
		t.Error("preview should end after the hold")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit command after the hold")
	}
}

func TestPreviewKeys(t *testing.T) {
	var model tea.Model = newTestPreview()

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	model, _ = model.Update(TickMsg{})
	if model.(Preview).Frame() != 0 {
		t.Error("paused preview advanced")
	}

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	model, _ = model.Update(TickMsg{})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if model.(Preview).Frame() != 0 {
		t.Error("restart did not rewind")
	}

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPreviewView(t *testing.T) {
	view := newTestPreview().View()
	for _, want := range []string{"COUPLED OSCILLATOR", "Mass 1", "Mass 2", "DRAWING"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPlotASCII(t *testing.T) {
	out := PlotASCII(testTraces(200), config.DefaultConfig().Render, 60, 10)
	if !strings.Contains(out, "Mass 1 / Mass 2") {
		t.Errorf("caption missing from\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines < 10 {
		t.Errorf("chart has %d lines", lines)
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("retro").Name != "retro" {
		t.Error("retro theme not found")
	}
	if GetTheme("nope").Name != "dark" {
		t.Error("unknown theme should fall back to dark")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}
