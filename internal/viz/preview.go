package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/coupledosc/internal/config"
	"github.com/san-kum/coupledosc/internal/scene"
	"github.com/san-kum/coupledosc/internal/sim"
)

const (
	DefaultCols = 72
	DefaultRows = 20
)

type TickMsg time.Time

// Preview plays the render timeline on a braille canvas: the curves grow
// at a linear rate over the run time, then the final frame holds.
type Preview struct {
	traces   []sim.Trace
	timeline scene.Timeline
	plot     *Plot
	theme    Theme
	colors   []lipgloss.Color
	styles   []lipgloss.Style
	title    string

	frame     int
	holdTicks int
	running   bool
	done      bool
}

func NewPreview(traces [2]sim.Trace, rc config.RenderConfig, theme Theme, cols, rows int) Preview {
	colors := []lipgloss.Color{lipgloss.Color(rc.Colors[0]), lipgloss.Color(rc.Colors[1])}
	styles := []lipgloss.Style{lipgloss.NewStyle().Foreground(theme.Axis)}
	for _, c := range colors {
		styles = append(styles, lipgloss.NewStyle().Foreground(c))
	}

	return Preview{
		traces:   traces[:],
		timeline: scene.NewTimeline(rc.FPS, rc.RunTime, rc.Hold),
		plot:     NewPlot(cols, rows, rc.XRange, rc.YRange),
		theme:    theme,
		colors:   colors,
		styles:   styles,
		title:    "COUPLED OSCILLATOR",
		running:  true,
	}
}

func (m Preview) tick() tea.Cmd {
	return tea.Tick(m.timeline.FrameInterval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Preview) Init() tea.Cmd {
	return m.tick()
}

func (m Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.done = true
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "r":
			m.frame, m.holdTicks = 0, 0
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		if m.done {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

// advance moves one frame forward, then counts down the hold.
func (m *Preview) advance() {
	if m.frame < m.timeline.Steps() {
		m.frame++
		return
	}
	m.holdTicks++
	if float64(m.holdTicks) >= math.Round(m.timeline.Hold*float64(m.timeline.FPS)) {
		m.done = true
	}
}

func (m Preview) Frame() int { return m.frame }

func (m Preview) Done() bool { return m.done }

func (m Preview) Progress() float64 { return m.timeline.Progress(m.frame) }

func (m Preview) View() string {
	p := m.Progress()
	tip := m.plot.DrawFrame(m.traces, p)
	canvasView := canvasStyle.Render(m.plot.Canvas.Render(m.styles))

	status := StatusRunning.Render("DRAWING")
	switch {
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	case m.frame >= m.timeline.Steps():
		status = StatusHold.Render("HOLD")
	}

	labels := make([]string, len(m.traces))
	for i, tr := range m.traces {
		labels[i] = tr.Name
	}

	var s strings.Builder
	s.WriteString(headerStyle(m.theme).Render(m.title) + "\n")
	s.WriteString(status + "\n\n")
	s.WriteString(Legend(labels, m.colors) + "\n\n")
	s.WriteString(labelStyle.Render("t") + valueStyle.Render(fmt.Sprintf("%.2f", m.traces[0].T[tip])) + "\n")
	for i, tr := range m.traces {
		s.WriteString(labelStyle.Render(tr.Name) + lipgloss.NewStyle().Foreground(m.colors[i]).Render(fmt.Sprintf("%+.3f", tr.Y[tip])) + "\n")
	}
	s.WriteString(labelStyle.Render("Progress") + valueStyle.Render(fmt.Sprintf("%5.1f%%", 100*p)) + "\n")
	s.WriteString(ProgressBar(p, 20, m.theme.Accent) + "\n")
	s.WriteString(helpStyle.Render("SP:Pause R:Restart Q:Quit"))

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// RunPreview plays the animation in the alternate screen until it ends or
// the user quits.
func RunPreview(m Preview) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
