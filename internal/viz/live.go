// Package viz renders a live terminal view of the ring-axis motion: both
// model trajectories advancing in real time, with a scrolling position graph.
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ringlab/ringsim/internal/sim"
)

const (
	axisWidth       = 72
	graphHeight     = 10
	historyCapacity = 300
	stepsPerFrame   = 8
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model carries the stepping state for both force laws plus the UI buffers.
type Model struct {
	stepper sim.Stepper
	exact   sim.ForceModel
	approx  sim.ForceModel
	cfg     sim.Config

	t              float64
	xExact, vExact float64
	xApprox        float64
	vApprox        float64

	histExact  []float64
	histApprox []float64

	running bool
	fps     int
	radius  float64
}

func NewModel(stepper sim.Stepper, exact, approx sim.ForceModel, cfg sim.Config, radius float64, fps int) Model {
	return Model{
		stepper:    stepper,
		exact:      exact,
		approx:     approx,
		cfg:        cfg,
		xExact:     cfg.X0,
		vExact:     cfg.V0,
		xApprox:    cfg.X0,
		vApprox:    cfg.V0,
		histExact:  make([]float64, 0, historyCapacity),
		histApprox: make([]float64, 0, historyCapacity),
		running:    true,
		fps:        fps,
		radius:     radius,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.t = 0
			m.xExact, m.vExact = m.cfg.X0, m.cfg.V0
			m.xApprox, m.vApprox = m.cfg.X0, m.cfg.V0
			m.histExact = m.histExact[:0]
			m.histApprox = m.histApprox[:0]
		}
		return m, nil

	case TickMsg:
		if m.running {
			for i := 0; i < stepsPerFrame; i++ {
				m.xExact, m.vExact, _ = m.stepper.Step(m.exact, m.xExact, m.vExact, m.cfg.Dt)
				m.xApprox, m.vApprox, _ = m.stepper.Step(m.approx, m.xApprox, m.vApprox, m.cfg.Dt)
				m.t += m.cfg.Dt
			}
			m.histExact = appendBounded(m.histExact, m.xExact)
			m.histApprox = appendBounded(m.histApprox, m.xApprox)
		}
		return m, m.tick()
	}

	return m, nil
}

func appendBounded(hist []float64, v float64) []float64 {
	if len(hist) == historyCapacity {
		copy(hist, hist[1:])
		hist = hist[:historyCapacity-1]
	}
	return append(hist, v)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("ring-axis charge motion"))
	b.WriteString("\n")
	b.WriteString(m.renderAxis())
	b.WriteString("\n")

	if len(m.histExact) > 1 {
		graph := asciigraph.PlotMany(
			[][]float64{m.histExact, m.histApprox},
			asciigraph.Height(graphHeight),
			asciigraph.Width(axisWidth),
			asciigraph.Caption("x vs time (exact, approx)"),
		)
		b.WriteString(axisStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(m.renderStats())
	b.WriteString(helpStyle.Render("space: pause  r: reset  q: quit"))
	return b.String()
}

// renderAxis draws the symmetry axis with the ring plane at center and both
// charges placed on a window of ±2 ring radii.
func (m Model) renderAxis() string {
	line := []rune(strings.Repeat("-", axisWidth))
	line[axisWidth/2] = '|'

	place := func(x float64, mark rune) {
		span := 2 * m.radius
		frac := (x + span) / (2 * span)
		col := int(math.Round(frac * float64(axisWidth-1)))
		if col < 0 {
			col = 0
		}
		if col >= axisWidth {
			col = axisWidth - 1
		}
		line[col] = mark
	}
	place(m.xApprox, 'o')
	place(m.xExact, '@')

	return axisStyle.Render(string(line))
}

func (m Model) renderStats() string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}
	row("t", fmt.Sprintf("%.3f s", m.t))
	row("x exact", fmt.Sprintf("%+.6f", m.xExact))
	row("x approx", fmt.Sprintf("%+.6f", m.xApprox))
	row("gap", fmt.Sprintf("%.3e", math.Abs(m.xExact-m.xApprox)))
	row("v exact", fmt.Sprintf("%+.6f", m.vExact))
	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(stepper sim.Stepper, exact, approx sim.ForceModel, cfg sim.Config, radius float64, fps int) error {
	p := tea.NewProgram(NewModel(stepper, exact, approx, cfg, radius, fps))
	_, err := p.Run()
	return err
}
