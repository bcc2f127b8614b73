package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/arvid-sk/threebody/internal/config"
	"github.com/arvid-sk/threebody/internal/integrators"
	"github.com/arvid-sk/threebody/internal/physics"
	"github.com/arvid-sk/threebody/internal/sim"
)

const (
	canvasWidth  = 80
	canvasHeight = 24
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(38)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	bodyStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#00c853")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ff1744")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#00e5ff")),
	}
)

type TickMsg time.Time

// Model drives the live view: it owns the simulation for the session and
// advances it one step per frame.
type Model struct {
	cfg        *config.Config
	simulation *sim.Simulation
	canvas     *Canvas
	view       Viewport
	running    bool
	failed     error
	frame      time.Duration
}

func NewModel(cfg *config.Config) (Model, error) {
	s, err := buildSimulation(cfg)
	if err != nil {
		return Model{}, err
	}
	rate := cfg.FrameRate
	if rate < 1 {
		rate = config.DefaultFrameRate
	}
	return Model{
		cfg:        cfg,
		simulation: s,
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		view: Viewport{
			Width:  canvasWidth * 2,
			Height: canvasHeight * 4,
			Scale:  cfg.Scale,
		},
		running: true,
		frame:   time.Second / time.Duration(rate),
	}, nil
}

func buildSimulation(cfg *config.Config) (*sim.Simulation, error) {
	dyn := physics.NewGravity(cfg.Masses())
	if cfg.G > 0 {
		dyn.G = cfg.G
	}

	var integ sim.Integrator
	switch cfg.Integrator {
	case "", "rk4":
		integ = integrators.NewRK4()
	case "euler":
		integ = integrators.NewEuler()
	default:
		return nil, fmt.Errorf("%w: unknown integrator %q", sim.ErrInvalidInput, cfg.Integrator)
	}

	return sim.New(dyn, integ, cfg.Masses(), cfg.Positions(), cfg.Velocities(), cfg.Dt, cfg.Trail)
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg {
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
			if m.failed == nil {
				m.running = !m.running
			}
		case "+", "=":
			m.view.Scale *= 0.8
		case "-", "_":
			m.view.Scale /= 0.8
		case "r":
			if s, err := buildSimulation(m.cfg); err == nil {
				m.simulation = s
				m.failed = nil
				m.running = true
				m.view.Scale = m.cfg.Scale
			}
		}
		return m, nil

	case TickMsg:
		if m.running && m.failed == nil {
			if err := m.simulation.Tick(); err != nil {
				m.failed = err
				m.running = false
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	m.canvas.Clear()

	for i := 0; i < m.simulation.NumBodies(); i++ {
		m.drawTrail(m.simulation.Trail(i))
	}
	for _, p := range m.simulation.Positions() {
		m.drawBody(p)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(m.stats()),
	)
}

func (m Model) drawTrail(trail []sim.Vec2) {
	var px, py int
	have := false
	for _, p := range trail {
		x, y := m.view.ToScreen(p)
		if have && m.view.Contains(x, y) && m.view.Contains(px, py) {
			m.canvas.Line(px, py, x, y)
		}
		px, py = x, y
		have = true
	}
}

func (m Model) drawBody(p sim.Vec2) {
	x, y := m.view.ToScreen(p)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			m.canvas.Set(x+dx, y+dy)
		}
	}
}

func (m Model) stats() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("three-body"))
	b.WriteByte('\n')

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteByte('\n')
	}
	row("time", fmt.Sprintf("%.3e s", m.simulation.Time()))
	row("steps", fmt.Sprintf("%d", m.simulation.Steps()))
	row("dt", fmt.Sprintf("%.2e s", m.simulation.Dt()))
	row("scale", fmt.Sprintf("%.2e m/px", m.view.Scale))
	b.WriteByte('\n')

	for i, p := range m.simulation.Positions() {
		style := bodyStyles[i%len(bodyStyles)]
		b.WriteString(style.Render(fmt.Sprintf("body %d", i)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("  (%.2e, %.2e)", p.X, p.Y)))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	switch {
	case m.failed != nil:
		b.WriteString(errorStyle.Render("FAILED: " + m.failed.Error()))
	case !m.running:
		b.WriteString(pausedStyle.Render("PAUSED"))
	default:
		b.WriteString(valueStyle.Render("running"))
	}

	b.WriteString(helpStyle.Render("\nspace pause  +/- zoom  r reset  q quit"))
	return b.String()
}

// RunLive starts the live TUI and blocks until the user quits.
func RunLive(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
