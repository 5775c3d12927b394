package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/jakecoffman/cp"
	"github.com/san-kum/plinko/internal/sim"
)

const (
	width           = 80
	height          = 30
	historyCapacity = 600

	// The canvas is drawn inside canvasStyle's padding.
	padLeft = 2
	padTop  = 1
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(padTop, padLeft)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Rebuild returns a fresh session for the reset key.
type Rebuild func() (*sim.Session, error)

// Model steps a session from the terminal frame loop and maps mouse input
// onto the session pointer.
type Model struct {
	session  *sim.Session
	rebuild  Rebuild
	canvas   *Canvas
	proj     Projection
	theme    Theme
	interval time.Duration

	running  bool
	dragging bool
	showHelp bool
	energy   []float64
	contacts int
	err      error
}

func NewModel(s *sim.Session, rebuild Rebuild) Model {
	m := Model{
		rebuild:  rebuild,
		canvas:   NewCanvas(width, height),
		running:  true,
		interval: time.Second / 60,
	}
	if fps := s.Runner.Config().FPS; fps > 0 {
		m.interval = time.Duration(float64(time.Second) / fps)
	}
	m.attach(s)
	return m
}

func (m *Model) attach(s *sim.Session) {
	m.session = s
	m.proj = NewProjection(s.Render.Min, s.Render.Max, m.canvas)
	m.theme = SceneTheme(s.Render.Background)
	m.energy = make([]float64, 0, historyCapacity)
	m.contacts = 0
	m.dragging = false
}

// Session is the session currently shown; reset replaces it.
func (m Model) Session() *sim.Session { return m.session }

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.reset()
		case "s":
			if !m.running {
				m.step()
			}
		case "t":
			m.cycleTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	f := m.session.Runner.Step()
	m.contacts += f.Started
	m.energy = append(m.energy, f.KineticEnergy)
	if len(m.energy) > historyCapacity {
		m.energy = m.energy[1:]
	}
}

func (m *Model) reset() {
	if m.rebuild == nil {
		return
	}
	s, err := m.rebuild()
	if err != nil {
		m.err = err
		return
	}
	m.session.Stop()
	m.attach(s)
	m.err = nil
}

func (m *Model) cycleTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == m.theme.Name {
			m.theme = GetTheme(names[(i+1)%len(names)])
			return
		}
	}
	m.theme = GetTheme(names[0])
}

// cellToWorld maps a terminal cell to the world point under its center.
func (m *Model) cellToWorld(col, row int) (cp.Vector, bool) {
	col -= padLeft
	row -= padTop
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return cp.Vector{}, false
	}
	return m.proj.World(col*2+1, row*4+2), true
}

func (m *Model) mouse(msg tea.MouseMsg) {
	ptr := m.session.Pointer
	if ptr == nil {
		return
	}
	at, inside := m.cellToWorld(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return
		}
		_, m.dragging = ptr.Press(at)
	case tea.MouseActionMotion:
		if inside {
			ptr.Move(at)
		}
	case tea.MouseActionRelease:
		ptr.Release()
		m.dragging = false
	}
}

func (m Model) View() string {
	m.canvas.Clear()
	DrawWorld(m.canvas, m.proj, m.session.World)
	canvasView := canvasStyle.Render(m.canvas.Render())

	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
	label := MetricLabel.Foreground(m.theme.Muted)
	value := MetricValue.Foreground(m.theme.Text)

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.session.Title), m.theme.Primary, m.theme.Secondary) + "\n")
	s.WriteString(title.Render(m.session.Requires) + "\n\n")

	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING"))
	} else {
		s.WriteString(StatusPaused.Render("PAUSED"))
	}
	if m.dragging {
		s.WriteString("  " + KeyHint.Render("dragging"))
	}
	s.WriteString("\n\n")

	if len(m.energy) > 1 {
		chart := asciigraph.Plot(m.energy, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n")
		s.WriteString(SparklineChart(m.energy, 30) + "\n\n")
	}

	w := m.session.World
	ke := 0.0
	if len(m.energy) > 0 {
		ke = m.energy[len(m.energy)-1]
	}
	rows := [][2]string{
		{"Time", fmt.Sprintf("%.2fs", w.Time())},
		{"Steps", fmt.Sprintf("%d", w.Steps())},
		{"Bodies", fmt.Sprintf("%d", len(w.Bodies()))},
		{"Energy", fmt.Sprintf("%.1f", ke)},
		{"Contacts", fmt.Sprintf("%d", m.contacts)},
		{"Theme", m.theme.Name},
	}
	for _, r := range rows {
		s.WriteString(label.Render(r[0]) + value.Render(r[1]) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Warning).Render(m.err.Error()) + "\n")
	}

	s.WriteString(helpStyle.Render(Separator(36) + "\nSP:Pause S:Step R:Reset\nT:Theme ?:Help Q:Quit\nMouse: drag bodies"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  S        - Single step when paused  ║
║  R        - Rebuild the scene        ║
║  T        - Cycle themes             ║
║  Mouse    - Drag dynamic bodies      ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run shows s in the terminal until the user quits, then stops whichever
// session is current.
func Run(s *sim.Session, rebuild Rebuild) error {
	p := tea.NewProgram(NewModel(s, rebuild), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.session.Stop()
	} else {
		s.Stop()
	}
	return err
}
