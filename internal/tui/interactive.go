package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/SzymonKubica/game-console-sub000/internal/console"
	"github.com/SzymonKubica/game-console-sub000/internal/grid"
	"github.com/SzymonKubica/game-console-sub000/internal/life"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var gameInfo = map[console.Game]string{
	console.GameOfLife: "conway's cellular automaton",
}

const (
	// hudLines is the vertical space taken by everything but the board.
	hudLines     = 14
	historyWidth = 120
)

type state int

const (
	stateMenu state = iota
	stateConfig
	stateSim
)

// Options configures the terminal front end.
type Options struct {
	Session   console.Config
	Theme     string
	Observers []console.Observer
	// Direct starts the game immediately and quits when it ends.
	Direct bool
}

type param struct {
	name   string
	value  func(c *console.Config) string
	adjust func(c *console.Config, delta int)
}

// series keeps the most recent population samples for the HUD graph.
type series struct {
	vals []float64
	max  int
}

func (s *series) add(v float64) {
	s.vals = append(s.vals, v)
	if len(s.vals) > s.max {
		s.vals = s.vals[1:]
	}
}

type model struct {
	state  state
	cursor int
	games  []console.Game
	opts   Options

	cfg         console.Config
	params      []param
	paramCursor int
	theme       Theme

	canvas     *Canvas
	queue      *console.Queue
	ctrl       *console.Controller
	population *series

	// pending starts the session on the first size message
	pending bool

	err    error
	width  int
	height int
}

func newModel(opts Options) model {
	m := model{
		state:      stateMenu,
		games:      []console.Game{console.GameOfLife},
		opts:       opts,
		cfg:        opts.Session,
		params:     lifeParams(),
		theme:      GetTheme(opts.Theme),
		population: &series{max: historyWidth},
		width:      80,
		height:     24,
	}
	if m.cfg.StepPeriod == 0 {
		m.cfg = console.DefaultConfig()
	}
	if opts.Direct {
		m.state = stateConfig
		m.pending = true
	}
	return m
}

func lifeParams() []param {
	patterns := append([]string{""}, life.ListPatterns()...)
	return []param{
		{
			name:  "topology",
			value: func(c *console.Config) string { return c.Topology.String() },
			adjust: func(c *console.Config, _ int) {
				if c.Topology == grid.Toroidal {
					c.Topology = grid.Bounded
				} else {
					c.Topology = grid.Toroidal
				}
			},
		},
		{
			name:   "prepopulate",
			value:  func(c *console.Config) string { return fmt.Sprint(c.Prepopulate) },
			adjust: func(c *console.Config, _ int) { c.Prepopulate = !c.Prepopulate },
		},
		{
			name:  "density",
			value: func(c *console.Config) string { return fmt.Sprintf("%.2f", c.Density) },
			adjust: func(c *console.Config, d int) {
				c.Density = min(1, max(0, c.Density+0.05*float64(d)))
			},
		},
		{
			name:  "step ms",
			value: func(c *console.Config) string { return fmt.Sprint(c.StepPeriod.Milliseconds()) },
			adjust: func(c *console.Config, d int) {
				c.StepPeriod = max(10*time.Millisecond, c.StepPeriod+time.Duration(d)*10*time.Millisecond)
			},
		},
		{
			name:  "rewind depth",
			value: func(c *console.Config) string { return fmt.Sprint(c.RewindDepth) },
			adjust: func(c *console.Config, d int) {
				c.RewindDepth = max(1, c.RewindDepth+8*d)
			},
		},
		{
			name: "pattern",
			value: func(c *console.Config) string {
				if c.Pattern == nil {
					return "none"
				}
				return c.Pattern.Name
			},
			adjust: func(c *console.Config, d int) {
				cur := 0
				if c.Pattern != nil {
					for i, name := range patterns {
						if name == c.Pattern.Name {
							cur = i
						}
					}
				}
				next := (cur + d + len(patterns)) % len(patterns)
				if patterns[next] == "" {
					c.Pattern = nil
					return
				}
				p, _ := life.GetPattern(patterns[next])
				c.Pattern = &p
			},
		},
	}
}

func (m model) Init() tea.Cmd { return nil }

type tickMsg time.Time

func (m model) tick() tea.Cmd {
	delay := m.cfg.LoopDelay
	if delay <= 0 {
		delay = console.DefaultLoopDelay
	}
	return tea.Tick(delay, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.pending {
			m.pending = false
			return m.start()
		}
		return m, nil
	case tickMsg:
		if m.state != stateSim || m.ctrl == nil {
			return m, nil
		}
		if !m.ctrl.Iterate() {
			return m.leave()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		pushKey(m.queue, msg)
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.games)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.state = stateConfig
		m.paramCursor = 0
		m.err = nil
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		if m.opts.Direct {
			return m, tea.Quit
		}
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.params)-1 {
			m.paramCursor++
		}
	case "left", "h":
		m.params[m.paramCursor].adjust(&m.cfg, -1)
	case "right", "l", " ":
		m.params[m.paramCursor].adjust(&m.cfg, 1)
	case "enter", "s":
		return m.start()
	}
	return m, nil
}

// boardSize fits the board to the terminal below the HUD.
func (m model) boardSize() (rows, cols int) {
	rows = m.height - hudLines
	cols = (m.width - 6) / 2
	return max(rows, 0), max(cols, 0)
}

func (m model) start() (model, tea.Cmd) {
	rows, cols := m.boardSize()
	if m.cfg.Rows > 0 {
		rows = m.cfg.Rows
	}
	if m.cfg.Cols > 0 {
		cols = m.cfg.Cols
	}
	m.canvas = NewCanvas(rows, cols)
	m.queue = &console.Queue{}
	m.population = &series{max: historyWidth}

	ctrl, err := console.New(m.cfg, m.canvas, m.queue)
	if err != nil {
		slog.Error("start session", "err", err)
		m.err = err
		m.state = stateConfig
		if m.opts.Direct {
			return m, tea.Quit
		}
		return m, nil
	}
	pop := m.population
	ctrl.AddObserver(console.ObserverFunc(func(e console.Event) { pop.add(float64(e.Population)) }))
	for _, o := range m.opts.Observers {
		ctrl.AddObserver(o)
	}
	pop.add(float64(ctrl.Population()))

	m.ctrl = ctrl
	m.err = nil
	m.state = stateSim
	return m, tea.Batch(tea.ClearScreen, m.tick())
}

func (m model) leave() (model, tea.Cmd) {
	m.ctrl = nil
	if m.opts.Direct {
		return m, tea.Quit
	}
	m.state = stateConfig
	return m, tea.ClearScreen
}

func (m model) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.viewSim()
	}
	return ""
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("          " + cyan.Render("g a m e   c o n s o l e") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, g := range m.games {
		desc := gameInfo[g]
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-16s", g)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-16s", g)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")

	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(console.GameOfLife.String()) + "  " + dim.Render(gameInfo[console.GameOfLife]) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, p := range m.params {
		val := fmt.Sprintf("%12s", p.value(&m.cfg))
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-14s", p.name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-14s", p.name)) + dim.Render(val) + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n      " + red.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter start  esc back") + "\n")

	return b.String()
}

func (m model) viewSim() string {
	var b strings.Builder

	icon, status := green.Render("●"), green.Render("running")
	switch m.ctrl.Mode() {
	case console.Paused:
		icon, status = yellow.Render("○"), yellow.Render("paused")
	case console.Rewinding:
		icon, status = magenta.Render("◀"), magenta.Render("rewind")
	}
	h := m.ctrl.History()
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s %s  %s %s  %s %s\n\n",
		icon, cyan.Render("life"), status,
		dim.Render("gen"), white.Render(fmt.Sprint(m.ctrl.Generation())),
		dim.Render("pop"), white.Render(fmt.Sprint(m.ctrl.Population())),
		dim.Render("history"), white.Render(fmt.Sprintf("%d/%d", h.Len()-h.Behind(), h.Cap()))))

	b.WriteString(m.canvas.Render(m.theme, "   "))

	if vals := m.population.vals; len(vals) > 1 {
		width := min(len(vals), max(m.width-14, 10))
		chart := asciigraph.Plot(vals[len(vals)-width:],
			asciigraph.Height(4), asciigraph.Width(width), asciigraph.Caption("population"))
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Accent).Render(chart) + "\n")
	}

	help := "   space run/pause  ←↑↓→ move  enter toggle  r rewind  q quit"
	if m.ctrl.Mode() == console.Rewinding {
		help = "   ← back  → forward  space resume  r leave rewind  q quit"
	}
	b.WriteString("\n" + dim.Render(help) + "\n")

	return b.String()
}

// Run starts the terminal front end and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(newModel(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(model); ok && m.err != nil {
		return m.err
	}
	return nil
}
