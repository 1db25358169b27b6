// Package tui is the interactive terminal front end: a ray-traced view of
// the puzzle driven by mouse drags, with an optional physical cube feed.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/config"
	"github.com/SeamusWaldron/twisty/internal/gocube"
	"github.com/SeamusWaldron/twisty/internal/render"
)

// hudLines is the number of rows below the puzzle view.
const hudLines = 4

const (
	orbitStep = 10.0 // degrees per arrow key
	orbitDrag = 3.0  // degrees per dragged cell
	zoomStep  = 1.1
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type frameMsg time.Time
type rotationMsg []gocube.Rotation
type feedClosedMsg struct{}
type snapshotMsg struct {
	path string
	err  error
}

// Options configures a Model.
type Options struct {
	Config *config.Config
	Logger *zap.Logger

	// Title is shown in the HUD.
	Title string

	// Rotations, when set, is a feed of face turns from a physical cube.
	// Status is polled every frame for a one-line device summary.
	Rotations <-chan []gocube.Rotation
	Status    func() string

	// OnReset runs after the puzzle is reset with 'r'.
	OnReset func()

	// SnapshotDir is where 'p' writes PNG files. Empty means the working
	// directory.
	SnapshotDir string

	// Duration overrides animation.duration when positive.
	Duration time.Duration

	// Clock stamps animation starts. Defaults to time.Now.
	Clock func() time.Time
}

// grab is a pressed cubie face. cell is the cubie's position at press time.
type grab struct {
	hit      render.Hit
	cell     [3]int
	col, row int
}

type point struct{ col, row int }

// Model is the bubbletea model for play and mirror modes.
type Model struct {
	cfg  *config.Config
	log  *zap.Logger
	opts Options

	grid   *twisty.Grid
	anim   *twisty.Animator
	interp *twisty.Interpreter

	cam     render.Camera
	homeCam render.Camera
	vp      render.Viewport
	frame   *render.Frame

	grab      *grab
	orbitFrom *point

	moves    int
	last     twisty.Move
	hasLast  bool
	dropped  int
	debug    bool
	status   string
	err      error
	quitting bool
}

// New builds a model showing a fresh puzzle.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	duration := cfg.Animation.Duration
	if opts.Duration > 0 {
		duration = opts.Duration
	}

	animOpts := []twisty.Option{twisty.WithDuration(duration), twisty.WithLogger(log)}
	if opts.Clock != nil {
		animOpts = append(animOpts, twisty.WithClock(opts.Clock))
	}

	grid := twisty.NewGrid()
	cam := render.NewCamera(cfg.Camera.Yaw, cfg.Camera.Pitch, cfg.Camera.Distance, cfg.Camera.FOV)
	m := &Model{
		cfg:     cfg,
		log:     log,
		opts:    opts,
		grid:    grid,
		anim:    twisty.NewAnimator(grid, animOpts...),
		interp:  twisty.NewInterpreter(cfg.Gesture.MinDrag),
		cam:     cam,
		homeCam: cam,
		vp: render.Viewport{
			Cols:       80,
			Rows:       24 - hudLines,
			CellWidth:  cfg.Render.CellWidth,
			CellHeight: cfg.Render.CellHeight,
		},
	}
	m.anim.OnSettle(func(mv twisty.Move) {
		m.moves++
		m.last, m.hasLast = mv, true
		m.log.Info("move", zap.Stringer("move", mv), zap.Uint64("fingerprint", m.grid.Fingerprint()))
	})
	m.redraw()
	return m
}

// Grid returns the puzzle being shown.
func (m *Model) Grid() *twisty.Grid {
	return m.grid
}

// Animator returns the model's animator.
func (m *Model) Animator() *twisty.Animator {
	return m.anim
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.listenForRotations())
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Render.FrameInterval(), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) listenForRotations() tea.Cmd {
	if m.opts.Rotations == nil {
		return nil
	}
	ch := m.opts.Rotations
	return func() tea.Msg {
		rots, ok := <-ch
		if !ok {
			return feedClosedMsg{}
		}
		return rotationMsg(rots)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.vp.Cols = max(msg.Width, 1)
		m.vp.Rows = max(msg.Height-hudLines, 1)
		m.redraw()

	case frameMsg:
		m.anim.Tick(time.Time(msg))
		if m.opts.Status != nil {
			m.status = m.opts.Status()
		}
		m.redraw()
		return m, m.tickCmd()

	case rotationMsg:
		for _, r := range msg {
			m.mirror(r)
		}
		return m, m.listenForRotations()

	case feedClosedMsg:
		m.err = fmt.Errorf("cube feed closed")

	case snapshotMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = "saved " + msg.path
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return tea.Quit
	case "left":
		m.orbit(-orbitStep, 0)
	case "right":
		m.orbit(orbitStep, 0)
	case "up":
		m.orbit(0, orbitStep)
	case "down":
		m.orbit(0, -orbitStep)
	case "+", "=":
		m.zoom(1 / zoomStep)
	case "-", "_":
		m.zoom(zoomStep)
	case "c":
		m.cam = m.homeCam
		m.redraw()
	case "r":
		m.reset()
	case "d":
		m.debug = !m.debug
	case "p":
		return m.snapshot()
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.press(msg.X, msg.Y)
		case tea.MouseButtonRight:
			m.orbitFrom = &point{msg.X, msg.Y}
		case tea.MouseButtonWheelUp:
			m.zoom(1 / zoomStep)
		case tea.MouseButtonWheelDown:
			m.zoom(zoomStep)
		}

	case tea.MouseActionMotion:
		if m.orbitFrom != nil {
			m.orbit(float64(msg.X-m.orbitFrom.col)*orbitDrag, float64(msg.Y-m.orbitFrom.row)*orbitDrag)
			m.orbitFrom = &point{msg.X, msg.Y}
		}

	case tea.MouseActionRelease:
		m.orbitFrom = nil
		if m.grab != nil {
			m.release(msg.X, msg.Y)
		}
	}
}

// press grabs the cubie face under the cursor. Presses during a rotation
// or outside the puzzle are ignored.
func (m *Model) press(col, row int) {
	if m.anim.Busy() || row >= m.vp.Rows {
		return
	}
	x, y := m.vp.NDC(col, row)
	hit, ok := render.Pick(m.grid, m.cam.Ray(x, y, m.vp.Aspect()))
	if !ok {
		return
	}
	m.grab = &grab{hit: hit, cell: hit.Cubie.Rounded(), col: col, row: row}
}

// release turns the drag since press into a move.
func (m *Model) release(col, row int) {
	g := m.grab
	m.grab = nil

	gesture := twisty.Gesture{
		Normal: g.hit.Normal,
		Cell:   g.cell,
		Drag:   m.vp.Drag(col-g.col, row-g.row),
	}
	mv, ok := m.interp.Interpret(gesture)
	if !ok {
		return
	}
	m.anim.Rotate(mv)
}

// mirror applies a physical face turn. Turns arriving during an animation
// are dropped and counted.
func (m *Model) mirror(r gocube.Rotation) {
	if m.anim.Busy() {
		m.dropped++
		m.log.Warn("physical turn dropped", zap.Stringer("color", r.Color), zap.Bool("clockwise", r.Clockwise))
		return
	}
	mv, ok := gocube.Move(m.grid, r)
	if !ok {
		return
	}
	m.anim.Rotate(mv)
}

func (m *Model) orbit(dyaw, dpitch float64) {
	m.cam.Orbit(dyaw, dpitch)
	m.redraw()
}

func (m *Model) zoom(factor float64) {
	m.cam.Zoom(factor)
	m.redraw()
}

func (m *Model) reset() {
	if m.anim.Busy() {
		return
	}
	m.grid.Reset()
	m.moves = 0
	m.hasLast = false
	m.dropped = 0
	m.log.Info("puzzle reset")
	if m.opts.OnReset != nil {
		m.opts.OnReset()
	}
	m.redraw()
}

func (m *Model) snapshot() tea.Cmd {
	grid := m.grid.Clone()
	cam := m.cam
	w, h := m.cfg.Snapshot.Width, m.cfg.Snapshot.Height
	path := filepath.Join(m.opts.SnapshotDir, fmt.Sprintf("twisty-%s.png", time.Now().Format("20060102-150405")))
	return func() tea.Msg {
		err := render.WritePNG(path, render.Snapshot(grid, cam, w, h))
		return snapshotMsg{path: path, err: err}
	}
}

func (m *Model) redraw() {
	m.frame = render.Raster(m.grid, m.cam, m.vp)
}

func (m *Model) View() string {
	if m.quitting {
		return fmt.Sprintf("Goodbye! %d moves.\n", m.moves)
	}

	var b strings.Builder
	b.WriteString(m.frame.Render())
	b.WriteString("\n")

	title := m.opts.Title
	if title == "" {
		title = "twisty"
	}
	line := titleStyle.Render(title)
	if m.status != "" {
		line += "  " + statusStyle.Render(m.status)
	}
	b.WriteString(line + "\n")

	info := fmt.Sprintf("Moves: %d  State: %s", m.moves, m.anim.State())
	if m.hasLast {
		info += "  Last: " + moveStyle.Render(m.last.String())
	}
	if m.dropped > 0 {
		info += fmt.Sprintf("  Dropped: %d", m.dropped)
	}
	b.WriteString(info + "\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.debug:
		b.WriteString(statusStyle.Render(fmt.Sprintf(
			"fp=%016x settled=%v cam=(%.0f°, %.0f°, %.1f)",
			m.grid.Fingerprint(), m.grid.Settled(), m.cam.Yaw, m.cam.Pitch, m.cam.Distance,
		)))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("drag=turn  right-drag/arrows=orbit  +/-=zoom  c=camera  r=reset  p=png  d=debug  q=quit"))
	return b.String()
}
