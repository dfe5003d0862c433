package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/floatwin/internal/config"
	"github.com/1broseidon/floatwin/internal/devicemode"
	"github.com/1broseidon/floatwin/internal/gesture"
	"github.com/1broseidon/floatwin/internal/hotkeys"
	"github.com/1broseidon/floatwin/internal/interaction"
	"github.com/1broseidon/floatwin/internal/palette"
	"github.com/1broseidon/floatwin/internal/placement"
	"github.com/1broseidon/floatwin/internal/platform"
	"github.com/1broseidon/floatwin/internal/prompt"
	"github.com/1broseidon/floatwin/internal/registry"
)

// Options configures the terminal desktop.
type Options struct {
	Config     *config.Config
	ConfigPath string
	// Device is "", "auto", "desktop", "tablet" or "mobile".
	Device string
	Logger *slog.Logger
	Now    func() time.Time
}

// pendingConfirm is an open yes/no question.
type pendingConfirm struct {
	title       string
	description string
	resolve     func(ok bool)
}

// Model is the bubbletea model driving one registry.
type Model struct {
	reg        *registry.Registry
	cfg        *config.Config
	configPath string
	logger     *slog.Logger
	now        func() time.Time

	keys      *hotkeys.Table
	palette   *palette.Palette
	adapter   *devicemode.Adapter
	ctrl      *interaction.Controller
	listeners *motionListeners
	tracker   *gesture.Tracker
	router    *gesture.Router

	width   int
	height  int
	pressed string // window under the last press

	form    *openForm
	confirm *pendingConfirm
	message string
	pending []tea.Cmd
}

// New builds a model around reg.
func New(reg *registry.Registry, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = reg.Config()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := &Model{
		reg:        reg,
		cfg:        cfg,
		configPath: opts.ConfigPath,
		logger:     logger,
		now:        now,
		listeners:  &motionListeners{},
		router:     gesture.NewRouter(),
	}

	var provider devicemode.Provider
	if class, ok := devicemode.ParseClass(opts.Device); ok {
		provider = devicemode.Fixed(class)
	} else {
		provider = &platform.TerminalProvider{GetSize: func(int) (int, int, error) {
			return m.width, m.height, nil
		}}
	}
	m.adapter = devicemode.Mount(reg, provider, devicemode.WithLogger(logger))
	m.applyConfig(cfg)
	m.routeGestures()
	return m
}

// applyConfig (re)builds everything derived from cfg.
func (m *Model) applyConfig(cfg *config.Config) {
	m.cfg = cfg
	keys, err := hotkeys.FromConfig(cfg.Hotkeys, m.logger)
	if err != nil {
		m.message = err.Error()
	}
	m.keys = keys
	m.bindKeys()

	actions := palette.DefaultActions(m.reg, m.openNew, m.reload)
	m.palette = palette.New(palette.WithShortcuts(actions, m.keys),
		palette.WithFuzzy(cfg.PaletteFuzzyMatching),
		palette.WithLogger(m.logger),
	)
	m.tracker = gesture.NewTracker(gesture.NewClassifier(gesture.ThresholdsFromConfig(cfg.Gestures)))

	if m.ctrl != nil {
		m.ctrl.Cancel()
	}
	m.ctrl = interaction.New(m.reg, m.listeners,
		interaction.WithMinSize(cfg.MinWindowSize),
		interaction.WithLogger(m.logger),
	)
}

func (m *Model) bindKeys() {
	m.keys.On("palette", func() { m.palette.Toggle() })
	m.keys.On("open-new", func() { _ = m.openNew() })
	m.keys.On("organize", m.reg.OrganizeModals)
	m.keys.On("minimize-all", m.reg.MinimizeAll)
	m.keys.On("restore-all", m.reg.RestoreAll)
	m.keys.On("close-all", m.askCloseAll)
	m.keys.On("close", func() {
		if m.adapter.Carousel() {
			m.adapter.CloseCurrent()
			return
		}
		m.reg.Close(m.reg.ActiveID())
	})
	m.keys.On("maximize", func() { m.reg.Maximize(m.reg.ActiveID()) })
	m.keys.On("minimize", func() { m.reg.Minimize(m.reg.ActiveID()) })
	m.keys.On("focus-next", func() {
		if m.adapter.Carousel() {
			m.adapter.Next()
			return
		}
		m.reg.FocusNext()
	})
	m.keys.On("focus-prev", func() {
		if m.adapter.Carousel() {
			m.adapter.Prev()
			return
		}
		m.reg.FocusPrev()
	})
	for action, dir := range spatialFocus {
		dir := dir
		m.keys.On(action, func() {
			if m.adapter.Carousel() {
				switch dir {
				case placement.DirLeft:
					m.adapter.Prev()
				case placement.DirRight:
					m.adapter.Next()
				}
				return
			}
			m.reg.FocusDirection(dir)
		})
	}
	m.keys.On("reload", func() {
		if err := m.reload(); err != nil {
			m.message = err.Error()
		}
	})
}

var spatialFocus = map[string]placement.Direction{
	"focus-left":  placement.DirLeft,
	"focus-right": placement.DirRight,
	"focus-up":    placement.DirUp,
	"focus-down":  placement.DirDown,
}

// routeGestures wires gesture handlers. Holding still on a window minimizes
// it; holding on the background opens the palette; double tapping a window
// toggles maximize.
func (m *Model) routeGestures() {
	m.router.OnSystem(gesture.KindDoubleTap, func(gesture.Gesture) bool {
		if m.pressed == "" {
			return false
		}
		m.reg.Maximize(m.pressed)
		return true
	})
	m.router.OnSystem(gesture.KindLongPress, func(gesture.Gesture) bool {
		m.palette.Open()
		return true
	})
	for _, w := range m.reg.Windows() {
		m.watchWindow(w.ID)
	}
	m.reg.Subscribe(func(ev registry.Event) {
		switch ev.Kind {
		case registry.EventOpened:
			m.watchWindow(ev.WindowID)
		case registry.EventClosed:
			m.router.Forget(ev.WindowID)
		}
	})
}

func (m *Model) watchWindow(id string) {
	m.router.OnWindow(id, gesture.KindLongPress, func(gesture.Gesture) bool {
		m.reg.Minimize(id)
		return true
	})
}

func (m *Model) openNew() error {
	m.form = newOpenForm(m.cfg, m.width)
	m.pending = append(m.pending, m.form.form.Init())
	return nil
}

func (m *Model) reload() error {
	var cfg *config.Config
	if m.configPath == "" {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("reload failed: %w", err)
		}
		cfg = loaded
	} else {
		res, err := config.LoadFromPath(m.configPath)
		if err != nil {
			return fmt.Errorf("reload failed: %w", err)
		}
		cfg = res.Config
	}
	m.reg.SetConfig(cfg)
	m.applyConfig(cfg)
	m.message = "configuration reloaded"
	return nil
}

func (m *Model) askCloseAll() {
	n := m.reg.Len()
	if n == 0 {
		return
	}
	m.confirm = &pendingConfirm{
		title:       "Close all windows?",
		description: fmt.Sprintf("%d window(s) will be closed.", n),
		resolve: func(ok bool) {
			m.reg.CloseAll(prompt.Static(ok))
		},
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if m.form != nil {
			m.updateForm(msg)
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.form != nil {
			m.updateForm(msg)
			break
		}
		if quit := m.handleKey(msg.String()); quit {
			return m, tea.Quit
		}
	case tea.MouseMsg:
		if m.form == nil && m.confirm == nil && !m.palette.IsOpen() {
			m.handleMouse(msg)
		}
	default:
		if m.form != nil {
			m.updateForm(msg)
		}
	}
	return m, m.flush()
}

func (m *Model) flush() tea.Cmd {
	cmds := append(m.pending, m.listeners.drain()...)
	m.pending = nil
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	rows := height - 1 // status bar
	if rows < 1 {
		rows = 1
	}
	m.reg.SetViewport(platform.CellsToPixels(width, rows))
	m.adapter.Redetect()
}

func (m *Model) updateForm(msg tea.Msg) {
	form, cmd := m.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f
	}
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
	switch m.form.form.State {
	case huh.StateCompleted:
		spec := m.form.spec()
		m.form = nil
		id := m.reg.Open(spec)
		m.message = "opened " + spec.Title
		m.logger.Debug("window opened from form", "id", id)
	case huh.StateAborted:
		m.form = nil
	}
}

// handleKey routes one key. It reports whether the program should quit.
func (m *Model) handleKey(key string) bool {
	m.message = ""

	if c := m.confirm; c != nil {
		switch key {
		case "y", "enter":
			m.confirm = nil
			c.resolve(true)
		case "n", "esc":
			m.confirm = nil
			c.resolve(false)
		}
		return false
	}

	if m.palette.IsOpen() {
		if action, ok := m.keys.Lookup(key); ok && action == "palette" {
			m.palette.Close()
			return false
		}
		if key == "enter" {
			if a, ok := m.palette.Current(); ok && a.Destructive {
				m.confirm = &pendingConfirm{
					title:       a.Name + "?",
					description: a.Description,
					resolve: func(ok bool) {
						m.report(m.palette.ExecuteWith(prompt.Static(ok)))
					},
				}
				return false
			}
		}
		consumed, err := m.palette.HandleKey(key)
		m.report(err)
		if !consumed {
			m.keys.Handle(key)
		}
		return false
	}

	if m.keys.Handle(key) {
		return false
	}
	if m.adapter.HandleKey(key) {
		return false
	}
	return key == "q"
}

func (m *Model) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, palette.ErrCancelled):
		m.message = "cancelled"
	default:
		m.message = err.Error()
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	at := toPixels(msg.X, msg.Y)
	now := m.now()

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			m.adapter.Next()
			return
		case tea.MouseButtonWheelUp:
			m.adapter.Prev()
			return
		case tea.MouseButtonLeft:
		default:
			return
		}

		if m.adapter.Carousel() {
			m.pressed = ""
			m.tracker.Begin(0, at, now)
			return
		}
		h, ok := hitTest(m.frames(), msg.X, msg.Y)
		m.pressed = h.target.WindowID
		if ok && h.button != "" {
			m.clickButton(h)
			return
		}
		m.tracker.Begin(0, at, now)
		if ok && !m.ctrl.PointerDown(h.target, at) {
			m.reg.BringToFront(h.target.WindowID)
		}

	case tea.MouseActionMotion:
		if m.tracker.Active() {
			m.tracker.Move(0, at, now)
		}
		m.ctrl.PointerMove(at)

	case tea.MouseActionRelease:
		m.ctrl.PointerUp(at)
		if !m.tracker.Active() {
			return
		}
		g, ok := m.tracker.End(0, at, now)
		if !ok {
			return
		}
		if m.adapter.Carousel() {
			m.adapter.HandleGesture(g)
			return
		}
		m.router.Route(m.pressed, g)
	}
}

func (m *Model) clickButton(h hit) {
	id := h.target.WindowID
	switch h.button {
	case buttonMinimize:
		m.reg.Minimize(id)
	case buttonMaximize:
		m.reg.Maximize(id)
	case buttonClose:
		m.reg.Close(id)
	}
}

// frames returns the desktop frames with the in-progress drag applied.
func (m *Model) frames() []frame {
	preview, hasPreview := m.ctrl.Preview()
	dragging := m.ctrl.WindowID()

	src := m.adapter.Frames()
	out := make([]frame, len(src))
	for i, f := range src {
		rect := f.Window.Rect()
		if hasPreview && f.Window.ID == dragging {
			rect = preview
		}
		out[i] = frame{window: f.Window, rect: rect, active: f.Active}
	}
	return out
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	active := ""
	if w, ok := m.reg.Window(m.reg.ActiveID()); ok {
		active = windowLabel(w)
	}
	status := renderStatusBar(m.adapter.Class().String(), len(m.reg.Visible()), m.adapter.Dock(), active, m.message, m.width)

	bodyHeight := m.height - lipgloss.Height(status)
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	var body string
	switch {
	case m.form != nil:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, overlayStyle.Render(m.form.form.View()))
	case m.confirm != nil:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, renderConfirm(m.confirm.title, m.confirm.description))
	case m.palette.IsOpen():
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, renderPalette(m.palette, m.width))
	case m.adapter.Carousel():
		body = m.viewCarousel(bodyHeight)
	default:
		body = m.viewDesktop(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, status)
}

func (m *Model) viewDesktop(height int) string {
	c := newCanvas(m.width, height)
	for _, f := range m.frames() {
		c.drawWindow(f.window, f.rect, f.active)
	}
	return c.String()
}

func (m *Model) viewCarousel(height int) string {
	w, ok := m.adapter.Current()
	if !ok {
		return newCanvas(m.width, height).String()
	}
	return renderCarousel(w, m.adapter.Index(), m.adapter.Count(), m.adapter.ShowChrome(), m.width, height)
}
