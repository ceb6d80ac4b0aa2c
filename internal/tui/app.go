package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LISSConsulting/LISSTech.TabKit/internal/tabs"
	"github.com/LISSConsulting/LISSTech.TabKit/internal/tui/components"
	"github.com/LISSConsulting/LISSTech.TabKit/internal/tui/panels"
)

const (
	animFrames   = 6
	animInterval = 30 * time.Millisecond
)

// Options configures the viewer Model.
type Options struct {
	Controller *tabs.Controller[string]

	// Owner answers tab requests in controlled mode. With a nil Owner the
	// active tab only changes through the controller's options.
	Owner PageOwner

	AccentColor  string
	ProjectName  string
	WorkDir      string
	TabBarHidden bool

	// RenderTabBar replaces the built-in tab bar. Mouse clicks are only
	// hit-tested on the built-in bar.
	RenderTabBar func(props tabs.TabBarProps, width int) string

	Swipe     SwipeTracker
	Clipboard func(string) error // nil = system clipboard

	// OnRequest is told about every tab request and whether the controller
	// accepted it.
	OnRequest func(from, to int, accepted bool)

	// Reload rebuilds the tab list and content. Nil disables the reload key.
	Reload func() ([]tabs.Tab, tabs.Source[string], error)
}

// indicatorAnim slides the tab bar underline between two columns.
type indicatorAnim struct {
	from, to int
	frame    int
	running  bool
}

func (a indicatorAnim) x() int {
	return a.from + (a.to-a.from)*a.frame/animFrames
}

// Model is the root bubbletea model for the tab viewer.
type Model struct {
	ctrl         *tabs.Controller[string]
	owner        PageOwner
	renderTabBar func(tabs.TabBarProps, int) string
	clipboard    func(string) error
	onRequest    func(from, to int, accepted bool)
	reload       func() ([]tabs.Tab, tabs.Source[string], error)

	// Pane
	pane    components.PaneView
	paneFor int         // tab index whose content the pane shows; -1 = none
	offsets map[int]int // saved scroll offsets of mounted tabs
	swipe   SwipeTracker
	anim    indicatorAnim

	// Layout and focus
	keys   KeyMap
	layout Layout
	focus  FocusTarget
	theme  Theme
	width  int
	height int
	hidden bool

	status    string
	statusErr bool

	// Time
	startedAt time.Time
	now       time.Time

	// Identity
	projectName string
	workDir     string
}

// New creates the viewer Model around an existing controller.
func New(opts Options) Model {
	now := time.Now()
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.WriteAll
	}
	ctrl := opts.Controller
	layout := Calculate(80, 24, ctrl.Options().TabBarPosition, opts.TabBarHidden)
	paneW, paneH := innerDims(layout.Pane)

	m := Model{
		ctrl:         ctrl,
		owner:        opts.Owner,
		renderTabBar: opts.RenderTabBar,
		clipboard:    clip,
		onRequest:    opts.OnRequest,
		reload:       opts.Reload,
		pane:         components.NewPaneView(paneW, paneH),
		paneFor:      -1,
		offsets:      make(map[int]int),
		swipe:        opts.Swipe,
		keys:         DefaultKeyMap(),
		layout:       layout,
		focus:        FocusTabBar,
		theme:        NewTheme(opts.AccentColor),
		width:        80,
		height:       24,
		hidden:       opts.TabBarHidden,
		startedAt:    now,
		now:          now,
		projectName:  opts.ProjectName,
		workDir:      opts.WorkDir,
	}
	if m.hidden {
		m.focus = FocusPane
	}
	return m.syncPane()
}

// Controller returns the hosted controller.
func (m Model) Controller() *tabs.Controller[string] { return m.ctrl }

// Init returns the initial commands: clock ticker, plus a flush if a
// transition was queued before the program started.
func (m Model) Init() tea.Cmd {
	if _, ok := m.ctrl.Pending(); ok {
		return tea.Batch(tickCmd(), flushCmd)
	}
	return tickCmd()
}

// tickCmd schedules the next one-second clock tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// flushCmd delivers flushMsg on the next turn of the event loop.
func flushCmd() tea.Msg {
	return flushMsg{}
}

func animCmd() tea.Cmd {
	return tea.Tick(animInterval, func(time.Time) tea.Msg {
		return animFrameMsg{}
	})
}

// Update handles all incoming bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case flushMsg:
		return m.handleFlush()
	case pageDecidedMsg:
		return m.handlePageDecided(msg)
	case animFrameMsg:
		return m.handleAnimFrame()
	case reloadedMsg:
		return m.handleReloaded(msg)
	case copiedMsg:
		if msg.err != nil {
			m.status, m.statusErr = "copy failed: "+msg.err.Error(), true
		} else {
			m.status, m.statusErr = fmt.Sprintf("copied %q", msg.title), false
		}
		return m, nil
	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.layout = Calculate(msg.Width, msg.Height, m.ctrl.Options().TabBarPosition, m.hidden)
	if !m.layout.TooSmall {
		m.pane = m.pane.SetSize(innerDims(m.layout.Pane))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.FocusNext):
		if !m.hidden {
			m.focus = m.focus.Next()
		}
		return m, nil
	case key.Matches(msg, m.keys.FocusPrev):
		if !m.hidden {
			m.focus = m.focus.Prev()
		}
		return m, nil
	case key.Matches(msg, m.keys.Next):
		return m.step(1)
	case key.Matches(msg, m.keys.Prev):
		return m.step(-1)
	case key.Matches(msg, m.keys.Jump):
		return m.requestTab(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Copy):
		return m.copyPane()
	case key.Matches(msg, m.keys.Reload):
		return m.reloadTabs()
	}

	if m.focus == FocusTabBar {
		switch {
		case key.Matches(msg, m.keys.Left):
			return m.step(-1)
		case key.Matches(msg, m.keys.Right):
			return m.step(1)
		case key.Matches(msg, m.keys.First):
			return m.requestTab(0)
		case key.Matches(msg, m.keys.Last):
			return m.requestTab(len(m.ctrl.Tabs()) - 1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.pane, cmd = m.pane.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			break
		}
		if !m.hidden && m.renderTabBar == nil && m.layout.TabBar.Contains(msg.X, msg.Y) {
			from := m.ctrl.State().CurrentTab
			index, accepted, hit := m.tabBar().Click(msg.X-m.layout.TabBar.X, msg.Y-m.layout.TabBar.Y)
			if !hit {
				return m, nil
			}
			m.focus = FocusTabBar
			return m.afterRequest(from, index, accepted)
		}
		if m.layout.Pane.Contains(msg.X, msg.Y) {
			m.focus = FocusPane
			m.swipe = m.swipe.Begin(msg.X, msg.Y)
		}
		return m, nil

	case tea.MouseActionRelease:
		if m.swipe.Active() {
			w, h := innerDims(m.layout.Pane)
			var step int
			m.swipe, step = m.swipe.End(msg.X, msg.Y, w, h)
			if step != 0 {
				return m.step(step)
			}
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.swipe.Active() && !m.layout.Pane.Contains(msg.X, msg.Y) {
			m.swipe = m.swipe.Cancel()
		}
		return m, nil
	}

	// Wheel events scroll the pane.
	var cmd tea.Cmd
	if m.layout.Pane.Contains(msg.X, msg.Y) {
		m.pane, cmd = m.pane.Update(msg)
	}
	return m, cmd
}

// target is the tab the controller is heading to.
func (m Model) target() int {
	if idx, ok := m.ctrl.Pending(); ok {
		return idx
	}
	return m.ctrl.State().CurrentTab
}

// step requests the tab delta positions away from the target tab.
func (m Model) step(delta int) (tea.Model, tea.Cmd) {
	return m.requestTab(m.target() + delta)
}

func (m Model) requestTab(index int) (tea.Model, tea.Cmd) {
	from := m.ctrl.State().CurrentTab
	accepted := m.ctrl.GoToTab(index, false)
	return m.afterRequest(from, index, accepted)
}

// afterRequest schedules the flush of an accepted request, or hands a
// declined in-range request to the owner in controlled mode.
func (m Model) afterRequest(from, index int, accepted bool) (tea.Model, tea.Cmd) {
	if m.onRequest != nil {
		m.onRequest(from, index, accepted)
	}
	if accepted {
		return m, flushCmd
	}
	list := m.ctrl.Tabs()
	if !m.ctrl.Controlled() || m.owner == nil || index < 0 || index >= len(list) {
		return m, nil
	}
	owner, tab := m.owner, list[index]
	return m, func() tea.Msg {
		return pageDecidedMsg{page: owner.RequestPage(tab, index)}
	}
}

func (m Model) handlePageDecided(msg pageDecidedMsg) (tea.Model, tea.Cmd) {
	if !msg.page.IsSet() {
		return m, nil
	}
	opts := m.ctrl.Options()
	opts.Page = msg.page
	m.ctrl.SetOptions(opts)
	if _, ok := m.ctrl.Pending(); ok {
		return m, flushCmd
	}
	return m, nil
}

func (m Model) handleFlush() (tea.Model, tea.Cmd) {
	prevBar := m.tabBar()
	prevSeg, hadPrev := prevBar.ActiveSegment()
	prevStart, _ := prevBar.Page()
	prevX := prevSeg.X
	if m.anim.running {
		prevX = m.anim.x()
	}

	if !m.ctrl.Flush() {
		return m, nil
	}
	m.status, m.statusErr = "", false
	m = m.syncPane()
	m.anim = indicatorAnim{}

	if !m.ctrl.Options().Animated || !hadPrev || m.hidden || m.layout.Vertical || m.renderTabBar != nil {
		return m, nil
	}
	bar := m.tabBar()
	seg, ok := bar.ActiveSegment()
	start, _ := bar.Page()
	if !ok || start != prevStart || seg.X == prevX {
		return m, nil
	}
	m.anim = indicatorAnim{from: prevX, to: seg.X, running: true}
	return m, animCmd()
}

func (m Model) handleAnimFrame() (tea.Model, tea.Cmd) {
	if !m.anim.running {
		return m, nil
	}
	m.anim.frame++
	if m.anim.frame >= animFrames {
		m.anim = indicatorAnim{}
		return m, nil
	}
	return m, animCmd()
}

// syncPane points the pane at the active tab, restoring its scroll offset
// if it stayed mounted, and forgets offsets of unmounted tabs.
func (m Model) syncPane() Model {
	idx := m.ctrl.State().CurrentTab
	if m.paneFor >= 0 {
		m.offsets[m.paneFor] = m.pane.YOffset()
	}
	for i := range m.offsets {
		if !m.ctrl.ShouldMount(i) {
			delete(m.offsets, i)
		}
	}
	m.pane = m.pane.SetContent(m.paneContent(idx)).SetYOffset(m.offsets[idx])
	m.paneFor = idx
	return m
}

func (m Model) paneContent(idx int) string {
	if len(m.ctrl.Tabs()) == 0 {
		return placeholderStyle.Render("No tabs configured.")
	}
	content, ok := m.ctrl.Pane(idx)
	if !ok {
		return placeholderStyle.Render("No content for this tab.")
	}
	return content
}

func (m Model) copyPane() (tea.Model, tea.Cmd) {
	idx := m.ctrl.State().CurrentTab
	content, ok := m.ctrl.Pane(idx)
	if !ok {
		return m, nil
	}
	title := components.Label(m.ctrl.Tabs()[idx], idx)
	clip := m.clipboard
	return m, func() tea.Msg {
		return copiedMsg{title: title, err: clip(content)}
	}
}

func (m Model) reloadTabs() (tea.Model, tea.Cmd) {
	if m.reload == nil {
		return m, nil
	}
	reload := m.reload
	return m, func() tea.Msg {
		list, src, err := reload()
		return reloadedMsg{tabs: list, content: src, err: err}
	}
}

// handleReloaded swaps in the rebuilt tab list and content. Scroll
// offsets belong to the old panes and are dropped.
func (m Model) handleReloaded(msg reloadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status, m.statusErr = "reload failed: "+msg.err.Error(), true
		return m, nil
	}
	opts := m.ctrl.Options()
	opts.Tabs = msg.tabs
	m.ctrl.SetOptions(opts)
	m.ctrl.SetContent(msg.content)

	m.offsets = make(map[int]int)
	m.paneFor = -1
	m = m.syncPane()
	m.status, m.statusErr = fmt.Sprintf("reloaded %d tabs", len(msg.tabs)), false
	if _, ok := m.ctrl.Pending(); ok {
		return m, flushCmd
	}
	return m, nil
}

// tabBar builds the tab bar for the current state and layout.
func (m Model) tabBar() components.TabBar {
	props := m.ctrl.TabBarProps()
	props.Style = m.theme.TabBarStyle(props.Style)
	bar := components.NewTabBar(props, m.layout.TabBar.Width)
	if m.layout.Vertical {
		bar = bar.SetVertical(true, m.layout.TabBar.Height)
	}
	if m.anim.running {
		bar = bar.WithIndicator(m.anim.x())
	}
	return bar
}

// View renders the header, tab bar, pane and footer.
func (m Model) View() string {
	if m.layout.TooSmall {
		msg := fmt.Sprintf("Terminal too small (%dx%d).\nPlease resize to at least %dx%d.", m.width, m.height, MinWidth, MinHeight)
		return lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Render(msg)
	}

	st := m.ctrl.State()
	list := m.ctrl.Tabs()
	title := ""
	if st.CurrentTab < len(list) {
		title = components.Label(list[st.CurrentTab], st.CurrentTab)
	}
	_, pending := m.ctrl.Pending()

	header := panels.RenderHeader(panels.HeaderProps{
		ProjectName: m.projectName,
		WorkDir:     m.workDir,
		TabTitle:    title,
		TabIndex:    st.CurrentTab,
		TabCount:    len(list),
		Controlled:  m.ctrl.Controlled(),
		Pending:     pending,
		Mounted:     len(m.ctrl.Mounted()),
		Cached:      m.ctrl.Cached(),
		Elapsed:     m.now.Sub(m.startedAt),
		Clock:       m.now,
	}, m.layout.Header.Width, m.theme.AccentHeaderStyle())

	footer := panels.RenderFooter(panels.FooterProps{
		Focus:     m.focus.String(),
		Hints:     m.keys.Hints(m.focus),
		Status:    m.status,
		StatusErr: m.statusErr,
		Scroll:    m.pane.ScrollPercent(),
	}, m.layout.Footer.Width)

	paneW, paneH := innerDims(m.layout.Pane)
	pane := m.theme.PanelBorderStyle(m.focus == FocusPane).
		Width(paneW).Height(paneH).
		Render(m.pane.View())

	body := pane
	if !m.hidden {
		bar := m.renderBar()
		switch m.ctrl.Options().TabBarPosition {
		case tabs.PositionBottom:
			body = lipgloss.JoinVertical(lipgloss.Left, pane, bar)
		case tabs.PositionLeft:
			body = lipgloss.JoinHorizontal(lipgloss.Top, bar, pane)
		case tabs.PositionRight:
			body = lipgloss.JoinHorizontal(lipgloss.Top, pane, bar)
		default:
			body = lipgloss.JoinVertical(lipgloss.Left, bar, pane)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderBar renders the tab bar into exactly its layout rect.
func (m Model) renderBar() string {
	r := m.layout.TabBar
	var content string
	if m.renderTabBar != nil {
		props := m.ctrl.TabBarProps()
		props.Style = m.theme.TabBarStyle(props.Style)
		content = m.renderTabBar(props, r.Width)
	} else {
		content = m.tabBar().View()
	}
	return lipgloss.NewStyle().
		Width(r.Width).MaxWidth(r.Width).
		Height(r.Height).MaxHeight(r.Height).
		Render(content)
}
