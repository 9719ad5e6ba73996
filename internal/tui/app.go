// internal/tui/app.go
//
// This is the main TUI for atrium. It uses bubbletea, which follows The Elm
// Architecture: the App model holds all state, Update reacts to messages,
// View renders to a string.
//
// Three independent behaviors hang off the scroll position, wired once at
// startup:
//
//  1. reveal.Animator marks skill cards and timeline items as they first
//     become visible.
//  2. navspy.Spy highlights the nav link of the section crossing a band near
//     the middle of the viewport.
//  3. formView drives the contact form's submit state machine.

package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"atrium/internal/config"
	"atrium/internal/form"
	"atrium/internal/logbook"
	"atrium/internal/navspy"
	"atrium/internal/page"
	"atrium/internal/reveal"
)

type focusArea int

const (
	focusPage focusArea = iota
	focusForm
)

const (
	headerHeight = 3 // title, nav bar, spacer
	footerHeight = 2 // spacer, status line
	logPanelTail = 4
)

type contentReloadMsg struct{}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithSubmitter overrides the submitter built from the configured endpoint.
func WithSubmitter(s *form.Submitter) AppOption {
	return func(a *App) {
		if s != nil {
			a.submitter = s
		}
	}
}

// WithoutContentWatch disables the live-reload watcher.
func WithoutContentWatch() AppOption {
	return func(a *App) {
		a.watchContent = false
	}
}

// App is the main application model.
type App struct {
	config    *config.Config
	logbook   *logbook.Logbook
	pg        *page.Page
	submitter *form.Submitter
	accent    string

	animator *reveal.Animator
	spy      *navspy.Spy
	formView *formView

	watchContent bool
	watcher      *page.Watcher

	viewport viewport.Model
	layout   docLayout
	focus    focusArea
	showLog  bool

	width  int
	height int
	ready  bool

	statusMsg string
}

// NewApp loads the project's config and page content and wires the three
// scroll behaviors. The contact form component is attached only when the
// page declares a form; otherwise it stays inert.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	pg, err := page.Load(cfg.ContentPath())
	if err != nil {
		return nil, err
	}
	logPath := filepath.Join(cfg.LogsDir(), "atrium.log")
	lb, err := logbook.New(logPath)
	if err != nil {
		return nil, err
	}

	a := &App{
		config:       cfg,
		logbook:      lb,
		pg:           pg,
		accent:       cfg.Accent(),
		watchContent: true,
		statusMsg:    "j/k scroll · 1-9 jump · f form · q quit",
	}
	a.submitter = form.NewSubmitter(formEndpoint(cfg, pg))
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	a.animator = reveal.New(func(id string) {
		a.logbook.Info("Revealed %s", id)
	})
	a.spy = navspy.New(navTargets(pg), func(active string) {
		if active != "" {
			a.logbook.Info("Nav · %s active", active)
		}
	})
	a.attachForm()
	a.viewport = viewport.New(0, 0)
	a.logbook.Info("Page loaded · %d section(s), %d nav link(s)", len(pg.Sections), len(pg.Nav))

	if a.watchContent {
		watcher, err := page.NewWatcher(cfg.ContentPath())
		if err != nil {
			a.logbook.Warn("Content watch unavailable: %v", err)
		} else {
			a.watcher = watcher
			watcher.Start(context.Background())
		}
	}
	return a, nil
}

// formEndpoint picks the page's own endpoint override or falls back to the
// configured one.
func formEndpoint(cfg *config.Config, pg *page.Page) string {
	if f, _, ok := pg.ContactForm(); ok && strings.TrimSpace(f.Endpoint) != "" {
		return strings.TrimSpace(f.Endpoint)
	}
	return cfg.FormEndpoint()
}

func navTargets(pg *page.Page) []string {
	targets := make([]string, 0, len(pg.Nav))
	for _, link := range pg.Nav {
		targets = append(targets, link.Target)
	}
	return targets
}

// attachForm binds the form component when the page declares one. Missing
// form means no component: no key routing, no submission, no error.
func (a *App) attachForm() {
	f, sectionID, ok := a.pg.ContactForm()
	if !ok {
		a.formView = nil
		return
	}
	a.formView = newFormView(f, sectionID, a.submitter, a.accent)
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.waitForReload()
}

func (a *App) waitForReload() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	reloads := a.watcher.Reloads()
	return func() tea.Msg {
		if _, ok := <-reloads; !ok {
			return nil
		}
		return contentReloadMsg{}
	}
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.viewport.Width = msg.Width
		a.viewport.Height = max(1, msg.Height-headerHeight-footerHeight-a.logPanelHeight())
		a.relayout()
		a.runObserverPass()
		a.ready = true
		return a, nil

	case contentReloadMsg:
		a.reloadContent()
		return a, a.waitForReload()

	case formSubmitResultMsg:
		if a.formView == nil {
			return a, nil
		}
		cmd := a.formView.handleResult(msg)
		if msg.err != nil {
			a.logbook.Warn("Submission failed: %v", msg.err)
		} else {
			a.logbook.Info("Submission delivered")
		}
		a.relayout()
		return a, cmd

	case formResetMsg:
		if a.formView == nil {
			return a, nil
		}
		a.formView.handleReset(msg)
		a.relayout()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.focus == focusForm && a.formView != nil {
		if cmd := a.formView.update(msg); cmd != nil {
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.shutdown()
		return a, tea.Quit
	}
	if a.focus == focusForm && a.formView != nil {
		return a.handleFormKey(msg)
	}
	return a.handlePageKey(msg)
}

func (a *App) handlePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc":
		a.shutdown()
		return a, tea.Quit
	case "o":
		a.showLog = !a.showLog
		a.resizeViewport()
		return a, nil
	case "f", "enter":
		if a.formView == nil {
			return a, nil
		}
		a.scrollToSection(a.formView.sectionID)
		a.focus = focusForm
		cmd := a.formView.focusFirst()
		a.relayout()
		a.runObserverPass()
		return a, cmd
	case "g", "home":
		a.viewport.GotoTop()
		a.afterScroll()
		return a, nil
	case "G", "end":
		a.viewport.GotoBottom()
		a.afterScroll()
		return a, nil
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		idx := int(key[0] - '1')
		if idx < len(a.pg.Nav) {
			a.scrollToSection(a.pg.Nav[idx].Target)
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.viewport, cmd = a.viewport.Update(msg)
	a.afterScroll()
	return a, cmd
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.focus = focusPage
		a.formView.blurAll()
		a.relayout()
		return a, nil
	case "tab", "down":
		if msg.String() == "down" && a.formView.focusedMultiline() {
			break
		}
		cmd := a.formView.cycleFocus(1)
		a.relayout()
		return a, cmd
	case "shift+tab", "up":
		if msg.String() == "up" && a.formView.focusedMultiline() {
			break
		}
		cmd := a.formView.cycleFocus(-1)
		a.relayout()
		return a, cmd
	case "enter":
		if a.formView.focus == a.formView.buttonIndex() {
			cmd := a.formView.submit()
			a.relayout()
			return a, cmd
		}
	case "ctrl+s":
		cmd := a.formView.submit()
		a.relayout()
		return a, cmd
	}
	cmd := a.formView.update(msg)
	a.relayout()
	return a, cmd
}

func (a *App) scrollToSection(id string) {
	for _, sec := range a.layout.sections {
		if sec.id == id {
			a.viewport.SetYOffset(sec.top)
			a.afterScroll()
			return
		}
	}
}

func (a *App) afterScroll() {
	a.runObserverPass()
	a.relayout()
}

// runObserverPass feeds the current scroll window to both observers.
func (a *App) runObserverPass() {
	if a.viewport.Height <= 0 {
		return
	}
	offset := a.viewport.YOffset
	height := a.viewport.Height
	a.animator.Pass(offset, height)
	a.spy.Pass(offset, height)
}

// relayout re-renders the document and re-registers every extent with the
// observers. Reveal and spy state live in the components, so a relayout
// never resurrects finished animations.
func (a *App) relayout() {
	if a.width <= 0 {
		return
	}
	content, lay := a.renderDocument(a.viewport.Width - 2)
	a.layout = lay
	a.viewport.SetContent(content)
	for _, e := range lay.reveals {
		a.animator.Watch(e.id, e.top, e.height)
	}
	for _, e := range lay.sections {
		a.spy.Watch(e.id, e.top, e.height)
	}
}

// reloadContent swaps in the edited page. Reveal state is keyed by block id,
// so blocks that survive the edit keep their revealed look.
func (a *App) reloadContent() {
	pg, err := page.Load(a.config.ContentPath())
	if err != nil {
		a.statusMsg = fmt.Sprintf("Reload failed: %v", err)
		a.logbook.Error("Content reload failed: %v", err)
		return
	}
	a.pg = pg
	a.submitter = form.NewSubmitter(formEndpoint(a.config, pg))
	a.spy = navspy.New(navTargets(pg), nil)
	a.attachForm()
	if a.focus == focusForm && a.formView == nil {
		a.focus = focusPage
	}
	a.relayout()
	a.runObserverPass()
	a.statusMsg = "Content reloaded"
	a.logbook.Info("Content reloaded · %d section(s)", len(pg.Sections))
}

func (a *App) shutdown() {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	a.logbook.Info("Session closed")
	_ = a.logbook.Close()
}

func (a *App) logPanelHeight() int {
	if !a.showLog {
		return 0
	}
	return logPanelTail + 2
}

func (a *App) resizeViewport() {
	a.viewport.Height = max(1, a.height-headerHeight-footerHeight-a.logPanelHeight())
	a.relayout()
	a.runObserverPass()
}

// View renders the current state to a string.
func (a *App) View() string {
	if !a.ready {
		return "Loading page..."
	}
	sections := []string{
		a.renderTitleBar(),
		a.renderNavBar(),
		"",
		a.viewport.View(),
	}
	if a.showLog {
		sections = append(sections, a.renderLogPanel())
	}
	sections = append(sections, "", a.renderStatusLine())
	return strings.Join(sections, "\n")
}

func (a *App) renderTitleBar() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(a.accent)).
		Render(a.pg.Title)
	if a.pg.Tagline == "" {
		return title
	}
	tagline := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(a.pg.Tagline)
	return title + "  " + tagline
}

// renderNavBar draws the nav links; the active one carries the accent color.
func (a *App) renderNavBar() string {
	if len(a.pg.Nav) == 0 {
		return ""
	}
	active := a.spy.Active()
	idle := lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	hot := lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color(a.accent))
	parts := make([]string, 0, len(a.pg.Nav))
	for i, link := range a.pg.Nav {
		label := fmt.Sprintf("%d %s", i+1, link.Label)
		if link.Target == active {
			parts = append(parts, hot.Render(label))
		} else {
			parts = append(parts, idle.Render(label))
		}
	}
	return strings.Join(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("#444444")).Render("  ·  "))
}

func (a *App) renderLogPanel() string {
	lines, _ := a.logbook.Tail(logPanelTail)
	if len(lines) == 0 {
		lines = []string{"(log empty)"}
	}
	body := lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA")).Render(strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444444")).
		Padding(0, 1).
		Render(body)
}

func (a *App) renderStatusLine() string {
	percent := int(a.viewport.ScrollPercent() * 100)
	left := fmt.Sprintf("%d%% · revealed %d", percent, a.animator.RevealedCount())
	if a.focus == focusForm {
		left = "form · tab next field · enter on button sends · esc back"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(left + "   " + a.statusMsg)
}
