package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mayhem/internal/core"
	"github.com/vovakirdan/mayhem/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewPlay
	viewScores
)

// SessionModel manages the full session flow: course picker, play and the
// scoreboard. It is the top-level model for local and SSH play.
type SessionModel struct {
	course   *Course
	store    *storage.Store
	config   core.RuntimeConfig
	player   string
	logger   *log.Logger
	view     sessionView
	cleared  int // courses finished this session, drives difficulty
	menu     MenuModel
	play     *PlayModel
	scores   *ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model. store and logger may be nil.
func NewSessionModel(course *Course, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) SessionModel {
	return SessionModel{
		course: course,
		store:  store,
		config: cfg,
		player: player,
		logger: logger,
		menu:   NewMenuModel(course.Maps, store, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewPlay:
		return m.updatePlay(msg)
	case viewScores:
		return m.updateScores(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsScoreboard() {
		sb := NewScoreboardModel(m.store, m.course.Maps, m.course.Config.Physics.TimeStep, m.config.ScreenW, m.config.ScreenH)
		m.scores = &sb
		m.view = viewScores
		return m, sb.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		game, err := m.course.NewGame(selected, m.cleared)
		if err != nil {
			m.warn("cannot start course", "stage", selected.ID, "error", err)
			m.resetMenu()
			return m, nil
		}
		pm := NewPlayModel(game, m.store, m.config, m.player, string(m.course.Preset))
		m.play = &pm
		m.view = viewPlay
		return m, m.play.Init()
	}

	return m, cmd
}

func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	wasComplete := m.play.State().Complete
	newModel, cmd := m.play.Update(msg)
	if pm, ok := newModel.(PlayModel); ok {
		m.play = &pm
	}
	if m.play.State().Complete && !wasComplete {
		m.cleared++
	}

	if m.play.BackToMenu() {
		m.play.Close()
		m.play = nil
		m.resetMenu()
		return m, nil
	}

	if m.play.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scores.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scores = &sb
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.scores = nil
		m.resetMenu()
		return m, nil
	}
	return m, cmd
}

func (m *SessionModel) resetMenu() {
	m.menu = NewMenuModel(m.course.Maps, m.store, m.config.ScreenW, m.config.ScreenH)
	m.view = viewMenu
}

func (m SessionModel) warn(msg string, keyvals ...any) {
	if m.logger != nil {
		m.logger.Warn(msg, keyvals...)
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewPlay:
		return m.play.View()
	case viewScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Cleared returns how many courses were finished in this session.
func (m SessionModel) Cleared() int {
	return m.cleared
}

// RunSession runs the picker-play-scoreboard loop in the local terminal.
func RunSession(course *Course, store *storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	model := NewSessionModel(course, store, cfg, player, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
