package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mayhem/internal/core"
	"github.com/vovakirdan/mayhem/internal/games/trickshot"
	"github.com/vovakirdan/mayhem/internal/storage"
)

// PlayModel is the Bubble Tea model for playing one course.
type PlayModel struct {
	game       *trickshot.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keys       PlayKeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	dragFrom   *[2]int // cell where the left button went down
	player     string
	difficulty string
	quitting   bool
	backToMenu bool
	standalone bool // no menu to go back to; back quits
	saved      bool // Whether the finished attempt has been stored
}

// NewPlayModel creates a model for game. store may be nil.
func NewPlayModel(game *trickshot.Game, store *storage.Store, cfg core.RuntimeConfig, player, difficulty string) PlayModel {
	m := PlayModel{
		game:       game,
		store:      store,
		config:     cfg,
		keys:       DefaultPlayKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		player:     player,
		difficulty: difficulty,
	}
	m.screen = core.NewScreen(cfg.ScreenW, m.screenRows(cfg.ScreenH))
	return m
}

// screenRows keeps the last terminal row for the key help.
func (m PlayModel) screenRows(h int) int {
	return max(h-1, 1)
}

// Init starts the game and the tick loop.
func (m PlayModel) Init() tea.Cmd {
	m.game.Reset(core.RuntimeConfig{
		ScreenW:  m.screen.Width(),
		ScreenH:  m.screen.Height(),
		TickRate: m.config.TickRate,
	})
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(msg.Width, m.screenRows(msg.Height))
		// The ball keeps its place; only the view moves.
		m.game.Resize(m.screen.Width(), m.screen.Height())
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveAttempt(false)
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.saveAttempt(false)
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleMouse turns a left-button drag into a slingshot shot.
func (m PlayModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.dragFrom = &[2]int{msg.X, msg.Y}
	case tea.MouseActionRelease:
		if m.dragFrom != nil {
			m.inputFrame.Drag = &core.Drag{
				FromX: m.dragFrom[0], FromY: m.dragFrom[1],
				ToX: msg.X, ToY: msg.Y,
			}
			m.dragFrom = nil
		}
	}
	return m, nil
}

// handleTick runs one platform frame.
func (m PlayModel) handleTick() (tea.Model, tea.Cmd) {
	wasComplete := m.gameState.Complete
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.Complete && !wasComplete {
		m.saveAttempt(true)
	}
	if !m.gameState.Complete && wasComplete {
		// Played again.
		m.saved = false
	}
	if m.gameState.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// saveAttempt stores the current attempt once. Abandoned attempts are kept
// only if at least one shot was taken.
func (m *PlayModel) saveAttempt(complete bool) {
	if m.store == nil || m.saved {
		return
	}
	if !complete && len(m.game.Shots()) == 0 {
		return
	}
	r := m.game.Replay()
	data, err := r.Encode()
	if err != nil {
		data = nil
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveAttempt(storage.Attempt{
		ID:          r.ID,
		StageID:     r.StageID,
		Fingerprint: r.Fingerprint,
		Player:      m.player,
		Difficulty:  m.difficulty,
		Strokes:     m.game.State().Strokes,
		Ticks:       r.Ticks,
		Complete:    r.Complete,
		Replay:      data,
	})
	m.saved = true
}

// saveScreenshot saves the current screen to a file.
func (m *PlayModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".mayhem", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.Map().ID, timestamp)
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + centerText(m.help.View(m.keys), m.config.ScreenW)
}

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the course list.
func (m PlayModel) BackToMenu() bool {
	return m.backToMenu
}

// Close releases the game.
func (m PlayModel) Close() {
	m.game.Close()
}

// State returns the last game state seen by the model.
func (m PlayModel) State() core.GameState {
	return m.gameState
}

// Run plays one course in the local terminal.
func Run(game *trickshot.Game, store *storage.Store, cfg core.RuntimeConfig, difficulty string) error {
	model := NewPlayModel(game, store, cfg, os.Getenv("USER"), difficulty)
	model.standalone = true
	model.keys.Back.SetHelp("esc/b", "quit")

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
