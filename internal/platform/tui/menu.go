package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mayhem/internal/stage"
	"github.com/vovakirdan/mayhem/internal/storage"
)

// MenuItem is one course in the picker.
type MenuItem struct {
	Map  *stage.Map
	Par  string
	Best int // 0 when never finished
}

// MenuModel is the Bubble Tea model for the course picker.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	selected       *stage.Map
	openScoreboard bool
}

// NewMenuModel lists maps with the player's best strokes from store.
// store may be nil.
func NewMenuModel(maps []*stage.Map, store *storage.Store, width, height int) MenuModel {
	var stats map[string]*storage.StageStats
	if store != nil {
		stats, _ = store.AllStageStats()
	}

	items := make([]MenuItem, len(maps))
	for i, m := range maps {
		items[i] = MenuItem{Map: m, Par: m.Metadata["par"]}
		if st, ok := stats[m.ID]; ok {
			items[i].Best = st.BestStrokes
		}
	}

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			m.selected = m.items[m.cursor].Map
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  T R I C K   S H O T  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a course", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No courses found.", m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		var extra []string
		if item.Par != "" {
			extra = append(extra, "par "+item.Par)
		}
		if item.Best > 0 {
			extra = append(extra, fmt.Sprintf("best %d", item.Best))
		}
		line := cursor + item.Map.Name
		if len(extra) > 0 {
			line += "  (" + strings.Join(extra, ", ") + ")"
		}
		b.WriteString(centerText(style.Render(line), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen course, or nil if none was chosen.
func (m MenuModel) Selected() *stage.Map {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
