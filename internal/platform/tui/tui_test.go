package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mayhem/internal/config"
	"github.com/vovakirdan/mayhem/internal/core"
	"github.com/vovakirdan/mayhem/internal/stage"
	"github.com/vovakirdan/mayhem/internal/storage"
)

func testCourse(t *testing.T) *Course {
	t.Helper()
	maps, err := stage.NewBuiltinLoader().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	return &Course{Maps: maps, Config: config.DefaultTrickshotConfig(), Preset: config.DifficultyNormal}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlayKeyMapActions(t *testing.T) {
	keys := DefaultPlayKeyMap()
	tests := []struct {
		key  string
		want core.Action
	}{
		{"a", core.ActionAimLeft},
		{"d", core.ActionAimRight},
		{"w", core.ActionPowerUp},
		{"s", core.ActionPowerDown},
		{" ", core.ActionShoot},
		{"enter", core.ActionConfirm},
		{"r", core.ActionRestart},
		{"q", core.ActionQuit},
		{"esc", core.ActionNone},
		{"x", core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.Action(keyMsg(tt.key)); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd")
	s.DrawTextColored(0, 1, "xyz", core.ColorGray)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xyz"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestCourseDifficultyTightensHole(t *testing.T) {
	c := testCourse(t)
	c.Config.Difficulty.Enabled = true

	fresh, err := c.NewGame(c.Maps[0], 0)
	if err != nil {
		t.Fatal(err)
	}
	veteran, err := c.NewGame(c.Maps[0], 10)
	if err != nil {
		t.Fatal(err)
	}
	if veteran.Stage().Params().CompletionThreshold >= fresh.Stage().Params().CompletionThreshold {
		t.Error("completion threshold should shrink as courses are cleared")
	}

	c.Preset = config.DifficultyFixed
	fixed, err := c.NewGame(c.Maps[0], 10)
	if err != nil {
		t.Fatal(err)
	}
	if fixed.Stage().Params() != c.Config.Params() {
		t.Error("fixed preset should keep the configured params")
	}

	c.Preset = config.DifficultyNormal
	c.Config.Difficulty.Enabled = false
	off, err := c.NewGame(c.Maps[0], 10)
	if err != nil {
		t.Fatal(err)
	}
	if off.Stage().Params() != c.Config.Params() {
		t.Error("disabled difficulty should keep the configured params")
	}
}

func TestSessionMenuToPlayAndBack(t *testing.T) {
	course := testCourse(t)
	cfg := core.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 60}
	var m tea.Model = NewSessionModel(course, nil, cfg, "tester", nil)

	m, _ = m.Update(keyMsg("down"))
	m, cmd := m.Update(keyMsg("enter"))
	s := m.(SessionModel)
	if s.view != viewPlay {
		t.Fatalf("view = %v, want play", s.view)
	}
	if cmd == nil {
		t.Error("starting play should schedule a tick")
	}
	if got := s.play.game.Map().ID; got != course.Maps[1].ID {
		t.Errorf("playing %s, want %s", got, course.Maps[1].ID)
	}
	if !strings.Contains(m.View(), course.Maps[1].Name) {
		t.Error("play view should show the course name")
	}

	m, _ = m.Update(TickMsg{})
	m, _ = m.Update(keyMsg("esc"))
	s = m.(SessionModel)
	if s.view != viewMenu || s.play != nil {
		t.Errorf("esc should return to the menu, view = %v", s.view)
	}
}

func TestSessionScoreboard(t *testing.T) {
	var m tea.Model = NewSessionModel(testCourse(t), nil, core.DefaultConfig(), "tester", nil)
	m, _ = m.Update(keyMsg("tab"))
	if m.(SessionModel).view != viewScores {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(m.View(), "No finished rounds") {
		t.Error("empty scoreboard should say so")
	}
	m, _ = m.Update(keyMsg("esc"))
	if m.(SessionModel).view != viewMenu {
		t.Error("esc should leave the scoreboard")
	}
}

func TestPlayModelSavesFinishedAttemptOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	course := testCourse(t)
	game, err := course.NewGame(course.Maps[0], 0)
	if err != nil {
		t.Fatal(err)
	}
	cfg := core.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 60}
	var m tea.Model = NewPlayModel(game, store, cfg, "tester", "normal")
	m.Init()

	// A straight shot down the fairway drops.
	game.Shoot(game.AimVector().Scale(430 / game.Power()))
	for i := 0; i < 2000 && !m.(PlayModel).State().Complete; i++ {
		m, _ = m.Update(TickMsg{})
	}
	if !m.(PlayModel).State().Complete {
		t.Fatal("ball never dropped")
	}
	m, _ = m.Update(TickMsg{})
	m, _ = m.Update(keyMsg("esc"))

	best, err := store.BestAttempts(course.Maps[0].ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(best) != 1 {
		t.Fatalf("saved %d attempts, want 1", len(best))
	}
	if best[0].Strokes != 1 || best[0].Player != "tester" || len(best[0].Replay) == 0 {
		t.Errorf("saved attempt = %+v", best[0])
	}
}
