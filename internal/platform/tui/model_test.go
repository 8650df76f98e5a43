package tui

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/arena"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

func newTestModel(t *testing.T, store *storage.Store, opts ...Option) (Model, *tanks.Game) {
	t.Helper()
	g := tanks.New(tanks.Variants[0])
	cfg := core.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 60, Seed: 1}
	return NewModel(g, store, cfg, opts...), g
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func tick() tea.Msg {
	return TickMsg(time.Time{})
}

func tickAt(t time.Time) tea.Msg {
	return TickMsg(t)
}

// soloGame is a single player game that ends on its first step.
type soloGame struct {
	state core.GameState
}

func (g *soloGame) ID() string { return "solo" }
func (g *soloGame) Title() string { return "Solo" }
func (g *soloGame) Reset(core.RuntimeConfig) { g.state = core.GameState{} }
func (g *soloGame) Render(*core.Screen) {}
func (g *soloGame) State() core.GameState { return g.state }
func (g *soloGame) Step(core.InputFrame) core.StepResult {
	g.state = core.GameState{Score: 42, GameOver: true}
	return core.StepResult{State: g.state}
}

func TestModelMenuKeysAndClick(t *testing.T) {
	m, g := newTestModel(t, nil)

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter}, tick())
	if g.Simulation().State() != arena.StateModeSelect {
		t.Fatalf("State() = %v, expected mode select", g.Simulation().State())
	}

	// Centre of the Two Players button on a 120x40 terminal.
	click := tea.MouseMsg{X: 60, Y: 17, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m = send(m, click, tick())
	if g.Simulation().State() != arena.StatePlaying {
		t.Fatalf("State() = %v, expected playing", g.Simulation().State())
	}
	if m.inputFrame.Click != nil {
		t.Error("click should be cleared after the tick")
	}
}

func TestModelRoutesBothPlayers(t *testing.T) {
	m, g := newTestModel(t, nil)
	g.Simulation().StartMatch()
	reg := g.Simulation().Registry()

	m = send(m, runeKey("d"), tea.KeyMsg{Type: tea.KeyLeft}, tick())
	if reg.Tank(arena.Blue).Box.X != 52 {
		t.Errorf("blue X = %v, expected 52", reg.Tank(arena.Blue).Box.X)
	}
	if reg.Tank(arena.Red).Box.X != 818 {
		t.Errorf("red X = %v, expected 818", reg.Tank(arena.Red).Box.X)
	}
	if !strings.Contains(m.View(), "BLUE") {
		t.Error("View() should contain the HUD")
	}
}

func TestModelResizeKeepsMatch(t *testing.T) {
	m, g := newTestModel(t, nil)
	g.Simulation().StartMatch()
	sim := g.Simulation()

	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if g.Simulation() != sim {
		t.Error("resize should not rebuild the simulation")
	}
	if m.screen.Width() != 80 || m.screen.Height() != 24 {
		t.Errorf("screen = %dx%d, expected 80x24", m.screen.Width(), m.screen.Height())
	}
}

func TestModelSavesMatchOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	m, g := newTestModel(t, store)
	g.Simulation().StartMatch()
	reg := g.Simulation().Registry()
	red := reg.Tank(arena.Red)
	red.Health = 25
	reg.Bullets[0] = arena.Bullet{Box: red.Box.CenteredOn(8, 10), Speed: 2, Active: true, Owner: arena.Blue}

	m = send(m, tick(), tick(), tick())
	if !m.GameState().GameOver {
		t.Fatal("GameOver = false, expected true")
	}

	matches, err := store.RecentMatches("tanks", 10)
	if err != nil {
		t.Fatalf("RecentMatches failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("saved %d matches, expected 1", len(matches))
	}
	if matches[0].Winner != "blue" || matches[0].BlueScore != 100 {
		t.Errorf("match = %+v, expected blue winning with 100", matches[0])
	}

	// Play again and win again: a second record.
	m = send(m, runeKey("r"), tick())
	if m.GameState().GameOver {
		t.Fatal("play again should leave the winner screen")
	}
	reg = g.Simulation().Registry()
	red = reg.Tank(arena.Red)
	red.Health = 25
	reg.Bullets[0] = arena.Bullet{Box: red.Box.CenteredOn(8, 10), Speed: 2, Active: true, Owner: arena.Blue}
	send(m, tick())

	if blue, _, _ := store.WinCounts("tanks"); blue != 2 {
		t.Errorf("blue wins = %d, expected 2", blue)
	}
}

func TestModelSavesSoloScore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	m := NewModel(&soloGame{}, store, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1},
		WithPlayer("alice"))
	send(m, tick(), tick())

	scores, err := store.TopScores("solo", 10)
	if err != nil {
		t.Fatalf("TopScores failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, expected 1", len(scores))
	}
	if scores[0].Player != "alice" || scores[0].Score != 42 {
		t.Errorf("score = %+v, expected alice with 42", scores[0])
	}
}

func TestModelTickUsesMeasuredDelta(t *testing.T) {
	tests := []struct {
		name     string
		gap      time.Duration
		expected int
	}{
		{"nominal gap", time.Second / 60, 4},
		{"half a second", 500 * time.Millisecond, 5},
		{"stall is capped", time.Minute, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, g := newTestModel(t, nil)
			g.Simulation().StartMatch()
			blue := g.Simulation().Registry().Tank(arena.Blue)

			start := time.Unix(1000, 0)
			m = send(m, runeKey("f"), tickAt(start))
			if blue.Ammo != 4 {
				t.Fatalf("Ammo after firing = %d, expected 4", blue.Ammo)
			}
			m = send(m, tickAt(start.Add(tc.gap)))
			if blue.Ammo != tc.expected {
				t.Errorf("Ammo = %d, expected %d", blue.Ammo, tc.expected)
			}
			if m.inputFrame.DT != 0 {
				t.Error("tick delta should be cleared after the tick")
			}
		})
	}
}

func TestModelQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, nil)
	next, cmd := m.Update(runeKey("q"))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit a standalone game")
	}

	m, _ = newTestModel(t, nil, WithEmbedded())
	next, _ = m.Update(runeKey("q"))
	if next.(Model).IsQuitting() || !next.(Model).BackToMenu() {
		t.Error("q should return to the menu when embedded")
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).IsQuitting() {
		t.Error("ctrl+c should always quit")
	}
}

func TestHostDoesNotLoadAutopilot(t *testing.T) {
	dirs := []string{".", filepath.Join("..", "..", "games", "tanks")}
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir(%s) failed: %v", dir, err)
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || filepath.Ext(name) != ".go" || strings.HasSuffix(name, "_test.go") {
				continue
			}
			f, err := parser.ParseFile(token.NewFileSet(), filepath.Join(dir, name), nil, parser.ImportsOnly)
			if err != nil {
				t.Fatalf("ParseFile(%s) failed: %v", name, err)
			}
			for _, imp := range f.Imports {
				if strings.HasSuffix(imp.Path.Value, `/autopilot"`) {
					t.Errorf("%s imports %s, expected interactive play without scripted drivers", name, imp.Path.Value)
				}
			}
		}
	}
}
