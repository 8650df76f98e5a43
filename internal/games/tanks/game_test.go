package tanks

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/arena"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/replay"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 120, ScreenH: 40, TickRate: 60, Seed: 42}
}

func press(g *Game, player core.PlayerID, actions ...core.Action) core.StepResult {
	m := core.NewMultiInputFrame()
	for _, a := range actions {
		m.SetAction(player, a)
	}
	return g.StepMulti(m)
}

func idle(g *Game) core.StepResult {
	return g.StepMulti(core.NewMultiInputFrame())
}

// startMatch walks through the welcome and mode screens with Enter.
func startMatch(t *testing.T, g *Game) {
	t.Helper()
	press(g, core.Player1, core.ActionConfirm)
	press(g, core.Player2, core.ActionConfirm)
	if g.Simulation().State() != arena.StatePlaying {
		t.Fatalf("State() = %v, expected playing", g.Simulation().State())
	}
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants {
		g, err := registry.Create(v.ID)
		if err != nil {
			t.Fatalf("registry.Create(%q) failed: %v", v.ID, err)
		}
		if _, ok := g.(registry.Versus); !ok {
			t.Errorf("%s should implement registry.Versus", v.ID)
		}
		if g.Title() != v.Title {
			t.Errorf("Title() = %q, expected %q", g.Title(), v.Title)
		}
	}
}

func TestArsenalStartsWithCharges(t *testing.T) {
	tests := []struct {
		variant  Variant
		expected int
	}{
		{Variants[0], 0},
		{Variants[1], 5},
	}
	for _, tc := range tests {
		g := New(tc.variant)
		g.Reset(testRuntime())
		startMatch(t, g)
		for _, tank := range g.Simulation().Registry().Tanks {
			if tank.Charges != tc.expected {
				t.Errorf("%s: Charges = %d, expected %d", tc.variant.ID, tank.Charges, tc.expected)
			}
		}
	}
}

func TestEnterAssignsMatchID(t *testing.T) {
	g := New(Variants[0])
	g.Reset(testRuntime())
	if g.MatchID() != "" {
		t.Error("MatchID() should be empty before play")
	}
	startMatch(t, g)
	if g.MatchID() == "" {
		t.Error("MatchID() should be set once the match starts")
	}
}

func TestKeyHoldWindow(t *testing.T) {
	g := New(Variants[0])
	g.SetHoldTicks(4)
	g.Reset(testRuntime())
	startMatch(t, g)
	blue := g.Simulation().Registry().Tank(arena.Blue)

	press(g, core.Player1, core.ActionUp)
	for i := 0; i < 5; i++ {
		idle(g)
	}
	if blue.Box.Y != 442 {
		t.Errorf("Y = %v, expected 442 after a 4 tick hold", blue.Box.Y)
	}

	red := g.Simulation().Registry().Tank(arena.Red)
	press(g, core.Player2, core.ActionLeft)
	if red.Box.X != 818 || red.Facing != arena.FacingLeft {
		t.Errorf("red = (%v, %v), expected x 818 facing left", red.Box.X, red.Facing)
	}
}

func TestFireActionsPerPlayer(t *testing.T) {
	g := New(Variants[1])
	g.Reset(testRuntime())
	startMatch(t, g)
	reg := g.Simulation().Registry()

	press(g, core.Player1, core.ActionFire)
	press(g, core.Player2, core.ActionFireExplosive)

	if reg.Tank(arena.Blue).Ammo != 4 {
		t.Errorf("blue Ammo = %d, expected 4", reg.Tank(arena.Blue).Ammo)
	}
	if reg.Tank(arena.Red).Charges != 4 {
		t.Errorf("red Charges = %d, expected 4", reg.Tank(arena.Red).Charges)
	}
}

func TestClickButtons(t *testing.T) {
	g := New(Variants[0])
	g.Reset(testRuntime())
	sim := g.Simulation()

	click := func(b arena.Button) {
		x, y := g.view.cell(sim.Button(b).Center())
		m := core.NewMultiInputFrame()
		m.Click = &core.Point{X: x, Y: y}
		g.StepMulti(m)
	}

	click(arena.ButtonStart)
	if sim.State() != arena.StateModeSelect {
		t.Fatalf("State() = %v, expected mode select", sim.State())
	}
	click(arena.ButtonTwoPlayer)
	if sim.State() != arena.StatePlaying {
		t.Fatalf("State() = %v, expected playing", sim.State())
	}

	m := core.NewMultiInputFrame()
	m.Click = &core.Point{X: 0, Y: 0}
	g.StepMulti(m)
	if sim.State() != arena.StatePlaying {
		t.Error("click on the HUD should be ignored")
	}
}

func TestPauseFreezesMatch(t *testing.T) {
	g := New(Variants[0])
	g.Reset(testRuntime())
	startMatch(t, g)
	sim := g.Simulation()

	res := press(g, core.Player2, core.ActionPause)
	if !res.State.Paused {
		t.Fatal("State.Paused = false, expected true")
	}
	ticks := sim.MatchTicks()
	press(g, core.Player1, core.ActionUp)
	if sim.MatchTicks() != ticks {
		t.Error("simulation advanced while paused")
	}

	res = press(g, core.Player1, core.ActionPause)
	if res.State.Paused {
		t.Error("second pause should resume")
	}
}

func TestWinnerStateAndResult(t *testing.T) {
	g := New(Variants[0])
	g.Reset(testRuntime())
	startMatch(t, g)
	reg := g.Simulation().Registry()
	red := reg.Tank(arena.Red)
	red.Health = 25
	reg.Bullets[0] = arena.Bullet{Box: red.Box.CenteredOn(8, 10), Speed: 2, Active: true, Owner: arena.Blue}

	res := idle(g)
	if !res.State.GameOver {
		t.Fatal("State.GameOver = false, expected true")
	}
	if res.State.Score != 100 {
		t.Errorf("State.Score = %d, expected 100", res.State.Score)
	}

	mr := g.MatchResult()
	if mr.Winner != "blue" || mr.BlueScore != 100 || mr.RedHealth != 0 || mr.BlueHealth != 100 {
		t.Errorf("MatchResult() = %+v", mr)
	}
	if mr.MatchID != g.MatchID() || mr.GameID != "tanks" || mr.Preset != "classic" || mr.Seed != 42 {
		t.Errorf("MatchResult() ids = %+v", mr)
	}

	press(g, core.Player1, core.ActionRestart)
	if g.Simulation().State() != arena.StatePlaying || g.MatchID() == mr.MatchID {
		t.Error("restart should begin a new match")
	}
}

func TestRenderScreens(t *testing.T) {
	g := New(Variants[0])
	g.Reset(testRuntime())
	screen := core.NewScreen(120, 40)

	g.Render(screen)
	if !strings.Contains(screen.String(), "Start") {
		t.Error("welcome screen should show the Start button")
	}

	startMatch(t, g)
	g.Render(screen)
	if !strings.HasPrefix(strings.TrimSpace(screen.Row(0)), "BLUE") {
		t.Errorf("HUD row = %q, expected blue status first", screen.Row(0))
	}
	if !strings.Contains(screen.String(), string(facingGlyphs[arena.FacingUp])) {
		t.Error("blue tank facing glyph missing")
	}
}

func TestResizeKeepsMatch(t *testing.T) {
	g := New(Variants[0])
	g.Reset(testRuntime())
	startMatch(t, g)
	sim := g.Simulation()

	g.Resize(80, 24)
	if g.Simulation() != sim || sim.State() != arena.StatePlaying {
		t.Error("Resize should keep the running match")
	}
	if g.view.w != 80 || g.view.h != 22 {
		t.Errorf("viewport = %dx%d, expected 80x22", g.view.w, g.view.h)
	}
}

func TestRecordedSessionReplays(t *testing.T) {
	g := New(Variants[0])
	rec := replay.NewRecorder(g.ID(), g.Preset())
	g.SetRecorder(rec)
	g.Reset(testRuntime())
	startMatch(t, g)

	for i := 0; i < 300; i++ {
		switch i % 7 {
		case 0:
			press(g, core.Player1, core.ActionRight, core.ActionFire)
		case 3:
			press(g, core.Player2, core.ActionDown, core.ActionFire)
		default:
			idle(g)
		}
	}

	final := rec.Finish(g.Simulation().Hash())
	if _, err := replay.Verify(final); err != nil {
		t.Errorf("Verify() failed: %v", err)
	}
}
