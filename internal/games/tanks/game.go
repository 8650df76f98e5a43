// Package tanks provides the two-player tank arena for the platform.
// The simulation itself lives in the arena sub-package; this package maps
// per-player actions onto arena input and draws the arena into a terminal
// screen buffer.
package tanks

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/arena"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// Variant is one registered flavour of the game.
type Variant struct {
	ID     string
	Title  string
	Preset config.Preset
}

// Variants lists the registered variants.
var Variants = []Variant{
	{ID: "tanks", Title: "Tanks", Preset: config.PresetClassic},
	{ID: "tanks_arsenal", Title: "Tanks: Arsenal", Preset: config.PresetArsenal},
}

func init() {
	for _, v := range Variants {
		v := v
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// DefaultHoldTicks is how long a key press keeps its direction held.
// Terminals report presses and auto-repeat but never releases.
const DefaultHoldTicks = 8

// InputRecorder receives every input fed to the simulation. Begin is called
// whenever a new simulation is built.
type InputRecorder interface {
	Begin(seed int64, cfg config.TanksConfig)
	Record(in arena.Input)
}

// Game implements registry.Versus for the tank arena.
type Game struct {
	variant  Variant
	preset   config.Preset
	base     config.TanksConfig
	cfg      config.TanksConfig
	sim      *arena.Simulation
	runtime  core.RuntimeConfig
	view     viewport
	logger   *log.Logger
	recorder InputRecorder

	holdTicks int
	hold      [2][4]int // remaining hold ticks per player: up, down, left, right
	paused    bool
	matchID   string
}

// New creates a game for a variant with the default config.
func New(v Variant) *Game {
	g := &Game{
		variant:   v,
		preset:    v.Preset,
		base:      config.DefaultTanksConfig(),
		logger:    log.New(io.Discard),
		holdTicks: DefaultHoldTicks,
	}
	g.rebuildConfig()
	return g
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Configure replaces the base config. The preset is applied on top of it.
// Takes effect on the next Reset.
func (g *Game) Configure(cfg config.TanksConfig) {
	g.base = cfg
	g.rebuildConfig()
}

// SetPreset overrides the variant's preset. Takes effect on the next Reset.
func (g *Game) SetPreset(p config.Preset) {
	g.preset = p
	g.rebuildConfig()
}

// Preset returns the active preset.
func (g *Game) Preset() config.Preset {
	return g.preset
}

func (g *Game) rebuildConfig() {
	g.cfg = g.base
	g.cfg.Obstacles = config.ObstacleLayout{
		Grass: append([]config.ObstacleSpec(nil), g.base.Obstacles.Grass...),
		Rock:  append([]config.ObstacleSpec(nil), g.base.Obstacles.Rock...),
	}
	config.ApplyPreset(&g.cfg, g.preset)
}

// SetLogger routes simulation debug events to l.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.logger = l
	}
}

// SetRecorder attaches an input recorder.
func (g *Game) SetRecorder(r InputRecorder) {
	g.recorder = r
}

// SetHoldTicks changes the key hold window. Values below 1 are ignored.
func (g *Game) SetHoldTicks(n int) {
	if n >= 1 {
		g.holdTicks = n
	}
}

// Simulation exposes the running simulation.
func (g *Game) Simulation() *arena.Simulation {
	return g.sim
}

// MatchID returns the identifier of the current match, empty before the
// first match starts.
func (g *Game) MatchID() string {
	return g.matchID
}

// Reset builds a fresh simulation at the welcome screen.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.sim = arena.NewSimulation(g.cfg,
		arena.WithSeed(rc.Seed),
		arena.WithLogger(g.logger),
	)
	g.view = newViewport(rc.ScreenW, rc.ScreenH, g.cfg.Arena)
	g.hold = [2][4]int{}
	g.paused = false
	g.matchID = ""
	if g.recorder != nil {
		g.recorder.Begin(rc.Seed, g.cfg)
	}
	g.logger.Debug("tanks reset", "variant", g.variant.ID, "preset", g.preset, "seed", rc.Seed)
}

// Resize adapts the layout to a new terminal size without touching the match.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.view = newViewport(w, h, g.cfg.Arena)
}

// Step advances one tick with all input treated as coming from player one.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	m := core.NewMultiInputFrame()
	m.SetPlayer(core.Player1, in)
	return g.StepMulti(m)
}

// StepMulti advances one tick with per-player input. Player one drives the
// blue tank and player two the red one.
func (g *Game) StepMulti(in core.MultiInputFrame) core.StepResult {
	frames := [2]core.InputFrame{in.Player1(), in.Player2()}
	state := g.sim.State()

	if state == arena.StatePlaying && (frames[0].Has(core.ActionPause) || frames[1].Has(core.ActionPause)) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := in.DT
	if dt <= 0 {
		dt = g.runtime.TickSeconds()
	}
	ain := arena.Input{DT: dt}
	for i, f := range frames {
		ain.Move[i] = g.holdIntent(i, f)
		ain.Fire[i] = f.Has(core.ActionFire)
		ain.FireExplosive[i] = f.Has(core.ActionFireExplosive)
	}
	ain.Press = menuPress(state, frames[0], frames[1])
	if in.Click != nil {
		if x, y, ok := g.view.toArena(in.Click.X, in.Click.Y); ok {
			ain.Click = &core.Point{X: int(x), Y: int(y)}
		}
	}

	if g.recorder != nil {
		g.recorder.Record(ain)
	}
	res := g.sim.Tick(ain)
	for _, e := range res.Events {
		if e.Kind == arena.EventStateChanged && e.To == arena.StatePlaying {
			g.matchID = uuid.NewString()
			g.hold = [2][4]int{}
		}
	}

	return core.StepResult{State: g.State()}
}

// holdIntent refreshes the hold window of every direction pressed this tick
// and reports which directions are still held.
func (g *Game) holdIntent(player int, f core.InputFrame) arena.Intent {
	var held [4]bool
	for d, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if f.Has(a) {
			g.hold[player][d] = g.holdTicks
		}
		if g.hold[player][d] > 0 {
			held[d] = true
			g.hold[player][d]--
		}
	}
	return arena.Intent{Up: held[0], Down: held[1], Left: held[2], Right: held[3]}
}

// menuPress maps keyboard confirm/restart/back onto the buttons of the
// current screen.
func menuPress(state arena.State, frames ...core.InputFrame) arena.Button {
	for _, f := range frames {
		switch {
		case f.Has(core.ActionConfirm):
			if live := arena.ScreenButtons(state); len(live) > 0 {
				return live[0]
			}
		case f.Has(core.ActionRestart) && state == arena.StateWinner:
			return arena.ButtonPlayAgain
		case f.Has(core.ActionBack) && state == arena.StateWinner:
			return arena.ButtonHome
		}
	}
	return arena.ButtonNone
}

// State reports the platform view of the game. A decided match counts as
// game over; the score is the better of the two tanks.
func (g *Game) State() core.GameState {
	if g.sim == nil {
		return core.GameState{}
	}
	r := g.sim.Registry()
	return core.GameState{
		Score:    max(r.Tanks[arena.Blue].Score, r.Tanks[arena.Red].Score),
		GameOver: g.sim.State() == arena.StateWinner,
		Paused:   g.paused,
	}
}

// MatchResult summarizes the decided match for storage.
func (g *Game) MatchResult() storage.MatchResult {
	r := g.sim.Registry()
	winner, _ := g.sim.Winner()
	return storage.MatchResult{
		MatchID:      g.matchID,
		GameID:       g.variant.ID,
		Preset:       string(g.preset),
		Winner:       winner.String(),
		BlueScore:    r.Tanks[arena.Blue].Score,
		RedScore:     r.Tanks[arena.Red].Score,
		BlueHealth:   r.Tanks[arena.Blue].Health,
		RedHealth:    r.Tanks[arena.Red].Health,
		DurationSecs: g.sim.MatchTime(),
		Ticks:        int64(g.sim.MatchTicks()),
		Seed:         g.sim.Seed(),
	}
}
