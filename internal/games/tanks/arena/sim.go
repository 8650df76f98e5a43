package arena

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Intent is the set of movement keys held by one player this tick.
type Intent struct {
	Up, Down, Left, Right bool
}

// Any reports whether any movement key is held.
func (i Intent) Any() bool {
	return i.Up || i.Down || i.Left || i.Right
}

// Input is everything the host supplies for one tick.
type Input struct {
	DT            float64 // elapsed seconds since the previous tick
	Move          [2]Intent
	Fire          [2]bool
	FireExplosive [2]bool
	Press         Button      // keyboard selection of a menu button
	Click         *core.Point // pointer click in arena units, nil if none
}

// Simulation is the arena: one registry, the state machine around it and the
// seeded RNG used for obstacle rotation and power box placement.
type Simulation struct {
	cfg     config.TanksConfig
	reg     *Registry
	rng     *rand.Rand
	seed    int64
	logger  *log.Logger
	state   State
	winner  TankID
	buttons map[Button]core.Box

	tick       uint64  // ticks since construction
	matchTicks uint64  // ticks in the current match
	matchTime  float64 // seconds in the current match
	events     []Event
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithSeed sets the RNG seed. The same seed and input sequence always
// produce the same match.
func WithSeed(seed int64) Option {
	return func(s *Simulation) {
		s.seed = seed
	}
}

// WithLogger sends debug events to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSimulation builds a simulation in the Menu state with a freshly reset
// match behind it. cfg must already be validated.
func NewSimulation(cfg config.TanksConfig, opts ...Option) *Simulation {
	s := &Simulation{
		logger: log.New(io.Discard),
		state:  StateMenu,
		winner: NoTank,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.rng = rand.New(rand.NewSource(s.seed))
	s.buttons = DefaultButtons(cfg.Arena)
	s.ResetMatch(cfg)
	return s
}

// ResetMatch rebuilds every entity from cfg: tanks at their spawn transform
// with full health and ammo, empty bullet/explosion/bomb pools, a fresh
// obstacle layout with random rotations, no power box, no shield and no
// winner. The state is left unchanged.
func (s *Simulation) ResetMatch(cfg config.TanksConfig) {
	s.cfg = cfg
	s.reg = NewRegistry(cfg)
	s.winner = NoTank
	s.matchTicks = 0
	s.matchTime = 0

	s.reg.Tanks[Blue] = s.spawnTank(cfg.Spawns.Blue)
	s.reg.Tanks[Red] = s.spawnTank(cfg.Spawns.Red)

	for _, spec := range cfg.Obstacles.Grass {
		s.reg.Obstacles = append(s.reg.Obstacles, s.newObstacle(Grass, spec))
	}
	for _, spec := range cfg.Obstacles.Rock {
		s.reg.Obstacles = append(s.reg.Obstacles, s.newObstacle(Rock, spec))
	}

	s.updateBombs()
	s.logger.Debug("match reset", "seed", s.seed, "obstacles", len(s.reg.Obstacles))
}

func (s *Simulation) spawnTank(sp config.SpawnPoint) Tank {
	t := s.cfg.Tank
	return Tank{
		Box:     core.NewBox(sp.X, sp.Y, t.Width, t.Height),
		Facing:  ParseFacing(sp.Facing),
		Speed:   t.Speed,
		Ammo:    t.MaxAmmo,
		Health:  t.MaxHealth,
		Charges: min(t.StartingCharges, s.reg.MaxCharges()),
	}
}

func (s *Simulation) newObstacle(kind ObstacleKind, spec config.ObstacleSpec) Obstacle {
	return Obstacle{
		Kind:     kind,
		Box:      core.NewBox(spec.X, spec.Y, spec.Size, spec.Size),
		Rotation: float64(s.rng.Intn(360)),
	}
}

// Tick advances the simulation by one step. Outside the Playing state only
// menu input is processed and the entities stay frozen.
func (s *Simulation) Tick(in Input) TickResult {
	s.events = s.events[:0]
	s.tick++

	dt := in.DT
	if dt < 0 {
		dt = 0
	}

	entered := s.handleMenuInput(in)
	if s.state == StatePlaying && !entered {
		s.matchTicks++
		s.matchTime += dt
		s.step(in, dt)
	}

	events := make([]Event, len(s.events))
	copy(events, s.events)
	return TickResult{Tick: s.tick, State: s.state, Events: events}
}

// step runs the systems in their fixed order.
func (s *Simulation) step(in Input, dt float64) {
	for _, id := range []TankID{Blue, Red} {
		if in.Fire[id] {
			s.Fire(id)
		}
		if in.FireExplosive[id] {
			s.FireExplosive(id)
		}
	}

	for _, id := range []TankID{Blue, Red} {
		s.aimGun(id, dt)
	}
	for _, id := range []TankID{Blue, Red} {
		s.reload(id, dt)
	}
	for _, id := range []TankID{Blue, Red} {
		s.updatePowerUp(id, dt)
	}
	s.updateBombs()
	s.updateExplosions(dt)
	s.updatePowerBox(dt)
	s.updateShield(dt)
	s.checkPickup(Blue)
	s.checkPickup(Red)
	s.MoveTank(Blue, in.Move[Blue])
	s.MoveTank(Red, in.Move[Red])
	s.updateBullets()
}

func (s *Simulation) emit(e Event) {
	s.events = append(s.events, e)
	s.logger.Debug(e.Kind.String(),
		"tick", s.tick,
		"tank", e.Tank,
		"index", e.Index,
		"value", e.Value,
	)
}

// State returns the current state machine state.
func (s *Simulation) State() State {
	return s.state
}

// Winner returns the winning tank once the match is decided.
func (s *Simulation) Winner() (TankID, bool) {
	return s.winner, s.winner != NoTank
}

// Registry exposes the live entities. Hosts must treat it as read-only.
func (s *Simulation) Registry() *Registry {
	return s.reg
}

// Config returns the configuration of the current match.
func (s *Simulation) Config() config.TanksConfig {
	return s.cfg
}

// Seed returns the RNG seed the simulation was built with.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// MatchTime returns the seconds elapsed in the current match.
func (s *Simulation) MatchTime() float64 {
	return s.matchTime
}

// MatchTicks returns the number of played ticks in the current match.
func (s *Simulation) MatchTicks() uint64 {
	return s.matchTicks
}

// GrantCharges adds explosive charges to a tank up to its marker capacity
// and returns how many were actually granted.
func (s *Simulation) GrantCharges(id TankID, n int) int {
	t := s.reg.Tank(id)
	if n <= 0 || t.Destroyed {
		return 0
	}
	granted := min(n, s.reg.MaxCharges()-t.Charges)
	t.Charges += granted
	s.updateBombs()
	return granted
}
