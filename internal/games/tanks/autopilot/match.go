package autopilot

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/arena"
)

// Recorder receives every input fed to the simulation.
type Recorder interface {
	Begin(seed int64, cfg config.TanksConfig)
	Record(in arena.Input)
}

// MatchOptions configures a headless match.
type MatchOptions struct {
	Seed     int64
	MaxTicks int     // stop after this many match ticks; 0 means 36000
	DT       float64 // seconds per tick; 0 means 1/60
	Skill    float64 // pilot skill; 0 means DefaultSkill
	Logger   *log.Logger
	Recorder Recorder
}

// MatchSummary is the outcome of a headless match.
type MatchSummary struct {
	Winner    arena.TankID
	Decided   bool
	Ticks     int
	MatchTime float64
	Scores    [2]int
	Health    [2]int
	Shots     [2]int
	Hits      [2]int
	Pickups   int
	Hash      uint64
	Sim       *arena.Simulation
}

// PlayMatch starts a match and lets two pilots fight until one tank is
// destroyed or the tick limit is reached.
func PlayMatch(cfg config.TanksConfig, opts MatchOptions) MatchSummary {
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = 36000
	}
	if opts.DT <= 0 {
		opts.DT = 1.0 / 60
	}
	simOpts := []arena.Option{arena.WithSeed(opts.Seed)}
	if opts.Logger != nil {
		simOpts = append(simOpts, arena.WithLogger(opts.Logger))
	}
	sim := arena.NewSimulation(cfg, simOpts...)
	if opts.Recorder != nil {
		opts.Recorder.Begin(opts.Seed, cfg)
	}

	var sum MatchSummary
	tick := func(in arena.Input) {
		if opts.Recorder != nil {
			opts.Recorder.Record(in)
		}
		res := sim.Tick(in)
		for _, e := range res.Events {
			switch e.Kind {
			case arena.EventFired:
				sum.Shots[e.Tank]++
			case arena.EventHit:
				sum.Hits[e.Tank]++
			case arena.EventPickup:
				sum.Pickups++
			}
		}
	}

	// Through the welcome and mode screens like a player would.
	tick(arena.Input{DT: opts.DT, Press: arena.ButtonStart})
	tick(arena.Input{DT: opts.DT, Press: arena.ButtonTwoPlayer})

	pilots := [2]*Pilot{New(arena.Blue, opts.Seed), New(arena.Red, opts.Seed+1)}
	if opts.Skill > 0 {
		for _, p := range pilots {
			p.SetSkill(opts.Skill)
		}
	}

	for sim.State() == arena.StatePlaying && int(sim.MatchTicks()) < opts.MaxTicks {
		in := arena.Input{DT: opts.DT}
		for _, p := range pilots {
			p.Decide(sim, &in)
		}
		tick(in)
	}

	reg := sim.Registry()
	sum.Winner, sum.Decided = sim.Winner()
	sum.Ticks = int(sim.MatchTicks())
	sum.MatchTime = sim.MatchTime()
	for i := range reg.Tanks {
		sum.Scores[i] = reg.Tanks[i].Score
		sum.Health[i] = reg.Tanks[i].Health
	}
	sum.Hash = sim.Hash()
	sum.Sim = sim
	return sum
}
