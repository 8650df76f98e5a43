package arena

import (
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/config"
)

const frame = 1.0 / 60

// newPlayingSim returns a simulation already in Playing with the default
// config, after mutate has adjusted it.
func newPlayingSim(t *testing.T, mutate ...func(*config.TanksConfig)) *Simulation {
	t.Helper()
	cfg := config.DefaultTanksConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	s := NewSimulation(cfg, WithSeed(42))
	s.StartMatch()
	if s.State() != StatePlaying {
		t.Fatalf("State() = %v, expected playing", s.State())
	}
	return s
}

func noObstacles(c *config.TanksConfig) {
	c.Obstacles = config.ObstacleLayout{}
}

func noPowerBox(c *config.TanksConfig) {
	c.Power.SpawnInterval = 1e9
}
