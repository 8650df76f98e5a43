package config

import (
	_ "embed"
)

//go:embed defaults/tanks.yaml
var defaultTanksYAML []byte

// DefaultTanksConfig returns the built-in configuration. It matches the
// embedded defaults/tanks.yaml and is used when that file cannot be parsed.
func DefaultTanksConfig() TanksConfig {
	return TanksConfig{
		Arena: ArenaConfig{
			Width:  960,
			Height: 540,
		},
		Tank: TankConfig{
			Width:         40,
			Height:        40,
			Speed:         2.0,
			MaxHealth:     100,
			MaxAmmo:       5,
			ReloadSeconds: 0.5,
			GunSpeed:      30,
			GunLimit:      45,
		},
		Spawns: SpawnConfig{
			Blue: SpawnPoint{X: 50, Y: 450, Facing: "up"},
			Red:  SpawnPoint{X: 820, Y: 50, Facing: "down"},
		},
		Bullet: BulletConfig{
			Width:    8,
			Height:   10,
			Speed:    2.0,
			Capacity: 5,
		},
		Combat: CombatConfig{
			Damage:            25,
			ExplosiveDamage:   75,
			HitScore:          100,
			ExplosiveHitScore: 300,
			ObstacleScore:     10,
		},
		Explosion: ExplosionConfig{
			Width:    64,
			Height:   64,
			Duration: 1.0,
			Capacity: 3,
		},
		Power: PowerConfig{
			BoxSize:         20,
			SpawnInterval:   3,
			Lifetime:        5,
			SpawnAttempts:   50,
			SpawnMinX:       50,
			SpawnMaxX:       860,
			SpawnMinY:       50,
			SpawnMaxY:       440,
			ShieldDuration:  30,
			PowerUpDuration: 15,
			SpeedMultiplier: 2,
		},
		Bombs: BombConfig{
			Width:    24,
			Height:   24,
			Offset:   5,
			Spacing:  20,
			Capacity: 10,
		},
		Obstacles: DefaultObstacleLayout(),
	}
}

// DefaultObstacleLayout returns the fixed 20 grass and 15 rock layout.
func DefaultObstacleLayout() ObstacleLayout {
	return ObstacleLayout{
		Grass: []ObstacleSpec{
			{50, 100, 30}, {150, 200, 20}, {250, 50, 20}, {200, 300, 40},
			{350, 150, 20}, {400, 400, 30}, {500, 250, 40}, {550, 500, 20},
			{650, 100, 30}, {700, 350, 20}, {800, 200, 20}, {850, 450, 20},
			{900, 50, 20}, {900, 500, 20}, {750, 500, 20}, {600, 30, 20},
			{450, 500, 20}, {300, 450, 20}, {10, 500, 20}, {940, 500, 20},
		},
		Rock: []ObstacleSpec{
			{100, 50, 40}, {300, 250, 50}, {450, 100, 30}, {500, 450, 30},
			{600, 200, 40}, {750, 30, 30}, {800, 300, 30}, {20, 400, 30},
			{100, 350, 30}, {250, 150, 30}, {350, 500, 30}, {400, 20, 30},
			{650, 400, 30}, {700, 500, 30}, {900, 380, 30},
		},
	}
}
