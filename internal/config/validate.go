package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid tanks config")

// Fixed pool capacities of the arena. Configs may shrink a pool but never
// grow it.
const (
	MaxBullets     = 5
	MaxExplosions  = 3
	MaxBombMarkers = 10
	MaxGrass       = 20
	MaxRock        = 15
)

// Validate checks that the config can form a legal arena.
func (c TanksConfig) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{c.Arena.Width > 0 && c.Arena.Height > 0, "arena size must be positive"},
		{c.Tank.Width > 0 && c.Tank.Height > 0, "tank size must be positive"},
		{c.Tank.Speed > 0, "tank speed must be positive"},
		{c.Tank.MaxHealth > 0, "tank max_health must be positive"},
		{c.Tank.MaxAmmo >= 0, "tank max_ammo must not be negative"},
		{c.Tank.ReloadSeconds > 0, "tank reload_seconds must be positive"},
		{c.Tank.GunLimit >= 0, "tank gun_limit must not be negative"},
		{c.Tank.StartingCharges >= 0 && c.Tank.StartingCharges <= c.Bombs.Capacity/2,
			"tank starting_charges must fit the bomb markers of one tank"},
		{validFacing(c.Spawns.Blue.Facing) && validFacing(c.Spawns.Red.Facing), "spawn facing must be up, right, down or left"},
		{c.Bullet.Width > 0 && c.Bullet.Height > 0, "bullet size must be positive"},
		{c.Bullet.Capacity > 0 && c.Bullet.Capacity <= MaxBullets, "bullet capacity must be in 1..5"},
		{c.Explosion.Capacity > 0 && c.Explosion.Capacity <= MaxExplosions, "explosion capacity must be in 1..3"},
		{c.Explosion.Duration > 0, "explosion duration must be positive"},
		{c.Power.BoxSize > 0, "power box_size must be positive"},
		{c.Power.SpawnAttempts > 0, "power spawn_attempts must be positive"},
		{c.Power.SpawnMinX <= c.Power.SpawnMaxX && c.Power.SpawnMinY <= c.Power.SpawnMaxY, "power spawn range is empty"},
		{c.Power.SpeedMultiplier > 0, "power speed_multiplier must be positive"},
		{c.Bombs.Capacity >= 0 && c.Bombs.Capacity%2 == 0, "bomb capacity must be even"},
		{c.Bombs.Capacity <= MaxBombMarkers, "bomb capacity must not exceed 10"},
		{len(c.Obstacles.Grass) <= MaxGrass, "at most 20 grass obstacles"},
		{len(c.Obstacles.Rock) <= MaxRock, "at most 15 rock obstacles"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, chk.what)
		}
	}

	for i, o := range append(append([]ObstacleSpec{}, c.Obstacles.Grass...), c.Obstacles.Rock...) {
		if o.Size <= 0 {
			return fmt.Errorf("%w: obstacle %d has non-positive size", ErrInvalid, i)
		}
	}
	return nil
}

func validFacing(s string) bool {
	switch s {
	case "up", "right", "down", "left":
		return true
	}
	return false
}
