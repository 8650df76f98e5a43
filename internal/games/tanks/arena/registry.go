package arena

import (
	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Registry owns every entity of one match. Pools are allocated once with
// their configured capacity and never grow; slots are reused by toggling
// their active flags.
type Registry struct {
	Tanks      [2]Tank
	Bullets    []Bullet
	Explosions []Explosion
	Obstacles  []Obstacle // grass layer first, then rock
	Bombs      []BombItem // first half blue, second half red
	PowerBox   PowerBox
	Shield     Shield
}

// NewRegistry allocates empty pools sized by cfg.
func NewRegistry(cfg config.TanksConfig) *Registry {
	return &Registry{
		Bullets:    make([]Bullet, cfg.Bullet.Capacity),
		Explosions: make([]Explosion, cfg.Explosion.Capacity),
		Obstacles:  make([]Obstacle, 0, len(cfg.Obstacles.Grass)+len(cfg.Obstacles.Rock)),
		Bombs:      make([]BombItem, cfg.Bombs.Capacity),
		Shield:     Shield{Owner: NoTank},
	}
}

// Tank returns the tank with the given id.
func (r *Registry) Tank(id TankID) *Tank {
	return &r.Tanks[id]
}

// FreeBullet returns the first inactive bullet slot, or -1 if the pool is full.
func (r *Registry) FreeBullet() int {
	for i := range r.Bullets {
		if !r.Bullets[i].Active {
			return i
		}
	}
	return -1
}

// FreeExplosion returns the first inactive explosion slot, or -1.
func (r *Registry) FreeExplosion() int {
	for i := range r.Explosions {
		if !r.Explosions[i].Active {
			return i
		}
	}
	return -1
}

// ActiveBullets counts bullets in flight.
func (r *Registry) ActiveBullets() int {
	n := 0
	for i := range r.Bullets {
		if r.Bullets[i].Active {
			n++
		}
	}
	return n
}

// ActiveExplosions counts running explosion effects.
func (r *Registry) ActiveExplosions() int {
	n := 0
	for i := range r.Explosions {
		if r.Explosions[i].Active {
			n++
		}
	}
	return n
}

// FirstObstacleHit returns the index of the first blocking obstacle that
// overlaps b, or -1.
func (r *Registry) FirstObstacleHit(b core.Box) int {
	for i := range r.Obstacles {
		if r.Obstacles[i].Blocks() && r.Obstacles[i].Box.Intersects(b) {
			return i
		}
	}
	return -1
}

// Blocked reports whether a candidate box for the mover overlaps a blocking
// obstacle or the opponent tank. A destroyed opponent does not block.
func (r *Registry) Blocked(b core.Box, mover TankID) bool {
	if r.FirstObstacleHit(b) >= 0 {
		return true
	}
	opp := r.Tank(mover.Opponent())
	return opp.Alive() && opp.Box.Intersects(b)
}

// BombSlots returns the half-open slot range [from, to) of a tank's markers.
func (r *Registry) BombSlots(id TankID) (int, int) {
	half := len(r.Bombs) / 2
	from := int(id) * half
	return from, from + half
}

// MaxCharges is the number of explosive charges one tank can hold.
func (r *Registry) MaxCharges() int {
	return len(r.Bombs) / 2
}
