// Package arena implements the tank arena simulation: two tanks, pooled
// bullets and effects, destructible obstacles and timed power-ups, advanced
// one fixed tick at a time. It has no terminal or I/O dependencies.
package arena

import "github.com/vovakirdan/tui-tanks/internal/core"

// TankID identifies one of the two tanks. It doubles as the slot index.
type TankID int

const (
	Blue TankID = 0
	Red  TankID = 1

	// NoTank marks an absent owner or winner.
	NoTank TankID = -1
)

// Opponent returns the other tank.
func (id TankID) Opponent() TankID {
	if id == Blue {
		return Red
	}
	return Blue
}

// String returns a human-readable name for the tank.
func (id TankID) String() string {
	switch id {
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return "none"
	}
}

// Facing is a tank body direction. Only the four cardinal directions exist.
type Facing int

const (
	FacingUp Facing = iota
	FacingRight
	FacingDown
	FacingLeft
)

// Degrees returns the clockwise rotation from up, as used for rendering and
// bullet direction.
func (f Facing) Degrees() float64 {
	switch f {
	case FacingRight:
		return 90
	case FacingDown:
		return 180
	case FacingLeft:
		return 270
	default:
		return 0
	}
}

// String returns the config name of the facing.
func (f Facing) String() string {
	switch f {
	case FacingRight:
		return "right"
	case FacingDown:
		return "down"
	case FacingLeft:
		return "left"
	default:
		return "up"
	}
}

// ParseFacing converts a config name to a Facing. Unknown names face up.
func ParseFacing(s string) Facing {
	switch s {
	case "right":
		return FacingRight
	case "down":
		return FacingDown
	case "left":
		return FacingLeft
	default:
		return FacingUp
	}
}

// PowerUp is a tank's speed buff state. The saved values are the stats the
// buff replaced and are restored verbatim on expiry.
type PowerUp struct {
	Active      bool
	Remaining   float64
	SavedSpeed  float64
	SavedWidth  float64
	SavedHeight float64
}

// Tank is one player's vehicle.
type Tank struct {
	Box          core.Box
	Facing       Facing
	GunRotation  float64 // degrees relative to body, within the gun limit
	GunReversing bool    // true while the gun sweeps toward the negative limit
	Speed        float64
	Ammo         int
	ReloadTimer  float64
	Health       int
	Destroyed    bool
	Moving       bool
	Score        int
	Power        PowerUp
	Charges      int // explosive bullets available
}

// Alive reports whether the tank can still act.
func (t *Tank) Alive() bool {
	return !t.Destroyed
}

// Bullet is a pooled projectile. Inactive bullets are ignored everywhere.
type Bullet struct {
	Box       core.Box
	Speed     float64
	Direction float64 // degrees clockwise from up
	Active    bool
	Owner     TankID
	Explosive bool
}

// ObstacleKind distinguishes the two obstacle layers.
type ObstacleKind int

const (
	Grass ObstacleKind = iota
	Rock
)

// String returns the obstacle kind name.
func (k ObstacleKind) String() string {
	if k == Rock {
		return "rock"
	}
	return "grass"
}

// Obstacle is a static square. Destroyed obstacles keep their slot and
// shadow but block nothing.
type Obstacle struct {
	Kind      ObstacleKind
	Box       core.Box
	Rotation  float64 // cosmetic
	Destroyed bool
	Shadow    bool
}

// Blocks reports whether the obstacle still participates in collision.
func (o *Obstacle) Blocks() bool {
	return !o.Destroyed
}

// BoxType is the effect a power box grants.
type BoxType int

const (
	BoxShield BoxType = iota
	BoxPowerUp
)

// String returns the box type name.
func (b BoxType) String() string {
	if b == BoxPowerUp {
		return "power-up"
	}
	return "shield"
}

// PowerBox is the single collectible slot.
type PowerBox struct {
	Box          core.Box
	Active       bool
	SpawnTimer   float64 // accumulates while inactive
	DespawnTimer float64 // counts down while active
	SpawnCount   int
	Type         BoxType
}

// Shield is the single global shield slot. Only one tank holds it at a time.
type Shield struct {
	Active   bool
	Elapsed  float64
	Duration float64
	Owner    TankID
}

// Protects reports whether the shield currently covers the given tank.
func (s *Shield) Protects(id TankID) bool {
	return s.Active && s.Owner == id
}

// Remaining returns the shield time left in seconds.
func (s *Shield) Remaining() float64 {
	if !s.Active {
		return 0
	}
	return s.Duration - s.Elapsed
}

// BombItem is a marker showing one held explosive charge next to its tank.
type BombItem struct {
	Box    core.Box
	Active bool
	Owner  TankID
}

// Explosion is a short-lived hit effect.
type Explosion struct {
	Box      core.Box
	Elapsed  float64
	Duration float64
	Active   bool
}
