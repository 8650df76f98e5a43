// Package config provides YAML-based configuration loading and rule presets
// for the tank arena.
package config

// TanksConfig contains every tunable of the arena simulation. It is read once
// when a simulation is built and never changes during a match.
type TanksConfig struct {
	Arena     ArenaConfig     `yaml:"arena"`
	Tank      TankConfig      `yaml:"tank"`
	Spawns    SpawnConfig     `yaml:"spawns"`
	Bullet    BulletConfig    `yaml:"bullet"`
	Combat    CombatConfig    `yaml:"combat"`
	Explosion ExplosionConfig `yaml:"explosion"`
	Power     PowerConfig     `yaml:"power"`
	Bombs     BombConfig      `yaml:"bombs"`
	Obstacles ObstacleLayout  `yaml:"obstacles"`
}

// ArenaConfig defines the playfield size in arena units.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// TankConfig defines tank stats shared by both players.
type TankConfig struct {
	Width           float64 `yaml:"width"`
	Height          float64 `yaml:"height"`
	Speed           float64 `yaml:"speed"` // units per tick
	MaxHealth       int     `yaml:"max_health"`
	MaxAmmo         int     `yaml:"max_ammo"`
	ReloadSeconds   float64 `yaml:"reload_seconds"`
	GunSpeed        float64 `yaml:"gun_speed"` // degrees per second
	GunLimit        float64 `yaml:"gun_limit"` // degrees either side of the body
	StartingCharges int     `yaml:"starting_charges"`
}

// SpawnConfig holds the fixed spawn transform of each tank.
type SpawnConfig struct {
	Blue SpawnPoint `yaml:"blue"`
	Red  SpawnPoint `yaml:"red"`
}

// SpawnPoint is a tank's top-left position and initial facing
// ("up", "right", "down" or "left").
type SpawnPoint struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Facing string  `yaml:"facing"`
}

// BulletConfig defines projectile size, speed and pool capacity.
type BulletConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Speed    float64 `yaml:"speed"` // units per tick
	Capacity int     `yaml:"capacity"`
}

// CombatConfig defines damage and score values.
type CombatConfig struct {
	Damage            int `yaml:"damage"`
	ExplosiveDamage   int `yaml:"explosive_damage"`
	HitScore          int `yaml:"hit_score"`
	ExplosiveHitScore int `yaml:"explosive_hit_score"`
	ObstacleScore     int `yaml:"obstacle_score"`
}

// ExplosionConfig defines the hit effect.
type ExplosionConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Duration float64 `yaml:"duration"`
	Capacity int     `yaml:"capacity"`
}

// PowerConfig defines the power box lifecycle and buff durations.
type PowerConfig struct {
	BoxSize         float64 `yaml:"box_size"`
	SpawnInterval   float64 `yaml:"spawn_interval"`
	Lifetime        float64 `yaml:"lifetime"`
	SpawnAttempts   int     `yaml:"spawn_attempts"`
	SpawnMinX       int     `yaml:"spawn_min_x"`
	SpawnMaxX       int     `yaml:"spawn_max_x"`
	SpawnMinY       int     `yaml:"spawn_min_y"`
	SpawnMaxY       int     `yaml:"spawn_max_y"`
	ShieldDuration  float64 `yaml:"shield_duration"`
	PowerUpDuration float64 `yaml:"powerup_duration"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// BombConfig defines the explosive charge markers that trail each tank.
// Capacity is split evenly between the two tanks.
type BombConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Offset   float64 `yaml:"offset"`  // gap between tank and first marker
	Spacing  float64 `yaml:"spacing"` // distance between markers
	Capacity int     `yaml:"capacity"`
}

// ObstacleLayout is the fixed obstacle table used at every match reset.
type ObstacleLayout struct {
	Grass []ObstacleSpec `yaml:"grass"`
	Rock  []ObstacleSpec `yaml:"rock"`
}

// ObstacleSpec places one square obstacle.
type ObstacleSpec struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Size float64 `yaml:"size"`
}

// Preset represents a named rule set applied on top of a loaded config.
type Preset string

const (
	PresetClassic Preset = "classic"
	PresetArsenal Preset = "arsenal"
	PresetDuel    Preset = "duel"
)

// Presets lists the known presets in display order.
func Presets() []Preset {
	return []Preset{PresetClassic, PresetArsenal, PresetDuel}
}
