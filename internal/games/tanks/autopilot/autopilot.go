// Package autopilot drives tanks without a human at the keyboard. It is
// tooling for the headless sim command and for soak tests of the arena only;
// interactive play and SSH sessions never load it, and there is no computer
// opponent in a real match.
package autopilot

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/arena"
)

// Default tuning.
const (
	DefaultSkill     = 0.9 // chance per decision to follow the plan instead of wandering
	DefaultWander    = 20  // ticks spent on a random heading
	DefaultBombRange = 250 // arena units within which explosives are used
)

// Pilot steers one tank toward a firing line with its opponent: it closes
// whichever axis is nearer to alignment, then faces the opponent and shoots.
// When it gets stuck or fails its skill roll it drives a random heading for
// a while.
type Pilot struct {
	id     arena.TankID
	rng    *rand.Rand
	skill  float64
	wander int

	wanderLeft int
	heading    arena.Intent
	lastX      float64
	lastY      float64
	stuck      int
}

// New creates a pilot for a tank. The seed makes its decisions repeatable.
func New(id arena.TankID, seed int64) *Pilot {
	return &Pilot{
		id:     id,
		rng:    rand.New(rand.NewSource(seed)),
		skill:  DefaultSkill,
		wander: DefaultWander,
	}
}

// SetSkill changes the skill, clamped to [0, 1].
func (p *Pilot) SetSkill(s float64) {
	p.skill = math.Max(0, math.Min(1, s))
}

// Decide fills the pilot's slots of in for the next tick.
func (p *Pilot) Decide(sim *arena.Simulation, in *arena.Input) {
	if sim.State() != arena.StatePlaying {
		return
	}
	reg := sim.Registry()
	me := reg.Tank(p.id)
	foe := reg.Tank(opponent(p.id))
	if me.Destroyed || foe.Destroyed {
		return
	}

	x, y := me.Box.Center()
	if x == p.lastX && y == p.lastY && me.Moving {
		p.stuck++
	} else {
		p.stuck = 0
	}
	p.lastX, p.lastY = x, y

	if p.wanderLeft > 0 {
		p.wanderLeft--
		in.Move[p.id] = p.heading
		return
	}
	if p.stuck > 3 || p.rng.Float64() > p.skill {
		p.startWander()
		in.Move[p.id] = p.heading
		return
	}

	ox, oy := foe.Box.Center()
	dx, dy := ox-x, oy-y
	var intent arena.Intent
	aligned := true
	switch {
	case math.Abs(dx) < me.Box.W/2:
		intent = vertical(dy)
	case math.Abs(dy) < me.Box.H/2:
		intent = horizontal(dx)
	case math.Abs(dx) < math.Abs(dy):
		intent = horizontal(dx)
		aligned = false
	default:
		intent = vertical(dy)
		aligned = false
	}
	in.Move[p.id] = intent

	if aligned && me.Facing == facingOf(intent) {
		if me.Charges > 0 && math.Hypot(dx, dy) < DefaultBombRange {
			in.FireExplosive[p.id] = true
		} else if me.Ammo > 0 {
			in.Fire[p.id] = true
		}
	}
}

func (p *Pilot) startWander() {
	p.wanderLeft = p.wander
	p.stuck = 0
	switch p.rng.Intn(4) {
	case 0:
		p.heading = arena.Intent{Up: true}
	case 1:
		p.heading = arena.Intent{Down: true}
	case 2:
		p.heading = arena.Intent{Left: true}
	default:
		p.heading = arena.Intent{Right: true}
	}
}

func opponent(id arena.TankID) arena.TankID {
	if id == arena.Blue {
		return arena.Red
	}
	return arena.Blue
}

func vertical(dy float64) arena.Intent {
	if dy < 0 {
		return arena.Intent{Up: true}
	}
	return arena.Intent{Down: true}
}

func horizontal(dx float64) arena.Intent {
	if dx < 0 {
		return arena.Intent{Left: true}
	}
	return arena.Intent{Right: true}
}

func facingOf(i arena.Intent) arena.Facing {
	switch {
	case i.Up:
		return arena.FacingUp
	case i.Down:
		return arena.FacingDown
	case i.Left:
		return arena.FacingLeft
	default:
		return arena.FacingRight
	}
}
