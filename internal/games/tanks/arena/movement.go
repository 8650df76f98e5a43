package arena

import "github.com/vovakirdan/tui-tanks/internal/core"

// MoveTank applies one tick of movement intent to a tank. Up, Down, Left and
// Right are tried in that order, each from the position left by the previous
// one. For every held direction the tank turns to face it, then the move by
// the tank's speed is clipped to the arena and committed only if the
// candidate box is not blocked. Destroyed tanks never move or turn.
func (s *Simulation) MoveTank(id TankID, intent Intent) {
	t := s.reg.Tank(id)
	if t.Destroyed {
		t.Moving = false
		return
	}
	t.Moving = intent.Any()

	steps := []struct {
		held   bool
		facing Facing
		dx, dy float64
	}{
		{intent.Up, FacingUp, 0, -1},
		{intent.Down, FacingDown, 0, 1},
		{intent.Left, FacingLeft, -1, 0},
		{intent.Right, FacingRight, 1, 0},
	}
	for _, st := range steps {
		if !st.held {
			continue
		}
		t.Facing = st.facing
		candidate := s.clipToArena(t.Box.Translate(st.dx*t.Speed, st.dy*t.Speed))
		if candidate == t.Box {
			continue
		}
		if !s.reg.Blocked(candidate, id) {
			t.Box = candidate
		}
	}
}

// clipToArena keeps a box inside the playfield.
func (s *Simulation) clipToArena(b core.Box) core.Box {
	a := s.cfg.Arena
	b.X = core.ClampF(b.X, 0, a.Width-b.W)
	b.Y = core.ClampF(b.Y, 0, a.Height-b.H)
	return b
}

// aimGun sweeps the gun between the negative and positive limit at a fixed
// angular speed, reversing at each bound.
func (s *Simulation) aimGun(id TankID, dt float64) {
	t := s.reg.Tank(id)
	limit := s.cfg.Tank.GunLimit
	step := s.cfg.Tank.GunSpeed * dt

	if t.GunReversing {
		t.GunRotation -= step
		if t.GunRotation <= -limit {
			t.GunRotation = -limit
			t.GunReversing = false
		}
		return
	}
	t.GunRotation += step
	if t.GunRotation >= limit {
		t.GunRotation = limit
		t.GunReversing = true
	}
}
