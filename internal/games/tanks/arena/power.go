package arena

import "github.com/vovakirdan/tui-tanks/internal/core"

// updatePowerUp counts down an active speed buff and restores the saved
// stats when it runs out.
func (s *Simulation) updatePowerUp(id TankID, dt float64) {
	t := s.reg.Tank(id)
	p := &t.Power
	if !p.Active {
		return
	}
	p.Remaining -= dt
	if p.Remaining > 0 {
		return
	}

	t.Speed = p.SavedSpeed
	t.Box.X -= p.SavedWidth / 4
	t.Box.Y -= p.SavedHeight / 4
	t.Box.W = p.SavedWidth
	t.Box.H = p.SavedHeight
	*p = PowerUp{}
	s.emit(Event{Kind: EventPowerUpExpired, Tank: id})
}

// updateBombs places one marker per held charge to the right of its tank and
// clears the rest of that tank's slots.
func (s *Simulation) updateBombs() {
	bc := s.cfg.Bombs
	for _, id := range []TankID{Blue, Red} {
		t := s.reg.Tank(id)
		from, to := s.reg.BombSlots(id)
		for slot := from; slot < to; slot++ {
			i := slot - from
			m := &s.reg.Bombs[slot]
			m.Owner = id
			m.Active = i < t.Charges
			m.Box = core.NewBox(
				t.Box.Right()+bc.Offset+float64(i)*bc.Spacing,
				t.Box.Y+t.Box.H/2-bc.Height/2,
				bc.Width,
				bc.Height,
			)
		}
	}
}

// updatePowerBox spawns a box once the spawn interval has elapsed while the
// slot is empty, and expires an uncollected box after its lifetime.
func (s *Simulation) updatePowerBox(dt float64) {
	pb := &s.reg.PowerBox
	pc := s.cfg.Power

	if pb.Active {
		pb.DespawnTimer -= dt
		if pb.DespawnTimer <= 0 {
			pb.Active = false
			pb.DespawnTimer = 0
			s.emit(Event{Kind: EventBoxExpired, Tank: NoTank, Box: pb.Type})
		}
		return
	}

	pb.SpawnTimer += dt
	if pb.SpawnTimer < pc.SpawnInterval {
		return
	}
	pb.SpawnTimer = 0
	pb.SpawnCount++
	pb.Type = BoxType(pb.SpawnCount % 2)
	pb.Box = s.placePowerBox()
	pb.DespawnTimer = pc.Lifetime
	pb.Active = true
	s.emit(Event{Kind: EventBoxSpawned, Tank: NoTank, Box: pb.Type})
}

// placePowerBox samples integer positions in the spawn range until one is
// clear of obstacles and tanks. When every attempt collides the last sample
// is used anyway.
func (s *Simulation) placePowerBox() core.Box {
	pc := s.cfg.Power
	var b core.Box
	for attempt := 0; attempt < max(pc.SpawnAttempts, 1); attempt++ {
		x := s.rng.Intn(pc.SpawnMaxX-pc.SpawnMinX+1) + pc.SpawnMinX
		y := s.rng.Intn(pc.SpawnMaxY-pc.SpawnMinY+1) + pc.SpawnMinY
		b = core.NewBox(float64(x), float64(y), pc.BoxSize, pc.BoxSize)
		if s.reg.FirstObstacleHit(b) < 0 &&
			!b.Intersects(s.reg.Tanks[Blue].Box) &&
			!b.Intersects(s.reg.Tanks[Red].Box) {
			return b
		}
	}
	s.logger.Debug("power box placed on collision", "x", b.X, "y", b.Y)
	return b
}

// updateShield ages the shield and drops it at the end of its duration.
func (s *Simulation) updateShield(dt float64) {
	sh := &s.reg.Shield
	if !sh.Active {
		return
	}
	sh.Elapsed += dt
	if sh.Elapsed >= sh.Duration {
		owner := sh.Owner
		*sh = Shield{Owner: NoTank}
		s.emit(Event{Kind: EventShieldExpired, Tank: owner})
	}
}

// checkPickup consumes the active box if the tank overlaps it and applies
// its effect. A shield overwrites the global slot whoever held it. A
// power-up on an already buffed tank is used up without effect.
func (s *Simulation) checkPickup(id TankID) {
	pb := &s.reg.PowerBox
	t := s.reg.Tank(id)
	if !pb.Active || t.Destroyed || !pb.Box.Intersects(t.Box) {
		return
	}
	pb.Active = false
	pb.DespawnTimer = 0

	switch pb.Type {
	case BoxShield:
		s.reg.Shield = Shield{
			Active:   true,
			Duration: s.cfg.Power.ShieldDuration,
			Owner:    id,
		}
	case BoxPowerUp:
		if !t.Power.Active {
			t.Power = PowerUp{
				Active:      true,
				Remaining:   s.cfg.Power.PowerUpDuration,
				SavedSpeed:  t.Speed,
				SavedWidth:  t.Box.W,
				SavedHeight: t.Box.H,
			}
			t.Speed *= s.cfg.Power.SpeedMultiplier
		}
	}
	s.emit(Event{Kind: EventPickup, Tank: id, Box: pb.Type})
}
