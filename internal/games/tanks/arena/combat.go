package arena

import (
	"math"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Fire shoots a normal bullet from the tank. It fails when the match is not
// running, the tank is destroyed, it has no ammo, or every bullet slot is in
// flight. Firing consumes one ammo and restarts the reload timer.
func (s *Simulation) Fire(id TankID) bool {
	t := s.reg.Tank(id)
	if s.state != StatePlaying || t.Destroyed {
		return false
	}
	slot := s.reg.FreeBullet()
	if t.Ammo <= 0 || slot < 0 {
		s.emit(Event{Kind: EventFireRejected, Tank: id, Index: slot, Value: t.Ammo})
		return false
	}

	t.Ammo--
	t.ReloadTimer = 0
	s.launch(slot, id, false)
	return true
}

// FireExplosive shoots an explosive bullet using one held charge. Ammo is
// not involved.
func (s *Simulation) FireExplosive(id TankID) bool {
	t := s.reg.Tank(id)
	if s.state != StatePlaying || t.Destroyed {
		return false
	}
	slot := s.reg.FreeBullet()
	if t.Charges <= 0 || slot < 0 {
		s.emit(Event{Kind: EventFireRejected, Tank: id, Index: slot, Value: t.Charges, Bomb: true})
		return false
	}

	t.Charges--
	s.launch(slot, id, true)
	s.updateBombs()
	return true
}

// launch activates a bullet slot at the tank's center, aimed along the body
// facing plus the current gun rotation.
func (s *Simulation) launch(slot int, id TankID, explosive bool) {
	t := s.reg.Tank(id)
	s.reg.Bullets[slot] = Bullet{
		Box:       t.Box.CenteredOn(s.cfg.Bullet.Width, s.cfg.Bullet.Height),
		Speed:     s.cfg.Bullet.Speed,
		Direction: t.Facing.Degrees() + t.GunRotation,
		Active:    true,
		Owner:     id,
		Explosive: explosive,
	}
	s.emit(Event{Kind: EventFired, Tank: id, Index: slot, Value: t.Ammo, Bomb: explosive})
}

// reload regenerates one ammo unit each time the reload interval elapses
// while the tank is below its ammo cap.
func (s *Simulation) reload(id TankID, dt float64) {
	t := s.reg.Tank(id)
	if t.Ammo >= s.cfg.Tank.MaxAmmo {
		return
	}
	t.ReloadTimer += dt
	if t.ReloadTimer >= s.cfg.Tank.ReloadSeconds {
		t.Ammo++
		t.ReloadTimer = 0
		s.emit(Event{Kind: EventReloaded, Tank: id, Value: t.Ammo})
	}
}

// updateBullets advances every active bullet and resolves its collisions.
// Resolution stops as soon as a tank is destroyed.
func (s *Simulation) updateBullets() {
	for i := range s.reg.Bullets {
		b := &s.reg.Bullets[i]
		if !b.Active {
			continue
		}
		s.advance(b)
		if !b.Active {
			continue
		}
		if s.resolveTankHit(i) {
			return
		}
		if b.Active {
			s.resolveObstacleHit(i)
		}
	}
}

// advance moves a bullet one tick along its direction and retires it once it
// leaves the arena.
func (s *Simulation) advance(b *Bullet) {
	rad := b.Direction * math.Pi / 180
	b.Box.X += b.Speed * math.Sin(rad)
	b.Box.Y -= b.Speed * math.Cos(rad)

	a := s.cfg.Arena
	if b.Box.X < 0 || b.Box.X > a.Width || b.Box.Y < 0 || b.Box.Y > a.Height {
		b.Active = false
	}
}

// resolveTankHit checks the bullet against its owner's opponent. A shielded
// target reflects the bullet; otherwise the target takes damage and the
// bullet is spent. Returns true when the hit ended the match.
func (s *Simulation) resolveTankHit(slot int) bool {
	b := &s.reg.Bullets[slot]
	targetID := b.Owner.Opponent()
	target := s.reg.Tank(targetID)
	if target.Destroyed || !b.Box.Intersects(target.Box) {
		return false
	}

	if s.reg.Shield.Protects(targetID) {
		reflect(b)
		s.emit(Event{Kind: EventReflected, Tank: targetID, Index: slot})
		return false
	}

	damage, score := s.cfg.Combat.Damage, s.cfg.Combat.HitScore
	if b.Explosive {
		damage, score = s.cfg.Combat.ExplosiveDamage, s.cfg.Combat.ExplosiveHitScore
	}
	shooter := b.Owner
	b.Active = false

	target.Health -= damage
	s.reg.Tank(shooter).Score += score
	s.emit(Event{Kind: EventHit, Tank: shooter, Index: slot, Value: damage, Bomb: b.Explosive})
	s.spawnExplosion(target.Box)

	if target.Health <= 0 {
		destroy(target)
		s.winner = shooter
		s.emit(Event{Kind: EventTankDestroyed, Tank: targetID, Value: target.Health})
		s.transition(StateWinner)
		return true
	}
	return false
}

// reflect turns a bullet around and hands it to the tank that reflected it.
func reflect(b *Bullet) {
	b.Direction = core.NormalizeDegrees(b.Direction + 180)
	b.Owner = b.Owner.Opponent()
}

// destroy marks a tank as wreckage. Repeated calls have no further effect.
func destroy(t *Tank) {
	if t.Destroyed {
		return
	}
	t.Destroyed = true
	t.Health = 0
	t.Moving = false
}

// resolveObstacleHit destroys the first blocking obstacle under the bullet.
func (s *Simulation) resolveObstacleHit(slot int) {
	b := &s.reg.Bullets[slot]
	idx := s.reg.FirstObstacleHit(b.Box)
	if idx < 0 {
		return
	}
	o := &s.reg.Obstacles[idx]
	o.Destroyed = true
	o.Shadow = true
	b.Active = false
	s.reg.Tank(b.Owner).Score += s.cfg.Combat.ObstacleScore
	s.emit(Event{Kind: EventObstacleDestroyed, Tank: b.Owner, Index: idx})
}

// spawnExplosion starts an effect centered on the hit box in the first free
// slot. A full pool drops it.
func (s *Simulation) spawnExplosion(at core.Box) {
	slot := s.reg.FreeExplosion()
	if slot < 0 {
		return
	}
	e := s.cfg.Explosion
	s.reg.Explosions[slot] = Explosion{
		Box:      at.CenteredOn(e.Width, e.Height),
		Duration: e.Duration,
		Active:   true,
	}
}

// updateExplosions ages every running effect and retires finished ones.
func (s *Simulation) updateExplosions(dt float64) {
	for i := range s.reg.Explosions {
		e := &s.reg.Explosions[i]
		if !e.Active {
			continue
		}
		e.Elapsed += dt
		if e.Elapsed >= e.Duration {
			e.Active = false
		}
	}
}
