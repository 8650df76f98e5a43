package arena

import (
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

func TestFireAmmoAndReload(t *testing.T) {
	s := newPlayingSim(t, noObstacles, noPowerBox)
	blue := s.reg.Tank(Blue)

	for i := 0; i < 4; i++ {
		if !s.Fire(Blue) {
			t.Fatalf("Fire() #%d = false, expected true", i+1)
		}
	}
	if blue.Ammo != 1 {
		t.Fatalf("Ammo = %d, expected 1", blue.Ammo)
	}

	// Occupy the last slot so the pool is full.
	s.reg.Bullets[4] = Bullet{Box: core.NewBox(700, 300, 8, 10), Active: true, Owner: Red}
	if s.Fire(Blue) {
		t.Error("Fire() with a full bullet pool = true, expected false")
	}
	if blue.Ammo != 1 {
		t.Errorf("Ammo after rejected fire = %d, expected 1", blue.Ammo)
	}

	res := s.Tick(Input{DT: 0.5})
	if blue.Ammo != 2 {
		t.Errorf("Ammo after 0.5s = %d, expected 2", blue.Ammo)
	}
	if blue.ReloadTimer != 0 {
		t.Errorf("ReloadTimer = %v, expected 0", blue.ReloadTimer)
	}
	if !res.Has(EventReloaded) {
		t.Error("expected a reloaded event")
	}
}

func TestFireWithoutAmmo(t *testing.T) {
	s := newPlayingSim(t, noObstacles)
	s.reg.Tank(Red).Ammo = 0

	if s.Fire(Red) {
		t.Error("Fire() with no ammo = true, expected false")
	}
	if n := s.reg.ActiveBullets(); n != 0 {
		t.Errorf("ActiveBullets() = %d, expected 0", n)
	}
}

func TestFireOutsidePlaying(t *testing.T) {
	s := NewSimulation(config.DefaultTanksConfig())
	if s.Fire(Blue) {
		t.Error("Fire() in menu = true, expected false")
	}
}

func TestReloadCapsAtMax(t *testing.T) {
	s := newPlayingSim(t, noObstacles, noPowerBox)
	for i := 0; i < 10; i++ {
		s.Tick(Input{DT: 0.5})
	}
	if got := s.reg.Tank(Blue).Ammo; got != 5 {
		t.Errorf("Ammo = %d, expected 5", got)
	}
}

func TestFiredBulletFollowsFacing(t *testing.T) {
	s := newPlayingSim(t, noObstacles, noPowerBox)
	blue := s.reg.Tank(Blue)

	s.Tick(Input{DT: frame, Fire: [2]bool{true, false}})

	b := s.reg.Bullets[0]
	if !b.Active || b.Owner != Blue {
		t.Fatalf("bullet = %+v, expected active blue bullet", b)
	}
	if b.Direction != 0 {
		t.Errorf("Direction = %v, expected 0", b.Direction)
	}
	expected := blue.Box.CenteredOn(8, 10).Translate(0, -2)
	if b.Box != expected {
		t.Errorf("bullet box = %+v, expected %+v", b.Box, expected)
	}
	if blue.Ammo != 4 {
		t.Errorf("Ammo = %d, expected 4", blue.Ammo)
	}
}

func TestBulletHitDamage(t *testing.T) {
	tests := []struct {
		name      string
		explosive bool
		health    int
		score     int
	}{
		{"normal", false, 75, 100},
		{"explosive", true, 25, 300},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newPlayingSim(t, noObstacles, noPowerBox)
			red := s.reg.Tank(Red)
			s.reg.Bullets[0] = Bullet{
				Box:       red.Box.CenteredOn(8, 10),
				Speed:     2,
				Active:    true,
				Owner:     Blue,
				Explosive: tc.explosive,
			}

			res := s.Tick(Input{DT: frame})

			if red.Health != tc.health {
				t.Errorf("red Health = %d, expected %d", red.Health, tc.health)
			}
			if got := s.reg.Tank(Blue).Score; got != tc.score {
				t.Errorf("blue Score = %d, expected %d", got, tc.score)
			}
			if s.reg.Bullets[0].Active {
				t.Error("bullet should deactivate on hit")
			}
			if n := s.reg.ActiveExplosions(); n != 1 {
				t.Errorf("ActiveExplosions() = %d, expected 1", n)
			}
			if got := s.reg.Explosions[0].Box; got != red.Box.CenteredOn(64, 64) {
				t.Errorf("explosion box = %+v, expected centered on red", got)
			}
			if !res.Has(EventHit) {
				t.Error("expected a hit event")
			}
		})
	}
}

func TestExplosiveHitsEndMatch(t *testing.T) {
	s := newPlayingSim(t, noObstacles, noPowerBox)
	red := s.reg.Tank(Red)
	shoot := func() TickResult {
		s.reg.Bullets[0] = Bullet{Box: red.Box.CenteredOn(8, 10), Speed: 2, Active: true, Owner: Blue, Explosive: true}
		return s.Tick(Input{DT: frame})
	}

	shoot()
	if red.Health != 25 || s.State() != StatePlaying {
		t.Fatalf("after one hit: Health = %d, State = %v, expected 25 and playing", red.Health, s.State())
	}

	res := shoot()
	if red.Health != 0 || !red.Destroyed {
		t.Errorf("Health = %d, Destroyed = %v, expected 0 and true", red.Health, red.Destroyed)
	}
	if s.State() != StateWinner {
		t.Errorf("State() = %v, expected winner", s.State())
	}
	if w, ok := s.Winner(); !ok || w != Blue {
		t.Errorf("Winner() = %v, %v, expected blue, true", w, ok)
	}
	if !res.Has(EventTankDestroyed) || !res.Has(EventStateChanged) {
		t.Error("expected tank destroyed and state changed events")
	}

	// Frozen afterwards.
	score := s.reg.Tank(Blue).Score
	shoot()
	if got := s.reg.Tank(Blue).Score; got != score {
		t.Errorf("Score changed after match end: %d -> %d", score, got)
	}
}

func TestShieldReflectsBullet(t *testing.T) {
	s := newPlayingSim(t, noObstacles, noPowerBox)
	red := s.reg.Tank(Red)
	s.reg.Shield = Shield{Active: true, Duration: 30, Owner: Red}
	s.reg.Bullets[0] = Bullet{Box: red.Box.CenteredOn(8, 10), Speed: 2, Direction: 90, Active: true, Owner: Blue}

	res := s.Tick(Input{DT: frame})

	b := s.reg.Bullets[0]
	if !b.Active {
		t.Fatal("reflected bullet should stay active")
	}
	if b.Owner != Red {
		t.Errorf("Owner = %v, expected red", b.Owner)
	}
	if b.Direction != 270 {
		t.Errorf("Direction = %v, expected 270", b.Direction)
	}
	if red.Health != 100 || s.reg.Tank(Blue).Score != 0 {
		t.Errorf("Health = %d, blue Score = %d, expected 100 and 0", red.Health, s.reg.Tank(Blue).Score)
	}
	if !res.Has(EventReflected) {
		t.Error("expected a reflected event")
	}
}

func TestReflectTwiceRestores(t *testing.T) {
	tests := []struct {
		dir      float64
		expected float64
	}{
		{0, 180},
		{90, 270},
		{270, 90},
		{315, 135},
	}
	for _, tc := range tests {
		b := Bullet{Direction: tc.dir, Owner: Blue}
		reflect(&b)
		if b.Direction != tc.expected || b.Owner != Red {
			t.Errorf("reflect(%v) = %v owner %v, expected %v owner red", tc.dir, b.Direction, b.Owner, tc.expected)
		}
		reflect(&b)
		if b.Direction != tc.dir || b.Owner != Blue {
			t.Errorf("double reflect(%v) = %v owner %v, expected the starting direction", tc.dir, b.Direction, b.Owner)
		}
	}
}

func TestDestroyIdempotent(t *testing.T) {
	tank := Tank{Health: -50}
	destroy(&tank)
	destroy(&tank)
	if tank.Health != 0 || !tank.Destroyed {
		t.Errorf("tank = %+v, expected health 0 and destroyed", tank)
	}
}

func TestBulletDestroysFirstObstacle(t *testing.T) {
	s := newPlayingSim(t, noPowerBox, func(c *config.TanksConfig) {
		c.Obstacles = config.ObstacleLayout{
			Grass: []config.ObstacleSpec{{X: 500, Y: 300, Size: 30}},
			Rock:  []config.ObstacleSpec{{X: 500, Y: 300, Size: 30}},
		}
	})
	s.reg.Bullets[0] = Bullet{Box: core.NewBox(510, 310, 8, 10), Speed: 2, Active: true, Owner: Red}

	res := s.Tick(Input{DT: frame})

	grass, rock := s.reg.Obstacles[0], s.reg.Obstacles[1]
	if !grass.Destroyed || !grass.Shadow {
		t.Errorf("grass = %+v, expected destroyed with shadow", grass)
	}
	if rock.Destroyed {
		t.Error("only the first obstacle should be hit")
	}
	if s.reg.Bullets[0].Active {
		t.Error("bullet should deactivate on obstacle hit")
	}
	if got := s.reg.Tank(Red).Score; got != 10 {
		t.Errorf("red Score = %d, expected 10", got)
	}
	if !res.Has(EventObstacleDestroyed) {
		t.Error("expected an obstacle destroyed event")
	}

	// A second bullet takes out the rock behind it.
	s.reg.Bullets[0] = Bullet{Box: core.NewBox(510, 310, 8, 10), Speed: 2, Active: true, Owner: Red}
	s.Tick(Input{DT: frame})
	if !s.reg.Obstacles[1].Destroyed {
		t.Error("second bullet should destroy the rock")
	}
}

func TestBulletLeavesArena(t *testing.T) {
	s := newPlayingSim(t, noObstacles, noPowerBox)
	s.reg.Bullets[0] = Bullet{Box: core.NewBox(1, 300, 8, 10), Speed: 2, Direction: 270, Active: true, Owner: Blue}
	s.reg.Bullets[1] = Bullet{Box: core.NewBox(2, 300, 8, 10), Speed: 2, Direction: 270, Active: true, Owner: Blue}

	s.Tick(Input{DT: frame})

	if s.reg.Bullets[0].Active {
		t.Error("bullet past the left edge should deactivate")
	}
	if !s.reg.Bullets[1].Active {
		t.Error("bullet exactly on the edge should stay active")
	}
}

func TestExplosionPoolFull(t *testing.T) {
	s := newPlayingSim(t, noObstacles)
	for i := 0; i < 4; i++ {
		s.spawnExplosion(core.NewBox(100, 100, 40, 40))
	}
	if n := s.reg.ActiveExplosions(); n != 3 {
		t.Errorf("ActiveExplosions() = %d, expected 3", n)
	}

	s.updateExplosions(1.0)
	if n := s.reg.ActiveExplosions(); n != 0 {
		t.Errorf("ActiveExplosions() after 1s = %d, expected 0", n)
	}
}

func TestFireExplosiveUsesCharge(t *testing.T) {
	s := newPlayingSim(t, noObstacles, noPowerBox)
	blue := s.reg.Tank(Blue)

	if s.FireExplosive(Blue) {
		t.Error("FireExplosive() without charges = true, expected false")
	}
	s.GrantCharges(Blue, 2)
	if !s.FireExplosive(Blue) {
		t.Fatal("FireExplosive() = false, expected true")
	}
	if blue.Charges != 1 || blue.Ammo != 5 {
		t.Errorf("Charges = %d, Ammo = %d, expected 1 and 5", blue.Charges, blue.Ammo)
	}
	if !s.reg.Bullets[0].Explosive {
		t.Error("bullet should be explosive")
	}
}
