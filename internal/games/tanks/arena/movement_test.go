package arena

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/config"
)

func withRock(x, y, size float64) func(*config.TanksConfig) {
	return func(c *config.TanksConfig) {
		c.Obstacles = config.ObstacleLayout{
			Rock: []config.ObstacleSpec{{X: x, Y: y, Size: size}},
		}
	}
}

func TestMoveTankFreeSpace(t *testing.T) {
	tests := []struct {
		name   string
		intent Intent
		x, y   float64
		facing Facing
	}{
		{"up", Intent{Up: true}, 50, 448, FacingUp},
		{"down", Intent{Down: true}, 50, 452, FacingDown},
		{"left", Intent{Left: true}, 48, 450, FacingLeft},
		{"right", Intent{Right: true}, 52, 450, FacingRight},
		{"up right", Intent{Up: true, Right: true}, 52, 448, FacingRight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newPlayingSim(t, noObstacles, noPowerBox)
			s.MoveTank(Blue, tc.intent)

			blue := s.reg.Tank(Blue)
			if blue.Box.X != tc.x || blue.Box.Y != tc.y {
				t.Errorf("position = (%v,%v), expected (%v,%v)", blue.Box.X, blue.Box.Y, tc.x, tc.y)
			}
			if blue.Facing != tc.facing {
				t.Errorf("Facing = %v, expected %v", blue.Facing, tc.facing)
			}
			if !blue.Moving {
				t.Error("Moving = false, expected true")
			}
		})
	}
}

func TestMoveBlockedStillTurns(t *testing.T) {
	s := newPlayingSim(t, noPowerBox, withRock(10, 450, 40))
	blue := s.reg.Tank(Blue)

	s.MoveTank(Blue, Intent{Left: true})

	if blue.Box.X != 50 {
		t.Errorf("X = %v, expected 50 (blocked)", blue.Box.X)
	}
	if blue.Facing != FacingLeft {
		t.Errorf("Facing = %v, expected left", blue.Facing)
	}
}

func TestMoveDiagonalIsSequential(t *testing.T) {
	s := newPlayingSim(t, noPowerBox, withRock(10, 450, 40))
	blue := s.reg.Tank(Blue)

	s.MoveTank(Blue, Intent{Up: true, Left: true})

	if blue.Box.Y != 448 {
		t.Errorf("Y = %v, expected 448", blue.Box.Y)
	}
	if blue.Box.X != 50 {
		t.Errorf("X = %v, expected 50 (left blocked from the updated position)", blue.Box.X)
	}
	if blue.Facing != FacingLeft {
		t.Errorf("Facing = %v, expected left", blue.Facing)
	}
}

func TestMoveClippedToArena(t *testing.T) {
	s := newPlayingSim(t, noObstacles, noPowerBox)
	blue := s.reg.Tank(Blue)
	blue.Box.X = 0
	blue.Box.Y = 500

	s.MoveTank(Blue, Intent{Left: true})
	s.MoveTank(Blue, Intent{Down: true})

	if blue.Box.X != 0 || blue.Box.Y != 500 {
		t.Errorf("position = (%v,%v), expected (0,500)", blue.Box.X, blue.Box.Y)
	}
	if blue.Facing != FacingDown {
		t.Errorf("Facing = %v, expected down", blue.Facing)
	}

	blue.Box.X = 1
	s.MoveTank(Blue, Intent{Left: true})
	if blue.Box.X != 0 {
		t.Errorf("X = %v, expected 0 (clipped)", blue.Box.X)
	}
}

func TestMoveBlockedByOpponent(t *testing.T) {
	s := newPlayingSim(t, noObstacles, noPowerBox)
	blue, red := s.reg.Tank(Blue), s.reg.Tank(Red)
	red.Box.X, red.Box.Y = 50, 409

	s.MoveTank(Blue, Intent{Up: true})
	if blue.Box.Y != 450 {
		t.Errorf("Y = %v, expected 450 (blocked by red)", blue.Box.Y)
	}

	destroy(red)
	s.MoveTank(Blue, Intent{Up: true})
	if blue.Box.Y != 448 {
		t.Errorf("Y = %v, expected 448 (wreck does not block)", blue.Box.Y)
	}
}

func TestDestroyedTankDoesNotMove(t *testing.T) {
	s := newPlayingSim(t, noObstacles, noPowerBox)
	blue := s.reg.Tank(Blue)
	destroy(blue)
	before := *blue

	s.MoveTank(Blue, Intent{Right: true, Down: true})

	if blue.Box != before.Box || blue.Facing != before.Facing || blue.Moving {
		t.Errorf("destroyed tank changed: %+v", blue)
	}
}

func TestMovementNeverOverlaps(t *testing.T) {
	s := newPlayingSim(t, noPowerBox)
	rng := rand.New(rand.NewSource(7))
	randIntent := func() Intent {
		return Intent{
			Up:    rng.Intn(3) == 0,
			Down:  rng.Intn(3) == 0,
			Left:  rng.Intn(3) == 0,
			Right: rng.Intn(3) == 0,
		}
	}

	for tick := 0; tick < 3000 && s.State() == StatePlaying; tick++ {
		in := Input{
			DT:   frame,
			Move: [2]Intent{randIntent(), randIntent()},
			Fire: [2]bool{rng.Intn(20) == 0, rng.Intn(20) == 0},
		}
		s.Tick(in)

		for _, id := range []TankID{Blue, Red} {
			tank := s.reg.Tank(id)
			if tank.Destroyed {
				continue
			}
			if idx := s.reg.FirstObstacleHit(tank.Box); idx >= 0 {
				t.Fatalf("tick %d: %v overlaps obstacle %d", tick, id, idx)
			}
			opp := s.reg.Tank(id.Opponent())
			if opp.Alive() && opp.Box.Intersects(tank.Box) {
				t.Fatalf("tick %d: tanks overlap", tick)
			}
		}
	}
}

func TestGunSweep(t *testing.T) {
	s := newPlayingSim(t, noObstacles)
	expected := []float64{15, 30, 45, 30, 15, 0, -15, -30, -45, -30, -15}

	for i, want := range expected {
		s.aimGun(Blue, 0.5)
		if got := s.reg.Tank(Blue).GunRotation; got != want {
			t.Fatalf("step %d: GunRotation = %v, expected %v", i, got, want)
		}
	}
}
