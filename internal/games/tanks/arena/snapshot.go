package arena

import (
	"fmt"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// TankView is the render-facing state of one tank.
type TankView struct {
	ID          TankID
	Box         core.Box
	Facing      Facing
	Rotation    float64
	GunRotation float64
	Destroyed   bool
	Moving      bool
	Shielded    bool
	PoweredUp   bool
	Health      int
	Ammo        int
	Score       int
	Charges     int
}

// BulletView is an active bullet.
type BulletView struct {
	Box       core.Box
	Rotation  float64
	Owner     TankID
	Explosive bool
}

// ObstacleView is an obstacle slot. Destroyed ones remain for their shadow.
type ObstacleView struct {
	Kind      ObstacleKind
	Box       core.Box
	Rotation  float64
	Destroyed bool
	Shadow    bool
}

// PowerBoxView is the collectible, present only while active.
type PowerBoxView struct {
	Box  core.Box
	Type BoxType
}

// BombView is an active charge marker.
type BombView struct {
	Box   core.Box
	Owner TankID
}

// ShieldView describes the global shield slot.
type ShieldView struct {
	Active    bool
	Owner     TankID
	Remaining float64
}

// Snapshot is a read-only copy of everything a presentation layer needs for
// one frame. It shares no memory with the simulation.
type Snapshot struct {
	State      State
	Winner     TankID
	Tanks      [2]TankView
	Bullets    []BulletView
	Obstacles  []ObstacleView
	PowerBox   *PowerBoxView
	Bombs      []BombView
	Explosions []core.Box
	Shield     ShieldView
	Buttons    map[Button]core.Box
	MatchTime  float64
	Tick       uint64
}

// Snapshot copies the current state.
func (s *Simulation) Snapshot() Snapshot {
	r := s.reg
	snap := Snapshot{
		State:     s.state,
		Winner:    s.winner,
		MatchTime: s.matchTime,
		Tick:      s.tick,
		Shield: ShieldView{
			Active:    r.Shield.Active,
			Owner:     r.Shield.Owner,
			Remaining: r.Shield.Remaining(),
		},
		Buttons: make(map[Button]core.Box, len(s.buttons)),
	}

	for i := range r.Tanks {
		t := &r.Tanks[i]
		id := TankID(i)
		snap.Tanks[i] = TankView{
			ID:          id,
			Box:         t.Box,
			Facing:      t.Facing,
			Rotation:    t.Facing.Degrees(),
			GunRotation: t.GunRotation,
			Destroyed:   t.Destroyed,
			Moving:      t.Moving,
			Shielded:    r.Shield.Protects(id),
			PoweredUp:   t.Power.Active,
			Health:      t.Health,
			Ammo:        t.Ammo,
			Score:       t.Score,
			Charges:     t.Charges,
		}
	}
	for _, b := range r.Bullets {
		if b.Active {
			snap.Bullets = append(snap.Bullets, BulletView{
				Box: b.Box, Rotation: b.Direction, Owner: b.Owner, Explosive: b.Explosive,
			})
		}
	}
	snap.Obstacles = make([]ObstacleView, len(r.Obstacles))
	for i, o := range r.Obstacles {
		snap.Obstacles[i] = ObstacleView{
			Kind: o.Kind, Box: o.Box, Rotation: o.Rotation, Destroyed: o.Destroyed, Shadow: o.Shadow,
		}
	}
	if r.PowerBox.Active {
		snap.PowerBox = &PowerBoxView{Box: r.PowerBox.Box, Type: r.PowerBox.Type}
	}
	for _, m := range r.Bombs {
		if m.Active {
			snap.Bombs = append(snap.Bombs, BombView{Box: m.Box, Owner: m.Owner})
		}
	}
	for _, e := range r.Explosions {
		if e.Active {
			snap.Explosions = append(snap.Explosions, e.Box)
		}
	}
	for b, box := range s.buttons {
		snap.Buttons[b] = box
	}
	return snap
}

// Hash returns an FNV-64a digest of the simulation state, including RNG-driven
// fields and timers. Two simulations fed the same seed and inputs hash equal.
func (s *Simulation) Hash() uint64 {
	h := fnv.New64a()
	r := s.reg

	fmt.Fprintf(h, "S:%d:%d:%d;", s.state, s.winner, s.matchTicks)
	for i := range r.Tanks {
		t := &r.Tanks[i]
		fmt.Fprintf(h, "T%d:%s:%d:%s:%v:%s:%d:%s:%d:%v:%d:%d;",
			i, boxBits(t.Box), t.Facing, bits(t.GunRotation), t.GunReversing,
			bits(t.Speed), t.Ammo, bits(t.ReloadTimer), t.Health, t.Destroyed,
			t.Score, t.Charges)
		fmt.Fprintf(h, "P:%v:%s;", t.Power.Active, bits(t.Power.Remaining))
	}
	for i, b := range r.Bullets {
		if b.Active {
			fmt.Fprintf(h, "B%d:%s:%s:%d:%v;", i, boxBits(b.Box), bits(b.Direction), b.Owner, b.Explosive)
		}
	}
	for i, o := range r.Obstacles {
		fmt.Fprintf(h, "O%d:%s:%v;", i, bits(o.Rotation), o.Destroyed)
	}
	pb := r.PowerBox
	fmt.Fprintf(h, "X:%v:%s:%s:%s:%d:%d;", pb.Active, boxBits(pb.Box),
		bits(pb.SpawnTimer), bits(pb.DespawnTimer), pb.SpawnCount, pb.Type)
	fmt.Fprintf(h, "H:%v:%s:%d;", r.Shield.Active, bits(r.Shield.Elapsed), r.Shield.Owner)
	for i, e := range r.Explosions {
		if e.Active {
			fmt.Fprintf(h, "E%d:%s;", i, bits(e.Elapsed))
		}
	}
	return h.Sum64()
}

func bits(f float64) string {
	return fmt.Sprintf("%x", math.Float64bits(f))
}

func boxBits(b core.Box) string {
	return bits(b.X) + "," + bits(b.Y) + "," + bits(b.W) + "," + bits(b.H)
}
