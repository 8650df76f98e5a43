package replay

import (
	"bytes"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/arena"
)

// playScripted drives a simulation through the menus and a random fight,
// recording every input.
func playScripted(t *testing.T, seed int64, ticks int) (*arena.Simulation, *Recording) {
	t.Helper()
	cfg := config.DefaultTanksConfig()
	rec := NewRecorder("tanks", config.PresetClassic)
	rec.Begin(seed, cfg)
	sim := arena.NewSimulation(cfg, arena.WithSeed(seed))

	step := func(in arena.Input) {
		rec.Record(in)
		sim.Tick(in)
	}
	step(arena.Input{DT: 1.0 / 60, Press: arena.ButtonStart})
	start := sim.Button(arena.ButtonTwoPlayer)
	step(arena.Input{DT: 1.0 / 60, Click: &core.Point{X: int(start.X) + 5, Y: int(start.Y) + 5}})
	if sim.State() != arena.StatePlaying {
		t.Fatalf("State() = %v, expected playing", sim.State())
	}

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < ticks; i++ {
		step(arena.Input{
			DT: 1.0 / 60,
			Move: [2]arena.Intent{
				{Up: rng.Intn(2) == 0, Right: rng.Intn(3) == 0},
				{Down: rng.Intn(2) == 0, Left: rng.Intn(3) == 0},
			},
			Fire: [2]bool{rng.Intn(10) == 0, rng.Intn(10) == 0},
		})
	}
	return sim, rec.Finish(sim.Hash())
}

func TestFrameRoundTrip(t *testing.T) {
	tests := []arena.Input{
		{DT: 0.5},
		{DT: 1.0 / 60, Move: [2]arena.Intent{{Up: true, Left: true}, {Down: true, Right: true}}},
		{DT: 0.25, Fire: [2]bool{true, false}, FireExplosive: [2]bool{false, true}},
		{Press: arena.ButtonHome, Click: &core.Point{X: 480, Y: 220}},
	}
	for i, in := range tests {
		got := NewFrame(in).Input()
		if got.DT != in.DT || got.Move != in.Move || got.Fire != in.Fire ||
			got.FireExplosive != in.FireExplosive || got.Press != in.Press {
			t.Errorf("case %d: Input() = %+v, expected %+v", i, got, in)
		}
		if (got.Click == nil) != (in.Click == nil) || (in.Click != nil && *got.Click != *in.Click) {
			t.Errorf("case %d: Click = %v, expected %v", i, got.Click, in.Click)
		}
	}
}

func TestRecordSaveLoadVerify(t *testing.T) {
	sim, rec := playScripted(t, 11, 1200)
	path := filepath.Join(t.TempDir(), "match.tnkr")

	if err := Save(path, rec); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.ID != rec.ID || loaded.Seed != 11 || len(loaded.Frames) != len(rec.Frames) {
		t.Errorf("Load() = id %s seed %d frames %d, expected %s 11 %d",
			loaded.ID, loaded.Seed, len(loaded.Frames), rec.ID, len(rec.Frames))
	}

	replayed, err := Verify(loaded)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if replayed.State() != sim.State() {
		t.Errorf("replayed State() = %v, expected %v", replayed.State(), sim.State())
	}
	if replayed.Snapshot().Tanks != sim.Snapshot().Tanks {
		t.Error("replayed tanks differ from the recorded match")
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	_, rec := playScripted(t, 3, 300)
	rec.Seed++

	_, err := Verify(rec)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Verify() error = %v, expected ErrChecksumMismatch", err)
	}
}

func TestDecodeRejectsVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(Recording{Version: Version + 1}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	_, err := Decode(&buf)
	if !errors.Is(err, ErrVersion) {
		t.Errorf("Decode() error = %v, expected ErrVersion", err)
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte{0xc1, 0x00})); err == nil {
		t.Error("Decode() of garbage should fail")
	}
}

func TestRecorderBeginRestarts(t *testing.T) {
	rec := NewRecorder("tanks", config.PresetClassic)
	rec.Begin(1, config.DefaultTanksConfig())
	rec.Record(arena.Input{DT: 0.1})
	first := rec.Finish(0).ID

	rec.Begin(2, config.DefaultTanksConfig())
	if rec.Len() != 0 {
		t.Errorf("Len() after Begin = %d, expected 0", rec.Len())
	}
	if rec.Finish(0).ID == first {
		t.Error("Begin should assign a new recording ID")
	}
}
