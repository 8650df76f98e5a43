// Package replay records the per-tick input of a tank match and plays it
// back headlessly. Recordings are msgpack files carrying the seed, the
// config and the digest of the final state, so a replay can prove it
// reproduced the recorded match.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/arena"
)

// Version is the recording format version written by this package.
const Version = 1

var (
	// ErrChecksumMismatch means a replay ended in a different state than
	// the recorded match.
	ErrChecksumMismatch = errors.New("replay: final state hash mismatch")

	// ErrVersion means the file was written by an incompatible format.
	ErrVersion = errors.New("replay: unsupported recording version")
)

// Key bits used in Frame.Keys.
const (
	keyUp uint8 = 1 << iota
	keyDown
	keyLeft
	keyRight
	keyFire
	keyExplosive
)

// Frame is the input of one tick.
type Frame struct {
	DT    float64  `msgpack:"dt"`
	Keys  [2]uint8 `msgpack:"k"`
	Press uint8    `msgpack:"p,omitempty"`
	Click []int32  `msgpack:"c,omitempty"` // x, y in arena units
}

// NewFrame packs a simulation input.
func NewFrame(in arena.Input) Frame {
	f := Frame{DT: in.DT, Press: uint8(in.Press)}
	for i := range f.Keys {
		var k uint8
		mv := in.Move[i]
		for _, b := range []struct {
			on  bool
			bit uint8
		}{
			{mv.Up, keyUp},
			{mv.Down, keyDown},
			{mv.Left, keyLeft},
			{mv.Right, keyRight},
			{in.Fire[i], keyFire},
			{in.FireExplosive[i], keyExplosive},
		} {
			if b.on {
				k |= b.bit
			}
		}
		f.Keys[i] = k
	}
	if in.Click != nil {
		f.Click = []int32{int32(in.Click.X), int32(in.Click.Y)}
	}
	return f
}

// Input unpacks the frame.
func (f Frame) Input() arena.Input {
	in := arena.Input{DT: f.DT, Press: arena.Button(f.Press)}
	for i, k := range f.Keys {
		in.Move[i] = arena.Intent{
			Up:    k&keyUp != 0,
			Down:  k&keyDown != 0,
			Left:  k&keyLeft != 0,
			Right: k&keyRight != 0,
		}
		in.Fire[i] = k&keyFire != 0
		in.FireExplosive[i] = k&keyExplosive != 0
	}
	if len(f.Click) == 2 {
		in.Click = &core.Point{X: int(f.Click[0]), Y: int(f.Click[1])}
	}
	return in
}

// Recording is a complete match log.
type Recording struct {
	Version   int                `msgpack:"version"`
	ID        string             `msgpack:"id"`
	GameID    string             `msgpack:"game_id"`
	Preset    string             `msgpack:"preset"`
	Seed      int64              `msgpack:"seed"`
	Config    config.TanksConfig `msgpack:"config"`
	Frames    []Frame            `msgpack:"frames"`
	FinalHash uint64             `msgpack:"final_hash"`
	CreatedAt time.Time          `msgpack:"created_at"`
}

// Recorder collects frames while a match is played. It restarts whenever
// the host builds a new simulation.
type Recorder struct {
	rec Recording
}

// NewRecorder returns a recorder tagged with a game variant and preset.
func NewRecorder(gameID string, preset config.Preset) *Recorder {
	return &Recorder{rec: Recording{
		Version: Version,
		GameID:  gameID,
		Preset:  string(preset),
	}}
}

// Begin starts a fresh recording for a simulation built from seed and cfg.
func (r *Recorder) Begin(seed int64, cfg config.TanksConfig) {
	r.rec.ID = uuid.NewString()
	r.rec.Seed = seed
	r.rec.Config = cfg
	r.rec.Frames = r.rec.Frames[:0]
	r.rec.CreatedAt = time.Now().UTC()
}

// Record appends the input of one tick.
func (r *Recorder) Record(in arena.Input) {
	r.rec.Frames = append(r.rec.Frames, NewFrame(in))
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return len(r.rec.Frames)
}

// Finish seals the recording with the digest of the final state.
func (r *Recorder) Finish(finalHash uint64) *Recording {
	out := r.rec
	out.Frames = append([]Frame(nil), r.rec.Frames...)
	out.FinalHash = finalHash
	return &out
}

// Encode writes a recording to w.
func Encode(w io.Writer, rec *Recording) error {
	if err := msgpack.NewEncoder(w).Encode(rec); err != nil {
		return fmt.Errorf("replay: cannot encode recording: %w", err)
	}
	return nil
}

// Decode reads a recording from r and checks its version.
func Decode(r io.Reader) (*Recording, error) {
	var rec Recording
	if err := msgpack.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("replay: cannot decode recording: %w", err)
	}
	if rec.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, rec.Version)
	}
	return &rec, nil
}

// Save writes a recording to a file.
func Save(path string, rec *Recording) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("replay: cannot create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := Encode(w, rec); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("replay: cannot write %s: %w", path, err)
	}
	return f.Close()
}

// Load reads a recording from a file.
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(bufio.NewReader(f))
}

// Run replays every frame into a fresh simulation and returns it.
func Run(rec *Recording, opts ...arena.Option) (*arena.Simulation, error) {
	if err := rec.Config.Validate(); err != nil {
		return nil, fmt.Errorf("replay: recorded config: %w", err)
	}
	opts = append(opts, arena.WithSeed(rec.Seed))
	sim := arena.NewSimulation(rec.Config, opts...)
	for _, f := range rec.Frames {
		sim.Tick(f.Input())
	}
	return sim, nil
}

// Verify replays the recording and checks that it ends in the recorded
// state. The simulation is returned even on a mismatch.
func Verify(rec *Recording, opts ...arena.Option) (*arena.Simulation, error) {
	sim, err := Run(rec, opts...)
	if err != nil {
		return nil, err
	}
	if got := sim.Hash(); got != rec.FinalHash {
		return sim, fmt.Errorf("%w: got %016x, recorded %016x", ErrChecksumMismatch, got, rec.FinalHash)
	}
	return sim, nil
}
