package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/arena"
	"github.com/vovakirdan/tui-tanks/internal/replay"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var flagReplaySave bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Verify a recorded match",
	Long: `Replay a recording made with 'tanks play --record' or 'tanks sim --record'
and check that it ends in the recorded state.

Examples:
  tanks replay match.tnkr
  tanks replay match.tnkr --save`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplaySave, "save", false, "Store a verified, decided match in the scores database")
}

func runReplay(_ *cobra.Command, args []string) {
	logger, closer := mustLogger("tanks-replay")
	defer closer.Close()

	rec, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1, closer)
	}

	fmt.Printf("Recording %s\n", rec.ID)
	fmt.Printf("  arena   %s (%s)\n", rec.GameID, rec.Preset)
	fmt.Printf("  seed    %d\n", rec.Seed)
	fmt.Printf("  frames  %d\n", len(rec.Frames))
	fmt.Printf("  created %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05"))

	sim, err := replay.Verify(rec, arena.WithLogger(logger))
	switch {
	case errors.Is(err, replay.ErrChecksumMismatch):
		fmt.Printf("  result  MISMATCH: %v\n", err)
		exit(2, closer)
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1, closer)
	}

	reg := sim.Registry()
	winner, decided := sim.Winner()
	outcome := "undecided"
	if decided {
		outcome = winner.String() + " wins"
	}
	fmt.Printf("  result  ok, %s after %.1fs (blue %d hp %d, red %d hp %d)\n",
		outcome, sim.MatchTime(),
		reg.Tanks[arena.Blue].Score, reg.Tanks[arena.Blue].Health,
		reg.Tanks[arena.Red].Score, reg.Tanks[arena.Red].Health)

	if !flagReplaySave || !decided {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		exit(1, closer)
	}
	defer store.Close()

	id, err := store.SaveMatch(storage.MatchResult{
		MatchID:      rec.ID,
		GameID:       rec.GameID,
		Preset:       rec.Preset,
		Winner:       winner.String(),
		BlueScore:    reg.Tanks[arena.Blue].Score,
		RedScore:     reg.Tanks[arena.Red].Score,
		BlueHealth:   reg.Tanks[arena.Blue].Health,
		RedHealth:    reg.Tanks[arena.Red].Health,
		DurationSecs: sim.MatchTime(),
		Ticks:        int64(sim.MatchTicks()),
		Seed:         rec.Seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving match: %v\n", err)
		return
	}
	fmt.Printf("Saved as match #%d\n", id)
}
