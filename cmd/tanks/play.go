package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks"
	"github.com/vovakirdan/tui-tanks/internal/platform/tui"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/replay"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

var (
	flagConfig string
	flagPreset string
	flagRecord string
	flagHold   int
)

var playCmd = &cobra.Command{
	Use:   "play [arena]",
	Short: "Play a local two-player match",
	Long: `Start a match on the specified arena (default: tanks).

Controls:
  Blue       - W/A/S/D move, F fire, J explosive
  Red        - Arrows move, / fire, . explosive
  Enter      - Press the highlighted button
  Mouse      - Click a button
  P          - Pause
  R          - Play again (winner screen)
  Esc        - Home (winner screen)
  Ctrl+S     - Screenshot
  Q/Ctrl+C   - Quit

Presets:
  classic  - The standard arena
  arsenal  - Both tanks start with explosive charges
  duel     - Half health, faster reload

Examples:
  tanks play
  tanks play tanks_arsenal
  tanks play --preset duel --seed 7
  tanks play --config ./my-tanks.yaml --record match.tnkr`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Preset: classic, arsenal, duel (default: the arena's own)")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Record the session to this file")
	playCmd.Flags().IntVar(&flagHold, "hold", tanks.DefaultHoldTicks, "Ticks a movement key stays held after a press")
}

// terminalConfig reads the terminal size and builds a runtime config from
// the global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// createGame builds a registered game and applies the play flags to it.
func createGame(gameID string, logger *log.Logger) (registry.Game, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	tg, ok := game.(*tanks.Game)
	if !ok {
		return game, nil
	}

	cfg, err := config.LoadTanks(flagConfig)
	if err != nil {
		return nil, err
	}
	tg.Configure(cfg)
	if flagPreset != "" {
		p, err := config.ParsePreset(flagPreset)
		if err != nil {
			return nil, err
		}
		tg.SetPreset(p)
	}
	tg.SetHoldTicks(flagHold)
	tg.SetLogger(logger)
	return tg, nil
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "tanks"
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown arena %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'tanks list' to see available arenas.")
		os.Exit(1)
	}

	logger, closer := mustTUILogger("tanks")
	defer closer.Close()

	game, err := createGame(gameID, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		exit(1, closer)
	}

	var rec *replay.Recorder
	tg, isTanks := game.(*tanks.Game)
	if flagRecord != "" && isTanks {
		rec = replay.NewRecorder(tg.ID(), tg.Preset())
		tg.SetRecorder(rec)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	cfg := terminalConfig()
	runErr := tui.Run(game, store, cfg, tui.WithLogger(logger))

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if rec != nil {
		recording := rec.Finish(tg.Simulation().Hash())
		if err := replay.Save(flagRecord, recording); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving recording: %v\n", err)
		} else {
			fmt.Printf("Recorded %d ticks to %s\n", len(recording.Frames), flagRecord)
		}
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		exit(1, closer)
	}
}
