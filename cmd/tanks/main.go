// tanks is a two-player tank arena played in the terminal.
//
// Usage:
//
//	tanks list                - List available arenas
//	tanks play [arena]        - Play a local two-player match
//	tanks menu                - Pick an arena interactively
//	tanks serve               - Start SSH server for remote play
//	tanks scores <arena>      - Show high scores and recent matches
//	tanks replay <file>       - Verify a recorded match
//	tanks sim                 - Run a headless match with scripted input
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.tanks/scores.db)
//	--log-level <lvl>   - debug, info, warn, error (default: warn)
//	--log-file <path>   - Write logs to a file (play and menu default to ~/.tanks/tanks.log)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-tanks/internal/games/tanks"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tanks",
	Short: "TUI Tanks - two tanks, one arena, in your terminal",
	Long: `TUI Tanks is a local two-player tank battle for the terminal.

Blue drives with WASD, fires with F and drops explosives with J.
Red drives with the arrow keys, fires with / and drops explosives with .

Available commands:
  list     - Show all arenas
  play     - Play an arena directly
  menu     - Interactive arena picker
  serve    - Start SSH server for remote play
  scores   - View high scores and recent matches
  replay   - Verify a recorded match
  sim      - Run a headless match

Examples:
  tanks play
  tanks play tanks_arsenal --record match.tnkr
  tanks replay match.tnkr
  tanks serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tanks/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (play and menu default to ~/.tanks/tanks.log)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the process logger from the global flags. Logs go to
// --log-file, else to defaultFile, else to stderr. The returned closer
// releases the log file, if any.
func newLogger(prefix, defaultFile string) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.WriteCloser = nopCloser{os.Stderr}
	path := flagLogFile
	if path == "" {
		path = defaultFile
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, w, nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// mustLogger is newLogger for commands that cannot run without one.
func mustLogger(prefix string) (*log.Logger, io.Closer) {
	logger, closer, err := newLogger(prefix, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closer
}

// mustTUILogger is mustLogger for commands that hand the terminal to Bubble
// Tea. Without --log-file it writes to ~/.tanks/tanks.log, or nowhere when
// the home directory is unknown.
func mustTUILogger(prefix string) (*log.Logger, io.Closer) {
	if flagLogFile != "" {
		return mustLogger(prefix)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), nopCloser{io.Discard}
	}
	logger, closer, err := newLogger(prefix, filepath.Join(home, ".tanks", "tanks.log"))
	if err != nil {
		return log.New(io.Discard), nopCloser{io.Discard}
	}
	return logger, closer
}

// exit closes the log before leaving, since os.Exit skips deferred calls.
func exit(code int, closer io.Closer) {
	closer.Close()
	os.Exit(code)
}
