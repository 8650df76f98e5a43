package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// resizer is implemented by games that can relayout without a reset.
type resizer interface {
	Resize(w, h int)
}

// matchReporter is implemented by games that produce a full match record.
type matchReporter interface {
	MatchResult() storage.MatchResult
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the model logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPlayer sets the name recorded for solo scores.
func WithPlayer(name string) Option {
	return func(m *Model) {
		m.player = name
	}
}

// WithEmbedded makes q return to the enclosing menu instead of quitting
// the program. ctrl+c always quits.
func WithEmbedded() Option {
	return func(m *Model) {
		m.embedded = true
	}
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game        registry.Game
	versus      registry.Versus // nil for single player games
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	inputFrame  core.MultiInputFrame
	keyMapper   *KeyMapper
	gameState   core.GameState
	logger      *log.Logger
	player      string
	embedded    bool
	quitting    bool
	backToMenu  bool
	resultSaved bool      // whether the current game over has been stored
	lastTick    time.Time // arrival of the previous tick
}

// maxTickDelta caps the measured tick delta after stalls such as a
// suspended terminal.
const maxTickDelta = time.Second

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		inputFrame: core.NewMultiInputFrame(),
		keyMapper:  NewKeyMapper(),
		logger:     log.New(io.Discard),
		player:     "local",
	}
	if v, ok := game.(registry.Versus); ok {
		m.versus = v
	}
	for _, opt := range opts {
		opt(&m)
	}
	// Init has a value receiver, so the game is reset here.
	game.Reset(cfg)
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.inputFrame.Click = &core.Point{X: msg.X, Y: msg.Y}
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToMultiFrame(msg, &m.inputFrame) {
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks. The frame carries the time since
// the previous tick; the first tick and untimed ticks run at the nominal rate.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if !now.IsZero() {
		if !m.lastTick.IsZero() {
			if d := now.Sub(m.lastTick); d > 0 {
				m.inputFrame.DT = min(d, maxTickDelta).Seconds()
			}
		}
		m.lastTick = now
	}

	var result core.StepResult
	if m.versus != nil {
		result = m.versus.StepMulti(m.inputFrame)
	} else {
		result = m.game.Step(m.inputFrame.Player1())
	}
	m.gameState = result.State

	switch {
	case m.gameState.GameOver && !m.resultSaved:
		m.saveResult()
		m.resultSaved = true
	case !m.gameState.GameOver:
		m.resultSaved = false
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveResult stores the finished game. Failures are logged and play goes on.
func (m *Model) saveResult() {
	if m.store == nil {
		return
	}
	if r, ok := m.game.(matchReporter); ok {
		mr := r.MatchResult()
		if mr.MatchID == "" {
			mr.MatchID = uuid.NewString()
		}
		if _, err := m.store.SaveMatch(mr); err != nil {
			m.logger.Warn("could not save match", "game", m.game.ID(), "error", err)
			return
		}
		m.logger.Info("match saved", "game", mr.GameID, "winner", mr.Winner,
			"blue", mr.BlueScore, "red", mr.RedScore)
		return
	}
	if m.gameState.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.player, m.gameState.Score); err != nil {
			m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".tanks", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave an embedded game.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// GameState returns the state reported by the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...Option) error {
	model := NewModel(game, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
