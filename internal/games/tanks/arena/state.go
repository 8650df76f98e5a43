package arena

import (
	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
)

// State is a game flow state.
type State int

const (
	StateMenu State = iota
	StateModeSelect
	StatePlaying
	StateWinner
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateModeSelect:
		return "mode select"
	case StatePlaying:
		return "playing"
	case StateWinner:
		return "winner"
	default:
		return "unknown"
	}
}

// Button is a selectable region on one of the non-playing screens.
type Button int

const (
	ButtonNone Button = iota
	ButtonStart
	ButtonTwoPlayer
	ButtonPlayAgain
	ButtonHome
)

// String returns the button label.
func (b Button) String() string {
	switch b {
	case ButtonStart:
		return "Start"
	case ButtonTwoPlayer:
		return "Two Players"
	case ButtonPlayAgain:
		return "Play Again"
	case ButtonHome:
		return "Home"
	default:
		return ""
	}
}

// Default button size in arena units.
const (
	ButtonWidth  = 200
	ButtonHeight = 40
)

// DefaultButtons lays out the menu buttons for an arena.
func DefaultButtons(a config.ArenaConfig) map[Button]core.Box {
	cx := (a.Width - ButtonWidth) / 2
	cy := (a.Height - ButtonHeight) / 2
	return map[Button]core.Box{
		ButtonStart:     core.NewBox(cx+200, cy, ButtonWidth, ButtonHeight),
		ButtonTwoPlayer: core.NewBox(cx, 200, ButtonWidth, ButtonHeight),
		ButtonPlayAgain: core.NewBox(cx, 400, ButtonWidth, ButtonHeight),
		ButtonHome:      core.NewBox(cx, 450, ButtonWidth, ButtonHeight),
	}
}

// ScreenButtons returns the buttons that are live in a state, in display order.
func ScreenButtons(st State) []Button {
	switch st {
	case StateMenu:
		return []Button{ButtonStart}
	case StateModeSelect:
		return []Button{ButtonTwoPlayer}
	case StateWinner:
		return []Button{ButtonPlayAgain, ButtonHome}
	default:
		return nil
	}
}

// SetButton moves or resizes a button region. Presentation layers call this
// when their layout differs from the default.
func (s *Simulation) SetButton(b Button, box core.Box) {
	s.buttons[b] = box
}

// Button returns the region of a button.
func (s *Simulation) Button(b Button) core.Box {
	return s.buttons[b]
}

// ButtonAt returns the live button under an arena point, or ButtonNone.
// Edges count as inside.
func (s *Simulation) ButtonAt(x, y float64) Button {
	for _, b := range ScreenButtons(s.state) {
		if s.buttons[b].ContainsPoint(x, y) {
			return b
		}
	}
	return ButtonNone
}

// Press activates a button if it is live in the current state. It reports
// whether a transition happened.
func (s *Simulation) Press(b Button) bool {
	switch {
	case s.state == StateMenu && b == ButtonStart:
		s.transition(StateModeSelect)
	case s.state == StateModeSelect && b == ButtonTwoPlayer:
		s.StartMatch()
	case s.state == StateWinner && b == ButtonPlayAgain:
		s.StartMatch()
	case s.state == StateWinner && b == ButtonHome:
		s.transition(StateMenu)
	default:
		return false
	}
	return true
}

// Click presses whichever live button contains the point.
func (s *Simulation) Click(x, y float64) bool {
	b := s.ButtonAt(x, y)
	if b == ButtonNone {
		return false
	}
	return s.Press(b)
}

// StartMatch resets every entity and enters Playing from any state.
func (s *Simulation) StartMatch() {
	s.ResetMatch(s.cfg)
	s.transition(StatePlaying)
}

// handleMenuInput applies the discrete selection events of a tick. It
// reports whether they moved the game into Playing, in which case the
// systems wait for the next tick.
func (s *Simulation) handleMenuInput(in Input) bool {
	if s.state == StatePlaying {
		return false
	}
	before := s.state
	if in.Press != ButtonNone {
		s.Press(in.Press)
	}
	if in.Click != nil && s.state == before {
		s.Click(float64(in.Click.X), float64(in.Click.Y))
	}
	return before != StatePlaying && s.state == StatePlaying
}

func (s *Simulation) transition(to State) {
	if s.state == to {
		return
	}
	from := s.state
	s.state = to
	s.emit(Event{Kind: EventStateChanged, Tank: s.winner, From: from, To: to})
	s.logger.Info("state changed", "from", from, "to", to, "winner", s.winner)
}
