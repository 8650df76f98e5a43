package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Binding is the player and action a key maps to.
type Binding struct {
	Player core.PlayerID
	Action core.Action
}

// KeyMapper translates Bubble Tea key messages to game actions.
// Both players share one keyboard. Keys that are not player specific
// (menus, pause) are attributed to Player1.
type KeyMapper struct {
	bindings map[string]Binding
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	p1, p2 := core.Player1, core.Player2
	return &KeyMapper{bindings: map[string]Binding{
		// blue
		"w": {p1, core.ActionUp},
		"s": {p1, core.ActionDown},
		"a": {p1, core.ActionLeft},
		"d": {p1, core.ActionRight},
		"f": {p1, core.ActionFire},
		"j": {p1, core.ActionFireExplosive},

		// red
		"up":    {p2, core.ActionUp},
		"down":  {p2, core.ActionDown},
		"left":  {p2, core.ActionLeft},
		"right": {p2, core.ActionRight},
		"/":     {p2, core.ActionFire},
		".":     {p2, core.ActionFireExplosive},

		"enter": {p1, core.ActionConfirm},
		" ":     {p1, core.ActionConfirm},
		"esc":   {p1, core.ActionBack},
		"b":     {p1, core.ActionBack},
		"r":     {p1, core.ActionRestart},
		"p":     {p1, core.ActionPause},
	}}
}

// MapKey translates a key message to a binding.
// Returns ok=false for unbound keys. Quit keys report isQuit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (b Binding, ok, isQuit bool) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return Binding{core.Player1, core.ActionQuit}, true, true
	}
	b, ok = km.bindings[key]
	return b, ok, false
}

// MapKeyToMultiFrame updates a multi-input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToMultiFrame(msg tea.KeyMsg, frame *core.MultiInputFrame) bool {
	b, ok, isQuit := km.MapKey(msg)
	if isQuit {
		return true
	}
	if ok {
		frame.SetAction(b.Player, b.Action)
	}
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
