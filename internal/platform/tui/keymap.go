package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bowling/internal/core"
)

// laneKeys are the non-digit keys understood while bowling. Digits and "-"
// enter a pin count and are handled by PinsForKey.
var laneKeys = map[string]core.Action{
	"ctrl+c": core.ActionQuit,
	"q":      core.ActionQuit,
	"x":      core.ActionStrike,
	"X":      core.ActionStrike,
	"/":      core.ActionSpare,
	" ":      core.ActionBowl,
	"space":  core.ActionBowl,
	"enter":  core.ActionConfirm,
	"up":     core.ActionUp,
	"down":   core.ActionDown,
	"b":      core.ActionBack,
	"esc":    core.ActionBack,
	"p":      core.ActionPause,
	"r":      core.ActionRestart,
}

// KeyMapper turns Bubble Tea key messages into lane and menu actions.
type KeyMapper struct{}

func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey returns the lane action for a key and whether it asks to quit.
// Pin-count keys yield ActionPins; PinsForKey gives the count.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := msg.String()
	if _, ok := PinsForKey(k); ok {
		return core.ActionPins, false
	}
	action, ok := laneKeys[k]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}

// PinsForKey returns the pin count typed with a key. "-" is a gutter ball.
func PinsForKey(key string) (int, bool) {
	switch {
	case key == "-":
		return 0, true
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		return int(key[0] - '0'), true
	}
	return 0, false
}

// MapKeyToFrame adds the key's action to frame and reports a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	switch action {
	case core.ActionNone:
	case core.ActionPins:
		n, _ := PinsForKey(msg.String())
		frame.SetPins(n)
	default:
		frame.Set(action)
	}
	return isQuit
}

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

var menuKeys = map[string]MenuAction{
	"ctrl+c": MenuActionQuit,
	"q":      MenuActionQuit,
	"up":     MenuActionUp,
	"k":      MenuActionUp,
	"w":      MenuActionUp,
	"down":   MenuActionDown,
	"j":      MenuActionDown,
	"s":      MenuActionDown,
	"enter":  MenuActionSelect,
	" ":      MenuActionSelect,
	"space":  MenuActionSelect,
	"b":      MenuActionBack,
	"esc":    MenuActionBack,
	"tab":    MenuActionScoreboard,
}

// MapKeyToMenuAction translates a key on a menu or end-of-game screen.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	return menuKeys[msg.String()]
}
