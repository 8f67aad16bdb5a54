package core

import "strings"

// Action is a lane or menu intent, decoupled from the key that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // menu navigation
	ActionDown           // menu navigation
	ActionPins           // typed pin count, see InputFrame.Pins
	ActionStrike         // knock every pin of a full rack
	ActionSpare          // knock every standing pin on the second ball
	ActionBowl           // start or release the power meter
	ActionConfirm
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Pins", "Strike", "Spare", "Bowl",
	"Confirm", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// ActionSet is a bitmask of actions.
type ActionSet uint32

func (s ActionSet) String() string {
	var names []string
	for a := ActionNone + 1; a < actionCount; a++ {
		if s&(1<<a) != 0 {
			names = append(names, a.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// InputFrame is one player's input for a tick. It is a plain value and can
// be copied or sent to another goroutine freely.
type InputFrame struct {
	Actions ActionSet
	Pins    int // meaningful only with ActionPins
}

func NewInputFrame() InputFrame {
	return InputFrame{}
}

func (f *InputFrame) Set(a Action) {
	f.Actions |= 1 << a
}

// SetPins records a typed pin count.
func (f *InputFrame) SetPins(n int) {
	f.Set(ActionPins)
	f.Pins = n
}

func (f InputFrame) Has(a Action) bool {
	return f.Actions&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.Actions == 0
}

// Merge adds o's actions to f. A pin count in o replaces f's.
func (f *InputFrame) Merge(o InputFrame) {
	f.Actions |= o.Actions
	if o.Has(ActionPins) {
		f.Pins = o.Pins
	}
}

func (f *InputFrame) Clear() {
	*f = InputFrame{}
}

func (f InputFrame) Clone() InputFrame {
	return f
}
