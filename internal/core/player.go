package core

// PlayerID identifies a bowler. Player1 is the local human; Player2 is the
// CPU or the remote bowler.
type PlayerID int

const (
	PlayerNone PlayerID = iota
	Player1
	Player2
)

func (p PlayerID) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return "-"
	}
}

// MultiInputFrame holds every bowler's input for one tick. Games read only
// the frame of the bowler at the lane.
type MultiInputFrame struct {
	frames [Player2 + 1]InputFrame
}

func NewMultiInputFrame() MultiInputFrame {
	return MultiInputFrame{}
}

// Player returns id's input; unknown players get an empty frame.
func (m MultiInputFrame) Player(id PlayerID) InputFrame {
	if id < Player1 || id > Player2 {
		return InputFrame{}
	}
	return m.frames[id]
}

func (m *MultiInputFrame) SetPlayer(id PlayerID, frame InputFrame) {
	if id < Player1 || id > Player2 {
		return
	}
	m.frames[id] = frame
}

func (m *MultiInputFrame) Clear() {
	*m = MultiInputFrame{}
}
