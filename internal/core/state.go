package core

// State is the lifecycle of a game. There is no check or mate detection: a
// game ends only when one side's king has been captured off the board.
type State int

const (
	StateOngoing State = iota
	StateUpperWins
	StateDownWins
)

func (s State) String() string {
	switch s {
	case StateUpperWins:
		return "upper wins"
	case StateDownWins:
		return "down wins"
	default:
		return "ongoing"
	}
}

// WinState maps the side with the surviving king to the ended game state.
func WinState(winner Side) State {
	switch winner {
	case Upper:
		return StateUpperWins
	case Down:
		return StateDownWins
	default:
		return StateOngoing
	}
}

type PlayerType int

const (
	PlayerHuman PlayerType = iota + 1
	PlayerComputer
)

// Player is a seat at the board.
type Player struct {
	ID    string     `json:"id"`
	Side  Side       `json:"side"`
	Type  PlayerType `json:"type"`
	Depth int        `json:"depth,omitempty"` // search depth, computer only
}

// PlayerConfig configures a seat in API requests.
type PlayerConfig struct {
	Type  PlayerType `json:"type" validate:"required,oneof=1 2"`
	Depth int        `json:"depth,omitempty" validate:"omitempty,min=1,max=8"`
}
