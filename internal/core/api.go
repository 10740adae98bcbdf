package core

// Error codes returned by the HTTP API.
const (
	ErrCodeGameNotFound      = "GAME_NOT_FOUND"
	ErrCodeInvalidMove       = "INVALID_MOVE"
	ErrCodeNotYourPiece      = "NOT_YOUR_PIECE"
	ErrCodeNotHumanTurn      = "NOT_HUMAN_TURN"
	ErrCodeGameOver          = "GAME_OVER"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Request types

type CreateGameRequest struct {
	Upper PlayerConfig `json:"upper" validate:"required"`
	Down  PlayerConfig `json:"down" validate:"required"`
}

type MoveRequest struct {
	// "cccc" asks the engine to move for the side to play; anything else is
	// parsed as file-rank notation with an optional promotion suffix.
	Move string `json:"move" validate:"required,min=4,max=5"`
}

type UndoRequest struct {
	Count int `json:"count" validate:"required,min=1,max=500"`
}

// Response types

type GameResponse struct {
	GameID   string          `json:"gameId"`
	Turn     string          `json:"turn"`
	State    string          `json:"state"`
	Moves    []string        `json:"moves"`
	Players  PlayersResponse `json:"players"`
	LastMove *MoveInfo       `json:"lastMove,omitempty"`
}

type PlayersResponse struct {
	Upper *Player `json:"upper"`
	Down  *Player `json:"down"`
}

type MoveInfo struct {
	Move  string  `json:"move"`
	Side  string  `json:"side"`
	Score float64 `json:"score,omitempty"`
	Depth int     `json:"depth,omitempty"`
}

type BoardResponse struct {
	Board string `json:"board"`
	Turn  string `json:"turn"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// NewPlayer builds a seated player from its configuration.
func NewPlayer(id string, config PlayerConfig, side Side) *Player {
	p := &Player{
		ID:   id,
		Side: side,
		Type: config.Type,
	}
	if config.Type == PlayerComputer {
		p.Depth = config.Depth
	}
	return p
}
