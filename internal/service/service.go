// Package service manages the set of live games and their optional
// persistence. It is the single concurrency boundary above the game layer:
// every game mutation happens under the service lock.
package service

import (
	"fmt"
	"sync"
	"time"

	"abchess/internal/core"
	"abchess/internal/game"
	"abchess/internal/search"
	"abchess/internal/storage"

	"github.com/google/uuid"
)

type Service struct {
	games  map[string]*game.Game
	mu     sync.RWMutex
	engine *search.Engine
	store  *storage.Store // nil if persistence disabled
}

// New creates a service sharing one engine across games. The engine holds
// only read-only evaluation tables, so concurrent searches are safe.
func New(engine *search.Engine, store *storage.Store) *Service {
	return &Service{
		games:  make(map[string]*game.Game),
		engine: engine,
		store:  store,
	}
}

// CreateGame seats two players and returns the new game's ID.
func (s *Service) CreateGame(upperConfig, downConfig core.PlayerConfig) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var id string
	for {
		id = uuid.New().String()
		if _, exists := s.games[id]; !exists {
			break
		}
	}

	upper := core.NewPlayer(uuid.New().String(), upperConfig, core.Upper)
	down := core.NewPlayer(uuid.New().String(), downConfig, core.Down)
	s.games[id] = game.New(upper, down, s.engine)

	if s.store != nil {
		s.store.RecordNewGame(storage.GameRecord{
			GameID:        id,
			UpperPlayerID: upper.ID,
			UpperType:     int(upper.Type),
			UpperDepth:    upper.Depth,
			DownPlayerID:  down.ID,
			DownType:      int(down.Type),
			DownDepth:     down.Depth,
			StartTimeUTC:  time.Now().UTC(),
		})
	}

	return id, nil
}

// MakeMove applies a human move to a game.
func (s *Service) MakeMove(gameID, notation string) (*game.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}

	result, err := g.MakeMove(notation)
	if err != nil {
		return nil, err
	}
	s.persistMove(gameID, g, result)
	return result, nil
}

// EngineMove lets the engine move for the side to play.
func (s *Service) EngineMove(gameID string) (*game.MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("game not found: %s", gameID)
	}

	result, err := g.EngineMove()
	if err != nil {
		return nil, err
	}
	s.persistMove(gameID, g, result)
	return result, nil
}

func (s *Service) persistMove(gameID string, g *game.Game, result *game.MoveResult) {
	if s.store == nil {
		return
	}
	s.store.RecordMove(storage.MoveRecord{
		GameID:      gameID,
		MoveNumber:  len(g.Moves()),
		Notation:    result.Move,
		Side:        result.Side.String(),
		MoveTimeUTC: time.Now().UTC(),
	})
}

// Undo reverses plies in a game.
func (s *Service) Undo(gameID string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[gameID]
	if !ok {
		return fmt.Errorf("game not found: %s", gameID)
	}

	if err := g.Undo(count); err != nil {
		return err
	}

	if s.store != nil {
		s.store.DeleteUndoneMoves(gameID, len(g.Moves()))
	}
	return nil
}

// GameResponse assembles the API view of a game.
func (s *Service) GameResponse(gameID string) (core.GameResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return core.GameResponse{}, fmt.Errorf("game not found: %s", gameID)
	}

	resp := core.GameResponse{
		GameID: gameID,
		Turn:   g.Turn().String(),
		State:  g.State().String(),
		Moves:  g.Moves(),
		Players: core.PlayersResponse{
			Upper: g.Player(core.Upper),
			Down:  g.Player(core.Down),
		},
	}
	if last := g.LastResult(); last != nil {
		resp.LastMove = &core.MoveInfo{
			Move:  last.Move,
			Side:  last.Side.String(),
			Score: last.Score,
			Depth: last.Depth,
		}
	}
	return resp, nil
}

// BoardResponse renders the current board of a game.
func (s *Service) BoardResponse(gameID string) (core.BoardResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return core.BoardResponse{}, fmt.Errorf("game not found: %s", gameID)
	}
	return core.BoardResponse{
		Board: g.Board().ToASCII(),
		Turn:  g.Turn().String(),
	}, nil
}

// NextPlayerType reports who is to move in a game.
func (s *Service) NextPlayerType(gameID string) (core.PlayerType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[gameID]
	if !ok {
		return 0, fmt.Errorf("game not found: %s", gameID)
	}
	return g.NextPlayer().Type, nil
}

// DeleteGame removes a game from memory.
func (s *Service) DeleteGame(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[gameID]; !ok {
		return fmt.Errorf("game not found: %s", gameID)
	}
	delete(s.games, gameID)
	return nil
}

// GetStorageHealth returns the storage component status.
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close clears all games and shuts down storage.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.games = make(map[string]*game.Game)

	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
