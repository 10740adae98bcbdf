package storage

import (
	"database/sql"
	"fmt"
	"log"
)

// RecordNewGame asynchronously records a new game.
func (s *Store) RecordNewGame(record GameRecord) error {
	if !s.healthStatus.Load() {
		return nil // silently drop if degraded
	}

	select {
	case s.writeChan <- func(tx *sql.Tx) error {
		query := `INSERT INTO games (
			game_id,
			upper_player_id, upper_type, upper_depth,
			down_player_id, down_type, down_depth,
			start_time_utc
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID,
			record.UpperPlayerID, record.UpperType, record.UpperDepth,
			record.DownPlayerID, record.DownType, record.DownDepth,
			record.StartTimeUTC,
		)
		return err
	}:
		return nil
	default:
		log.Printf("Storage write queue full, dropping game record")
		return nil
	}
}

// RecordMove asynchronously records a move.
func (s *Store) RecordMove(record MoveRecord) error {
	if !s.healthStatus.Load() {
		return nil
	}

	select {
	case s.writeChan <- func(tx *sql.Tx) error {
		query := `INSERT INTO moves (
			game_id, move_number, notation, side, move_time_utc
		) VALUES (?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.MoveNumber, record.Notation,
			record.Side, record.MoveTimeUTC,
		)
		return err
	}:
		return nil
	default:
		log.Printf("Storage write queue full, dropping move record")
		return nil
	}
}

// DeleteUndoneMoves asynchronously deletes moves past the given number after
// an undo.
func (s *Store) DeleteUndoneMoves(gameID string, afterMoveNumber int) error {
	if !s.healthStatus.Load() {
		return nil
	}

	select {
	case s.writeChan <- func(tx *sql.Tx) error {
		query := `DELETE FROM moves WHERE game_id = ? AND move_number > ?`
		_, err := tx.Exec(query, gameID, afterMoveNumber)
		return err
	}:
		return nil
	default:
		log.Printf("Storage write queue full, dropping undo operation")
		return nil
	}
}

// QueryGames retrieves games, optionally filtered by game or player ID.
// "*" or "" matches everything.
func (s *Store) QueryGames(gameID, playerID string) ([]GameRecord, error) {
	query := `SELECT
		game_id,
		upper_player_id, upper_type, upper_depth,
		down_player_id, down_type, down_depth,
		start_time_utc
	FROM games WHERE 1=1`

	var args []interface{}

	if gameID != "" && gameID != "*" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}

	if playerID != "" && playerID != "*" {
		query += " AND (upper_player_id = ? OR down_player_id = ?)"
		args = append(args, playerID, playerID)
	}

	query += " ORDER BY start_time_utc DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		err := rows.Scan(
			&g.GameID,
			&g.UpperPlayerID, &g.UpperType, &g.UpperDepth,
			&g.DownPlayerID, &g.DownType, &g.DownDepth,
			&g.StartTimeUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// QueryMoves retrieves the recorded moves of one game in play order.
func (s *Store) QueryMoves(gameID string) ([]MoveRecord, error) {
	query := `SELECT move_id, game_id, move_number, notation, side, move_time_utc
	FROM moves WHERE game_id = ? ORDER BY move_number`

	rows, err := s.db.Query(query, gameID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.MoveID, &m.GameID, &m.MoveNumber, &m.Notation, &m.Side, &m.MoveTimeUTC); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return moves, nil
}
