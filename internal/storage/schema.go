package storage

import "time"

// GameRecord is a row in the games table.
type GameRecord struct {
	GameID        string    `db:"game_id"`
	UpperPlayerID string    `db:"upper_player_id"`
	UpperType     int       `db:"upper_type"`
	UpperDepth    int       `db:"upper_depth"`
	DownPlayerID  string    `db:"down_player_id"`
	DownType      int       `db:"down_type"`
	DownDepth     int       `db:"down_depth"`
	StartTimeUTC  time.Time `db:"start_time_utc"`
}

// MoveRecord is a row in the moves table.
type MoveRecord struct {
	MoveID      int64     `db:"move_id"`
	GameID      string    `db:"game_id"`
	MoveNumber  int       `db:"move_number"`
	Notation    string    `db:"notation"`
	Side        string    `db:"side"`
	MoveTimeUTC time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure.
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	upper_player_id TEXT NOT NULL,
	upper_type INTEGER NOT NULL,
	upper_depth INTEGER NOT NULL DEFAULT 0,
	down_player_id TEXT NOT NULL,
	down_type INTEGER NOT NULL,
	down_depth INTEGER NOT NULL DEFAULT 0,
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	notation TEXT NOT NULL,
	side TEXT NOT NULL CHECK(side IN ('upper', 'down')),
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_upper_player ON games(upper_player_id);
CREATE INDEX IF NOT EXISTS idx_games_down_player ON games(down_player_id);
`
