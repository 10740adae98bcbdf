// Package eval scores a board as material plus positional bonuses from
// immutable lookup tables. Tables are loaded once at startup and shared
// read-only between concurrent searches.
package eval

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"abchess/internal/core"
)

// PieceValuesFile holds 12 floats in piece order: Upper P R N B Q K, then
// Down P R N B Q K. Position files hold 8x8 floats row-major for one piece;
// border squares are implicitly zero.
const PieceValuesFile = "pvalues.txt"

var posValueFiles = [core.NumPlayablePieces]string{
	"pos_value_upper_pawn.txt",
	"pos_value_upper_rook.txt",
	"pos_value_upper_knight.txt",
	"pos_value_upper_bishop.txt",
	"pos_value_upper_queen.txt",
	"pos_value_upper_king.txt",
	"pos_value_down_pawn.txt",
	"pos_value_down_rook.txt",
	"pos_value_down_knight.txt",
	"pos_value_down_bishop.txt",
	"pos_value_down_queen.txt",
	"pos_value_down_king.txt",
}

// Config is the immutable evaluation table set. Higher scores favor Down,
// lower favor Upper, so Upper piece values are negative.
type Config struct {
	pieceValues [core.NumPlayablePieces]float64
	posValues   [core.NumPlayablePieces][core.GridSize][core.GridSize]float64
}

func (c *Config) PieceValue(p core.Piece) float64 {
	return c.pieceValues[p]
}

func (c *Config) PosValue(p core.Piece, row, col int) float64 {
	return c.posValues[p][row][col]
}

// Default returns the built-in tables: classic material values with no
// positional bias. Lets the binaries run without external table files.
func Default() *Config {
	material := [6]float64{100, 500, 320, 330, 900, 20000} // P R N B Q K
	cfg := &Config{}
	for k, v := range material {
		cfg.pieceValues[core.PieceFor(core.Upper, core.PieceKind(k))] = -v
		cfg.pieceValues[core.PieceFor(core.Down, core.PieceKind(k))] = v
	}
	return cfg
}

// Load reads the full table set from a directory. Any missing file or
// malformed number is a fatal configuration error; the caller must not start
// a game with a partially loaded Config.
func Load(dir string) (*Config, error) {
	cfg := &Config{}

	values, err := readFloats(filepath.Join(dir, PieceValuesFile))
	if err != nil {
		return nil, fmt.Errorf("piece values: %w", err)
	}
	if len(values) != core.NumPlayablePieces {
		return nil, fmt.Errorf("piece values: want %d entries, got %d",
			core.NumPlayablePieces, len(values))
	}
	copy(cfg.pieceValues[:], values)

	for piece, name := range posValueFiles {
		values, err := readFloats(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("position values: %w", err)
		}
		if len(values) != 64 {
			return nil, fmt.Errorf("position values %s: want 64 entries, got %d",
				name, len(values))
		}
		for i, v := range values {
			r := core.LineBegin + i/8
			c := core.LineBegin + i%8
			cfg.posValues[piece][r][c] = v
		}
	}

	return cfg, nil
}

func readFloats(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(string(data))
	values := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad value %q", filepath.Base(path), f)
		}
		values = append(values, v)
	}
	return values, nil
}
