package engine

import (
	"encoding/json"
	"fmt"
	"iter"
	"strings"
)

// Board is the 4x4 grid of tile values. A cell holds 0 (empty) or a power
// of two. Board is mutated in place by moves and spawns.
type Board struct {
	cells [Size][Size]int
}

// NewBoard creates a board with InitialTiles cells, chosen uniformly without
// replacement, each set to 2 or 4 with equal probability.
func NewBoard(rng RandomSource) *Board {
	b := &Board{}

	free := make([]int, CellCount)
	for i := range free {
		free[i] = i
	}

	for range InitialTiles {
		idx := drawIndex(rng, len(free))
		pos := free[idx]
		free = append(free[:idx], free[idx+1:]...)

		b.cells[pos/Size][pos%Size] = drawValue(rng)
	}

	return b
}

// FromTiles builds a board from a row-major sequence of exactly CellCount
// values. Values are not validated beyond the length.
func FromTiles(values []int) (*Board, error) {
	if len(values) != CellCount {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidLength, CellCount, len(values))
	}

	b := &Board{}
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			b.cells[i][j] = values[i*Size+j]
		}
	}
	return b, nil
}

// Get returns the value at (row, col).
func (b *Board) Get(row, col int) int {
	return b.cells[row][col]
}

// Values yields the 16 cell values in row-major order. The sequence can be
// ranged over any number of times.
func (b *Board) Values() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < Size; i++ {
			for j := 0; j < Size; j++ {
				if !yield(b.cells[i][j]) {
					return
				}
			}
		}
	}
}

// Tiles returns a row-major copy of the cell values.
func (b *Board) Tiles() []int {
	tiles := make([]int, 0, CellCount)
	for v := range b.Values() {
		tiles = append(tiles, v)
	}
	return tiles
}

// Rows returns a copy of the grid as a slice of rows.
func (b *Board) Rows() [][]int {
	rows := make([][]int, Size)
	for i := range rows {
		row := b.cells[i]
		rows[i] = row[:]
	}
	return rows
}

// EmptyCount returns the number of empty cells.
func (b *Board) EmptyCount() int {
	n := 0
	for v := range b.Values() {
		if v == 0 {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// Equal reports whether both boards hold the same values.
func (b *Board) Equal(other *Board) bool {
	return other != nil && b.cells == other.cells
}

// String renders the board as an ASCII grid
func (b *Board) String() string {
	line := "+------+------+------+------+"
	var sb strings.Builder
	sb.WriteString(line + "\n")
	for i := 0; i < Size; i++ {
		sb.WriteString("|")
		for j := 0; j < Size; j++ {
			if b.cells[i][j] == 0 {
				sb.WriteString("      |")
			} else {
				fmt.Fprintf(&sb, "%5d |", b.cells[i][j])
			}
		}
		sb.WriteString("\n" + line + "\n")
	}
	return sb.String()
}

type boardJSON struct {
	Tiles []int `json:"tiles"`
}

// MarshalJSON encodes the board as {"tiles": [...]} in row-major order.
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{Tiles: b.Tiles()})
}

// UnmarshalJSON decodes {"tiles": [...]}, rejecting a wrong tile count.
func (b *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := FromTiles(raw.Tiles)
	if err != nil {
		return err
	}
	*b = *decoded
	return nil
}
