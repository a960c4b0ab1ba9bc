package service

import (
	"time"

	"github.com/wricardo/tilemerge/game/engine"
)

// CreateOptions configures a new session
type CreateOptions struct {
	// ID requests a specific session ID; empty generates one.
	ID string `json:"id,omitempty"`
	// Seed makes spawns reproducible; nil uses the OS entropy pool.
	Seed *uint64 `json:"seed,omitempty"`
	// Tiles builds the starting board from 16 row-major values instead of
	// seeding it randomly.
	Tiles []int `json:"tiles,omitempty"`
	// Strict rejects Tiles holding values play could never produce.
	Strict bool `json:"strict,omitempty"`
}

// BoardView is the serializable form of a board
type BoardView struct {
	Tiles      []int   `json:"tiles"`
	Rows       [][]int `json:"rows"`
	EmptyCells int     `json:"empty_cells"`
	MaxTile    int     `json:"max_tile"`
}

// NewBoardView captures the current state of b.
func NewBoardView(b *engine.Board) *BoardView {
	return &BoardView{
		Tiles:      b.Tiles(),
		Rows:       b.Rows(),
		EmptyCells: b.EmptyCount(),
		MaxTile:    engine.MaxTile(b),
	}
}

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string     `json:"id"`
	Seed           *uint64    `json:"seed,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`
	Board          *BoardView `json:"board"`
}

// MoveResult contains the result of a single command
type MoveResult struct {
	Command    string     `json:"command,omitempty"`
	Recognized bool       `json:"recognized"`
	Changed    bool       `json:"changed"`
	Spawned    bool       `json:"spawned"`
	Message    string     `json:"message"`
	Board      *BoardView `json:"board"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	RequestedMoves int        `json:"requested_moves"`
	MovesExecuted  int        `json:"moves_executed"`
	ChangedMoves   int        `json:"changed_moves"`
	Truncated      bool       `json:"truncated,omitempty"`
	Limit          int        `json:"limit,omitempty"`
	Steps          []StepInfo `json:"steps,omitempty"`
	Board          *BoardView `json:"board"`
}

// StepInfo is a compact record for each executed move in the bulk call
type StepInfo struct {
	Idx        int    `json:"idx"`
	Input      string `json:"input"`
	Recognized bool   `json:"recognized"`
	Changed    bool   `json:"changed"`
	Spawned    bool   `json:"spawned,omitempty"`
}

// Changed reports whether any step altered the board.
func (r *BulkMoveResult) Changed() bool {
	return r.ChangedMoves > 0
}
