package engine

import (
	"errors"
	"strings"
)

const (
	// Size is the edge length of the square grid.
	Size = 4
	// CellCount is the number of cells on the grid.
	CellCount = Size * Size
	// InitialTiles is the number of non-empty cells placed on a fresh board.
	InitialTiles = 3

	// Service-level limits
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256
)

// SpawnValues are the values a new tile can take, drawn with equal probability.
var SpawnValues = [2]int{2, 4}

// ErrInvalidLength is returned when a board is built from a sequence that
// does not hold exactly CellCount values.
var ErrInvalidLength = errors.New("invalid tile count")

// ErrInvalidTileValue is returned by strict board construction when a value
// is neither 0 nor a power of two of at least 2.
var ErrInvalidTileValue = errors.New("invalid tile value")

// Direction is one of the four move commands.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in a stable order.
var Directions = [4]Direction{Up, Down, Left, Right}

// String returns the lower-case name of the direction
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps a direction name to a Direction.
func ParseDirection(name string) (Direction, bool) {
	cmd, ok := ParseCommand(name)
	if !ok || cmd == CommandReset {
		return 0, false
	}
	return cmd.Direction()
}

// Command is an input to the controller: a direction or a reset.
type Command string

const (
	CommandUp    Command = "up"
	CommandDown  Command = "down"
	CommandLeft  Command = "left"
	CommandRight Command = "right"
	CommandReset Command = "reset"
)

// ParseCommand normalizes raw input into a Command. Besides the command names
// it accepts the browser key names ArrowUp, ArrowDown, ArrowLeft and ArrowRight.
func ParseCommand(raw string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "up", "arrowup":
		return CommandUp, true
	case "down", "arrowdown":
		return CommandDown, true
	case "left", "arrowleft":
		return CommandLeft, true
	case "right", "arrowright":
		return CommandRight, true
	case "reset":
		return CommandReset, true
	default:
		return "", false
	}
}

// Direction returns the move direction of a directional command.
func (c Command) Direction() (Direction, bool) {
	switch c {
	case CommandUp:
		return Up, true
	case CommandDown:
		return Down, true
	case CommandLeft:
		return Left, true
	case CommandRight:
		return Right, true
	default:
		return 0, false
	}
}

// Outcome reports what handling a single command did to the board.
type Outcome struct {
	Command    Command `json:"command,omitempty"`
	Recognized bool    `json:"recognized"`
	Changed    bool    `json:"changed"`
	Spawned    bool    `json:"spawned"`
}
