package engine

// Engine is the command-driven controller around a single board.
type Engine interface {
	// Board state
	Board() *Board
	Snapshot() []int
	Reset()

	// Commands
	Move(d Direction) bool
	Handle(cmd Command) Outcome
	HandleInput(raw string) Outcome
}

// GameEngine implements Engine. It owns the board and the random source used
// for seeding and spawning. It is not safe for concurrent use; callers
// serialize commands (see the session package).
type GameEngine struct {
	board *Board
	rng   RandomSource
}

// NewEngine creates an engine with a freshly seeded board.
func NewEngine(rng RandomSource) *GameEngine {
	if rng == nil {
		rng = CryptoSource{}
	}
	return &GameEngine{
		board: NewBoard(rng),
		rng:   rng,
	}
}

// NewEngineFromTiles creates an engine whose board is built from tiles.
// The random source is still used for later spawns and resets.
func NewEngineFromTiles(tiles []int, rng RandomSource) (*GameEngine, error) {
	board, err := FromTiles(tiles)
	if err != nil {
		return nil, err
	}
	if rng == nil {
		rng = CryptoSource{}
	}
	return &GameEngine{board: board, rng: rng}, nil
}

// Board returns the live board. Readers must not hold it across commands.
func (e *GameEngine) Board() *Board {
	return e.board
}

// Snapshot returns the row-major tile values.
func (e *GameEngine) Snapshot() []int {
	return e.board.Tiles()
}

// Reset replaces the board with a freshly seeded one
func (e *GameEngine) Reset() {
	e.board = NewBoard(e.rng)
}

// Move applies d and, if the board changed, spawns one tile.
func (e *GameEngine) Move(d Direction) bool {
	return e.move(d).Changed
}

func (e *GameEngine) move(d Direction) Outcome {
	out := Outcome{Recognized: true}
	if !e.board.Move(d) {
		return out
	}
	out.Changed = true
	out.Spawned = e.board.Spawn(e.rng)
	return out
}

// Handle dispatches a parsed command. Unknown commands are ignored.
func (e *GameEngine) Handle(cmd Command) Outcome {
	if cmd == CommandReset {
		e.Reset()
		return Outcome{Command: cmd, Recognized: true, Changed: true}
	}

	d, ok := cmd.Direction()
	if !ok {
		return Outcome{Command: cmd}
	}

	out := e.move(d)
	out.Command = cmd
	return out
}

// HandleInput parses raw input and dispatches it.
func (e *GameEngine) HandleInput(raw string) Outcome {
	cmd, ok := ParseCommand(raw)
	if !ok {
		return Outcome{}
	}
	return e.Handle(cmd)
}

// BulkMove applies each direction in order and returns the changed flag of each.
func (e *GameEngine) BulkMove(moves []Direction) []bool {
	results := make([]bool, 0, len(moves))
	for _, d := range moves {
		results = append(results, e.Move(d))
	}
	return results
}
