// Command replay plays a fixed sequence of inputs against a seeded board and
// prints the board after every step. Equal seeds and inputs always print the
// same game, which makes it handy for reproducing a reported session.
//
//	replay --seed 42 left left up reset down
//	replay --seed 7 --tiles 2,2,0,0,0,0,0,0,0,0,0,0,0,0,0,0 right
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/tilemerge/game/engine"
)

// Summary totals a replay.
type Summary struct {
	Steps      int
	Ignored    int
	Changed    int
	MaxTile    int
	EmptyCells int
	Final      []int
}

func main() {
	cmd := &cli.Command{
		Name:      "replay",
		Usage:     "Replay inputs against a seeded board",
		ArgsUsage: "<input>...",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Seed for the starting board and every spawn",
			},
			&cli.StringFlag{
				Name:  "tiles",
				Usage: "16 comma-separated starting values in row-major order",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "Only print the summary",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tiles, err := parseTiles(cmd.String("tiles"))
			if err != nil {
				return err
			}

			out := io.Writer(os.Stdout)
			if cmd.Bool("quiet") {
				out = io.Discard
			}

			summary, err := replay(out, tiles, cmd.Uint64("seed"), cmd.Args().Slice())
			if err != nil {
				return err
			}
			printSummary(os.Stdout, summary)
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		os.Exit(1)
	}
}

// parseTiles reads "2,0,4,..." into a row-major slice. An empty string means
// a freshly seeded board.
func parseTiles(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	fields := strings.Split(raw, ",")
	tiles := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("tile %q: %w", f, err)
		}
		tiles = append(tiles, v)
	}
	if len(tiles) != engine.CellCount {
		return nil, fmt.Errorf("%w: got %d, want %d", engine.ErrInvalidLength, len(tiles), engine.CellCount)
	}
	return tiles, nil
}

// replay feeds inputs to a seeded engine, writing each step to w.
func replay(w io.Writer, tiles []int, seed uint64, inputs []string) (Summary, error) {
	rng := engine.SeededSource(seed)

	var (
		eng *engine.GameEngine
		err error
	)
	if tiles != nil {
		eng, err = engine.NewEngineFromTiles(tiles, rng)
		if err != nil {
			return Summary{}, err
		}
	} else {
		eng = engine.NewEngine(rng)
	}

	fmt.Fprintf(w, "=== start (seed %d) ===\n%s", seed, eng.Board())

	var summary Summary
	for i, input := range inputs {
		summary.Steps++
		outcome := eng.HandleInput(input)

		switch {
		case !outcome.Recognized:
			summary.Ignored++
			fmt.Fprintf(w, "\n%d. %s: ignored\n", i+1, input)
			continue
		case outcome.Changed:
			summary.Changed++
			fmt.Fprintf(w, "\n%d. %s: changed", i+1, outcome.Command)
			if outcome.Spawned {
				fmt.Fprint(w, ", spawned")
			}
			fmt.Fprintln(w)
		default:
			fmt.Fprintf(w, "\n%d. %s: nothing moved\n", i+1, outcome.Command)
		}
		fmt.Fprint(w, eng.Board())
	}

	board := eng.Board()
	summary.MaxTile = engine.MaxTile(board)
	summary.EmptyCells = board.EmptyCount()
	summary.Final = board.Tiles()
	return summary, nil
}

func printSummary(w io.Writer, s Summary) {
	fmt.Fprintf(w, "\nSteps: %d (changed %d, ignored %d)\n", s.Steps, s.Changed, s.Ignored)
	fmt.Fprintf(w, "Max tile: %d | Empty cells: %d\n", s.MaxTile, s.EmptyCells)
}
