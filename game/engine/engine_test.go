package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_MoveSpawnsOnChange(t *testing.T) {
	eng, err := NewEngineFromTiles([]int{
		0, 0, 2, 2,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}, zeroSource())
	require.NoError(t, err)

	out := eng.Handle(CommandRight)

	assert.Equal(t, Outcome{Command: CommandRight, Recognized: true, Changed: true, Spawned: true}, out)
	want := []int{
		2, 0, 0, 4,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	if diff := cmp.Diff(want, eng.Snapshot()); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_NoSpawnWithoutChange(t *testing.T) {
	tiles := []int{
		0, 0, 2, 4,
		0, 0, 0, 8,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	calls := 0
	rng := RandomFunc(func(n int) int {
		calls++
		return 0
	})
	eng, err := NewEngineFromTiles(tiles, rng)
	require.NoError(t, err)

	assert.False(t, eng.Move(Right))
	assert.Equal(t, tiles, eng.Snapshot())
	assert.Zero(t, calls, "random source consulted for an unchanged move")
}

func TestEngine_FullBoardMergeStillSpawns(t *testing.T) {
	eng, err := NewEngineFromTiles([]int{
		2, 2, 4, 8,
		4, 8, 16, 32,
		8, 16, 32, 64,
		16, 32, 64, 128,
	}, zeroSource())
	require.NoError(t, err)

	out := eng.Handle(CommandLeft)
	assert.True(t, out.Changed)
	assert.True(t, out.Spawned)
	assert.Equal(t, []int{4, 4, 8, 2}, eng.Board().Rows()[0])
}

func TestEngine_Reset(t *testing.T) {
	eng, err := NewEngineFromTiles([]int{
		1024, 1024, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}, zeroSource())
	require.NoError(t, err)

	out := eng.HandleInput("reset")

	assert.Equal(t, Outcome{Command: CommandReset, Recognized: true, Changed: true}, out)
	assert.Equal(t, []int{2, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, eng.Snapshot())
}

func TestEngine_UnknownInputIgnored(t *testing.T) {
	eng := NewEngine(SeededSource(3))
	before := eng.Snapshot()

	for _, raw := range []string{"", "jump", "Enter", "q"} {
		out := eng.HandleInput(raw)
		assert.Equal(t, Outcome{}, out, "input %q", raw)
	}
	assert.Equal(t, before, eng.Snapshot())

	out := eng.Handle(Command("diagonal"))
	assert.False(t, out.Recognized)
	assert.Equal(t, before, eng.Snapshot())
}

func TestEngine_ArrowKeyInput(t *testing.T) {
	eng, err := NewEngineFromTiles([]int{
		0, 0, 2, 2,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}, RandomFunc(func(n int) int { return n - 1 }))
	require.NoError(t, err)

	out := eng.HandleInput("ArrowLeft")

	assert.Equal(t, CommandLeft, out.Command)
	assert.True(t, out.Changed)
	want := []int{
		4, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 4,
	}
	if diff := cmp.Diff(want, eng.Snapshot()); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
}

func TestEngine_BulkMove(t *testing.T) {
	eng, err := NewEngineFromTiles([]int{
		2, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}, zeroSource())
	require.NoError(t, err)

	results := eng.BulkMove([]Direction{Left, Right, Down})
	assert.Equal(t, []bool{false, true, true}, results)
}

func TestNewEngine_NilSourceUsesCrypto(t *testing.T) {
	eng := NewEngine(nil)
	assert.Equal(t, InitialTiles, CountNonZero(eng.Snapshot()))
}

// slideLeft is a straightforward compact-merge-compact reference for one line.
func slideLeft(row []int) []int {
	packed := make([]int, 0, len(row))
	for _, v := range row {
		if v != 0 {
			packed = append(packed, v)
		}
	}
	out := make([]int, 0, len(row))
	for i := 0; i < len(packed); i++ {
		if i+1 < len(packed) && packed[i] == packed[i+1] {
			out = append(out, packed[i]*2)
			i++
			continue
		}
		out = append(out, packed[i])
	}
	for len(out) < len(row) {
		out = append(out, 0)
	}
	return out
}

// referenceMove applies slideLeft to each line of tiles in the given direction.
func referenceMove(tiles []int, d Direction) []int {
	out := make([]int, CellCount)
	for i := 0; i < Size; i++ {
		idx := make([]int, Size)
		for k := 0; k < Size; k++ {
			far := Size - 1 - k
			switch d {
			case Left:
				idx[k] = i*Size + k
			case Right:
				idx[k] = i*Size + far
			case Up:
				idx[k] = k*Size + i
			case Down:
				idx[k] = far*Size + i
			}
		}
		row := make([]int, Size)
		for k, at := range idx {
			row[k] = tiles[at]
		}
		for k, v := range slideLeft(row) {
			out[idx[k]] = v
		}
	}
	return out
}

func sum(tiles []int) int {
	total := 0
	for _, v := range tiles {
		total += v
	}
	return total
}

func TestMove_MatchesReference(t *testing.T) {
	for seed := uint64(0); seed < 300; seed++ {
		src := SeededSource(seed)
		eng := NewEngine(src)

		for step := 0; step < 40; step++ {
			d := Directions[src.Intn(len(Directions))]
			before := eng.Snapshot()
			want := referenceMove(before, d)

			probe := eng.Board().Clone()
			changed := probe.Move(d)
			if diff := cmp.Diff(want, probe.Tiles()); diff != "" {
				t.Fatalf("seed %d step %d %s from %v (-want +got):\n%s", seed, step, d, before, diff)
			}
			if changed != !cmp.Equal(before, want) {
				t.Fatalf("seed %d step %d: changed = %v for %v", seed, step, changed, before)
			}

			out := eng.Handle(Command(d.String()))
			after := eng.Snapshot()
			if !ValidTiles(after) {
				t.Fatalf("seed %d step %d: invalid tile in %v", seed, step, after)
			}
			if !out.Changed {
				if !cmp.Equal(before, after) {
					t.Fatalf("seed %d step %d: unchanged move altered board", seed, step)
				}
				continue
			}

			// Exactly one new tile worth 2 or 4 lands on a cell the move left empty.
			spawned := sum(after) - sum(want)
			if spawned != 2 && spawned != 4 {
				t.Fatalf("seed %d step %d: spawned total %d", seed, step, spawned)
			}
			if CountNonZero(after) != CountNonZero(want)+1 {
				t.Fatalf("seed %d step %d: expected one spawned tile, %v -> %v", seed, step, want, after)
			}
		}
	}
}
