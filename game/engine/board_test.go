package engine

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zeroSource() RandomSource {
	return RandomFunc(func(n int) int { return 0 })
}

func TestNewBoard_SeedsThreeTiles(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		board := NewBoard(SeededSource(seed))
		tiles := board.Tiles()

		require.Len(t, tiles, CellCount)
		assert.Equal(t, InitialTiles, CountNonZero(tiles), "seed %d: %v", seed, tiles)
		for _, v := range tiles {
			if v != 0 && v != 2 && v != 4 {
				t.Fatalf("seed %d: unexpected seed value %d in %v", seed, v, tiles)
			}
		}
	}
}

func TestNewBoard_ZeroFallback(t *testing.T) {
	board := NewBoard(zeroSource())

	want := []int{
		2, 2, 2, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
	}
	if diff := cmp.Diff(want, board.Tiles()); diff != "" {
		t.Errorf("zero-fallback board mismatch (-want +got):\n%s", diff)
	}
}

func TestNewBoard_SamplesWithoutReplacement(t *testing.T) {
	// Always picking the last candidate walks down from cell 15.
	last := RandomFunc(func(n int) int { return n - 1 })
	board := NewBoard(last)

	want := []int{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 4, 4, 4,
	}
	if diff := cmp.Diff(want, board.Tiles()); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
}

func TestNewBoard_CryptoSourceUnavailable(t *testing.T) {
	board := NewBoard(CryptoSource{Reader: failingReader{}})

	assert.Equal(t, []int{2, 2, 2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, board.Tiles())
}

func TestFromTiles_RoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		tiles []int
	}{
		{"empty", make([]int, CellCount)},
		{"ascending", []int{0, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768}},
		{"unvalidated values", []int{3, -1, 7, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board, err := FromTiles(tt.tiles)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.tiles, board.Tiles()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromTiles_RowMajorAddressing(t *testing.T) {
	board, err := FromTiles([]int{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	})
	require.NoError(t, err)

	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			if got := board.Get(i, j); got != i*Size+j+1 {
				t.Errorf("Get(%d, %d) = %d, want %d", i, j, got, i*Size+j+1)
			}
		}
	}
	assert.Equal(t, []int{5, 6, 7, 8}, board.Rows()[1])
}

func TestFromTiles_InvalidLength(t *testing.T) {
	for _, n := range []int{0, 1, 15, 17, 32} {
		_, err := FromTiles(make([]int, n))
		if !errors.Is(err, ErrInvalidLength) {
			t.Errorf("FromTiles(len %d): expected ErrInvalidLength, got %v", n, err)
		}
	}
}

func TestBoard_ValuesIsRestartable(t *testing.T) {
	tiles := []int{2, 0, 0, 4, 0, 8, 0, 0, 0, 0, 16, 0, 0, 0, 0, 2}
	board, err := FromTiles(tiles)
	require.NoError(t, err)

	for pass := 0; pass < 3; pass++ {
		var got []int
		for v := range board.Values() {
			got = append(got, v)
		}
		assert.Equal(t, tiles, got, "pass %d", pass)
	}

	// Early exit from a range must not panic
	for v := range board.Values() {
		if v == 4 {
			break
		}
	}
}

func TestBoard_TilesIsACopy(t *testing.T) {
	board, err := FromTiles(make([]int, CellCount))
	require.NoError(t, err)

	tiles := board.Tiles()
	tiles[0] = 1024
	rows := board.Rows()
	rows[3][3] = 2048

	assert.Equal(t, 0, board.Get(0, 0))
	assert.Equal(t, 0, board.Get(3, 3))
}

func TestBoard_CloneAndEqual(t *testing.T) {
	board, err := FromTiles([]int{2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)

	clone := board.Clone()
	assert.True(t, board.Equal(clone))

	clone.MoveRight()
	assert.False(t, board.Equal(clone))
	assert.Equal(t, 2, board.Get(0, 0))
	assert.False(t, board.Equal(nil))
}

func TestBoard_EmptyCountAndMaxTile(t *testing.T) {
	board, err := FromTiles([]int{2, 0, 0, 4, 0, 0, 0, 0, 0, 64, 0, 0, 0, 0, 0, 8})
	require.NoError(t, err)

	assert.Equal(t, 12, board.EmptyCount())
	assert.Equal(t, 64, MaxTile(board))
}

func TestBoard_JSON(t *testing.T) {
	tiles := []int{0, 2, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 8, 0, 0, 0}
	board, err := FromTiles(tiles)
	require.NoError(t, err)

	data, err := json.Marshal(board)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tiles":[0,2,0,0,0,0,4,0,0,0,0,0,8,0,0,0]}`, string(data))

	var decoded Board
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, board.Equal(&decoded))

	err = json.Unmarshal([]byte(`{"tiles":[2,2]}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestBoard_String(t *testing.T) {
	board, err := FromTiles([]int{2, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2048})
	require.NoError(t, err)

	out := board.String()
	assert.Contains(t, out, "|    2 |")
	assert.Contains(t, out, " 2048 |")
}
