package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  Command
		ok    bool
	}{
		{"up", CommandUp, true},
		{"DOWN", CommandDown, true},
		{"  left ", CommandLeft, true},
		{"right", CommandRight, true},
		{"ArrowUp", CommandUp, true},
		{"ArrowDown", CommandDown, true},
		{"ArrowLeft", CommandLeft, true},
		{"ArrowRight", CommandRight, true},
		{"reset", CommandReset, true},
		{"", "", false},
		{"jump", "", false},
		{"u", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseCommand(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.String())
		assert.True(t, ok, d.String())
		assert.Equal(t, d, got)
	}

	_, ok := ParseDirection("reset")
	assert.False(t, ok)
	_, ok = ParseDirection("sideways")
	assert.False(t, ok)
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "up", Up.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "unknown", Direction(9).String())
}

func TestCommand_Direction(t *testing.T) {
	d, ok := CommandLeft.Direction()
	assert.True(t, ok)
	assert.Equal(t, Left, d)

	_, ok = CommandReset.Direction()
	assert.False(t, ok)
}

func TestOutcome_JSON(t *testing.T) {
	data, err := json.Marshal(Outcome{Command: CommandUp, Recognized: true, Changed: true, Spawned: true})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"command":"up","recognized":true,"changed":true,"spawned":true}`, string(data))
}

func TestValidTiles(t *testing.T) {
	for _, v := range []int{0, 2, 4, 8, 2048, 1 << 20} {
		assert.True(t, IsTileValue(v), "%d", v)
	}
	for _, v := range []int{1, 3, 6, -2, -4} {
		assert.False(t, IsTileValue(v), "%d", v)
	}

	assert.True(t, ValidTiles([]int{0, 2, 4, 0}))
	assert.False(t, ValidTiles([]int{0, 2, 5, 0}))
	assert.True(t, ValidTiles(nil))
}
