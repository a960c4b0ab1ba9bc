package engine

// CountNonZero counts the occupied cells in a row-major tile slice
func CountNonZero(tiles []int) int {
	count := 0
	for _, v := range tiles {
		if v != 0 {
			count++
		}
	}
	return count
}

// MaxTile returns the largest value on the board
func MaxTile(b *Board) int {
	highest := 0
	for v := range b.Values() {
		if v > highest {
			highest = v
		}
	}
	return highest
}

// IsTileValue reports whether v can appear on a board reached through play:
// 0 or a power of two no smaller than 2.
func IsTileValue(v int) bool {
	if v == 0 {
		return true
	}
	return v >= 2 && v&(v-1) == 0
}

// ValidTiles reports whether every value is a legal tile value.
func ValidTiles(tiles []int) bool {
	for _, v := range tiles {
		if !IsTileValue(v) {
			return false
		}
	}
	return true
}
