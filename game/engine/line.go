package engine

// line is one row or column of the board, held as pointers into the grid.
// Index 0 is the cell at the edge the move pushes toward; the last index is
// the cell furthest from it.
type line [Size]*int

// lines returns the four lines a move in direction d operates on.
func (b *Board) lines(d Direction) [Size]line {
	var ls [Size]line
	for i := 0; i < Size; i++ {
		for k := 0; k < Size; k++ {
			far := Size - 1 - k
			switch d {
			case Right:
				ls[i][k] = &b.cells[i][far]
			case Left:
				ls[i][k] = &b.cells[i][k]
			case Down:
				ls[i][k] = &b.cells[far][i]
			case Up:
				ls[i][k] = &b.cells[k][i]
			}
		}
	}
	return ls
}
