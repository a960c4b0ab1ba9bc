package engine

// Move slides and merges every line toward direction d. It reports whether
// any cell changed. Lines are independent of each other.
func (b *Board) Move(d Direction) bool {
	changed := false
	for _, l := range b.lines(d) {
		changed = merge(l) || changed
		changed = pack(l) || changed
	}
	return changed
}

// MoveUp moves every column toward the top row
func (b *Board) MoveUp() bool { return b.Move(Up) }

// MoveDown moves every column toward the bottom row
func (b *Board) MoveDown() bool { return b.Move(Down) }

// MoveLeft moves every row toward the left column
func (b *Board) MoveLeft() bool { return b.Move(Left) }

// MoveRight moves every row toward the right column
func (b *Board) MoveRight() bool { return b.Move(Right) }

// merge combines equal neighbours in a single pass from the leading edge.
// Empty cells between two equal values do not prevent a merge. Once a value
// has been merged its slot is closed, so a third equal value starts a new
// candidate instead of merging again: 2 2 2 becomes 4 _ 2.
func merge(l line) bool {
	changed := false
	var open *int
	openValue := 0

	for _, t := range l {
		v := *t
		if v == 0 {
			continue
		}

		if v != openValue {
			open = t
			openValue = v
			continue
		}

		*open = openValue * 2
		*t = 0
		open = nil
		openValue = 0
		changed = true
	}

	return changed
}

// pack slides non-zero values toward the leading edge, keeping their order.
// Empty cells are queued as they are seen; each non-zero value behind a gap
// moves into the earliest queued cell and its own cell joins the queue.
func pack(l line) bool {
	changed := false
	empty := make([]*int, 0, Size)

	for _, t := range l {
		v := *t
		if v == 0 {
			empty = append(empty, t)
			continue
		}

		if len(empty) == 0 {
			continue
		}

		slot := empty[0]
		empty = empty[1:]
		*slot = v
		*t = 0
		empty = append(empty, t)
		changed = true
	}

	return changed
}
