package game

// Grid is a row-major 3x3 block, either board cells or mini-grid winners.
type Grid [9]Cell

// lines lists every winning triple in scan order: rows top to bottom,
// columns left to right, then the main and anti diagonals.
var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// LineWinner returns the player owning the first complete line of g, or None.
// Empty and Draw never complete a line.
func LineWinner(g Grid) Cell {
	for _, ln := range lines {
		v := g[ln[0]]
		if !v.IsPlayer() {
			continue
		}
		if g[ln[1]] == v && g[ln[2]] == v {
			return v
		}
	}
	return None
}

// Full reports whether no cell of g is Empty.
func (g Grid) Full() bool {
	for _, c := range g {
		if c == Empty {
			return false
		}
	}
	return true
}

// Result returns the line winner of g, Draw when g is full without a line,
// and None otherwise.
func (g Grid) Result() Cell {
	if w := LineWinner(g); w != None {
		return w
	}
	if g.Full() {
		return Draw
	}
	return None
}
