package game

// UltimateBoard is the full 9x9 board, row-major, together with the
// decided state of each mini-grid (row-major over the 3x3 macro grid).
type UltimateBoard struct {
	Cells       [81]Cell
	MiniWinners Grid
}

// UltimateOutcome is the result of EvaluateUltimate. NextGrid is 0 when the
// next player may choose any open mini-grid, otherwise the 1-based index of
// the mini-grid they are sent to.
type UltimateOutcome struct {
	Legal      bool
	Reason     Legality
	Board      UltimateBoard
	NextPlayer Cell
	Winner     Cell
	NextGrid   int
}

// CellIndex maps a 1-based (mini-grid, cell) pair to the flat index into
// UltimateBoard.Cells. Both arguments must be in 1..9.
func CellIndex(grid, cell int) int {
	g, c := grid-1, cell-1
	row := (g/3)*3 + c/3
	col := (g%3)*3 + c%3
	return row*9 + col
}

// Locate is the inverse of CellIndex.
func Locate(index int) (grid, cell int) {
	row, col := index/9, index%9
	grid = (row/3)*3 + col/3 + 1
	cell = (row%3)*3 + col%3 + 1
	return grid, cell
}

// Mini returns the cells of the 1-based mini-grid as a row-major block.
func (b UltimateBoard) Mini(grid int) Grid {
	var g Grid
	for cell := 1; cell <= 9; cell++ {
		g[cell-1] = b.Cells[CellIndex(grid, cell)]
	}
	return g
}

// Exhausted reports whether every mini-grid has been decided, leaving no
// legal move on the board.
func (b UltimateBoard) Exhausted() bool {
	for _, w := range b.MiniWinners {
		if w == None {
			return false
		}
	}
	return true
}

// Consistent reports whether every cell holds Empty or a player mark and
// every mini-grid winner equals the result derived from its cells.
func (b UltimateBoard) Consistent() bool {
	for _, c := range b.Cells {
		if c != Empty && !c.IsPlayer() {
			return false
		}
	}
	for i, w := range b.MiniWinners {
		if w > Draw || b.Mini(i+1).Result() != w {
			return false
		}
	}
	return true
}

// EvaluateUltimate applies player's mark to the 1-based cell of the 1-based
// mini-grid and recomputes the affected mini-grid, the overall winner and
// the forced grid for the next move. board is never modified. An illegal
// move returns an unchanged copy of board, keeps the turn with player and
// reports no winner and a free choice of grid.
func EvaluateUltimate(board UltimateBoard, player Cell, grid, cell int) UltimateOutcome {
	out := UltimateOutcome{
		Board:      board,
		NextPlayer: player,
		Winner:     None,
	}

	out.Reason = CheckUltimate(board, player, grid, cell)
	if out.Reason != Legal {
		return out
	}

	out.Board.Cells[CellIndex(grid, cell)] = player
	out.Legal = true

	if res := out.Board.Mini(grid).Result(); res != None {
		out.Board.MiniWinners[grid-1] = res
	}
	out.Winner = LineWinner(out.Board.MiniWinners)

	// The inner position of the move names the mini-grid the opponent is
	// sent to, unless that grid is already decided.
	if out.Board.MiniWinners[cell-1] == None {
		out.NextGrid = cell
	}

	out.NextPlayer = player.Opponent()
	return out
}
