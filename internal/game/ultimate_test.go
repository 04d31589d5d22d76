package game

import "testing"

// fillMini writes g into the 1-based mini-grid of b and sets its winner
// from the cells.
func fillMini(b *UltimateBoard, grid int, g Grid) {
	for cell := 1; cell <= 9; cell++ {
		b.Cells[CellIndex(grid, cell)] = g[cell-1]
	}
	b.MiniWinners[grid-1] = g.Result()
}

var (
	wonByP1 = Grid{
		Player1, Player1, Player1,
		Player2, Player2, Empty,
		Empty, Empty, Empty,
	}
	wonByP2 = Grid{
		Player2, Player1, Player1,
		Empty, Player2, Empty,
		Player1, Empty, Player2,
	}
	drawn = Grid{
		Player1, Player2, Player1,
		Player1, Player2, Player2,
		Player2, Player1, Player1,
	}
)

func TestCellIndexAndLocate(t *testing.T) {
	tests := []struct {
		grid, cell, index int
	}{
		{1, 1, 0},
		{1, 9, 20},
		{2, 1, 3},
		{3, 3, 8},
		{5, 5, 40},
		{4, 1, 27},
		{9, 9, 80},
		{7, 3, 56},
	}

	for _, tt := range tests {
		if got := CellIndex(tt.grid, tt.cell); got != tt.index {
			t.Errorf("CellIndex(%d, %d) = %d, expected %d", tt.grid, tt.cell, got, tt.index)
		}
		g, c := Locate(tt.index)
		if g != tt.grid || c != tt.cell {
			t.Errorf("Locate(%d) = (%d, %d), expected (%d, %d)", tt.index, g, c, tt.grid, tt.cell)
		}
	}

	seen := make(map[int]bool)
	for grid := 1; grid <= 9; grid++ {
		for cell := 1; cell <= 9; cell++ {
			idx := CellIndex(grid, cell)
			if seen[idx] {
				t.Fatalf("index %d produced twice", idx)
			}
			seen[idx] = true
		}
	}
}

func TestEvaluateUltimateFirstMove(t *testing.T) {
	var board UltimateBoard
	out := EvaluateUltimate(board, Player1, 5, 3)

	if !out.Legal {
		t.Fatalf("expected legal move, got %v", out.Reason)
	}
	if out.Board.Cells[CellIndex(5, 3)] != Player1 {
		t.Error("mark not written to target cell")
	}
	if out.NextPlayer != Player2 {
		t.Errorf("expected player2 next, got %v", out.NextPlayer)
	}
	if out.NextGrid != 3 {
		t.Errorf("expected forced grid 3, got %d", out.NextGrid)
	}
	if out.Winner != None {
		t.Errorf("expected no winner, got %v", out.Winner)
	}
	if out.Board.MiniWinners != (Grid{}) {
		t.Errorf("no mini-grid should be decided, got %v", out.Board.MiniWinners)
	}
}

func TestEvaluateUltimateIllegal(t *testing.T) {
	var board UltimateBoard
	fillMini(&board, 1, wonByP1)
	fillMini(&board, 4, drawn)
	board.Cells[CellIndex(9, 5)] = Player2

	tests := []struct {
		name       string
		player     Cell
		grid, cell int
		reason     Legality
	}{
		{"grid zero", Player2, 0, 1, OutOfBounds},
		{"grid ten", Player2, 10, 1, OutOfBounds},
		{"cell zero", Player2, 2, 0, OutOfBounds},
		{"cell ten", Player2, 2, 10, OutOfBounds},
		{"won grid empty cell", Player2, 1, 9, MiniGridDecided},
		{"won grid taken cell", Player2, 1, 1, MiniGridDecided},
		{"drawn grid", Player1, 4, 5, MiniGridDecided},
		{"occupied cell", Player1, 9, 5, CellOccupied},
		{"invalid player", Draw, 2, 2, InvalidPlayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := EvaluateUltimate(board, tt.player, tt.grid, tt.cell)
			if out.Legal {
				t.Fatal("expected illegal move")
			}
			if out.Reason != tt.reason {
				t.Errorf("expected reason %v, got %v", tt.reason, out.Reason)
			}
			if out.Board != board {
				t.Error("board changed on illegal move")
			}
			if out.NextPlayer != tt.player {
				t.Errorf("turn must stay with %v, got %v", tt.player, out.NextPlayer)
			}
			if out.NextGrid != 0 || out.Winner != None {
				t.Errorf("expected no derived state, got winner=%v nextGrid=%d", out.Winner, out.NextGrid)
			}
		})
	}
}

func TestEvaluateUltimateDoesNotMutateInput(t *testing.T) {
	var board UltimateBoard
	fillMini(&board, 2, Grid{Player1, Player1, Empty, Player2, Player2})
	before := board

	first := EvaluateUltimate(board, Player1, 2, 3)
	second := EvaluateUltimate(board, Player1, 2, 3)

	if board != before {
		t.Error("input board mutated")
	}
	if first != second {
		t.Error("evaluation not deterministic")
	}
	if first.Board.MiniWinners[1] != Player1 {
		t.Errorf("expected mini-grid 2 won by player1, got %v", first.Board.MiniWinners[1])
	}
}

func TestEvaluateUltimateMiniGridWin(t *testing.T) {
	for i, ln := range lines {
		var board UltimateBoard
		board.Cells[CellIndex(7, ln[0]+1)] = Player2
		board.Cells[CellIndex(7, ln[1]+1)] = Player2

		out := EvaluateUltimate(board, Player2, 7, ln[2]+1)
		if !out.Legal {
			t.Fatalf("line %d: illegal: %v", i, out.Reason)
		}
		if out.Board.MiniWinners[6] != Player2 {
			t.Errorf("line %d: expected mini-grid 7 won by player2, got %v", i, out.Board.MiniWinners[6])
		}
		for g, w := range out.Board.MiniWinners {
			if g != 6 && w != None {
				t.Errorf("line %d: mini-grid %d unexpectedly %v", i, g+1, w)
			}
		}
	}
}

func TestEvaluateUltimateMiniGridDraw(t *testing.T) {
	var board UltimateBoard
	partial := drawn
	partial[8] = Empty
	fillMini(&board, 6, partial)
	if board.MiniWinners[5] != None {
		t.Fatalf("setup: mini-grid 6 should be open, got %v", board.MiniWinners[5])
	}

	out := EvaluateUltimate(board, Player1, 6, 9)
	if !out.Legal {
		t.Fatalf("illegal: %v", out.Reason)
	}
	if out.Board.MiniWinners[5] != Draw {
		t.Errorf("expected mini-grid 6 drawn, got %v", out.Board.MiniWinners[5])
	}
	if out.Winner != None {
		t.Errorf("expected no overall winner, got %v", out.Winner)
	}
}

func TestEvaluateUltimateForcedGrid(t *testing.T) {
	t.Run("every inner position", func(t *testing.T) {
		for cell := 1; cell <= 9; cell++ {
			var board UltimateBoard
			out := EvaluateUltimate(board, Player1, 5, cell)
			if out.NextGrid != cell {
				t.Errorf("cell %d: expected forced grid %d, got %d", cell, cell, out.NextGrid)
			}
		}
	})

	t.Run("target decided", func(t *testing.T) {
		var board UltimateBoard
		fillMini(&board, 3, wonByP2)

		out := EvaluateUltimate(board, Player1, 5, 3)
		if !out.Legal {
			t.Fatalf("illegal: %v", out.Reason)
		}
		if out.NextGrid != 0 {
			t.Errorf("expected free choice, got %d", out.NextGrid)
		}
	})

	t.Run("target closed by this move", func(t *testing.T) {
		// Completing the top row of grid 2 at cell 2 sends the opponent to
		// grid 2, which this very move decides.
		var board UltimateBoard
		board.Cells[CellIndex(2, 1)] = Player1
		board.Cells[CellIndex(2, 3)] = Player1

		out := EvaluateUltimate(board, Player1, 2, 2)
		if out.Board.MiniWinners[1] != Player1 {
			t.Fatalf("expected grid 2 won, got %v", out.Board.MiniWinners[1])
		}
		if out.NextGrid != 0 {
			t.Errorf("expected free choice, got %d", out.NextGrid)
		}
	})
}

func TestEvaluateUltimateMacroWin(t *testing.T) {
	var board UltimateBoard
	fillMini(&board, 1, wonByP1)
	fillMini(&board, 5, wonByP1)
	fillMini(&board, 9, Grid{Player1, Player1, Empty, Player2, Player2})

	out := EvaluateUltimate(board, Player1, 9, 3)
	if !out.Legal {
		t.Fatalf("illegal: %v", out.Reason)
	}
	if out.Winner != Player1 {
		t.Errorf("expected player1 to win the diagonal, got %v", out.Winner)
	}
	if out.NextPlayer != Player2 {
		t.Errorf("turn must advance after a win, got %v", out.NextPlayer)
	}
}

func TestEvaluateUltimateDrawBlocksMacroLine(t *testing.T) {
	var board UltimateBoard
	fillMini(&board, 1, wonByP2)
	fillMini(&board, 2, drawn)
	fillMini(&board, 3, Grid{Player2, Player2, Empty, Player1, Player1})

	out := EvaluateUltimate(board, Player2, 3, 3)
	if out.Board.MiniWinners[2] != Player2 {
		t.Fatalf("expected grid 3 won by player2, got %v", out.Board.MiniWinners[2])
	}
	if out.Winner != None {
		t.Errorf("a drawn mini-grid must block the top row, got %v", out.Winner)
	}
}

func TestUltimateBoardHelpers(t *testing.T) {
	t.Run("exhausted", func(t *testing.T) {
		var board UltimateBoard
		if board.Exhausted() {
			t.Error("empty board cannot be exhausted")
		}
		for g := 1; g <= 9; g++ {
			fillMini(&board, g, drawn)
		}
		if !board.Exhausted() {
			t.Error("all mini-grids drawn should exhaust the board")
		}
	})

	t.Run("consistent", func(t *testing.T) {
		var board UltimateBoard
		fillMini(&board, 1, wonByP1)
		fillMini(&board, 8, drawn)
		if !board.Consistent() {
			t.Error("expected derived winners to be consistent")
		}

		bad := board
		bad.MiniWinners[0] = None
		if bad.Consistent() {
			t.Error("undeclared win should be inconsistent")
		}

		bad = board
		bad.MiniWinners[4] = Player2
		if bad.Consistent() {
			t.Error("winner without a line should be inconsistent")
		}

		bad = board
		bad.Cells[40] = Draw
		if bad.Consistent() {
			t.Error("draw mark in a cell should be inconsistent")
		}
	})
}
