package game

// SimpleBoard is a row-major 3x3 Tic-Tac-Toe board.
type SimpleBoard [9]Cell

// SimpleOutcome is the result of EvaluateSimple.
type SimpleOutcome struct {
	Legal      bool
	Reason     Legality
	Board      SimpleBoard
	NextPlayer Cell
	Winner     Cell
}

// Full reports whether every cell is taken.
func (b SimpleBoard) Full() bool {
	return Grid(b).Full()
}

// EvaluateSimple applies player's mark at the 1-based cell of board and
// returns the resulting state. board is never modified. An illegal move
// returns an unchanged copy of board and keeps the turn with player.
func EvaluateSimple(board SimpleBoard, player Cell, cell int) SimpleOutcome {
	out := SimpleOutcome{
		Board:      board,
		NextPlayer: player,
		Winner:     None,
	}

	out.Reason = CheckSimple(board, player, cell)
	if out.Reason != Legal {
		return out
	}

	out.Board[cell-1] = player
	out.Legal = true
	out.Winner = LineWinner(Grid(out.Board))
	out.NextPlayer = player.Opponent()
	return out
}
