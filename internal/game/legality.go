package game

// Legality classifies a proposed move.
type Legality uint8

const (
	Legal Legality = iota
	OutOfBounds
	CellOccupied
	MiniGridDecided
	InvalidPlayer
)

func (l Legality) String() string {
	switch l {
	case Legal:
		return "legal"
	case OutOfBounds:
		return "out of bounds"
	case CellOccupied:
		return "cell occupied"
	case MiniGridDecided:
		return "mini-grid decided"
	case InvalidPlayer:
		return "invalid player"
	}
	return "unknown"
}

func inRange(pos int) bool {
	return pos >= 1 && pos <= 9
}

// CheckSimple validates a move on a simple board. cell is 1-based.
func CheckSimple(board SimpleBoard, player Cell, cell int) Legality {
	if !player.IsPlayer() {
		return InvalidPlayer
	}
	if !inRange(cell) {
		return OutOfBounds
	}
	if board[cell-1] != Empty {
		return CellOccupied
	}
	return Legal
}

// CheckUltimate validates a move on an ultimate board. grid and cell are
// 1-based row-major positions. A decided mini-grid is rejected before the
// target cell is looked at. The forced grid is not checked here.
func CheckUltimate(board UltimateBoard, player Cell, grid, cell int) Legality {
	if !player.IsPlayer() {
		return InvalidPlayer
	}
	if !inRange(grid) || !inRange(cell) {
		return OutOfBounds
	}
	if board.MiniWinners[grid-1] != None {
		return MiniGridDecided
	}
	if board.Cells[CellIndex(grid, cell)] != Empty {
		return CellOccupied
	}
	return Legal
}
