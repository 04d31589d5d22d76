package models

// SimpleMoveRequest asks the server to evaluate one simple Tic-Tac-Toe move
// against a caller-supplied board.
type SimpleMoveRequest struct {
	Board  []int `json:"board"`
	Player int   `json:"player"`
	Cell   int   `json:"cell"`
}

// SimpleMoveResponse mirrors the evaluator outcome.
type SimpleMoveResponse struct {
	Legal      bool   `json:"legal"`
	Reason     string `json:"reason"`
	Board      []int  `json:"board"`
	NextPlayer int    `json:"nextPlayer"`
	Winner     int    `json:"winner"`
}

// UltimateMoveRequest asks the server to evaluate one Ultimate Tic-Tac-Toe
// move. Cells is the row-major 9x9 board and MiniWinners the row-major
// 3x3 grid of mini-grid results (0 none, 1 and 2 players, 3 draw).
type UltimateMoveRequest struct {
	Cells       []int `json:"cells"`
	MiniWinners []int `json:"miniWinners"`
	Player      int   `json:"player"`
	Grid        int   `json:"grid"`
	Cell        int   `json:"cell"`
}

// UltimateMoveResponse mirrors the evaluator outcome.
type UltimateMoveResponse struct {
	Legal       bool   `json:"legal"`
	Reason      string `json:"reason"`
	Cells       []int  `json:"cells"`
	MiniWinners []int  `json:"miniWinners"`
	NextPlayer  int    `json:"nextPlayer"`
	Winner      int    `json:"winner"`
	NextGrid    int    `json:"nextGrid"`
}
