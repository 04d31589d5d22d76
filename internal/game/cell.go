package game

import "fmt"

// Cell is the value held by a board cell or a mini-grid winner slot.
type Cell uint8

const (
	Empty Cell = iota
	Player1
	Player2
	Draw // mini-grid winners only
)

// None marks an undecided mini-grid or a game without a winner.
const None = Empty

// IsPlayer reports whether c is one of the two player marks.
func (c Cell) IsPlayer() bool {
	return c == Player1 || c == Player2
}

// Opponent returns the other player. Non-player values are returned unchanged.
func (c Cell) Opponent() Cell {
	switch c {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return c
}

// Verdict renders c as a game or mini-grid result, so None reads "none"
// where String would say "empty".
func (c Cell) Verdict() string {
	if c == None {
		return "none"
	}
	return c.String()
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	case Draw:
		return "draw"
	}
	return fmt.Sprintf("cell(%d)", uint8(c))
}
