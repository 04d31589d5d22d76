package room

import (
	"nvivas/backend/uttt-go-server/internal/match"
	"nvivas/backend/uttt-go-server/pkg/models"
)

// stateOf convierte el estado del juego a formato JSON
func stateOf(m *match.Match) models.GameState {
	state := models.GameState{
		Variant:     string(m.Variant),
		CurrentTurn: int(m.Turn),
		NextGrid:    m.NextGrid,
		Winner:      int(m.Winner),
		Phase:       m.Phase.String(),
		Moves:       m.Moves,
	}

	switch m.Variant {
	case match.Simple:
		state.Board = make([]int, len(m.Simple))
		for i, c := range m.Simple {
			state.Board[i] = int(c)
		}
	case match.Ultimate:
		state.Board = make([]int, len(m.Ultimate.Cells))
		for i, c := range m.Ultimate.Cells {
			state.Board[i] = int(c)
		}
		state.MiniWinners = make([]int, len(m.Ultimate.MiniWinners))
		for i, w := range m.Ultimate.MiniWinners {
			state.MiniWinners[i] = int(w)
		}
	}
	return state
}
