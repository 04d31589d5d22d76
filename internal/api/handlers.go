package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/websocket"

	"nvivas/backend/uttt-go-server/internal/errors"
	"nvivas/backend/uttt-go-server/internal/game"
	"nvivas/backend/uttt-go-server/internal/logger"
	"nvivas/backend/uttt-go-server/pkg/models"
)

const maxBodySize = 4096

// reasons are the wire names of each legality classification.
var reasons = map[game.Legality]string{
	game.Legal:           "legal",
	game.OutOfBounds:     "out_of_bounds",
	game.CellOccupied:    "cell_occupied",
	game.MiniGridDecided: "mini_grid_decided",
	game.InvalidPlayer:   "invalid_player",
}

type handlers struct {
	lobby    Lobby
	upgrader websocket.Upgrader
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) simpleMove(w http.ResponseWriter, r *http.Request) {
	var req models.SimpleMoveRequest
	if !decode(w, r, &req) {
		return
	}

	board, err := simpleBoard(req.Board)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.ErrorInvalidPayload, err.Error())
		return
	}

	out := game.EvaluateSimple(board, player(req.Player), req.Cell)
	writeJSON(w, http.StatusOK, models.SimpleMoveResponse{
		Legal:      out.Legal,
		Reason:     reasons[out.Reason],
		Board:      ints(out.Board[:]),
		NextPlayer: int(out.NextPlayer),
		Winner:     int(out.Winner),
	})
}

func (h *handlers) ultimateMove(w http.ResponseWriter, r *http.Request) {
	var req models.UltimateMoveRequest
	if !decode(w, r, &req) {
		return
	}

	board, err := ultimateBoard(req.Cells, req.MiniWinners)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.ErrorInvalidPayload, err.Error())
		return
	}

	out := game.EvaluateUltimate(board, player(req.Player), req.Grid, req.Cell)
	writeJSON(w, http.StatusOK, models.UltimateMoveResponse{
		Legal:       out.Legal,
		Reason:      reasons[out.Reason],
		Cells:       ints(out.Board.Cells[:]),
		MiniWinners: ints(out.Board.MiniWinners[:]),
		NextPlayer:  int(out.NextPlayer),
		Winner:      int(out.Winner),
		NextGrid:    out.NextGrid,
	})
}

func (h *handlers) rooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.lobby.RoomList(r.Context())
	if err != nil {
		logger.Error("Could not list rooms", logger.Fields{"error": err.Error()})
		writeError(w, http.StatusServiceUnavailable, errors.ErrorInternal, "rooms unavailable")
		return
	}
	writeJSON(w, http.StatusOK, models.RoomListPayload{Type: models.TypeRoomList, Rooms: rooms})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, errors.ErrorInvalidMessage, "malformed request body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, http.StatusBadRequest, errors.ErrorInvalidMessage, "request body must hold a single JSON object")
		return false
	}
	return true
}

// player maps a wire player number to a Cell. Anything other than 1 or 2
// becomes Empty so the evaluator classifies it as an invalid player.
func player(p int) game.Cell {
	if p != int(game.Player1) && p != int(game.Player2) {
		return game.Empty
	}
	return game.Cell(p)
}

func cells(values []int, limit game.Cell, dst []game.Cell) error {
	for i, v := range values {
		if v < 0 || v > int(limit) {
			return fmt.Errorf("value %d at index %d out of range", v, i)
		}
		dst[i] = game.Cell(v)
	}
	return nil
}

func simpleBoard(values []int) (game.SimpleBoard, error) {
	var b game.SimpleBoard
	if len(values) != len(b) {
		return b, fmt.Errorf("board must have %d cells, got %d", len(b), len(values))
	}
	return b, cells(values, game.Player2, b[:])
}

func ultimateBoard(values, winners []int) (game.UltimateBoard, error) {
	var b game.UltimateBoard
	if len(values) != len(b.Cells) {
		return b, fmt.Errorf("cells must have %d entries, got %d", len(b.Cells), len(values))
	}
	if len(winners) != len(b.MiniWinners) {
		return b, fmt.Errorf("miniWinners must have %d entries, got %d", len(b.MiniWinners), len(winners))
	}
	if err := cells(values, game.Player2, b.Cells[:]); err != nil {
		return b, fmt.Errorf("cells: %w", err)
	}
	if err := cells(winners, game.Draw, b.MiniWinners[:]); err != nil {
		return b, fmt.Errorf("miniWinners: %w", err)
	}
	if !b.Consistent() {
		return b, fmt.Errorf("miniWinners do not match the cells")
	}
	return b, nil
}

func ints(cs []game.Cell) []int {
	out := make([]int, len(cs))
	for i, c := range cs {
		out[i] = int(c)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to write response", logger.Fields{"error": err.Error()})
	}
}

func writeError(w http.ResponseWriter, status int, errorType, message string) {
	writeJSON(w, status, models.ErrorResponse{Type: errorType, Message: message})
}
