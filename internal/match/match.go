// Package match keeps one game instance between evaluator calls and applies
// the policies the evaluator leaves to its callers: seats, turn order, game
// over and, optionally, the forced mini-grid rule.
package match

import (
	"errors"
	"fmt"

	"nvivas/backend/uttt-go-server/internal/game"
)

// Variant selects which game a match plays.
type Variant string

const (
	Simple   Variant = "simple"
	Ultimate Variant = "ultimate"
)

// ParseVariant accepts "simple" or "ultimate"; an empty string selects
// Ultimate.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "", Ultimate:
		return Ultimate, nil
	case Simple:
		return Simple, nil
	}
	return "", fmt.Errorf("unknown variant %q", s)
}

// Phase is the caller-visible stage of a match.
type Phase int

const (
	InProgress Phase = iota
	Won
	Drawn
)

func (p Phase) String() string {
	switch p {
	case InProgress:
		return "in_progress"
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	}
	return "unknown"
}

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not your turn")
	ErrWrongGrid   = errors.New("move must be played in the forced mini-grid")
	ErrMatchFull   = errors.New("match already has two players")
	ErrNotSeated   = errors.New("not a player in this match")
)

// IllegalMoveError reports a move the evaluator rejected.
type IllegalMoveError struct {
	Reason game.Legality
}

func (e *IllegalMoveError) Error() string {
	return "illegal move: " + e.Reason.String()
}

// Options tune the caller policies of a match.
type Options struct {
	// EnforceForcedGrid rejects moves outside the mini-grid the previous
	// move sent the player to.
	EnforceForcedGrid bool
}

// Match is a single game between two seats. It is not safe for concurrent
// use; the owning room serializes access.
type Match struct {
	Variant  Variant
	Simple   game.SimpleBoard
	Ultimate game.UltimateBoard
	Turn     game.Cell
	Winner   game.Cell
	NextGrid int
	Phase    Phase
	Moves    int
	Seats    map[string]game.Cell

	opts Options
}

// New creates an empty match with Player1 to move.
func New(variant Variant, opts Options) *Match {
	return &Match{
		Variant: variant,
		Turn:    game.Player1,
		Winner:  game.None,
		Phase:   InProgress,
		Seats:   make(map[string]game.Cell),
		opts:    opts,
	}
}

// Seat assigns clientID to the first free player slot. A client already
// seated keeps its slot.
func (m *Match) Seat(clientID string) (game.Cell, error) {
	if p, ok := m.Seats[clientID]; ok {
		return p, nil
	}
	taken := make(map[game.Cell]bool, len(m.Seats))
	for _, p := range m.Seats {
		taken[p] = true
	}
	for _, p := range []game.Cell{game.Player1, game.Player2} {
		if !taken[p] {
			m.Seats[clientID] = p
			return p, nil
		}
	}
	return game.Empty, ErrMatchFull
}

// Leave frees the seat held by clientID.
func (m *Match) Leave(clientID string) {
	delete(m.Seats, clientID)
}

// PlayerOf returns the seat of clientID.
func (m *Match) PlayerOf(clientID string) (game.Cell, error) {
	p, ok := m.Seats[clientID]
	if !ok {
		return game.Empty, ErrNotSeated
	}
	return p, nil
}

// ClientOf returns the client holding seat p, or "" when it is free.
func (m *Match) ClientOf(p game.Cell) string {
	for id, seat := range m.Seats {
		if seat == p {
			return id
		}
	}
	return ""
}

// Full reports whether both seats are taken.
func (m *Match) Full() bool {
	return len(m.Seats) == 2
}

// Play submits a move for player. grid is ignored for simple matches.
func (m *Match) Play(player game.Cell, grid, cell int) error {
	if m.Phase != InProgress {
		return ErrGameOver
	}
	if player != m.Turn {
		return ErrNotYourTurn
	}

	switch m.Variant {
	case Simple:
		out := game.EvaluateSimple(m.Simple, player, cell)
		if !out.Legal {
			return &IllegalMoveError{Reason: out.Reason}
		}
		m.Simple = out.Board
		m.Turn = out.NextPlayer
		m.Winner = out.Winner

	case Ultimate:
		if m.opts.EnforceForcedGrid && m.NextGrid != 0 && grid != m.NextGrid {
			return ErrWrongGrid
		}
		out := game.EvaluateUltimate(m.Ultimate, player, grid, cell)
		if !out.Legal {
			return &IllegalMoveError{Reason: out.Reason}
		}
		m.Ultimate = out.Board
		m.Turn = out.NextPlayer
		m.Winner = out.Winner
		m.NextGrid = out.NextGrid

	default:
		return fmt.Errorf("unknown variant %q", m.Variant)
	}

	m.Moves++
	m.Phase = m.phase()
	return nil
}

func (m *Match) phase() Phase {
	if m.Winner != game.None {
		return Won
	}
	switch m.Variant {
	case Simple:
		if m.Simple.Full() {
			return Drawn
		}
	case Ultimate:
		if m.Ultimate.Exhausted() {
			return Drawn
		}
	}
	return InProgress
}

// Over reports whether the match has finished.
func (m *Match) Over() bool {
	return m.Phase != InProgress
}

// Forfeit ends an unfinished match in favour of the seat clientID is not
// holding. The seats are left untouched.
func (m *Match) Forfeit(clientID string) error {
	if m.Phase != InProgress {
		return ErrGameOver
	}
	p, err := m.PlayerOf(clientID)
	if err != nil {
		return err
	}
	m.Winner = p.Opponent()
	m.Phase = Won
	return nil
}
