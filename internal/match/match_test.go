package match

import (
	"errors"
	"testing"

	"nvivas/backend/uttt-go-server/internal/game"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"", Ultimate, false},
		{"ultimate", Ultimate, false},
		{"simple", Simple, false},
		{"chess", "", true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestSeats(t *testing.T) {
	m := New(Simple, Options{})

	p, err := m.Seat("alice")
	if err != nil || p != game.Player1 {
		t.Fatalf("expected alice as player1, got %v %v", p, err)
	}
	p, err = m.Seat("bob")
	if err != nil || p != game.Player2 {
		t.Fatalf("expected bob as player2, got %v %v", p, err)
	}
	if p, _ := m.Seat("alice"); p != game.Player1 {
		t.Errorf("returning client should keep its seat, got %v", p)
	}
	if !m.Full() {
		t.Error("match should be full")
	}
	if _, err := m.Seat("carol"); !errors.Is(err, ErrMatchFull) {
		t.Errorf("expected ErrMatchFull, got %v", err)
	}

	m.Leave("alice")
	if _, err := m.PlayerOf("alice"); !errors.Is(err, ErrNotSeated) {
		t.Errorf("expected ErrNotSeated, got %v", err)
	}
	if p, _ := m.Seat("carol"); p != game.Player1 {
		t.Errorf("freed seat should go to carol, got %v", p)
	}
	if m.ClientOf(game.Player2) != "bob" {
		t.Errorf("expected bob on player2, got %q", m.ClientOf(game.Player2))
	}
}

func TestSimpleMatchWin(t *testing.T) {
	m := New(Simple, Options{})

	moves := []struct {
		player game.Cell
		cell   int
	}{
		{game.Player1, 1},
		{game.Player2, 4},
		{game.Player1, 2},
		{game.Player2, 5},
		{game.Player1, 3},
	}
	for i, mv := range moves {
		if err := m.Play(mv.player, 0, mv.cell); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
	}

	if m.Phase != Won || m.Winner != game.Player1 {
		t.Fatalf("expected player1 win, got phase=%v winner=%v", m.Phase, m.Winner)
	}
	if m.Moves != 5 {
		t.Errorf("expected 5 moves, got %d", m.Moves)
	}
	if err := m.Play(m.Turn, 0, 9); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver after win, got %v", err)
	}
}

func TestSimpleMatchDraw(t *testing.T) {
	m := New(Simple, Options{})
	for i, cell := range []int{1, 2, 3, 5, 4, 7, 8, 6, 9} {
		if err := m.Play(m.Turn, 0, cell); err != nil {
			t.Fatalf("move %d: %v", i, err)
		}
	}
	if m.Phase != Drawn || m.Winner != game.None {
		t.Errorf("expected draw, got phase=%v winner=%v", m.Phase, m.Winner)
	}
}

func TestPlayRejections(t *testing.T) {
	t.Run("wrong turn", func(t *testing.T) {
		m := New(Simple, Options{})
		if err := m.Play(game.Player2, 0, 1); !errors.Is(err, ErrNotYourTurn) {
			t.Errorf("expected ErrNotYourTurn, got %v", err)
		}
	})

	t.Run("illegal move keeps state", func(t *testing.T) {
		m := New(Simple, Options{})
		if err := m.Play(game.Player1, 0, 5); err != nil {
			t.Fatal(err)
		}
		before := *m

		err := m.Play(game.Player2, 0, 5)
		var illegal *IllegalMoveError
		if !errors.As(err, &illegal) || illegal.Reason != game.CellOccupied {
			t.Fatalf("expected occupied cell error, got %v", err)
		}
		if m.Simple != before.Simple || m.Turn != game.Player2 || m.Moves != 1 {
			t.Error("state changed after illegal move")
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		m := New(Ultimate, Options{})
		err := m.Play(game.Player1, 10, 1)
		var illegal *IllegalMoveError
		if !errors.As(err, &illegal) || illegal.Reason != game.OutOfBounds {
			t.Errorf("expected out of bounds error, got %v", err)
		}
	})
}

func TestUltimateForcedGrid(t *testing.T) {
	t.Run("enforced", func(t *testing.T) {
		m := New(Ultimate, Options{EnforceForcedGrid: true})
		if err := m.Play(game.Player1, 1, 5); err != nil {
			t.Fatal(err)
		}
		if m.NextGrid != 5 {
			t.Fatalf("expected forced grid 5, got %d", m.NextGrid)
		}
		if err := m.Play(game.Player2, 1, 1); !errors.Is(err, ErrWrongGrid) {
			t.Errorf("expected ErrWrongGrid, got %v", err)
		}
		if err := m.Play(game.Player2, 5, 1); err != nil {
			t.Errorf("move in forced grid rejected: %v", err)
		}
	})

	t.Run("permissive", func(t *testing.T) {
		m := New(Ultimate, Options{})
		if err := m.Play(game.Player1, 1, 5); err != nil {
			t.Fatal(err)
		}
		if err := m.Play(game.Player2, 1, 1); err != nil {
			t.Errorf("move outside forced grid should be accepted, got %v", err)
		}
	})
}

func TestUltimateMatchWin(t *testing.T) {
	// Player1 takes the top row of grids 1, 2 and 3 while Player2 answers
	// in the grid it is sent to. Forcing is off to keep the script short.
	m := New(Ultimate, Options{})
	script := []struct {
		grid, cell int
	}{
		{1, 1}, {9, 1},
		{1, 2}, {9, 2},
		{1, 3}, {8, 1},
		{2, 1}, {8, 2},
		{2, 2}, {7, 1},
		{2, 3}, {7, 2},
		{3, 1}, {6, 1},
		{3, 2}, {6, 2},
		{3, 3},
	}
	for i, mv := range script {
		if err := m.Play(m.Turn, mv.grid, mv.cell); err != nil {
			t.Fatalf("move %d %v: %v", i, mv, err)
		}
	}

	if m.Phase != Won || m.Winner != game.Player1 {
		t.Fatalf("expected player1 win, got phase=%v winner=%v", m.Phase, m.Winner)
	}
	if !m.Over() {
		t.Error("match should be over")
	}
}

func TestForfeit(t *testing.T) {
	m := New(Ultimate, Options{})
	m.Seat("alice")
	m.Seat("bob")
	if err := m.Play(game.Player1, 5, 5); err != nil {
		t.Fatal(err)
	}

	if err := m.Forfeit("carol"); !errors.Is(err, ErrNotSeated) {
		t.Errorf("expected ErrNotSeated for a spectator, got %v", err)
	}
	if err := m.Forfeit("bob"); err != nil {
		t.Fatal(err)
	}
	if m.Phase != Won || m.Winner != game.Player1 {
		t.Errorf("expected player1 to win by forfeit, got phase=%v winner=%v", m.Phase, m.Winner)
	}
	if !m.Full() {
		t.Error("forfeit should not free seats")
	}
	if err := m.Forfeit("alice"); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver on a finished match, got %v", err)
	}
	if err := m.Play(game.Player2, 5, 1); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver after forfeit, got %v", err)
	}
}

// drawnMini has no line for either player.
var drawnMini = [9]game.Cell{
	game.Player1, game.Player2, game.Player1,
	game.Player1, game.Player2, game.Player2,
	game.Player2, game.Player1, game.Player1,
}

func TestUltimateMatchDraw(t *testing.T) {
	m := New(Ultimate, Options{EnforceForcedGrid: true})
	for grid := 1; grid <= 9; grid++ {
		for cell := 1; cell <= 9; cell++ {
			if grid == 9 && cell == 9 {
				continue
			}
			m.Ultimate.Cells[game.CellIndex(grid, cell)] = drawnMini[cell-1]
		}
		if grid < 9 {
			m.Ultimate.MiniWinners[grid-1] = game.Draw
		}
	}
	if !m.Ultimate.Consistent() {
		t.Fatal("fixture board is inconsistent")
	}

	if err := m.Play(game.Player1, 9, 9); err != nil {
		t.Fatal(err)
	}
	if m.Phase != Drawn || m.Winner != game.None || m.NextGrid != 0 {
		t.Errorf("expected draw, got phase=%v winner=%v nextGrid=%d", m.Phase, m.Winner, m.NextGrid)
	}
	if m.Ultimate.MiniWinners[8] != game.Draw {
		t.Errorf("last mini-grid should be drawn, got %v", m.Ultimate.MiniWinners[8])
	}
	if err := m.Play(game.Player2, 1, 1); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver after draw, got %v", err)
	}
}
