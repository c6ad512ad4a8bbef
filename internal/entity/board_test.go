package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = Cross
	o = Circle
	e = Empty
)

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, Circle, Cross.Opponent())
	assert.Equal(t, Cross, Circle.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
}

func TestParseMark(t *testing.T) {
	t.Run("Accepts player marks", func(t *testing.T) {
		mark, err := ParseMark("X")
		require.NoError(t, err)
		assert.Equal(t, Cross, mark)

		mark, err = ParseMark("O")
		require.NoError(t, err)
		assert.Equal(t, Circle, mark)
	})

	t.Run("Rejects anything else", func(t *testing.T) {
		_, err := ParseMark("")
		require.Error(t, err)

		_, err = ParseMark("x")
		require.Error(t, err)
	})
}

func TestBoard_GetSet(t *testing.T) {
	// Given: an empty board
	var board Board

	// When: a mark is placed
	board.Set(1, 2, Cross)

	// Then: only that cell changes
	assert.Equal(t, Cross, board.Get(1, 2))
	assert.Equal(t, Empty, board.Get(2, 1))
	assert.Equal(t, 1, board.OccupiedCount())
}

func TestBoard_Clone(t *testing.T) {
	// Given: a board with one mark
	board := Board{{x, e, e}, {e, e, e}, {e, e, e}}

	// When: the clone is mutated
	clone := board.Clone()
	clone.Set(2, 2, Circle)

	// Then: the original is untouched
	assert.Equal(t, Empty, board.Get(2, 2))
	assert.Equal(t, 1, board.OccupiedCount())
	assert.Equal(t, 2, clone.OccupiedCount())
}

func TestBoard_Winner(t *testing.T) {
	tests := []struct {
		name   string
		board  Board
		winner Mark
	}{
		{
			name:   "row",
			board:  Board{{e, o, e}, {x, x, x}, {o, e, o}},
			winner: Cross,
		},
		{
			name:   "column",
			board:  Board{{x, o, e}, {e, o, x}, {e, o, e}},
			winner: Circle,
		},
		{
			// the column mark must come from the column, not from column zero of that row
			name:   "last column with a different mark in row two",
			board:  Board{{x, e, o}, {x, e, o}, {e, x, o}},
			winner: Circle,
		},
		{
			name:   "main diagonal",
			board:  Board{{x, o, e}, {e, x, o}, {e, e, x}},
			winner: Cross,
		},
		{
			name:   "anti diagonal",
			board:  Board{{x, x, o}, {e, o, e}, {o, e, x}},
			winner: Circle,
		},
		{
			name:   "full board without a line",
			board:  Board{{x, o, x}, {x, o, o}, {o, x, x}},
			winner: Empty,
		},
		{
			name:   "in progress",
			board:  Board{{x, o, x}, {e, o, e}, {o, x, e}},
			winner: Empty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.winner, tt.board.Winner())
		})
	}
}

func TestBoard_LegalMoves(t *testing.T) {
	t.Run("Row-major order of empty cells", func(t *testing.T) {
		board := Board{{x, e, o}, {e, x, e}, {o, e, e}}

		moves := board.LegalMoves()

		assert.Equal(t, []Cell{{0, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 2}}, moves)
	})

	t.Run("Full board has no moves", func(t *testing.T) {
		board := Board{{x, o, x}, {x, o, o}, {o, x, x}}

		assert.Empty(t, board.LegalMoves())
		assert.True(t, board.IsFull())
		assert.True(t, board.IsTerminal())
	})
}

func TestBoard_Swapped(t *testing.T) {
	board := Board{{x, e, o}, {e, x, e}, {o, e, e}}

	swapped := board.Swapped()

	assert.Equal(t, Board{{o, e, x}, {e, o, e}, {x, e, e}}, swapped)
	assert.Equal(t, "X_O/_X_/O__", board.String())
}

// Every board reachable by alternating play has at most one winning mark.
func TestBoard_WinnerIsUniqueOnReachableBoards(t *testing.T) {
	var walk func(board Board, toMove Mark)
	visited := 0

	walk = func(board Board, toMove Mark) {
		visited++

		xLine, oLine := false, false
		for _, line := range Lines {
			a, b, c := board.At(line[0]), board.At(line[1]), board.At(line[2])
			if a == b && b == c {
				xLine = xLine || a == Cross
				oLine = oLine || a == Circle
			}
		}
		require.False(t, xLine && oLine, "both marks completed a line on %s", board.String())

		if board.IsTerminal() {
			return
		}

		for _, cell := range board.LegalMoves() {
			next := board.Clone()
			next.Set(cell.Row, cell.Col, toMove)
			walk(next, toMove.Opponent())
		}
	}

	walk(Board{}, Cross)

	assert.Positive(t, visited)
}
