package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeRun(board [][]string, x, y, dx, dy, length int, mark string) {
	for i := 0; i < length; i++ {
		board[y+dy*i][x+dx*i] = mark
	}
}

func TestNewBoard(t *testing.T) {
	// Given: a freshly created board
	board := NewBoard(DefaultBoardSize)

	// Then: every cell is empty and dimensions are size x size
	require.Len(t, board, DefaultBoardSize)
	for y := range board {
		require.Len(t, board[y], DefaultBoardSize)
		for x := range board[y] {
			assert.Equal(t, EmptyCell, board[y][x])
		}
	}
}

func TestWinner(t *testing.T) {
	t.Run("Returns the mark for a horizontal run of five", func(t *testing.T) {
		// Given: five X marks in a row along the top edge
		board := NewBoard(DefaultBoardSize)
		placeRun(board, 0, 0, 1, 0, 5, PlayerX)

		// When: checking from the last placed cell
		winner := Winner(board, 4, 0)

		// Then: X wins
		assert.Equal(t, PlayerX, winner)
	})

	t.Run("Returns the mark for a vertical run of five", func(t *testing.T) {
		// Given: five O marks in a column
		board := NewBoard(DefaultBoardSize)
		placeRun(board, 7, 3, 0, 1, 5, PlayerO)

		// When: checking from the middle of the run
		winner := Winner(board, 7, 5)

		// Then: O wins regardless of which run cell was placed last
		assert.Equal(t, PlayerO, winner)
	})

	t.Run("Returns the mark for a falling diagonal run of five", func(t *testing.T) {
		// Given: five X marks along the (1,1) axis
		board := NewBoard(DefaultBoardSize)
		placeRun(board, 2, 2, 1, 1, 5, PlayerX)

		// When: checking from the first cell of the run
		winner := Winner(board, 2, 2)

		// Then: X wins
		assert.Equal(t, PlayerX, winner)
	})

	t.Run("Returns the mark for a rising diagonal run of five", func(t *testing.T) {
		// Given: five O marks along the (1,-1) axis
		board := NewBoard(DefaultBoardSize)
		placeRun(board, 3, 10, 1, -1, 5, PlayerO)

		// When: checking from the last cell of the run
		winner := Winner(board, 7, 6)

		// Then: O wins
		assert.Equal(t, PlayerO, winner)
	})

	t.Run("Returns the mark for exactly five at the grid edge", func(t *testing.T) {
		// Given: five X marks ending flush against the right edge
		board := NewBoard(DefaultBoardSize)
		placeRun(board, DefaultBoardSize-5, DefaultBoardSize-1, 1, 0, 5, PlayerX)

		// When: checking from the corner cell
		winner := Winner(board, DefaultBoardSize-1, DefaultBoardSize-1)

		// Then: X wins
		assert.Equal(t, PlayerX, winner)
	})

	t.Run("Returns the mark for a run longer than five", func(t *testing.T) {
		// Given: six O marks in a row
		board := NewBoard(DefaultBoardSize)
		placeRun(board, 4, 8, 1, 0, 6, PlayerO)

		// When: checking from inside the run
		winner := Winner(board, 6, 8)

		// Then: O wins
		assert.Equal(t, PlayerO, winner)
	})

	t.Run("Returns no winner for a run of four", func(t *testing.T) {
		// Given: only four X marks in a row
		board := NewBoard(DefaultBoardSize)
		placeRun(board, 0, 0, 1, 0, 4, PlayerX)

		// When: checking from the last placed cell
		winner := Winner(board, 3, 0)

		// Then: nobody wins
		assert.Equal(t, EmptyCell, winner)
	})

	t.Run("Returns no winner when the run is broken by the opponent", func(t *testing.T) {
		// Given: four X marks, an O mark, then another X mark
		board := NewBoard(DefaultBoardSize)
		placeRun(board, 0, 5, 1, 0, 4, PlayerX)
		board[5][4] = PlayerO
		board[5][5] = PlayerX

		// When: checking from the fourth X
		winner := Winner(board, 3, 5)

		// Then: nobody wins
		assert.Equal(t, EmptyCell, winner)
	})

	t.Run("Returns no winner for an empty cell", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard(DefaultBoardSize)

		// When: checking an empty cell
		winner := Winner(board, 7, 7)

		// Then: nobody wins
		assert.Equal(t, EmptyCell, winner)
	})

	t.Run("Returns no winner for out-of-range coordinates", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard(DefaultBoardSize)

		// When: checking outside the grid
		winner := Winner(board, -1, DefaultBoardSize)

		// Then: nobody wins
		assert.Equal(t, EmptyCell, winner)
	})
}

func TestIsFull(t *testing.T) {
	t.Run("Returns false for a fresh board", func(t *testing.T) {
		board := NewBoard(DefaultBoardSize)

		assert.False(t, IsFull(board))
	})

	t.Run("Returns false with a single empty cell", func(t *testing.T) {
		// Given: a board with every cell occupied except one
		board := NewBoard(DefaultBoardSize)
		for y := range board {
			for x := range board[y] {
				board[y][x] = PlayerX
			}
		}
		board[14][14] = EmptyCell

		assert.False(t, IsFull(board))
	})

	t.Run("Returns true when no empty cell remains", func(t *testing.T) {
		board := NewBoard(DefaultBoardSize)
		for y := range board {
			for x := range board[y] {
				board[y][x] = PlayerO
			}
		}

		assert.True(t, IsFull(board))
	})
}

func TestToggleMark(t *testing.T) {
	assert.Equal(t, PlayerO, ToggleMark(PlayerX))
	assert.Equal(t, PlayerX, ToggleMark(PlayerO))
}
