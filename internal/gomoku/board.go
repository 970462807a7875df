package gomoku

const (
	PlayerX = "X"
	PlayerO = "O"

	EmptyCell = ""

	// WinLength is the run of identical marks that wins a game.
	WinLength = 5

	DefaultBoardSize = 15
)

// Axes are the four undirected directions a winning run can lie on:
// horizontal, vertical and the two diagonals.
var Axes = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// NewBoard - returns an empty size x size board.
func NewBoard(size int) [][]string {
	board := make([][]string, size)
	for y := range board {
		board[y] = make([]string, size)
	}

	return board
}

// Contains - reports whether (x, y) lies inside the board.
func Contains(board [][]string, x, y int) bool {
	return y >= 0 && y < len(board) && x >= 0 && x < len(board[y])
}

// IsOccupied - reports whether the cell at (x, y) already holds a mark.
func IsOccupied(board [][]string, x, y int) bool {
	return board[y][x] != EmptyCell
}

// Winner - checks the four axes through the just-placed cell (x, y) and
// returns the mark there if it completes a run of WinLength or more,
// EmptyCell otherwise. The board is never mutated.
func Winner(board [][]string, x, y int) string {
	if !Contains(board, x, y) {
		return EmptyCell
	}

	mark := board[y][x]
	if mark == EmptyCell {
		return EmptyCell
	}

	for _, axis := range Axes {
		count := 1 // the placed cell itself
		count += runLength(board, x, y, axis[0], axis[1], mark)
		count += runLength(board, x, y, -axis[0], -axis[1], mark)

		if count >= WinLength {
			return mark
		}
	}

	return EmptyCell
}

// runLength - walks outward from (x, y) along (dx, dy) counting consecutive
// cells holding mark, stopping at a boundary or a mismatched cell.
func runLength(board [][]string, x, y, dx, dy int, mark string) int {
	count := 0

	for i := 1; ; i++ {
		nx, ny := x+dx*i, y+dy*i
		if !Contains(board, nx, ny) || board[ny][nx] != mark {
			break
		}
		count++
	}

	return count
}

// IsFull - reports whether no empty cell remains anywhere on the board.
func IsFull(board [][]string) bool {
	for y := range board {
		for x := range board[y] {
			if board[y][x] == EmptyCell {
				return false
			}
		}
	}

	return true
}

// ToggleMark - returns the opposing mark.
func ToggleMark(currentMark string) string {
	if currentMark == PlayerX {
		return PlayerO
	}

	return PlayerX
}
