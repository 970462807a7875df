package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrNotAPlayer      = errors.New("user is not seated in this room")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("cell is outside the board")
	ErrRoomNotFound    = errors.New("room not found")
	ErrEmptyName       = errors.New("name is required")
	ErrWinnerNotInPair = errors.New("winner is not a member of the pair")
)
