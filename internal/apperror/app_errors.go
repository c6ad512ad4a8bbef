package apperror

import "errors"

// ErrRejected wraps every move the round refuses without changing state.
var ErrRejected = errors.New("move rejected")

var (
	ErrGameFinished  = errors.New("game is already finished")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrInvalidCell   = errors.New("invalid cell")
	ErrRoundNotFound = errors.New("round not found")
)
