package game

import "errors"

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrGameOver      = errors.New("game over")
	ErrNothingToUndo = errors.New("nothing to undo")
)
