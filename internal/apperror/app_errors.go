package apperror

import "errors"

var (
	ErrIllegalMove  = errors.New("illegal move")
	ErrGameFinished = errors.New("game is already finished")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidBoard = errors.New("invalid board")

	ErrInvalidInput = errors.New("invalid input")
	ErrInputClosed  = errors.New("input closed")
)
