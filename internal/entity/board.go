package entity

import (
	"encoding/json"
	"fmt"
	"math/bits"

	"github.com/samber/lo"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/apperror"
)

const (
	BoardSize = 3
	CellCount = BoardSize * BoardSize
)

type Mark string

const (
	MarkX    Mark = "X"
	MarkO    Mark = "O"
	MarkNone Mark = ""
)

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return MarkNone
	}
}

// WinLines - rows, columns and both diagonals of the board.
var WinLines = [...][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

var allCells = lo.Range(CellCount)

// cellSet is a bitmask of occupied cell indices.
type cellSet uint16

func (s cellSet) has(cell int) bool {
	return s&(1<<cell) != 0
}

func (s cellSet) with(cell int) cellSet {
	return s | 1<<cell
}

func (s cellSet) len() int {
	return bits.OnesCount16(uint16(s))
}

func (s cellSet) cells() []int {
	return lo.Filter(allCells, func(cell int, _ int) bool {
		return s.has(cell)
	})
}

func (s cellSet) completesLine() bool {
	return lo.ContainsBy(WinLines[:], func(line [3]int) bool {
		return s.has(line[0]) && s.has(line[1]) && s.has(line[2])
	})
}

// Board is an immutable tic-tac-toe position. The zero value is an empty
// board with X to move. ApplyMove returns a successor and never changes its
// receiver, so boards can be copied and shared freely.
type Board struct {
	x     cellSet
	o     cellSet
	oTurn bool
}

func NewBoard() Board {
	return Board{}
}

// CurrentPlayer returns the mark that moves next.
func (that Board) CurrentPlayer() Mark {
	if that.oTurn {
		return MarkO
	}
	return MarkX
}

// LegalMoves returns, in ascending order, every cell not claimed by either player.
func (that Board) LegalMoves() []int {
	occupied := that.x | that.o
	return lo.Filter(allCells, func(cell int, _ int) bool {
		return !occupied.has(cell)
	})
}

// Winner returns the mark owning a complete win line, or MarkNone.
func (that Board) Winner() Mark {
	switch {
	case that.x.completesLine():
		return MarkX
	case that.o.completesLine():
		return MarkO
	default:
		return MarkNone
	}
}

func (that Board) IsActive() bool {
	return that.Winner() == MarkNone && that.x.len()+that.o.len() < CellCount
}

func (that Board) IsDraw() bool {
	return !that.IsActive() && that.Winner() == MarkNone
}

// IsLegal reports whether ApplyMove would accept the cell.
func (that Board) IsLegal(cell int) bool {
	return that.IsActive() && lo.Contains(that.LegalMoves(), cell)
}

// ApplyMove places the current player's mark on the cell and passes the turn.
// Any rejected move wraps apperror.ErrIllegalMove and returns the receiver as is.
func (that Board) ApplyMove(cell int) (Board, error) {
	if cell < 0 || cell >= CellCount {
		return that, fmt.Errorf("%w: %w: cell %d", apperror.ErrIllegalMove, apperror.ErrInvalidCell, cell)
	}

	if winner := that.Winner(); winner != MarkNone {
		return that, fmt.Errorf("%w: %w: winner %s", apperror.ErrIllegalMove, apperror.ErrGameFinished, winner)
	}

	if that.x.has(cell) || that.o.has(cell) {
		return that, fmt.Errorf("%w: %w: cell %d", apperror.ErrIllegalMove, apperror.ErrCellOccupied, cell)
	}

	next := that
	if that.oTurn {
		next.o = that.o.with(cell)
	} else {
		next.x = that.x.with(cell)
	}
	next.oTurn = !that.oTurn

	return next, nil
}

// Moves returns the cells owned by the mark in ascending order.
func (that Board) Moves(mark Mark) []int {
	switch mark {
	case MarkX:
		return that.x.cells()
	case MarkO:
		return that.o.cells()
	default:
		return nil
	}
}

// Cells returns the board in row-major order.
func (that Board) Cells() [CellCount]Mark {
	var cells [CellCount]Mark
	for _, cell := range allCells {
		switch {
		case that.x.has(cell):
			cells[cell] = MarkX
		case that.o.has(cell):
			cells[cell] = MarkO
		}
	}
	return cells
}

func (that Board) MarshalJSON() ([]byte, error) {
	var cells [CellCount]string
	for i, mark := range that.Cells() {
		cells[i] = string(mark)
	}

	data, err := json.Marshal(cells)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal board: %w", err)
	}

	return data, nil
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var cells [CellCount]string
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	var board Board
	for i, cell := range cells {
		switch Mark(cell) {
		case MarkX:
			board.x = board.x.with(i)
		case MarkO:
			board.o = board.o.with(i)
		case MarkNone:
		default:
			return fmt.Errorf("%w: unknown mark %q in cell %d", apperror.ErrInvalidBoard, cell, i)
		}
	}

	xCount, oCount := board.x.len(), board.o.len()
	if xCount != oCount && xCount != oCount+1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidBoard, xCount, oCount)
	}

	// the winner must have made the last move
	xWins, oWins := board.x.completesLine(), board.o.completesLine()
	if (xWins && xCount == oCount) || (oWins && xCount > oCount) {
		return fmt.Errorf("%w: moves after the game was won", apperror.ErrInvalidBoard)
	}

	board.oTurn = xCount > oCount
	*that = board

	return nil
}
