package entity

import (
	"fmt"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerTie = "-"
)

type Move struct {
	Mark Mark `json:"mark"`
	Cell int  `json:"cell"`
}

// Game is the record of a single game played in this run.
type Game struct {
	ID     string `json:"id"`
	Round  int    `json:"round"`
	Board  Board  `json:"board"`
	Moves  []Move `json:"moves"`
	Winner string `json:"winner"`
	Status string `json:"status"`
}

func NewGame(id string, round int) *Game {
	return &Game{
		ID:     id,
		Round:  round,
		Board:  NewBoard(),
		Moves:  []Move{},
		Status: StatusOngoing,
	}
}

// Play applies the current player's move and refreshes the game status.
func (that *Game) Play(cell int) error {
	mark := that.Board.CurrentPlayer()

	board, err := that.Board.ApplyMove(cell)
	if err != nil {
		return fmt.Errorf("%s failed to play: %w", mark, err)
	}

	that.Board = board
	that.Moves = append(that.Moves, Move{Mark: mark, Cell: cell})
	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	winner := that.Board.Winner()

	switch {
	// one player wins
	case winner != MarkNone:
		that.Winner = string(winner)
		that.Status = StatusFinished
	// tie
	case !that.Board.IsActive():
		that.Winner = PlayerTie
		that.Status = StatusFinished
	// game continue
	default:
		that.Winner = ""
		that.Status = StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsDraw() bool {
	return that.Winner == PlayerTie
}
