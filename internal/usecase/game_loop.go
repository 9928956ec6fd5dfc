package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/render"
)

type moveReader interface {
	ReadMove(ctx context.Context) (int, error)
}

type printer interface {
	Print(text string) error
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
}

// GameLoop drives a single game from an empty board to a win or a draw.
type GameLoop struct {
	logger *slog.Logger

	input    moveReader
	output   printer
	gameRepo gameRepo

	opts render.Options
}

func NewGameLoop(logger *slog.Logger, input moveReader, output printer, gameRepo gameRepo, opts render.Options) *GameLoop {
	return &GameLoop{
		logger:   logger.With("component", "game_loop"),
		input:    input,
		output:   output,
		gameRepo: gameRepo,
		opts:     opts,
	}
}

// Play runs the game until it is finished, then prints the final board and result.
func (that *GameLoop) Play(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	log := that.logger.With("gameID", game.ID, "round", game.Round)

	firstTurn := true
	for game.Board.IsActive() {
		opts := render.Options{Hints: that.opts.Hints && firstTurn, Color: that.opts.Color}
		if err := that.output.Print(render.Board(game.Board, opts) + "\n\n"); err != nil {
			return game, fmt.Errorf("failed to print board: %w", err)
		}
		firstTurn = false

		cell, err := that.requestMove(ctx, game.Board)
		if err != nil {
			return game, fmt.Errorf("failed to get next move: %w", err)
		}

		mark := game.Board.CurrentPlayer()
		if err = game.Play(cell); err != nil {
			return game, fmt.Errorf("failed to make turn: %w", err)
		}

		log.Debug("move applied", "mark", mark, "cell", cell)

		if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
			return game, fmt.Errorf("failed to update game: %w", err)
		}
	}

	final := render.Board(game.Board, render.Options{Color: that.opts.Color}) + "\n\n" + render.Result(game.Board) + "\n"
	if err := that.output.Print(final); err != nil {
		return game, fmt.Errorf("failed to print result: %w", err)
	}

	log.Info("game finished", "winner", game.Winner, "moves", len(game.Moves))

	return game, nil
}

// requestMove prompts until the player names a legal cell.
func (that *GameLoop) requestMove(ctx context.Context, board entity.Board) (int, error) {
	for {
		prompt := fmt.Sprintf("%s's turn. Enter your next move: ", board.CurrentPlayer())
		if err := that.output.Print(prompt); err != nil {
			return 0, fmt.Errorf("failed to print prompt: %w", err)
		}

		cell, err := that.input.ReadMove(ctx)
		switch {
		case errors.Is(err, apperror.ErrInvalidInput):
			that.logger.Debug("unreadable move", "error", err)
		case err != nil:
			return 0, err
		case board.IsLegal(cell):
			return cell, nil
		default:
			that.logger.Debug("illegal move", "cell", cell)
		}

		notice := fmt.Sprintf("Invalid move. Try again with one of the available moves: %v\n", board.LegalMoves())
		if err = that.output.Print(notice); err != nil {
			return 0, fmt.Errorf("failed to print notice: %w", err)
		}
	}
}
