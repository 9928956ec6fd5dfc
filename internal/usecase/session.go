package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/render"
)

type gamePlayer interface {
	Play(ctx context.Context, game *entity.Game) (*entity.Game, error)
}

type gameStore interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	List(ctx context.Context) ([]*entity.Game, error)
}

// Session plays a number of rounds back to back within one run.
type Session struct {
	logger *slog.Logger

	gamePlayer gamePlayer
	output     printer
	gameStore  gameStore
}

func NewSession(logger *slog.Logger, gamePlayer gamePlayer, output printer, gameStore gameStore) *Session {
	return &Session{
		logger:     logger.With("component", "session"),
		gamePlayer: gamePlayer,
		output:     output,
		gameStore:  gameStore,
	}
}

// Run plays the given number of rounds and returns the recorded games.
// With more than one round each game gets a header and a scoreboard is printed at the end.
func (that *Session) Run(ctx context.Context, rounds int) ([]*entity.Game, error) {
	for round := 1; round <= rounds; round++ {
		if rounds > 1 {
			if err := that.output.Print(fmt.Sprintf("Round %d of %d\n\n", round, rounds)); err != nil {
				return nil, fmt.Errorf("failed to print round header: %w", err)
			}
		}

		game := entity.NewGame(pkg.GenerateGameID(), round)
		if err := that.gameStore.CreateOrUpdate(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to create game: %w", err)
		}

		that.logger.Debug("game started", "gameID", game.ID, "round", round)

		if _, err := that.gamePlayer.Play(ctx, game); err != nil {
			return nil, fmt.Errorf("round %d: %w", round, err)
		}
	}

	games, err := that.gameStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	if rounds > 1 {
		if err = that.output.Print("\n" + render.Scoreboard(games)); err != nil {
			return nil, fmt.Errorf("failed to print scoreboard: %w", err)
		}
	}

	return games, nil
}
