package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
)

const maxWaitDuration = 10 * time.Second

type Suite struct {
	*testing.T
	Logger *slog.Logger
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	return ctx, &Suite{
		T:      t,
		Logger: logger,
	}
}

// PlayedGame returns a game after the given moves, failing the test on an illegal one.
func (that *Suite) PlayedGame(id string, round int, moves ...int) *entity.Game {
	that.Helper()

	game := entity.NewGame(id, round)
	for _, cell := range moves {
		if err := game.Play(cell); err != nil {
			that.Fatalf("could not play cell %d: %v", cell, err)
		}
	}

	return game
}
