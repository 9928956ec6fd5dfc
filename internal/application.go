package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/config"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/console"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/render"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/repository"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/usecase"
)

// RunApp - runs the application on the process terminal.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return run(ctx, logger, conf, os.Stdin, os.Stdout)
}

func run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	input := console.NewInput(in)
	defer input.Close()

	output := console.NewOutput(out)
	gameRepo := repository.NewGameRepository()

	opts := render.Options{Hints: !conf.NoHints, Color: conf.Color}
	gameLoop := usecase.NewGameLoop(logger, input, output, gameRepo, opts)
	session := usecase.NewSession(logger, gameLoop, output, gameRepo)

	games, err := session.Run(ctx, conf.Rounds)
	switch {
	case errors.Is(err, apperror.ErrInputClosed), errors.Is(err, context.Canceled):
		log.Info("Session interrupted", "error", err)
		if printErr := output.Print("\nGame interrupted.\n"); printErr != nil {
			return fmt.Errorf("failed to report interruption: %w", printErr)
		}
		return nil
	case err != nil:
		return fmt.Errorf("session failed: %w", err)
	}

	log.Info("Session finished", "games", len(games))

	return nil
}
