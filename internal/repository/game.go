package repository

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	List(ctx context.Context) ([]*entity.Game, error)
}

// memGame keeps encoded game records for the lifetime of the process.
type memGame struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewGameRepository() GameRepository {
	return &memGame{
		records: make(map[string][]byte),
	}
}

func gameKey(id string) string {
	return "game:" + id
}

func (that *memGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	that.mu.Lock()
	that.records[gameKey(game.ID)] = gameJSON
	that.mu.Unlock()

	return nil
}

func (that *memGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	if err := ctx.Err(); err != nil {
		return &entity.Game{}, fmt.Errorf("failed to get game by id: %w", err)
	}

	that.mu.RLock()
	response, ok := that.records[gameKey(id)]
	that.mu.RUnlock()

	if !ok {
		return &entity.Game{}, ErrGameNotFound
	}

	return decodeGame(response)
}

// List returns every stored game ordered by round.
func (that *memGame) List(ctx context.Context) ([]*entity.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	games := make([]*entity.Game, 0, len(that.records))
	for _, record := range that.records {
		game, err := decodeGame(record)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	slices.SortFunc(games, func(a, b *entity.Game) int {
		return cmp.Or(cmp.Compare(a.Round, b.Round), cmp.Compare(a.ID, b.ID))
	})

	return games, nil
}

func decodeGame(record []byte) (*entity.Game, error) {
	var existingGame entity.Game
	if err := json.Unmarshal(record, &existingGame); err != nil {
		return &entity.Game{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}
