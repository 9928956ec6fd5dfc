package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-terminal/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-terminal/internal/entity"
)

type mockGameStore struct {
	mock.Mock
}

func (m *mockGameStore) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *mockGameStore) List(ctx context.Context) ([]*entity.Game, error) {
	args := m.Called(ctx)
	games, _ := args.Get(0).([]*entity.Game)
	return games, args.Error(1)
}

type mockGamePlayer struct {
	mock.Mock
}

func (m *mockGamePlayer) Play(ctx context.Context, game *entity.Game) (*entity.Game, error) {
	args := m.Called(ctx, game)
	played, _ := args.Get(0).(*entity.Game)
	return played, args.Error(1)
}

type scriptedMove struct {
	cell int
	err  error
}

// scriptedInput replays moves and reports closed input once they run out.
type scriptedInput struct {
	moves []scriptedMove
}

func script(cells ...int) *scriptedInput {
	input := &scriptedInput{}
	for _, cell := range cells {
		input.moves = append(input.moves, scriptedMove{cell: cell})
	}
	return input
}

func (that *scriptedInput) then(moves ...scriptedMove) *scriptedInput {
	that.moves = append(that.moves, moves...)
	return that
}

func (that *scriptedInput) ReadMove(context.Context) (int, error) {
	if len(that.moves) == 0 {
		return 0, apperror.ErrInputClosed
	}

	next := that.moves[0]
	that.moves = that.moves[1:]

	return next.cell, next.err
}
