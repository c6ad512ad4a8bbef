package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var errRedisDown = errors.New("redis down")

type mockRoundRepo struct {
	mock.Mock
}

func (that *mockRoundRepo) CreateOrUpdate(ctx context.Context, round *entity.Round) error {
	args := that.Called(ctx, round)
	return args.Error(0)
}

func (that *mockRoundRepo) GetByID(ctx context.Context, id string) (*entity.Round, error) {
	args := that.Called(ctx, id)
	round, _ := args.Get(0).(*entity.Round)
	return round, args.Error(1)
}

func (that *mockRoundRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func newManager(t *testing.T) (*RoundManager, *mockRoundRepo) {
	t.Helper()

	repo := &mockRoundRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	settings := tictactoe.Settings{AIMark: entity.Circle, FirstMove: tictactoe.FirstMoveHuman}

	return NewRoundManager(logger, repo, minimax.NewSource(1), settings), repo
}

func storedRound(board entity.Board, moves int) *entity.Round {
	return &entity.Round{
		ID:        "round-1",
		Board:     board,
		NextMove:  entity.Cross,
		AIMark:    entity.Circle,
		MoveCount: moves,
		Outcome:   entity.DetermineOutcome(board),
	}
}

func TestRoundManager_NewRound(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a fresh round under a new id", func(t *testing.T) {
		// Given: a repository accepting the round
		manager, repo := newManager(t)
		repo.On("CreateOrUpdate", mock.Anything, mock.MatchedBy(func(round *entity.Round) bool {
			return round.ID != "" && round.Board == entity.Board{}
		})).Return(nil).Once()

		// When: a round is started
		round, err := manager.NewRound(ctx)

		// Then: the human moves first on an empty board
		require.NoError(t, err)
		_, err = uuid.Parse(round.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.Cross, round.NextMove)
		assert.Equal(t, entity.Circle, round.AIMark)
		assert.Equal(t, entity.Ongoing, round.Outcome)
	})

	t.Run("Returns error if storage fails", func(t *testing.T) {
		manager, repo := newManager(t)
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Round")).Return(errRedisDown).Once()

		round, err := manager.NewRound(ctx)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, round)
	})
}

func TestRoundManager_GetRound(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the stored round", func(t *testing.T) {
		manager, repo := newManager(t)
		stored := storedRound(entity.Board{}, 0)
		repo.On("GetByID", mock.Anything, "round-1").Return(stored, nil).Once()

		round, err := manager.GetRound(ctx, "round-1")

		require.NoError(t, err)
		assert.Equal(t, stored, round)
	})

	t.Run("Passes not found through", func(t *testing.T) {
		manager, repo := newManager(t)
		repo.On("GetByID", mock.Anything, "missing").Return(nil, apperror.ErrRoundNotFound).Once()

		_, err := manager.GetRound(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrRoundNotFound)
	})
}

func TestRoundManager_MakeTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves the human move and the AI reply", func(t *testing.T) {
		// Given: an empty stored round with the human to move
		manager, repo := newManager(t)
		repo.On("GetByID", mock.Anything, "round-1").Return(storedRound(entity.Board{}, 0), nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, mock.MatchedBy(func(round *entity.Round) bool {
			return round.MoveCount == 2 && round.Board.OccupiedCount() == 2
		})).Return(nil).Once()

		// When: the human plays a corner
		round, err := manager.MakeTurn(ctx, "round-1", 0, 0)

		// Then: both moves are on the board and it is the human's turn again
		require.NoError(t, err)
		assert.Equal(t, entity.Cross, round.Board.Get(0, 0))
		require.NotNil(t, round.LastAIMove)
		assert.Equal(t, entity.Circle, round.Board.At(*round.LastAIMove))
		assert.Equal(t, entity.Cross, round.NextMove)
	})

	t.Run("Rejected move is not saved", func(t *testing.T) {
		// Given: a round with the centre taken
		manager, repo := newManager(t)
		board := entity.Board{{entity.Cross, entity.Empty, entity.Empty}, {entity.Empty, entity.Circle, entity.Empty}}
		stored := storedRound(board, 2)
		repo.On("GetByID", mock.Anything, "round-1").Return(stored, nil).Once()

		// When: the human plays the centre
		round, err := manager.MakeTurn(ctx, "round-1", 1, 1)

		// Then: the move is rejected and the unchanged round comes back
		require.ErrorIs(t, err, apperror.ErrRejected)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, stored, round)
		repo.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything)
	})

	t.Run("Finished round rejects further moves", func(t *testing.T) {
		manager, repo := newManager(t)
		board := entity.Board{
			{entity.Circle, entity.Circle, entity.Circle},
			{entity.Cross, entity.Cross, entity.Empty},
			{entity.Cross, entity.Empty, entity.Empty},
		}
		repo.On("GetByID", mock.Anything, "round-1").Return(storedRound(board, 6), nil).Once()

		_, err := manager.MakeTurn(ctx, "round-1", 2, 2)

		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Stored round left with the AI to move is caught up and saved", func(t *testing.T) {
		// Given: an empty stored round where the AI should have opened
		manager, repo := newManager(t)
		stored := storedRound(entity.Board{}, 0)
		stored.NextMove = entity.Circle
		repo.On("GetByID", mock.Anything, "round-1").Return(stored, nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, mock.MatchedBy(func(round *entity.Round) bool {
			return round.MoveCount == 1 && round.NextMove == entity.Cross
		})).Return(nil).Once()

		// When: the human sends a move off the board
		round, err := manager.MakeTurn(ctx, "round-1", 5, 5)

		// Then: the move is rejected but the AI opening is kept
		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		require.NotNil(t, round.LastAIMove)
		assert.Equal(t, 1, round.MoveCount)
		assert.Equal(t, entity.Cross, round.NextMove)
	})

	t.Run("Unknown round", func(t *testing.T) {
		manager, repo := newManager(t)
		repo.On("GetByID", mock.Anything, "missing").Return(nil, apperror.ErrRoundNotFound).Once()

		round, err := manager.MakeTurn(ctx, "missing", 0, 0)

		require.ErrorIs(t, err, apperror.ErrRoundNotFound)
		assert.Nil(t, round)
	})

	t.Run("Returns error if saving fails", func(t *testing.T) {
		manager, repo := newManager(t)
		repo.On("GetByID", mock.Anything, "round-1").Return(storedRound(entity.Board{}, 0), nil).Once()
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Round")).Return(errRedisDown).Once()

		round, err := manager.MakeTurn(ctx, "round-1", 1, 1)

		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, round)
	})
}

func TestRoundManager_ResetRound(t *testing.T) {
	ctx := context.Background()

	// Given: a round the AI has won
	manager, repo := newManager(t)
	board := entity.Board{
		{entity.Circle, entity.Circle, entity.Circle},
		{entity.Cross, entity.Cross, entity.Empty},
		{entity.Cross, entity.Empty, entity.Empty},
	}
	repo.On("GetByID", mock.Anything, "round-1").Return(storedRound(board, 6), nil).Once()
	repo.On("CreateOrUpdate", mock.Anything, mock.MatchedBy(func(round *entity.Round) bool {
		return round.ID == "round-1" && round.Board == entity.Board{}
	})).Return(nil).Once()

	// When: the round is reset
	round, err := manager.ResetRound(ctx, "round-1")

	// Then: the same session starts over
	require.NoError(t, err)
	assert.Equal(t, "round-1", round.ID)
	assert.Equal(t, entity.Ongoing, round.Outcome)
	assert.Equal(t, 0, round.MoveCount)
}

func TestRoundManager_DeleteRound(t *testing.T) {
	ctx := context.Background()

	t.Run("Deletes the round", func(t *testing.T) {
		manager, repo := newManager(t)
		repo.On("DeleteByID", mock.Anything, "round-1").Return(nil).Once()

		require.NoError(t, manager.DeleteRound(ctx, "round-1"))
	})

	t.Run("Unknown round", func(t *testing.T) {
		manager, repo := newManager(t)
		repo.On("DeleteByID", mock.Anything, "missing").Return(apperror.ErrRoundNotFound).Once()

		err := manager.DeleteRound(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrRoundNotFound)
	})
}
