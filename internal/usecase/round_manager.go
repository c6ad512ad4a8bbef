package usecase

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const lockStripes = 32

type roundRepo interface {
	CreateOrUpdate(ctx context.Context, round *entity.Round) error
	GetByID(ctx context.Context, id string) (*entity.Round, error)
	DeleteByID(ctx context.Context, id string) error
}

// RoundManager runs one live round per session on top of the round storage.
type RoundManager struct {
	logger    *slog.Logger
	roundRepo roundRepo
	rnd       minimax.Rand
	settings  tictactoe.Settings

	// load-apply-save of the same round must not interleave
	locks [lockStripes]sync.Mutex
}

func NewRoundManager(logger *slog.Logger, roundRepo roundRepo, rnd minimax.Rand, settings tictactoe.Settings) *RoundManager {
	return &RoundManager{
		logger:    logger.With("component", "round_manager"),
		roundRepo: roundRepo,
		rnd:       rnd,
		settings:  settings,
	}
}

// NewRound starts a session. If the AI was drawn to open, its move is already on the board.
func (that *RoundManager) NewRound(ctx context.Context) (*entity.Round, error) {
	controller, err := tictactoe.NewGameController(that.logger, that.rnd, that.settings, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to start round: %w", err)
	}

	round := controller.State()
	if err = that.roundRepo.CreateOrUpdate(ctx, &round); err != nil {
		return nil, fmt.Errorf("failed to create round: %w", err)
	}

	that.logger.Info("round created", "round", round.ID, "ai_mark", round.AIMark, "first", firstMover(&round))

	return &round, nil
}

func (that *RoundManager) GetRound(ctx context.Context, id string) (*entity.Round, error) {
	round, err := that.roundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	return round, nil
}

// MakeTurn applies the human move and the AI reply. A rejected move returns the
// unchanged round alongside the error so the caller can still render it.
func (that *RoundManager) MakeTurn(ctx context.Context, id string, row, col int) (*entity.Round, error) {
	lock := that.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	controller, err := that.restore(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err = controller.ApplyHumanMove(row, col); err != nil {
		round := controller.State()
		return &round, fmt.Errorf("failed make turn: %w", err)
	}

	round := controller.State()
	if err = that.roundRepo.CreateOrUpdate(ctx, &round); err != nil {
		return nil, fmt.Errorf("failed to update round: %w", err)
	}

	return &round, nil
}

// ResetRound clears the board of an existing session and draws the first mover again.
func (that *RoundManager) ResetRound(ctx context.Context, id string) (*entity.Round, error) {
	lock := that.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	controller, err := that.restore(ctx, id)
	if err != nil {
		return nil, err
	}

	controller.Reset()

	round := controller.State()
	if err = that.roundRepo.CreateOrUpdate(ctx, &round); err != nil {
		return nil, fmt.Errorf("failed to update round: %w", err)
	}

	that.logger.Info("round reset", "round", round.ID, "first", firstMover(&round))

	return &round, nil
}

func (that *RoundManager) DeleteRound(ctx context.Context, id string) error {
	lock := that.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	if err := that.roundRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete round: %w", err)
	}

	that.logger.Info("round deleted", "round", id)

	return nil
}

func (that *RoundManager) restore(ctx context.Context, id string) (*tictactoe.GameController, error) {
	round, err := that.roundRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get round: %w", err)
	}

	controller, err := tictactoe.RestoreGameController(that.logger, that.rnd, that.settings, *round)
	if err != nil {
		return nil, fmt.Errorf("failed to restore round: %w", err)
	}

	// the AI caught up on restore; keep its move even if the next call is rejected
	if state := controller.State(); state.MoveCount != round.MoveCount {
		if err = that.roundRepo.CreateOrUpdate(ctx, &state); err != nil {
			return nil, fmt.Errorf("failed to update round: %w", err)
		}
	}

	return controller, nil
}

func (that *RoundManager) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))

	return &that.locks[h.Sum32()%lockStripes]
}

func firstMover(round *entity.Round) string {
	if round.MoveCount > 0 {
		return tictactoe.FirstMoveAI
	}

	return tictactoe.FirstMoveHuman
}
