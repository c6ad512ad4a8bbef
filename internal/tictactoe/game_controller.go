package tictactoe

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
)

const (
	FirstMoveRandom = "random"
	FirstMoveAI     = "ai"
	FirstMoveHuman  = "human"
)

var (
	ErrUnknownFirstMove = errors.New("unknown first-move policy")
	ErrInvalidAIMark    = errors.New("ai mark must be X or O")
	ErrCorruptedRound   = errors.New("corrupted round")
)

// Settings fixes who the AI is and how the first mover is chosen on reset.
type Settings struct {
	AIMark    entity.Mark
	FirstMove string
}

func (that Settings) Validate() error {
	if !that.AIMark.IsPlayer() {
		return fmt.Errorf("%w: %q", ErrInvalidAIMark, that.AIMark)
	}

	switch that.FirstMove {
	case FirstMoveRandom, FirstMoveAI, FirstMoveHuman:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFirstMove, that.FirstMove)
	}
}

// GameController owns one live round: the board and whose turn it is.
// Any human move that hands the turn to the AI is answered synchronously.
type GameController struct {
	logger    *slog.Logger
	rnd       minimax.Rand
	engine    *minimax.Engine
	firstMove string

	round entity.Round
}

// NewGameController starts a fresh round, letting the AI open if it was drawn to move first.
func NewGameController(logger *slog.Logger, rnd minimax.Rand, settings Settings, id string) (*GameController, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	controller := newController(logger, rnd, settings.FirstMove, entity.Round{ID: id, AIMark: settings.AIMark})
	controller.Reset()

	return controller, nil
}

// RestoreGameController resumes a stored round. The round keeps the AI mark it was created with,
// and if it was left with the AI to move, the AI plays before the controller is returned.
func RestoreGameController(logger *slog.Logger, rnd minimax.Rand, settings Settings, round entity.Round) (*GameController, error) {
	settings.AIMark = round.AIMark
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid stored round %s: %w", round.ID, err)
	}

	if round.NextMove != round.AIMark && round.NextMove != round.HumanMark() {
		return nil, fmt.Errorf("%w %s: next move %q", ErrCorruptedRound, round.ID, round.NextMove)
	}

	for _, line := range round.Board {
		for _, mark := range line {
			if mark != entity.Empty && !mark.IsPlayer() {
				return nil, fmt.Errorf("%w %s: unknown mark %q", ErrCorruptedRound, round.ID, mark)
			}
		}
	}

	controller := newController(logger, rnd, settings.FirstMove, round)

	// a round saved with the AI to move catches up here
	if controller.round.NextMove == controller.round.AIMark && !controller.round.Outcome.IsFinished() {
		controller.doAIMove()
	}

	return controller, nil
}

func newController(logger *slog.Logger, rnd minimax.Rand, firstMove string, round entity.Round) *GameController {
	round.Outcome = entity.DetermineOutcome(round.Board)

	return &GameController{
		logger:    logger.With("component", "tictactoe", "round", round.ID),
		rnd:       rnd,
		engine:    minimax.NewEngine(round.AIMark, rnd),
		firstMove: firstMove,
		round:     round,
	}
}

// ApplyHumanMove places the human mark and, if the game goes on, the AI reply.
// Rejected moves wrap apperror.ErrRejected and leave the round untouched.
func (that *GameController) ApplyHumanMove(row, col int) (entity.Outcome, error) {
	cell := entity.Cell{Row: row, Col: col}

	if err := that.validateMove(cell); err != nil {
		return that.round.Outcome, fmt.Errorf("%w: %w", apperror.ErrRejected, err)
	}

	that.place(cell, that.round.HumanMark())
	that.round.LastAIMove = nil
	that.logger.Debug("human move", "row", row, "col", col)

	if that.round.NextMove == that.round.AIMark && !that.round.Outcome.IsFinished() {
		that.doAIMove()
	}

	if that.round.Outcome.IsFinished() {
		that.logger.Info("round finished", "status", that.round.Outcome.Status, "winner", that.round.Outcome.Winner)
	}

	return that.round.Outcome, nil
}

// Reset clears the board and draws the first mover again.
func (that *GameController) Reset() {
	that.round.Board = entity.Board{}
	that.round.MoveCount = 0
	that.round.LastAIMove = nil
	that.round.Outcome = entity.Ongoing
	that.round.NextMove = that.pickFirstMove()

	that.logger.Debug("round reset", "first", that.round.NextMove)

	if that.round.NextMove == that.round.AIMark {
		that.doAIMove()
	}
}

// CurrentBoard returns a copy for rendering.
func (that *GameController) CurrentBoard() entity.Board {
	return that.round.Board
}

func (that *GameController) Outcome() entity.Outcome {
	return that.round.Outcome
}

// State returns a snapshot of the round that shares nothing with the controller.
func (that *GameController) State() entity.Round {
	state := that.round
	if that.round.LastAIMove != nil {
		move := *that.round.LastAIMove
		state.LastAIMove = &move
	}

	return state
}

// validateMove - checks the move against the current round.
func (that *GameController) validateMove(cell entity.Cell) error {
	if that.round.Outcome.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !cell.InRange() {
		return fmt.Errorf("%w: row %d col %d", apperror.ErrInvalidCell, cell.Row, cell.Col)
	}

	if that.round.Board.At(cell) != entity.Empty {
		return apperror.ErrCellOccupied
	}

	if that.round.NextMove != that.round.HumanMark() {
		return apperror.ErrNotYourTurn
	}

	return nil
}

func (that *GameController) doAIMove() {
	result := that.engine.Search(that.round.Board, that.round.AIMark)
	if result.Move == nil {
		return
	}

	move := *result.Move
	if !move.InRange() || that.round.Board.At(move) != entity.Empty {
		panic(fmt.Sprintf("search returned unplayable cell %+v on %s", move, that.round.Board.String()))
	}

	that.place(move, that.round.AIMark)
	that.round.LastAIMove = &move

	that.logger.Debug("ai move", "row", move.Row, "col", move.Col, "score", result.Score)
}

func (that *GameController) place(cell entity.Cell, mark entity.Mark) {
	that.round.Board.Set(cell.Row, cell.Col, mark)
	that.round.MoveCount++
	that.round.NextMove = mark.Opponent()
	that.round.Outcome = entity.DetermineOutcome(that.round.Board)
}

func (that *GameController) pickFirstMove() entity.Mark {
	switch that.firstMove {
	case FirstMoveAI:
		return that.round.AIMark
	case FirstMoveHuman:
		return that.round.HumanMark()
	default:
		if that.rnd.IntN(2) == 0 {
			return that.round.AIMark
		}
		return that.round.HumanMark()
	}
}
