package minimax

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	lineReward = 100
)

// Rand picks the tie-break index among equally scored moves.
type Rand interface {
	IntN(n int) int
}

// Result carries the score of a position and, unless the position is terminal, the move to play.
type Result struct {
	Score int
	Move  *entity.Cell
}

// Engine searches the full game tree from the point of view of one mark.
type Engine struct {
	ai  entity.Mark
	rnd Rand
}

func NewEngine(ai entity.Mark, rnd Rand) *Engine {
	return &Engine{
		ai:  ai,
		rnd: rnd,
	}
}

func (that *Engine) AIMark() entity.Mark {
	return that.ai
}

// Search returns the minimax score of the board with toMove to play and a move
// drawn uniformly from the best-scoring candidates. Terminal boards have no move.
func (that *Engine) Search(board entity.Board, toMove entity.Mark) Result {
	score, best := that.Candidates(board, toMove)
	if len(best) == 0 {
		return Result{Score: score}
	}

	move := best[0]
	if len(best) > 1 {
		move = best[that.rnd.IntN(len(best))]
	}

	return Result{Score: score, Move: &move}
}

// Candidates returns the minimax score and every legal move achieving it, in row-major order.
func (that *Engine) Candidates(board entity.Board, toMove entity.Mark) (int, []entity.Cell) {
	if board.IsTerminal() {
		return that.Reward(board), nil
	}

	maximize := toMove == that.ai

	bestScore := math.MaxInt
	if maximize {
		bestScore = math.MinInt
	}

	var best []entity.Cell
	for _, cell := range board.LegalMoves() {
		next := board.Clone()
		next.Set(cell.Row, cell.Col, toMove)

		score := that.score(next, toMove.Opponent())

		switch {
		case maximize && score > bestScore, !maximize && score < bestScore:
			bestScore = score
			best = append(best[:0], cell)
		case score == bestScore:
			best = append(best, cell)
		}
	}

	return bestScore, best
}

// score is the minimax value of a position; only the root needs the moves themselves.
func (that *Engine) score(board entity.Board, toMove entity.Mark) int {
	if board.IsTerminal() {
		return that.Reward(board)
	}

	maximize := toMove == that.ai

	bestScore := math.MaxInt
	if maximize {
		bestScore = math.MinInt
	}

	for _, cell := range board.LegalMoves() {
		next := board.Clone()
		next.Set(cell.Row, cell.Col, toMove)

		score := that.score(next, toMove.Opponent())
		if maximize && score > bestScore || !maximize && score < bestScore {
			bestScore = score
		}
	}

	return bestScore
}

// Reward sums every line: +100 for an AI line, -100 for an opponent line, 0 otherwise.
func (that *Engine) Reward(board entity.Board) int {
	opponent := that.ai.Opponent()

	reward := 0
	for _, line := range entity.Lines {
		own, their := 0, 0
		for _, cell := range line {
			switch board.At(cell) {
			case that.ai:
				own++
			case opponent:
				their++
			}
		}

		switch {
		case own == len(line):
			reward += lineReward
		case their == len(line):
			reward -= lineReward
		}
	}

	return reward
}
