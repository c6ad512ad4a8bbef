package entity

const (
	StatusOngoing = "ongoing"
	StatusWin     = "win"
	StatusDraw    = "draw"
)

// Outcome is derived from a board and never stored as authoritative state.
type Outcome struct {
	Status string `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

var (
	Ongoing = Outcome{Status: StatusOngoing}
	Draw    = Outcome{Status: StatusDraw}
)

func Win(mark Mark) Outcome {
	return Outcome{Status: StatusWin, Winner: mark}
}

func (that Outcome) IsFinished() bool {
	return that.Status != StatusOngoing
}

// DetermineOutcome checks every line before falling back to the full-board draw.
func DetermineOutcome(board Board) Outcome {
	if winner := board.Winner(); winner != Empty {
		return Win(winner)
	}

	if board.IsFull() {
		return Draw
	}

	return Ongoing
}

// Round is the snapshot of a live game as stored and rendered.
type Round struct {
	ID         string  `json:"id"`
	Board      Board   `json:"board"`
	NextMove   Mark    `json:"next_move"`
	AIMark     Mark    `json:"ai_mark"`
	MoveCount  int     `json:"move_count"`
	LastAIMove *Cell   `json:"last_ai_move,omitempty"`
	Outcome    Outcome `json:"outcome"`
}

func (that *Round) HumanMark() Mark {
	return that.AIMark.Opponent()
}

func (that *Round) IsFinished() bool {
	return DetermineOutcome(that.Board).IsFinished()
}
