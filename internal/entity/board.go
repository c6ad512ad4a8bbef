package entity

import "fmt"

// Size is the side length of the board.
const Size = 3

type Mark string

const (
	Cross  Mark = "X"
	Circle Mark = "O"
	Empty  Mark = ""
)

// Opponent returns the mark of the other player. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case Cross:
		return Circle
	case Circle:
		return Cross
	default:
		return Empty
	}
}

func (that Mark) IsPlayer() bool {
	return that == Cross || that == Circle
}

// ParseMark accepts "X" or "O".
func ParseMark(s string) (Mark, error) {
	switch m := Mark(s); m {
	case Cross, Circle:
		return m, nil
	default:
		return Empty, fmt.Errorf("unknown mark %q", s)
	}
}

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) InRange() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

// Lines lists every row, column and diagonal of the board.
var Lines = [8][3]Cell{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is a value type: assigning or passing it copies every cell.
type Board [Size][Size]Mark

func (that Board) Get(row, col int) Mark {
	return that[row][col]
}

// Set overwrites a cell. Callers check the cell is Empty first.
func (that *Board) Set(row, col int, mark Mark) {
	that[row][col] = mark
}

func (that Board) At(cell Cell) Mark {
	return that[cell.Row][cell.Col]
}

func (that Board) OccupiedCount() int {
	count := 0
	for _, row := range that {
		for _, mark := range row {
			if mark != Empty {
				count++
			}
		}
	}

	return count
}

func (that Board) IsFull() bool {
	return that.OccupiedCount() == Size*Size
}

// Winner returns the mark owning a complete line, or Empty when no line is complete.
func (that Board) Winner() Mark {
	for _, line := range Lines {
		a, b, c := that.At(line[0]), that.At(line[1]), that.At(line[2])
		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}

// IsTerminal reports whether no further move should be played.
func (that Board) IsTerminal() bool {
	return that.IsFull() || that.Winner() != Empty
}

// LegalMoves returns the empty cells in row-major order.
func (that Board) LegalMoves() []Cell {
	moves := make([]Cell, 0, Size*Size)
	for row := range Size {
		for col := range Size {
			if that[row][col] == Empty {
				moves = append(moves, Cell{Row: row, Col: col})
			}
		}
	}

	return moves
}

func (that Board) Clone() Board {
	return that
}

// Swapped returns the board with Cross and Circle exchanged.
func (that Board) Swapped() Board {
	var swapped Board
	for row := range Size {
		for col := range Size {
			swapped[row][col] = that[row][col].Opponent()
		}
	}

	return swapped
}

func (that Board) String() string {
	out := make([]byte, 0, Size*(Size+1))
	for row := range Size {
		if row > 0 {
			out = append(out, '/')
		}
		for col := range Size {
			if m := that[row][col]; m != Empty {
				out = append(out, string(m)...)
			} else {
				out = append(out, '_')
			}
		}
	}

	return string(out)
}
