package domain

type Symbol string

const (
	SymbolX Symbol = "X"
	SymbolO Symbol = "O"
	Empty   Symbol = ""
)

// Board is the 3x3 grid in row-major order.
type Board [9]Symbol

type Outcome string

const (
	OutcomeX    Outcome = "X"
	OutcomeO    Outcome = "O"
	OutcomeDraw Outcome = "draw"
	OutcomeNone Outcome = "none"
)

// lines holds every winning combination. The check order is fixed so that
// evaluation is reproducible.
var lines = [8][3]int{
	{0, 1, 2}, // top row
	{3, 4, 5}, // middle row
	{6, 7, 8}, // bottom row
	{0, 3, 6}, // left column
	{1, 4, 7}, // middle column
	{2, 5, 8}, // right column
	{0, 4, 8}, // diagonal
	{2, 4, 6}, // anti-diagonal
}

// Evaluate returns the first completed line's symbol, OutcomeDraw when the
// board is full with no completed line, and OutcomeNone otherwise.
func Evaluate(board Board) Outcome {
	for _, line := range lines {
		a, b, c := line[0], line[1], line[2]
		if board[a] != Empty && board[a] == board[b] && board[b] == board[c] {
			return Outcome(board[a])
		}
	}

	for _, cell := range board {
		if cell == Empty {
			return OutcomeNone
		}
	}

	return OutcomeDraw
}
