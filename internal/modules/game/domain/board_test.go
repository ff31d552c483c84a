package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Evaluate_Returns_Winner_For_Each_Line(t *testing.T) {
	// Arrange
	winningLines := [][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}

	for _, line := range winningLines {
		var board Board
		for _, cell := range line {
			board[cell] = SymbolX
		}

		// Act
		outcome := Evaluate(board)

		// Assert
		require.Equal(t, OutcomeX, outcome, "line %v", line)
	}
}

func Test_Evaluate_Returns_Winner_Regardless_Of_Remaining_Cells(t *testing.T) {
	// Arrange
	board := Board{
		SymbolX, SymbolO, SymbolX,
		Empty, SymbolX, SymbolO,
		Empty, SymbolO, SymbolX,
	}

	// Act
	outcome := Evaluate(board)

	// Assert
	require.Equal(t, OutcomeX, outcome)
}

func Test_Evaluate_Returns_O_For_Column_Win(t *testing.T) {
	// Arrange
	board := Board{
		SymbolX, SymbolO, SymbolX,
		Empty, SymbolO, SymbolX,
		Empty, SymbolO, Empty,
	}

	// Act
	outcome := Evaluate(board)

	// Assert
	require.Equal(t, OutcomeO, outcome)
}

func Test_Evaluate_Returns_Draw_When_Board_Full_Without_Line(t *testing.T) {
	// Arrange
	board := Board{
		SymbolX, SymbolO, SymbolX,
		SymbolX, SymbolO, SymbolO,
		SymbolO, SymbolX, SymbolX,
	}

	// Act
	outcome := Evaluate(board)

	// Assert
	require.Equal(t, OutcomeDraw, outcome)
}

func Test_Evaluate_Returns_None_When_Board_Not_Full_Without_Line(t *testing.T) {
	// Arrange
	board := Board{
		SymbolX, SymbolO, Empty,
		Empty, SymbolX, Empty,
		Empty, Empty, SymbolO,
	}

	// Act
	outcome := Evaluate(board)

	// Assert
	require.Equal(t, OutcomeNone, outcome)
}

func Test_Evaluate_Returns_None_For_Empty_Board(t *testing.T) {
	// Act
	outcome := Evaluate(Board{})

	// Assert
	require.Equal(t, OutcomeNone, outcome)
}
