package game

import (
	"testing"

	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/game/domain"

	"github.com/stretchr/testify/require"
)

func Test_GetUserStatsQuery_Requires_UserID(t *testing.T) {
	// Arrange
	query := GetUserStatsQuery{}

	// Act
	err := query.Validate()

	// Assert
	require.Error(t, err)
}

func Test_StatsDeltas_Credit_The_Winning_Side(t *testing.T) {
	// Act
	xStats, oStats := statsDeltas(domain.OutcomeX)

	// Assert
	require.Equal(t, statsDelta{wins: 1}, xStats)
	require.Equal(t, statsDelta{losses: 1}, oStats)
}

func Test_StatsDeltas_Credit_O_Win(t *testing.T) {
	// Act
	xStats, oStats := statsDeltas(domain.OutcomeO)

	// Assert
	require.Equal(t, statsDelta{losses: 1}, xStats)
	require.Equal(t, statsDelta{wins: 1}, oStats)
}

func Test_StatsDeltas_Split_A_Draw(t *testing.T) {
	// Act
	xStats, oStats := statsDeltas(domain.OutcomeDraw)

	// Assert
	require.Equal(t, statsDelta{draws: 1}, xStats)
	require.Equal(t, statsDelta{draws: 1}, oStats)
}
