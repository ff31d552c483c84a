package game

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/core"

	"github.com/eskrenkovic/tql"
)

type GetUserGamesQuery struct {
	UserID string
}

func (q GetUserGamesQuery) Validate() error {
	if q.UserID == "" {
		return fmt.Errorf("invalid UserID - '%s'", q.UserID)
	}

	return nil
}

// GameSummary is one row of a user's match history, with the outcome
// projected from that user's side of the board.
type GameSummary struct {
	GameID       string    `json:"gameId"`
	OpponentName string    `json:"opponentName"`
	Result       string    `json:"result"`
	RoomCode     string    `json:"roomCode"`
	CreatedAt    time.Time `json:"createdAt"`
}

type GetUserGamesQueryHandler struct {
	db *sql.DB
}

func NewGetUserGamesQueryHandler(db *sql.DB) *GetUserGamesQueryHandler {
	return &GetUserGamesQueryHandler{db}
}

func (h *GetUserGamesQueryHandler) Handle(
	ctx context.Context,
	request GetUserGamesQuery,
) ([]GameSummary, error) {
	const query = `
		SELECT
			*
		FROM
			games
		WHERE
			player_x = $1 OR player_o = $1
		ORDER BY
			created_at DESC;`
	records, err := tql.Query[GameRecord](ctx, h.db, query, request.UserID)
	if err != nil {
		return nil, err
	}

	return summarizeGames(records, request.UserID), nil
}

func summarizeGames(records []GameRecord, userID string) []GameSummary {
	return core.Map(records, func(record GameRecord) GameSummary {
		return summarizeGame(record, userID)
	})
}

// summarizeGame projects a record onto one player's perspective:
// "X" or "O" becomes win or lose depending on which side the user played.
func summarizeGame(record GameRecord, userID string) GameSummary {
	isPlayerX := record.PlayerX == userID

	opponentName := record.PlayerXName
	if isPlayerX {
		opponentName = record.PlayerOName
	}

	var result string
	switch {
	case record.Result == "draw":
		result = "draw"
	case (record.Result == "X") == isPlayerX:
		result = "win"
	default:
		result = "lose"
	}

	return GameSummary{
		GameID:       record.ID,
		OpponentName: opponentName,
		Result:       result,
		RoomCode:     record.RoomCode,
		CreatedAt:    record.CreatedAt,
	}
}
