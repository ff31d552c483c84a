package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/core"
	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/game/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

type GetGameByIDQuery struct {
	GameID uuid.UUID
}

func (q GetGameByIDQuery) Validate() error {
	if q.GameID == uuid.Nil {
		return fmt.Errorf("invalid GameID - '%s'", q.GameID)
	}

	return nil
}

// GameMoveDetail is one replay step, numbered from 1 in play order.
type GameMoveDetail struct {
	MoveNumber int           `json:"moveNumber"`
	CellIndex  int           `json:"index"`
	Symbol     domain.Symbol `json:"symbol"`
	ByUserID   string        `json:"by"`
}

type GameDetail struct {
	GameID      string           `json:"gameId"`
	RoomCode    string           `json:"roomCode"`
	PlayerXName string           `json:"playerX"`
	PlayerOName string           `json:"playerO"`
	Result      string           `json:"result"`
	Winner      *string          `json:"winner"`
	Moves       []GameMoveDetail `json:"moves"`
	CreatedAt   time.Time        `json:"createdAt"`
}

type GetGameByIDQueryHandler struct {
	db *sql.DB
}

func NewGetGameByIDQueryHandler(db *sql.DB) *GetGameByIDQueryHandler {
	return &GetGameByIDQueryHandler{db}
}

func (h *GetGameByIDQueryHandler) Handle(
	ctx context.Context,
	request GetGameByIDQuery,
) (GameDetail, error) {
	const query = `
		SELECT
			*
		FROM
			games
		WHERE
			id = $1;`
	record, err := tql.QueryFirst[GameRecord](ctx, h.db, query, request.GameID.String())
	if err != nil {
		return GameDetail{}, core.NewCommandError(404, fmt.Errorf("game not found"))
	}

	return buildGameDetail(record)
}

func buildGameDetail(record GameRecord) (GameDetail, error) {
	var moves []domain.Move
	if record.Moves != "" {
		if err := json.Unmarshal([]byte(record.Moves), &moves); err != nil {
			return GameDetail{}, err
		}
	}

	details := make([]GameMoveDetail, 0, len(moves))
	for i, move := range moves {
		details = append(details, GameMoveDetail{
			MoveNumber: i + 1,
			CellIndex:  move.CellIndex,
			Symbol:     move.Symbol,
			ByUserID:   move.ByUserID,
		})
	}

	return GameDetail{
		GameID:      record.ID,
		RoomCode:    record.RoomCode,
		PlayerXName: record.PlayerXName,
		PlayerOName: record.PlayerOName,
		Result:      record.Result,
		Winner:      record.WinnerUserID,
		Moves:       details,
		CreatedAt:   record.CreatedAt,
	}, nil
}
