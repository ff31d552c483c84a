package game

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/core"
	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/game/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

type SaveGameCommand struct {
	RoomCode     string
	PlayerX      string
	PlayerO      string
	PlayerXName  string
	PlayerOName  string
	WinnerUserID *string
	Result       domain.Outcome
	Moves        []domain.Move
}

func (c SaveGameCommand) Validate() error {
	if c.RoomCode == "" {
		return fmt.Errorf("invalid RoomCode - '%s'", c.RoomCode)
	}

	if c.PlayerX == "" {
		return fmt.Errorf("invalid PlayerX - '%s'", c.PlayerX)
	}

	if c.PlayerO == "" {
		return fmt.Errorf("invalid PlayerO - '%s'", c.PlayerO)
	}

	switch c.Result {
	case domain.OutcomeX, domain.OutcomeO, domain.OutcomeDraw:
	default:
		return fmt.Errorf("invalid Result - '%s'", c.Result)
	}

	if c.Result == domain.OutcomeDraw && c.WinnerUserID != nil {
		return fmt.Errorf("WinnerUserID must be empty for a draw")
	}

	if c.Result != domain.OutcomeDraw && c.WinnerUserID == nil {
		return fmt.Errorf("missing WinnerUserID for result '%s'", c.Result)
	}

	return nil
}

type SaveGameCommandHandler struct {
	db *sql.DB
}

func NewSaveGameCommandHandler(db *sql.DB) *SaveGameCommandHandler {
	return &SaveGameCommandHandler{db}
}

func (h *SaveGameCommandHandler) Handle(
	ctx context.Context,
	request SaveGameCommand,
) (core.Unit, error) {
	moves, err := json.Marshal(request.Moves)
	if err != nil {
		return core.Unit{}, err
	}

	record := GameRecord{
		ID:           uuid.NewString(),
		RoomCode:     request.RoomCode,
		PlayerX:      request.PlayerX,
		PlayerO:      request.PlayerO,
		PlayerXName:  request.PlayerXName,
		PlayerOName:  request.PlayerOName,
		WinnerUserID: request.WinnerUserID,
		Result:       string(request.Result),
		Moves:        string(moves),
		CreatedAt:    time.Now().UTC(),
	}

	err = core.Tx(ctx, h.db, func(ctx context.Context, tx *sql.Tx) error {
		const stmt = `
			INSERT INTO
				games (id, room_code, player_x, player_o, player_x_name, player_o_name, winner_user_id, result, moves, created_at)
			VALUES
				(:id, :room_code, :player_x, :player_o, :player_x_name, :player_o_name, :winner_user_id, :result, :moves, :created_at);`
		if _, err := tql.Exec(ctx, tx, stmt, record); err != nil {
			return err
		}

		xStats, oStats := statsDeltas(request.Result)
		if err := upsertStats(ctx, tx, request.PlayerX, xStats); err != nil {
			return err
		}

		return upsertStats(ctx, tx, request.PlayerO, oStats)
	})
	if err != nil {
		return core.Unit{}, err
	}

	return core.Unit{}, nil
}

type statsDelta struct {
	wins   int
	losses int
	draws  int
}

func statsDeltas(result domain.Outcome) (statsDelta, statsDelta) {
	switch result {
	case domain.OutcomeX:
		return statsDelta{wins: 1}, statsDelta{losses: 1}
	case domain.OutcomeO:
		return statsDelta{losses: 1}, statsDelta{wins: 1}
	default:
		return statsDelta{draws: 1}, statsDelta{draws: 1}
	}
}

func upsertStats(ctx context.Context, tx *sql.Tx, userID string, delta statsDelta) error {
	const stmt = `
		INSERT INTO
			game_stats (user_id, wins, losses, draws)
		VALUES
			($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			wins   = game_stats.wins + EXCLUDED.wins,
			losses = game_stats.losses + EXCLUDED.losses,
			draws  = game_stats.draws + EXCLUDED.draws;`
	_, err := tql.Exec(ctx, tx, stmt, userID, delta.wins, delta.losses, delta.draws)
	return err
}

// DispatchSaveGame routes a finished game through the mediator pipeline.
// This is the coordinator's production SaveGame.
func DispatchSaveGame(ctx context.Context, command SaveGameCommand) error {
	_, err := mediator.Send[SaveGameCommand, core.Unit](ctx, command)
	return err
}
