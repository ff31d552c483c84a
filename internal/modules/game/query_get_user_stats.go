package game

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eskrenkovic/tql"
)

type GetUserStatsQuery struct {
	UserID string
}

func (q GetUserStatsQuery) Validate() error {
	if q.UserID == "" {
		return fmt.Errorf("invalid UserID - '%s'", q.UserID)
	}

	return nil
}

// PlayerStats is a user's lifetime tally across all completed games.
type PlayerStats struct {
	UserID string `db:"user_id" json:"userId"`
	Wins   int    `db:"wins" json:"wins"`
	Losses int    `db:"losses" json:"losses"`
	Draws  int    `db:"draws" json:"draws"`
}

type GetUserStatsQueryHandler struct {
	db *sql.DB
}

func NewGetUserStatsQueryHandler(db *sql.DB) *GetUserStatsQueryHandler {
	return &GetUserStatsQueryHandler{db}
}

func (h *GetUserStatsQueryHandler) Handle(
	ctx context.Context,
	request GetUserStatsQuery,
) (PlayerStats, error) {
	const query = `
		SELECT
			*
		FROM
			game_stats
		WHERE
			user_id = $1;`
	stats, err := tql.Query[PlayerStats](ctx, h.db, query, request.UserID)
	if err != nil {
		return PlayerStats{}, err
	}

	// A user with no finished games has an all-zero tally, not an error.
	if len(stats) == 0 {
		return PlayerStats{UserID: request.UserID}, nil
	}

	return stats[0], nil
}
