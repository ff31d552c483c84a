package game

import (
	"fmt"
	"net/http"

	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/core"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

func HandleGetUserGames(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		core.WriteBadRequest(w, r, fmt.Errorf("missing required path param 'userId'"))
		return
	}

	response, err := mediator.Send[GetUserGamesQuery, []GameSummary](
		r.Context(),
		GetUserGamesQuery{UserID: userID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func HandleGetUserStats(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		core.WriteBadRequest(w, r, fmt.Errorf("missing required path param 'userId'"))
		return
	}

	response, err := mediator.Send[GetUserStatsQuery, PlayerStats](
		r.Context(),
		GetUserStatsQuery{UserID: userID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

func HandleGetGameByID(w http.ResponseWriter, r *http.Request) {
	gameID, err := uuid.Parse(chi.URLParam(r, "gameId"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'gameId'"))
		return
	}

	response, err := mediator.Send[GetGameByIDQuery, GameDetail](
		r.Context(),
		GetGameByIDQuery{GameID: gameID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}
