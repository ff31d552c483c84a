package server

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"
	"strconv"

	"github.com/Tanay-sheth/tic-tac-toe/internal/config"
	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/core"
	"github.com/Tanay-sheth/tic-tac-toe/internal/modules/game"
	gamedomain "github.com/Tanay-sheth/tic-tac-toe/internal/modules/game/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/eskrenkovic/migrate-go"
	"github.com/go-chi/chi"
	_ "github.com/lib/pq"
)

type Server interface {
	Start() error
	Stop() error
}

var _ Server = &HTTPServer{}

// HTTPServer acts as the composition root for the application.
type HTTPServer struct {
	server *http.Server
}

func NewHTTPServer(config config.Config) (Server, error) {
	baseCtx := context.Background()

	db, err := sql.Open("postgres", config.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := migrate.Run(baseCtx, db, config.MigrationsPath); err != nil {
		return nil, err
	}

	core.SetLogger(config.Logger)

	requestLoggingBehavior := core.RequestLoggingBehavior{Logger: config.Logger}
	handlerErrorLoggingBehavior := core.HandlerErrorLoggingBehavior{Logger: config.Logger}
	requestValidationBehavior := core.RequestValidationBehavior{}

	mediator.RegisterPipelineBehavior(&requestLoggingBehavior)
	mediator.RegisterPipelineBehavior(&handlerErrorLoggingBehavior)
	mediator.RegisterPipelineBehavior(&requestValidationBehavior)

	// handler registration

	saveGameHandler := game.NewSaveGameCommandHandler(db)
	err = mediator.RegisterRequestHandler[game.SaveGameCommand, core.Unit](saveGameHandler)
	if err != nil {
		return nil, err
	}

	getUserGamesHandler := game.NewGetUserGamesQueryHandler(db)
	err = mediator.RegisterRequestHandler[game.GetUserGamesQuery, []game.GameSummary](
		getUserGamesHandler,
	)
	if err != nil {
		return nil, err
	}

	getUserStatsHandler := game.NewGetUserStatsQueryHandler(db)
	err = mediator.RegisterRequestHandler[game.GetUserStatsQuery, game.PlayerStats](
		getUserStatsHandler,
	)
	if err != nil {
		return nil, err
	}

	getGameByIDHandler := game.NewGetGameByIDQueryHandler(db)
	err = mediator.RegisterRequestHandler[game.GetGameByIDQuery, game.GameDetail](
		getGameByIDHandler,
	)
	if err != nil {
		return nil, err
	}

	// realtime

	registry := gamedomain.NewRegistry()
	coordinator := game.NewCoordinator(registry, game.DispatchSaveGame, config.Logger)
	go coordinator.Run(baseCtx)

	wsHandler := game.NewWebsocketHandler(coordinator, config.Logger)

	r := router{
		mux: chi.NewRouter(),
		middleware: []httpMiddleware{
			baseContextMiddleware(baseCtx),
			core.CorrelationIDHTTPMiddleware,
		},
	}

	// http

	r.get("/ws", wsHandler.Handle)

	r.get("/games/user/{userId}", game.HandleGetUserGames)
	r.get("/games/user/{userId}/stats", game.HandleGetUserStats)
	r.get("/games/{gameId}", game.HandleGetGameByID)

	server := http.Server{
		Addr:    net.JoinHostPort("", strconv.Itoa(config.Port)),
		Handler: r.mux,
	}

	return &HTTPServer{server: &server}, nil
}

func (s *HTTPServer) Start() error {
	if err := s.server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}

	return nil
}

func (s *HTTPServer) Stop() error {
	return s.server.Close()
}

type httpMiddleware func(http.HandlerFunc) http.HandlerFunc

type router struct {
	mux        *chi.Mux
	middleware []httpMiddleware
}

func (r *router) get(pattern string, handler http.HandlerFunc, middleware ...httpMiddleware) {
	h := handler

	allMiddleware := append(r.middleware, middleware...)

	for i := len(allMiddleware) - 1; i >= 0; i-- {
		h = allMiddleware[i](h)
	}

	r.mux.Get(pattern, h)
}

func baseContextMiddleware(baseCtx context.Context) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			baseCtx := baseCtx

			if v, ok := ctx.Value(http.ServerContextKey).(*http.Server); ok {
				baseCtx = context.WithValue(baseCtx, http.ServerContextKey, v)
			}

			if v, ok := ctx.Value(http.LocalAddrContextKey).(net.Addr); ok {
				baseCtx = context.WithValue(baseCtx, http.LocalAddrContextKey, v)
			}

			// Routing has already happened - keep the matched URL params.
			if v := ctx.Value(chi.RouteCtxKey); v != nil {
				baseCtx = context.WithValue(baseCtx, chi.RouteCtxKey, v)
			}

			next.ServeHTTP(w, r.WithContext(baseCtx))
		}
	}
}
