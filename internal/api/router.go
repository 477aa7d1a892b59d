package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/santaworkshop/internal/api/apierr"
	"github.com/mcoot/santaworkshop/internal/api/handler"
	"github.com/mcoot/santaworkshop/internal/api/middleware"
	"github.com/mcoot/santaworkshop/internal/api/response"
	"github.com/mcoot/santaworkshop/internal/api/sse"
	"github.com/mcoot/santaworkshop/internal/services/catcher"
	"github.com/mcoot/santaworkshop/internal/services/economy"
	"github.com/mcoot/santaworkshop/internal/services/identity"
	"github.com/mcoot/santaworkshop/internal/services/maze"
	"github.com/mcoot/santaworkshop/internal/services/memory"
	"github.com/mcoot/santaworkshop/internal/services/planner"
	"github.com/mcoot/santaworkshop/internal/services/shop"
	"github.com/mcoot/santaworkshop/internal/services/snowball"
	"github.com/mcoot/santaworkshop/internal/services/trivia"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger     *slog.Logger
	Identity   *identity.Service
	Economy    *economy.Service
	Shop       *shop.Service
	Planner    *planner.Service
	Maze       *maze.Game
	Catcher    *catcher.Game
	Snowball   *snowball.Game
	Trivia     *trivia.Game
	Memory     *memory.Game
	HubManager *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError("No such route: "+req.URL.Path))
	})

	// Create handlers
	profileHandler := handler.NewProfileHandler(cfg.Identity)
	walletHandler := handler.NewWalletHandler(cfg.Economy, cfg.Shop)
	plannerHandler := handler.NewPlannerHandler(cfg.Planner)
	mazeHandler := handler.NewMazeHandler(cfg.Maze)
	gamesHandler := handler.NewGamesHandler(cfg.Catcher, cfg.Snowball, cfg.Trivia, cfg.Memory, cfg.HubManager)

	// Create middleware
	profileMiddleware := middleware.RequireProfile(cfg.Identity)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Profile routes (always available)
	api.HandleFunc("/profiles", profileHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/profiles", profileHandler.Add).Methods(http.MethodPost)
	api.HandleFunc("/session", profileHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/session/login", profileHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/session/logout", profileHandler.Logout).Methods(http.MethodPost)

	// Planner and maze need no profile
	api.HandleFunc("/planner/suggestions", plannerHandler.Suggest).Methods(http.MethodPost)
	api.HandleFunc("/maze", mazeHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/maze", mazeHandler.Regenerate).Methods(http.MethodPost)
	api.HandleFunc("/maze/move", mazeHandler.Move).Methods(http.MethodPost)

	// Shop listing is public; buying needs a profile
	api.HandleFunc("/shop", walletHandler.Shop).Methods(http.MethodGet)
	shopProtected := api.PathPrefix("/shop").Subrouter()
	shopProtected.Use(profileMiddleware)
	shopProtected.HandleFunc("/{item}/buy", walletHandler.Buy).Methods(http.MethodPost)

	// Wallet routes (all require a profile)
	wallet := api.PathPrefix("/wallet").Subrouter()
	wallet.Use(profileMiddleware)
	wallet.HandleFunc("", walletHandler.Get).Methods(http.MethodGet)
	wallet.HandleFunc("/earn", walletHandler.Earn).Methods(http.MethodPost)
	wallet.HandleFunc("/spend", walletHandler.Spend).Methods(http.MethodPost)
	wallet.HandleFunc("/inventory", walletHandler.AddItem).Methods(http.MethodPost)

	// Game routes (all require a profile)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(profileMiddleware)
	games.HandleFunc("/catcher", gamesHandler.GetCatcher).Methods(http.MethodGet)
	games.HandleFunc("/catcher/start", gamesHandler.StartCatcher).Methods(http.MethodPost)
	games.HandleFunc("/catcher/stop", gamesHandler.StopCatcher).Methods(http.MethodPost)
	games.HandleFunc("/catcher/finish", gamesHandler.FinishCatcher).Methods(http.MethodPost)
	games.HandleFunc("/catcher/catch", gamesHandler.Catch).Methods(http.MethodPost)
	games.HandleFunc("/snowball", gamesHandler.GetSnowball).Methods(http.MethodGet)
	games.HandleFunc("/snowball/start", gamesHandler.StartSnowball).Methods(http.MethodPost)
	games.HandleFunc("/snowball/stop", gamesHandler.StopSnowball).Methods(http.MethodPost)
	games.HandleFunc("/snowball/finish", gamesHandler.FinishSnowball).Methods(http.MethodPost)
	games.HandleFunc("/snowball/whack", gamesHandler.Whack).Methods(http.MethodPost)
	games.HandleFunc("/trivia", gamesHandler.GetTrivia).Methods(http.MethodGet)
	games.HandleFunc("/trivia/start", gamesHandler.StartTrivia).Methods(http.MethodPost)
	games.HandleFunc("/trivia/stop", gamesHandler.StopTrivia).Methods(http.MethodPost)
	games.HandleFunc("/trivia/answer", gamesHandler.Answer).Methods(http.MethodPost)
	games.HandleFunc("/memory", gamesHandler.GetMemory).Methods(http.MethodGet)
	games.HandleFunc("/memory/start", gamesHandler.StartMemory).Methods(http.MethodPost)
	games.HandleFunc("/memory/stop", gamesHandler.StopMemory).Methods(http.MethodPost)
	games.HandleFunc("/memory/reveal", gamesHandler.Reveal).Methods(http.MethodPost)
	games.HandleFunc("/{kind}/events", gamesHandler.Events).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}
