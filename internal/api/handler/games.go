package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/santaworkshop/internal/api/request"
	"github.com/mcoot/santaworkshop/internal/api/response"
	"github.com/mcoot/santaworkshop/internal/api/sse"
	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/services/catcher"
	"github.com/mcoot/santaworkshop/internal/services/memory"
	"github.com/mcoot/santaworkshop/internal/services/snowball"
	"github.com/mcoot/santaworkshop/internal/services/trivia"
)

// GamesHandler handles the mini-game endpoints
type GamesHandler struct {
	catcher    *catcher.Game
	snowball   *snowball.Game
	trivia     *trivia.Game
	memory     *memory.Game
	hubManager *sse.HubManager
}

// NewGamesHandler creates a new games handler
func NewGamesHandler(
	catcher *catcher.Game,
	snowball *snowball.Game,
	trivia *trivia.Game,
	memory *memory.Game,
	hubManager *sse.HubManager,
) *GamesHandler {
	return &GamesHandler{
		catcher:    catcher,
		snowball:   snowball,
		trivia:     trivia,
		memory:     memory,
		hubManager: hubManager,
	}
}

// GetCatcher handles GET /api/v1/games/catcher
func (h *GamesHandler) GetCatcher(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.CatcherFromModel(h.catcher.State()))
}

// StartCatcher handles POST /api/v1/games/catcher/start
func (h *GamesHandler) StartCatcher(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusCreated, response.CatcherFromModel(h.catcher.Start(r.Context())))
}

// StopCatcher handles POST /api/v1/games/catcher/stop
func (h *GamesHandler) StopCatcher(w http.ResponseWriter, r *http.Request) {
	h.catcher.Stop()
	response.JSON(w, http.StatusOK, response.CatcherFromModel(h.catcher.State()))
}

// FinishCatcher handles POST /api/v1/games/catcher/finish
func (h *GamesHandler) FinishCatcher(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.catcher.Finish(r.Context())
	writeSummary(w, summary, ok)
}

// Catch handles POST /api/v1/games/catcher/catch
func (h *GamesHandler) Catch(w http.ResponseWriter, r *http.Request) {
	var req request.CatchRequest
	if !decode(w, r, &req) {
		return
	}

	hit := h.catcher.Catch(req.ItemID)
	response.JSON(w, http.StatusOK, response.Interaction[response.Catcher]{
		Hit:   hit,
		State: response.CatcherFromModel(h.catcher.State()),
	})
}

// GetSnowball handles GET /api/v1/games/snowball
func (h *GamesHandler) GetSnowball(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.SnowballFromModel(h.snowball.State()))
}

// StartSnowball handles POST /api/v1/games/snowball/start
func (h *GamesHandler) StartSnowball(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusCreated, response.SnowballFromModel(h.snowball.Start(r.Context())))
}

// StopSnowball handles POST /api/v1/games/snowball/stop
func (h *GamesHandler) StopSnowball(w http.ResponseWriter, r *http.Request) {
	h.snowball.Stop()
	response.JSON(w, http.StatusOK, response.SnowballFromModel(h.snowball.State()))
}

// FinishSnowball handles POST /api/v1/games/snowball/finish
func (h *GamesHandler) FinishSnowball(w http.ResponseWriter, r *http.Request) {
	summary, ok := h.snowball.Finish(r.Context())
	writeSummary(w, summary, ok)
}

// Whack handles POST /api/v1/games/snowball/whack
func (h *GamesHandler) Whack(w http.ResponseWriter, r *http.Request) {
	var req request.WhackRequest
	if !decode(w, r, &req) {
		return
	}

	hit := h.snowball.Whack(req.Slot)
	response.JSON(w, http.StatusOK, response.Interaction[response.Snowball]{
		Hit:   hit,
		State: response.SnowballFromModel(h.snowball.State()),
	})
}

// GetTrivia handles GET /api/v1/games/trivia
func (h *GamesHandler) GetTrivia(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.TriviaFromModel(h.trivia.State()))
}

// StartTrivia handles POST /api/v1/games/trivia/start
func (h *GamesHandler) StartTrivia(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusCreated, response.TriviaFromModel(h.trivia.Start(r.Context())))
}

// StopTrivia handles POST /api/v1/games/trivia/stop
func (h *GamesHandler) StopTrivia(w http.ResponseWriter, r *http.Request) {
	h.trivia.Stop()
	response.JSON(w, http.StatusOK, response.TriviaFromModel(h.trivia.State()))
}

// Answer handles POST /api/v1/games/trivia/answer
func (h *GamesHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req request.AnswerRequest
	if !decode(w, r, &req) {
		return
	}

	state, err := h.trivia.Answer(r.Context(), req.Option)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TriviaFromModel(state))
}

// GetMemory handles GET /api/v1/games/memory
func (h *GamesHandler) GetMemory(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.MemoryFromModel(h.memory.State()))
}

// StartMemory handles POST /api/v1/games/memory/start
func (h *GamesHandler) StartMemory(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusCreated, response.MemoryFromModel(h.memory.Start(r.Context())))
}

// StopMemory handles POST /api/v1/games/memory/stop
func (h *GamesHandler) StopMemory(w http.ResponseWriter, r *http.Request) {
	h.memory.Stop()
	response.JSON(w, http.StatusOK, response.MemoryFromModel(h.memory.State()))
}

// Reveal handles POST /api/v1/games/memory/reveal
func (h *GamesHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	var req request.RevealRequest
	if !decode(w, r, &req) {
		return
	}

	state, err := h.memory.Reveal(r.Context(), req.CardID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.MemoryFromModel(state))
}

// Events handles GET /api/v1/games/{kind}/events
func (h *GamesHandler) Events(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseGameKind(mux.Vars(r)["kind"])
	if err != nil {
		WriteError(w, err)
		return
	}

	snapshot, err := json.Marshal(h.snapshot(kind))
	if err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(kind)
	sse.ServeSSE(w, r, hub, sse.FormatEvent("snapshot", string(snapshot)))
}

// snapshot returns the full current state of a game
func (h *GamesHandler) snapshot(kind model.GameKind) any {
	switch kind {
	case model.GameCatcher:
		return response.CatcherFromModel(h.catcher.State())
	case model.GameSnowball:
		return response.SnowballFromModel(h.snowball.State())
	case model.GameTrivia:
		return response.TriviaFromModel(h.trivia.State())
	default:
		return response.MemoryFromModel(h.memory.State())
	}
}

func writeSummary(w http.ResponseWriter, summary model.SessionSummary, ok bool) {
	if !ok {
		WriteError(w, model.ErrSessionNotRunning)
		return
	}
	response.JSON(w, http.StatusOK, response.SummaryFromModel(summary))
}
