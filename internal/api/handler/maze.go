package handler

import (
	"net/http"

	"github.com/mcoot/santaworkshop/internal/api/request"
	"github.com/mcoot/santaworkshop/internal/api/response"
	"github.com/mcoot/santaworkshop/internal/model"
	"github.com/mcoot/santaworkshop/internal/services/maze"
)

// MazeHandler handles maze endpoints
type MazeHandler struct {
	maze *maze.Game
}

// NewMazeHandler creates a new maze handler
func NewMazeHandler(maze *maze.Game) *MazeHandler {
	return &MazeHandler{maze: maze}
}

// Get handles GET /api/v1/maze
func (h *MazeHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.MazeFromModel(h.maze.State()))
}

// Regenerate handles POST /api/v1/maze
func (h *MazeHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusCreated, response.MazeFromModel(h.maze.Regenerate()))
}

// Move handles POST /api/v1/maze/move
func (h *MazeHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req request.MoveRequest
	if !decode(w, r, &req) {
		return
	}

	dir, err := model.ParseDirection(req.Direction)
	if err != nil {
		WriteError(w, err)
		return
	}

	state, moved := h.maze.Move(dir)
	response.JSON(w, http.StatusOK, response.MazeMove{
		Moved: moved,
		Maze:  response.MazeFromModel(state),
	})
}
