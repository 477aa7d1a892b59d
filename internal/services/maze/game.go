package maze

import (
	"log/slog"
	"sync"

	"github.com/mcoot/santaworkshop/internal/dependencies/random"
	"github.com/mcoot/santaworkshop/internal/model"
)

// Config holds the maze dimensions
type Config struct {
	Rows int
	Cols int
}

// DefaultConfig returns the default 15x15 maze
func DefaultConfig() Config {
	return Config{Rows: 15, Cols: 15}
}

// Game holds one maze and the player's token on it
type Game struct {
	cfg    Config
	random random.Random
	logger *slog.Logger

	mu     sync.Mutex
	maze   *model.Maze
	player model.Point
	moves  int
	won    bool
}

// New creates a game with a freshly generated maze
func New(rnd random.Random, cfg Config, logger *slog.Logger) *Game {
	g := &Game{
		cfg:    cfg,
		random: rnd,
		logger: logger.With(slog.String("component", "maze")),
	}
	g.Regenerate()
	return g
}

// Regenerate replaces the maze and puts the player back on the start
func (g *Game) Regenerate() model.MazeState {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.maze = Generate(g.random, g.cfg.Rows, g.cfg.Cols)
	g.player = g.maze.Start
	g.moves = 0
	g.won = false

	g.logger.Debug("maze generated",
		slog.Int("end_x", g.maze.End.X),
		slog.Int("end_y", g.maze.End.Y),
	)
	return g.stateLocked()
}

// Move steps the player one cell. Moves into walls, off the grid, or after
// winning are ignored and reported as not moved.
func (g *Game) Move(dir model.Direction) (model.MazeState, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.won || abs(dir.DX)+abs(dir.DY) != 1 {
		return g.stateLocked(), false
	}

	next := model.Point{X: g.player.X + dir.DX, Y: g.player.Y + dir.DY}
	if !g.maze.Open(next) {
		return g.stateLocked(), false
	}

	g.player = next
	g.moves++
	if next == g.maze.End {
		g.won = true
		g.logger.Info("maze solved", slog.Int("moves", g.moves))
	}
	return g.stateLocked(), true
}

// State returns a snapshot of the maze and player
func (g *Game) State() model.MazeState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stateLocked()
}

func (g *Game) stateLocked() model.MazeState {
	cells := make([][]model.CellType, len(g.maze.Cells))
	for y, row := range g.maze.Cells {
		cells[y] = append([]model.CellType(nil), row...)
	}
	maze := *g.maze
	maze.Cells = cells

	return model.MazeState{
		Maze:   &maze,
		Player: g.player,
		Moves:  g.moves,
		Won:    g.won,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
