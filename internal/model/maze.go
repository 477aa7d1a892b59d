package model

// CellType is the content of one maze cell
type CellType string

const (
	CellWall  CellType = "wall"
	CellPath  CellType = "path"
	CellStart CellType = "start"
	CellEnd   CellType = "end"
)

// Point is a grid coordinate; X is the column, Y the row
type Point struct {
	X int
	Y int
}

// Direction is a single-step move
type Direction struct {
	DX int
	DY int
}

var (
	DirUp    = Direction{DX: 0, DY: -1}
	DirDown  = Direction{DX: 0, DY: 1}
	DirLeft  = Direction{DX: -1, DY: 0}
	DirRight = Direction{DX: 1, DY: 0}
)

// ParseDirection converts a direction name into a Direction
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	}
	return Direction{}, ErrInvalidDirection
}

// Maze is a rectangular grid of cells indexed [y][x]
type Maze struct {
	Rows  int
	Cols  int
	Cells [][]CellType
	Start Point
	End   Point
}

// InBounds returns true if the point lies inside the grid
func (m *Maze) InBounds(p Point) bool {
	return p.X >= 0 && p.X < m.Cols && p.Y >= 0 && p.Y < m.Rows
}

// At returns the cell at a point. Out of bounds points read as walls.
func (m *Maze) At(p Point) CellType {
	if !m.InBounds(p) {
		return CellWall
	}
	return m.Cells[p.Y][p.X]
}

// Open returns true if the point can be occupied
func (m *Maze) Open(p Point) bool {
	return m.At(p) != CellWall
}

// MazeState is a snapshot of a maze game
type MazeState struct {
	Maze   *Maze
	Player Point
	Moves  int
	Won    bool
}
