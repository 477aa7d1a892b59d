package maze

import (
	"github.com/mcoot/santaworkshop/internal/dependencies/random"
	"github.com/mcoot/santaworkshop/internal/model"
)

// Root is where carving starts and where the player begins
var Root = model.Point{X: 1, Y: 1}

var carveSteps = []model.Direction{
	{DX: 0, DY: -2},
	{DX: 0, DY: 2},
	{DX: -2, DY: 0},
	{DX: 2, DY: 0},
}

// Generate carves a perfect maze with a randomized depth-first backtracker.
// Dimensions should be odd so the outer ring stays wall.
func Generate(rnd random.Random, rows, cols int) *model.Maze {
	cells := make([][]model.CellType, rows)
	for y := range cells {
		cells[y] = make([]model.CellType, cols)
		for x := range cells[y] {
			cells[y][x] = model.CellWall
		}
	}

	var carve func(x, y int)
	carve = func(x, y int) {
		cells[y][x] = model.CellPath

		dirs := make([]model.Direction, len(carveSteps))
		copy(dirs, carveSteps)
		random.Shuffle(rnd, len(dirs), func(i, j int) {
			dirs[i], dirs[j] = dirs[j], dirs[i]
		})

		for _, d := range dirs {
			nx, ny := x+d.DX, y+d.DY
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && cells[ny][nx] == model.CellWall {
				cells[y+d.DY/2][x+d.DX/2] = model.CellPath
				carve(nx, ny)
			}
		}
	}

	carve(Root.X, Root.Y)
	cells[Root.Y][Root.X] = model.CellStart

	end := findEnd(cells, rows, cols)
	if end != Root {
		cells[end.Y][end.X] = model.CellEnd
	}

	return &model.Maze{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
		Start: Root,
		End:   end,
	}
}

// findEnd scans inward from the far corner, row by row, for the first open
// cell. The root is always open so the scan terminates.
func findEnd(cells [][]model.CellType, rows, cols int) model.Point {
	for y := rows - 2; y >= Root.Y; y-- {
		for x := cols - 2; x >= Root.X; x-- {
			if cells[y][x] != model.CellWall {
				return model.Point{X: x, Y: y}
			}
		}
	}
	return Root
}
