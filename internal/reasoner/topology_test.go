package reasoner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfarer-ai/wayfarer/internal/entities"
)

// plot builds a grid from rows of runes centered so the middle character
// is (0,0): '#' wall, '.' walkable, ' ' unexplored.
func plot(rows ...string) *entities.CellGrid {
	grid := entities.NewCellGrid(0, 0)
	offY := len(rows) / 2
	for ry, row := range rows {
		offX := len(row) / 2
		for rx, ch := range row {
			if ch == ' ' {
				continue
			}
			cell := entities.NewMapCell(rx-offX, ry-offY, 0)
			cell.Explored = true
			cell.Walkable = ch == '.'
			grid.Put(cell)
		}
	}
	return grid
}

func TestClassifyTopology(t *testing.T) {
	center := entities.Point{}

	tests := []struct {
		name string
		grid *entities.CellGrid
		want Topology
	}{
		{
			name: "dead end",
			grid: plot(
				"#####",
				"#####",
				"#..##",
				"#####",
				"#####",
			),
			want: TopologyDeadEnd,
		},
		{
			name: "corridor",
			grid: plot(
				"#####",
				"#####",
				".....",
				"#####",
				"#####",
			),
			want: TopologyCorridor,
		},
		{
			name: "open field",
			grid: plot(
				".....",
				".....",
				".....",
				".....",
				".....",
			),
			want: TopologyOpen,
		},
		{
			name: "room with walled outskirts",
			grid: plot(
				"##.##",
				"#...#",
				"#...#",
				"#...#",
				"##.##",
			),
			want: TopologyRoom,
		},
		{
			name: "maze",
			grid: plot(
				"#.#.#",
				".....",
				"#....",
				".##..",
				"#.###",
			),
			want: TopologyMaze,
		},
		{
			name: "unknown neighborhood",
			grid: plot(
				"     ",
				"     ",
				"  .. ",
				"     ",
				"     ",
			),
			want: TopologyUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyTopology(tt.grid, center))
		})
	}
}
