// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

package puzzle

import (
	"math/rand"
)

// Generate builds a random width-by-height grid, each cell
// filled with probability one half, and derives the rule set its
// run lengths describe.  The grid is returned alongside the rule
// set; it is one solution of the rule set, though not
// necessarily the only one, nor the one a solver would reach
// first.  Generation is deterministic in the rand source, so
// tests can pin a seed.
func Generate(width, height int, rnd *rand.Rand) (*RuleSet, [][]int, error) {
	if width <= 0 {
		return nil, nil, argumentError(WidthAttribute, NonPositiveCondition, width)
	}
	if height <= 0 {
		return nil, nil, argumentError(HeightAttribute, NonPositiveCondition, height)
	}
	grid := make([][]int, height)
	cells := make([]Cell, width)
	rows := make([]Clue, height)
	for r := range grid {
		row := make([]int, width)
		for c := range row {
			row[c] = rnd.Intn(2)
			cells[c] = Cell(row[c])
		}
		grid[r] = row
		rows[r] = runLengths(cells)
	}
	columns := make([]Clue, width)
	colCells := make([]Cell, height)
	for c := 0; c < width; c++ {
		for r := 0; r < height; r++ {
			colCells[r] = Cell(grid[r][c])
		}
		columns[c] = runLengths(colCells)
	}
	rs, err := NewRuleSet(width, height, rows, columns)
	if err != nil {
		// clues derived from an actual grid always validate
		panic(err)
	}
	return rs, grid, nil
}
