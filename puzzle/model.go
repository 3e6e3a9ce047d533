// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

package puzzle

import (
	"fmt"
)

/*

cells

*/

// A Cell is one square of a nonogram grid.  During a solve each
// cell is in one of three states; a finished grid has no unknown
// cells left.
type Cell int8

const (
	CellUnknown Cell = iota - 1 // not yet decided
	CellEmpty                   // decided empty
	CellFilled                  // decided filled
)

func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellFilled:
		return "filled"
	default:
		return "unknown"
	}
}

/*

clues and lines

*/

// A Clue is the sequence of filled-block lengths for one line,
// in order.  The empty clue means the line is all empty.
type Clue []int

// minLength is the shortest line the clue fits in: the blocks
// plus one separating empty cell between each pair.
func (c Clue) minLength() int {
	if len(c) == 0 {
		return 0
	}
	total := len(c) - 1
	for _, b := range c {
		total += b
	}
	return total
}

func (c Clue) clone() Clue {
	if c == nil {
		return nil
	}
	out := make(Clue, len(c))
	copy(out, c)
	return out
}

// runLengths computes the clue a fully-decided line actually
// exhibits.  Unknown cells are treated as empty, so callers must
// only rely on it for finished lines.
func runLengths(cells []Cell) Clue {
	clue := Clue{}
	run := 0
	for _, c := range cells {
		if c == CellFilled {
			run++
		} else if run > 0 {
			clue = append(clue, run)
			run = 0
		}
	}
	if run > 0 {
		clue = append(clue, run)
	}
	return clue
}

// A LineID names one line of a grid: its orientation and its
// 0-based index.
type LineID struct {
	Ltype string `json:"ltype"`
	Index int    `json:"index"`
}

const (
	LtypeRow    = "row"
	LtypeColumn = "column"
)

func (id LineID) String() string {
	return fmt.Sprintf("%s %d", id.Ltype, id.Index)
}

/*

rule sets

*/

// A RuleSet is a validated, immutable nonogram puzzle: the grid
// dimensions plus one clue per row and per column.  Construct
// one with New or NewRuleSet; a RuleSet in hand is always
// structurally valid (which says nothing about solvability).
type RuleSet struct {
	width, height int
	rows, columns []Clue
}

// NewRuleSet validates the dimensions and clues and builds a
// RuleSet over defensive copies of the inputs.  A clue of [0] is
// accepted as an alias for the empty clue, because saved puzzle
// files write empty lines that way.  Validation is eager: a bad
// block or an oversized clue is reported here, never later from
// inside a solve.
func NewRuleSet(width, height int, rows, columns []Clue) (*RuleSet, error) {
	if width <= 0 {
		return nil, argumentError(WidthAttribute, NonPositiveCondition, width)
	}
	if height <= 0 {
		return nil, argumentError(HeightAttribute, NonPositiveCondition, height)
	}
	if len(rows) != height {
		return nil, argumentError(RowClueAttribute, WrongCountCondition, len(rows))
	}
	if len(columns) != width {
		return nil, argumentError(ColumnClueAttribute, WrongCountCondition, len(columns))
	}
	rs := &RuleSet{
		width: width, height: height,
		rows:    make([]Clue, height),
		columns: make([]Clue, width),
	}
	for i, clue := range rows {
		normalized, err := normalizeClue(clue, width, RowClueAttribute, i)
		if err != nil {
			return nil, err
		}
		rs.rows[i] = normalized
	}
	for i, clue := range columns {
		normalized, err := normalizeClue(clue, height, ColumnClueAttribute, i)
		if err != nil {
			return nil, err
		}
		rs.columns[i] = normalized
	}
	return rs, nil
}

// normalizeClue validates one clue against its line length,
// turning the [0] alias into the canonical empty clue.
func normalizeClue(clue Clue, length int, attr ErrorAttribute, index int) (Clue, error) {
	if len(clue) == 1 && clue[0] == 0 {
		return Clue{}, nil
	}
	for _, b := range clue {
		if b <= 0 {
			return nil, clueError(BlockAttribute, NonPositiveCondition, LineID{attrLtype(attr), index}, b)
		}
	}
	if clue.minLength() > length {
		return nil, clueError(attr, TooLargeCondition, LineID{attrLtype(attr), index})
	}
	return append(Clue{}, clue...), nil
}

func attrLtype(attr ErrorAttribute) string {
	if attr == ColumnClueAttribute {
		return LtypeColumn
	}
	return LtypeRow
}

// Width returns the number of columns.
func (rs *RuleSet) Width() int {
	return rs.width
}

// Height returns the number of rows.
func (rs *RuleSet) Height() int {
	return rs.height
}

// RowClue returns a copy of the clue for row i.
func (rs *RuleSet) RowClue(i int) Clue {
	return rs.rows[i].clone()
}

// ColumnClue returns a copy of the clue for column i.
func (rs *RuleSet) ColumnClue(i int) Clue {
	return rs.columns[i].clone()
}

// Lines are numbered 0..height-1 for the rows, then
// height..height+width-1 for the columns.  The grid itself is
// stored row-major, so a row is a contiguous slice and a column
// is a stride-width walk.

func (rs *RuleSet) lineCount() int {
	return rs.height + rs.width
}

func (rs *RuleSet) lineClue(li int) Clue {
	if li < rs.height {
		return rs.rows[li]
	}
	return rs.columns[li-rs.height]
}

func (rs *RuleSet) lineLength(li int) int {
	if li < rs.height {
		return rs.width
	}
	return rs.height
}

func (rs *RuleSet) lineID(li int) LineID {
	if li < rs.height {
		return LineID{LtypeRow, li}
	}
	return LineID{LtypeColumn, li - rs.height}
}

/*

grid state

*/

// A gridState is the working grid of one solve: every cell's
// current state, row-major.  During propagation cells only move
// from unknown to decided; backtracking restores a whole earlier
// snapshot, never individual cells.
type gridState struct {
	rs    *RuleSet
	cells []Cell
}

func newGridState(rs *RuleSet) *gridState {
	cells := make([]Cell, rs.width*rs.height)
	for i := range cells {
		cells[i] = CellUnknown
	}
	return &gridState{rs: rs, cells: cells}
}

// snapshot returns an independent copy of the cells for the
// backtracking stack.
func (g *gridState) snapshot() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// restore rewinds the grid to an earlier snapshot.  The snapshot
// itself is copied from, not adopted, so it stays pristine for
// another rewind.
func (g *gridState) restore(cells []Cell) {
	copy(g.cells, cells)
}

// firstUnknown returns the row-major index of the first unknown
// cell, or -1 when the grid is complete.  The scan order is what
// makes search deterministic.
func (g *gridState) firstUnknown() int {
	for i, c := range g.cells {
		if c == CellUnknown {
			return i
		}
	}
	return -1
}

// crossLines gives the row line and column line a cell lies on,
// for dirty-marking after the cell changes.
func (g *gridState) crossLines(cellIndex int) (row, column int) {
	return cellIndex / g.rs.width, g.rs.height + cellIndex%g.rs.width
}

// line projects one row or column of the grid.
func (g *gridState) line(li int) lineView {
	if li < g.rs.height {
		return lineView{g: g, base: li * g.rs.width, stride: 1, length: g.rs.width}
	}
	return lineView{g: g, base: li - g.rs.height, stride: g.rs.width, length: g.rs.height}
}

// values converts a finished grid to 0/1 form.  Calling it with
// unknown cells left is a bug in the caller.
func (g *gridState) values() [][]int {
	out := make([][]int, g.rs.height)
	for r := 0; r < g.rs.height; r++ {
		row := make([]int, g.rs.width)
		for c := 0; c < g.rs.width; c++ {
			switch g.cells[r*g.rs.width+c] {
			case CellFilled:
				row[c] = 1
			case CellEmpty:
				row[c] = 0
			default:
				panic(fmt.Errorf("values called on incomplete grid (cell %d,%d unknown)", r, c))
			}
		}
		out[r] = row
	}
	return out
}

// validate recomputes every line's run lengths and compares them
// to the clues.  A solver only returns grids that pass; a
// mismatch means a bug, so the error is internal and is never
// softened into an ordinary unsolvable result.
func (g *gridState) validate() error {
	for li := 0; li < g.rs.lineCount(); li++ {
		got := runLengths(g.line(li).cells())
		want := g.rs.lineClue(li)
		if !cluesEqual(got, want) {
			return internalError(MismatchedCluesCondition, g.rs.lineID(li), got, want)
		}
	}
	return nil
}

func cluesEqual(a, b Clue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

/*

line views

*/

// A lineView is a read/write window onto one line of a grid.
type lineView struct {
	g      *gridState
	base   int
	stride int
	length int
}

// cells copies the line out of the grid.
func (v lineView) cells() []Cell {
	out := make([]Cell, v.length)
	for i := range out {
		out[i] = v.g.cells[v.base+i*v.stride]
	}
	return out
}

// set writes one cell through the view and returns its row-major
// grid index, which the caller needs to dirty the crossing line.
func (v lineView) set(pos int, val Cell) int {
	idx := v.base + pos*v.stride
	v.g.cells[idx] = val
	return idx
}
