// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

package puzzle

/*

line feasibility

*/

// solveLine deduces everything a clue forces about one line.
// Given the blocks and the line's current cells it returns a new
// line with every forced cell decided: a cell covered by block i
// in all of i's feasible placements becomes filled (the overlap
// rule), and a cell no feasible placement of any block covers
// becomes empty.  It never changes an already-decided cell.  If
// no arrangement of the blocks is consistent with the known
// cells it returns ok == false, a contradiction the caller turns
// into backtracking.
func solveLine(blocks Clue, cells []Cell) (line []Cell, ok bool) {
	n := len(cells)
	out := make([]Cell, n)
	copy(out, cells)

	// the empty clue: everything empty, any filled cell is a
	// contradiction
	if len(blocks) == 0 {
		for i, c := range cells {
			if c == CellFilled {
				return nil, false
			}
			out[i] = CellEmpty
		}
		return out, true
	}

	ls := newLineSolver(blocks, cells)
	var rev *lineSolver
	if ls.k > 1 {
		rev = newLineSolver(reverseClue(blocks), reverseCells(cells))
	}

	covered := make([]bool, n)
	for i, b := range blocks {
		lo, hi := -1, -1
		for s := 0; s+ls.minTail[i] <= n; s++ {
			if !ls.feasibleStart(rev, i, s) {
				continue
			}
			if lo < 0 {
				lo = s
			}
			hi = s
			for j := s; j < s+b; j++ {
				covered[j] = true
			}
		}
		if lo < 0 {
			return nil, false
		}
		// overlap: cells under block i in both its leftmost and
		// rightmost placements are under it in every placement
		for j := hi; j < lo+b; j++ {
			out[j] = CellFilled
		}
	}
	for j := 0; j < n; j++ {
		if !covered[j] {
			if out[j] == CellFilled {
				return nil, false
			}
			out[j] = CellEmpty
		}
	}
	return out, true
}

// A lineSolver holds the per-call state for feasibility checks
// on one line: prefix counts for O(1) "any filled/empty in
// range" queries and a memo for the suffix-placement recursion.
type lineSolver struct {
	blocks Clue
	cells  []Cell
	n, k   int
	// minTail[i] is the least room blocks i.. need: their
	// lengths plus a gap between each pair
	minTail []int
	// filledTo[i] and emptyTo[i] count decided cells in cells[:i]
	filledTo []int
	emptyTo  []int
	// memo[blk][pos]: can blocks blk.. be placed in cells[pos:]?
	// 0 unknown, 1 yes, 2 no
	memo [][]int8
}

func newLineSolver(blocks Clue, cells []Cell) *lineSolver {
	n, k := len(cells), len(blocks)
	ls := &lineSolver{
		blocks:   blocks,
		cells:    cells,
		n:        n,
		k:        k,
		minTail:  make([]int, k+1),
		filledTo: make([]int, n+1),
		emptyTo:  make([]int, n+1),
		memo:     make([][]int8, k),
	}
	for i := k - 1; i >= 0; i-- {
		ls.minTail[i] = ls.minTail[i+1] + blocks[i]
		if i < k-1 {
			ls.minTail[i]++
		}
	}
	for i, c := range cells {
		ls.filledTo[i+1] = ls.filledTo[i]
		ls.emptyTo[i+1] = ls.emptyTo[i]
		if c == CellFilled {
			ls.filledTo[i+1]++
		} else if c == CellEmpty {
			ls.emptyTo[i+1]++
		}
	}
	for i := range ls.memo {
		ls.memo[i] = make([]int8, n+1)
	}
	return ls
}

// filledIn reports whether cells[lo:hi] contains a filled cell.
func (ls *lineSolver) filledIn(lo, hi int) bool {
	return ls.filledTo[hi] > ls.filledTo[lo]
}

// fits reports whether a block of length b starting at s stays
// in the line and covers no empty cell.
func (ls *lineSolver) fits(s, b int) bool {
	return s+b <= ls.n && ls.emptyTo[s+b] == ls.emptyTo[s]
}

// canPlace reports whether blocks blk.. can be placed somewhere
// in cells[pos:], respecting every known cell: blocks avoid
// empty cells, gaps avoid filled cells, and no filled cell is
// left uncovered.
func (ls *lineSolver) canPlace(blk, pos int) bool {
	if pos > ls.n {
		pos = ls.n
	}
	if blk == ls.k {
		return !ls.filledIn(pos, ls.n)
	}
	switch ls.memo[blk][pos] {
	case 1:
		return true
	case 2:
		return false
	}
	found := false
	b := ls.blocks[blk]
	for s := pos; s+ls.minTail[blk] <= ls.n; s++ {
		if ls.fits(s, b) {
			e := s + b
			if blk == ls.k-1 {
				found = !ls.filledIn(e, ls.n)
			} else if e < ls.n && ls.cells[e] != CellFilled {
				found = ls.canPlace(blk+1, e+1)
			}
		}
		// a filled cell must be covered by this block or an
		// earlier start of it, so scanning past it is pointless
		if found || ls.cells[s] == CellFilled {
			break
		}
	}
	if found {
		ls.memo[blk][pos] = 1
	} else {
		ls.memo[blk][pos] = 2
	}
	return found
}

// feasibleStart reports whether block i can start at s with some
// consistent placement of all the other blocks around it.  The
// blocks after i are checked directly; the blocks before i are
// checked through rev, the same solver built over the reversed
// line, where "prefix of the line" becomes "suffix of the
// reversal".
func (ls *lineSolver) feasibleStart(rev *lineSolver, i, s int) bool {
	b := ls.blocks[i]
	if !ls.fits(s, b) {
		return false
	}
	if i == 0 {
		if ls.filledIn(0, s) {
			return false
		}
	} else {
		if s == 0 || ls.cells[s-1] == CellFilled {
			return false
		}
		if !rev.canPlace(ls.k-i, ls.n-s+1) {
			return false
		}
	}
	e := s + b
	if i == ls.k-1 {
		return !ls.filledIn(e, ls.n)
	}
	return e < ls.n && ls.cells[e] != CellFilled && ls.canPlace(i+1, e+1)
}

func reverseClue(c Clue) Clue {
	out := make(Clue, len(c))
	for i, b := range c {
		out[len(c)-1-i] = b
	}
	return out
}

func reverseCells(cells []Cell) []Cell {
	out := make([]Cell, len(cells))
	for i, c := range cells {
		out[len(cells)-1-i] = c
	}
	return out
}
