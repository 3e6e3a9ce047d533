// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

package puzzle

import (
	"context"
)

/*

brute force

*/

// solveBruteForce tries every arrangement of every row clue, in
// leftmost-first order, pruning a partial grid as soon as any
// column disagrees with its clue.  Exponential in the worst
// case, so only sensible for small puzzles — its value is as a
// correctness oracle for the cleverer strategies, since thirty
// lines of exhaustive search are easy to trust.  The row and
// placement order make it deterministic, and it agrees with the
// backtracking strategy about which solution of an ambiguous
// puzzle comes first.
func solveBruteForce(ctx context.Context, rs *RuleSet) (*Solution, error) {
	bf := &bruteForcer{
		rs:    rs,
		cells: make([]Cell, rs.width*rs.height),
		done:  make([]int, rs.width),
		run:   make([]int, rs.width),
	}
	found, err := bf.place(ctx, 0)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, searchError(UnsolvableCondition)
	}
	g := &gridState{rs: rs, cells: bf.cells}
	if verr := g.validate(); verr != nil {
		return nil, verr
	}
	return &Solution{Values: g.values()}, nil
}

// A bruteForcer tracks the partial grid and, per column, how far
// into the column's clue the rows placed so far have gotten: the
// count of finished runs and the length of the currently open
// one.
type bruteForcer struct {
	rs    *RuleSet
	cells []Cell
	done  []int
	run   []int
}

// place fills rows r.. and reports whether some arrangement
// completes the grid.  The context is checked once per row
// level.
func (bf *bruteForcer) place(ctx context.Context, r int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, contextError(err)
	}
	if r == bf.rs.height {
		return bf.columnsDone(), nil
	}
	savedDone := append([]int(nil), bf.done...)
	savedRun := append([]int(nil), bf.run...)
	var found bool
	var ferr error
	forEachPlacement(bf.rs.rows[r], bf.rs.width, func(row []Cell) bool {
		if !bf.pushRow(r, row) {
			bf.restore(savedDone, savedRun)
			return false
		}
		ok, err := bf.place(ctx, r+1)
		if err != nil {
			ferr = err
			return true
		}
		if ok {
			found = true
			return true
		}
		bf.restore(savedDone, savedRun)
		return false
	})
	return found, ferr
}

// pushRow writes one row arrangement into the grid and advances
// the column trackers.  It returns false when some column's clue
// can't absorb the row; the tracker state is then part-updated
// and the caller restores from its snapshot.
func (bf *bruteForcer) pushRow(r int, row []Cell) bool {
	w := bf.rs.width
	for c, v := range row {
		clue := bf.rs.columns[c]
		if v == CellFilled {
			if bf.done[c] >= len(clue) || bf.run[c]+1 > clue[bf.done[c]] {
				return false
			}
			bf.run[c]++
		} else if bf.run[c] > 0 {
			if bf.run[c] != clue[bf.done[c]] {
				return false
			}
			bf.done[c]++
			bf.run[c] = 0
		}
		bf.cells[r*w+c] = v
	}
	return true
}

func (bf *bruteForcer) restore(done, run []int) {
	copy(bf.done, done)
	copy(bf.run, run)
}

// columnsDone reports whether every column's clue is exactly
// used up.
func (bf *bruteForcer) columnsDone() bool {
	for c := 0; c < bf.rs.width; c++ {
		clue := bf.rs.columns[c]
		if bf.run[c] > 0 {
			if bf.run[c] != clue[bf.done[c]] || bf.done[c]+1 != len(clue) {
				return false
			}
		} else if bf.done[c] != len(clue) {
			return false
		}
	}
	return true
}

// forEachPlacement calls fn with every arrangement of the blocks
// in a line of length n, leftmost arrangements first.  fn
// returns true to stop early; forEachPlacement reports whether
// it was stopped.  The buffer is reused between calls, so fn
// must not retain it.
func forEachPlacement(blocks Clue, n int, fn func([]Cell) bool) bool {
	buf := make([]Cell, n)
	for i := range buf {
		buf[i] = CellEmpty
	}
	var rec func(blk, pos int) bool
	rec = func(blk, pos int) bool {
		if blk == len(blocks) {
			return fn(buf)
		}
		b := blocks[blk]
		tail := Clue(blocks[blk:]).minLength()
		for s := pos; s+tail <= n; s++ {
			for j := s; j < s+b; j++ {
				buf[j] = CellFilled
			}
			if rec(blk+1, s+b+1) {
				return true
			}
			for j := s; j < s+b; j++ {
				buf[j] = CellEmpty
			}
		}
		return false
	}
	return rec(0, 0)
}

func init() {
	mustRegisterSolver(&SolverDescriptor{
		Names:       []string{"bruteforce", "exhaustive"},
		Description: "Exhaustive row-arrangement search; a correctness oracle for small puzzles.",
		Solve:       solveBruteForce,
	})
}
