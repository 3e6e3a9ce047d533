package puzzle

import (
	"context"
	"errors"
)

/*

propagation

*/

// A lineQueue holds the lines whose deductions may be stale.  A
// line is queued at most once; pushing a queued line is a no-op.
// FIFO order keeps the work breadth-first and the results
// reproducible.
type lineQueue struct {
	order  []int
	queued []bool
}

func newLineQueue(lines int) *lineQueue {
	return &lineQueue{queued: make([]bool, lines)}
}

func (q *lineQueue) push(li int) {
	if !q.queued[li] {
		q.queued[li] = true
		q.order = append(q.order, li)
	}
}

func (q *lineQueue) pop() int {
	li := q.order[0]
	q.order = q.order[1:]
	q.queued[li] = false
	return li
}

func (q *lineQueue) empty() bool {
	return len(q.order) == 0
}

// reset discards all queued lines.  Used when a contradiction
// abandons the current branch: the pending deductions belonged
// to the dead grid.
func (q *lineQueue) reset() {
	q.order = q.order[:0]
	for i := range q.queued {
		q.queued[i] = false
	}
}

// propagate drains the dirty queue: each line gets its forced
// cells computed, and every newly-decided cell dirties the
// crossing line.  It stops at a fixpoint (queue empty), a
// contradiction, or an expired context, checked once per popped
// line so cancellation latency is bounded by one line's work.
func (g *gridState) propagate(ctx context.Context, q *lineQueue) error {
	for !q.empty() {
		if err := ctx.Err(); err != nil {
			return contextError(err)
		}
		li := q.pop()
		view := g.line(li)
		current := view.cells()
		deduced, ok := solveLine(g.rs.lineClue(li), current)
		if !ok {
			return lineError(g.rs.lineID(li))
		}
		for pos, val := range deduced {
			if current[pos] == CellUnknown && val != CellUnknown {
				idx := view.set(pos, val)
				row, column := g.crossLines(idx)
				if li < g.rs.height {
					q.push(column)
				} else {
					q.push(row)
				}
			}
		}
	}
	return nil
}

// markDirty queues both lines through a cell.
func (g *gridState) markDirty(q *lineQueue, cellIndex int) {
	row, column := g.crossLines(cellIndex)
	q.push(row)
	q.push(column)
}

func contextError(err error) Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return searchError(TimeoutCondition)
	}
	return searchError(CancelledCondition)
}

/*

backtracking search

*/

// During the search we do a depth-first walk of the possible
// guesses, but we don't use recursion to do the walk.  Instead
// we keep an explicit stack of the choices made — think Ariadne
// unrolling her thread as she walks the labyrinth.  Each choice
// remembers the grid as it stood before the guess, the cell
// guessed, and the values not yet tried, so a contradiction can
// rewind to the most recent choice with an alternative left and
// walk on from there.

// choice is one entry in the thread.
type choice struct {
	cells []Cell // grid snapshot from before the guess
	index int    // the cell guessed at
	value Cell   // the value currently being tried
	next  []Cell // values not yet tried
}

// thread is the stack of choices not yet exhausted.
type thread []choice

// solveBacktracking is the default strategy: constraint
// propagation to a fixpoint, then a guess at the first unknown
// cell in row-major order, filled before empty, rewinding on
// contradiction.  The scan order and value order make the result
// deterministic: two runs over one rule set return the same
// grid, and of an ambiguous puzzle's solutions it returns the
// one a filled-first depth-first walk reaches first.
func solveBacktracking(ctx context.Context, rs *RuleSet) (*Solution, error) {
	g := newGridState(rs)
	q := newLineQueue(rs.lineCount())
	for li := 0; li < rs.lineCount(); li++ {
		q.push(li)
	}
	var t thread
	for {
		err := g.propagate(ctx, q)
		if err == nil {
			idx := g.firstUnknown()
			if idx < 0 {
				// no unknowns left: the grid is a candidate, and
				// the validator has the final word
				if verr := g.validate(); verr != nil {
					return nil, verr
				}
				return &Solution{Values: g.values(), Choices: t.choices()}, nil
			}
			t = t.pushChoice(g, q, idx)
			continue
		}
		if !isContradiction(err) {
			return nil, err
		}
		var ok bool
		if t, ok = t.popChoice(g, q); !ok {
			// contradiction with no thread left: the rule set
			// itself is inconsistent
			return nil, searchError(UnsolvableCondition)
		}
	}
}

// pushChoice guesses a value for the cell at idx: snapshot the
// grid, write the guess, and dirty the guessed cell's lines.
func (t thread) pushChoice(g *gridState, q *lineQueue, idx int) thread {
	c := choice{
		cells: g.snapshot(),
		index: idx,
		value: CellFilled,
		next:  []Cell{CellEmpty},
	}
	g.cells[idx] = c.value
	g.markDirty(q, idx)
	return append(t, c)
}

// popChoice rewinds to the most recent choice with an untried
// value, restores its snapshot, and applies the next value.
// Choices with nothing left to try are discarded on the way.  It
// returns false when the thread runs out.
func (t thread) popChoice(g *gridState, q *lineQueue) (thread, bool) {
	for len(t) > 0 {
		top := &t[len(t)-1]
		if len(top.next) == 0 {
			t = t[:len(t)-1]
			continue
		}
		g.restore(top.cells)
		top.value, top.next = top.next[0], top.next[1:]
		g.cells[top.index] = top.value
		// the dead branch's pending lines are meaningless now
		q.reset()
		g.markDirty(q, top.index)
		return t, true
	}
	return t, false
}

// choices reports the guesses still on the thread, in the order
// they were made.  For a solved puzzle this is the exact guess
// sequence that led to the solution; empty means propagation
// alone solved it.
func (t thread) choices() []Choice {
	if len(t) == 0 {
		return nil
	}
	out := make([]Choice, len(t))
	for i, c := range t {
		out[i] = Choice{Index: c.index, Value: int(c.value)}
	}
	return out
}

func init() {
	mustRegisterSolver(&SolverDescriptor{
		Names:       []string{"backtracking", "bt"},
		Description: "Constraint propagation with depth-first backtracking search.",
		Solve:       solveBacktracking,
	})
}
