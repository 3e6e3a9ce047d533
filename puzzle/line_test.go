package puzzle

import (
	"reflect"
	"testing"
)

// cellsOf turns a compact string into cells: '#' filled, '.'
// empty, '?' unknown.
func cellsOf(s string) []Cell {
	out := make([]Cell, len(s))
	for i, ch := range s {
		switch ch {
		case '#':
			out[i] = CellFilled
		case '.':
			out[i] = CellEmpty
		default:
			out[i] = CellUnknown
		}
	}
	return out
}

type solveLineTestcase struct {
	blocks Clue
	cells  string
	want   string // empty means contradiction
}

func TestSolveLine(t *testing.T) {
	testcases := []solveLineTestcase{
		// the empty clue empties the line
		{Clue{}, "?????", "....."},
		// a block filling the whole line
		{Clue{5}, "?????", "#####"},
		// the overlap rule: a 3-block in 5 forces the center
		{Clue{3}, "?????", "??#??"},
		// a 4-block in 5 forces the middle three
		{Clue{4}, "?????", "?###?"},
		// blocks and gaps exactly filling the line
		{Clue{1, 1}, "???", "#.#"},
		{Clue{2, 2}, "?????", "##.##"},
		// a known filled cell pins the block to the edge
		{Clue{2}, "#????", "##..."},
		// a known empty cell splits the placements
		{Clue{2, 1}, "??.??", "##.??"},
		// no block covers a cell: it goes empty
		{Clue{1}, "?#???", ".#..."},
		// deductions around a mid-line filled cell
		{Clue{3}, "??#??", "??#??"},
		{Clue{4}, "??#??", "?###?"},
		// already-complete lines come back unchanged
		{Clue{2, 1}, "##..#", "##..#"},
		// contradictions
		{Clue{}, "?#???", ""},
		{Clue{3}, "#???#", ""},
		{Clue{2}, "#.#??", ""},
		{Clue{1}, "##???", ""},
		{Clue{1, 1}, "?.?.?", "?.?.?"},
		// blocks plus gaps exactly filling the line leave no slack
		{Clue{3, 1}, "?????", "###.#"},
	}
	for i, tc := range testcases {
		got, ok := solveLine(tc.blocks, cellsOf(tc.cells))
		if tc.want == "" {
			if ok {
				t.Errorf("TestSolveLine case %d: expected a contradiction, got %v", i, got)
			}
			continue
		}
		if !ok {
			t.Errorf("TestSolveLine case %d: unexpected contradiction", i)
			continue
		}
		if want := cellsOf(tc.want); !reflect.DeepEqual(got, want) {
			t.Errorf("TestSolveLine case %d: got %v, want %v", i, got, want)
		}
	}
}

// solveLine must never change a decided cell, whatever it
// deduces around it.
func TestSolveLineMonotonic(t *testing.T) {
	testcases := []solveLineTestcase{
		{Clue{3}, "?#???", ""},
		{Clue{2, 2}, "#????", ""},
		{Clue{1, 2}, "?.???", ""},
	}
	for i, tc := range testcases {
		cells := cellsOf(tc.cells)
		got, ok := solveLine(tc.blocks, cells)
		if !ok {
			continue
		}
		for pos, before := range cells {
			if before != CellUnknown && got[pos] != before {
				t.Errorf("TestSolveLineMonotonic case %d: cell %d changed from %v to %v",
					i, pos, before, got[pos])
			}
		}
	}
}
