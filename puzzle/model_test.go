package puzzle

import (
	"reflect"
	"testing"
)

type newRuleSetTestcase struct {
	width, height int
	rows, columns []Clue
	ok            bool
}

func TestNewRuleSet(t *testing.T) {
	testcases := []newRuleSetTestcase{
		// the smallest puzzle there is
		{1, 1, []Clue{{1}}, []Clue{{1}}, true},
		// empty clue and its [0] alias
		{2, 2, []Clue{{}, {2}}, []Clue{{1}, {1}}, true},
		{2, 2, []Clue{{0}, {2}}, []Clue{{1}, {1}}, true},
		// non-positive dimensions
		{0, 3, []Clue{{1}, {1}, {1}}, []Clue{}, false},
		{3, -1, []Clue{}, []Clue{{1}, {1}, {1}}, false},
		// wrong clue counts
		{3, 2, []Clue{{1}}, []Clue{{1}, {1}, {1}}, false},
		{3, 2, []Clue{{1}, {1}}, []Clue{{1}, {1}}, false},
		// a block longer than its line
		{3, 1, []Clue{{4}}, []Clue{{1}, {1}, {1}}, false},
		// blocks plus gaps longer than the line
		{3, 1, []Clue{{1, 1, 1}}, []Clue{{1}, {1}, {1}}, false},
		{5, 1, []Clue{{2, 2}}, []Clue{{1}, {1}, {0}, {1}, {1}}, true},
		// a non-positive block
		{3, 1, []Clue{{-2}}, []Clue{{1}, {1}, {1}}, false},
	}
	for i, tc := range testcases {
		rs, err := NewRuleSet(tc.width, tc.height, tc.rows, tc.columns)
		if tc.ok && err != nil {
			t.Errorf("TestNewRuleSet case %d: unexpected error: %v", i, err)
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("TestNewRuleSet case %d: expected an error, got none", i)
			} else if !IsInvalidRuleSet(err) {
				t.Errorf("TestNewRuleSet case %d: error is not an invalid-rule-set error: %v", i, err)
			}
			continue
		}
		if rs.Width() != tc.width || rs.Height() != tc.height {
			t.Errorf("TestNewRuleSet case %d: dimensions %dx%d, want %dx%d",
				i, rs.Width(), rs.Height(), tc.width, tc.height)
		}
	}
}

func TestRuleSetImmutable(t *testing.T) {
	rows := []Clue{{1}, {1}}
	columns := []Clue{{1}, {1}}
	rs, err := NewRuleSet(2, 2, rows, columns)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	// mutating the inputs must not reach the rule set
	rows[0][0] = 99
	if rs.RowClue(0)[0] != 1 {
		t.Errorf("Input mutation leaked into rule set: %v", rs.RowClue(0))
	}
	// mutating an accessor's result must not either
	clue := rs.ColumnClue(1)
	clue[0] = 99
	if rs.ColumnClue(1)[0] != 1 {
		t.Errorf("Accessor result mutation leaked into rule set: %v", rs.ColumnClue(1))
	}
}

func TestRuleSetZeroAliasNormalized(t *testing.T) {
	rs, err := NewRuleSet(2, 2, []Clue{{0}, {2}}, []Clue{{1}, {1}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := rs.RowClue(0); len(got) != 0 {
		t.Errorf("[0] clue was not normalized to empty: %v", got)
	}
}

type runLengthsTestcase struct {
	cells []Cell
	clue  Clue
}

func TestRunLengths(t *testing.T) {
	testcases := []runLengthsTestcase{
		{[]Cell{}, Clue{}},
		{[]Cell{CellEmpty, CellEmpty}, Clue{}},
		{[]Cell{CellFilled}, Clue{1}},
		{[]Cell{CellFilled, CellFilled, CellEmpty, CellFilled}, Clue{2, 1}},
		{[]Cell{CellEmpty, CellFilled, CellFilled, CellFilled, CellEmpty}, Clue{3}},
		{[]Cell{CellFilled, CellEmpty, CellFilled, CellEmpty, CellFilled}, Clue{1, 1, 1}},
	}
	for i, tc := range testcases {
		if got := runLengths(tc.cells); !reflect.DeepEqual(got, tc.clue) {
			t.Errorf("TestRunLengths case %d: got %v, want %v", i, got, tc.clue)
		}
	}
}

func TestGridStateLines(t *testing.T) {
	rs, err := NewRuleSet(3, 2, []Clue{{1}, {1}}, []Clue{{1}, {1}, {}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	g := newGridState(rs)
	// lines 0..1 are rows of length 3, lines 2..4 columns of length 2
	if got := len(g.line(0).cells()); got != 3 {
		t.Errorf("Row line length %d, want 3", got)
	}
	if got := len(g.line(3).cells()); got != 2 {
		t.Errorf("Column line length %d, want 2", got)
	}
	// a write through a column view lands in the right grid cell
	idx := g.line(3).set(1, CellFilled)
	if idx != 4 {
		t.Errorf("Column write landed at index %d, want 4", idx)
	}
	if g.cells[4] != CellFilled {
		t.Errorf("Column write did not reach the grid")
	}
	row, column := g.crossLines(idx)
	if row != 1 || column != 3 {
		t.Errorf("crossLines(4) = %d, %d, want 1, 3", row, column)
	}
}

func TestGridStateSnapshotRestore(t *testing.T) {
	rs, err := NewRuleSet(2, 2, []Clue{{1}, {1}}, []Clue{{1}, {1}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	g := newGridState(rs)
	g.cells[0] = CellFilled
	snap := g.snapshot()
	g.cells[0] = CellEmpty
	g.cells[3] = CellFilled
	g.restore(snap)
	if g.cells[0] != CellFilled || g.cells[3] != CellUnknown {
		t.Errorf("Restore did not rewind the grid: %v", g.cells)
	}
	// the snapshot must survive being restored from, twice
	g.cells[0] = CellEmpty
	g.restore(snap)
	if g.cells[0] != CellFilled {
		t.Errorf("Snapshot was clobbered by restore")
	}
}

func TestValidate(t *testing.T) {
	rs, err := NewRuleSet(2, 2, []Clue{{1}, {1}}, []Clue{{1}, {1}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	g := newGridState(rs)
	g.cells = []Cell{CellFilled, CellEmpty, CellEmpty, CellFilled}
	if err := g.validate(); err != nil {
		t.Errorf("Valid grid failed validation: %v", err)
	}
	g.cells = []Cell{CellFilled, CellFilled, CellEmpty, CellFilled}
	err = g.validate()
	if err == nil {
		t.Fatalf("Invalid grid passed validation")
	}
	if !IsInternalInconsistency(err) {
		t.Errorf("Validation failure is not an internal error: %v", err)
	}
}
