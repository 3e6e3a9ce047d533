package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/HGGNIGAN/nonogram.go/puzzle"
)

func tempManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(filepath.Join(t.TempDir(), "layout.json"))
}

func TestNewManagerDefaults(t *testing.T) {
	m := tempManager(t)
	width, height := m.Dimensions()
	if width != DefaultWidth || height != DefaultHeight {
		t.Errorf("New manager is %dx%d, want %dx%d", width, height, DefaultWidth, DefaultHeight)
	}
	clue, err := m.RowClue(0)
	if err != nil || len(clue) != 0 {
		t.Errorf("New manager row clue = %v, %v; want empty", clue, err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	m := tempManager(t)
	if err := m.Load(); err != nil {
		t.Errorf("Missing file treated as an error: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := tempManager(t)
	if err := m.Resize(5, 3); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if err := m.SetRowClue(0, []int{2, 1}); err != nil {
		t.Fatalf("SetRowClue failed: %v", err)
	}
	if err := m.SetColumnClue(4, []int{3}); err != nil {
		t.Fatalf("SetColumnClue failed: %v", err)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded := NewManager(m.Path())
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Summary(), m.Summary()) {
		t.Errorf("Round trip changed the layout:\n%+v\nvs\n%+v", loaded.Summary(), m.Summary())
	}
}

// Layout files spell empty lines as [0]; both spellings must
// read back as the empty clue.
func TestLoadZeroAlias(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	encoded := `{"width": 2, "height": 2,
		"rows": {"0": [0], "1": [2]},
		"columns": {"0": [1]}}`
	if err := os.WriteFile(path, []byte(encoded), 0644); err != nil {
		t.Fatalf("Couldn't write fixture: %v", err)
	}
	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if clue, _ := m.RowClue(0); len(clue) != 0 {
		t.Errorf("[0] row read back as %v", clue)
	}
	if clue, _ := m.RowClue(1); !reflect.DeepEqual(clue, []int{2}) {
		t.Errorf("Row 1 read back as %v", clue)
	}
	// column 1 is absent from the file: empty
	if clue, _ := m.ColumnClue(1); len(clue) != 0 {
		t.Errorf("Absent column read back as %v", clue)
	}
}

func TestLoadBadDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := os.WriteFile(path, []byte(`{"width": 0, "height": 3}`), 0644); err != nil {
		t.Fatalf("Couldn't write fixture: %v", err)
	}
	m := NewManager(path)
	if err := m.Load(); err == nil {
		t.Errorf("Zero-width layout was accepted")
	}
}

func TestResizePreservesClues(t *testing.T) {
	m := tempManager(t)
	if err := m.SetRowClue(1, []int{3}); err != nil {
		t.Fatalf("SetRowClue failed: %v", err)
	}
	if err := m.Resize(6, 2); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if clue, _ := m.RowClue(1); !reflect.DeepEqual(clue, []int{3}) {
		t.Errorf("Surviving clue was lost: %v", clue)
	}
	// shrink below the clue's line, then grow back: it's gone
	if err := m.Resize(6, 1); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if err := m.Resize(6, 3); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	if clue, _ := m.RowClue(1); len(clue) != 0 {
		t.Errorf("Dropped clue came back: %v", clue)
	}
}

func TestApplyAndSummary(t *testing.T) {
	m := tempManager(t)
	s := &puzzle.Summary{
		Width: 2, Height: 2,
		Rows: [][]int{{1}, {2}}, Columns: [][]int{{1}, {2}},
	}
	if err := m.Apply(s); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !reflect.DeepEqual(m.Summary(), s) {
		t.Errorf("Summary after Apply = %+v, want %+v", m.Summary(), s)
	}
	// the summary must be accepted by the core
	if _, err := puzzle.New(m.Summary()); err != nil {
		t.Errorf("Applied layout fails core validation: %v", err)
	}
	// mismatched clue counts are rejected
	bad := &puzzle.Summary{Width: 2, Height: 2, Rows: [][]int{{1}}, Columns: [][]int{{1}, {1}}}
	if err := m.Apply(bad); err == nil {
		t.Errorf("Mismatched summary was accepted")
	}
}
