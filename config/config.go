// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

// Package config loads and saves puzzle layout files.  The file
// format keeps the clue lists as JSON objects keyed by the
// stringified line index, with [0] standing for an empty line,
// so hand-edited files can list just the interesting lines.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/HGGNIGAN/nonogram.go/puzzle"
)

const (
	// DefaultFile is where a Manager looks when no path is given.
	DefaultFile = "nonogram_config.json"
	// DefaultWidth and DefaultHeight size a brand-new layout.
	DefaultWidth  = 4
	DefaultHeight = 4
)

// fileForm is the on-disk shape of a layout.
type fileForm struct {
	Width   int              `json:"width"`
	Height  int              `json:"height"`
	Rows    map[string][]int `json:"rows"`
	Columns map[string][]int `json:"columns"`
}

// A Manager holds one editable puzzle layout and the file it
// round-trips through.  It doesn't validate clue contents; that
// is the core's job when the layout is turned into a rule set.
type Manager struct {
	path          string
	width, height int
	rows, columns [][]int
}

// NewManager returns a manager over the given path (DefaultFile
// if empty) holding a blank default-sized layout.  Call Load to
// pick up whatever the file holds.
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultFile
	}
	m := &Manager{path: path}
	m.reset(DefaultWidth, DefaultHeight)
	return m
}

func (m *Manager) reset(width, height int) {
	m.width, m.height = width, height
	m.rows = blankClues(height)
	m.columns = blankClues(width)
}

func blankClues(n int) [][]int {
	out := make([][]int, n)
	for i := range out {
		out[i] = []int{}
	}
	return out
}

// Path returns the file the manager reads and writes.
func (m *Manager) Path() string {
	return m.path
}

// Dimensions returns the layout's width and height.
func (m *Manager) Dimensions() (width, height int) {
	return m.width, m.height
}

// Load reads the layout from the manager's file.  A missing file
// is not an error: the manager keeps its current layout and the
// next Save creates the file.  Lines the file doesn't mention
// come back empty.
func (m *Manager) Load() error {
	encoded, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("Couldn't read layout file %q: %v", m.path, err)
	}
	var form fileForm
	if err := json.Unmarshal(encoded, &form); err != nil {
		return fmt.Errorf("Couldn't parse layout file %q: %v", m.path, err)
	}
	if form.Width <= 0 || form.Height <= 0 {
		return fmt.Errorf("Layout file %q has dimensions %dx%d", m.path, form.Width, form.Height)
	}
	m.reset(form.Width, form.Height)
	for i := range m.rows {
		m.rows[i] = normalize(form.Rows[strconv.Itoa(i)])
	}
	for i := range m.columns {
		m.columns[i] = normalize(form.Columns[strconv.Itoa(i)])
	}
	return nil
}

// normalize maps the file's empty-line spellings (absent, null,
// [], [0]) onto the canonical empty clue.
func normalize(clue []int) []int {
	if len(clue) == 0 || (len(clue) == 1 && clue[0] == 0) {
		return []int{}
	}
	return append([]int{}, clue...)
}

// Save writes the layout back to the manager's file.  Empty
// clues are written in their [0] spelling, the way the format
// has always had them.
func (m *Manager) Save() error {
	form := fileForm{
		Width: m.width, Height: m.height,
		Rows:    map[string][]int{},
		Columns: map[string][]int{},
	}
	for i, clue := range m.rows {
		form.Rows[strconv.Itoa(i)] = denormalize(clue)
	}
	for i, clue := range m.columns {
		form.Columns[strconv.Itoa(i)] = denormalize(clue)
	}
	encoded, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return fmt.Errorf("Couldn't encode layout: %v", err)
	}
	if err := os.WriteFile(m.path, encoded, 0644); err != nil {
		return fmt.Errorf("Couldn't write layout file %q: %v", m.path, err)
	}
	return nil
}

func denormalize(clue []int) []int {
	if len(clue) == 0 {
		return []int{0}
	}
	return append([]int{}, clue...)
}

// Resize changes the layout's dimensions.  Clues of lines that
// survive the resize are kept; new lines start empty.
func (m *Manager) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("Dimensions must be positive, got %dx%d", width, height)
	}
	m.rows = resizeClues(m.rows, height)
	m.columns = resizeClues(m.columns, width)
	m.width, m.height = width, height
	return nil
}

func resizeClues(clues [][]int, n int) [][]int {
	out := blankClues(n)
	for i := 0; i < n && i < len(clues); i++ {
		out[i] = clues[i]
	}
	return out
}

// RowClue returns a copy of row i's clue.
func (m *Manager) RowClue(i int) ([]int, error) {
	if i < 0 || i >= m.height {
		return nil, fmt.Errorf("Row %d out of range for height %d", i, m.height)
	}
	return append([]int{}, m.rows[i]...), nil
}

// ColumnClue returns a copy of column i's clue.
func (m *Manager) ColumnClue(i int) ([]int, error) {
	if i < 0 || i >= m.width {
		return nil, fmt.Errorf("Column %d out of range for width %d", i, m.width)
	}
	return append([]int{}, m.columns[i]...), nil
}

// SetRowClue replaces row i's clue.
func (m *Manager) SetRowClue(i int, clue []int) error {
	if i < 0 || i >= m.height {
		return fmt.Errorf("Row %d out of range for height %d", i, m.height)
	}
	m.rows[i] = normalize(clue)
	return nil
}

// SetColumnClue replaces column i's clue.
func (m *Manager) SetColumnClue(i int, clue []int) error {
	if i < 0 || i >= m.width {
		return fmt.Errorf("Column %d out of range for width %d", i, m.width)
	}
	m.columns[i] = normalize(clue)
	return nil
}

// Summary returns the layout as a puzzle summary, ready for
// validation and solving.
func (m *Manager) Summary() *puzzle.Summary {
	s := &puzzle.Summary{
		Width: m.width, Height: m.height,
		Rows:    make([][]int, m.height),
		Columns: make([][]int, m.width),
	}
	for i, clue := range m.rows {
		s.Rows[i] = append([]int{}, clue...)
	}
	for i, clue := range m.columns {
		s.Columns[i] = append([]int{}, clue...)
	}
	return s
}

// Apply replaces the whole layout with the given summary, e.g. a
// freshly generated puzzle.
func (m *Manager) Apply(s *puzzle.Summary) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("Dimensions must be positive, got %dx%d", s.Width, s.Height)
	}
	if len(s.Rows) != s.Height || len(s.Columns) != s.Width {
		return fmt.Errorf("Summary has %d row and %d column clues for a %dx%d grid",
			len(s.Rows), len(s.Columns), s.Width, s.Height)
	}
	m.reset(s.Width, s.Height)
	for i, clue := range s.Rows {
		m.rows[i] = normalize(clue)
	}
	for i, clue := range s.Columns {
		m.columns[i] = normalize(clue)
	}
	return nil
}
