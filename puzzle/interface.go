// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

// Package puzzle models nonogram puzzles and solves them.  A
// puzzle is a RuleSet: grid dimensions plus the run-length clues
// for every row and column.  Solvers are registered by name;
// they all take a context and a RuleSet and return either a
// Solution or a structured Error saying why there isn't one.
package puzzle

import (
	"context"
	"fmt"
)

/*

summaries

*/

// A Summary is the client-side form of a puzzle: the dimensions
// and clues as plain slices, suitable for JSON wire transfer and
// saved-puzzle files.  Pass a Summary to New to get the
// validated RuleSet the solvers want.
type Summary struct {
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	Rows    [][]int `json:"rows"`
	Columns [][]int `json:"columns"`
}

// New validates a Summary and builds the RuleSet it describes.
func New(s *Summary) (*RuleSet, error) {
	rows := make([]Clue, len(s.Rows))
	for i, clue := range s.Rows {
		rows[i] = Clue(clue)
	}
	columns := make([]Clue, len(s.Columns))
	for i, clue := range s.Columns {
		columns[i] = Clue(clue)
	}
	return NewRuleSet(s.Width, s.Height, rows, columns)
}

// Summary converts a RuleSet back to its wire form.
func (rs *RuleSet) Summary() *Summary {
	s := &Summary{
		Width: rs.width, Height: rs.height,
		Rows:    make([][]int, rs.height),
		Columns: make([][]int, rs.width),
	}
	for i, clue := range rs.rows {
		s.Rows[i] = []int(clue.clone())
	}
	for i, clue := range rs.columns {
		s.Columns[i] = []int(clue.clone())
	}
	return s
}

/*

solutions

*/

// A Choice is one guess a solver made on the way to a solution:
// the row-major index of the cell and the value (1 filled, 0
// empty) it settled on.
type Choice struct {
	Index int `json:"index"`
	Value int `json:"value"`
}

// A Solution is a solved grid.  Values is row-major, one row per
// inner slice, 1 for filled and 0 for empty.  Choices is the
// sequence of guesses the solver needed; empty means pure
// deduction was enough.
type Solution struct {
	Values  [][]int  `json:"values"`
	Choices []Choice `json:"choices,omitempty"`
}

/*

solver registry

*/

// A SolveFunc runs one solving strategy over a rule set.  The
// context bounds the work: when it expires the strategy unwinds
// and returns a timeout or cancellation Error, never a partial
// grid.
type SolveFunc func(ctx context.Context, rs *RuleSet) (*Solution, error)

// A SolverDescriptor gives the info needed to find and use a
// registered solver.
type SolverDescriptor struct {
	Names       []string // unique names, best-known first
	Description string   // one-line description for pickers
	Solve       SolveFunc
}

// knownSolvers is the registry.  It is appended to during init
// and read-only afterward, so lookups need no locking.
var knownSolvers []*SolverDescriptor

// RegisterSolver adds a solver to the registry.  It fails on
// empty or duplicate names.  Call it from an init function;
// registration is not synchronized.
func RegisterSolver(sd *SolverDescriptor) error {
	if sd == nil || len(sd.Names) == 0 || sd.Solve == nil {
		return fmt.Errorf("RegisterSolver: incomplete descriptor %+v", sd)
	}
	for _, name := range sd.Names {
		if name == "" {
			return fmt.Errorf("RegisterSolver: empty solver name in %v", sd.Names)
		}
		if _, ok := LookupSolverByName(name); ok {
			return fmt.Errorf("RegisterSolver: solver name %q already registered", name)
		}
	}
	knownSolvers = append(knownSolvers, sd)
	return nil
}

func mustRegisterSolver(sd *SolverDescriptor) {
	if err := RegisterSolver(sd); err != nil {
		panic(err)
	}
}

// LookupSolverByName finds the registered solver with the given
// name.
func LookupSolverByName(name string) (*SolverDescriptor, bool) {
	for _, sd := range knownSolvers {
		for _, n := range sd.Names {
			if n == name {
				return sd, true
			}
		}
	}
	return nil, false
}

// KnownSolvers returns the descriptors of all registered
// solvers, in registration order.
func KnownSolvers() []*SolverDescriptor {
	out := make([]*SolverDescriptor, len(knownSolvers))
	copy(out, knownSolvers)
	return out
}

// DefaultSolverName is used when a client doesn't pick one.
const DefaultSolverName = "backtracking"

// Solve runs the named solver (or the default, if name is empty)
// over the rule set.
func Solve(ctx context.Context, name string, rs *RuleSet) (*Solution, error) {
	if name == "" {
		name = DefaultSolverName
	}
	sd, ok := LookupSolverByName(name)
	if !ok {
		return nil, Error{
			Scope: ArgumentScope, Structure: AttributeValueStructure,
			Attribute: SolverAttribute, Condition: UnknownSolverCondition,
			Values: ErrorData{name},
		}
	}
	return sd.Solve(ctx, rs)
}
