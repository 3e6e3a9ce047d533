// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

package puzzle

import (
	"fmt"
)

/*

errors

*/

// Error objects hold details of errors encountered while
// constructing or solving puzzles.  They are carried as values:
// the solver never panics over a bad puzzle, it hands back an
// Error that says what was wrong and where.  Because clients may
// be remote, Error objects are fully serializable.
type Error struct {
	Scope     ErrorScope     `json:"scope"`               // where the problem lies
	Structure ErrorStructure `json:"structure"`           // how to read the error
	Attribute ErrorAttribute `json:"attribute,omitempty"` // the attribute at fault, if any
	Condition ErrorCondition `json:"condition"`           // what the problem is
	Values    ErrorData      `json:"values,omitempty"`    // data specific to the condition
	Message   string         `json:"message"`             // human-readable summary
}

// ErrorData is condition-specific data carried in an Error.
type ErrorData []interface{}

// ErrorScope tells which part of the system noticed the problem.
type ErrorScope int32

const (
	UnknownScope ErrorScope = iota
	RequestScope            // a malformed client request
	ArgumentScope           // a bad argument to an operation
	ClueScope               // a clue inconsistent with its own line
	LineScope               // a line that admits no arrangement
	SearchScope             // an outcome of the search as a whole
	InternalScope           // an inconsistency that should never happen
	MaxScope
)

// ErrorStructure tells how the rest of the Error is organized.
type ErrorStructure int32

const (
	UnknownStructure        ErrorStructure = iota
	ScopeStructure                         // the condition applies to the scope as a whole
	AttributeValueStructure                // the condition applies to one attribute's value
	MaxStructure
)

// ErrorAttribute names the attribute an Error complains about.
type ErrorAttribute int32

const (
	UnknownAttribute ErrorAttribute = iota
	WidthAttribute
	HeightAttribute
	RowClueAttribute
	ColumnClueAttribute
	BlockAttribute
	CellAttribute
	GridAttribute
	SolverAttribute
	MaxAttribute
)

// ErrorCondition is the problem the Error reports.
type ErrorCondition int32

const (
	UnknownCondition         ErrorCondition = iota
	NonPositiveCondition                    // value must be positive
	WrongCountCondition                     // wrong number of clue lists
	TooLargeCondition                       // blocks cannot fit in the line
	ContradictionCondition                  // no arrangement is consistent with the grid
	UnsolvableCondition                     // the search exhausted every alternative
	TimeoutCondition                        // the time budget expired
	CancelledCondition                      // the caller gave up
	UnknownSolverCondition                  // no solver registered under the name
	MismatchedCluesCondition                // a finished grid disagrees with its clues
	MaxCondition
)

// Error implements the error interface, constructing the
// human-readable message from the structured data.  An
// already-filled Message wins, so deserialized errors survive a
// round trip unchanged.
func (e Error) Error() string {
	if len(e.Message) > 0 {
		return e.Message
	}
	subject := e.errorSubject()
	problem := e.errorProblem()
	if len(e.Values) > 0 && e.Structure == AttributeValueStructure {
		return fmt.Sprintf("%s %v: %s", subject, e.Values[0], problem)
	}
	return fmt.Sprintf("%s: %s", subject, problem)
}

func (e Error) errorSubject() string {
	var scope string
	switch e.Scope {
	case RequestScope:
		scope = "Request"
	case ArgumentScope:
		scope = "Argument"
	case ClueScope:
		scope = "Clue"
	case LineScope:
		scope = "Line"
	case SearchScope:
		scope = "Search"
	case InternalScope:
		scope = "Internal"
	default:
		scope = "General"
	}
	if e.Structure != AttributeValueStructure {
		return scope + " error"
	}
	switch e.Attribute {
	case WidthAttribute:
		return scope + " error: width"
	case HeightAttribute:
		return scope + " error: height"
	case RowClueAttribute:
		return scope + " error: row clue"
	case ColumnClueAttribute:
		return scope + " error: column clue"
	case BlockAttribute:
		return scope + " error: block"
	case CellAttribute:
		return scope + " error: cell"
	case GridAttribute:
		return scope + " error: grid"
	case SolverAttribute:
		return scope + " error: solver"
	default:
		return scope + " error: attribute"
	}
}

func (e Error) errorProblem() string {
	switch e.Condition {
	case NonPositiveCondition:
		return "must be a positive number"
	case WrongCountCondition:
		return "wrong number of clues for the grid"
	case TooLargeCondition:
		return "blocks don't fit in the line"
	case ContradictionCondition:
		return "no arrangement fits the known cells"
	case UnsolvableCondition:
		return "the puzzle has no solution"
	case TimeoutCondition:
		return "the time budget expired before a solution was found"
	case CancelledCondition:
		return "the solve was cancelled before a solution was found"
	case UnknownSolverCondition:
		return "no solver is registered under that name"
	case MismatchedCluesCondition:
		return "the finished grid doesn't match the clues"
	default:
		return "unknown problem"
	}
}

/*

error constructors

*/

// argumentError reports a bad value passed to a constructor or
// operation, e.g. a non-positive width.
func argumentError(attr ErrorAttribute, cond ErrorCondition, values ...interface{}) Error {
	return Error{
		Scope: ArgumentScope, Structure: AttributeValueStructure,
		Attribute: attr, Condition: cond, Values: ErrorData(values),
	}
}

// clueError reports a clue that cannot be satisfied by any fill
// of its line, independent of the rest of the puzzle.
func clueError(attr ErrorAttribute, cond ErrorCondition, values ...interface{}) Error {
	return Error{
		Scope: ClueScope, Structure: AttributeValueStructure,
		Attribute: attr, Condition: cond, Values: ErrorData(values),
	}
}

// lineError reports a line with no feasible arrangement given
// the current grid.  These errors drive backtracking; they only
// escape the package wrapped in an Unsolvable result.
func lineError(id LineID) Error {
	return Error{
		Scope: LineScope, Structure: AttributeValueStructure,
		Attribute: CellAttribute, Condition: ContradictionCondition,
		Values: ErrorData{id},
	}
}

// searchError reports a whole-search outcome: unsolvable,
// timed out, or cancelled.
func searchError(cond ErrorCondition) Error {
	return Error{Scope: SearchScope, Structure: ScopeStructure, Condition: cond}
}

// internalError reports a state that indicates a bug, such as a
// solver returning a grid that fails validation.
func internalError(cond ErrorCondition, values ...interface{}) Error {
	return Error{
		Scope: InternalScope, Structure: AttributeValueStructure,
		Attribute: GridAttribute, Condition: cond, Values: ErrorData(values),
	}
}

/*

error predicates

*/

// IsInvalidRuleSet reports whether err says a rule set failed
// construction-time validation.
func IsInvalidRuleSet(err error) bool {
	e, ok := err.(Error)
	return ok && (e.Scope == ClueScope || (e.Scope == ArgumentScope && e.Attribute != SolverAttribute))
}

// IsUnknownSolver reports whether err says no registered solver
// matched the requested name.
func IsUnknownSolver(err error) bool {
	e, ok := err.(Error)
	return ok && e.Condition == UnknownSolverCondition
}

// IsUnsolvable reports whether err says the search proved there
// is no solution.
func IsUnsolvable(err error) bool {
	e, ok := err.(Error)
	return ok && e.Condition == UnsolvableCondition
}

// IsTimeout reports whether err says the solve ran out of time.
func IsTimeout(err error) bool {
	e, ok := err.(Error)
	return ok && e.Condition == TimeoutCondition
}

// IsCancelled reports whether err says the solve was cancelled.
func IsCancelled(err error) bool {
	e, ok := err.(Error)
	return ok && e.Condition == CancelledCondition
}

// IsInternalInconsistency reports whether err says the package
// caught itself in an impossible state.
func IsInternalInconsistency(err error) bool {
	e, ok := err.(Error)
	return ok && e.Scope == InternalScope
}

// isContradiction reports whether err is a line-level
// contradiction, the signal that drives backtracking.
func isContradiction(err error) bool {
	e, ok := err.(Error)
	return ok && e.Scope == LineScope && e.Condition == ContradictionCondition
}
