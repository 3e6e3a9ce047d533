// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

package puzzle

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"time"
)

/*

HTTP handlers

This file provides the handlers a web server needs to expose the
solvers.  The handlers speak JSON both ways; errors go back as
serialized Error values with an appropriate status code, so
remote clients get the same structured errors local callers do.

*/

// A SolverInfo is the registry listing sent to clients.
type SolverInfo struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Description string   `json:"description"`
}

// SolversHandler responds to a GET with the list of registered
// solvers.
func SolversHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r)
		return
	}
	descriptors := KnownSolvers()
	infos := make([]SolverInfo, len(descriptors))
	for i, sd := range descriptors {
		infos[i] = SolverInfo{
			Name:        sd.Names[0],
			Aliases:     sd.Names[1:],
			Description: sd.Description,
		}
	}
	WriteJSON(w, http.StatusOK, infos)
}

// A SolveRequest is the POST body for SolveHandler: a puzzle
// summary plus an optional solver name and time budget.
type SolveRequest struct {
	Summary
	Solver    string `json:"solver,omitempty"`
	TimeoutMS int    `json:"timeout_ms,omitempty"`
}

// maxSolveTimeout caps the per-request time budget so one client
// can't park a worker indefinitely.
const maxSolveTimeout = 30 * time.Second

// SolveHandler responds to a POSTed SolveRequest with a Solution
// or a serialized Error.  Bad puzzles get 400, proven-unsolvable
// ones 422, expired time budgets 408.
func SolveHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, Error{
			Scope: RequestScope, Structure: ScopeStructure,
			Condition: UnknownCondition, Message: "Request error: body must be a JSON puzzle summary",
		})
		return
	}
	rs, err := New(&req.Summary)
	if err != nil {
		WriteError(w, ErrorStatus(err), err)
		return
	}
	ctx := r.Context()
	timeout := maxSolveTimeout
	if req.TimeoutMS > 0 && time.Duration(req.TimeoutMS)*time.Millisecond < timeout {
		timeout = time.Duration(req.TimeoutMS) * time.Millisecond
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	solution, err := Solve(ctx, req.Solver, rs)
	if err != nil {
		WriteError(w, ErrorStatus(err), err)
		return
	}
	WriteJSON(w, http.StatusOK, solution)
}

// A GenerateRequest is the POST body for GenerateHandler.  A
// zero Seed means "pick one".
type GenerateRequest struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Seed   int64 `json:"seed,omitempty"`
}

// A GenerateResponse carries the generated puzzle and the grid
// it was derived from.
type GenerateResponse struct {
	Summary *Summary `json:"summary"`
	Grid    [][]int  `json:"grid"`
	Seed    int64    `json:"seed"`
}

// GenerateHandler responds to a POSTed GenerateRequest with a
// fresh random puzzle.
func GenerateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r)
		return
	}
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, Error{
			Scope: RequestScope, Structure: ScopeStructure,
			Condition: UnknownCondition, Message: "Request error: body must be JSON dimensions",
		})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rs, grid, err := Generate(req.Width, req.Height, rand.New(rand.NewSource(seed)))
	if err != nil {
		WriteError(w, ErrorStatus(err), err)
		return
	}
	WriteJSON(w, http.StatusOK, GenerateResponse{Summary: rs.Summary(), Grid: grid, Seed: seed})
}

/*

helpers

*/

// ErrorStatus maps the error taxonomy onto HTTP status codes.
func ErrorStatus(err error) int {
	switch {
	case IsInvalidRuleSet(err) || IsUnknownSolver(err):
		return http.StatusBadRequest
	case IsUnsolvable(err):
		return http.StatusUnprocessableEntity
	case IsTimeout(err) || IsCancelled(err):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, Error{
		Scope: RequestScope, Structure: ScopeStructure,
		Condition: UnknownCondition,
		Message:   "Request error: method " + r.Method + " not allowed",
	})
}

// WriteError sends a serialized Error.  The Message field is
// materialized first so clients that just want a string don't
// have to understand the taxonomy.
func WriteError(w http.ResponseWriter, status int, err error) {
	e, ok := err.(Error)
	if !ok {
		e = Error{
			Scope: InternalScope, Structure: ScopeStructure,
			Condition: UnknownCondition, Message: err.Error(),
		}
	}
	e.Message = e.Error()
	WriteJSON(w, status, e)
}

// WriteJSON sends any value as a JSON response body.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response body: %v", err)
	}
}
