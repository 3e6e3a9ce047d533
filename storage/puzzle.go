// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx/v5"

	"github.com/HGGNIGAN/nonogram.go/puzzle"
)

/*

puzzle identity

*/

// Signature derives a puzzle's identity from its content: the
// hex SHA-256 of the canonical JSON of its summary.  Two clients
// posting the same clues hit the same cache line and the same
// database row, whatever they call the puzzle.
func Signature(s *puzzle.Summary) string {
	encoded, err := json.Marshal(s)
	if err != nil {
		// a summary is slices of ints; it always marshals
		panic(err)
	}
	sum := sha256.Sum256(encoded)
	return hex.EncodeToString(sum[:])
}

/*

puzzle store

*/

// A PuzzleEntry is one stored puzzle: its content-derived ID, an
// optional display name, the clues, and the last solution found
// for it, if any.
type PuzzleEntry struct {
	PuzzleID   string
	Name       string
	Summary    *puzzle.Summary
	Solution   [][]int
	LastSolved time.Time // zero if never solved
}

// A PuzzleInfo is the listing form of a stored puzzle.
type PuzzleInfo struct {
	PuzzleID      string
	Name          string
	Width, Height int
	Solved        bool
}

// SavePuzzle inserts or updates a puzzle entry, keyed by its
// signature.  A nil Solution leaves any stored solution in
// place, so recording a puzzle never erases what's known about
// it.
func SavePuzzle(ctx context.Context, entry *PuzzleEntry) error {
	if entry.PuzzleID == "" {
		entry.PuzzleID = Signature(entry.Summary)
	}
	clues, err := json.Marshal(entry.Summary)
	if err != nil {
		return fmt.Errorf("Couldn't encode clues: %v", err)
	}
	var solution []byte
	var solved *time.Time
	if entry.Solution != nil {
		if solution, err = json.Marshal(entry.Solution); err != nil {
			return fmt.Errorf("Couldn't encode solution: %v", err)
		}
		when := entry.LastSolved
		if when.IsZero() {
			when = time.Now()
		}
		solved = &when
	}
	return pgExecute(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`insert into puzzles (puzzle_id, name, width, height, clues, solution, last_solved)
			 values ($1, $2, $3, $4, $5, $6, $7)
			 on conflict (puzzle_id) do update set
			   name = excluded.name,
			   solution = coalesce(excluded.solution, puzzles.solution),
			   last_solved = coalesce(excluded.last_solved, puzzles.last_solved)`,
			entry.PuzzleID, entry.Name, entry.Summary.Width, entry.Summary.Height,
			clues, solution, solved)
		return err
	})
}

// LoadPuzzle fetches a stored puzzle by ID.  A missing puzzle is
// not an error: both results are nil.
func LoadPuzzle(ctx context.Context, puzzleID string) (*PuzzleEntry, error) {
	var entry *PuzzleEntry
	err := pgExecute(ctx, func(tx pgx.Tx) error {
		var (
			name     string
			clues    []byte
			solution []byte
			solved   *time.Time
		)
		err := tx.QueryRow(ctx,
			`select name, clues, solution, last_solved from puzzles where puzzle_id = $1`,
			puzzleID).Scan(&name, &clues, &solution, &solved)
		if err == pgx.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		entry = &PuzzleEntry{PuzzleID: puzzleID, Name: name, Summary: &puzzle.Summary{}}
		if err := json.Unmarshal(clues, entry.Summary); err != nil {
			return fmt.Errorf("Corrupt clues for puzzle %q: %v", puzzleID, err)
		}
		if solution != nil {
			if err := json.Unmarshal(solution, &entry.Solution); err != nil {
				return fmt.Errorf("Corrupt solution for puzzle %q: %v", puzzleID, err)
			}
		}
		if solved != nil {
			entry.LastSolved = *solved
		}
		return nil
	})
	return entry, err
}

// ListPuzzles returns info on every stored puzzle, most recently
// solved first, never-solved ones last by name.
func ListPuzzles(ctx context.Context) ([]PuzzleInfo, error) {
	var infos []PuzzleInfo
	err := pgExecute(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`select puzzle_id, name, width, height, solution is not null
			 from puzzles
			 order by last_solved desc nulls last, name, puzzle_id`)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var info PuzzleInfo
			if err := rows.Scan(&info.PuzzleID, &info.Name,
				&info.Width, &info.Height, &info.Solved); err != nil {
				return err
			}
			infos = append(infos, info)
		}
		return rows.Err()
	})
	return infos, err
}

/*

solution cache

*/

// cached solutions expire on their own; a solve is cheap enough
// to redo after a quiet day
const solutionTTL = 24 * time.Hour

func solutionKey(puzzleID string) string {
	return "solution:" + puzzleID
}

// CacheSolution records a solved grid in the cache under the
// puzzle's signature.
func CacheSolution(puzzleID string, solution *puzzle.Solution) error {
	encoded, err := json.Marshal(solution)
	if err != nil {
		return fmt.Errorf("Couldn't encode solution: %v", err)
	}
	return rdExecute(func(conn redis.Conn) error {
		_, err := conn.Do("SETEX", solutionKey(puzzleID), int(solutionTTL.Seconds()), encoded)
		return err
	})
}

// CachedSolution fetches a cached solution.  A cache miss is not
// an error: both results are nil.
func CachedSolution(puzzleID string) (*puzzle.Solution, error) {
	var solution *puzzle.Solution
	err := rdExecute(func(conn redis.Conn) error {
		encoded, err := redis.Bytes(conn.Do("GET", solutionKey(puzzleID)))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			return err
		}
		solution = &puzzle.Solution{}
		if err := json.Unmarshal(encoded, solution); err != nil {
			solution = nil
			return fmt.Errorf("Corrupt cached solution for %q: %v", puzzleID, err)
		}
		return nil
	})
	return solution, err
}
