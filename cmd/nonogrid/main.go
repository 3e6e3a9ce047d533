// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

// The nonogrid server exposes the solvers over HTTP: list the
// registered solvers, solve posted puzzles, generate fresh ones,
// and browse the stored puzzle collection.  When storage is up,
// solved grids are cached by puzzle signature and clients are
// tracked with cookie sessions.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/viper"

	"github.com/HGGNIGAN/nonogram.go/puzzle"
	"github.com/HGGNIGAN/nonogram.go/storage"
)

const cookieName = "nonogramID"

// storageUp says whether Connect succeeded; without it the
// server still solves, it just doesn't remember anything.
var storageUp bool

func main() {
	initConfig()

	if viper.GetBool("storage") {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		cacheId, databaseId, err := storage.Connect(ctx)
		cancel()
		if err != nil {
			log.Printf("Storage unavailable, running without persistence: %v", err)
		} else {
			storageUp = true
			log.Printf("Connected to cache at %q", cacheId)
			log.Printf("Connected to database at %q", databaseId)
		}
	} else {
		log.Printf("Storage disabled by configuration")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/solvers", puzzle.SolversHandler)
	mux.HandleFunc("/api/solve", solveHandler)
	mux.HandleFunc("/api/generate", puzzle.GenerateHandler)
	mux.HandleFunc("/api/puzzles", puzzlesHandler)

	server := &http.Server{Addr: ":" + listenPort(), Handler: mux}
	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		s := <-interrupt
		log.Printf("Received %v signal, shutting down...", s)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		server.Shutdown(ctx)
		cancel()
	}()

	log.Printf("Listening on %s...", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server failure: %v", err)
	}
	if storageUp {
		storage.Close()
	}
	log.Printf("Exiting normally.")
}

// initConfig wires the environment into viper: NONOGRAM_PORT,
// NONOGRAM_STORAGE, NONOGRAM_SOLVER, plus REDIS_URL and
// DATABASE_URL read by the storage layer itself.
func initConfig() {
	viper.SetEnvPrefix("nonogram")
	viper.AutomaticEnv()
	viper.SetDefault("port", "8080")
	viper.SetDefault("storage", true)
	viper.SetDefault("solver", "")
}

// listenPort honors the hosting platform's PORT over our own
// setting.
func listenPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return viper.GetString("port")
}

/*

solving with cache and sessions

*/

// solveHandler wraps the core solve handler with the storage
// layer: a cache hit skips the solve entirely, a solve success
// feeds the cache and the puzzle store, and the client's session
// remembers what they solved last.
func solveHandler(w http.ResponseWriter, r *http.Request) {
	if !storageUp {
		puzzle.SolveHandler(w, r)
		return
	}
	if r.Method != http.MethodPost {
		puzzle.SolveHandler(w, r)
		return
	}
	var req puzzle.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		puzzle.WriteError(w, http.StatusBadRequest, puzzle.Error{
			Scope: puzzle.RequestScope, Structure: puzzle.ScopeStructure,
			Message: "Request error: body must be a JSON puzzle summary",
		})
		return
	}
	rs, err := puzzle.New(&req.Summary)
	if err != nil {
		puzzle.WriteError(w, puzzle.ErrorStatus(err), err)
		return
	}
	session := requestSession(w, r)
	signature := storage.Signature(&req.Summary)

	if cached, err := storage.CachedSolution(signature); err != nil {
		log.Printf("Cache read failed for %q: %v", signature, err)
	} else if cached != nil {
		rememberSolve(session, signature, req.Solver)
		puzzle.WriteJSON(w, http.StatusOK, cached)
		return
	}

	solver := req.Solver
	if solver == "" {
		solver = viper.GetString("solver")
	}
	ctx, cancel := context.WithTimeout(r.Context(), solveTimeout(req.TimeoutMS))
	defer cancel()
	solution, err := puzzle.Solve(ctx, solver, rs)
	if err != nil {
		puzzle.WriteError(w, puzzle.ErrorStatus(err), err)
		return
	}
	if err := storage.CacheSolution(signature, solution); err != nil {
		log.Printf("Cache write failed for %q: %v", signature, err)
	}
	entry := &storage.PuzzleEntry{
		PuzzleID: signature,
		Summary:  &req.Summary,
		Solution: solution.Values,
	}
	if err := storage.SavePuzzle(r.Context(), entry); err != nil {
		log.Printf("Puzzle save failed for %q: %v", signature, err)
	}
	rememberSolve(session, signature, req.Solver)
	puzzle.WriteJSON(w, http.StatusOK, solution)
}

const maxSolveTimeout = 30 * time.Second

func solveTimeout(requestedMS int) time.Duration {
	if requestedMS > 0 && time.Duration(requestedMS)*time.Millisecond < maxSolveTimeout {
		return time.Duration(requestedMS) * time.Millisecond
	}
	return maxSolveTimeout
}

// requestSession finds the client's session from their cookie,
// minting a session and setting the cookie if they have none.
func requestSession(w http.ResponseWriter, r *http.Request) *storage.Session {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		session, err := storage.LoadSession(cookie.Value)
		if err != nil {
			log.Printf("Session load failed for %q: %v", cookie.Value, err)
		}
		if session != nil {
			return session
		}
	}
	session := storage.NewSession()
	http.SetCookie(w, &http.Cookie{Name: cookieName, Value: session.SID, Path: "/"})
	return session
}

func rememberSolve(session *storage.Session, signature, solver string) {
	session.PuzzleID = signature
	session.Solver = solver
	if err := session.Save(); err != nil {
		log.Printf("Session save failed for %q: %v", session.SID, err)
	}
}

/*

the puzzle collection

*/

func puzzlesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		puzzle.WriteError(w, http.StatusMethodNotAllowed, puzzle.Error{
			Scope: puzzle.RequestScope, Structure: puzzle.ScopeStructure,
			Message: "Request error: method " + r.Method + " not allowed",
		})
		return
	}
	if !storageUp {
		puzzle.WriteError(w, http.StatusServiceUnavailable, puzzle.Error{
			Scope: puzzle.RequestScope, Structure: puzzle.ScopeStructure,
			Message: "Request error: the puzzle store is not available",
		})
		return
	}
	infos, err := storage.ListPuzzles(r.Context())
	if err != nil {
		log.Printf("Puzzle listing failed: %v", err)
		puzzle.WriteError(w, http.StatusInternalServerError, err)
		return
	}
	puzzle.WriteJSON(w, http.StatusOK, infos)
}
