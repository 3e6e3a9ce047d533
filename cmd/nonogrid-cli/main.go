// nonogram.go - a nonogram puzzle solver and web service.
// Copyright (C) 2024 the nonogram.go authors.
//
// Licensed under the MIT license.  See the LICENSE file for details.

// The nonogrid-cli is a command-line tool for working with
// puzzle layout files: edit clues, generate random puzzles, pick
// a solver, and solve, all from an interactive prompt.  Run it
// with an optional layout file argument.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/HGGNIGAN/nonogram.go/config"
	"github.com/HGGNIGAN/nonogram.go/puzzle"
)

/*

session state

*/

var (
	manager      *config.Manager
	solverName   string
	lastSolution *puzzle.Solution
)

func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	manager = config.NewManager(path)
	if err := manager.Load(); err != nil {
		log.Fatalf("Couldn't load layout: %v", err)
	}
	fmt.Printf("Editing layout %q.  Type 'help' for commands.\n", manager.Path())

	requests := make(chan *request)
	go listener(requests)
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt, syscall.SIGTERM)

	for {
		fmt.Print("> ")
		select {
		case r, ok := <-requests:
			if !ok || r.command == "quit" || r.command == "exit" {
				fmt.Println("Goodbye.")
				return
			}
			dispatch(os.Stdout, r)
		case s := <-interrupts:
			fmt.Printf("\nReceived %v signal, exiting.\n", s)
			return
		}
	}
}

/*

request handling

*/

// A request is one parsed input line.
type request struct {
	command string
	args    []string
}

func (r *request) String() string {
	return strings.Join(append([]string{r.command}, r.args...), " ")
}

// listener turns stdin lines into requests; EOF closes the
// channel.
func listener(requests chan *request) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			requests <- &request{command: "noop"}
			continue
		}
		requests <- &request{command: strings.ToLower(fields[0]), args: fields[1:]}
	}
	close(requests)
}

type commandInfo struct {
	command     string
	argInfo     string
	description string
	handler     func(w *os.File, r *request)
}

var dispatchInfo []commandInfo

// the handlers mention usageHandler, which walks dispatchInfo,
// so the table is filled in here rather than at declaration
func init() {
	dispatchInfo = []commandInfo{
		{"help", "", "show this list", helpHandler},
		{"show", "", "show the layout's dimensions and clues", showHandler},
		{"size", "width height", "resize the layout, keeping surviving clues", sizeHandler},
		{"row", "index blocks...", "set a row clue (no blocks for empty)", rowHandler},
		{"col", "index blocks...", "set a column clue (no blocks for empty)", colHandler},
		{"load", "[file]", "reload the layout from its file", loadHandler},
		{"save", "[file]", "save the layout, optionally to a new file", saveHandler},
		{"solvers", "", "list the registered solvers", solversHandler},
		{"use", "solver", "pick the solver for future solves", useHandler},
		{"solve", "[seconds]", "solve the layout, optionally with a time budget", solveHandler},
		{"generate", "width height [seed]", "replace the layout with a random puzzle", generateHandler},
		{"grid", "", "show the last solution found", gridHandler},
	}
}

func dispatch(w *os.File, r *request) {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(w, "Panic executing %q: %v\n", r, err)
			log.Printf("Error executing %q: %v", r, err)
		}
	}()
	if r.command == "noop" {
		return
	}
	for _, ci := range dispatchInfo {
		if ci.command == r.command {
			ci.handler(w, r)
			return
		}
	}
	usageHandler(fmt.Sprintf("unknown command %q", r.command), w, r)
}

func usageHandler(msg string, w *os.File, r *request) {
	fmt.Fprintf(w, "Error: %s\nUsage:\n", msg)
	for _, ci := range dispatchInfo {
		fmt.Fprintf(w, "    %8s %-20s\t%s\n", ci.command, ci.argInfo, ci.description)
	}
	fmt.Fprintf(w, "  and 'quit' or EOF to exit.\n")
}

func helpHandler(w *os.File, r *request) {
	usageHandler("here are the commands", w, r)
}

/*

layout commands

*/

func showHandler(w *os.File, r *request) {
	rs, err := puzzle.New(manager.Summary())
	if err != nil {
		width, height := manager.Dimensions()
		fmt.Fprintf(w, "%d x %d layout (not currently solvable: %v)\n", width, height, err)
		return
	}
	fmt.Fprint(w, rs)
}

func sizeHandler(w *os.File, r *request) {
	if len(r.args) != 2 {
		usageHandler(fmt.Sprintf("%s requires two arguments", r.command), w, r)
		return
	}
	width, werr := strconv.Atoi(r.args[0])
	height, herr := strconv.Atoi(r.args[1])
	if werr != nil || herr != nil {
		usageHandler("width and height must be numbers", w, r)
		return
	}
	if err := manager.Resize(width, height); err != nil {
		fmt.Fprintf(w, "Resize failed: %v\n", err)
		return
	}
	showHandler(w, r)
}

func rowHandler(w *os.File, r *request) {
	setClueHandler(w, r, manager.SetRowClue)
}

func colHandler(w *os.File, r *request) {
	setClueHandler(w, r, manager.SetColumnClue)
}

func setClueHandler(w *os.File, r *request, set func(int, []int) error) {
	if len(r.args) < 1 {
		usageHandler(fmt.Sprintf("%s requires at least an index", r.command), w, r)
		return
	}
	index, err := strconv.Atoi(r.args[0])
	if err != nil {
		usageHandler(fmt.Sprintf("%s index (%s) is not a number", r.command, r.args[0]), w, r)
		return
	}
	blocks := make([]int, len(r.args)-1)
	for i, arg := range r.args[1:] {
		if blocks[i], err = strconv.Atoi(arg); err != nil {
			usageHandler(fmt.Sprintf("%s block (%s) is not a number", r.command, arg), w, r)
			return
		}
	}
	if err := set(index, blocks); err != nil {
		fmt.Fprintf(w, "Couldn't set clue: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Clue set.\n")
}

func loadHandler(w *os.File, r *request) {
	if len(r.args) == 1 {
		manager = config.NewManager(r.args[0])
	}
	if err := manager.Load(); err != nil {
		fmt.Fprintf(w, "Load failed: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Loaded %q.\n", manager.Path())
	showHandler(w, r)
}

func saveHandler(w *os.File, r *request) {
	target := manager
	if len(r.args) == 1 {
		target = config.NewManager(r.args[0])
		if err := target.Apply(manager.Summary()); err != nil {
			fmt.Fprintf(w, "Save failed: %v\n", err)
			return
		}
	}
	if err := target.Save(); err != nil {
		fmt.Fprintf(w, "Save failed: %v\n", err)
		return
	}
	manager = target
	fmt.Fprintf(w, "Saved %q.\n", manager.Path())
}

/*

solving commands

*/

func solversHandler(w *os.File, r *request) {
	for _, sd := range puzzle.KnownSolvers() {
		marker := " "
		if sd.Names[0] == currentSolver() {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-14s %s\n", marker, sd.Names[0], sd.Description)
		if len(sd.Names) > 1 {
			fmt.Fprintf(w, "    aliases: %s\n", strings.Join(sd.Names[1:], ", "))
		}
	}
}

func currentSolver() string {
	if solverName == "" {
		return puzzle.DefaultSolverName
	}
	return solverName
}

func useHandler(w *os.File, r *request) {
	if len(r.args) != 1 {
		usageHandler(fmt.Sprintf("%s requires one argument", r.command), w, r)
		return
	}
	sd, ok := puzzle.LookupSolverByName(r.args[0])
	if !ok {
		fmt.Fprintf(w, "No solver named %q; try 'solvers'.\n", r.args[0])
		return
	}
	solverName = sd.Names[0]
	fmt.Fprintf(w, "Using solver %q.\n", solverName)
}

func solveHandler(w *os.File, r *request) {
	rs, err := puzzle.New(manager.Summary())
	if err != nil {
		fmt.Fprintf(w, "The layout isn't a valid puzzle: %v\n", err)
		return
	}
	ctx := context.Background()
	if len(r.args) == 1 {
		seconds, err := strconv.Atoi(r.args[0])
		if err != nil || seconds <= 0 {
			usageHandler(fmt.Sprintf("%s budget (%s) must be a positive number of seconds", r.command, r.args[0]), w, r)
			return
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(seconds)*time.Second)
		defer cancel()
	}
	start := time.Now()
	solution, err := puzzle.Solve(ctx, solverName, rs)
	if err != nil {
		fmt.Fprintf(w, "Solve failed: %v\n", err)
		return
	}
	lastSolution = solution
	fmt.Fprintf(w, "Solved in %v with %d guesses:\n%s",
		time.Since(start).Round(time.Millisecond), len(solution.Choices), solution)
}

func generateHandler(w *os.File, r *request) {
	if len(r.args) != 2 && len(r.args) != 3 {
		usageHandler(fmt.Sprintf("%s requires width and height", r.command), w, r)
		return
	}
	width, werr := strconv.Atoi(r.args[0])
	height, herr := strconv.Atoi(r.args[1])
	if werr != nil || herr != nil {
		usageHandler("width and height must be numbers", w, r)
		return
	}
	seed := time.Now().UnixNano()
	if len(r.args) == 3 {
		var err error
		if seed, err = strconv.ParseInt(r.args[2], 10, 64); err != nil {
			usageHandler(fmt.Sprintf("%s seed (%s) is not a number", r.command, r.args[2]), w, r)
			return
		}
	}
	rs, grid, err := puzzle.Generate(width, height, rand.New(rand.NewSource(seed)))
	if err != nil {
		fmt.Fprintf(w, "Generate failed: %v\n", err)
		return
	}
	if err := manager.Apply(rs.Summary()); err != nil {
		fmt.Fprintf(w, "Generate failed: %v\n", err)
		return
	}
	lastSolution = nil
	fmt.Fprintf(w, "Generated a %dx%d puzzle (seed %d) from this grid:\n%s",
		width, height, seed, puzzle.GridString(grid))
}

func gridHandler(w *os.File, r *request) {
	if lastSolution == nil {
		fmt.Fprintf(w, "Nothing solved yet; try 'solve'.\n")
		return
	}
	fmt.Fprint(w, lastSolution)
}
