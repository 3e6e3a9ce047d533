package puzzle

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Couldn't encode request body: %v", err)
	}
	req := httptest.NewRequest("POST", "/", bytes.NewReader(encoded))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestSolversHandler(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/solvers", nil)
	w := httptest.NewRecorder()
	SolversHandler(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Status %d, want %d", w.Code, http.StatusOK)
	}
	var infos []SolverInfo
	if err := json.NewDecoder(w.Body).Decode(&infos); err != nil {
		t.Fatalf("Couldn't decode response: %v", err)
	}
	found := false
	for _, info := range infos {
		if info.Name == DefaultSolverName {
			found = true
		}
	}
	if !found {
		t.Errorf("Default solver missing from listing: %+v", infos)
	}
}

func TestSolversHandlerMethod(t *testing.T) {
	w := postJSON(t, SolversHandler, struct{}{})
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestSolveHandler(t *testing.T) {
	w := postJSON(t, SolveHandler, SolveRequest{Summary: *diamondSummary})
	if w.Code != http.StatusOK {
		t.Fatalf("Status %d, want %d; body %s", w.Code, http.StatusOK, w.Body.String())
	}
	var solution Solution
	if err := json.NewDecoder(w.Body).Decode(&solution); err != nil {
		t.Fatalf("Couldn't decode response: %v", err)
	}
	if !reflect.DeepEqual(solution.Values, diamondValues) {
		t.Errorf("Wrong solution: %v", solution.Values)
	}
}

type solveHandlerErrorTestcase struct {
	request interface{}
	status  int
}

func TestSolveHandlerErrors(t *testing.T) {
	testcases := []solveHandlerErrorTestcase{
		// a clue that doesn't fit its line
		{SolveRequest{Summary: Summary{
			Width: 3, Height: 1, Rows: [][]int{{4}}, Columns: [][]int{{1}, {1}, {1}},
		}}, http.StatusBadRequest},
		// an unknown solver name
		{SolveRequest{Summary: *diamondSummary, Solver: "no-such-solver"}, http.StatusBadRequest},
		// a consistent-looking but unsolvable puzzle
		{SolveRequest{Summary: *inconsistentSummary}, http.StatusUnprocessableEntity},
		// not a puzzle at all
		{"wat", http.StatusBadRequest},
	}
	for i, tc := range testcases {
		w := postJSON(t, SolveHandler, tc.request)
		if w.Code != tc.status {
			t.Errorf("TestSolveHandlerErrors case %d: status %d, want %d; body %s",
				i, w.Code, tc.status, w.Body.String())
			continue
		}
		var e Error
		if err := json.NewDecoder(w.Body).Decode(&e); err != nil {
			t.Errorf("TestSolveHandlerErrors case %d: couldn't decode error body: %v", i, err)
			continue
		}
		if e.Message == "" {
			t.Errorf("TestSolveHandlerErrors case %d: error body has no message", i)
		}
	}
}

func TestGenerateHandler(t *testing.T) {
	w := postJSON(t, GenerateHandler, GenerateRequest{Width: 5, Height: 4, Seed: 7})
	if w.Code != http.StatusOK {
		t.Fatalf("Status %d, want %d; body %s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp GenerateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Couldn't decode response: %v", err)
	}
	if resp.Summary.Width != 5 || resp.Summary.Height != 4 {
		t.Errorf("Wrong dimensions: %+v", resp.Summary)
	}
	if len(resp.Grid) != 4 || len(resp.Grid[0]) != 5 {
		t.Errorf("Wrong grid shape: %v", resp.Grid)
	}
	if resp.Seed != 7 {
		t.Errorf("Seed %d, want 7", resp.Seed)
	}
	// a pinned seed makes generation reproducible over the wire
	again := postJSON(t, GenerateHandler, GenerateRequest{Width: 5, Height: 4, Seed: 7})
	var resp2 GenerateResponse
	if err := json.NewDecoder(again.Body).Decode(&resp2); err != nil {
		t.Fatalf("Couldn't decode second response: %v", err)
	}
	if !reflect.DeepEqual(resp, resp2) {
		t.Errorf("Same seed gave different puzzles")
	}
}

func TestGenerateHandlerBadDimensions(t *testing.T) {
	w := postJSON(t, GenerateHandler, GenerateRequest{Width: 0, Height: 4})
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status %d, want %d", w.Code, http.StatusBadRequest)
	}
}
