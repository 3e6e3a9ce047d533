package puzzle

import (
	"context"
	"math/rand"
	"reflect"
	"testing"
)

func TestBruteForceDiamond(t *testing.T) {
	rs := mustRuleSet(t, diamondSummary)
	solution, err := Solve(context.Background(), "bruteforce", rs)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !reflect.DeepEqual(solution.Values, diamondValues) {
		t.Errorf("Wrong solution:\n%vwant:\n%v", solution, GridString(diamondValues))
	}
}

func TestBruteForceUnsolvable(t *testing.T) {
	rs := mustRuleSet(t, inconsistentSummary)
	_, err := Solve(context.Background(), "bruteforce", rs)
	if !IsUnsolvable(err) {
		t.Errorf("Wrong error for unsolvable puzzle: %v", err)
	}
}

// Both strategies prefer filled cells at earlier row-major
// positions, so they agree even on ambiguous puzzles.
func TestBruteForceAgreesOnAmbiguous(t *testing.T) {
	rs := mustRuleSet(t, ambiguousSummary)
	bf, err := Solve(context.Background(), "bruteforce", rs)
	if err != nil {
		t.Fatalf("Unexpected brute-force error: %v", err)
	}
	bt, err := Solve(context.Background(), "backtracking", rs)
	if err != nil {
		t.Fatalf("Unexpected backtracking error: %v", err)
	}
	if !reflect.DeepEqual(bf.Values, bt.Values) {
		t.Errorf("Strategies disagree: %v vs %v", bf.Values, bt.Values)
	}
}

// The oracle check: on a batch of seeded random puzzles the
// clever strategy must return exactly what exhaustive search
// returns.
func TestBacktrackingMatchesBruteForce(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		rs, _, err := Generate(5, 5, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("Seed %d: generate failed: %v", seed, err)
		}
		bf, err := Solve(context.Background(), "bruteforce", rs)
		if err != nil {
			t.Errorf("Seed %d: brute force failed: %v", seed, err)
			continue
		}
		bt, err := Solve(context.Background(), "backtracking", rs)
		if err != nil {
			t.Errorf("Seed %d: backtracking failed: %v", seed, err)
			continue
		}
		if !reflect.DeepEqual(bf.Values, bt.Values) {
			t.Errorf("Seed %d: strategies disagree:\n%svs:\n%s",
				seed, GridString(bf.Values), GridString(bt.Values))
		}
	}
}

func TestBruteForceCancelled(t *testing.T) {
	rs := mustRuleSet(t, diamondSummary)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Solve(ctx, "bruteforce", rs)
	if !IsCancelled(err) {
		t.Errorf("Wrong error for cancelled solve: %v", err)
	}
}
