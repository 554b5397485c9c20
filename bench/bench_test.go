package main

import (
	"context"
	"testing"

	"github.com/tidalchess/tidalchess/internal/bench"
)

// TestEvalAllRuns exercises the same node-counting benchmark as the
// bench command. An earlier version of this benchmark pinned an exact
// node count because its FixedDepthTimeControl made node counts a pure
// function of depth; this engine's Search is instead bounded by
// wall-clock milliseconds, so the node count varies run to run with
// machine speed and this test checks the invariants that do hold:
// the total node count across all games is positive, and so is the
// nodes/sec rate.
func TestEvalAllRuns(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
	}
	nodes, nps := bench.EvalAll(context.Background())
	if nodes == 0 {
		t.Fatalf("expected a positive node count, got 0")
	}
	if nps <= 0 {
		t.Fatalf("expected a positive nodes/sec rate, got %f", nps)
	}
}
