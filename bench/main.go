// Command bench drives internal/bench's node-count benchmark and
// prints a summary, the way this engine's own bench tool did.
package main

import (
	"context"
	"fmt"

	"github.com/tidalchess/tidalchess/internal/bench"
)

func main() {
	nodes, nps := bench.EvalAll(context.Background())
	fmt.Printf("nodes %d\n", nodes)
	fmt.Printf("  nps %.0f\n", nps)
}
