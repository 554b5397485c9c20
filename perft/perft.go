// Perft is a perft tool.
//
// Perft's main purpose is to test, debug and benchmark move generation.
// To do this we count the number of nodes, captures, en-passant moves,
// castles and promotions for given depths (usually small 4-7) from a
// specific position. In order to aid debugging, perft can split the
// node count by the first move up to any level.
//
// For more results and test description see:
//      https://www.chessprogramming.org/Perft
//      https://www.chessprogramming.org/Perft_Results
//
// Examples:
//
// Simple fast integration test:
//      $ go test github.com/tidalchess/tidalchess/perft
//
// startpos:
//	$ go run . --fen startpos --max_depth 6
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tidalchess/tidalchess/engine"
)

var (
	fen        = flag.String("fen", "startpos", "position to search")
	minDepth   = flag.Int("min_depth", 1, "minimum depth to search (inclusive)")
	maxDepth   = flag.Int("max_depth", 5, "maximum depth to search (inclusive)")
	depth      = flag.Int("depth", 0, "if non zero, searches only this depth")
	splitDepth = flag.Int("split", 0, "split depth")

	splitMoves []string
)

// nodeCounts tallies leaves (and the move classes they arrived by)
// after backtracking on a position up to a certain depth.
type nodeCounts struct {
	nodes      uint64
	captures   uint64
	enpassant  uint64
	castles    uint64
	promotions uint64
}

// add accumulates other into nc.
func (nc *nodeCounts) add(other nodeCounts) {
	nc.nodes += other.nodes
	nc.captures += other.captures
	nc.enpassant += other.enpassant
	nc.castles += other.castles
	nc.promotions += other.promotions
}

// cacheEntry memoizes one (position, depth) pair's nodeCounts, keyed
// externally by pos.Zobrist() modulo the cache's length; a stale
// zobrist/depth mismatch on lookup is treated as a miss.
type cacheEntry struct {
	zobrist uint64
	counts  nodeCounts
	depth   int
}

var (
	startpos = engine.FENStartPos
	kiwipete = engine.FENKiwipete
	duplain  = engine.FENDuplain

	knownPositions = map[string]string{
		"startpos": startpos,
		"kiwipete": kiwipete,
		"duplain":  duplain,
	}

	// expectedCounts holds the canonical perft counts for startpos plus
	// the standard Kiwipete/Duplain suites used to cross-check move
	// generation edge cases (castling, en-passant, promotion) beyond
	// depth 5.
	expectedCounts = map[string][]nodeCounts{
		startpos: {
			{1, 0, 0, 0, 0},
			{20, 0, 0, 0, 0},
			{400, 0, 0, 0, 0},
			{8902, 34, 0, 0, 0},
			{197281, 1576, 0, 0, 0},
			{4865609, 82719, 258, 0, 0},
			{119060324, 2812008, 5248, 0, 0},
		},
		kiwipete: {
			{1, 0, 0, 0, 0},
			{48, 8, 0, 2, 0},
			{2039, 351, 1, 91, 0},
			{97862, 17102, 45, 3162, 0},
			{4085603, 757163, 1929, 128013, 15172},
		},
		duplain: {
			{1, 0, 0, 0, 0},
			{14, 1, 0, 0, 0},
			{191, 14, 0, 0, 0},
			{2812, 209, 2, 0, 0},
			{43238, 3348, 123, 0, 0},
			{674624, 52051, 1165, 0, 0},
		},
	}

	// transpositionCacheSize/transpositionCache speed up repeated perft
	// runs at the cost of a fixed amount of memory; passing a nil cache
	// to countMoveTree disables memoization entirely.
	transpositionCacheSize = 1 << 20
	transpositionCache     = make([]cacheEntry, transpositionCacheSize)
)

// countMoveTree counts the leaves of the move tree rooted at pos, to
// the given depth. It mutates pos via DoMove/UndoMove and restores it
// fully before returning rather than cloning a new Position per node,
// trading the engine package's usual by-value recursion discipline for
// raw throughput in this standalone benchmarking tool.
func countMoveTree(pos *engine.Position, depth int, cache []cacheEntry) nodeCounts {
	if depth == 0 {
		return nodeCounts{nodes: 1}
	}

	if cache != nil {
		index := pos.Zobrist() % uint64(len(cache))
		if cache[index].depth == depth && cache[index].zobrist == pos.Zobrist() {
			return cache[index].counts
		}
	}

	total := nodeCounts{}
	var moves []engine.Move
	pos.GenerateMoves(engine.All, &moves)
	for _, move := range moves {
		pos.DoMove(move)
		if pos.IsChecked(pos.SideToMove.Opposite()) {
			pos.UndoMove(move)
			continue
		}

		if depth == 1 { // count only leaf nodes
			if move.Capture() != engine.NoPiece {
				total.captures++
			}
			switch move.MoveType() {
			case engine.Enpassant:
				total.enpassant++
			case engine.Castling:
				total.castles++
			case engine.Promotion:
				total.promotions++
			}
		}

		total.add(countMoveTree(pos, depth-1, cache))
		pos.UndoMove(move)
	}

	if cache != nil {
		index := pos.Zobrist() % uint64(len(cache))
		cache[index] = cacheEntry{zobrist: pos.Zobrist(), counts: total, depth: depth}
	}
	return total
}

// splitCount is countMoveTree with per-root-move breakdown: each move
// at splitDepth above the leaves gets its own printed line, letting a
// perft mismatch be narrowed down to a specific first move.
func splitCount(pos *engine.Position, depth, splitDepth int) nodeCounts {
	total := nodeCounts{}
	if depth == 0 || splitDepth == 0 {
		total = countMoveTree(pos, depth, transpositionCache)
	} else {
		var moves []engine.Move
		pos.GenerateMoves(engine.All, &moves)
		for _, move := range moves {
			pos.DoMove(move)
			if !pos.IsChecked(pos.SideToMove.Opposite()) {
				splitMoves = append(splitMoves, move.UCI())
				total.add(splitCount(pos, depth-1, splitDepth-1))
				splitMoves = splitMoves[:len(splitMoves)-1]
			}
			pos.UndoMove(move)
		}
	}

	if len(splitMoves) != 0 {
		fmt.Printf("   %2d %12d %8d %9d %7d split %s\n",
			depth, total.nodes, total.captures, total.enpassant, total.castles, strings.Join(splitMoves, " "))
	}
	return total
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	var expected []nodeCounts
	if s, has := knownPositions[*fen]; has {
		*fen = s
		expected = expectedCounts[*fen]
	}
	if *depth != 0 {
		*minDepth = *depth
		*maxDepth = *depth
	}

	fmt.Printf("Searching FEN %q\n", *fen)
	pos, err := engine.PositionFromFEN(*fen)
	if err != nil {
		log.Fatalln("cannot parse --fen:", err)
	}

	fmt.Printf("depth        nodes   captures enpassant castles   promotions eval  KNps   elapsed\n")
	fmt.Printf("-----+------------+----------+---------+---------+----------+-----+------+-------\n")

	for d := *minDepth; d <= *maxDepth; d++ {
		start := time.Now()
		c := splitCount(pos, d, *splitDepth)
		duration := time.Since(start)

		verdict := ""
		if d < len(expected) {
			if c == expected[d] {
				verdict = "good"
			} else {
				verdict = "bad"
			}
		}

		fmt.Printf("   %2d %12d %10d %9d %9d %10d %-4s %6.f %v\n",
			d, c.nodes, c.captures, c.enpassant, c.castles, c.promotions,
			verdict, float64(c.nodes)/duration.Seconds()/1e3, duration)

		if verdict == "bad" {
			e := expected[d]
			fmt.Printf("   %2d %12d %10d %9d %9d %10d %s\n",
				d, e.nodes, e.captures, e.enpassant, e.castles, e.promotions,
				"expected")
			break
		}
	}
}
