// Package book implements an opening-book lookup as an external
// collaborator to Search: an immutable hash-keyed table of weighted
// candidate moves, loadable from a gzip+tar+JSON archive format.
package book

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/tidalchess/tidalchess/engine"
)

// Candidate is one weighted move entry for a position, as stored in
// the archive's JSON payload.
type Candidate struct {
	UCI    string `json:"uci"`
	Weight uint32 `json:"weight"`
}

// Source is what Search consults before deepening (engine.Opener).
// Probe returns a single move sampled from the position's weighted
// candidate list, or ok=false if the position is not in the book or
// the sampled candidate is not legal in pos.
type Source interface {
	Probe(pos *engine.Position) (engine.Move, bool)
}

// Table is an in-memory Source: an immutable hash to candidate-list
// map plus the RNG used for weighted sampling. The entries are
// read-only after construction and the RNG is guarded by mu, so
// concurrent Probe calls are safe without locking by the caller.
type Table struct {
	entries map[uint64][]Candidate
	mu      sync.Mutex
	rng     *rand.Rand
}

// NewTable wraps a parsed entries map in a Table whose RNG is seeded
// with the fixed seed 1, so sampling repeats from run to run. Use
// NewTableWithSeed to pick a different seed.
func NewTable(entries map[uint64][]Candidate) *Table {
	return &Table{entries: entries, rng: rand.New(rand.NewSource(1))}
}

// NewTableWithSeed is like NewTable but lets the caller pin the RNG
// seed, so tests can assert a specific sampled move.
func NewTableWithSeed(entries map[uint64][]Candidate, seed int64) *Table {
	return &Table{entries: entries, rng: rand.New(rand.NewSource(seed))}
}

// Probe samples one move for pos's hash, weighted by the candidates'
// recorded counts (book weights are treated as totals, not wins, so
// sampling is plain weighted-without-replacement over the raw
// integers), then verifies the sampled UCI move is legal in pos before
// returning it. If the sampled candidate turns out illegal or
// unparseable, the whole position is treated as a miss rather than
// resampling, since a stale book entry signals the book disagrees with
// the live position.
func (t *Table) Probe(pos *engine.Position) (engine.Move, bool) {
	cands, ok := t.entries[pos.Zobrist()]
	if !ok || len(cands) == 0 {
		return engine.NullMove, false
	}

	var total uint64
	for _, c := range cands {
		total += uint64(c.Weight)
	}
	if total == 0 {
		return engine.NullMove, false
	}

	t.mu.Lock()
	pick := uint64(t.rng.Int63n(int64(total)))
	t.mu.Unlock()
	var running uint64
	for _, c := range cands {
		running += uint64(c.Weight)
		if pick < running {
			m, err := engine.ParseUCIMove(pos, c.UCI)
			if err != nil {
				return engine.NullMove, false
			}
			return m, true
		}
	}
	return engine.NullMove, false
}

// Empty returns a Table with no entries, the safe fallback when
// archive extraction or parsing fails.
func Empty() *Table {
	return NewTable(map[uint64][]Candidate{})
}

// LoadArchive unpacks a gzip-compressed tar archive at path and parses
// its single JSON member — a mapping from decimal-string position hash
// to a list of [uci_move, weight] pairs — into a Table. Extraction
// uses klauspost/compress's gzip reader, a faster pure-Go drop-in for
// the stdlib one, matching the hailam-chessplay pack entry's choice of
// the same module for its own asset pipeline.
func LoadArchive(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("book: open archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("book: gzip: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	raw := map[string][][2]json.RawMessage{}
	found := false
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("book: tar: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		dec := json.NewDecoder(tr)
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("book: json: %w", err)
		}
		found = true
	}
	if !found {
		return nil, fmt.Errorf("book: archive %s has no regular file members", path)
	}

	entries := make(map[uint64][]Candidate, len(raw))
	for key, pairs := range raw {
		hash, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			continue
		}
		cands := make([]Candidate, 0, len(pairs))
		for _, pair := range pairs {
			var uci string
			var weight uint32
			if len(pair) != 2 {
				continue
			}
			if err := json.Unmarshal(pair[0], &uci); err != nil {
				continue
			}
			if err := json.Unmarshal(pair[1], &weight); err != nil {
				continue
			}
			cands = append(cands, Candidate{UCI: uci, Weight: weight})
		}
		if len(cands) > 0 {
			entries[hash] = cands
		}
	}
	return NewTable(entries), nil
}
