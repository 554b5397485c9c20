// Package config loads the engine's tunable options from a TOML file,
// the way FrankyGo keeps its engine configuration external to the
// binary instead of hardcoded flags.
package config

import (
	"fmt"
	"log"

	"github.com/BurntSushi/toml"

	"github.com/tidalchess/tidalchess/book"
	"github.com/tidalchess/tidalchess/engine"
)

// Options holds engine-wide settings treated as deployment parameters
// rather than algorithmic contracts: hash table size, the
// iterative-deepening ceiling, an opening-book path, and an
// analyse-mode flag. Analyse is parsed and kept on Options, but
// NewEngine does not read it, so it has no effect on the search
// deadline.
type Options struct {
	HashTableSizeMB int    `toml:"hash_table_size_mb"`
	MaxDepth        int    `toml:"max_depth"`
	BookPath        string `toml:"book_path"`
	Analyse         bool   `toml:"analyse"`
}

// Default returns the options an Engine built with engine.NewEngine
// already implies, so a config file only needs to override what
// differs.
func Default() Options {
	return Options{
		HashTableSizeMB: engine.DefaultHashTableSizeMB,
		MaxDepth:        64,
	}
}

// Load parses a TOML file at path into Options, starting from Default
// and overwriting only the fields the file sets.
func Load(path string) (Options, error) {
	opts := Default()
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return Options{}, fmt.Errorf("config: %w", err)
	}
	if opts.HashTableSizeMB <= 0 {
		return Options{}, fmt.Errorf("config: hash_table_size_mb must be positive, got %d", opts.HashTableSizeMB)
	}
	if opts.MaxDepth <= 0 {
		return Options{}, fmt.Errorf("config: max_depth must be positive, got %d", opts.MaxDepth)
	}
	return opts, nil
}

// NewEngine builds an *engine.Engine configured per opts: a
// transposition table sized per HashTableSizeMB, the depth ceiling
// from MaxDepth, and an opening book loaded from BookPath if one is
// set. A book that fails to load is logged and skipped rather than
// treated as fatal; Search then simply deepens on every position
// instead of ever hitting a book move.
func (o Options) NewEngine() *engine.Engine {
	e := &engine.Engine{
		TT:       engine.NewTranspositionTable(o.HashTableSizeMB),
		Logger:   engine.NulLogger{},
		MaxDepth: o.MaxDepth,
	}
	if o.BookPath != "" {
		tbl, err := book.LoadArchive(o.BookPath)
		if err != nil {
			log.Printf("config: opening book %s: %v; continuing with an empty book", o.BookPath, err)
			tbl = book.Empty()
		}
		e.Book = tbl
	}
	return e
}
