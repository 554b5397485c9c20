// Package session implements a per-game engine-state registry as an
// external collaborator: a Session tracks one game's position and
// repetition history, and a Manager keeps a set of Sessions keyed by
// opaque host-supplied ids, all sharing a single process-wide
// *engine.Engine (and therefore transposition table and opening
// book) — loosely following the shape of the blunext-chess pack
// entry's per-game Session (isolated position and history) but
// without that file's per-game transposition table, kept process-wide
// here instead.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/tidalchess/tidalchess/engine"
)

// Session holds one game's live state: the current position and the
// Zobrist-hash history needed to seed the repetition tracker. eng is
// shared with every other Session a Manager hosts — Engine.Search
// itself serializes concurrent callers (engine/search.go), so Session
// only needs to guard its own position/history fields.
type Session struct {
	mu       sync.Mutex
	position *engine.Position
	history  []uint64
	eng      *engine.Engine
	stats    engine.Stats
}

// New creates a Session rooted at pos with the given prior history
// (oldest first), using eng for searches.
func New(pos *engine.Position, history []uint64, eng *engine.Engine) *Session {
	return &Session{position: pos, history: append([]uint64(nil), history...), eng: eng}
}

// Apply plays move on the session's position and appends its
// pre-move hash to the repetition history, following the original
// engine's (original_source/src/api/post/add_game.rs) practice of
// threading the full move history through to the repetition tracker
// rather than just the latest move.
func (s *Session) Apply(move engine.Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.position.IsLegal(move) {
		return fmt.Errorf("session: illegal move %s", move.UCI())
	}
	s.history = append(s.history, s.position.Zobrist())
	s.position.DoMove(move)
	return nil
}

// BestMove runs a bounded search from the session's current position
// and returns the result, without mutating the session.
func (s *Session) BestMove(ctx context.Context, remainingMs, hardLimitMs int) engine.Result {
	return s.SearchWithLogger(ctx, remainingMs, hardLimitMs, engine.NulLogger{})
}

// SearchWithLogger is like BestMove but lets the caller observe
// per-iteration progress via logger, the hook package httpapi uses to
// stream depth-by-depth updates over a websocket. The search itself
// runs against a cloned position, so s's own state is never mutated
// and s.mu is only held long enough to copy it; engine.Engine.
// SearchWithLogger does its own locking around the shared TT/book, so
// concurrent calls across Sessions (or on the same Session) stay
// correctly serialized without Session needing a second search lock.
func (s *Session) SearchWithLogger(ctx context.Context, remainingMs, hardLimitMs int, logger engine.Logger) engine.Result {
	s.mu.Lock()
	pos := s.position.Clone()
	history := append([]uint64(nil), s.history...)
	s.mu.Unlock()

	result := s.eng.SearchWithLogger(ctx, pos, history, remainingMs, hardLimitMs, logger)

	s.mu.Lock()
	s.stats = result.Stats
	s.mu.Unlock()
	return result
}

// Position returns a copy of the session's current position.
func (s *Session) Position() *engine.Position {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position.Clone()
}

// History returns a copy of the session's repetition history.
func (s *Session) History() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint64(nil), s.history...)
}

// Stats reports the node/cutoff counters from the most recent
// BestMove call.
func (s *Session) Stats() engine.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Manager keys Sessions by an opaque id string supplied by the host,
// with every Session sharing eng — and therefore its transposition
// table and opening book, which are process-wide resources whose
// access is serialized with a mutex. That mutex lives on engine.Engine
// itself (engine/search.go), so Manager only needs to guard its own
// id-keyed map.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	eng      *engine.Engine
}

// NewManager builds an empty Manager whose Sessions all search through
// eng.
func NewManager(eng *engine.Engine) *Manager {
	return &Manager{sessions: make(map[string]*Session), eng: eng}
}

// Create registers a new Session under id, rooted at pos with the
// given prior history. It returns an error if id is already in use.
func (m *Manager) Create(id string, pos *engine.Position, history []uint64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.sessions[id]; exists {
		return nil, fmt.Errorf("session: id %q already exists", id)
	}
	s := New(pos, history, m.eng)
	m.sessions[id] = s
	return s, nil
}

// Apply looks up id and plays move on its Session.
func (m *Manager) Apply(id string, move engine.Move) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	return s.Apply(move)
}

// Query looks up id and runs BestMove on its Session.
func (m *Manager) Query(ctx context.Context, id string, remainingMs, hardLimitMs int) (engine.Result, error) {
	s, err := m.get(id)
	if err != nil {
		return engine.Result{}, err
	}
	return s.BestMove(ctx, remainingMs, hardLimitMs), nil
}

// Destroy removes id from the registry. Destroying an id that does
// not exist is a no-op, matching the idempotent-delete convention of
// other lifecycle operations.
func (m *Manager) Destroy(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Session returns the *Session registered under id, for collaborators
// (e.g. package httpapi) that need direct access beyond Apply/Query.
func (m *Manager) Session(id string) (*Session, error) {
	return m.get(id)
}

func (m *Manager) get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session: unknown id %q", id)
	}
	return s, nil
}
