// Package httpapi wires session.Manager onto an HTTP transport: four
// routes — create, apply, best-move, destroy — enough to exercise the
// session contract over the wire without building a full multi-game
// server. Routing follows the walterschell-chess-analyzer pack entry's
// stack: gorilla/mux for routes, gorilla/websocket for a streaming
// best-move endpoint.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/tidalchess/tidalchess/engine"
	"github.com/tidalchess/tidalchess/notation"
	"github.com/tidalchess/tidalchess/session"
)

// Server adapts a session.Manager onto HTTP.
type Server struct {
	manager  *session.Manager
	upgrader websocket.Upgrader
}

// NewServer builds a Server over manager.
func NewServer(manager *session.Manager) *Server {
	return &Server{
		manager:  manager,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
	}
}

// Router returns the four-route mux.Router, ready to be handed to
// http.Serve or mounted under a larger router.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/sessions/{id}", s.handleCreate).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/move", s.handleApply).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{id}/bestmove", s.handleBestMove).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{id}", s.handleDestroy).Methods(http.MethodDelete)
	return r
}

type createRequest struct {
	FEN     string   `json:"fen"`
	History []uint64 `json:"history"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	epd, err := notation.ParseFEN(req.FEN)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := s.manager.Create(id, epd.Position, req.History); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

type applyRequest struct {
	UCI string `json:"uci"`
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req applyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Apply needs a parsed Move, which requires the session's current
	// position to resolve the UCI string against (promotions,
	// disambiguation).
	pos, perr := s.positionFor(id)
	if perr != nil {
		http.Error(w, perr.Error(), http.StatusNotFound)
		return
	}
	move, merr := engine.ParseUCIMove(pos, req.UCI)
	if merr != nil {
		http.Error(w, merr.Error(), http.StatusBadRequest)
		return
	}
	if err := s.manager.Apply(id, move); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDestroy(w http.ResponseWriter, r *http.Request) {
	s.manager.Destroy(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// depthUpdate is one progress message streamed over the best-move
// websocket as each iterative-deepening pass completes.
type depthUpdate struct {
	Depth int    `json:"depth"`
	Score int32  `json:"score"`
	Move  string `json:"move,omitempty"`
	Nodes int64  `json:"nodes"`
	Final bool   `json:"final"`
}

// wsLogger adapts engine.Logger onto a websocket connection, emitting
// one JSON message per completed depth.
type wsLogger struct {
	conn *websocket.Conn
}

func (l *wsLogger) BeginSearch() {}
func (l *wsLogger) EndSearch()   {}
func (l *wsLogger) PrintDepth(depth int, score int32, pv []engine.Move, stats engine.Stats) {
	move := ""
	if len(pv) > 0 {
		move = pv[0].UCI()
	}
	l.conn.WriteJSON(depthUpdate{Depth: depth, Score: score, Move: move, Nodes: stats.Nodes})
}

// handleBestMove upgrades to a websocket and streams depth-by-depth
// search progress, finishing with a Final message carrying the chosen
// move.
func (s *Server) handleBestMove(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	remainingMs := queryInt(r, "remaining_ms", 5000)
	hardLimitMs := queryInt(r, "hard_limit_ms", 5000)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sess, err := s.sessionFor(id)
	if err != nil {
		conn.WriteJSON(map[string]string{"error": err.Error()})
		return
	}

	result := sess.SearchWithLogger(r.Context(), remainingMs, hardLimitMs, &wsLogger{conn: conn})
	conn.WriteJSON(depthUpdate{
		Depth: result.Depth,
		Score: result.Score,
		Move:  result.BestMove.UCI(),
		Nodes: result.Stats.Nodes,
		Final: true,
	})
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func (s *Server) positionFor(id string) (*engine.Position, error) {
	sess, err := s.sessionFor(id)
	if err != nil {
		return nil, err
	}
	return sess.Position(), nil
}

func (s *Server) sessionFor(id string) (*session.Session, error) {
	return s.manager.Session(id)
}
