// movegen.go turns Position's pseudo-legal generators (position.go)
// into legal successor positions: enumerate pseudo-legal, apply,
// reject if it leaves the mover's own king attacked.

package engine

// IsAttacked reports whether sq is attacked by any piece of color them.
// It uses the symmetry trick: treat sq as if it held each opponent
// piece type in turn and intersect with that type's actual occupancy.
func (pos *Position) IsAttacked(sq Square, them Color) bool {
	return pos.GetAttacker(sq, them) != NoFigure
}

// Successor is a legal move paired with the position it produces.
type Successor struct {
	Move     Move
	Position *Position
}

// LegalMoves returns every legal successor of pos. kind selects which
// pseudo-legal move classes to generate (Quiet, Tactical, Violent, or
// their union All), matching Position.GenerateMoves.
func (pos *Position) LegalMoves(kind int) []Successor {
	us := pos.SideToMove
	pseudo := make([]Move, 0, 32)
	pos.GenerateMoves(kind, &pseudo)

	out := make([]Successor, 0, len(pseudo))
	for _, m := range pseudo {
		next := pos.Clone()
		next.DoMove(m)
		kingSq := next.ByPiece(us, King).AsSquare()
		if next.IsAttacked(kingSq, us.Opposite()) {
			continue // illegal: own king left in check
		}
		out = append(out, Successor{Move: m, Position: next})
	}
	return out
}

// IsLegal reports whether m is a legal move from pos (pseudo-legal and
// does not leave the mover's own king attacked).
func (pos *Position) IsLegal(m Move) bool {
	for _, succ := range pos.LegalMoves(All) {
		if succ.Move == m {
			return true
		}
	}
	return false
}

// InCheck reports whether the side to move is currently in check.
func (pos *Position) InCheck() bool {
	return pos.IsChecked(pos.SideToMove)
}

// HasInsufficientMaterial reports whether neither side has enough
// material to deliver checkmate: K vs K, K+minor vs K, or K+2N vs K.
func (pos *Position) HasInsufficientMaterial() bool {
	all := pos.ByColor[White] | pos.ByColor[Black]
	pawnsRooksQueens := pos.ByFigure[Pawn] | pos.ByFigure[Rook] | pos.ByFigure[Queen]
	if all&pawnsRooksQueens != 0 {
		return false
	}

	minors := pos.ByFigure[Bishop] | pos.ByFigure[Knight]
	numMinors := minors.Popcnt()
	if numMinors <= 1 {
		return true // K vs K, or K+minor vs K
	}
	if pos.ByFigure[Bishop] == 0 && numMinors == 2 {
		// K+2N vs K, on either side, with no other pieces on the board.
		for _, col := range [2]Color{White, Black} {
			if (pos.ByPiece(col, Knight)).Popcnt() == numMinors {
				return true
			}
		}
	}
	return false
}

// IsDraw reports whether pos is a draw by the 50-move rule or
// insufficient material, independent of repetition (handled by Tracker).
func (pos *Position) IsDraw() bool {
	return pos.HalfMoveClock >= 100 || pos.HasInsufficientMaterial()
}

// ParseUCIMove parses a UCI move string (e.g. "e2e4", "e7e8q") against
// pos and returns the matching legal move.
func ParseUCIMove(pos *Position, s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, errInvalidUCIMove(s)
	}
	from, err := SquareFromString(s[0:2])
	if err != nil {
		return NullMove, errInvalidUCIMove(s)
	}
	to, err := SquareFromString(s[2:4])
	if err != nil {
		return NullMove, errInvalidUCIMove(s)
	}

	var promo Figure
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			promo = Queen
		case 'r':
			promo = Rook
		case 'b':
			promo = Bishop
		case 'n':
			promo = Knight
		default:
			return NullMove, errInvalidUCIMove(s)
		}
	}

	for _, succ := range pos.LegalMoves(All) {
		m := succ.Move
		if m.From() != from || m.To() != to {
			continue
		}
		if m.MoveType() == Promotion && m.Promotion().Figure() != promo {
			continue
		}
		if m.MoveType() != Promotion && promo != NoFigure {
			continue
		}
		return m, nil
	}
	return NullMove, errIllegalMove(s)
}
