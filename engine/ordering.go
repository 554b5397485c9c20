// ordering.go implements an explicit point-scored move-ordering
// scheme, replacing this engine's MVV-LVA/killer/history/counter
// machinery (move_ordering.go) with a flat priority function. The
// shell-sort-by-priority technique itself is kept from it (gaps from
// "Best Increments for the Average Case of Shellsort," Marcin Ciura)
// since it orders in place without extra allocation.

package engine

// shellSortGaps are the gap sequence this engine's move_ordering.go
// uses for its in-place sort.
var shellSortGaps = [...]int{132, 57, 23, 10, 4, 1}

// Priority scores m for ordering purposes at the current position pos
// (m must be a legal move from pos):
//
//	+80 if promotion
//	+50 if the move gives check
//	+40 if capture
//	+30 if the move attacks an opponent piece
//	+captured_value/10 (MVV-LVA proxy)
func Priority(pos *Position, m Move) int32 {
	var p int32

	if m.MoveType() == Promotion {
		p += 80
	}
	if m.Capture() != NoPiece {
		p += 40
		p += FigureValue[m.Capture().Figure()] / 10
	}

	next := pos.Clone()
	next.DoMove(m)
	if next.InCheck() {
		p += 50
	}
	if attacksEnemyPiece(next, m) {
		p += 30
	}
	return p
}

// attacksEnemyPiece reports whether the piece that just moved to m.To()
// now attacks at least one opponent piece.
func attacksEnemyPiece(next *Position, m Move) bool {
	us := m.Color()
	them := us.Opposite()
	sq := m.To()
	fig := m.Piece().Figure()
	if m.MoveType() == Promotion {
		fig = m.Promotion().Figure()
	}

	var att Bitboard
	switch fig {
	case Pawn:
		fwd := Forward(us, sq.Bitboard())
		att = West(fwd) | East(fwd)
	case Knight:
		att = Tables().Knight(sq)
	case Bishop:
		att = Tables().Bishop(sq, next.ByColor[White]|next.ByColor[Black])
	case Rook:
		att = Tables().Rook(sq, next.ByColor[White]|next.ByColor[Black])
	case Queen:
		att = Tables().Queen(sq, next.ByColor[White]|next.ByColor[Black])
	case King:
		att = Tables().King(sq)
	}
	return att&next.ByColor[them] != 0
}

// SortMoves orders succs by descending Priority, in place.
func SortMoves(pos *Position, succs []Successor) {
	order := make([]int32, len(succs))
	for i, s := range succs {
		order[i] = Priority(pos, s.Move)
	}
	for _, gap := range shellSortGaps {
		for i := gap; i < len(succs); i++ {
			j := i
			to, tm := order[j], succs[j]
			for ; j >= gap && order[j-gap] < to; j -= gap {
				order[j] = order[j-gap]
				succs[j] = succs[j-gap]
			}
			order[j], succs[j] = to, tm
		}
	}
}

// isLosingCapture is a simple MVV-LVA pre-filter for quiescence: a
// capture where the capturing piece is worth more than the captured
// piece, and the destination square is defended, is skipped rather
// than explored.
func isLosingCapture(pos *Position, m Move) bool {
	if m.Capture() == NoPiece {
		return false
	}
	attacker := FigureValue[m.Piece().Figure()]
	victim := FigureValue[m.Capture().Figure()]
	if attacker <= victim {
		return false
	}
	return pos.IsAttacked(m.To(), pos.SideToMove.Opposite())
}

// QuiescenceMoves filters succs down to the tactical subset worth
// searching in quiescence: captures of non-losing material, and
// promotions.
func QuiescenceMoves(pos *Position, succs []Successor) []Successor {
	out := succs[:0]
	for _, s := range succs {
		if s.Move.MoveType() == Promotion {
			out = append(out, s)
			continue
		}
		if s.Move.Capture() != NoPiece && !isLosingCapture(pos, s.Move) {
			out = append(out, s)
		}
	}
	return out
}
