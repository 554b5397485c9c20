package engine

import "testing"

// TestEvaluateMirrorSymmetric checks the mirror invariant:
// evaluate(p, false) on a position and its color-swapped, vertically
// flipped twin must be negatives of each other (material, PST and
// pawn-structure terms are all symmetric under this transform; side
// to move does not enter Evaluate's calculation).
func TestEvaluateMirrorSymmetric(t *testing.T) {
	fens := []string{
		FENStartPos,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"8/5k2/8/3K4/8/8/4P3/8 w - - 0 1",
		"rnbqkb1r/ppp1pppp/5n2/3p4/3P4/5N2/PPP1PPPP/RNBQKB1R w KQkq - 2 3",
	}

	for _, fen := range fens {
		pos, err := PositionFromFEN(fen)
		if err != nil {
			t.Fatalf("bad fen %q: %v", fen, err)
		}
		mirrored := mirrorPosition(pos)

		got := Evaluate(pos, false)
		want := Evaluate(mirrored, false)
		if got != -want {
			t.Errorf("fen %q: Evaluate(pos)=%d, Evaluate(mirror(pos))=%d, want negatives", fen, got, want)
		}
	}
}

// mirrorPosition builds the color-swapped, vertically-flipped twin of
// pos: every piece keeps its figure but swaps color, and moves to the
// vertically mirrored square. Used only by tests to exercise the
// Evaluate mirror invariant.
func mirrorPosition(pos *Position) *Position {
	cp := NewPosition()
	for sq := SquareMinValue; sq <= SquareMaxValue; sq++ {
		pi := pos.Get(sq)
		if pi == NoPiece {
			continue
		}
		cp.Put(mirror(sq), ColorFigure(pi.Color().Opposite(), pi.Figure()))
	}
	cp.SetSideToMove(pos.SideToMove.Opposite())
	cp.HalfMoveClock = pos.HalfMoveClock
	cp.FullMoveNumber = pos.FullMoveNumber
	return cp
}

// TestEvaluateDrawRules exercises draw rules directly.
func TestEvaluateDrawRules(t *testing.T) {
	kvk, err := PositionFromFEN("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if got := Evaluate(kvk, false); got != 0 {
		t.Errorf("K vs K: Evaluate = %d, want 0 (insufficient material)", got)
	}

	fiftyMove, err := PositionFromFEN("4k3/8/8/8/8/8/4R3/4K3 w - - 100 60")
	if err != nil {
		t.Fatal(err)
	}
	if got := Evaluate(fiftyMove, false); got != 0 {
		t.Errorf("half-move clock 100: Evaluate = %d, want 0", got)
	}
}
