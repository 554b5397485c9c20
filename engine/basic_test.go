package engine

import "testing"

func TestSquareFromString(t *testing.T) {
	cases := []struct {
		sq  Square
		str string
	}{
		{SquareF4, "f4"},
		{SquareA3, "a3"},
		{SquareC1, "c1"},
		{SquareH8, "h8"},
	}

	for _, c := range cases {
		if c.sq.String() != c.str {
			t.Errorf("expected %v, got %v", c.str, c.sq.String())
		}
		if sq, err := SquareFromString(c.str); err != nil {
			t.Errorf("parse error: %v", err)
		} else if c.sq != sq {
			t.Errorf("expected %v, got %v", c.sq, sq)
		}
	}
}

func TestSquareFromStringRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "a", "a0", "i4", "a9", "abc"} {
		if _, err := SquareFromString(bad); err == nil {
			t.Errorf("SquareFromString(%q): expected error, got nil", bad)
		}
	}
}

func TestCastlingRookSquares(t *testing.T) {
	cases := []struct {
		kingEnd, rookStart, rookEnd Square
	}{
		{SquareC1, SquareA1, SquareD1},
		{SquareC8, SquareA8, SquareD8},
		{SquareG1, SquareH1, SquareF1},
		{SquareG8, SquareH8, SquareF8},
	}

	for _, c := range cases {
		_, rookStart, rookEnd := CastlingRook(c.kingEnd)
		if rookStart != c.rookStart || rookEnd != c.rookEnd {
			t.Errorf("for king to %v, expected rook from %v to %v, got rook from %v to %v",
				c.kingEnd, c.rookStart, c.rookEnd, rookStart, rookEnd)
		}
	}
}

func TestCastlingRookPiece(t *testing.T) {
	cases := []struct {
		kingEnd Square
		rook    Piece
	}{
		{SquareC1, WhiteRook},
		{SquareC8, BlackRook},
		{SquareG1, WhiteRook},
		{SquareG8, BlackRook},
	}

	for _, c := range cases {
		rook, _, _ := CastlingRook(c.kingEnd)
		if rook != c.rook {
			t.Errorf("for king to %v, expected %v, got %v", c.kingEnd, c.rook, rook)
		}
	}
}

func TestRankFile(t *testing.T) {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			sq := RankFile(r, f)
			if sq.Rank() != r || sq.File() != f {
				t.Errorf("expected (rank, file) (%d, %d), got (%d, %d)",
					r, f, sq.Rank(), sq.File())
			}
		}
	}
}

func assertPiece(t *testing.T, pi Piece, wantColor Color, wantFigure Figure) {
	t.Helper()
	if pi.Color() != wantColor || pi.Figure() != wantFigure {
		t.Errorf("for %v expected %v %v, got %v %v", pi, wantColor, wantFigure, pi.Color(), pi.Figure())
	}
}

func TestColorFigureRoundTrip(t *testing.T) {
	assertPiece(t, NoPiece, NoColor, NoFigure)
	for co := ColorMinValue; co < ColorMaxValue; co++ {
		for fig := FigureMinValue; fig <= FigureMaxValue; fig++ {
			assertPiece(t, ColorFigure(co, fig), co, fig)
		}
	}
}

func TestNamedPieceConstants(t *testing.T) {
	assertPiece(t, WhitePawn, White, Pawn)
	assertPiece(t, WhiteKnight, White, Knight)
	assertPiece(t, WhiteRook, White, Rook)
	assertPiece(t, WhiteKing, White, King)
	assertPiece(t, BlackPawn, Black, Pawn)
	assertPiece(t, BlackBishop, Black, Bishop)
}

func TestColorSignAndOpposite(t *testing.T) {
	if White.Sign() != 1 {
		t.Errorf("White.Sign() = %d, want 1", White.Sign())
	}
	if Black.Sign() != -1 {
		t.Errorf("Black.Sign() = %d, want -1", Black.Sign())
	}
	if White.Opposite() != Black || Black.Opposite() != White {
		t.Errorf("Color.Opposite() is not involutive for White/Black")
	}
}

func TestMoveUCIAndLAN(t *testing.T) {
	m := MakeMove(Normal, SquareE2, SquareE4, NoPiece, WhitePawn)
	if got := m.UCI(); got != "e2e4" {
		t.Errorf("UCI() = %q, want %q", got, "e2e4")
	}
	if got := m.LAN(); got != "e2-e4" {
		t.Errorf("LAN() = %q, want %q", got, "e2-e4")
	}

	promo := MakeMove(Promotion, SquareE7, SquareE8, NoPiece, WhiteQueen)
	if got := promo.UCI(); got != "e7e8q" {
		t.Errorf("UCI() for promotion = %q, want %q", got, "e7e8q")
	}
}
