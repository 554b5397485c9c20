package notation

import (
	"testing"

	"github.com/tidalchess/tidalchess/engine"
)

func testFENHelper(t *testing.T, expected *engine.Position, fen string) {
	epd, err := ParseFEN(fen)
	if err != nil {
		t.Error(err)
		return
	}

	actual := epd.Position
	for sq := engine.SquareMinValue; sq <= engine.SquareMaxValue; sq++ {
		epi := expected.Get(sq)
		api := actual.Get(sq)
		if epi != api {
			t.Errorf("expected %v at %v, got %v", epi, sq, api)
		}
	}
	if expected.SideToMove != actual.SideToMove {
		t.Errorf("expected to move %v, got %v",
			expected.SideToMove, actual.SideToMove)
	}
	if expected.CastlingAbility() != actual.CastlingAbility() {
		t.Errorf("expected CastlingAbility rights %v, got %v",
			expected.CastlingAbility(), actual.CastlingAbility())
	}
	if expected.EnpassantSquare() != actual.EnpassantSquare() {
		t.Errorf("expected EnpassantSquare square %v, got %v",
			expected.EnpassantSquare(), actual.EnpassantSquare())
	}
}

func TestFENStartPosition(t *testing.T) {
	expected := engine.NewPosition()
	expected.Put(engine.SquareA1, engine.WhiteRook)
	expected.Put(engine.SquareB1, engine.WhiteKnight)
	expected.Put(engine.SquareC1, engine.WhiteBishop)
	expected.Put(engine.SquareD1, engine.WhiteQueen)
	expected.Put(engine.SquareE1, engine.WhiteKing)
	expected.Put(engine.SquareF1, engine.WhiteBishop)
	expected.Put(engine.SquareG1, engine.WhiteKnight)
	expected.Put(engine.SquareH1, engine.WhiteRook)

	expected.Put(engine.SquareA8, engine.BlackRook)
	expected.Put(engine.SquareB8, engine.BlackKnight)
	expected.Put(engine.SquareC8, engine.BlackBishop)
	expected.Put(engine.SquareD8, engine.BlackQueen)
	expected.Put(engine.SquareE8, engine.BlackKing)
	expected.Put(engine.SquareF8, engine.BlackBishop)
	expected.Put(engine.SquareG8, engine.BlackKnight)
	expected.Put(engine.SquareH8, engine.BlackRook)

	for f := 0; f < 8; f++ {
		expected.Put(engine.RankFile(1, f), engine.WhitePawn)
		expected.Put(engine.RankFile(6, f), engine.BlackPawn)
	}

	expected.SetSideToMove(engine.White)
	expected.SetCastlingAbility(engine.AnyCastle)
	testFENHelper(t, expected, engine.FENStartPos)
}

func TestEPDParser(t *testing.T) {
	// An EPD taken from http://www.stmintz.com/ccc/index.php?id=20631
	line := "rnb2r1k/pp2p2p/2pp2p1/q2P1p2/8/1Pb2NP1/PB2PPBP/R2Q1RK1 w - - bm Qd2 Qe1; fmvn 123; hmvc 15; id \"BK.14\"; c9 \"draw\";"
	epd, err := ParseEPD(line)
	if err != nil {
		t.Fatal(err)
	}

	expectedID := "BK.14"
	if expectedID != epd.Id {
		t.Fatalf("expected id %s, got %s", expectedID, epd.Id)
	}

	expectedBestMove := []string{"Qd2", "Qe1"}
	if len(expectedBestMove) != len(epd.BestMove) {
		t.Fatalf("expected 2 best moves, got %d", len(epd.BestMove))
	}
	for i, bm := range expectedBestMove {
		if bm != epd.BestMove[i] {
			t.Errorf("#%d expected best move %v, got %v", i, bm, epd.BestMove[i])
		}
	}

	if 123 != epd.Position.FullMoveNumber {
		t.Errorf("expected fullmove number %d, got %d", 123, epd.Position.FullMoveNumber)
	}
	if 15 != epd.Position.HalfMoveClock {
		t.Errorf("expected halfmove clock %d, got %d", 15, epd.Position.HalfMoveClock)
	}
	if "draw" != epd.Comment["c9"] {
		t.Errorf("expected comment %s, got %s", "draw", epd.Comment["c9"])
	}
}

func TestEPDString(t *testing.T) {
	line := "r3r1k1/ppqb1ppp/8/4p1NQ/8/2P5/PP3PPP/R3R1K1 b - - bm Bf5;"

	epd, err := ParseEPD(line)
	if err != nil {
		t.Fatal(err)
	}

	actual := epd.String()
	if line != actual {
		t.Errorf("invalid string:\n     got: %s\nexpected: %s\n", actual, line)
	}
}
