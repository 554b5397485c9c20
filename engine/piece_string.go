package engine

import "fmt"

// pieceNames maps every valid Piece value to its display name. Piece's
// packed encoding (figure<<2 + color, see basic.go) leaves gaps at
// every other index, so a plain array indexed by Piece costs only 27
// entries and avoids a stringer-style split-string/offset scheme for
// thirteen names.
var pieceNames = [PieceArraySize]string{
	NoPiece:     "NoPiece",
	WhitePawn:   "WhitePawn",
	BlackPawn:   "BlackPawn",
	WhiteKnight: "WhiteKnight",
	BlackKnight: "BlackKnight",
	WhiteBishop: "WhiteBishop",
	BlackBishop: "BlackBishop",
	WhiteRook:   "WhiteRook",
	BlackRook:   "BlackRook",
	WhiteQueen:  "WhiteQueen",
	BlackQueen:  "BlackQueen",
	WhiteKing:   "WhiteKing",
	BlackKing:   "BlackKing",
}

func (pi Piece) String() string {
	if int(pi) < len(pieceNames) {
		if name := pieceNames[pi]; name != "" {
			return name
		}
	}
	return fmt.Sprintf("Piece(%d)", pi)
}
