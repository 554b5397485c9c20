package engine

import (
	"fmt"
	"strings"
)

// castleRequirement pairs a FEN castling-ability letter with the
// king/rook pair and home squares that must hold those exact pieces
// for the right to still apply.
type castleRequirement struct {
	castle Castle
	pieces [2]Piece
	homes  [2]Square
}

var (
	emptyRunCount = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8"}
	colorSymbols  = []string{"", "w", "b"}
	pieceSymbols  = [PieceArraySize]string{
		NoPiece:   ".",
		WhitePawn: "P", BlackPawn: "p", WhiteKnight: "N", BlackKnight: "n",
		WhiteBishop: "B", BlackBishop: "b", WhiteRook: "R", BlackRook: "r",
		WhiteQueen: "Q", BlackQueen: "q", WhiteKing: "K", BlackKing: "k",
	}

	castleRequirements = map[rune]castleRequirement{
		'K': {castle: WhiteOO, pieces: [2]Piece{WhiteKing, WhiteRook}, homes: [2]Square{SquareE1, SquareH1}},
		'Q': {castle: WhiteOOO, pieces: [2]Piece{WhiteKing, WhiteRook}, homes: [2]Square{SquareE1, SquareA1}},
		'k': {castle: BlackOO, pieces: [2]Piece{BlackKing, BlackRook}, homes: [2]Square{SquareE8, SquareH8}},
		'q': {castle: BlackOOO, pieces: [2]Piece{BlackKing, BlackRook}, homes: [2]Square{SquareE8, SquareA8}},
	}

	colorBySymbol = map[string]Color{"w": White, "b": Black}

	pieceBySymbol = map[rune]Piece{
		'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop,
		'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
		'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop,
		'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	}
)

// ParsePiecePlacement fills pos's board from a FEN piece-placement field
// (the first of FEN's six space-separated fields), ranks separated by
// "/" starting from rank 8.
func (pos *Position) ParsePiecePlacement(field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	for r := range ranks {
		f := 0
		for _, sym := range ranks[r] {
			pi := pieceBySymbol[sym]
			if pi == NoPiece {
				if '1' <= sym && sym <= '8' {
					f += int(sym) - int('0') - 1
				} else {
					return fmt.Errorf("expected rank or number, got %s", string(sym))
				}
			}
			if f >= 8 {
				return fmt.Errorf("rank %d too long (%d cells)", 8-r, f)
			}
			// 7-r because FEN describes the table from the 8th rank down.
			pos.Put(RankFile(7-r, f), pi)
			f++
		}
		if f < 8 {
			return fmt.Errorf("rank %d too short (%d cells)", r+1, f)
		}
	}
	return nil
}

// FormatPiecePlacement renders pos's board as a FEN piece-placement field.
func (pos *Position) FormatPiecePlacement() string {
	var sb strings.Builder
	for r := 7; r >= 0; r-- {
		empties := 0
		for f := 0; f < 8; f++ {
			pi := pos.Get(RankFile(r, f))
			if pi == NoPiece {
				empties++
				continue
			}
			if empties != 0 {
				sb.WriteString(emptyRunCount[empties])
				empties = 0
			}
			sb.WriteString(pieceSymbols[pi])
		}
		if empties != 0 {
			sb.WriteString(emptyRunCount[empties])
		}
		if r != 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// ParseEnpassantSquare sets pos's en-passant square from a FEN
// en-passant field ("-" or a square like "e3").
func (pos *Position) ParseEnpassantSquare(field string) error {
	if field[:1] == "-" {
		pos.SetEnpassantSquare(SquareA1)
		return nil
	}
	sq, err := SquareFromString(field)
	if err != nil {
		return err
	}
	pos.SetEnpassantSquare(sq)
	return nil
}

// FormatEnpassantSquare renders pos's en-passant field.
func (pos *Position) FormatEnpassantSquare() string {
	if pos.EnpassantSquare() != SquareA1 {
		return pos.EnpassantSquare().String()
	}
	return "-"
}

// ParseSideToMove sets pos's side to move from a FEN side-to-move field
// ("w" or "b").
func (pos *Position) ParseSideToMove(field string) error {
	col, ok := colorBySymbol[field]
	if !ok {
		return fmt.Errorf("invalid color %s", field)
	}
	pos.SetSideToMove(col)
	return nil
}

// FormatSideToMove renders pos's side-to-move field.
func (pos *Position) FormatSideToMove() string {
	return colorSymbols[pos.SideToMove]
}

// ParseCastlingAbility sets pos's castling rights from a FEN
// castling-ability field, verifying that the king and rook each letter
// names are still on their home squares.
func (pos *Position) ParseCastlingAbility(field string) error {
	if field == "-" {
		pos.SetCastlingAbility(NoCastle)
		return nil
	}

	ability := NoCastle
	for _, sym := range field {
		req, ok := castleRequirements[sym]
		if !ok {
			return fmt.Errorf("invalid castling ability %s", field)
		}
		ability |= req.castle
		for i := 0; i < 2; i++ {
			if req.pieces[i] != pos.Get(req.homes[i]) {
				return fmt.Errorf("expected %v at %v, got %v",
					req.pieces[i], req.homes[i], pos.Get(req.homes[i]))
			}
		}
	}
	pos.SetCastlingAbility(ability)
	return nil
}

// FormatCastlingAbility renders pos's castling-ability field.
func (pos *Position) FormatCastlingAbility() string {
	return pos.CastlingAbility().String()
}
