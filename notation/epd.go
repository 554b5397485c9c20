// Package notation implements parsing of chess positions in FEN and
// EPD (Extended Position Description) notation, on top of the engine
// package's own position codec.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidalchess/tidalchess/engine"
)

// EPD is a parsed Extended Position Description: a position plus a set
// of named operations (best move, id, comments, ...). BestMove entries
// are kept as raw move tokens (SAN or UCI, whatever the source EPD
// used) rather than resolved to engine.Move, since resolving SAN
// requires disambiguation information this package does not carry.
type EPD struct {
	Position *engine.Position
	Id       string
	BestMove []string
	Comment  map[string]string
}

// ParseFEN parses a standard 6-field FEN string and returns it wrapped
// in an EPD with no operations.
func ParseFEN(line string) (*EPD, error) {
	pos, err := engine.PositionFromFEN(line)
	if err != nil {
		return nil, err
	}
	return &EPD{Position: pos, Comment: make(map[string]string)}, nil
}

// ParseEPD parses an EPD line: four position fields (piece placement,
// side to move, castling ability, en-passant square) followed by
// semicolon-terminated operations, e.g.
//
//	r3r1k1/ppqb1ppp/8/4p1NQ/8/2P5/PP3PPP/R3R1K1 b - - bm Bd7-f5; id "BK.12";
func ParseEPD(line string) (*EPD, error) {
	idx := fieldOffset(line, 4)
	fields := strings.Fields(line[:idx])
	if len(fields) != 4 {
		return nil, fmt.Errorf("epd: expected 4 position fields, got %d", len(fields))
	}

	pos := engine.NewPosition()
	if err := pos.ParsePiecePlacement(fields[0]); err != nil {
		return nil, fmt.Errorf("epd: piece placement: %v", err)
	}
	if err := pos.ParseSideToMove(fields[1]); err != nil {
		return nil, fmt.Errorf("epd: side to move: %v", err)
	}
	if err := pos.ParseCastlingAbility(fields[2]); err != nil {
		return nil, fmt.Errorf("epd: castling ability: %v", err)
	}
	if err := pos.ParseEnpassantSquare(fields[3]); err != nil {
		return nil, fmt.Errorf("epd: en-passant square: %v", err)
	}

	epd := &EPD{Position: pos, Comment: make(map[string]string)}
	if err := applyOperations(epd, line[idx:]); err != nil {
		return nil, err
	}
	return epd, nil
}

// operation is one "opcode arg1 arg2 ...;" clause of an EPD line.
type operation struct {
	opcode string
	args   []string
}

// splitClauses splits on ';', respecting double-quoted strings.
func splitClauses(s string) []string {
	var clauses []string
	inQuotes := false
	start := 0
	for i, r := range s {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ';':
			if !inQuotes {
				clauses = append(clauses, s[start:i])
				start = i + 1
			}
		}
	}
	if start < len(s) {
		clauses = append(clauses, s[start:])
	}
	return clauses
}

// splitArgs splits a clause into whitespace-separated tokens, keeping
// quoted strings (including their interior spaces) as one token.
func splitArgs(s string) []string {
	var args []string
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		if cur.Len() > 0 {
			args = append(args, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ' ' && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return args
}

func applyOperations(epd *EPD, rest string) error {
	for _, clause := range splitClauses(rest) {
		args := splitArgs(strings.TrimSpace(clause))
		if len(args) == 0 {
			continue
		}
		op := operation{opcode: args[0], args: args[1:]}

		switch op.opcode {
		case "id":
			if len(op.args) != 1 {
				return fmt.Errorf("epd: id expects exactly one argument")
			}
			epd.Id = op.args[0]
		case "bm":
			epd.BestMove = append(epd.BestMove, op.args...)
		case "fmvn":
			if len(op.args) != 1 {
				return fmt.Errorf("epd: fmvn expects exactly one argument")
			}
			n, err := strconv.Atoi(op.args[0])
			if err != nil {
				return err
			}
			epd.Position.FullMoveNumber = n
		case "hmvc":
			if len(op.args) != 1 {
				return fmt.Errorf("epd: hmvc expects exactly one argument")
			}
			n, err := strconv.Atoi(op.args[0])
			if err != nil {
				return err
			}
			epd.Position.HalfMoveClock = n
		default:
			if strings.HasPrefix(op.opcode, "c") && len(op.args) == 1 {
				epd.Comment[op.opcode] = op.args[0]
			}
		}
	}
	return nil
}

// fieldOffset returns the byte index in line just past the n-th
// whitespace-separated field.
func fieldOffset(line string, n int) int {
	i, seen := 0, 0
	for i < len(line) {
		for i < len(line) && line[i] == ' ' {
			i++
		}
		if seen == n {
			break
		}
		for i < len(line) && line[i] != ' ' {
			i++
		}
		seen++
	}
	return i
}

// String renders epd back to its canonical EPD textual form.
func (e *EPD) String() string {
	s := e.Position.FormatPiecePlacement()
	s += " " + e.Position.FormatSideToMove()
	s += " " + e.Position.FormatCastlingAbility()
	s += " " + e.Position.FormatEnpassantSquare()

	if len(e.BestMove) != 0 {
		s += " bm " + strings.Join(e.BestMove, " ") + ";"
	}
	if e.Id != "" {
		s += " id \"" + e.Id + "\";"
	}
	for k, v := range e.Comment {
		s += " " + k + " \"" + v + "\";"
	}
	return s
}
