package engine

import "fmt"

// Input errors: malformed FEN, malformed UCI, illegal move for the
// given position. All are surfaced to the caller; none are recoverable
// internally. Built with fmt.Errorf/%w like the rest of the package
// (position.go, convert.go).

func errInvalidUCIMove(s string) error {
	return fmt.Errorf("invalid UCI move %q", s)
}

func errIllegalMove(s string) error {
	return fmt.Errorf("illegal move %q for this position", s)
}

func errMalformedFEN(reason string) error {
	return fmt.Errorf("malformed FEN: %s", reason)
}
