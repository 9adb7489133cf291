package chess

import "fmt"

// ErrorKind enumerates the ways external input can fail to describe a
// valid position, square, or move.
type ErrorKind uint8

const (
	// ErrBoard means a built position failed sanity checking.
	ErrBoard ErrorKind = iota
	// ErrFEN means a FEN string could not be parsed.
	ErrFEN
	// ErrSquare means a square string ("a1".."h8") was malformed.
	ErrSquare
	// ErrSAN means a SAN move string could not be parsed or resolved
	// to exactly one legal move.
	ErrSAN
	// ErrUCI means a UCI move string was malformed.
	ErrUCI
)

func (k ErrorKind) String() string {
	switch k {
	case ErrBoard:
		return "invalid position"
	case ErrFEN:
		return "invalid FEN"
	case ErrSquare:
		return "invalid square"
	case ErrSAN:
		return "invalid SAN move"
	case ErrUCI:
		return "invalid UCI move"
	default:
		return "invalid"
	}
}

// Error is the single error type returned by every parsing function in
// this package. Parsing functions never panic; they return an Error
// instead.
type Error struct {
	Kind  ErrorKind
	Input string
}

func (e *Error) Error() string {
	if e.Input == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Input)
}

func newError(kind ErrorKind, input string) *Error {
	return &Error{Kind: kind, Input: input}
}
