package chess

import "fmt"

// Square is a board square, packed as rank*8+file, 0=a1 .. 63=h8.
// NoSquare (64) is used as a sentinel where a square may be absent.
type Square uint8

const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
	NoSquare Square = 64
	NumSquares = 64
)

// NewSquare builds a square from a file and rank.
func NewSquare(f File, r Rank) Square {
	return Square(int(r)*8 + int(f))
}

// File returns the file of the square.
func (s Square) File() File {
	return File(s & 7)
}

// Rank returns the rank of the square.
func (s Square) Rank() Rank {
	return Rank(s >> 3)
}

func (s Square) String() string {
	if s >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%s%s", s.File(), s.Rank())
}

// ParseSquare parses algebraic notation ("e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, newError(ErrSquare, s)
	}
	f, ok := fileFromChar(s[0])
	if !ok {
		return NoSquare, newError(ErrSquare, s)
	}
	r, ok := rankFromChar(s[1])
	if !ok {
		return NoSquare, newError(ErrSquare, s)
	}
	return NewSquare(f, r), nil
}

// Forward returns the square one rank toward the opponent's backrank for
// color c, wrapping across the board edge.
func (s Square) Forward(c Color) Square {
	if c == White {
		return NewSquare(s.File(), s.Rank().Up())
	}
	return NewSquare(s.File(), s.Rank().Down())
}

// Backward returns the square one rank toward c's own backrank, wrapping
// across the board edge.
func (s Square) Backward(c Color) Square {
	return s.Forward(c.Other())
}

// Left returns the square one file toward the a-file, wrapping.
func (s Square) Left() Square {
	return NewSquare(s.File().Left(), s.Rank())
}

// Right returns the square one file toward the h-file, wrapping.
func (s Square) Right() Square {
	return NewSquare(s.File().Right(), s.Rank())
}

// ForwardChecked is like Forward but returns (NoSquare, false) if the
// move would leave the board instead of wrapping.
func (s Square) ForwardChecked(c Color) (Square, bool) {
	if c == White {
		if s.Rank() == Rank8 {
			return NoSquare, false
		}
		return s.Forward(c), true
	}
	if s.Rank() == Rank1 {
		return NoSquare, false
	}
	return s.Forward(c), true
}

// BackwardChecked is the checked counterpart of Backward.
func (s Square) BackwardChecked(c Color) (Square, bool) {
	return s.ForwardChecked(c.Other())
}

// LeftChecked is the checked counterpart of Left.
func (s Square) LeftChecked() (Square, bool) {
	if s.File() == FileA {
		return NoSquare, false
	}
	return s.Left(), true
}

// RightChecked is the checked counterpart of Right.
func (s Square) RightChecked() (Square, bool) {
	if s.File() == FileH {
		return NoSquare, false
	}
	return s.Right(), true
}
