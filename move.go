package chess

// Move packs a source square, destination square, and optional promotion
// piece into 16 bits: bits 15..10 source, bits 9..4 destination, bits
// 3..0 promotion (0 = none, 1 = Pawn .. 6 = King; only Knight..Queen are
// legal promotions but the encoding round-trips every PieceType).
type Move uint16

// NullMove is the zero move, A1A1 with no promotion. It never appears
// among legal moves generated from a real position, so it doubles as a
// sentinel.
const NullMove Move = 0

const (
	moveSrcShift   = 10
	moveDestShift  = 4
	moveSrcMask    = 0b111111 << moveSrcShift
	moveDestMask   = 0b111111 << moveDestShift
	movePromoMask  = 0b1111
)

// NewMove builds a move with no promotion.
func NewMove(src, dest Square) Move {
	return Move(uint16(src)<<moveSrcShift | uint16(dest)<<moveDestShift)
}

// NewPromotionMove builds a move promoting to the given piece type.
func NewPromotionMove(src, dest Square, promo PieceType) Move {
	return Move(uint16(src)<<moveSrcShift | uint16(dest)<<moveDestShift | uint16(promo+1))
}

// Source returns the move's origin square.
func (m Move) Source() Square {
	return Square((uint16(m) & moveSrcMask) >> moveSrcShift)
}

// Dest returns the move's destination square.
func (m Move) Dest() Square {
	return Square((uint16(m) & moveDestMask) >> moveDestShift)
}

// Promotion returns the promotion piece type and whether the move is a
// promotion at all.
func (m Move) Promotion() (PieceType, bool) {
	v := uint16(m) & movePromoMask
	if v == 0 {
		return NoPieceType, false
	}
	return PieceType(v - 1), true
}

// IsNull reports whether m is the null move.
func (m Move) IsNull() bool {
	return m == NullMove
}

// String renders the move in UCI form (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	s := m.Source().String() + m.Dest().String()
	if promo, ok := m.Promotion(); ok {
		s += Piece{Type: promo}.String()
	}
	return s
}

// ParseUCIMove parses a UCI move string ("e2e4", "e7e8q") without
// reference to any position; it cannot detect castling or en-passant
// flags, only source, destination, and promotion.
func ParseUCIMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, newError(ErrUCI, s)
	}
	src, err := ParseSquare(s[0:2])
	if err != nil {
		return NullMove, newError(ErrUCI, s)
	}
	dest, err := ParseSquare(s[2:4])
	if err != nil {
		return NullMove, newError(ErrUCI, s)
	}
	if len(s) == 5 {
		pt, ok := pieceTypeFromChar(s[4] - ('a' - 'A'))
		if !ok {
			return NullMove, newError(ErrUCI, s)
		}
		return NewPromotionMove(src, dest, pt), nil
	}
	return NewMove(src, dest), nil
}

// Less reports whether m sorts before other: by source square, then
// destination square, then promotion (no promotion sorts before any
// promotion, promotions compare by PieceType value).
func (m Move) Less(other Move) bool {
	if m.Source() != other.Source() {
		return m.Source() < other.Source()
	}
	if m.Dest() != other.Dest() {
		return m.Dest() < other.Dest()
	}
	mp, mok := m.Promotion()
	op, ook := other.Promotion()
	if mok != ook {
		return !mok
	}
	return mp < op
}

// Compare returns -1, 0, or 1 as m sorts before, equal to, or after
// other, following the same ordering as Less.
func (m Move) Compare(other Move) int {
	if m == other {
		return 0
	}
	if m.Less(other) {
		return -1
	}
	return 1
}

const maxMovesInPosition = 256

// MoveList is a fixed-capacity, non-allocating container for moves
// generated from a single position.
type MoveList struct {
	moves [maxMovesInPosition]Move
	count int
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int { return ml.count }

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Clear empties the list without releasing its backing array.
func (ml *MoveList) Clear() { ml.count = 0 }

// Contains reports whether m is present in the list.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the populated moves as a slice sharing the list's array.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
