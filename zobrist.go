package chess

// Zobrist hash keys, generated once at init time from a fixed-seed PRNG
// so hashes are reproducible across runs and builds.
var (
	zobristPiece    [2][6][64]uint64 // [Color][PieceType][Square]
	zobristEP       [2][8]uint64     // [Color][File] en-passant-available key
	zobristCastling [2][4]uint64     // [Color][CastleRights index]
	zobristSide     uint64           // XORed in only when Black is to move
)

// prng is a small xorshift64* generator used only to seed the Zobrist
// tables deterministically.
type prng struct{ state uint64 }

func newPRNG(seed uint64) *prng { return &prng{state: seed} }

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func init() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := Square(0); sq < NumSquares; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}
	for c := White; c <= Black; c++ {
		for f := 0; f < 8; f++ {
			zobristEP[c][f] = rng.next()
		}
	}
	for c := White; c <= Black; c++ {
		for i := 0; i < 4; i++ {
			zobristCastling[c][i] = rng.next()
		}
	}
	zobristSide = rng.next()
}

// ZobristPiece returns the key for a piece of color c and type pt sitting
// on sq.
func ZobristPiece(c Color, pt PieceType, sq Square) uint64 {
	return zobristPiece[c][pt][sq]
}

// ZobristEnPassant returns the key for an en-passant capture being
// available on file f for the side about to move, c.
func ZobristEnPassant(c Color, f File) uint64 {
	return zobristEP[c][f]
}

// ZobristCastling returns the key for color c holding castling rights cr.
func ZobristCastling(c Color, cr CastleRights) uint64 {
	return zobristCastling[c][cr]
}

// ZobristSideToMove returns the key XORed in whenever Black is to move;
// White-to-move contributes nothing, so the base hash of the start
// position needs no side-to-move adjustment.
func ZobristSideToMove(c Color) uint64 {
	if c == Black {
		return zobristSide
	}
	return 0
}
