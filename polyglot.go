package chess

// Polyglot-format Zobrist keys, distinct from the internal Zobrist table,
// used to key this module's opening book store. The keys come from a
// locally seeded PRNG, not the published Polyglot random array, so the
// hashes do not match books written by other Polyglot programs.
var (
	polyglotPieces     [12][64]uint64 // [piece kind][square]
	polyglotCastling   [4]uint64      // [WK, WQ, BK, BQ]
	polyglotEnPassant  [8]uint64      // [file]
	polyglotSideToMove uint64
)

func init() {
	var s uint64 = 0x37b4a4b3f0d1c0d0
	rng := func() uint64 {
		s ^= s >> 12
		s ^= s << 25
		s ^= s >> 27
		return s * 0x2545F4914F6CDD1D
	}

	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			polyglotPieces[piece][sq] = rng()
		}
	}
	for i := 0; i < 4; i++ {
		polyglotCastling[i] = rng()
	}
	for i := 0; i < 8; i++ {
		polyglotEnPassant[i] = rng()
	}
	polyglotSideToMove = rng()
}

// polyglotPieceKind maps (color, PieceType) to the Polyglot piece index:
// black pawn..king = 0..5, white pawn..king = 6..11.
var polyglotPieceKind = [2][6]int{
	Black: {0, 1, 2, 3, 4, 5},
	White: {6, 7, 8, 9, 10, 11},
}

// PolyglotHash computes the Polyglot-style hash for p, used as the
// lookup key into an opening book store.
func (p Position) PolyglotHash() uint64 {
	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= polyglotPieces[polyglotPieceKind[c][pt]][sq]
			}
		}
	}

	if p.Castle[White].HasKingSide() {
		hash ^= polyglotCastling[0]
	}
	if p.Castle[White].HasQueenSide() {
		hash ^= polyglotCastling[1]
	}
	if p.Castle[Black].HasKingSide() {
		hash ^= polyglotCastling[2]
	}
	if p.Castle[Black].HasQueenSide() {
		hash ^= polyglotCastling[3]
	}

	if p.EnPassant != NoSquare && polyglotEPCapturable(p) {
		hash ^= polyglotEnPassant[p.EnPassant.File()]
	}

	if p.SideToMove == White {
		hash ^= polyglotSideToMove
	}

	return hash
}

// polyglotEPCapturable reports whether the side to move actually has a
// pawn able to capture en passant; Polyglot only folds the en-passant
// key in when a capture is really available, not merely legal to try.
func polyglotEPCapturable(p Position) bool {
	us := p.SideToMove
	file := p.EnPassant.File()
	rank := p.EnPassant.Rank()
	pawns := p.Pieces[us][Pawn]

	if file != FileA && pawns.IsSet(NewSquare(file.Left(), rank)) {
		return true
	}
	if file != FileH && pawns.IsSet(NewSquare(file.Right(), rank)) {
		return true
	}
	return false
}
