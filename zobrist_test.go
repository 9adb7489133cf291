package chess

import "testing"

// recomputeHash rebuilds a position's Zobrist hash entirely from scratch
// from board state, independent of the incremental baseHash field, for
// comparison against Position.Hash().
func recomputeHash(p Position) uint64 {
	var h uint64
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				h ^= ZobristPiece(c, pt, bb.PopLSB())
			}
		}
	}
	h ^= ZobristSideToMove(p.SideToMove)
	h ^= ZobristCastling(White, p.Castle[White])
	h ^= ZobristCastling(Black, p.Castle[Black])
	if p.EnPassant != NoSquare {
		h ^= ZobristEnPassant(p.SideToMove, p.EnPassant.File())
	}
	return h
}

// TestHashMatchesFromScratchRecomputation is spec testable property #2.
func TestHashMatchesFromScratchRecomputation(t *testing.T) {
	pos := StartPosition()
	if pos.Hash() != recomputeHash(pos) {
		t.Fatalf("start position hash mismatch: incremental %016x, recomputed %016x",
			pos.Hash(), recomputeHash(pos))
	}

	uci := []string{"e2e4", "c7c5", "g1f3", "d7d6", "d2d4", "c5d4", "f3d4", "g8f6", "b1c3", "a7a6"}
	cur := pos
	for _, mv := range uci {
		m, err := ParseUCIMove(mv)
		if err != nil {
			t.Fatalf("ParseUCIMove(%s): %v", mv, err)
		}
		cur = cur.Make(m)
		if got, want := cur.Hash(), recomputeHash(cur); got != want {
			t.Fatalf("after %s: incremental hash %016x != recomputed %016x", mv, got, want)
		}
	}
}

// TestHashMatchesAcrossCastlingAndEnPassant exercises the lazily-folded
// castling and en-passant contributions specifically, since the sequence
// above never touches castling rights.
func TestHashMatchesAcrossCastlingAndEnPassant(t *testing.T) {
	pos, err := ParseFEN("r3k2r/ppp2ppp/8/8/3Pp3/8/PPP2PPP/R3K2R b KQkq d3 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if pos.Hash() != recomputeHash(pos) {
		t.Fatalf("hash mismatch before any move")
	}

	epCapture := NewMove(E4, D3)
	next := pos.Make(epCapture)
	if got, want := next.Hash(), recomputeHash(next); got != want {
		t.Fatalf("after en passant capture: incremental hash %016x != recomputed %016x", got, want)
	}

	castled := pos.Make(NewMove(E8, G8))
	if got, want := castled.Hash(), recomputeHash(castled); got != want {
		t.Fatalf("after castling: incremental hash %016x != recomputed %016x", got, want)
	}
	if castled.Castle[Black].HasKingSide() || castled.Castle[Black].HasQueenSide() {
		t.Error("expected black to lose all castling rights after castling")
	}
}

// TestPinnedAndCheckersMatchFreshComputation is spec testable property
// #3: the Pinned/Checkers bitboards stored on a
// position produced by Make must equal what computePinned/computeCheckers
// would derive from that same position on their own.
func TestPinnedAndCheckersMatchFreshComputation(t *testing.T) {
	positions := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	for _, fen := range positions {
		pos, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		moves := LegalMoves(pos)
		for i := 0; i < moves.Len(); i++ {
			next := pos.Make(moves.Get(i))
			us := next.SideToMove

			wantCheckers := computeCheckers(next, us)
			if next.Checkers != wantCheckers {
				t.Errorf("%s + %v: Checkers = %016x, want %016x", fen, moves.Get(i), uint64(next.Checkers), uint64(wantCheckers))
			}
			wantPinned := computePinned(next, us)
			if next.Pinned != wantPinned {
				t.Errorf("%s + %v: Pinned = %016x, want %016x", fen, moves.Get(i), uint64(next.Pinned), uint64(wantPinned))
			}
		}
	}
}
