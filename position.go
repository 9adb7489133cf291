package chess

import "fmt"

// Position is a complete, immutable snapshot of a chess game state. Every
// mutator (Make, MakeNull) takes a Position by value and returns a new
// one; the receiver is never modified in place. Pinned and Checkers are
// maintained alongside the board on every Make call so the legal move
// generator never needs to try a move and see if it survives.
type Position struct {
	Pieces   [2][6]Bitboard
	Occupied [2]Bitboard
	All      Bitboard

	SideToMove Color
	Castle     [2]CastleRights
	// EnPassant holds the square the just-doubled-pushed pawn itself
	// rests on (not the square a capturing pawn lands on, which FEN
	// uses); NoSquare if no en-passant capture is available.
	EnPassant Square

	HalfMoveClock int
	FullMoveNumber int

	KingSquare [2]Square
	Checkers   Bitboard
	Pinned     Bitboard

	baseHash uint64 // piece/square/color contribution only
}

// StartPosition returns the standard chess starting position.
func StartPosition() Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic("chess: malformed built-in start FEN")
	}
	return pos
}

// PieceAt returns the piece occupying sq, or (Piece{}, false) if empty.
func (p Position) PieceAt(sq Square) (Piece, bool) {
	bb := SquareBB(sq)
	if p.All&bb == 0 {
		return Piece{}, false
	}
	c := White
	if p.Occupied[Black]&bb != 0 {
		c = Black
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return Piece{Type: pt, Color: c}, true
		}
	}
	return Piece{}, false
}

// IsEmpty reports whether sq has no piece on it.
func (p Position) IsEmpty(sq Square) bool {
	return p.All&SquareBB(sq) == 0
}

// InCheck reports whether the side to move is in check.
func (p Position) InCheck() bool {
	return p.Checkers != 0
}

// Hash returns the full Zobrist hash of the position, folding the
// lazily-applied en-passant, castling, and side-to-move components onto
// the incrementally maintained piece-placement hash.
func (p Position) Hash() uint64 {
	h := p.baseHash
	h ^= ZobristSideToMove(p.SideToMove)
	h ^= ZobristCastling(White, p.Castle[White])
	h ^= ZobristCastling(Black, p.Castle[Black])
	if p.EnPassant != NoSquare {
		h ^= ZobristEnPassant(p.SideToMove, p.EnPassant.File())
	}
	return h
}

// PawnHash returns a hash that changes only on pawn moves and side-to-move
// flips, for pawn-structure caching independent of the rest of the
// material.
func (p Position) PawnHash() uint64 {
	h := ZobristSideToMove(p.SideToMove)
	for c := White; c <= Black; c++ {
		bb := p.Pieces[c][Pawn]
		for bb != 0 {
			h ^= ZobristPiece(c, Pawn, bb.PopLSB())
		}
	}
	return h
}

// PawnKingHash returns PawnHash with both kings folded in, for
// pawn-and-king structure caching independent of the rest of the
// material.
func (p Position) PawnKingHash() uint64 {
	return p.PawnHash() ^
		ZobristPiece(White, King, p.KingSquare[White]) ^
		ZobristPiece(Black, King, p.KingSquare[Black])
}

// Legal reports whether m is one of the legal moves available in p.
func (p Position) Legal(m Move) bool {
	return LegalMoves(p).Contains(m)
}

func (p *Position) setPiece(piece Piece, sq Square) {
	bb := SquareBB(sq)
	p.Pieces[piece.Color][piece.Type] |= bb
	p.Occupied[piece.Color] |= bb
	p.All |= bb
	p.baseHash ^= ZobristPiece(piece.Color, piece.Type, sq)
	if piece.Type == King {
		p.KingSquare[piece.Color] = sq
	}
}

func (p *Position) removePiece(sq Square) (Piece, bool) {
	piece, ok := p.PieceAt(sq)
	if !ok {
		return Piece{}, false
	}
	bb := SquareBB(sq)
	p.Pieces[piece.Color][piece.Type] &^= bb
	p.Occupied[piece.Color] &^= bb
	p.All &^= bb
	p.baseHash ^= ZobristPiece(piece.Color, piece.Type, sq)
	return piece, true
}

func (p *Position) movePieceRaw(piece Piece, from, to Square) {
	moveBB := SquareBB(from) | SquareBB(to)
	p.Pieces[piece.Color][piece.Type] ^= moveBB
	p.Occupied[piece.Color] ^= moveBB
	p.All ^= moveBB
	p.baseHash ^= ZobristPiece(piece.Color, piece.Type, from)
	p.baseHash ^= ZobristPiece(piece.Color, piece.Type, to)
	if piece.Type == King {
		p.KingSquare[piece.Color] = to
	}
}

// computePinned returns the pieces of color us that are pinned to its
// king by an enemy slider, via x-ray attack detection from the king
// outward (the slider's own blockers are ignored on the first pass).
func computePinned(p Position, us Color) Bitboard {
	them := us.Other()
	ksq := p.KingSquare[us]
	var pinned Bitboard

	snipers := RookAttacks(ksq, 0) & (p.Pieces[them][Rook] | p.Pieces[them][Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & p.All
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			pinned |= blockers
		}
	}

	snipers = BishopAttacks(ksq, 0) & (p.Pieces[them][Bishop] | p.Pieces[them][Queen])
	for snipers != 0 {
		sq := snipers.PopLSB()
		blockers := Between(sq, ksq) & p.All
		if blockers.PopCount() == 1 && blockers&p.Occupied[us] != 0 {
			pinned |= blockers
		}
	}

	return pinned
}

// computeCheckers returns the enemy pieces currently attacking us's king.
func computeCheckers(p Position, us Color) Bitboard {
	them := us.Other()
	ksq := p.KingSquare[us]
	return attackersTo(ksq, p.All,
		p.Pieces[them][Pawn], p.Pieces[them][Knight],
		p.Pieces[them][Bishop], p.Pieces[them][Rook],
		p.Pieces[them][Queen], p.Pieces[them][King], them)
}

// IsSquareAttacked reports whether byColor attacks sq under the
// position's actual occupancy.
func (p Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return attackersTo(sq, p.All,
		p.Pieces[byColor][Pawn], p.Pieces[byColor][Knight],
		p.Pieces[byColor][Bishop], p.Pieces[byColor][Rook],
		p.Pieces[byColor][Queen], p.Pieces[byColor][King], byColor) != 0
}

// attackersOf returns every piece of byColor attacking sq under occupied.
func (p Position) attackersOf(sq Square, byColor Color, occupied Bitboard) Bitboard {
	return attackersTo(sq, occupied,
		p.Pieces[byColor][Pawn], p.Pieces[byColor][Knight],
		p.Pieces[byColor][Bishop], p.Pieces[byColor][Rook],
		p.Pieces[byColor][Queen], p.Pieces[byColor][King], byColor)
}

// Make applies m to p and returns the resulting position. The caller
// must only pass moves drawn from LegalMoves(p) (or one individually
// checked with Legal); Make performs no legality filtering itself.
func (p Position) Make(m Move) Position {
	np := p
	us := np.SideToMove
	them := us.Other()
	from, to := m.Source(), m.Dest()
	piece, _ := np.PieceAt(from)

	np.EnPassant = NoSquare
	wasCapture := false

	isEnPassant := piece.Type == Pawn && to == epCaptureDest(p)
	if isEnPassant && p.EnPassant != NoSquare {
		_, wasCapture = np.removePiece(p.EnPassant)
	} else if _, ok := np.PieceAt(to); ok {
		_, wasCapture = np.removePiece(to)
	}

	np.removePiece(from)
	np.setPiece(piece, to)

	if promo, ok := m.Promotion(); ok {
		np.removePiece(to)
		np.setPiece(Piece{Type: promo, Color: us}, to)
	}

	if piece.Type == King && absSquareDelta(from, to) == 2 {
		side := KingSide
		if to.File() < from.File() {
			side = QueenSide
		}
		rookFrom := RookHomeSquare(us, side)
		rookTo := RookCastleDest(us, side)
		rook, _ := np.removePiece(rookFrom)
		np.setPiece(rook, rookTo)
	}

	np.Castle[us] = np.Castle[us].Remove(RightsLostAt(us, from))
	np.Castle[us] = np.Castle[us].Remove(RightsLostAt(us, to))
	np.Castle[them] = np.Castle[them].Remove(RightsLostAt(them, to))

	if piece.Type == Pawn && absSquareDelta(from, to) == 16 && enPassantCapturable(np, to, them) {
		np.EnPassant = to
	}

	if piece.Type == Pawn || wasCapture {
		np.HalfMoveClock = 0
	} else {
		np.HalfMoveClock++
	}
	if us == Black {
		np.FullMoveNumber++
	}

	np.SideToMove = them
	np.Checkers = computeCheckers(np, them)
	np.Pinned = computePinned(np, them)

	return np
}

// enPassantCapturable reports whether a pawn of capturingSide sits on an
// adjacent file on sq's rank, i.e. whether an en-passant capture on sq is
// actually available to the next side to move rather than merely
// geometrically possible. En passant must only be recorded when this
// holds.
func enPassantCapturable(p Position, sq Square, capturingSide Color) bool {
	return adjacentFilesMask(sq.File())&RankMask[sq.Rank()]&p.Pieces[capturingSide][Pawn] != 0
}

// epCaptureDest returns the square a pawn must move to in order to
// capture en passant in p, or NoSquare if no capture is available.
func epCaptureDest(p Position) Square {
	if p.EnPassant == NoSquare {
		return NoSquare
	}
	them := p.SideToMove.Other()
	return p.EnPassant.Backward(them)
}

func absSquareDelta(a, b Square) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// MakeNull returns the position with the side to move flipped and the
// en-passant square cleared, or ok=false if the side to move is
// currently in check (a null move cannot be made from check).
func (p Position) MakeNull() (result Position, ok bool) {
	if p.InCheck() {
		return Position{}, false
	}
	np := p
	np.EnPassant = NoSquare
	np.SideToMove = p.SideToMove.Other()
	np.Checkers = computeCheckers(np, np.SideToMove)
	np.Pinned = computePinned(np, np.SideToMove)
	return np, true
}

// IsSane reports whether p could plausibly arise from legal play: both
// sides have exactly one king, no pawns sit on the back ranks, and the
// side NOT to move is not currently in check.
func (p Position) IsSane() error {
	if p.Pieces[White][King].PopCount() != 1 {
		return newError(ErrBoard, "white must have exactly one king")
	}
	if p.Pieces[Black][King].PopCount() != 1 {
		return newError(ErrBoard, "black must have exactly one king")
	}
	pawns := p.Pieces[White][Pawn] | p.Pieces[Black][Pawn]
	if pawns&(BBRank1|BBRank8) != 0 {
		return newError(ErrBoard, "pawns cannot occupy the back rank")
	}
	opponent := p.SideToMove.Other()
	if p.IsSquareAttacked(p.KingSquare[opponent], p.SideToMove) {
		return newError(ErrBoard, "side not to move is in check")
	}
	return nil
}

// String renders an ASCII board diagram followed by position metadata.
func (p Position) String() string {
	s := "\n"
	for r := 7; r >= 0; r-- {
		s += fmt.Sprintf("%d  ", r+1)
		for f := 0; f < 8; f++ {
			sq := NewSquare(File(f), Rank(r))
			if piece, ok := p.PieceAt(sq); ok {
				s += piece.String() + " "
			} else {
				s += ". "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("castling: %s%s\n", p.Castle[White].FENString(White), p.Castle[Black].FENString(Black))
	s += fmt.Sprintf("en passant: %s\n", p.EnPassant)
	s += fmt.Sprintf("halfmove: %d fullmove: %d\n", p.HalfMoveClock, p.FullMoveNumber)
	s += fmt.Sprintf("hash: %016x\n", p.Hash())
	return s
}
