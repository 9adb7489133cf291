package chess

// LegalMoves enumerates every legal move in p directly, using the
// pinned and checkers bitboards p already carries. No move is ever
// generated and then discarded by trial application; the one exception
// is en-passant, where a synthetic occupancy is built to test for a
// discovered check along the rank or a diagonal, since that interaction
// cannot be read off the pin/checkers bitboards alone.
func LegalMoves(p Position) *MoveList {
	ml := &MoveList{}
	us := p.SideToMove
	unoccupiedByMe := ^p.Occupied[us]
	ksq := p.KingSquare[us]

	genKingMoves(ml, p, us, ksq, unoccupiedByMe)

	if p.Checkers.MoreThanOne() {
		return ml // double check: only the king can move
	}

	checkMask := UniverseBB
	inCheck := p.Checkers != 0
	if inCheck {
		checkerSq := p.Checkers.LSB()
		checkMask = Between(checkerSq, ksq) ^ p.Checkers
	}

	genPawnMoves(ml, p, us, ksq, checkMask, unoccupiedByMe, inCheck)
	genSliderMoves(ml, p, us, ksq, Knight, checkMask, unoccupiedByMe, inCheck)
	genSliderMoves(ml, p, us, ksq, Bishop, checkMask, unoccupiedByMe, inCheck)
	genSliderMoves(ml, p, us, ksq, Rook, checkMask, unoccupiedByMe, inCheck)
	genSliderMoves(ml, p, us, ksq, Queen, checkMask, unoccupiedByMe, inCheck)

	return ml
}

// HasLegalMoves is a fast path for Status that stops at the first legal
// move instead of enumerating all of them.
func HasLegalMoves(p Position) bool {
	us := p.SideToMove
	unoccupiedByMe := ^p.Occupied[us]
	ksq := p.KingSquare[us]

	if hasKingMove(p, us, ksq, unoccupiedByMe) {
		return true
	}
	if p.Checkers.MoreThanOne() {
		return false
	}

	checkMask := UniverseBB
	inCheck := p.Checkers != 0
	if inCheck {
		checkerSq := p.Checkers.LSB()
		checkMask = Between(checkerSq, ksq) ^ p.Checkers
	}

	if hasPawnMove(p, us, ksq, checkMask, unoccupiedByMe, inCheck) {
		return true
	}
	for _, pt := range [4]PieceType{Knight, Bishop, Rook, Queen} {
		if hasSliderMove(p, us, ksq, pt, checkMask, unoccupiedByMe, inCheck) {
			return true
		}
	}
	return false
}

// pseudoAttacks returns the raw attack/move bitboard for a non-pawn,
// non-king piece type on src, ignoring friendly occupancy.
func pseudoAttacks(pt PieceType, src Square, occupied Bitboard) Bitboard {
	switch pt {
	case Knight:
		return KnightAttacks(src)
	case Bishop:
		return BishopAttacks(src, occupied)
	case Rook:
		return RookAttacks(src, occupied)
	case Queen:
		return QueenAttacks(src, occupied)
	default:
		return 0
	}
}

func genSliderMoves(ml *MoveList, p Position, us Color, ksq Square, pt PieceType, checkMask, unoccupiedByMe Bitboard, inCheck bool) {
	pieces := p.Pieces[us][pt]
	pinned := p.Pinned

	free := pieces &^ pinned
	for free != 0 {
		src := free.PopLSB()
		moves := pseudoAttacks(pt, src, p.All) & unoccupiedByMe & checkMask
		addMovesFrom(ml, src, moves)
	}

	if inCheck {
		return
	}
	pinnedOfType := pieces & pinned
	for pinnedOfType != 0 {
		src := pinnedOfType.PopLSB()
		moves := pseudoAttacks(pt, src, p.All) & unoccupiedByMe & Line(src, ksq)
		addMovesFrom(ml, src, moves)
	}
}

func hasSliderMove(p Position, us Color, ksq Square, pt PieceType, checkMask, unoccupiedByMe Bitboard, inCheck bool) bool {
	pieces := p.Pieces[us][pt]
	pinned := p.Pinned

	free := pieces &^ pinned
	for free != 0 {
		src := free.PopLSB()
		if pseudoAttacks(pt, src, p.All)&unoccupiedByMe&checkMask != 0 {
			return true
		}
	}
	if inCheck {
		return false
	}
	pinnedOfType := pieces & pinned
	for pinnedOfType != 0 {
		src := pinnedOfType.PopLSB()
		if pseudoAttacks(pt, src, p.All)&unoccupiedByMe&Line(src, ksq) != 0 {
			return true
		}
	}
	return false
}

func addMovesFrom(ml *MoveList, src Square, dests Bitboard) {
	for dests != 0 {
		ml.Add(NewMove(src, dests.PopLSB()))
	}
}

// pawnMoveTargets returns every square a pawn of color us on sq could
// move to (pushes and diagonal captures), given the full board
// occupancy and the enemy occupancy.
func pawnMoveTargets(sq Square, us Color, occupied, enemy Bitboard) Bitboard {
	var targets Bitboard
	push1 := pawnPushes[us][sq] &^ occupied
	targets |= push1
	if push1 != 0 && sq.Rank() == us.SecondRank() {
		targets |= pawnPushes[us][push1.LSB()] &^ occupied
	}
	targets |= pawnAttacks[us][sq] & enemy
	return targets
}

func genPawnMoves(ml *MoveList, p Position, us Color, ksq Square, checkMask, unoccupiedByMe Bitboard, inCheck bool) {
	them := us.Other()
	enemy := p.Occupied[them]
	pawns := p.Pieces[us][Pawn]
	pinned := p.Pinned
	promoRank := them.Backrank()

	free := pawns &^ pinned
	for free != 0 {
		src := free.PopLSB()
		moves := pawnMoveTargets(src, us, p.All, enemy) & unoccupiedByMe & checkMask
		addPawnMovesFrom(ml, src, moves, promoRank)
	}

	if !inCheck {
		pinnedPawns := pawns & pinned
		for pinnedPawns != 0 {
			src := pinnedPawns.PopLSB()
			moves := pawnMoveTargets(src, us, p.All, enemy) & unoccupiedByMe & Line(src, ksq)
			addPawnMovesFrom(ml, src, moves, promoRank)
		}
	}

	if p.EnPassant == NoSquare {
		return
	}
	dest := epCaptureDest(p)
	candidates := RankMask[p.EnPassant.Rank()] & adjacentFilesMask(p.EnPassant.File()) & pawns
	for candidates != 0 {
		src := candidates.PopLSB()
		if legalEnPassant(p, src, dest) {
			ml.Add(NewMove(src, dest))
		}
	}
}

func hasPawnMove(p Position, us Color, ksq Square, checkMask, unoccupiedByMe Bitboard, inCheck bool) bool {
	them := us.Other()
	enemy := p.Occupied[them]
	pawns := p.Pieces[us][Pawn]
	pinned := p.Pinned

	free := pawns &^ pinned
	for free != 0 {
		src := free.PopLSB()
		if pawnMoveTargets(src, us, p.All, enemy)&unoccupiedByMe&checkMask != 0 {
			return true
		}
	}
	if !inCheck {
		pinnedPawns := pawns & pinned
		for pinnedPawns != 0 {
			src := pinnedPawns.PopLSB()
			if pawnMoveTargets(src, us, p.All, enemy)&unoccupiedByMe&Line(src, ksq) != 0 {
				return true
			}
		}
	}
	if p.EnPassant == NoSquare {
		return false
	}
	dest := epCaptureDest(p)
	candidates := RankMask[p.EnPassant.Rank()] & adjacentFilesMask(p.EnPassant.File()) & pawns
	for candidates != 0 {
		src := candidates.PopLSB()
		if legalEnPassant(p, src, dest) {
			return true
		}
	}
	return false
}

func addPawnMovesFrom(ml *MoveList, src Square, dests Bitboard, promoRank Rank) {
	for dests != 0 {
		dest := dests.PopLSB()
		if dest.Rank() == promoRank {
			ml.Add(NewPromotionMove(src, dest, Queen))
			ml.Add(NewPromotionMove(src, dest, Knight))
			ml.Add(NewPromotionMove(src, dest, Rook))
			ml.Add(NewPromotionMove(src, dest, Bishop))
		} else {
			ml.Add(NewMove(src, dest))
		}
	}
}

func adjacentFilesMask(f File) Bitboard {
	var m Bitboard
	if f != FileA {
		m |= FileMask[f.Left()]
	}
	if f != FileH {
		m |= FileMask[f.Right()]
	}
	return m
}

// legalEnPassant is the one deliberate "try" step in the generator: an
// en-passant capture removes two pawns from the same rank at once, which
// can expose the king to a rook or queen along that rank (or, since both
// squares vacate, to a bishop/queen along a diagonal) in a way the
// pin set carried by the position cannot express. It builds the
// post-capture occupancy and checks once for that discovered attack.
func legalEnPassant(p Position, src, dest Square) bool {
	us := p.SideToMove
	them := us.Other()
	ksq := p.KingSquare[us]
	combined := p.All ^ SquareBB(p.EnPassant) ^ SquareBB(src) ^ SquareBB(dest)

	rooks := p.Pieces[them][Rook] | p.Pieces[them][Queen]
	if RookAttacks(ksq, 0)&rooks != 0 && RookAttacks(ksq, combined)&rooks != 0 {
		return false
	}
	bishops := p.Pieces[them][Bishop] | p.Pieces[them][Queen]
	if BishopAttacks(ksq, 0)&bishops != 0 && BishopAttacks(ksq, combined)&bishops != 0 {
		return false
	}
	return true
}

// legalKingMove reports whether the king, currently on p.KingSquare[us],
// would be safe on dest. It removes the king from the occupancy first so
// a slider doesn't see its own king as a blocker on the square it is
// leaving.
func legalKingMove(p Position, dest Square) bool {
	us := p.SideToMove
	them := us.Other()
	combined := (p.All &^ p.Pieces[us][King]) | SquareBB(dest)
	return p.attackersOf(dest, them, combined) == 0
}

func genKingMoves(ml *MoveList, p Position, us Color, ksq Square, unoccupiedByMe Bitboard) {
	moves := KingAttacks(ksq) & unoccupiedByMe
	safe := moves
	tmp := moves
	for tmp != 0 {
		dest := tmp.PopLSB()
		if !legalKingMove(p, dest) {
			safe &^= SquareBB(dest)
		}
	}

	if p.Checkers == 0 {
		rights := p.Castle[us]
		if rights.HasKingSide() && p.All&KingSideEmptySquares(us) == 0 {
			path := KingSideCastlePath(us)
			if legalKingMove(p, path[0]) && legalKingMove(p, path[1]) {
				safe |= SquareBB(path[1])
			}
		}
		if rights.HasQueenSide() && p.All&QueenSideEmptySquares(us) == 0 {
			path := QueenSideCastlePath(us)
			if legalKingMove(p, path[0]) && legalKingMove(p, path[1]) {
				safe |= SquareBB(path[1])
			}
		}
	}

	addMovesFrom(ml, ksq, safe)
}

func hasKingMove(p Position, us Color, ksq Square, unoccupiedByMe Bitboard) bool {
	moves := KingAttacks(ksq) & unoccupiedByMe
	for moves != 0 {
		dest := moves.PopLSB()
		if legalKingMove(p, dest) {
			return true
		}
	}
	if p.Checkers == 0 {
		rights := p.Castle[us]
		if rights.HasKingSide() && p.All&KingSideEmptySquares(us) == 0 {
			path := KingSideCastlePath(us)
			if legalKingMove(p, path[0]) && legalKingMove(p, path[1]) {
				return true
			}
		}
		if rights.HasQueenSide() && p.All&QueenSideEmptySquares(us) == 0 {
			path := QueenSideCastlePath(us)
			if legalKingMove(p, path[0]) && legalKingMove(p, path[1]) {
				return true
			}
		}
	}
	return false
}

// Status describes the game-theoretic state of a position.
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

// StatusOf classifies p using the legal move generator's fast path.
func StatusOf(p Position) Status {
	if HasLegalMoves(p) {
		return Ongoing
	}
	if p.InCheck() {
		return Checkmate
	}
	return Stalemate
}
