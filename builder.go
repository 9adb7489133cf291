package chess

// PositionBuilder stages a position before it becomes a real, immutable
// Position. Position has no exported setter methods (its piece-placement
// helpers are unexported); every producer other than ParseFEN
// (custom starting positions, puzzle setup, test fixtures) should go
// through a builder so validation happens in one place.
type PositionBuilder struct {
	pieces     map[Square]Piece
	sideToMove Color
	castle     [2]CastleRights
	enPassant  Square
	halfMove   int
	fullMove   int
}

// NewPositionBuilder returns an empty builder with White to move, no
// castling rights, no en-passant square, and move counters at their
// game-start values.
func NewPositionBuilder() *PositionBuilder {
	return &PositionBuilder{
		pieces:     make(map[Square]Piece),
		sideToMove: White,
		enPassant:  NoSquare,
		fullMove:   1,
	}
}

// SetPiece places piece on sq, overwriting whatever was there.
func (b *PositionBuilder) SetPiece(piece Piece, sq Square) *PositionBuilder {
	b.pieces[sq] = piece
	return b
}

// ClearSquare removes any piece on sq.
func (b *PositionBuilder) ClearSquare(sq Square) *PositionBuilder {
	delete(b.pieces, sq)
	return b
}

// SetSideToMove sets which color is to move.
func (b *PositionBuilder) SetSideToMove(c Color) *PositionBuilder {
	b.sideToMove = c
	return b
}

// AddCastleRights grants rights to color c, on top of whatever it
// already has.
func (b *PositionBuilder) AddCastleRights(c Color, rights CastleRights) *PositionBuilder {
	b.castle[c] = b.castle[c].Add(rights)
	return b
}

// SetEnPassant records the doubled pawn's own resting square as the
// builder's en-passant state (not the FEN-style square passed over;
// see Position.EnPassant). Build keeps it only when a pawn of the side
// to move stands beside it on the same rank.
func (b *PositionBuilder) SetEnPassant(sq Square) *PositionBuilder {
	b.enPassant = sq
	return b
}

// SetHalfMoveClock sets the halfmove clock used for the fifty-move rule.
func (b *PositionBuilder) SetHalfMoveClock(n int) *PositionBuilder {
	b.halfMove = n
	return b
}

// SetFullMoveNumber sets the full move counter.
func (b *PositionBuilder) SetFullMoveNumber(n int) *PositionBuilder {
	b.fullMove = n
	return b
}

// Build validates the staged state and produces a Position. It rejects
// boards with zero or more than one king per side, pawns on either
// back rank, or a side not to move that is already in check.
func (b *PositionBuilder) Build() (Position, error) {
	var p Position
	p.EnPassant = NoSquare
	p.FullMoveNumber = 1
	p.KingSquare[White] = NoSquare
	p.KingSquare[Black] = NoSquare

	for sq, piece := range b.pieces {
		p.setPiece(piece, sq)
	}

	p.SideToMove = b.sideToMove
	p.Castle = b.castle
	if b.enPassant < NoSquare && enPassantCapturable(p, b.enPassant, p.SideToMove) {
		p.EnPassant = b.enPassant
	}
	p.HalfMoveClock = b.halfMove
	p.FullMoveNumber = b.fullMove

	if p.KingSquare[White] == NoSquare || p.KingSquare[Black] == NoSquare {
		return Position{}, newError(ErrBoard, "position must have exactly one king per side")
	}

	p.Checkers = computeCheckers(p, p.SideToMove)
	p.Pinned = computePinned(p, p.SideToMove)

	if err := p.IsSane(); err != nil {
		return Position{}, err
	}
	return p, nil
}
