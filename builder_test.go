package chess

import "testing"

func TestBuilderProducesStartPosition(t *testing.T) {
	b := NewPositionBuilder()
	back := [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for f := File(0); f < 8; f++ {
		b.SetPiece(Piece{Type: back[f], Color: White}, NewSquare(f, Rank1))
		b.SetPiece(Piece{Type: Pawn, Color: White}, NewSquare(f, Rank2))
		b.SetPiece(Piece{Type: Pawn, Color: Black}, NewSquare(f, Rank7))
		b.SetPiece(Piece{Type: back[f], Color: Black}, NewSquare(f, Rank8))
	}
	b.AddCastleRights(White, BothSides).AddCastleRights(Black, BothSides)

	pos, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := StartPosition()
	if pos.Hash() != want.Hash() {
		t.Errorf("built position hash %016x != start position hash %016x", pos.Hash(), want.Hash())
	}
	if pos.ToFEN() != StartFEN {
		t.Errorf("built position FEN = %q, want %q", pos.ToFEN(), StartFEN)
	}
}

func TestBuilderRejectsMissingKing(t *testing.T) {
	b := NewPositionBuilder()
	b.SetPiece(Piece{Type: King, Color: White}, E1)
	if _, err := b.Build(); err == nil {
		t.Error("expected Build to fail without a black king")
	}
}

func TestBuilderRejectsOpponentInCheck(t *testing.T) {
	b := NewPositionBuilder()
	b.SetPiece(Piece{Type: King, Color: White}, E1)
	b.SetPiece(Piece{Type: King, Color: Black}, E8)
	b.SetPiece(Piece{Type: Rook, Color: White}, E4)
	b.SetSideToMove(White)
	// Black, not to move, is in check from the rook on the open e-file.
	if _, err := b.Build(); err == nil {
		t.Error("expected Build to reject a position where the side not to move is in check")
	}
}

func TestBuilderClearSquare(t *testing.T) {
	b := NewPositionBuilder()
	b.SetPiece(Piece{Type: King, Color: White}, E1)
	b.SetPiece(Piece{Type: King, Color: Black}, E8)
	b.SetPiece(Piece{Type: Queen, Color: White}, D1)
	b.ClearSquare(D1)

	pos, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := pos.PieceAt(D1); ok {
		t.Error("expected d1 to be empty after ClearSquare")
	}
}

func TestBuilderEnPassantAndMoveCounters(t *testing.T) {
	b := NewPositionBuilder()
	b.SetPiece(Piece{Type: King, Color: White}, E1)
	b.SetPiece(Piece{Type: King, Color: Black}, E8)
	b.SetPiece(Piece{Type: Pawn, Color: White}, E4)
	b.SetPiece(Piece{Type: Pawn, Color: Black}, D4)
	b.SetEnPassant(E4).SetHalfMoveClock(0).SetFullMoveNumber(5).SetSideToMove(Black)

	pos, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if pos.EnPassant != E4 {
		t.Errorf("EnPassant = %v, want e4", pos.EnPassant)
	}
	if pos.FullMoveNumber != 5 {
		t.Errorf("FullMoveNumber = %d, want 5", pos.FullMoveNumber)
	}
}
